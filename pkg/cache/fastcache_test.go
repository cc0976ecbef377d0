// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastCache_Expiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := NewFastCache(0)
	fc.now = func() time.Time { return now }

	require.NoError(t, fc.Set(ctx, "short", "a", time.Second))
	require.NoError(t, fc.Set(ctx, "forever", "b", 0))

	got, err := fc.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	now = now.Add(2 * time.Second)
	_, err = fc.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)

	got, err = fc.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestFastCache_DelAndReset(t *testing.T) {
	ctx := context.Background()
	fc := NewFastCache(1024 * 1024)

	require.NoError(t, fc.Set(ctx, "a", "", 0))
	got, err := fc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	require.NoError(t, fc.Del(ctx, "a"))
	_, err = fc.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, fc.Set(ctx, "b", "x", 0))
	fc.Reset()
	_, err = fc.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestProvideICache(t *testing.T) {
	c, cleanup, err := ProvideICache(Config{Mode: "local"})
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &FastCache{}, c)

	c, cleanup, err = ProvideICache(Config{Mode: "none"})
	require.NoError(t, err)
	defer cleanup()
	assert.Nil(t, c)

	_, _, err = ProvideICache(Config{Mode: "memcached"})
	assert.Error(t, err)
}
