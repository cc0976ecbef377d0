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
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSettings struct {
	SiteName string `json:"siteName"`
	Index    bool   `json:"index"`
}

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_GetSetDel(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k2", "v2", 0))
	require.NoError(t, c.Del(ctx, "k2", "unknown"))
	assert.False(t, mr.Exists("k2"))
}

func TestCachedQuery_HitAndInvalidate(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	calls := 0
	query := func(ctx context.Context) (testSettings, error) {
		calls++
		return testSettings{SiteName: "Acme", Index: true}, nil
	}
	cq := NewCachedQuery[testSettings](c, PrefixKey("beacon:settings"), WithTTL[testSettings](time.Minute))

	first, err := cq.Get(ctx, query, "global")
	require.NoError(t, err)
	second, err := cq.Get(ctx, query, "global")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists("beacon:settings:global"))

	require.NoError(t, cq.Invalidate(ctx, "global"))
	_, err = cq.Get(ctx, query, "global")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachedQuery_RefreshSkipsCachedCopy(t *testing.T) {
	ctx := context.Background()
	c := NewFastCache(1 << 20)

	name := "old"
	query := func(ctx context.Context) (testSettings, error) {
		return testSettings{SiteName: name}, nil
	}
	cq := NewCachedQuery[testSettings](c, PrefixKey("beacon:settings"), WithTTL[testSettings](time.Hour))

	got, err := cq.Get(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "old", got.SiteName)

	name = "new"
	got, err = cq.Get(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "old", got.SiteName)

	got, err = cq.Get(WithRefresh(ctx), query)
	require.NoError(t, err)
	assert.Equal(t, "new", got.SiteName)

	name = "ignored"
	got, err = cq.Get(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "new", got.SiteName)
}

func TestCachedQuery_CorruptEntryFallsBackToQuery(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set("beacon:settings", "{not json"))

	cq := NewCachedQuery[testSettings](c, PrefixKey("beacon:settings"))
	got, err := cq.Get(ctx, func(ctx context.Context) (testSettings, error) {
		return testSettings{SiteName: "Fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Fresh", got.SiteName)
}

func TestCachedQuery_QueryErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)
	boom := errors.New("boom")

	cq := NewCachedQuery[testSettings](c, PrefixKey("k"))
	_, err := cq.Get(ctx, func(ctx context.Context) (testSettings, error) {
		return testSettings{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestCachedQuery_NilCachePassesThrough(t *testing.T) {
	calls := 0
	cq := NewCachedQuery[int](nil, PrefixKey("n"))
	for i := 0; i < 3; i++ {
		_, err := cq.Get(context.Background(), func(ctx context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
	assert.NoError(t, cq.Invalidate(context.Background()))
}

func TestPrefixKey(t *testing.T) {
	k := PrefixKey("beacon:faq")
	assert.Equal(t, "beacon:faq", k())
	assert.Equal(t, "beacon:faq:1:a", k(1, "a"))
}
