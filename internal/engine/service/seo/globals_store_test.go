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

package seo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/pkg/cache"
	"github.com/go-arcade/beacon/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSharedStore(t *testing.T, path string) *repo.MetadataStore {
	t.Helper()
	g, cleanup, err := database.ProvideDatabase(database.Database{Type: database.TypeSQLite, Path: path}, nil)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	s, err := repo.ProvideStore(g, cache.NewFastCache(1<<20), cache.Config{Mode: "local", TTL: 300}, database.Database{AutoMigrate: true})
	require.NoError(t, err)
	return s
}

func TestGlobalsCache_SeesWriteFromOtherProcessAfterTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beacon.db")
	server := openSharedStore(t, path)
	cli := openSharedStore(t, path)
	ctx := context.Background()

	g := NewGlobalsCache(server, time.Minute, nil)
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	g.now = c.now

	first, err := g.GetOrRefresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, first.Settings.SiteName)

	require.NoError(t, cli.SaveSettings(ctx, &model.GlobalSettings{SiteName: "From CLI"}, "site_name"))

	c.advance(30 * time.Second)
	cached, err := g.GetOrRefresh(ctx)
	require.NoError(t, err)
	assert.Same(t, first, cached)

	c.advance(31 * time.Second)
	fresh, err := g.GetOrRefresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "From CLI", fresh.Settings.SiteName)
}
