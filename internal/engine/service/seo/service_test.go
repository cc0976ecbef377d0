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
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo/repotest"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConf() config.SeoConfig {
	conf := config.SeoConfig{PublicBaseURL: "https://acme.test"}
	conf.SetDefaults()
	return conf
}

func seededStore() *repotest.MemStore {
	store := repotest.New()
	store.SetSettings(model.GlobalSettings{
		SiteName:           "Acme",
		DefaultDescription: "Tools for builders",
		CanonicalBaseURL:   "https://acme.test/",
		SitemapEnabled:     true,
		SitemapPages:       true,
		SitemapProducts:    true,
	})
	store.SetFaq(model.FaqItem{Question: "What?", Answer: "Tools."})
	store.AddPage(model.Page{ID: "pricing", Name: "Pricing", Route: "/pricing", Active: true})
	store.AddPage(model.Page{ID: "old", Name: "Old", Route: "/old", Active: false})
	price := 10.0
	store.AddProduct(model.Product{ID: "w", Slug: "widget", Name: "Widget", ShortDescription: "A widget", Price: &price, Active: true})
	return store
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestGlobalsCache_TTL(t *testing.T) {
	store := seededStore()
	m := metrics.New()
	g := NewGlobalsCache(store, time.Minute, m)
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	g.now = c.now
	ctx := context.Background()

	first, err := g.GetOrRefresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme", first.Settings.SiteName)

	store.SetSettings(model.GlobalSettings{SiteName: "Renamed"})
	c.advance(59 * time.Second)
	cached, err := g.GetOrRefresh(ctx)
	require.NoError(t, err)
	assert.Same(t, first, cached)

	c.advance(2 * time.Second)
	fresh, err := g.GetOrRefresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fresh.Settings.SiteName)
	assert.Equal(t, "Acme", first.Settings.SiteName)
	assert.Equal(t, 2, store.Reads("GetSettings"))
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP beacon_globals_refresh_total Globals snapshot reloads by result.
# TYPE beacon_globals_refresh_total counter
beacon_globals_refresh_total{result="ok"} 2
`), "beacon_globals_refresh_total"))
}

func TestGlobalsCache_InvalidateAndError(t *testing.T) {
	store := seededStore()
	g := NewGlobalsCache(store, time.Hour, nil)
	ctx := context.Background()

	_, err := g.GetOrRefresh(ctx)
	require.NoError(t, err)
	store.SetSettings(model.GlobalSettings{SiteName: "Next"})
	g.Invalidate()
	v, err := g.GetOrRefresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Next", v.Settings.SiteName)

	g.Invalidate()
	store.FailOn("ListFaq", errors.New("db down"))
	_, err = g.GetOrRefresh(ctx)
	assert.Error(t, err)
}

func TestGlobalsCache_ConcurrentReadersShareSnapshot(t *testing.T) {
	store := seededStore()
	g := NewGlobalsCache(store, time.Hour, nil)

	var wg sync.WaitGroup
	results := make([]*Globals, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := g.GetOrRefresh(context.Background())
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	wg.Wait()
	for _, v := range results {
		require.NotNil(t, v)
		assert.Equal(t, "Acme", v.Settings.SiteName)
	}
}

func newService(store *repotest.MemStore) *Service {
	conf := testConf()
	return NewService(store, NewGlobalsCache(store, time.Minute, nil), conf)
}

func TestService_ResolvePath(t *testing.T) {
	store := seededStore()
	require.NoError(t, store.UpsertPageOverride(context.Background(), &model.PageMetadataOverride{
		PageID: "pricing", MetadataFields: model.MetadataFields{Title: "Pricing"},
	}))
	svc := newService(store)
	ctx := context.Background()

	res, err := svc.ResolvePath(ctx, "/pricing/")
	require.NoError(t, err)
	assert.Equal(t, ContextPage, res.Context)
	assert.Equal(t, "pricing", res.PageID)
	assert.Equal(t, "Pricing | Acme", res.Bundle.Title)
	assert.Equal(t, "https://acme.test/pricing", res.Bundle.CanonicalURL)

	res, err = svc.ResolvePath(ctx, "/products/widget")
	require.NoError(t, err)
	assert.Equal(t, ContextProduct, res.Context)
	assert.Equal(t, KindProduct, res.Bundle.OG.Type)
	assert.Equal(t, "A widget", *res.Bundle.Description)
	assert.Equal(t, []string{"Organization", "WebSite", "Product"}, types(res.StructuredData))

	res, err = svc.ResolvePath(ctx, "/old")
	require.NoError(t, err)
	assert.Equal(t, ContextDefault, res.Context)

	res, err = svc.ResolvePath(ctx, "/products/widget/reviews")
	require.NoError(t, err)
	assert.Equal(t, ContextDefault, res.Context)

	res, err = svc.ResolvePath(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"Organization", "WebSite", "FAQPage"}, types(res.StructuredData))
}

func TestService_ResolvePath_StoredTrailingSlash(t *testing.T) {
	store := seededStore()
	store.AddPage(model.Page{ID: "team", Name: "Team", Route: "/team/", Active: true})
	require.NoError(t, store.UpsertPageOverride(context.Background(), &model.PageMetadataOverride{
		PageID: "team", MetadataFields: model.MetadataFields{Title: "Team"},
	}))
	svc := newService(store)

	for _, path := range []string{"/team", "/team/", "/team?ref=nav"} {
		res, err := svc.ResolvePath(context.Background(), path)
		require.NoError(t, err, path)
		assert.Equal(t, ContextPage, res.Context, path)
		assert.Equal(t, "team", res.PageID, path)
		assert.Equal(t, "Team | Acme", res.Bundle.Title, path)
		assert.Equal(t, "https://acme.test/team", res.Bundle.CanonicalURL, path)
	}
}

func TestService_SitemapAndRobots(t *testing.T) {
	store := seededStore()
	store.AddPage(model.Page{ID: "hidden", Route: "/hidden", Active: true})
	require.NoError(t, store.UpsertPageOverride(context.Background(), &model.PageMetadataOverride{
		PageID: "hidden", MetadataFields: model.MetadataFields{Index: model.Bool(false)},
	}))
	svc := newService(store)
	ctx := context.Background()

	urls, err := svc.SitemapURLs(ctx)
	require.NoError(t, err)
	locs := make([]string, len(urls))
	for i, u := range urls {
		locs[i] = u.Loc
	}
	assert.Equal(t, []string{"https://acme.test/", "https://acme.test/pricing", "https://acme.test/products/widget"}, locs)

	body, err := svc.Sitemap(ctx)
	require.NoError(t, err)
	var set urlSet
	require.NoError(t, xml.Unmarshal(body, &set))
	assert.Len(t, set.URLs, 3)

	robots, err := svc.RobotsTxt(ctx)
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: https://acme.test/sitemap.xml\n", robots)

	s, _ := store.GetSettings(ctx)
	s.RobotsTxt = "User-agent: *\nDisallow: /admin\n"
	s.SitemapEnabled = false
	require.NoError(t, store.SaveSettings(ctx, s))
	svc.Globals().Invalidate()

	robots, err = svc.RobotsTxt(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.RobotsTxt, robots)

	_, err = svc.Sitemap(ctx)
	assert.True(t, apierr.HasCode(err, apierr.CodeNotFound))
}

func TestBuildSitemap_Flags(t *testing.T) {
	inv := &Inventory{
		Pages:    []model.Page{{ID: "a", Route: "/a", Active: true}, {ID: "home", Route: "/", Active: true}},
		Products: []model.Product{{ID: "p", Slug: "p", Active: true}},
	}
	s := &model.GlobalSettings{CanonicalBaseURL: "https://acme.test"}
	assert.Len(t, BuildSitemap(s, inv, "/products/"), 1)

	s.SitemapPages = true
	assert.Len(t, BuildSitemap(s, inv, "/products/"), 2)

	s.SitemapProducts = true
	assert.Len(t, BuildSitemap(s, inv, "/products/"), 3)
}

func writeTemplate(t *testing.T, body string) config.SeoConfig {
	t.Helper()
	conf := testConf()
	conf.TemplatePath = filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(conf.TemplatePath, []byte(body), 0o644))
	return conf
}

func TestInjector_Render(t *testing.T) {
	store := seededStore()
	conf := writeTemplate(t, sampleTemplate)
	m := metrics.New()
	inj := NewInjector(NewService(store, NewGlobalsCache(store, time.Minute, nil), conf), conf, m)

	doc, err := inj.Render(context.Background(), "/pricing")
	require.NoError(t, err)
	assert.Contains(t, doc, "<title>Acme</title>")
	assert.Contains(t, doc, `<link rel="canonical" href="https://acme.test/pricing">`)
	assert.Contains(t, doc, `application/ld+json`)
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP beacon_document_render_total Document renders by outcome (injected, fallback).
# TYPE beacon_document_render_total counter
beacon_document_render_total{outcome="injected"} 1
`), "beacon_document_render_total"))

	require.NoError(t, os.Remove(conf.TemplatePath))
	_, err = inj.Render(context.Background(), "/")
	assert.NoError(t, err, "template stays cached after the first read")
}

func TestInjector_FallsBackToTemplate(t *testing.T) {
	store := seededStore()
	store.FailOn("GetSettings", errors.New("db down"))
	conf := writeTemplate(t, sampleTemplate)
	inj := NewInjector(NewService(store, NewGlobalsCache(store, time.Minute, nil), conf), conf, nil)

	doc, err := inj.Render(context.Background(), "/pricing")
	require.NoError(t, err)
	assert.Equal(t, sampleTemplate, doc)
}

func TestInjector_RecoversPanic(t *testing.T) {
	conf := writeTemplate(t, sampleTemplate)
	inj := NewInjector(nil, conf, nil)

	doc, err := inj.Render(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, sampleTemplate, doc)
}

func TestInjector_MissingTemplate(t *testing.T) {
	conf := testConf()
	conf.TemplatePath = filepath.Join(t.TempDir(), "missing.html")
	inj := NewInjector(newService(seededStore()), conf, nil)

	_, err := inj.Render(context.Background(), "/")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(conf.TemplatePath, []byte("<head></head>"), 0o644))
	doc, err := inj.Render(context.Background(), "/")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "<head>\n"+markerStart))
}
