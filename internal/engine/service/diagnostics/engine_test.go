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

package diagnostics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo/repotest"
	"github.com/go-arcade/beacon/internal/engine/service/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthySnapshot() *Snapshot {
	return &Snapshot{
		Settings: model.GlobalSettings{
			SiteName:           "Acme",
			DefaultTitle:       "Acme Tools",
			DefaultDescription: "Tools for builders",
			DefaultImage:       "/og.png",
			CanonicalBaseURL:   "https://acme.test",
			SitemapEnabled:     true,
			SitemapPages:       true,
			SitemapProducts:    true,
		},
		Identity:    model.Identity{ShortDescription: "Tools", LongDescription: "Tools for builders."},
		FaqCount:    3,
		AnswerCount: 2,
		Inventory: &seo.Inventory{
			Pages: []model.Page{
				{ID: "pricing", Route: "/pricing", Active: true},
				{ID: "about", Route: "/about", Active: true},
			},
			Products: []model.Product{{ID: "w", Slug: "widget", Name: "Widget", Active: true}},
		},
		ProductPathPrefix: "/products/",
	}
}

func find(t *testing.T, r *Report, id string) Check {
	t.Helper()
	for _, c := range r.Checks {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("check %s not in report", id)
	return Check{}
}

func TestEvaluate_Healthy(t *testing.T) {
	r := Evaluate(healthySnapshot())
	require.Len(t, r.Checks, len(checks))
	for _, c := range r.Checks {
		assert.Equal(t, LevelOk, c.Level, "%s: %s", c.ID, c.Message)
		assert.NotEmpty(t, c.Category)
		assert.NotEmpty(t, c.Title)
	}
	assert.Equal(t, Summary{Ok: len(checks)}, r.Summary)
}

func TestEvaluate_SummaryMatchesLevels(t *testing.T) {
	snap := healthySnapshot()
	snap.Settings.RobotsTxt = "User-agent: *\nDisallow: /\n"
	snap.Settings.DefaultRobotsFollow = model.Bool(false)
	snap.FaqCount = 0

	r := Evaluate(snap)
	var want Summary
	for _, c := range r.Checks {
		switch c.Level {
		case LevelError:
			want.Errors++
		case LevelWarning:
			want.Warnings++
		case LevelOk:
			want.Ok++
		}
	}
	assert.Equal(t, want, r.Summary)
	assert.Equal(t, 1, r.Summary.Errors)
	assert.Equal(t, len(r.Checks), r.Summary.Errors+r.Summary.Warnings+r.Summary.Ok)
}

func TestRobotsBlocking(t *testing.T) {
	blocking := []string{
		"User-agent: *\nDisallow: /",
		"Disallow: /*",
		"user-agent: *\n# comment\ndisallow:/   # everything",
		"User-agent: GPTBot\nDisallow: /",
		"User-agent: *\nNoindex: /",
	}
	for _, body := range blocking {
		snap := healthySnapshot()
		snap.Settings.RobotsTxt = body
		assert.Equal(t, LevelError, find(t, Evaluate(snap), "robots_txt_blocking").Level, body)
	}

	allowed := []string{
		"User-agent: *\nDisallow: /admin\nDisallow:\n",
		"User-agent: *\nAllow: /\n# Disallow: /\n",
		"",
	}
	for _, body := range allowed {
		snap := healthySnapshot()
		snap.Settings.RobotsTxt = body
		assert.Equal(t, LevelOk, find(t, Evaluate(snap), "robots_txt_blocking").Level, body)
	}

	line, agents := BlockingDirective("User-agent: a\nUser-agent: b\nDisallow: /\n")
	assert.Equal(t, "Disallow: /", line)
	assert.Equal(t, []string{"a", "b"}, agents)
}

func TestGlobalDirectives(t *testing.T) {
	snap := healthySnapshot()
	snap.Settings.DefaultRobotsIndex = model.Bool(false)
	snap.Settings.DefaultRobotsFollow = model.Bool(false)
	r := Evaluate(snap)
	assert.Equal(t, LevelError, find(t, r, "global_index").Level)
	assert.Equal(t, LevelWarning, find(t, r, "global_follow").Level)
}

func TestCanonicalBase(t *testing.T) {
	for base, level := range map[string]Level{
		"":                   LevelWarning,
		"acme.test":          LevelWarning,
		"ftp://acme.test":    LevelWarning,
		"https://acme.test/": LevelOk,
	} {
		snap := healthySnapshot()
		snap.Settings.CanonicalBaseURL = base
		assert.Equal(t, level, find(t, Evaluate(snap), "canonical_base_url").Level, base)
	}
}

func TestNoindexOverrides(t *testing.T) {
	snap := healthySnapshot()
	snap.Inventory.PageOverrides = map[string]*model.MetadataFields{"about": {Index: model.Bool(false)}}
	snap.Inventory.Products[0].Index = model.Bool(false)

	c := find(t, Evaluate(snap), "noindex_overrides")
	assert.Equal(t, LevelWarning, c.Level)
	assert.Equal(t, []string{"page:about", "product:w"}, c.Metadata["ids"])
}

func TestSitemapCheck(t *testing.T) {
	snap := healthySnapshot()
	c := find(t, Evaluate(snap), "sitemap")
	assert.Equal(t, LevelOk, c.Level)
	assert.Equal(t, 4, c.Metadata["urls"])

	snap.Settings.SitemapPages = false
	snap.Settings.SitemapProducts = false
	assert.Equal(t, LevelWarning, find(t, Evaluate(snap), "sitemap").Level)

	snap.Settings.SitemapEnabled = false
	c = find(t, Evaluate(snap), "sitemap")
	assert.Equal(t, LevelWarning, c.Level)
	assert.Equal(t, "The sitemap is disabled.", c.Message)
}

func TestRobotsSitemapReference(t *testing.T) {
	snap := healthySnapshot()
	snap.Settings.RobotsTxt = "User-agent: *\nAllow: /\n"
	assert.Equal(t, LevelWarning, find(t, Evaluate(snap), "robots_sitemap_reference").Level)

	snap.Settings.RobotsTxt += "Sitemap: https://acme.test/sitemap.xml\n"
	assert.Equal(t, LevelOk, find(t, Evaluate(snap), "robots_sitemap_reference").Level)
}

func TestMetadataCompleteness(t *testing.T) {
	snap := healthySnapshot()
	snap.Settings.SiteName = ""
	snap.Settings.DefaultTitle = ""
	snap.Settings.DefaultDescription = ""
	snap.Inventory.PageOverrides = map[string]*model.MetadataFields{
		"pricing": {Title: "Pricing", Description: "Plans"},
	}
	snap.Inventory.Products[0].ShortDescription = "A widget"
	snap.Inventory.ProductOverrides = map[string]*model.MetadataFields{"w": {Title: "Widget"}}

	r := Evaluate(snap)
	assert.Equal(t, LevelWarning, find(t, r, "global_defaults").Level)

	pages := find(t, r, "pages_metadata")
	assert.Equal(t, LevelWarning, pages.Level)
	assert.Equal(t, map[string][]string{"about": {"title", "description"}}, pages.Metadata["pages"])

	assert.Equal(t, LevelOk, find(t, r, "products_metadata").Level)
}

func TestDuplicates(t *testing.T) {
	snap := healthySnapshot()
	snap.Inventory.Pages = append(snap.Inventory.Pages, model.Page{ID: "pricing2", Route: "/pricing/", Active: true})
	snap.Inventory.Products = append(snap.Inventory.Products, model.Product{ID: "v", Slug: "other", Active: true})
	snap.Inventory.ProductOverrides = map[string]*model.MetadataFields{
		"w": {Canonical: "https://acme.test/products/widget", Title: "Widget"},
		"v": {Canonical: "https://acme.test/products/widget", Title: "Widget"},
	}

	r := Evaluate(snap)
	routes := find(t, r, "duplicate_routes")
	assert.Equal(t, LevelWarning, routes.Level)
	assert.Equal(t, map[string][]string{"/pricing": {"pricing", "pricing2"}}, routes.Metadata["routes"])

	canonicals := find(t, r, "duplicate_canonicals")
	assert.Equal(t, LevelWarning, canonicals.Level)
	got := canonicals.Metadata["canonicals"].(map[string][]string)
	assert.Equal(t, []string{"product:v", "product:w"}, got["https://acme.test/products/widget"])
	assert.Equal(t, []string{"page:pricing", "page:pricing2"}, got["https://acme.test/pricing"])

	assert.Equal(t, LevelWarning, find(t, r, "duplicate_titles").Level)
}

func TestAIReadiness(t *testing.T) {
	snap := healthySnapshot()
	snap.Identity.LongDescription = ""
	snap.AnswerCount = 0
	r := Evaluate(snap)
	assert.Equal(t, LevelWarning, find(t, r, "identity_descriptions").Level)
	assert.Equal(t, LevelWarning, find(t, r, "answers_count").Level)
	faq := find(t, r, "faq_count")
	assert.Equal(t, LevelOk, faq.Level)
	assert.Equal(t, 3, faq.Metadata["count"])
}

func TestRunCheck_RecoversPanic(t *testing.T) {
	c := runCheck(checkDef{id: "boom", category: CategoryMetadata, title: "Boom", run: func(*Snapshot) Check {
		panic("kaboom")
	}}, healthySnapshot())
	assert.Equal(t, LevelError, c.Level)
	assert.Equal(t, "boom", c.ID)
	assert.Contains(t, c.Message, "kaboom")
}

func newEngine(store *repotest.MemStore) *Engine {
	conf := config.SeoConfig{}
	conf.SetDefaults()
	return NewEngine(store, conf, nil)
}

func TestEngine_CachesForTTL(t *testing.T) {
	store := repotest.New()
	store.AddPage(model.Page{ID: "p", Route: "/p", Active: true})
	e := newEngine(store)
	now := time.Unix(1_700_000_000, 0)
	e.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := e.Run(ctx, false)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	store.SetFaq(model.FaqItem{Question: "q", Answer: "a"})
	now = now.Add(29 * time.Second)
	cached, err := e.Run(ctx, false)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, first.Checks, cached.Checks)
	assert.Equal(t, first.GeneratedAt, cached.GeneratedAt)
	assert.Equal(t, 1, store.Reads("ListFaq"))

	forced, err := e.Run(ctx, true)
	require.NoError(t, err)
	assert.False(t, forced.Cached)
	assert.Equal(t, LevelOk, find(t, forced, "faq_count").Level)
	assert.Equal(t, 2, store.Reads("ListFaq"))

	now = now.Add(31 * time.Second)
	_, err = e.Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Reads("ListFaq"))
}

func TestEngine_EndToEndDuplicateCanonical(t *testing.T) {
	store := repotest.New()
	store.SetSettings(model.GlobalSettings{CanonicalBaseURL: "https://acme.test", SitemapEnabled: true})
	store.AddProduct(model.Product{ID: "a", Slug: "a", Active: true})
	store.AddProduct(model.Product{ID: "b", Slug: "b", Active: true})
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		require.NoError(t, store.UpsertProductOverride(ctx, &model.ProductMetadataOverride{
			ProductID:      id,
			MetadataFields: model.MetadataFields{Canonical: "https://acme.test/products/a"},
		}))
	}

	r, err := newEngine(store).Run(ctx, false)
	require.NoError(t, err)
	c := find(t, r, "duplicate_canonicals")
	assert.Equal(t, LevelWarning, c.Level)
	assert.Equal(t, map[string][]string{"https://acme.test/products/a": {"product:a", "product:b"}}, c.Metadata["canonicals"])
}

func TestEngine_StoreFailure(t *testing.T) {
	store := repotest.New()
	store.FailOn("ListAnswers", errors.New("db down"))
	_, err := newEngine(store).Run(context.Background(), false)
	assert.Error(t, err)
}

// gatedStore blocks ListFaq until release is closed.
type gatedStore struct {
	*repotest.MemStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) ListFaq(ctx context.Context) ([]model.FaqItem, error) {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return s.MemStore.ListFaq(ctx)
}

func TestEngine_InvalidateFencesInFlightRun(t *testing.T) {
	mem := repotest.New()
	store := &gatedStore{MemStore: mem, entered: make(chan struct{}), release: make(chan struct{})}
	conf := config.SeoConfig{}
	conf.SetDefaults()
	e := NewEngine(store, conf, nil)
	ctx := context.Background()

	type result struct {
		r   *Report
		err error
	}
	done := make(chan result, 1)
	go func() {
		r, err := e.Run(ctx, false)
		done <- result{r, err}
	}()

	<-store.entered
	e.Invalidate()
	close(store.release)

	res := <-done
	require.NoError(t, res.err)
	require.NotNil(t, res.r)
	assert.Nil(t, e.entry.Load())

	next, err := e.Run(ctx, false)
	require.NoError(t, err)
	assert.False(t, next.Cached)
	assert.Equal(t, 2, mem.Reads("ListFaq"))

	cached, err := e.Run(ctx, false)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, 2, mem.Reads("ListFaq"))
}
