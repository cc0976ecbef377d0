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
	"strings"

	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/log"
)

// Resolution is the full metadata outcome for one path.
type Resolution struct {
	Path           string           `json:"path"`
	Context        ContextKind      `json:"context"`
	PageID         string           `json:"pageId,omitempty"`
	ProductID      string           `json:"productId,omitempty"`
	Bundle         Bundle           `json:"bundle"`
	StructuredData []map[string]any `json:"structuredData"`
}

type Service struct {
	store   repo.Store
	globals *GlobalsCache
	conf    config.SeoConfig
}

func NewService(store repo.Store, globals *GlobalsCache, conf config.SeoConfig) *Service {
	return &Service{store: store, globals: globals, conf: conf}
}

// Globals exposes the cache so writers can invalidate it.
func (s *Service) Globals() *GlobalsCache {
	return s.globals
}

func (s *Service) ProductPathPrefix() string {
	return s.conf.ProductPathPrefix
}

// ResolvePath computes the bundle and structured data for path.
func (s *Service) ResolvePath(ctx context.Context, path string) (*Resolution, error) {
	path = NormalizePath(path)
	g, err := s.globals.GetOrRefresh(ctx)
	if err != nil {
		return nil, err
	}
	pc, err := MatchContext(ctx, s.store, path, s.conf.ProductPathPrefix)
	if err != nil {
		return nil, err
	}

	in := ResolveInput{Path: path, Override: pc.Override, Settings: &g.Settings, Kind: KindWebsite}
	res := &Resolution{Path: path, Context: pc.Kind}
	switch pc.Kind {
	case ContextProduct:
		in.Kind = KindProduct
		in.Content = ProductFallback(pc.Product)
		res.ProductID = pc.Product.ID
	case ContextPage:
		res.PageID = pc.Page.ID
	}
	res.Bundle = Resolve(in)
	res.StructuredData = BuildStructuredData(StructuredDataInput{
		Path:     path,
		FaqPath:  s.conf.FaqPath,
		Settings: &g.Settings,
		Identity: &g.Identity,
		Company:  &g.Company,
		Faq:      g.Faq,
		Product:  pc.Product,
		Bundle:   &res.Bundle,
		Override: pc.Override,
	})
	return res, nil
}

// SitemapURLs lists sitemap entries, failing with NOT_FOUND when the
// sitemap is disabled.
func (s *Service) SitemapURLs(ctx context.Context) ([]SitemapURL, error) {
	g, err := s.globals.GetOrRefresh(ctx)
	if err != nil {
		return nil, err
	}
	if !g.Settings.SitemapEnabled {
		return nil, apierr.NotFound("sitemap is disabled")
	}
	inv, err := LoadInventory(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return BuildSitemap(&g.Settings, inv, s.conf.ProductPathPrefix), nil
}

// Sitemap renders the sitemap document.
func (s *Service) Sitemap(ctx context.Context) ([]byte, error) {
	urls, err := s.SitemapURLs(ctx)
	if err != nil {
		return nil, err
	}
	log.Debugw("sitemap rendered", "urls", len(urls))
	return RenderSitemap(urls)
}

// RobotsTxt returns the configured robots file or the default one.
func (s *Service) RobotsTxt(ctx context.Context) (string, error) {
	g, err := s.globals.GetOrRefresh(ctx)
	if err != nil {
		return "", err
	}
	if body := g.Settings.RobotsTxt; strings.TrimSpace(body) != "" {
		return body, nil
	}
	base, _ := firstOf(clean(g.Settings.CanonicalBaseURL), clean(s.conf.PublicBaseURL))
	return DefaultRobotsTxt(base), nil
}
