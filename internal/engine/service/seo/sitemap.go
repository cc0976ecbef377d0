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
	"encoding/xml"
	"strings"
	"time"

	"github.com/go-arcade/beacon/internal/engine/model"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapURL struct {
	Loc     string `xml:"loc" json:"loc"`
	LastMod string `xml:"lastmod,omitempty" json:"lastMod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// BuildSitemap lists the home page, then active pages and products as the
// sitemap flags allow. Entries resolving to noindex and duplicate locations
// are dropped. The enabled flag is not consulted here.
func BuildSitemap(s *model.GlobalSettings, inv *Inventory, productPrefix string) []SitemapURL {
	seen := map[string]bool{}
	var out []SitemapURL
	add := func(b Bundle, lastMod string) {
		if !b.Indexable() || seen[b.CanonicalURL] {
			return
		}
		seen[b.CanonicalURL] = true
		out = append(out, SitemapURL{Loc: b.CanonicalURL, LastMod: lastMod})
	}

	home := JoinURL(s.CanonicalBaseURL, "/")
	seen[home] = true
	out = append(out, SitemapURL{Loc: home})

	if s.SitemapPages {
		for _, p := range inv.ActivePages() {
			if NormalizePath(p.Route) == "/" {
				continue
			}
			add(inv.ResolvePage(s, &p), lastMod(p.UpdatedAt))
		}
	}
	if s.SitemapProducts {
		for _, p := range inv.ActiveProducts() {
			add(inv.ResolveProduct(s, &p, productPrefix), lastMod(p.UpdatedAt))
		}
	}
	return out
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

// RenderSitemap encodes urls as a sitemap urlset document.
func RenderSitemap(urls []SitemapURL) ([]byte, error) {
	body, err := xml.MarshalIndent(urlSet{Xmlns: sitemapNamespace, URLs: urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// DefaultRobotsTxt allows everything and points at the sitemap.
func DefaultRobotsTxt(baseURL string) string {
	base := strings.TrimRight(clean(baseURL), "/")
	if base == "" {
		return "User-agent: *\nAllow: /\n"
	}
	return "User-agent: *\nAllow: /\n\nSitemap: " + base + "/sitemap.xml\n"
}
