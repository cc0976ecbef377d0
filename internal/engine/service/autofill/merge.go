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

package autofill

import (
	"strings"

	"github.com/go-arcade/beacon/internal/engine/model"
)

// field describes one mergeable column of T. Exactly one accessor is set:
// text for strings, flag for optional booleans and toggle for plain
// booleans.
type field[T any] struct {
	name   string
	column string
	text   func(*T) *string
	flag   func(*T) **bool
	toggle func(*T) *bool
}

func textField[T any](name, column string, f func(*T) *string) field[T] {
	return field[T]{name: name, column: column, text: f}
}

func flagField[T any](name, column string, f func(*T) **bool) field[T] {
	return field[T]{name: name, column: column, flag: f}
}

func toggleField[T any](name, column string, f func(*T) *bool) field[T] {
	return field[T]{name: name, column: column, toggle: f}
}

var globalFields = []field[model.GlobalSettings]{
	textField("siteName", "site_name", func(s *model.GlobalSettings) *string { return &s.SiteName }),
	textField("defaultTitle", "default_title", func(s *model.GlobalSettings) *string { return &s.DefaultTitle }),
	textField("defaultDescription", "default_description", func(s *model.GlobalSettings) *string { return &s.DefaultDescription }),
	textField("defaultImage", "default_image", func(s *model.GlobalSettings) *string { return &s.DefaultImage }),
	textField("canonicalBaseUrl", "canonical_base_url", func(s *model.GlobalSettings) *string { return &s.CanonicalBaseURL }),
	flagField("defaultRobotsIndex", "default_robots_index", func(s *model.GlobalSettings) **bool { return &s.DefaultRobotsIndex }),
	flagField("defaultRobotsFollow", "default_robots_follow", func(s *model.GlobalSettings) **bool { return &s.DefaultRobotsFollow }),
	textField("robotsTxt", "robots_txt", func(s *model.GlobalSettings) *string { return &s.RobotsTxt }),
	toggleField("sitemapEnabled", "sitemap_enabled", func(s *model.GlobalSettings) *bool { return &s.SitemapEnabled }),
	toggleField("sitemapPages", "sitemap_pages", func(s *model.GlobalSettings) *bool { return &s.SitemapPages }),
	toggleField("sitemapProducts", "sitemap_products", func(s *model.GlobalSettings) *bool { return &s.SitemapProducts }),
	toggleField("sitemapArticles", "sitemap_articles", func(s *model.GlobalSettings) *bool { return &s.SitemapArticles }),
}

var identityFields = []field[model.Identity]{
	textField("shortDescription", "short_description", func(i *model.Identity) *string { return &i.ShortDescription }),
	textField("longDescription", "long_description", func(i *model.Identity) *string { return &i.LongDescription }),
	textField("targetAudience", "target_audience", func(i *model.Identity) *string { return &i.TargetAudience }),
	textField("positioning", "positioning", func(i *model.Identity) *string { return &i.Positioning }),
	textField("differentiation", "differentiation", func(i *model.Identity) *string { return &i.Differentiation }),
	textField("tone", "tone", func(i *model.Identity) *string { return (*string)(&i.Tone) }),
	textField("language", "language", func(i *model.Identity) *string { return &i.Language }),
}

var metadataFields = []field[model.MetadataFields]{
	textField("title", "title", func(m *model.MetadataFields) *string { return &m.Title }),
	textField("description", "description", func(m *model.MetadataFields) *string { return &m.Description }),
	textField("image", "image", func(m *model.MetadataFields) *string { return &m.Image }),
}

// pickText keeps a non-empty current value in FILL_ONLY_MISSING mode. An
// empty default never replaces anything.
func pickText(cur, def string, mode Mode) string {
	if def == "" {
		return cur
	}
	if mode == ModeFillOnlyMissing && strings.TrimSpace(cur) != "" {
		return cur
	}
	return def
}

func flagValue(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func sameFlag(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// merge returns cur with defaults from def applied under mode, the diff
// entries for target and the columns that changed.
func merge[T any](target string, fields []field[T], cur, def *T, mode Mode) (T, []DiffEntry, []string) {
	out := *cur
	var (
		diff    []DiffEntry
		columns []string
	)
	changed := func(f field[T], before, after any) {
		diff = append(diff, DiffEntry{Target: target, Field: f.name, Before: before, After: after})
		columns = append(columns, f.column)
	}
	for _, f := range fields {
		switch {
		case f.text != nil:
			c := *f.text(cur)
			next := pickText(c, *f.text(def), mode)
			if next != c {
				*f.text(&out) = next
				changed(f, c, next)
			}
		case f.flag != nil:
			c, d := *f.flag(cur), *f.flag(def)
			next := c
			if d != nil && (mode == ModeOverwrite || c == nil) {
				next = d
			}
			if !sameFlag(c, next) {
				*f.flag(&out) = next
				changed(f, flagValue(c), flagValue(next))
			}
		case f.toggle != nil:
			c := *f.toggle(cur)
			next := c
			if mode == ModeOverwrite {
				next = *f.toggle(def)
			}
			if next != c {
				*f.toggle(&out) = next
				changed(f, c, next)
			}
		}
	}
	return out, diff, columns
}

type sameContenter[T any] interface {
	*T
	SameContent(*T) bool
}

func sameList[T any, P sameContenter[T]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !P(&a[i]).SameContent(&b[i]) {
			return false
		}
	}
	return true
}

// mergeList keeps a non-empty current list in FILL_ONLY_MISSING mode and
// otherwise proposes the seed. It reports whether the list changes.
func mergeList[T any, P sameContenter[T]](target string, cur, seed []T, mode Mode) ([]T, []DiffEntry, bool) {
	if mode == ModeFillOnlyMissing && len(cur) > 0 {
		return cur, nil, false
	}
	if sameList[T, P](cur, seed) {
		return cur, nil, false
	}
	return seed, []DiffEntry{{Target: target, Field: "count", Before: len(cur), After: len(seed)}}, true
}
