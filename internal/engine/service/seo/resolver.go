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
	"strings"

	"github.com/go-arcade/beacon/internal/engine/model"
)

// Kind is the Open Graph content type of a resolved document.
type Kind string

const (
	KindWebsite Kind = "website"
	KindProduct Kind = "product"
)

// ContentFallback carries values the content item itself declares. They
// rank below an explicit override and above the global defaults.
type ContentFallback struct {
	Description string
	Image       string
	Index       *bool
	Follow      *bool
}

type ResolveInput struct {
	Path     string
	Override *model.MetadataFields
	Settings *model.GlobalSettings
	Content  *ContentFallback
	Kind     Kind
}

type OpenGraph struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Image       string  `json:"image,omitempty"`
	Type        Kind    `json:"type"`
	URL         string  `json:"url"`
	SiteName    string  `json:"siteName,omitempty"`
}

type Twitter struct {
	Card        string  `json:"card"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Image       string  `json:"image,omitempty"`
}

// Bundle is the effective metadata of one document.
type Bundle struct {
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	CanonicalURL string    `json:"canonicalUrl"`
	Robots       string    `json:"robots"`
	OG           OpenGraph `json:"og"`
	Twitter      Twitter   `json:"twitter"`
}

// NormalizePath strips trailing slashes; the root and the empty path
// become "/".
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// firstOf returns the first candidate that is not the zero value.
func firstOf[T comparable](cands ...T) (T, bool) {
	var zero T
	for _, c := range cands {
		if c != zero {
			return c, true
		}
	}
	return zero, false
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

// JoinURL appends path to base, dropping base's trailing slashes.
func JoinURL(base, path string) string {
	return strings.TrimRight(clean(base), "/") + path
}

// RobotsValue renders an index/follow pair.
func RobotsValue(index, follow bool) string {
	i, f := "index", "follow"
	if !index {
		i = "noindex"
	}
	if !follow {
		f = "nofollow"
	}
	return i + "," + f
}

// Resolve computes the metadata bundle for in. It has no side effects.
func Resolve(in ResolveInput) Bundle {
	o := in.Override
	if o == nil {
		o = &model.MetadataFields{}
	}
	s := in.Settings
	if s == nil {
		s = &model.GlobalSettings{}
	}
	c := in.Content
	if c == nil {
		c = &ContentFallback{}
	}
	kind := in.Kind
	if kind == "" {
		kind = KindWebsite
	}
	path := NormalizePath(in.Path)
	site := clean(s.SiteName)

	var title string
	if t := clean(o.Title); t != "" {
		title = t
		if site != "" {
			title = t + " | " + site
		}
	} else {
		title, _ = firstOf(clean(s.DefaultTitle), site)
	}

	var description *string
	if d, ok := firstOf(clean(o.Description), clean(c.Description), clean(s.DefaultDescription)); ok {
		description = &d
	}

	// A non-empty override canonical is emitted verbatim.
	canonical := o.Canonical
	if canonical == "" {
		canonical = JoinURL(s.CanonicalBaseURL, path)
	}

	index, _ := firstOf(o.Index, c.Index, s.DefaultRobotsIndex)
	follow, _ := firstOf(o.Follow, c.Follow, s.DefaultRobotsFollow)
	robots := RobotsValue(model.BoolOr(index, true), model.BoolOr(follow, true))

	image, _ := firstOf(clean(o.Image), clean(c.Image), clean(s.DefaultImage))
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}

	return Bundle{
		Title:        title,
		Description:  description,
		CanonicalURL: canonical,
		Robots:       robots,
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Image:       image,
			Type:        kind,
			URL:         canonical,
			SiteName:    site,
		},
		Twitter: Twitter{
			Card:        card,
			Title:       title,
			Description: description,
			Image:       image,
		},
	}
}

// Indexable reports whether a bundle allows indexing.
func (b Bundle) Indexable() bool {
	return !strings.HasPrefix(b.Robots, "noindex")
}
