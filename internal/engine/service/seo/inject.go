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
	"html"
	"regexp"
	"strings"
)

const (
	markerStart = "<!-- seo:start -->"
	markerEnd   = "<!-- seo:end -->"
)

var markerBlock = regexp.MustCompile(`(?s)\n?` + regexp.QuoteMeta(markerStart) + `.*?` + regexp.QuoteMeta(markerEnd))

// tagPatterns consume the tag's indentation and one trailing newline.
var tagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)[ \t]*<title(?:\s[^>]*)?>.*?</title\s*>\n?`),
	regexp.MustCompile(`(?i)[ \t]*<meta\s[^>]*\bname\s*=\s*["'](?:description|robots)["'][^>]*>\n?`),
	regexp.MustCompile(`(?i)[ \t]*<link\s[^>]*\brel\s*=\s*["']canonical["'][^>]*>\n?`),
	regexp.MustCompile(`(?i)[ \t]*<meta\s[^>]*\b(?:property|name)\s*=\s*["'](?:og|twitter):[^"']*["'][^>]*>\n?`),
}

var (
	headOpen  = regexp.MustCompile(`(?i)<head(?:\s[^>]*)?>`)
	headClose = regexp.MustCompile(`(?i)</head\s*>`)
)

// Strip removes a previously generated block anywhere in doc, then the
// discovery tags Inject manages. Tags are only removed inside the head
// element when doc has one, so inline SVG titles survive.
func Strip(doc string) string {
	doc = markerBlock.ReplaceAllString(doc, "")
	if open := headOpen.FindStringIndex(doc); open != nil {
		if end := headClose.FindStringIndex(doc[open[1]:]); end != nil {
			from, to := open[1], open[1]+end[0]
			return doc[:from] + stripTags(doc[from:to]) + doc[to:]
		}
	}
	return stripTags(doc)
}

func stripTags(s string) string {
	for _, re := range tagPatterns {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

// Inject strips existing discovery tags from doc and inserts block after
// the opening head tag, before the closing one, or at the very top.
// Inject(Inject(doc, b), b) == Inject(doc, b).
func Inject(doc, block string) string {
	doc = Strip(doc)
	if loc := headOpen.FindStringIndex(doc); loc != nil {
		return doc[:loc[1]] + block + doc[loc[1]:]
	}
	if loc := headClose.FindStringIndex(doc); loc != nil {
		return doc[:loc[0]] + block + doc[loc[0]:]
	}
	return block + doc
}

// RenderBlock builds the marked head block for b and the encoded JSON-LD.
// The block starts with a newline and ends with the end marker.
func RenderBlock(b Bundle, jsonLD string) string {
	var sb strings.Builder
	e := html.EscapeString

	sb.WriteString("\n" + markerStart + "\n")
	sb.WriteString("<title>" + e(b.Title) + "</title>\n")
	if b.Description != nil {
		sb.WriteString(`<meta name="description" content="` + e(*b.Description) + "\">\n")
	}
	sb.WriteString(`<meta name="robots" content="` + e(b.Robots) + "\">\n")
	if b.CanonicalURL != "" {
		sb.WriteString(`<link rel="canonical" href="` + e(b.CanonicalURL) + "\">\n")
	}

	meta := func(attr, key, value string) {
		if value == "" {
			return
		}
		sb.WriteString(`<meta ` + attr + `="` + key + `" content="` + e(value) + "\">\n")
	}
	meta("property", "og:title", b.OG.Title)
	if b.OG.Description != nil {
		meta("property", "og:description", *b.OG.Description)
	}
	meta("property", "og:image", b.OG.Image)
	meta("property", "og:type", string(b.OG.Type))
	meta("property", "og:url", b.OG.URL)
	meta("property", "og:site_name", b.OG.SiteName)
	meta("name", "twitter:card", b.Twitter.Card)
	meta("name", "twitter:title", b.Twitter.Title)
	if b.Twitter.Description != nil {
		meta("name", "twitter:description", *b.Twitter.Description)
	}
	meta("name", "twitter:image", b.Twitter.Image)

	if jsonLD != "" {
		sb.WriteString(`<script type="application/ld+json">` + jsonLD + "</script>\n")
	}
	sb.WriteString(markerEnd)
	return sb.String()
}
