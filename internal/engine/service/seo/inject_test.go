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
	"testing"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/stretchr/testify/assert"
)

const sampleTemplate = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Old title</title>
    <meta name="description" content="old">
    <meta name="robots" content="noindex">
    <link rel="canonical" href="https://old.test/">
    <meta property="og:title" content="old">
    <meta name="twitter:card" content="summary">
    <TITLE>Second</TITLE>
  </head>
  <body><svg><title>icon</title></svg><div id="root"></div></body>
</html>
`

func sampleBlock() string {
	desc := `Tools & "things" <cheap>`
	b := Bundle{
		Title:        "Pricing | Acme",
		Description:  &desc,
		CanonicalURL: "https://acme.test/pricing",
		Robots:       "index,follow",
		OG:           OpenGraph{Title: "Pricing | Acme", Description: &desc, Type: KindWebsite, URL: "https://acme.test/pricing"},
		Twitter:      Twitter{Card: "summary", Title: "Pricing | Acme", Description: &desc},
	}
	return RenderBlock(b, `{"@type":"Organization"}`)
}

func TestInject_ReplacesDiscoveryTags(t *testing.T) {
	out := Inject(sampleTemplate, sampleBlock())

	head := out[:strings.Index(out, "</head>")]
	assert.Equal(t, 1, strings.Count(strings.ToLower(head), "<title>"))
	assert.Equal(t, 1, strings.Count(out, `name="description"`))
	assert.Equal(t, 1, strings.Count(out, `rel="canonical"`))
	assert.NotContains(t, out, "old.test")
	assert.NotContains(t, out, "noindex")
	assert.Contains(t, out, "<svg><title>icon</title></svg>")
	assert.Contains(t, out, `<meta charset="utf-8">`)
	assert.True(t, strings.Index(out, "<head>") < strings.Index(out, markerStart))
	assert.Contains(t, out, `content="Tools &amp; &#34;things&#34; &lt;cheap&gt;"`)
}

func TestInject_Idempotent(t *testing.T) {
	block := sampleBlock()
	for _, doc := range []string{
		sampleTemplate,
		"<html><HEAD data-x=\"1\"><title>x</title></HEAD><body></body></html>",
		"<html><body>no head open</head></body></html>",
		"<p>fragment</p>",
	} {
		once := Inject(doc, block)
		assert.Equal(t, once, Inject(once, block), doc)
	}
}

func TestInject_Placement(t *testing.T) {
	block := sampleBlock()

	out := Inject("<html><body></body></head></html>", block)
	assert.True(t, strings.HasSuffix(out, block+"</head></html>"))

	out = Inject("<p>fragment</p>", block)
	assert.True(t, strings.HasPrefix(out, block))

	out = Inject("<html><header>x</header></html>", block)
	assert.True(t, strings.HasPrefix(out, block), "header must not match the head tag")
}

func TestInject_OverrideReplacesPreviousBlock(t *testing.T) {
	first := Inject(sampleTemplate, sampleBlock())
	b := Resolve(ResolveInput{Path: "/", Settings: &model.GlobalSettings{SiteName: "Other"}})
	second := Inject(first, RenderBlock(b, ""))

	assert.Equal(t, 1, strings.Count(second, markerStart))
	assert.Contains(t, second, "<title>Other</title>")
	assert.NotContains(t, second, "Pricing")
}
