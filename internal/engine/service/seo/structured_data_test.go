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

	"github.com/bytedance/sonic"
	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(payloads []map[string]any) []string {
	out := make([]string, len(payloads))
	for i, p := range payloads {
		out[i], _ = p["@type"].(string)
	}
	return out
}

func TestBuildStructuredData_Always(t *testing.T) {
	out := BuildStructuredData(StructuredDataInput{
		Path:     "/about",
		Settings: &model.GlobalSettings{SiteName: "Acme", CanonicalBaseURL: "https://acme.test/"},
		Identity: &model.Identity{ShortDescription: "Tools", Language: "en"},
		Company:  &model.CompanyInfo{Logo: "/logo.png"},
		Faq:      []model.FaqItem{{Question: "q", Answer: "a"}},
	})
	require.Equal(t, []string{"Organization", "WebSite"}, types(out))
	assert.Equal(t, "Acme", out[0]["name"])
	assert.Equal(t, "https://acme.test", out[0]["url"])
	assert.Equal(t, "/logo.png", out[0]["logo"])
	assert.Equal(t, "Tools", out[0]["description"])
	assert.Equal(t, "en", out[1]["inLanguage"])
}

func TestBuildStructuredData_Faq(t *testing.T) {
	faq := []model.FaqItem{
		{Question: "second", Answer: "2", Order: 1},
		{Question: "first", Answer: "1", Order: 0},
	}
	for _, path := range []string{"/", "//", "/faq/"} {
		out := BuildStructuredData(StructuredDataInput{Path: path, FaqPath: "/faq", Faq: faq})
		require.Equal(t, []string{"Organization", "WebSite", "FAQPage"}, types(out), path)
		entities := out[2]["mainEntity"].([]any)
		require.Len(t, entities, 2)
		assert.Equal(t, "first", entities[0].(map[string]any)["name"])
	}

	out := BuildStructuredData(StructuredDataInput{Path: "/", FaqPath: "/faq"})
	assert.Len(t, out, 2)
	out = BuildStructuredData(StructuredDataInput{Path: "/pricing", FaqPath: "/faq", Faq: faq})
	assert.Len(t, out, 2)
}

func TestBuildStructuredData_Product(t *testing.T) {
	price := 19.5
	p := &model.Product{ID: "p1", Name: "Widget", ShortDescription: "A widget", Price: &price, Currency: "usd", Availability: "out_of_stock"}
	b := Resolve(ResolveInput{Path: "/products/widget", Content: ProductFallback(p), Kind: KindProduct,
		Settings: &model.GlobalSettings{CanonicalBaseURL: "https://acme.test"}})

	out := BuildStructuredData(StructuredDataInput{Path: "/products/widget", Product: p, Bundle: &b})
	require.Equal(t, "Product", out[2]["@type"])
	assert.Equal(t, "A widget", out[2]["description"])
	assert.Equal(t, "https://acme.test/products/widget", out[2]["url"])
	offer := out[2]["offers"].(map[string]any)
	assert.Equal(t, "19.50", offer["price"])
	assert.Equal(t, "USD", offer["priceCurrency"])
	assert.Equal(t, "https://schema.org/OutOfStock", offer["availability"])

	p.Price = nil
	out = BuildStructuredData(StructuredDataInput{Path: "/products/widget", Product: p, Bundle: &b})
	_, hasOffer := out[2]["offers"]
	assert.False(t, hasOffer)
	_, hasPrice := out[2]["price"]
	assert.False(t, hasPrice)
}

func TestBuildStructuredData_Override(t *testing.T) {
	one := BuildStructuredData(StructuredDataInput{Path: "/x", Override: &model.MetadataFields{
		StructuredData: []byte(`{"@type":"Event","name":"Launch"}`),
	}})
	assert.Equal(t, []string{"Organization", "WebSite", "Event"}, types(one))

	many := BuildStructuredData(StructuredDataInput{Path: "/x", Override: &model.MetadataFields{
		StructuredData: []byte(`[{"@type":"A"},{"@type":"B"}]`),
	}})
	assert.Equal(t, []string{"Organization", "WebSite", "A", "B"}, types(many))

	bad := BuildStructuredData(StructuredDataInput{Path: "/x", Override: &model.MetadataFields{
		StructuredData: []byte(`"just a string"`),
	}})
	assert.Len(t, bad, 2)
}

func TestAvailability(t *testing.T) {
	assert.Equal(t, "https://schema.org/InStock", Availability(""))
	assert.Equal(t, "https://schema.org/PreOrder", Availability("Pre-Order"))
	assert.Equal(t, "https://schema.org/InStock", Availability("whatever"))
	assert.Equal(t, "https://schema.org/SoldOut", Availability("https://schema.org/SoldOut"))
}

func TestEncodeJSONLD_EscapesScriptClose(t *testing.T) {
	s, err := EncodeJSONLD([]map[string]any{{"name": "</script><script>alert(1)</script>"}})
	require.NoError(t, err)
	assert.NotContains(t, s, "</script>")

	var back map[string]any
	require.NoError(t, sonic.UnmarshalString(s, &back))
	assert.True(t, strings.HasPrefix(back["name"].(string), "</script>"))
}
