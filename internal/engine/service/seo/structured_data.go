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
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/pkg/log"
)

const schemaContext = "https://schema.org"

type StructuredDataInput struct {
	Path     string
	FaqPath  string
	Settings *model.GlobalSettings
	Identity *model.Identity
	Company  *model.CompanyInfo
	Faq      []model.FaqItem
	// Product is set only on a product detail page.
	Product  *model.Product
	Bundle   *Bundle
	Override *model.MetadataFields
}

func putIf(m map[string]any, key, value string) {
	if v := clean(value); v != "" {
		m[key] = v
	}
}

// BuildStructuredData returns the JSON-LD payloads for one document.
func BuildStructuredData(in StructuredDataInput) []map[string]any {
	s := in.Settings
	if s == nil {
		s = &model.GlobalSettings{}
	}
	id := in.Identity
	if id == nil {
		id = &model.Identity{}
	}
	co := in.Company
	if co == nil {
		co = &model.CompanyInfo{}
	}
	base := strings.TrimRight(clean(s.CanonicalBaseURL), "/")
	site := clean(s.SiteName)

	org := map[string]any{"@context": schemaContext, "@type": "Organization"}
	name, _ := firstOf(clean(co.Name), site)
	putIf(org, "name", name)
	putIf(org, "legalName", co.LegalName)
	putIf(org, "url", base)
	putIf(org, "logo", co.Logo)
	putIf(org, "description", id.ShortDescription)
	putIf(org, "email", co.Email)
	putIf(org, "telephone", co.Phone)
	putIf(org, "address", co.Address)

	website := map[string]any{"@context": schemaContext, "@type": "WebSite"}
	putIf(website, "name", site)
	putIf(website, "url", base)
	putIf(website, "description", s.DefaultDescription)
	putIf(website, "inLanguage", id.Language)

	out := []map[string]any{org, website}

	path := NormalizePath(in.Path)
	faqPath := ""
	if in.FaqPath != "" {
		faqPath = NormalizePath(in.FaqPath)
	}
	if (path == "/" || path == faqPath) && len(in.Faq) > 0 {
		out = append(out, faqPayload(in.Faq))
	}

	if in.Product != nil {
		out = append(out, productPayload(in.Product, in.Bundle))
	}

	if in.Override != nil && model.HasStructuredData(in.Override.StructuredData) {
		out = append(out, overridePayloads(in.Override.StructuredData)...)
	}
	return out
}

func faqPayload(items []model.FaqItem) map[string]any {
	sorted := make([]model.FaqItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	entities := make([]any, 0, len(sorted))
	for _, f := range sorted {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

func productPayload(p *model.Product, b *Bundle) map[string]any {
	out := map[string]any{"@context": schemaContext, "@type": "Product"}
	putIf(out, "name", p.Name)
	putIf(out, "sku", p.ID)
	desc, _ := firstOf(clean(p.ShortDescription), clean(p.LongDescription))
	image := clean(p.Image)
	url := ""
	if b != nil {
		if b.Description != nil {
			desc = *b.Description
		}
		if b.OG.Image != "" {
			image = b.OG.Image
		}
		url = b.CanonicalURL
	}
	putIf(out, "description", desc)
	putIf(out, "image", image)
	putIf(out, "url", url)

	if p.Price != nil {
		offer := map[string]any{
			"@type":        "Offer",
			"price":        fmt.Sprintf("%.2f", *p.Price),
			"availability": Availability(p.Availability),
		}
		putIf(offer, "priceCurrency", strings.ToUpper(clean(p.Currency)))
		putIf(offer, "url", url)
		out["offers"] = offer
	}
	return out
}

var availability = map[string]string{
	"instock":             "InStock",
	"outofstock":          "OutOfStock",
	"preorder":            "PreOrder",
	"backorder":           "BackOrder",
	"discontinued":        "Discontinued",
	"limitedavailability": "LimitedAvailability",
	"soldout":             "SoldOut",
}

// Availability maps a product availability value to its schema.org URL.
// Unknown or empty values are treated as in stock.
func Availability(v string) string {
	v = clean(v)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(v))
	if name, ok := availability[key]; ok {
		return schemaContext + "/" + name
	}
	return schemaContext + "/InStock"
}

// overridePayloads accepts a single object or an array of objects.
func overridePayloads(raw []byte) []map[string]any {
	var one map[string]any
	if err := sonic.Unmarshal(raw, &one); err == nil {
		return []map[string]any{one}
	}
	var many []map[string]any
	if err := sonic.Unmarshal(raw, &many); err == nil {
		return many
	}
	log.Debugw("ignoring malformed structured data override", "size", len(raw))
	return nil
}

// EncodeJSONLD renders payloads as the body of an ld+json script. HTML
// significant characters are escaped so the body cannot close the tag.
func EncodeJSONLD(payloads []map[string]any) (string, error) {
	var v any = payloads
	if len(payloads) == 1 {
		v = payloads[0]
	}
	return sonic.ConfigStd.MarshalToString(v)
}
