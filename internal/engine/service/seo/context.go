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
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo"
)

// ContextKind says which record a path resolved against.
type ContextKind string

const (
	ContextDefault ContextKind = "default"
	ContextPage    ContextKind = "page"
	ContextProduct ContextKind = "product"
)

// DescriptionLimit is the rune length product descriptions are cut to.
const DescriptionLimit = 160

// PageContext is the record a request path maps to.
type PageContext struct {
	Kind     ContextKind
	Page     *model.Page
	Product  *model.Product
	Override *model.MetadataFields
}

// ProductSlug returns the slug when path is prefix followed by a single
// segment.
func ProductSlug(path, prefix string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(path, prefix) {
		return "", false
	}
	slug := path[len(prefix):]
	if slug == "" || strings.Contains(slug, "/") {
		return "", false
	}
	return slug, true
}

// ProductPath is the detail route of a product.
func ProductPath(prefix, slug string) string {
	return prefix + slug
}

// MatchContext finds the active product or page behind path.
func MatchContext(ctx context.Context, store repo.Store, path, productPrefix string) (*PageContext, error) {
	path = NormalizePath(path)

	if slug, ok := ProductSlug(path, productPrefix); ok {
		p, err := store.GetProductBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("lookup product %q: %w", slug, err)
		}
		if p != nil && p.Active {
			o, err := store.GetProductOverride(ctx, p.ID)
			if err != nil {
				return nil, fmt.Errorf("lookup product override %s: %w", p.ID, err)
			}
			pc := &PageContext{Kind: ContextProduct, Product: p}
			if o != nil {
				pc.Override = &o.MetadataFields
			}
			return pc, nil
		}
	}

	page, err := store.GetPageByRoute(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("lookup page %q: %w", path, err)
	}
	if page != nil && page.Active {
		o, err := store.GetPageOverride(ctx, page.ID)
		if err != nil {
			return nil, fmt.Errorf("lookup page override %s: %w", page.ID, err)
		}
		pc := &PageContext{Kind: ContextPage, Page: page}
		if o != nil {
			pc.Override = &o.MetadataFields
		}
		return pc, nil
	}
	return &PageContext{Kind: ContextDefault}, nil
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	s = clean(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}

// ProductFallback is what a product contributes below its override.
func ProductFallback(p *model.Product) *ContentFallback {
	desc, _ := firstOf(clean(p.ShortDescription), clean(p.LongDescription))
	return &ContentFallback{
		Description: Truncate(desc, DescriptionLimit),
		Image:       p.Image,
		Index:       p.Index,
		Follow:      p.Follow,
	}
}

// Inventory is the content and override corpus used by the sitemap and by
// diagnostics.
type Inventory struct {
	Pages            []model.Page
	Products         []model.Product
	PageOverrides    map[string]*model.MetadataFields
	ProductOverrides map[string]*model.MetadataFields
}

func LoadInventory(ctx context.Context, store repo.Store) (*Inventory, error) {
	pages, err := store.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	products, err := store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	pageOverrides, err := store.ListPageOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("list page overrides: %w", err)
	}
	productOverrides, err := store.ListProductOverrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("list product overrides: %w", err)
	}
	inv := &Inventory{
		Pages:            pages,
		Products:         products,
		PageOverrides:    make(map[string]*model.MetadataFields, len(pageOverrides)),
		ProductOverrides: make(map[string]*model.MetadataFields, len(productOverrides)),
	}
	for i := range pageOverrides {
		inv.PageOverrides[pageOverrides[i].PageID] = &pageOverrides[i].MetadataFields
	}
	for i := range productOverrides {
		inv.ProductOverrides[productOverrides[i].ProductID] = &productOverrides[i].MetadataFields
	}
	return inv, nil
}

func (inv *Inventory) ActivePages() []model.Page {
	var out []model.Page
	for _, p := range inv.Pages {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

func (inv *Inventory) ActiveProducts() []model.Product {
	var out []model.Product
	for _, p := range inv.Products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// ResolvePage resolves an inventory page the way a request would.
func (inv *Inventory) ResolvePage(s *model.GlobalSettings, p *model.Page) Bundle {
	return Resolve(ResolveInput{
		Path:     p.Route,
		Override: inv.PageOverrides[p.ID],
		Settings: s,
		Kind:     KindWebsite,
	})
}

// ResolveProduct resolves an inventory product detail page.
func (inv *Inventory) ResolveProduct(s *model.GlobalSettings, p *model.Product, prefix string) Bundle {
	return Resolve(ResolveInput{
		Path:     ProductPath(prefix, p.Slug),
		Override: inv.ProductOverrides[p.ID],
		Settings: s,
		Content:  ProductFallback(p),
		Kind:     KindProduct,
	})
}
