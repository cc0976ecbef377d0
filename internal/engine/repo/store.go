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

package repo

import (
	"context"

	"github.com/go-arcade/beacon/internal/engine/model"
)

// Store is the metadata persistence surface used by the engine.
//
// Get* on a singleton never fails with not-found: the record is created
// with defaults on first read. Get*Override, GetPageByRoute and
// GetProductBySlug return (nil, nil) when nothing matches. Mutations on a
// missing record fail with an apierr NOT_FOUND error.
type Store interface {
	GetSettings(ctx context.Context) (*model.GlobalSettings, error)
	SaveSettings(ctx context.Context, s *model.GlobalSettings, columns ...string) error
	GetIdentity(ctx context.Context) (*model.Identity, error)
	SaveIdentity(ctx context.Context, i *model.Identity, columns ...string) error
	GetCompany(ctx context.Context) (*model.CompanyInfo, error)
	SaveCompany(ctx context.Context, c *model.CompanyInfo) error

	ListFaq(ctx context.Context) ([]model.FaqItem, error)
	CreateFaq(ctx context.Context, item *model.FaqItem) error
	UpdateFaq(ctx context.Context, item *model.FaqItem) error
	DeleteFaq(ctx context.Context, id string) error
	ReorderFaq(ctx context.Context, ids []string) error
	ReplaceFaq(ctx context.Context, items []model.FaqItem) error

	ListAnswers(ctx context.Context) ([]model.AnswerBlock, error)
	CreateAnswer(ctx context.Context, item *model.AnswerBlock) error
	UpdateAnswer(ctx context.Context, item *model.AnswerBlock) error
	DeleteAnswer(ctx context.Context, id string) error
	ReorderAnswers(ctx context.Context, ids []string) error
	ReplaceAnswers(ctx context.Context, items []model.AnswerBlock) error

	ListPageOverrides(ctx context.Context) ([]model.PageMetadataOverride, error)
	GetPageOverride(ctx context.Context, pageID string) (*model.PageMetadataOverride, error)
	// UpsertPageOverride writes the given columns, or every metadata column
	// when none are named.
	UpsertPageOverride(ctx context.Context, o *model.PageMetadataOverride, columns ...string) error
	DeletePageOverride(ctx context.Context, pageID string) error

	ListProductOverrides(ctx context.Context) ([]model.ProductMetadataOverride, error)
	GetProductOverride(ctx context.Context, productID string) (*model.ProductMetadataOverride, error)
	UpsertProductOverride(ctx context.Context, o *model.ProductMetadataOverride, columns ...string) error
	DeleteProductOverride(ctx context.Context, productID string) error

	ListPages(ctx context.Context) ([]model.Page, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetPageByRoute(ctx context.Context, route string) (*model.Page, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Transaction runs fn against a Store bound to one database
	// transaction. fn's error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
