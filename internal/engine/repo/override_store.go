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
	"errors"
	"strings"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/pkg/apierr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func findOne[T any](db *gorm.DB, query string, args ...any) (*T, error) {
	var out T
	err := db.Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func exists[T any](db *gorm.DB, id string) (bool, error) {
	var n int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func upsertOverride(db *gorm.DB, keyColumn string, rec any, columns []string) error {
	if len(columns) == 0 {
		columns = model.MetadataColumns
	}
	cols := append(append([]string{}, columns...), "updated_at")
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: keyColumn}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(rec).Error
}

func deleteByKey[T any](db *gorm.DB, keyColumn, kind, id string) error {
	res := db.Where(keyColumn+" = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("%s override %s not found", kind, id)
	}
	return nil
}

func (s *MetadataStore) ListPageOverrides(ctx context.Context) ([]model.PageMetadataOverride, error) {
	var out []model.PageMetadataOverride
	err := s.conn(ctx).Order("page_id ASC").Find(&out).Error
	return out, err
}

func (s *MetadataStore) GetPageOverride(ctx context.Context, pageID string) (*model.PageMetadataOverride, error) {
	return findOne[model.PageMetadataOverride](s.conn(ctx), "page_id = ?", pageID)
}

func (s *MetadataStore) UpsertPageOverride(ctx context.Context, o *model.PageMetadataOverride, columns ...string) error {
	db := s.conn(ctx)
	ok, err := exists[model.Page](db, o.PageID)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("page %s not found", o.PageID)
	}
	return upsertOverride(db, "page_id", o, columns)
}

func (s *MetadataStore) DeletePageOverride(ctx context.Context, pageID string) error {
	return deleteByKey[model.PageMetadataOverride](s.conn(ctx), "page_id", "page", pageID)
}

func (s *MetadataStore) ListProductOverrides(ctx context.Context) ([]model.ProductMetadataOverride, error) {
	var out []model.ProductMetadataOverride
	err := s.conn(ctx).Order("product_id ASC").Find(&out).Error
	return out, err
}

func (s *MetadataStore) GetProductOverride(ctx context.Context, productID string) (*model.ProductMetadataOverride, error) {
	return findOne[model.ProductMetadataOverride](s.conn(ctx), "product_id = ?", productID)
}

func (s *MetadataStore) UpsertProductOverride(ctx context.Context, o *model.ProductMetadataOverride, columns ...string) error {
	db := s.conn(ctx)
	ok, err := exists[model.Product](db, o.ProductID)
	if err != nil {
		return err
	}
	if !ok {
		return apierr.NotFound("product %s not found", o.ProductID)
	}
	return upsertOverride(db, "product_id", o, columns)
}

func (s *MetadataStore) DeleteProductOverride(ctx context.Context, productID string) error {
	return deleteByKey[model.ProductMetadataOverride](s.conn(ctx), "product_id", "product", productID)
}

func (s *MetadataStore) ListPages(ctx context.Context) ([]model.Page, error) {
	var out []model.Page
	err := s.conn(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (s *MetadataStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := s.conn(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// RouteCandidates lists the stored forms that match a request route, with
// and without a trailing slash. The root route also matches an empty one.
func RouteCandidates(route string) []string {
	route = strings.TrimRight(strings.TrimSpace(route), "/")
	if route == "" {
		return []string{"/", ""}
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return []string{route, route + "/"}
}

// GetPageByRoute matches route regardless of a trailing slash on either
// the stored or the requested form.
func (s *MetadataStore) GetPageByRoute(ctx context.Context, route string) (*model.Page, error) {
	return findOne[model.Page](s.conn(ctx).Order("id ASC"), "route IN ? AND active = ?", RouteCandidates(route), true)
}

func (s *MetadataStore) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return findOne[model.Product](s.conn(ctx).Order("id ASC"), "slug = ? AND active = ?", slug, true)
}
