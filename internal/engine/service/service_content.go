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

package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/log"
)

type invalidator interface {
	Invalidate()
}

// ContentService is the admin write path over the metadata store. Every
// successful write drops the cached globals and diagnostics.
type ContentService struct {
	store  repo.Store
	caches []invalidator
}

func NewContentService(store repo.Store, caches ...invalidator) *ContentService {
	return &ContentService{store: store, caches: caches}
}

func (s *ContentService) invalidate(context.Context) {
	for _, c := range s.caches {
		c.Invalidate()
	}
}

func (s *ContentService) changed(ctx context.Context, what string, err error) error {
	if err != nil {
		if _, ok := apierr.As(err); !ok {
			log.Errorw("content write failed", "target", what, "error", err)
			return fmt.Errorf("%s: %w", what, err)
		}
		return err
	}
	s.invalidate(ctx)
	log.Debugw("content updated", "target", what)
	return nil
}

func (s *ContentService) GetSettings(ctx context.Context) (*model.GlobalSettings, error) {
	return s.store.GetSettings(ctx)
}

// SaveSettings replaces every settings column.
func (s *ContentService) SaveSettings(ctx context.Context, in *model.GlobalSettings) (*model.GlobalSettings, error) {
	if base := strings.TrimSpace(in.CanonicalBaseURL); base != "" {
		u, err := url.Parse(base)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, apierr.BadRequest(apierr.CodeValidation, "canonicalBaseUrl must be an absolute http(s) URL")
		}
	}
	if err := s.changed(ctx, "settings", s.store.SaveSettings(ctx, in)); err != nil {
		return nil, err
	}
	return s.store.GetSettings(ctx)
}

func (s *ContentService) GetIdentity(ctx context.Context) (*model.Identity, error) {
	return s.store.GetIdentity(ctx)
}

func (s *ContentService) SaveIdentity(ctx context.Context, in *model.Identity) (*model.Identity, error) {
	if err := s.changed(ctx, "identity", s.store.SaveIdentity(ctx, in)); err != nil {
		return nil, err
	}
	return s.store.GetIdentity(ctx)
}

func (s *ContentService) GetCompany(ctx context.Context) (*model.CompanyInfo, error) {
	return s.store.GetCompany(ctx)
}

func (s *ContentService) SaveCompany(ctx context.Context, in *model.CompanyInfo) (*model.CompanyInfo, error) {
	if err := s.changed(ctx, "company", s.store.SaveCompany(ctx, in)); err != nil {
		return nil, err
	}
	return s.store.GetCompany(ctx)
}

func (s *ContentService) ListFaq(ctx context.Context) ([]model.FaqItem, error) {
	return s.store.ListFaq(ctx)
}

func (s *ContentService) CreateFaq(ctx context.Context, item *model.FaqItem) error {
	return s.changed(ctx, "faq", s.store.CreateFaq(ctx, item))
}

func (s *ContentService) UpdateFaq(ctx context.Context, item *model.FaqItem) error {
	return s.changed(ctx, "faq", s.store.UpdateFaq(ctx, item))
}

func (s *ContentService) DeleteFaq(ctx context.Context, id string) error {
	return s.changed(ctx, "faq", s.store.DeleteFaq(ctx, id))
}

func (s *ContentService) ReorderFaq(ctx context.Context, ids []string) ([]model.FaqItem, error) {
	if err := s.changed(ctx, "faq", s.store.ReorderFaq(ctx, ids)); err != nil {
		return nil, err
	}
	return s.store.ListFaq(ctx)
}

func (s *ContentService) ListAnswers(ctx context.Context) ([]model.AnswerBlock, error) {
	return s.store.ListAnswers(ctx)
}

func (s *ContentService) CreateAnswer(ctx context.Context, item *model.AnswerBlock) error {
	return s.changed(ctx, "answers", s.store.CreateAnswer(ctx, item))
}

func (s *ContentService) UpdateAnswer(ctx context.Context, item *model.AnswerBlock) error {
	return s.changed(ctx, "answers", s.store.UpdateAnswer(ctx, item))
}

func (s *ContentService) DeleteAnswer(ctx context.Context, id string) error {
	return s.changed(ctx, "answers", s.store.DeleteAnswer(ctx, id))
}

func (s *ContentService) ReorderAnswers(ctx context.Context, ids []string) ([]model.AnswerBlock, error) {
	if err := s.changed(ctx, "answers", s.store.ReorderAnswers(ctx, ids)); err != nil {
		return nil, err
	}
	return s.store.ListAnswers(ctx)
}

func (s *ContentService) ListPages(ctx context.Context) ([]model.Page, error) {
	return s.store.ListPages(ctx)
}

func (s *ContentService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.store.ListProducts(ctx)
}

// GetPageOverride fails with NOT_FOUND when the page has no override.
func (s *ContentService) GetPageOverride(ctx context.Context, pageID string) (*model.PageMetadataOverride, error) {
	o, err := s.store.GetPageOverride(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apierr.NotFound("no metadata override for page %q", pageID)
	}
	return o, nil
}

func (s *ContentService) UpsertPageOverride(ctx context.Context, o *model.PageMetadataOverride) (*model.PageMetadataOverride, error) {
	if err := s.changed(ctx, "page override", s.store.UpsertPageOverride(ctx, o)); err != nil {
		return nil, err
	}
	return s.GetPageOverride(ctx, o.PageID)
}

func (s *ContentService) DeletePageOverride(ctx context.Context, pageID string) error {
	return s.changed(ctx, "page override", s.store.DeletePageOverride(ctx, pageID))
}

func (s *ContentService) GetProductOverride(ctx context.Context, productID string) (*model.ProductMetadataOverride, error) {
	o, err := s.store.GetProductOverride(ctx, productID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apierr.NotFound("no metadata override for product %q", productID)
	}
	return o, nil
}

func (s *ContentService) UpsertProductOverride(ctx context.Context, o *model.ProductMetadataOverride) (*model.ProductMetadataOverride, error) {
	if err := s.changed(ctx, "product override", s.store.UpsertProductOverride(ctx, o)); err != nil {
		return nil, err
	}
	return s.GetProductOverride(ctx, o.ProductID)
}

func (s *ContentService) DeleteProductOverride(ctx context.Context, productID string) error {
	return s.changed(ctx, "product override", s.store.DeleteProductOverride(ctx, productID))
}
