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
	"gorm.io/gorm"
)

func (s *MetadataStore) ListFaq(ctx context.Context) ([]model.FaqItem, error) {
	return listOrdered[model.FaqItem](s.conn(ctx))
}

func (s *MetadataStore) CreateFaq(ctx context.Context, item *model.FaqItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return withTx(ctx, s.db, s.inTx, func(tx *gorm.DB) error {
		return appendOrdered[model.FaqItem](tx, item)
	})
}

func (s *MetadataStore) UpdateFaq(ctx context.Context, item *model.FaqItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return updateOrdered[model.FaqItem](s.conn(ctx), "faq item", item, "question", "answer")
}

func (s *MetadataStore) DeleteFaq(ctx context.Context, id string) error {
	return withTx(ctx, s.db, s.inTx, func(tx *gorm.DB) error {
		return deleteOrdered[model.FaqItem](tx, "faq item", id)
	})
}

func (s *MetadataStore) ReorderFaq(ctx context.Context, ids []string) error {
	return withTx(ctx, s.db, s.inTx, func(tx *gorm.DB) error {
		return reorderOrdered[model.FaqItem](tx, "faq item", ids)
	})
}

func (s *MetadataStore) ReplaceFaq(ctx context.Context, items []model.FaqItem) error {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	return withTx(ctx, s.db, s.inTx, func(tx *gorm.DB) error {
		return replaceOrdered[model.FaqItem](tx, items)
	})
}

func (s *MetadataStore) ListAnswers(ctx context.Context) ([]model.AnswerBlock, error) {
	return listOrdered[model.AnswerBlock](s.conn(ctx))
}

func (s *MetadataStore) CreateAnswer(ctx context.Context, item *model.AnswerBlock) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return withTx(ctx, s.db, s.inTx, func(tx *gorm.DB) error {
		return appendOrdered[model.AnswerBlock](tx, item)
	})
}

func (s *MetadataStore) UpdateAnswer(ctx context.Context, item *model.AnswerBlock) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return updateOrdered[model.AnswerBlock](s.conn(ctx), "answer block", item,
		"question", "short_answer", "long_answer")
}

func (s *MetadataStore) DeleteAnswer(ctx context.Context, id string) error {
	return withTx(ctx, s.db, s.inTx, func(tx *gorm.DB) error {
		return deleteOrdered[model.AnswerBlock](tx, "answer block", id)
	})
}

func (s *MetadataStore) ReorderAnswers(ctx context.Context, ids []string) error {
	return withTx(ctx, s.db, s.inTx, func(tx *gorm.DB) error {
		return reorderOrdered[model.AnswerBlock](tx, "answer block", ids)
	})
}

func (s *MetadataStore) ReplaceAnswers(ctx context.Context, items []model.AnswerBlock) error {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	return withTx(ctx, s.db, s.inTx, func(tx *gorm.DB) error {
		return replaceOrdered[model.AnswerBlock](tx, items)
	})
}
