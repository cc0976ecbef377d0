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
	"fmt"

	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// orderedRecord is implemented by list records with a dense sort order.
type orderedRecord[T any] interface {
	*T
	GetID() string
	SetID(string)
	SetOrder(int)
	GetOrder() int
}

func listOrdered[T any, P orderedRecord[T]](db *gorm.DB) ([]T, error) {
	var out []T
	if err := db.Order("sort_order ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// appendOrdered inserts item at the end of the list.
func appendOrdered[T any, P orderedRecord[T]](db *gorm.DB, item P) error {
	var n int64
	if err := db.Model(new(T)).Count(&n).Error; err != nil {
		return err
	}
	if item.GetID() == "" {
		item.SetID(ulid.Make().String())
	}
	item.SetOrder(int(n))
	return db.Create(item).Error
}

// updateOrdered writes columns of item, failing with NOT_FOUND when absent.
func updateOrdered[T any, P orderedRecord[T]](db *gorm.DB, kind string, item P, columns ...string) error {
	var existing T
	err := db.Where("id = ?", item.GetID()).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierr.NotFound("%s %s not found", kind, item.GetID())
	}
	if err != nil {
		return err
	}
	item.SetOrder(P(&existing).GetOrder())
	columns = append(columns, "updated_at")
	return db.Model(P(&existing)).Select(columns).Updates(item).Error
}

// deleteOrdered removes one record and closes the gap it leaves.
func deleteOrdered[T any, P orderedRecord[T]](db *gorm.DB, kind, id string) error {
	res := db.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("%s %s not found", kind, id)
	}
	return renumber[T, P](db)
}

func renumber[T any, P orderedRecord[T]](db *gorm.DB) error {
	items, err := listOrdered[T, P](db)
	if err != nil {
		return err
	}
	for i := range items {
		p := P(&items[i])
		if p.GetOrder() == i {
			continue
		}
		if err := db.Model(new(T)).Where("id = ?", p.GetID()).Update("sort_order", i).Error; err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrder checks that ids is a permutation of existing. It returns
// DUPLICATE_IDS, NOT_FOUND or INCOMPLETE_ORDER, in that precedence.
func ValidateOrder(kind string, ids, existing []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return apierr.BadRequest(apierr.CodeDuplicateIDs, "duplicate %s id %q in order", kind, id)
		}
		seen[id] = struct{}{}
	}
	known := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return apierr.NotFound("%s %s not found", kind, id)
		}
	}
	if len(ids) != len(existing) {
		return apierr.BadRequest(apierr.CodeIncompleteOrder,
			"order must list all %d %s ids, got %d", len(existing), kind, len(ids))
	}
	return nil
}

func reorderOrdered[T any, P orderedRecord[T]](db *gorm.DB, kind string, ids []string) error {
	items, err := listOrdered[T, P](db)
	if err != nil {
		return err
	}
	existing := make([]string, len(items))
	for i := range items {
		existing[i] = P(&items[i]).GetID()
	}
	if err := ValidateOrder(kind, ids, existing); err != nil {
		return err
	}
	for i, id := range ids {
		if err := db.Model(new(T)).Where("id = ?", id).Update("sort_order", i).Error; err != nil {
			return fmt.Errorf("reorder %s: %w", kind, err)
		}
	}
	return nil
}

// replaceOrdered deletes every record and inserts items with order 0..n-1.
func replaceOrdered[T any, P orderedRecord[T]](db *gorm.DB, items []T) error {
	if err := db.Where("1 = 1").Delete(new(T)).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		p := P(&items[i])
		if p.GetID() == "" {
			p.SetID(ulid.Make().String())
		}
		p.SetOrder(i)
	}
	return db.Create(&items).Error
}

// withTx runs fn in a transaction unless db already is one.
func withTx(ctx context.Context, db *gorm.DB, inTx bool, fn func(tx *gorm.DB) error) error {
	if inTx {
		return fn(db.WithContext(ctx))
	}
	return db.WithContext(ctx).Transaction(fn)
}
