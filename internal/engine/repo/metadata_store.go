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
	"time"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/cache"
	"github.com/go-arcade/beacon/pkg/database"
	"github.com/go-arcade/beacon/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultSingletonTTL = 5 * time.Minute
	// localSingletonTTL bounds how long an in-process copy can hide a
	// write made by another process.
	localSingletonTTL = time.Minute
)

// MetadataStore implements Store on gorm. Singleton reads go through a
// cache-aside layer outside transactions; invalidations issued inside a
// transaction are deferred until it commits.
type MetadataStore struct {
	db   *gorm.DB
	inTx bool
	// afterCommit collects invalidations while inTx.
	afterCommit *[]func(context.Context)

	settingsQ *cache.CachedQuery[*model.GlobalSettings]
	identityQ *cache.CachedQuery[*model.Identity]
	companyQ  *cache.CachedQuery[*model.CompanyInfo]
}

// NewMetadataStore wires the store. c may be nil to disable caching.
func NewMetadataStore(db database.IDatabase, c cache.ICache, conf cache.Config) *MetadataStore {
	ttl := conf.Expiration()
	if ttl <= 0 {
		ttl = defaultSingletonTTL
	}
	if conf.Mode != "redis" && ttl > localSingletonTTL {
		ttl = localSingletonTTL
	}
	prefix := conf.Prefix
	return &MetadataStore{
		db: db.Database(),
		settingsQ: cache.NewCachedQuery(c, cache.PrefixKey(prefix+"seo:settings"),
			cache.WithTTL[*model.GlobalSettings](ttl),
			cache.WithLogPrefix[*model.GlobalSettings]("[MetadataStore.settings]")),
		identityQ: cache.NewCachedQuery(c, cache.PrefixKey(prefix+"seo:identity"),
			cache.WithTTL[*model.Identity](ttl),
			cache.WithLogPrefix[*model.Identity]("[MetadataStore.identity]")),
		companyQ: cache.NewCachedQuery(c, cache.PrefixKey(prefix+"seo:company"),
			cache.WithTTL[*model.CompanyInfo](ttl),
			cache.WithLogPrefix[*model.CompanyInfo]("[MetadataStore.company]")),
	}
}

// AutoMigrate creates or updates every engine table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(model.Models()...)
}

func (s *MetadataStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *MetadataStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	var pending []func(context.Context)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := *s
		txStore.db = tx
		txStore.inTx = true
		txStore.afterCommit = &pending
		return fn(&txStore)
	})
	if err != nil {
		return err
	}
	for _, f := range pending {
		f(ctx)
	}
	return nil
}

func (s *MetadataStore) invalidate(ctx context.Context, f func(context.Context) error) {
	run := func(ctx context.Context) {
		if err := f(ctx); err != nil {
			log.Warnw("failed to invalidate singleton cache", "error", err)
		}
	}
	if s.inTx {
		*s.afterCommit = append(*s.afterCommit, run)
		return
	}
	run(ctx)
}

func loadSingleton[T any](db *gorm.DB, keyColumn string, def func() *T) (*T, error) {
	var out T
	err := db.Where(keyColumn+" = ?", model.SingletonKey).First(&out).Error
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(def()).Error; err != nil {
		return nil, err
	}
	if err := db.Where(keyColumn+" = ?", model.SingletonKey).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func upsertSingleton[T any](db *gorm.DB, keyColumn string, rec *T, columns []string) error {
	cols := append(append([]string{}, columns...), "updated_at")
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: keyColumn}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(rec).Error
}

func (s *MetadataStore) GetSettings(ctx context.Context) (*model.GlobalSettings, error) {
	load := func(ctx context.Context) (*model.GlobalSettings, error) {
		return loadSingleton(s.conn(ctx), "settings_key", model.NewGlobalSettings)
	}
	if s.inTx {
		return load(ctx)
	}
	return s.settingsQ.Get(ctx, load)
}

func (s *MetadataStore) SaveSettings(ctx context.Context, rec *model.GlobalSettings, columns ...string) error {
	if len(columns) == 0 {
		columns = model.GlobalSettingsColumns
	}
	rec.Key = model.SingletonKey
	if err := upsertSingleton(s.conn(ctx), "settings_key", rec, columns); err != nil {
		return err
	}
	s.invalidate(ctx, func(ctx context.Context) error { return s.settingsQ.Invalidate(ctx) })
	return nil
}

func (s *MetadataStore) GetIdentity(ctx context.Context) (*model.Identity, error) {
	load := func(ctx context.Context) (*model.Identity, error) {
		return loadSingleton(s.conn(ctx), "identity_key", model.NewIdentity)
	}
	if s.inTx {
		return load(ctx)
	}
	return s.identityQ.Get(ctx, load)
}

func (s *MetadataStore) SaveIdentity(ctx context.Context, rec *model.Identity, columns ...string) error {
	if !rec.Tone.Valid() {
		return apierr.BadRequest(apierr.CodeValidation, "unknown tone %q", rec.Tone)
	}
	if len(columns) == 0 {
		columns = model.IdentityColumns
	}
	rec.Key = model.SingletonKey
	if err := upsertSingleton(s.conn(ctx), "identity_key", rec, columns); err != nil {
		return err
	}
	s.invalidate(ctx, func(ctx context.Context) error { return s.identityQ.Invalidate(ctx) })
	return nil
}

func (s *MetadataStore) GetCompany(ctx context.Context) (*model.CompanyInfo, error) {
	load := func(ctx context.Context) (*model.CompanyInfo, error) {
		return loadSingleton(s.conn(ctx), "company_key", model.NewCompanyInfo)
	}
	if s.inTx {
		return load(ctx)
	}
	return s.companyQ.Get(ctx, load)
}

func (s *MetadataStore) SaveCompany(ctx context.Context, rec *model.CompanyInfo) error {
	rec.Key = model.SingletonKey
	if err := upsertSingleton(s.conn(ctx), "company_key", rec, model.CompanyInfoColumns); err != nil {
		return err
	}
	s.invalidate(ctx, func(ctx context.Context) error { return s.companyQ.Invalidate(ctx) })
	return nil
}
