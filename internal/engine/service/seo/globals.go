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
	"sync/atomic"
	"time"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/pkg/cache"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/go-arcade/beacon/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// Globals is the site-wide snapshot every render reads. A snapshot is never
// mutated after it is published.
type Globals struct {
	Settings model.GlobalSettings
	Identity model.Identity
	Company  model.CompanyInfo
	Faq      []model.FaqItem
	LoadedAt time.Time
}

type globalsEntry struct {
	value     *Globals
	expiresAt time.Time
}

// GlobalsCache holds one Globals snapshot with a TTL. Readers see either
// the previous or the next complete snapshot; an expired read reloads
// synchronously, and concurrent reloads collapse into one store read.
type GlobalsCache struct {
	store   repo.Store
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time

	entry atomic.Pointer[globalsEntry]
	gen   atomic.Uint64
	group singleflight.Group
}

func NewGlobalsCache(store repo.Store, ttl time.Duration, m *metrics.Metrics) *GlobalsCache {
	return &GlobalsCache{store: store, ttl: ttl, metrics: m, now: time.Now}
}

func (g *GlobalsCache) fresh() *Globals {
	if e := g.entry.Load(); e != nil && g.now().Before(e.expiresAt) {
		return e.value
	}
	return nil
}

// GetOrRefresh returns the cached snapshot, reloading it when expired.
func (g *GlobalsCache) GetOrRefresh(ctx context.Context) (*Globals, error) {
	if v := g.fresh(); v != nil {
		return v, nil
	}
	gen := g.gen.Load()
	v, err, _ := g.group.Do(fmt.Sprintf("globals:%d", gen), func() (any, error) {
		if v := g.fresh(); v != nil {
			return v, nil
		}
		val, err := g.load(ctx)
		if err != nil {
			g.metrics.ObserveGlobalsRefresh("error")
			return nil, err
		}
		g.metrics.ObserveGlobalsRefresh("ok")
		if g.gen.Load() == gen {
			g.entry.Store(&globalsEntry{value: val, expiresAt: val.LoadedAt.Add(g.ttl)})
		}
		return val, nil
	})
	if err != nil {
		log.Warnw("failed to refresh globals snapshot", "error", err)
		return nil, err
	}
	return v.(*Globals), nil
}

// Invalidate drops the snapshot; the next read reloads it.
func (g *GlobalsCache) Invalidate() {
	g.gen.Add(1)
	g.entry.Store(nil)
}

// load reads past the store's singleton cache so a snapshot never outlives
// a write made by another process by more than one TTL.
func (g *GlobalsCache) load(ctx context.Context) (*Globals, error) {
	ctx = cache.WithRefresh(ctx)
	settings, err := g.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	identity, err := g.store.GetIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	company, err := g.store.GetCompany(ctx)
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}
	faq, err := g.store.ListFaq(ctx)
	if err != nil {
		return nil, fmt.Errorf("load faq: %w", err)
	}
	return &Globals{
		Settings: *settings,
		Identity: *identity,
		Company:  *company,
		Faq:      faq,
		LoadedAt: g.now(),
	}, nil
}
