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

package diagnostics

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/internal/engine/service/seo"
	"github.com/go-arcade/beacon/pkg/cache"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/go-arcade/beacon/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const tracerName = "github.com/go-arcade/beacon/diagnostics"

type reportEntry struct {
	report    *Report
	expiresAt time.Time
}

// Engine runs the checks and keeps the last report for a short TTL.
type Engine struct {
	store         repo.Store
	productPrefix string
	ttl           time.Duration
	metrics       *metrics.Metrics
	now           func() time.Time

	entry atomic.Pointer[reportEntry]
	// gen fences runs that started before an Invalidate.
	gen   atomic.Uint64
	group singleflight.Group
}

func NewEngine(store repo.Store, conf config.SeoConfig, m *metrics.Metrics) *Engine {
	return &Engine{
		store:         store,
		productPrefix: conf.ProductPathPrefix,
		ttl:           time.Duration(conf.DiagnosticsTTL) * time.Second,
		metrics:       m,
		now:           time.Now,
	}
}

// Run returns the cached report while it is fresh, unless force is set.
// A cached report has Cached set and the same checks as when generated.
func (e *Engine) Run(ctx context.Context, force bool) (*Report, error) {
	if !force {
		if ent := e.entry.Load(); ent != nil && e.now().Before(ent.expiresAt) {
			e.metrics.ObserveDiagnostics("hit")
			cached := *ent.report
			cached.Cached = true
			return &cached, nil
		}
	}
	key := "run"
	if force {
		key = "force"
	}
	v, err, _ := e.group.Do(fmt.Sprintf("%s:%d", key, e.gen.Load()), func() (any, error) {
		return e.run(ctx)
	})
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveDiagnostics("miss")
	return v.(*Report), nil
}

// Invalidate drops the cached report. A run already in flight still
// returns its report but does not cache it.
func (e *Engine) Invalidate() {
	e.gen.Add(1)
	e.entry.Store(nil)
}

func (e *Engine) run(ctx context.Context) (*Report, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "diagnostics.Run")
	defer span.End()

	gen := e.gen.Load()
	snap, err := e.snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		log.Errorw("failed to load diagnostics snapshot", "error", err)
		return nil, err
	}
	report := Evaluate(snap)
	report.GeneratedAt = e.now()
	if e.gen.Load() == gen {
		e.entry.Store(&reportEntry{report: report, expiresAt: report.GeneratedAt.Add(e.ttl)})
	}

	span.SetAttributes(
		attribute.Int("diagnostics.errors", report.Summary.Errors),
		attribute.Int("diagnostics.warnings", report.Summary.Warnings),
	)
	log.Infow("diagnostics run completed",
		"checks", len(report.Checks),
		"errors", report.Summary.Errors,
		"warnings", report.Summary.Warnings)
	return report, nil
}

func (e *Engine) snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		settings *model.GlobalSettings
		identity *model.Identity
		faq      []model.FaqItem
		answers  []model.AnswerBlock
		inv      *seo.Inventory
	)
	g, gctx := errgroup.WithContext(cache.WithRefresh(ctx))
	g.Go(func() (err error) {
		settings, err = e.store.GetSettings(gctx)
		return err
	})
	g.Go(func() (err error) {
		identity, err = e.store.GetIdentity(gctx)
		return err
	})
	g.Go(func() (err error) {
		faq, err = e.store.ListFaq(gctx)
		return err
	})
	g.Go(func() (err error) {
		answers, err = e.store.ListAnswers(gctx)
		return err
	})
	g.Go(func() (err error) {
		inv, err = seo.LoadInventory(gctx, e.store)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load diagnostics snapshot: %w", err)
	}
	return &Snapshot{
		Settings:          *settings,
		Identity:          *identity,
		FaqCount:          len(faq),
		AnswerCount:       len(answers),
		Inventory:         inv,
		ProductPathPrefix: e.productPrefix,
	}, nil
}

// Evaluate runs every check against snap. A check that panics reports an
// error-level finding instead of aborting the run.
func Evaluate(snap *Snapshot) *Report {
	if snap.Inventory == nil {
		snap.Inventory = &seo.Inventory{}
	}
	out := make([]Check, 0, len(checks))
	for _, def := range checks {
		out = append(out, runCheck(def, snap))
	}
	return &Report{Checks: out, Summary: Summarize(out)}
}

func runCheck(def checkDef, snap *Snapshot) (c Check) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("diagnostics check panicked", "check", def.id, "panic", r, "stack", string(debug.Stack()))
			c = Check{Level: LevelError, Message: fmt.Sprintf("The check could not run: %v", r)}
		}
		c.ID, c.Category, c.Title = def.id, def.category, def.title
	}()
	return def.run(snap)
}
