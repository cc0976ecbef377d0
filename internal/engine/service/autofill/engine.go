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

package autofill

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/cache"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/go-arcade/beacon/pkg/metrics"
	"github.com/go-arcade/beacon/pkg/safe"
	"github.com/go-arcade/beacon/pkg/statemachine"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/go-arcade/beacon/autofill"

// Engine proposes default metadata and applies proposals atomically.
type Engine struct {
	store      repo.Store
	conf       config.SeoConfig
	metrics    *metrics.Metrics
	afterApply []func(context.Context)
}

func NewEngine(store repo.Store, conf config.SeoConfig, m *metrics.Metrics) *Engine {
	return &Engine{store: store, conf: conf, metrics: m}
}

// OnApplied registers fn to run after a committed apply that wrote
// something.
func (e *Engine) OnApplied(fn func(context.Context)) {
	e.afterApply = append(e.afterApply, fn)
}

type plan struct {
	current  State
	proposed State
	diff     []DiffEntry

	globalColumns   []string
	identityColumns []string
	faq             bool
	answers         bool
	pageColumns     map[string][]string
	productColumns  map[string][]string
	pageIDs         []string
	productIDs      []string
}

func (p *plan) empty() bool {
	return len(p.diff) == 0
}

// Preview computes the proposal without writing.
func (e *Engine) Preview(ctx context.Context, opts Options) (*Preview, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "autofill.Preview")
	defer span.End()

	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	sm := statemachine.NewAutofillStateMachine()
	if err := sm.Fire(statemachine.EventPreview); err != nil {
		return nil, err
	}

	p, err := e.compute(cache.WithRefresh(ctx), e.store, opts.Targets.orAll(), mode)
	if err != nil {
		span.RecordError(err)
		log.Errorw("autofill preview failed", "mode", mode, "error", err)
		return nil, err
	}
	if err := sm.Fire(statemachine.EventDiffReady); err != nil {
		return nil, err
	}
	state := sm.Current()
	if err := sm.Fire(statemachine.EventDone); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("autofill.mode", string(mode)), attribute.Int("autofill.diff", len(p.diff)))
	e.metrics.ObserveAutofill("preview", string(mode), string(state))
	return &Preview{Current: p.current, Proposed: p.proposed, Diff: p.diff, State: state}, nil
}

// Apply recomputes the proposal and writes every changed target in one
// transaction. OVERWRITE requires Confirm to be explicitly true.
func (e *Engine) Apply(ctx context.Context, opts Options) (*Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "autofill.Apply")
	defer span.End()

	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	sm := statemachine.NewAutofillStateMachine()
	if err := sm.Fire(statemachine.EventPreview); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("autofill.mode", string(mode)))

	if mode == ModeOverwrite && (opts.Confirm == nil || !*opts.Confirm) {
		_ = sm.Fire(statemachine.EventReject)
		e.metrics.ObserveAutofill("apply", string(mode), string(sm.Current()))
		log.Warnw("autofill overwrite rejected without confirmation")
		return nil, apierr.BadRequest(apierr.CodeConfirmationRequired,
			"OVERWRITE replaces existing metadata; resend with confirm=true")
	}

	var p *plan
	err = e.store.Transaction(ctx, func(tx repo.Store) error {
		var err error
		if p, err = e.compute(ctx, tx, opts.Targets.orAll(), mode); err != nil {
			return err
		}
		if err := sm.Fire(statemachine.EventDiffReady); err != nil {
			return err
		}
		if err := sm.Fire(statemachine.EventApply); err != nil {
			return err
		}
		return e.write(ctx, tx, p)
	})
	if err != nil {
		if sm.Is(statemachine.AutofillApplying) {
			_ = sm.Fire(statemachine.EventRollback)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.metrics.ObserveAutofill("apply", string(mode), string(sm.Current()))
		log.Errorw("autofill apply failed", "mode", mode, "state", sm.Current(), "error", err)
		return nil, err
	}
	if err := sm.Fire(statemachine.EventCommit); err != nil {
		return nil, err
	}

	if !p.empty() {
		for _, fn := range e.afterApply {
			if err := safe.Do(func() { fn(ctx) }); err != nil {
				log.Warnw("autofill hook failed", "error", err)
			}
		}
	}
	e.metrics.ObserveAutofill("apply", string(mode), string(sm.Current()))
	log.Infow("autofill applied", "mode", mode, "changes", len(p.diff))
	return &Result{
		Applied:  !p.empty(),
		Current:  p.current,
		Proposed: p.proposed,
		Diff:     p.diff,
		State:    sm.Current(),
	}, nil
}

func (e *Engine) write(ctx context.Context, tx repo.Store, p *plan) error {
	if len(p.globalColumns) > 0 {
		if err := tx.SaveSettings(ctx, p.proposed.Global, p.globalColumns...); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
	}
	if len(p.identityColumns) > 0 {
		if err := tx.SaveIdentity(ctx, p.proposed.Identity, p.identityColumns...); err != nil {
			return fmt.Errorf("save identity: %w", err)
		}
	}
	if p.faq {
		if err := tx.ReplaceFaq(ctx, p.proposed.Faq); err != nil {
			return fmt.Errorf("replace faq: %w", err)
		}
	}
	if p.answers {
		if err := tx.ReplaceAnswers(ctx, p.proposed.Answers); err != nil {
			return fmt.Errorf("replace answers: %w", err)
		}
	}
	for _, id := range p.pageIDs {
		cols, ok := p.pageColumns[id]
		if !ok {
			continue
		}
		o := &model.PageMetadataOverride{PageID: id, MetadataFields: *p.proposed.Pages[id]}
		if err := tx.UpsertPageOverride(ctx, o, cols...); err != nil {
			return fmt.Errorf("upsert page override %s: %w", id, err)
		}
	}
	for _, id := range p.productIDs {
		cols, ok := p.productColumns[id]
		if !ok {
			continue
		}
		o := &model.ProductMetadataOverride{ProductID: id, MetadataFields: *p.proposed.Products[id]}
		if err := tx.UpsertProductOverride(ctx, o, cols...); err != nil {
			return fmt.Errorf("upsert product override %s: %w", id, err)
		}
	}
	return nil
}

func (e *Engine) compute(ctx context.Context, store repo.Store, targets Targets, mode Mode) (*plan, error) {
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	identity, err := store.GetIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	company, err := store.GetCompany(ctx)
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}

	siteDefault := strings.TrimSpace(company.Name)
	if siteDefault == "" {
		siteDefault = strings.TrimSpace(e.conf.DefaultSiteName)
	}
	globalMode := ModeFillOnlyMissing
	if targets.Global {
		globalMode = mode
	}
	site := strings.TrimSpace(pickText(settings.SiteName, siteDefault, globalMode))
	base := strings.TrimSpace(pickText(settings.CanonicalBaseURL, strings.TrimSpace(e.conf.PublicBaseURL), globalMode))

	sd, err := loadSeed(site)
	if err != nil {
		return nil, err
	}
	p := &plan{pageColumns: map[string][]string{}, productColumns: map[string][]string{}}

	effectiveIdentity := identity
	if targets.Identity {
		next, diff, cols := merge(TargetIdentity, identityFields, identity, defaultIdentity(sd, e.conf), mode)
		p.current.Identity, p.proposed.Identity = identity, &next
		p.diff = append(p.diff, diff...)
		p.identityColumns = cols
		effectiveIdentity = &next
	}

	if targets.Global {
		def := defaultGlobal(site, base, effectiveIdentity, company)
		next, diff, cols := merge(TargetGlobal, globalFields, settings, def, mode)
		p.current.Global, p.proposed.Global = settings, &next
		// global diffs lead the list
		p.diff = append(diff, p.diff...)
		p.globalColumns = cols
	}

	if targets.Faq {
		cur, err := store.ListFaq(ctx)
		if err != nil {
			return nil, fmt.Errorf("list faq: %w", err)
		}
		next, diff, changed := mergeList[model.FaqItem](TargetFaq, cur, sd.Faq, mode)
		p.current.Faq, p.proposed.Faq, p.faq = cur, next, changed
		p.diff = append(p.diff, diff...)
	}

	if targets.Answers {
		cur, err := store.ListAnswers(ctx)
		if err != nil {
			return nil, fmt.Errorf("list answers: %w", err)
		}
		next, diff, changed := mergeList[model.AnswerBlock](TargetAnswers, cur, sd.Answers, mode)
		p.current.Answers, p.proposed.Answers, p.answers = cur, next, changed
		p.diff = append(p.diff, diff...)
	}

	if targets.Pages {
		if err := e.computePages(ctx, store, p, site, mode); err != nil {
			return nil, err
		}
	}
	if targets.Products {
		if err := e.computeProducts(ctx, store, p, site, mode); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (e *Engine) computePages(ctx context.Context, store repo.Store, p *plan, site string, mode Mode) error {
	pages, err := store.ListPages(ctx)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}
	overrides, err := store.ListPageOverrides(ctx)
	if err != nil {
		return fmt.Errorf("list page overrides: %w", err)
	}
	existing := make(map[string]*model.MetadataFields, len(overrides))
	for i := range overrides {
		existing[overrides[i].PageID] = &overrides[i].MetadataFields
	}

	p.current.Pages = map[string]*model.MetadataFields{}
	p.proposed.Pages = map[string]*model.MetadataFields{}
	for i := range pages {
		page := &pages[i]
		if !page.Active {
			continue
		}
		cur := existing[page.ID]
		if cur == nil {
			cur = &model.MetadataFields{}
		}
		next, diff, cols := merge("page:"+page.ID, metadataFields, cur, defaultPage(page, site), mode)
		p.current.Pages[page.ID], p.proposed.Pages[page.ID] = cur, &next
		p.pageIDs = append(p.pageIDs, page.ID)
		p.diff = append(p.diff, diff...)
		if len(cols) > 0 {
			p.pageColumns[page.ID] = cols
		}
	}
	return nil
}

func (e *Engine) computeProducts(ctx context.Context, store repo.Store, p *plan, site string, mode Mode) error {
	products, err := store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	overrides, err := store.ListProductOverrides(ctx)
	if err != nil {
		return fmt.Errorf("list product overrides: %w", err)
	}
	existing := make(map[string]*model.MetadataFields, len(overrides))
	for i := range overrides {
		existing[overrides[i].ProductID] = &overrides[i].MetadataFields
	}

	p.current.Products = map[string]*model.MetadataFields{}
	p.proposed.Products = map[string]*model.MetadataFields{}
	for i := range products {
		product := &products[i]
		if !product.Active {
			continue
		}
		cur := existing[product.ID]
		if cur == nil {
			cur = &model.MetadataFields{}
		}
		next, diff, cols := merge("product:"+product.ID, metadataFields, cur, defaultProduct(product, site), mode)
		p.current.Products[product.ID], p.proposed.Products[product.ID] = cur, &next
		p.productIDs = append(p.productIDs, product.ID)
		p.diff = append(p.diff, diff...)
		if len(cols) > 0 {
			p.productColumns[product.ID] = cols
		}
	}
	return nil
}
