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

// Package repotest provides an in-memory repo.Store for service tests.
package repotest

import (
	"context"
	"reflect"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm/schema"
)

type state struct {
	settings         model.GlobalSettings
	identity         model.Identity
	company          model.CompanyInfo
	faq              []model.FaqItem
	answers          []model.AnswerBlock
	pageOverrides    map[string]model.PageMetadataOverride
	productOverrides map[string]model.ProductMetadataOverride
	pages            []model.Page
	products         []model.Product
}

func (s *state) clone() *state {
	c := *s
	c.faq = slices.Clone(s.faq)
	c.answers = slices.Clone(s.answers)
	c.pages = slices.Clone(s.pages)
	c.products = slices.Clone(s.products)
	c.pageOverrides = make(map[string]model.PageMetadataOverride, len(s.pageOverrides))
	for k, v := range s.pageOverrides {
		c.pageOverrides[k] = v
	}
	c.productOverrides = make(map[string]model.ProductMetadataOverride, len(s.productOverrides))
	for k, v := range s.productOverrides {
		c.productOverrides[k] = v
	}
	return &c
}

// MemStore is a repo.Store kept in memory. Transactions run against a copy
// that replaces the live state only when fn succeeds.
type MemStore struct {
	mu    *sync.Mutex
	st    *state
	inTx  bool
	fail  map[string]error
	reads map[string]int
	// Writes counts mutating calls; those made in a rolled back
	// transaction are discarded.
	Writes int
}

func New() *MemStore {
	return &MemStore{
		mu: &sync.Mutex{},
		st: &state{
			settings:         *model.NewGlobalSettings(),
			identity:         *model.NewIdentity(),
			company:          *model.NewCompanyInfo(),
			pageOverrides:    map[string]model.PageMetadataOverride{},
			productOverrides: map[string]model.ProductMetadataOverride{},
		},
		fail:  map[string]error{},
		reads: map[string]int{},
	}
}

// FailOn makes every later call of method return err.
func (m *MemStore) FailOn(method string, err error) {
	m.lock()
	defer m.unlock()
	m.fail[method] = err
}

// Reads returns how many times method was called.
func (m *MemStore) Reads(method string) int {
	m.lock()
	defer m.unlock()
	return m.reads[method]
}

// lock is a no-op inside a transaction: the outer call already holds mu.
func (m *MemStore) lock() {
	if !m.inTx {
		m.mu.Lock()
	}
}

func (m *MemStore) unlock() {
	if !m.inTx {
		m.mu.Unlock()
	}
}

func (m *MemStore) enter(method string) error {
	m.reads[method]++
	return m.fail[method]
}

func (m *MemStore) wrote() {
	m.Writes++
}

// Seeding helpers bypass failure injection.

func (m *MemStore) AddPage(p model.Page) {
	m.lock()
	defer m.unlock()
	m.st.pages = append(m.st.pages, p)
}

func (m *MemStore) AddProduct(p model.Product) {
	m.lock()
	defer m.unlock()
	m.st.products = append(m.st.products, p)
}

func (m *MemStore) SetSettings(s model.GlobalSettings) {
	m.lock()
	defer m.unlock()
	s.Key = model.SingletonKey
	m.st.settings = s
}

func (m *MemStore) SetIdentity(i model.Identity) {
	m.lock()
	defer m.unlock()
	i.Key = model.SingletonKey
	m.st.identity = i
}

func (m *MemStore) SetCompany(c model.CompanyInfo) {
	m.lock()
	defer m.unlock()
	c.Key = model.SingletonKey
	m.st.company = c
}

func (m *MemStore) SetFaq(items ...model.FaqItem) {
	m.lock()
	defer m.unlock()
	m.st.faq = renumbered(items)
}

func (m *MemStore) SetAnswers(items ...model.AnswerBlock) {
	m.lock()
	defer m.unlock()
	m.st.answers = renumbered(items)
}

func renumbered[T any, P interface {
	*T
	GetID() string
	SetID(string)
	SetOrder(int)
}](items []T) []T {
	out := slices.Clone(items)
	for i := range out {
		p := P(&out[i])
		if p.GetID() == "" {
			p.SetID(ulid.Make().String())
		}
		p.SetOrder(i)
	}
	return out
}

// copyColumns copies the fields of src named by their gorm column into dst.
func copyColumns(dst, src any, columns []string) {
	want := make(map[string]bool, len(columns))
	for _, c := range columns {
		want[c] = true
	}
	copyFields(reflect.ValueOf(dst).Elem(), reflect.ValueOf(src).Elem(), want)
}

func copyFields(dst, src reflect.Value, want map[string]bool) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			copyFields(dst.Field(i), src.Field(i), want)
			continue
		}
		tags := schema.ParseTagSetting(f.Tag.Get("gorm"), ";")
		if want[strings.ToLower(tags["COLUMN"])] {
			dst.Field(i).Set(src.Field(i))
		}
	}
}

func (m *MemStore) GetSettings(context.Context) (*model.GlobalSettings, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("GetSettings"); err != nil {
		return nil, err
	}
	s := m.st.settings
	return &s, nil
}

func (m *MemStore) SaveSettings(_ context.Context, s *model.GlobalSettings, columns ...string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("SaveSettings"); err != nil {
		return err
	}
	if len(columns) == 0 {
		columns = model.GlobalSettingsColumns
	}
	copyColumns(&m.st.settings, s, columns)
	m.wrote()
	return nil
}

func (m *MemStore) GetIdentity(context.Context) (*model.Identity, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("GetIdentity"); err != nil {
		return nil, err
	}
	i := m.st.identity
	return &i, nil
}

func (m *MemStore) SaveIdentity(_ context.Context, i *model.Identity, columns ...string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("SaveIdentity"); err != nil {
		return err
	}
	if !i.Tone.Valid() {
		return apierr.BadRequest(apierr.CodeValidation, "unknown tone %q", i.Tone)
	}
	if len(columns) == 0 {
		columns = model.IdentityColumns
	}
	copyColumns(&m.st.identity, i, columns)
	m.wrote()
	return nil
}

func (m *MemStore) GetCompany(context.Context) (*model.CompanyInfo, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("GetCompany"); err != nil {
		return nil, err
	}
	c := m.st.company
	return &c, nil
}

func (m *MemStore) SaveCompany(_ context.Context, c *model.CompanyInfo) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("SaveCompany"); err != nil {
		return err
	}
	copyColumns(&m.st.company, c, model.CompanyInfoColumns)
	m.wrote()
	return nil
}

func (m *MemStore) ListFaq(context.Context) ([]model.FaqItem, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("ListFaq"); err != nil {
		return nil, err
	}
	return slices.Clone(m.st.faq), nil
}

func (m *MemStore) CreateFaq(_ context.Context, item *model.FaqItem) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("CreateFaq"); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	item.ID = ulid.Make().String()
	item.Order = len(m.st.faq)
	m.st.faq = append(m.st.faq, *item)
	m.wrote()
	return nil
}

func (m *MemStore) UpdateFaq(_ context.Context, item *model.FaqItem) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("UpdateFaq"); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	i := slices.IndexFunc(m.st.faq, func(f model.FaqItem) bool { return f.ID == item.ID })
	if i < 0 {
		return apierr.NotFound("faq item %s not found", item.ID)
	}
	item.Order = m.st.faq[i].Order
	m.st.faq[i] = *item
	m.wrote()
	return nil
}

func (m *MemStore) DeleteFaq(_ context.Context, id string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("DeleteFaq"); err != nil {
		return err
	}
	i := slices.IndexFunc(m.st.faq, func(f model.FaqItem) bool { return f.ID == id })
	if i < 0 {
		return apierr.NotFound("faq item %s not found", id)
	}
	m.st.faq = renumbered(slices.Delete(m.st.faq, i, i+1))
	m.wrote()
	return nil
}

func (m *MemStore) ReorderFaq(_ context.Context, ids []string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("ReorderFaq"); err != nil {
		return err
	}
	out, err := reorder(m.st.faq, "faq item", ids)
	if err != nil {
		return err
	}
	m.st.faq = out
	m.wrote()
	return nil
}

func (m *MemStore) ReplaceFaq(_ context.Context, items []model.FaqItem) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("ReplaceFaq"); err != nil {
		return err
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	m.st.faq = renumbered(items)
	m.wrote()
	return nil
}

func (m *MemStore) ListAnswers(context.Context) ([]model.AnswerBlock, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("ListAnswers"); err != nil {
		return nil, err
	}
	return slices.Clone(m.st.answers), nil
}

func (m *MemStore) CreateAnswer(_ context.Context, item *model.AnswerBlock) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("CreateAnswer"); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	item.ID = ulid.Make().String()
	item.Order = len(m.st.answers)
	m.st.answers = append(m.st.answers, *item)
	m.wrote()
	return nil
}

func (m *MemStore) UpdateAnswer(_ context.Context, item *model.AnswerBlock) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("UpdateAnswer"); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	i := slices.IndexFunc(m.st.answers, func(a model.AnswerBlock) bool { return a.ID == item.ID })
	if i < 0 {
		return apierr.NotFound("answer block %s not found", item.ID)
	}
	item.Order = m.st.answers[i].Order
	m.st.answers[i] = *item
	m.wrote()
	return nil
}

func (m *MemStore) DeleteAnswer(_ context.Context, id string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("DeleteAnswer"); err != nil {
		return err
	}
	i := slices.IndexFunc(m.st.answers, func(a model.AnswerBlock) bool { return a.ID == id })
	if i < 0 {
		return apierr.NotFound("answer block %s not found", id)
	}
	m.st.answers = renumbered(slices.Delete(m.st.answers, i, i+1))
	m.wrote()
	return nil
}

func (m *MemStore) ReorderAnswers(_ context.Context, ids []string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("ReorderAnswers"); err != nil {
		return err
	}
	out, err := reorder(m.st.answers, "answer block", ids)
	if err != nil {
		return err
	}
	m.st.answers = out
	m.wrote()
	return nil
}

func (m *MemStore) ReplaceAnswers(_ context.Context, items []model.AnswerBlock) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("ReplaceAnswers"); err != nil {
		return err
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	m.st.answers = renumbered(items)
	m.wrote()
	return nil
}

func reorder[T any, P interface {
	*T
	GetID() string
	SetID(string)
	SetOrder(int)
}](items []T, kind string, ids []string) ([]T, error) {
	existing := make([]string, len(items))
	byID := make(map[string]T, len(items))
	for i := range items {
		id := P(&items[i]).GetID()
		existing[i] = id
		byID[id] = items[i]
	}
	if err := repo.ValidateOrder(kind, ids, existing); err != nil {
		return nil, err
	}
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return renumbered[T, P](out), nil
}

func (m *MemStore) ListPageOverrides(context.Context) ([]model.PageMetadataOverride, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("ListPageOverrides"); err != nil {
		return nil, err
	}
	out := make([]model.PageMetadataOverride, 0, len(m.st.pageOverrides))
	for _, o := range m.st.pageOverrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PageID < out[j].PageID })
	return out, nil
}

func (m *MemStore) GetPageOverride(_ context.Context, pageID string) (*model.PageMetadataOverride, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("GetPageOverride"); err != nil {
		return nil, err
	}
	o, ok := m.st.pageOverrides[pageID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *MemStore) UpsertPageOverride(_ context.Context, o *model.PageMetadataOverride, columns ...string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("UpsertPageOverride"); err != nil {
		return err
	}
	if !slices.ContainsFunc(m.st.pages, func(p model.Page) bool { return p.ID == o.PageID }) {
		return apierr.NotFound("page %s not found", o.PageID)
	}
	if len(columns) == 0 {
		columns = model.MetadataColumns
	}
	cur, ok := m.st.pageOverrides[o.PageID]
	if !ok {
		cur = *o
	} else {
		copyColumns(&cur, o, columns)
	}
	m.st.pageOverrides[o.PageID] = cur
	m.wrote()
	return nil
}

func (m *MemStore) DeletePageOverride(_ context.Context, pageID string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("DeletePageOverride"); err != nil {
		return err
	}
	if _, ok := m.st.pageOverrides[pageID]; !ok {
		return apierr.NotFound("page override %s not found", pageID)
	}
	delete(m.st.pageOverrides, pageID)
	m.wrote()
	return nil
}

func (m *MemStore) ListProductOverrides(context.Context) ([]model.ProductMetadataOverride, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("ListProductOverrides"); err != nil {
		return nil, err
	}
	out := make([]model.ProductMetadataOverride, 0, len(m.st.productOverrides))
	for _, o := range m.st.productOverrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (m *MemStore) GetProductOverride(_ context.Context, productID string) (*model.ProductMetadataOverride, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("GetProductOverride"); err != nil {
		return nil, err
	}
	o, ok := m.st.productOverrides[productID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *MemStore) UpsertProductOverride(_ context.Context, o *model.ProductMetadataOverride, columns ...string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("UpsertProductOverride"); err != nil {
		return err
	}
	if !slices.ContainsFunc(m.st.products, func(p model.Product) bool { return p.ID == o.ProductID }) {
		return apierr.NotFound("product %s not found", o.ProductID)
	}
	if len(columns) == 0 {
		columns = model.MetadataColumns
	}
	cur, ok := m.st.productOverrides[o.ProductID]
	if !ok {
		cur = *o
	} else {
		copyColumns(&cur, o, columns)
	}
	m.st.productOverrides[o.ProductID] = cur
	m.wrote()
	return nil
}

func (m *MemStore) DeleteProductOverride(_ context.Context, productID string) error {
	m.lock()
	defer m.unlock()
	if err := m.enter("DeleteProductOverride"); err != nil {
		return err
	}
	if _, ok := m.st.productOverrides[productID]; !ok {
		return apierr.NotFound("product override %s not found", productID)
	}
	delete(m.st.productOverrides, productID)
	m.wrote()
	return nil
}

func (m *MemStore) ListPages(context.Context) ([]model.Page, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("ListPages"); err != nil {
		return nil, err
	}
	return slices.Clone(m.st.pages), nil
}

func (m *MemStore) ListProducts(context.Context) ([]model.Product, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("ListProducts"); err != nil {
		return nil, err
	}
	return slices.Clone(m.st.products), nil
}

func (m *MemStore) GetPageByRoute(_ context.Context, route string) (*model.Page, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("GetPageByRoute"); err != nil {
		return nil, err
	}
	cands := repo.RouteCandidates(route)
	for _, p := range m.st.pages {
		if p.Active && slices.Contains(cands, p.Route) {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *MemStore) GetProductBySlug(_ context.Context, slug string) (*model.Product, error) {
	m.lock()
	defer m.unlock()
	if err := m.enter("GetProductBySlug"); err != nil {
		return nil, err
	}
	for _, p := range m.st.products {
		if p.Active && p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *MemStore) Transaction(ctx context.Context, fn func(tx repo.Store) error) error {
	if m.inTx {
		return fn(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Transaction"); err != nil {
		return err
	}
	tx := &MemStore{mu: m.mu, st: m.st.clone(), inTx: true, fail: m.fail, reads: m.reads}
	if err := fn(tx); err != nil {
		return err
	}
	m.st = tx.st
	m.Writes += tx.Writes
	return nil
}

var _ repo.Store = (*MemStore)(nil)
