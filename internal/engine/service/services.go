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
	"github.com/go-arcade/beacon/internal/engine/repo"
	"github.com/go-arcade/beacon/internal/engine/service/autofill"
	"github.com/go-arcade/beacon/internal/engine/service/diagnostics"
	"github.com/go-arcade/beacon/internal/engine/service/seo"
)

// Services aggregates the engine services handed to the router and CLI.
type Services struct {
	Seo         *seo.Service
	Injector    *seo.Injector
	Diagnostics *diagnostics.Engine
	Autofill    *autofill.Engine
	Content     *ContentService
}

// NewServices wires cache invalidation: admin writes and committed autofill
// runs drop both the globals snapshot and the diagnostics report.
func NewServices(
	store repo.Store,
	seoService *seo.Service,
	injector *seo.Injector,
	diag *diagnostics.Engine,
	fill *autofill.Engine,
) *Services {
	content := NewContentService(store, seoService.Globals(), diag)
	fill.OnApplied(content.invalidate)
	return &Services{
		Seo:         seoService,
		Injector:    injector,
		Diagnostics: diag,
		Autofill:    fill,
		Content:     content,
	}
}
