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
	"strings"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/statemachine"
)

type Mode string

const (
	ModeFillOnlyMissing Mode = "FILL_ONLY_MISSING"
	ModeOverwrite       Mode = "OVERWRITE"
)

// ParseMode accepts either mode name case-insensitively; empty means
// FILL_ONLY_MISSING.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case "", ModeFillOnlyMissing:
		return ModeFillOnlyMissing, nil
	case ModeOverwrite:
		return ModeOverwrite, nil
	}
	return "", apierr.BadRequest(apierr.CodeInvalidMode,
		"mode must be %s or %s, got %q", ModeFillOnlyMissing, ModeOverwrite, s)
}

const (
	TargetGlobal   = "global"
	TargetIdentity = "identity"
	TargetFaq      = "faq"
	TargetAnswers  = "answers"
	TargetPages    = "pages"
	TargetProducts = "products"
)

// Targets selects the groups a run touches. Selecting none selects all.
type Targets struct {
	Global   bool `json:"global"`
	Identity bool `json:"identity"`
	Faq      bool `json:"faq"`
	Answers  bool `json:"answers"`
	Pages    bool `json:"pages"`
	Products bool `json:"products"`
}

func AllTargets() Targets {
	return Targets{Global: true, Identity: true, Faq: true, Answers: true, Pages: true, Products: true}
}

func (t Targets) orAll() Targets {
	if t == (Targets{}) {
		return AllTargets()
	}
	return t
}

// ParseTargets builds Targets from group names.
func ParseTargets(names []string) (Targets, error) {
	var t Targets
	for _, raw := range names {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "":
		case TargetGlobal:
			t.Global = true
		case TargetIdentity:
			t.Identity = true
		case TargetFaq:
			t.Faq = true
		case TargetAnswers:
			t.Answers = true
		case TargetPages:
			t.Pages = true
		case TargetProducts:
			t.Products = true
		default:
			return Targets{}, apierr.BadRequest(apierr.CodeValidation, "unknown autofill target %q", raw)
		}
	}
	return t, nil
}

type Options struct {
	Targets Targets `json:"targets"`
	Mode    Mode    `json:"mode"`
	// Confirm must be explicitly true to apply in OVERWRITE mode.
	Confirm *bool `json:"confirm"`
}

// DiffEntry is one field a run changes. List targets use the field
// "count" with item counts as values.
type DiffEntry struct {
	Target string `json:"target"`
	Field  string `json:"field"`
	Before any    `json:"before"`
	After  any    `json:"after"`
}

// State holds the selected target groups. Pages and Products are keyed by
// item id and hold the override fields.
type State struct {
	Global   *model.GlobalSettings            `json:"global,omitempty"`
	Identity *model.Identity                  `json:"identity,omitempty"`
	Faq      []model.FaqItem                  `json:"faq,omitempty"`
	Answers  []model.AnswerBlock              `json:"answers,omitempty"`
	Pages    map[string]*model.MetadataFields `json:"pages,omitempty"`
	Products map[string]*model.MetadataFields `json:"products,omitempty"`
}

type Preview struct {
	Current  State                      `json:"current"`
	Proposed State                      `json:"proposed"`
	Diff     []DiffEntry                `json:"diff"`
	State    statemachine.AutofillState `json:"state"`
}

type Result struct {
	// Applied reports whether anything was written.
	Applied  bool                       `json:"applied"`
	Current  State                      `json:"current"`
	Proposed State                      `json:"proposed"`
	Diff     []DiffEntry                `json:"diff"`
	State    statemachine.AutofillState `json:"state"`
}
