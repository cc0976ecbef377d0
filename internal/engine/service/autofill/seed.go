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
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-arcade/beacon/internal/engine/model"
	"sigs.k8s.io/yaml"
)

//go:embed seed.yaml
var seedYAML []byte

const siteNamePlaceholder = "{siteName}"

type seed struct {
	Identity model.Identity      `json:"identity"`
	Faq      []model.FaqItem     `json:"faq"`
	Answers  []model.AnswerBlock `json:"answers"`
}

// loadSeed parses the embedded seed with site substituted for the site
// name placeholder.
func loadSeed(site string) (*seed, error) {
	var s seed
	if err := yaml.Unmarshal(seedYAML, &s); err != nil {
		return nil, fmt.Errorf("parse autofill seed: %w", err)
	}
	sub := func(v *string) {
		*v = strings.TrimSpace(strings.ReplaceAll(*v, siteNamePlaceholder, site))
	}
	sub(&s.Identity.ShortDescription)
	sub(&s.Identity.LongDescription)
	sub(&s.Identity.TargetAudience)
	sub(&s.Identity.Positioning)
	sub(&s.Identity.Differentiation)
	for i := range s.Faq {
		sub(&s.Faq[i].Question)
		sub(&s.Faq[i].Answer)
		s.Faq[i].Order = i
	}
	for i := range s.Answers {
		sub(&s.Answers[i].Question)
		sub(&s.Answers[i].ShortAnswer)
		sub(&s.Answers[i].LongAnswer)
		s.Answers[i].Order = i
	}
	return &s, nil
}
