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
	"time"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/service/seo"
)

type Level string

const (
	LevelOk      Level = "ok"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Category string

const (
	CategoryIndexing    Category = "indexing"
	CategorySitemap     Category = "sitemap"
	CategoryMetadata    Category = "metadata"
	CategoryDuplicates  Category = "duplicates"
	CategoryAIReadiness Category = "ai_readiness"
)

// Check is one finding of a diagnostics run.
type Check struct {
	ID       string         `json:"id"`
	Category Category       `json:"category"`
	Level    Level          `json:"level"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Action   string         `json:"action,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Ok       int `json:"ok"`
}

// Summarize counts checks per level.
func Summarize(checks []Check) Summary {
	var s Summary
	for _, c := range checks {
		switch c.Level {
		case LevelError:
			s.Errors++
		case LevelWarning:
			s.Warnings++
		default:
			s.Ok++
		}
	}
	return s
}

type Report struct {
	Checks      []Check   `json:"checks"`
	Summary     Summary   `json:"summary"`
	GeneratedAt time.Time `json:"generatedAt"`
	Cached      bool      `json:"cached"`
}

// Snapshot is everything the checks read.
type Snapshot struct {
	Settings          model.GlobalSettings
	Identity          model.Identity
	FaqCount          int
	AnswerCount       int
	Inventory         *seo.Inventory
	ProductPathPrefix string
}
