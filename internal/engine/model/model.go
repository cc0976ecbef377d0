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

package model

import "time"

// SingletonKey is the fixed primary key of every singleton record.
const SingletonKey = "global"

// Models lists every table the engine migrates.
func Models() []any {
	return []any{
		&GlobalSettings{},
		&Identity{},
		&CompanyInfo{},
		&FaqItem{},
		&AnswerBlock{},
		&PageMetadataOverride{},
		&ProductMetadataOverride{},
		&Page{},
		&Product{},
	}
}

// Timestamps is embedded by records that track modification time.
type Timestamps struct {
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// BoolOr dereferences p, using def when p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
