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

import (
	"strings"

	"gorm.io/datatypes"
)

// MetadataFields is the override shape shared by pages and products. An
// empty string or nil pointer means "inherit".
type MetadataFields struct {
	Title          string         `gorm:"column:title;type:varchar(255)" json:"title"`
	Description    string         `gorm:"column:description;type:text" json:"description"`
	Image          string         `gorm:"column:image;type:varchar(1024)" json:"image"`
	Canonical      string         `gorm:"column:canonical;type:varchar(1024)" json:"canonical"`
	Index          *bool          `gorm:"column:robots_index" json:"index"`
	Follow         *bool          `gorm:"column:robots_follow" json:"follow"`
	StructuredData datatypes.JSON `gorm:"column:structured_data" json:"structuredData,omitempty"`
}

// MetadataColumns are the columns of MetadataFields in declaration order.
var MetadataColumns = []string{
	"title", "description", "image", "canonical", "robots_index", "robots_follow", "structured_data",
}

// IsEmpty reports whether every field inherits.
func (m *MetadataFields) IsEmpty() bool {
	if m == nil {
		return true
	}
	return strings.TrimSpace(m.Title) == "" &&
		strings.TrimSpace(m.Description) == "" &&
		strings.TrimSpace(m.Image) == "" &&
		strings.TrimSpace(m.Canonical) == "" &&
		m.Index == nil && m.Follow == nil &&
		!HasStructuredData(m.StructuredData)
}

// HasStructuredData reports whether raw holds something other than
// whitespace or a JSON null.
func HasStructuredData(raw datatypes.JSON) bool {
	s := strings.TrimSpace(string(raw))
	return s != "" && s != "null"
}

type PageMetadataOverride struct {
	PageID string `gorm:"column:page_id;primaryKey;type:varchar(64)" json:"pageId"`
	MetadataFields
	Timestamps
}

func (PageMetadataOverride) TableName() string {
	return "t_seo_page_override"
}

type ProductMetadataOverride struct {
	ProductID string `gorm:"column:product_id;primaryKey;type:varchar(64)" json:"productId"`
	MetadataFields
	Timestamps
}

func (ProductMetadataOverride) TableName() string {
	return "t_seo_product_override"
}
