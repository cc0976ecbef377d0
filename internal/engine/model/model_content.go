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

// Page is a routable content page owned by the content system.
type Page struct {
	ID     string `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Name   string `gorm:"column:name;type:varchar(255)" json:"name"`
	Route  string `gorm:"column:route;type:varchar(512);index" json:"route"`
	Active bool   `gorm:"column:active;index" json:"active"`
	Timestamps
}

func (Page) TableName() string {
	return "t_page"
}

// Product is a catalogue item with its own detail page.
type Product struct {
	ID               string   `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	Slug             string   `gorm:"column:slug;type:varchar(255);index" json:"slug"`
	Name             string   `gorm:"column:name;type:varchar(255)" json:"name"`
	ShortDescription string   `gorm:"column:short_description;type:varchar(1024)" json:"shortDescription"`
	LongDescription  string   `gorm:"column:long_description;type:text" json:"longDescription"`
	Image            string   `gorm:"column:image;type:varchar(1024)" json:"image"`
	Price            *float64 `gorm:"column:price" json:"price"`
	Currency         string   `gorm:"column:currency;type:varchar(8)" json:"currency"`
	Availability     string   `gorm:"column:availability;type:varchar(32)" json:"availability"`
	Index            *bool    `gorm:"column:robots_index" json:"index"`
	Follow           *bool    `gorm:"column:robots_follow" json:"follow"`
	Active           bool     `gorm:"column:active;index" json:"active"`
	Timestamps
}

func (Product) TableName() string {
	return "t_product"
}
