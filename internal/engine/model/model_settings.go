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

// GlobalSettings is the site-wide metadata singleton.
type GlobalSettings struct {
	Key                 string `gorm:"column:settings_key;primaryKey;type:varchar(32)" json:"-"`
	SiteName            string `gorm:"column:site_name;type:varchar(255)" json:"siteName"`
	DefaultTitle        string `gorm:"column:default_title;type:varchar(255)" json:"defaultTitle"`
	DefaultDescription  string `gorm:"column:default_description;type:text" json:"defaultDescription"`
	DefaultImage        string `gorm:"column:default_image;type:varchar(1024)" json:"defaultImage"`
	CanonicalBaseURL    string `gorm:"column:canonical_base_url;type:varchar(1024)" json:"canonicalBaseUrl"`
	DefaultRobotsIndex  *bool  `gorm:"column:default_robots_index" json:"defaultRobotsIndex"`
	DefaultRobotsFollow *bool  `gorm:"column:default_robots_follow" json:"defaultRobotsFollow"`
	RobotsTxt           string `gorm:"column:robots_txt;type:text" json:"robotsTxt"`
	SitemapEnabled      bool   `gorm:"column:sitemap_enabled" json:"sitemapEnabled"`
	SitemapPages        bool   `gorm:"column:sitemap_pages" json:"sitemapPages"`
	SitemapProducts     bool   `gorm:"column:sitemap_products" json:"sitemapProducts"`
	SitemapArticles     bool   `gorm:"column:sitemap_articles" json:"sitemapArticles"`
	Timestamps
}

func (GlobalSettings) TableName() string {
	return "t_seo_global_settings"
}

// NewGlobalSettings returns the record created on first read.
func NewGlobalSettings() *GlobalSettings {
	return &GlobalSettings{
		Key:             SingletonKey,
		SitemapEnabled:  true,
		SitemapPages:    true,
		SitemapProducts: true,
		SitemapArticles: true,
	}
}

// GlobalSettingsColumns are the columns writable through SaveSettings.
var GlobalSettingsColumns = []string{
	"site_name", "default_title", "default_description", "default_image", "canonical_base_url",
	"default_robots_index", "default_robots_follow", "robots_txt",
	"sitemap_enabled", "sitemap_pages", "sitemap_products", "sitemap_articles",
}

// Tone is the voice used by generated answer content.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneTechnical    Tone = "technical"
	ToneCasual       Tone = "casual"
)

func (t Tone) Valid() bool {
	switch t {
	case "", ToneProfessional, ToneFriendly, ToneTechnical, ToneCasual:
		return true
	}
	return false
}

// Identity describes the organisation for structured data and AI-facing content.
type Identity struct {
	Key              string `gorm:"column:identity_key;primaryKey;type:varchar(32)" json:"-"`
	ShortDescription string `gorm:"column:short_description;type:varchar(512)" json:"shortDescription"`
	LongDescription  string `gorm:"column:long_description;type:text" json:"longDescription"`
	TargetAudience   string `gorm:"column:target_audience;type:varchar(512)" json:"targetAudience"`
	Positioning      string `gorm:"column:positioning;type:text" json:"positioning"`
	Differentiation  string `gorm:"column:differentiation;type:text" json:"differentiation"`
	Tone             Tone   `gorm:"column:tone;type:varchar(32)" json:"tone"`
	Language         string `gorm:"column:language;type:varchar(16)" json:"language"`
	Timestamps
}

func (Identity) TableName() string {
	return "t_seo_identity"
}

func NewIdentity() *Identity {
	return &Identity{Key: SingletonKey}
}

var IdentityColumns = []string{
	"short_description", "long_description", "target_audience",
	"positioning", "differentiation", "tone", "language",
}

// CompanyInfo holds contact details published in the Organization payload.
type CompanyInfo struct {
	Key       string `gorm:"column:company_key;primaryKey;type:varchar(32)" json:"-"`
	Name      string `gorm:"column:name;type:varchar(255)" json:"name"`
	LegalName string `gorm:"column:legal_name;type:varchar(255)" json:"legalName"`
	Email     string `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone     string `gorm:"column:phone;type:varchar(64)" json:"phone"`
	Address   string `gorm:"column:address;type:varchar(512)" json:"address"`
	Logo      string `gorm:"column:logo;type:varchar(1024)" json:"logo"`
	Timestamps
}

func (CompanyInfo) TableName() string {
	return "t_seo_company"
}

func NewCompanyInfo() *CompanyInfo {
	return &CompanyInfo{Key: SingletonKey}
}

var CompanyInfoColumns = []string{"name", "legal_name", "email", "phone", "address", "logo"}
