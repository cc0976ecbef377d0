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

	"github.com/go-arcade/beacon/internal/engine/config"
	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/service/seo"
)

// defaultGlobal is the settings record autofill proposes from. site and
// base are the values the site name and canonical base will hold after
// the merge, so derived defaults match them.
func defaultGlobal(site, base string, identity *model.Identity, company *model.CompanyInfo) *model.GlobalSettings {
	s := &model.GlobalSettings{
		DefaultImage:        strings.TrimSpace(company.Logo),
		CanonicalBaseURL:    base,
		DefaultRobotsIndex:  model.Bool(true),
		DefaultRobotsFollow: model.Bool(true),
		RobotsTxt:           seo.DefaultRobotsTxt(base),
		SitemapEnabled:      true,
		SitemapPages:        true,
		SitemapProducts:     true,
		SitemapArticles:     true,
	}
	if site == "" {
		return s
	}
	s.SiteName = site
	s.DefaultTitle = site + " | Official Site"
	s.DefaultDescription = strings.TrimSpace(identity.ShortDescription)
	if s.DefaultDescription == "" {
		s.DefaultDescription = "Discover " + site + ": products, guides and answers to common questions."
	}
	return s
}

func defaultIdentity(sd *seed, conf config.SeoConfig) *model.Identity {
	id := sd.Identity
	id.Language = conf.DefaultLanguage
	return &id
}

func defaultPage(p *model.Page, site string) *model.MetadataFields {
	m := &model.MetadataFields{Title: strings.TrimSpace(p.Name)}
	if m.Title != "" {
		m.Description = "Learn more about " + m.Title
		if site != "" {
			m.Description += " at " + site
		}
		m.Description += "."
	}
	return m
}

func defaultProduct(p *model.Product, site string) *model.MetadataFields {
	m := &model.MetadataFields{
		Title: strings.TrimSpace(p.Name),
		Image: strings.TrimSpace(p.Image),
	}
	desc := strings.TrimSpace(p.ShortDescription)
	if desc == "" {
		desc = strings.TrimSpace(p.LongDescription)
	}
	m.Description = seo.Truncate(desc, seo.DescriptionLimit)
	if m.Description == "" && m.Title != "" {
		m.Description = m.Title
		if site != "" {
			m.Description += " from " + site
		}
		m.Description += "."
	}
	return m
}
