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
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/internal/engine/service/seo"
)

type checkDef struct {
	id       string
	category Category
	title    string
	run      func(s *Snapshot) Check
}

// checks run in this order; each yields exactly one finding.
var checks = []checkDef{
	{"robots_txt_blocking", CategoryIndexing, "Robots file", checkRobotsBlocking},
	{"global_index", CategoryIndexing, "Global index directive", checkGlobalIndex},
	{"global_follow", CategoryIndexing, "Global follow directive", checkGlobalFollow},
	{"canonical_base_url", CategoryIndexing, "Canonical base URL", checkCanonicalBase},
	{"noindex_overrides", CategoryIndexing, "Noindex overrides", checkNoindexOverrides},
	{"sitemap", CategorySitemap, "Sitemap", checkSitemap},
	{"robots_sitemap_reference", CategorySitemap, "Sitemap reference in robots file", checkRobotsSitemapReference},
	{"global_defaults", CategoryMetadata, "Global defaults", checkGlobalDefaults},
	{"pages_metadata", CategoryMetadata, "Page metadata", checkPagesMetadata},
	{"products_metadata", CategoryMetadata, "Product metadata", checkProductsMetadata},
	{"default_image", CategoryMetadata, "Default social image", checkDefaultImage},
	{"duplicate_routes", CategoryDuplicates, "Duplicate routes", checkDuplicateRoutes},
	{"duplicate_canonicals", CategoryDuplicates, "Duplicate canonical URLs", checkDuplicateCanonicals},
	{"duplicate_titles", CategoryDuplicates, "Duplicate titles", checkDuplicateTitles},
	{"identity_descriptions", CategoryAIReadiness, "Identity descriptions", checkIdentity},
	{"faq_count", CategoryAIReadiness, "FAQ entries", checkFaqCount},
	{"answers_count", CategoryAIReadiness, "Answer blocks", checkAnswersCount},
}

func pass(msg string, args ...any) Check {
	return Check{Level: LevelOk, Message: fmt.Sprintf(msg, args...)}
}

func warn(action, msg string, args ...any) Check {
	return Check{Level: LevelWarning, Message: fmt.Sprintf(msg, args...), Action: action}
}

func fail(action, msg string, args ...any) Check {
	return Check{Level: LevelError, Message: fmt.Sprintf(msg, args...), Action: action}
}

func (c Check) with(key string, value any) Check {
	if c.Metadata == nil {
		c.Metadata = map[string]any{}
	}
	c.Metadata[key] = value
	return c
}

// BlockingDirective returns the first robots line that disallows or
// noindexes the whole site, together with the user agents it applies to.
// A line outside any user-agent group applies to every crawler.
func BlockingDirective(robots string) (line string, agents []string) {
	inRules := false
	for _, raw := range strings.Split(robots, "\n") {
		l := raw
		if i := strings.Index(l, "#"); i >= 0 {
			l = l[:i]
		}
		key, value, found := strings.Cut(strings.TrimSpace(l), ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if key == "user-agent" {
			if inRules {
				agents, inRules = nil, false
			}
			agents = append(agents, value)
			continue
		}
		inRules = true
		if (key == "disallow" || key == "noindex") && (value == "/" || value == "/*") {
			if len(agents) == 0 {
				agents = []string{"*"}
			}
			return strings.TrimSpace(raw), agents
		}
	}
	return "", nil
}

func checkRobotsBlocking(s *Snapshot) Check {
	if strings.TrimSpace(s.Settings.RobotsTxt) == "" {
		return pass("No custom robots file; the default allows all crawlers.")
	}
	if line, agents := BlockingDirective(s.Settings.RobotsTxt); line != "" {
		return fail("Remove the blanket directive from the robots file.",
			"The robots file blocks the whole site for %s (%q).", strings.Join(agents, ", "), line).
			with("directive", line).with("userAgents", agents)
	}
	return pass("The robots file does not block the whole site.")
}

func checkGlobalIndex(s *Snapshot) Check {
	if !model.BoolOr(s.Settings.DefaultRobotsIndex, true) {
		return fail("Enable the global index directive.",
			"Every page without its own override is served with noindex.")
	}
	return pass("Pages are indexable by default.")
}

func checkGlobalFollow(s *Snapshot) Check {
	if !model.BoolOr(s.Settings.DefaultRobotsFollow, true) {
		return warn("Enable the global follow directive.",
			"Crawlers are told not to follow links on pages without an override.")
	}
	return pass("Links are followed by default.")
}

func checkCanonicalBase(s *Snapshot) Check {
	base := strings.TrimSpace(s.Settings.CanonicalBaseURL)
	if base == "" {
		return warn("Set the canonical base URL to the public site address.",
			"No canonical base URL is set; canonical links are relative.")
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return warn("Use an absolute http(s) URL such as https://example.com.",
			"The canonical base URL %q is not an absolute http(s) URL.", base).with("value", base)
	}
	return pass("Canonical URLs are built from %s.", base)
}

func checkNoindexOverrides(s *Snapshot) Check {
	var ids []string
	for _, p := range s.Inventory.ActivePages() {
		if o := s.Inventory.PageOverrides[p.ID]; o != nil && o.Index != nil && !*o.Index {
			ids = append(ids, "page:"+p.ID)
		}
	}
	for _, p := range s.Inventory.ActiveProducts() {
		o := s.Inventory.ProductOverrides[p.ID]
		if o != nil && o.Index != nil {
			if !*o.Index {
				ids = append(ids, "product:"+p.ID)
			}
			continue
		}
		if p.Index != nil && !*p.Index {
			ids = append(ids, "product:"+p.ID)
		}
	}
	if len(ids) > 0 {
		return warn("Review whether these items should be hidden from search.",
			"%d active item(s) are set to noindex.", len(ids)).with("ids", ids)
	}
	return pass("No active item is set to noindex.")
}

func checkSitemap(s *Snapshot) Check {
	if !s.Settings.SitemapEnabled {
		return warn("Enable the sitemap.", "The sitemap is disabled.")
	}
	n := len(seo.BuildSitemap(&s.Settings, s.Inventory, s.ProductPathPrefix))
	if n <= 1 {
		return warn("Include pages or products in the sitemap.",
			"The sitemap lists only the home page.").with("urls", n)
	}
	return pass("The sitemap lists %d URLs.", n).with("urls", n)
}

func checkRobotsSitemapReference(s *Snapshot) Check {
	body := s.Settings.RobotsTxt
	if strings.TrimSpace(body) == "" {
		if strings.TrimSpace(s.Settings.CanonicalBaseURL) == "" {
			return warn("Set the canonical base URL so the default robots file can reference the sitemap.",
				"The default robots file cannot reference the sitemap without a base URL.")
		}
		return pass("The default robots file references the sitemap.")
	}
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "sitemap:") {
			return pass("The robots file references the sitemap.")
		}
	}
	if !s.Settings.SitemapEnabled {
		return pass("The sitemap is disabled; no reference needed.")
	}
	return warn("Add a Sitemap: line to the robots file.", "The robots file does not reference the sitemap.")
}

func checkGlobalDefaults(s *Snapshot) Check {
	var missing []string
	if strings.TrimSpace(s.Settings.SiteName) == "" {
		missing = append(missing, "siteName")
	}
	if strings.TrimSpace(s.Settings.DefaultTitle) == "" {
		missing = append(missing, "defaultTitle")
	}
	if strings.TrimSpace(s.Settings.DefaultDescription) == "" {
		missing = append(missing, "defaultDescription")
	}
	if len(missing) > 0 {
		return warn("Fill in the global defaults or run autofill.",
			"Missing global defaults: %s.", strings.Join(missing, ", ")).with("fields", missing)
	}
	return pass("Global defaults are set.")
}

func incomplete(b seo.Bundle) []string {
	var missing []string
	if b.Title == "" {
		missing = append(missing, "title")
	}
	if b.Description == nil {
		missing = append(missing, "description")
	}
	return missing
}

func checkPagesMetadata(s *Snapshot) Check {
	gaps := map[string][]string{}
	pages := s.Inventory.ActivePages()
	for i := range pages {
		if m := incomplete(s.Inventory.ResolvePage(&s.Settings, &pages[i])); len(m) > 0 {
			gaps[pages[i].ID] = m
		}
	}
	if len(gaps) > 0 {
		return warn("Add page overrides or global defaults.",
			"%d of %d active page(s) resolve without a title or description.", len(gaps), len(pages)).with("pages", gaps)
	}
	return pass("All %d active page(s) resolve a title and description.", len(pages))
}

func checkProductsMetadata(s *Snapshot) Check {
	gaps := map[string][]string{}
	products := s.Inventory.ActiveProducts()
	for i := range products {
		b := s.Inventory.ResolveProduct(&s.Settings, &products[i], s.ProductPathPrefix)
		if m := incomplete(b); len(m) > 0 {
			gaps[products[i].ID] = m
		}
	}
	if len(gaps) > 0 {
		return warn("Add product descriptions, overrides or global defaults.",
			"%d of %d active product(s) resolve without a title or description.", len(gaps), len(products)).with("products", gaps)
	}
	return pass("All %d active product(s) resolve a title and description.", len(products))
}

func checkDefaultImage(s *Snapshot) Check {
	if strings.TrimSpace(s.Settings.DefaultImage) == "" {
		return warn("Set a default social image.", "Pages without their own image share no preview image.")
	}
	return pass("A default social image is set.")
}

// duplicates keeps the groups of keys with more than one member.
func duplicates(groups map[string][]string) map[string][]string {
	out := map[string][]string{}
	for k, ids := range groups {
		if len(ids) > 1 {
			sort.Strings(ids)
			out[k] = ids
		}
	}
	return out
}

func checkDuplicateRoutes(s *Snapshot) Check {
	groups := map[string][]string{}
	for _, p := range s.Inventory.ActivePages() {
		r := seo.NormalizePath(p.Route)
		groups[r] = append(groups[r], p.ID)
	}
	if d := duplicates(groups); len(d) > 0 {
		return warn("Give every active page its own route.",
			"%d route(s) are shared by more than one active page.", len(d)).with("routes", d)
	}
	return pass("All active page routes are unique.")
}

func checkDuplicateCanonicals(s *Snapshot) Check {
	groups := map[string][]string{}
	pages := s.Inventory.ActivePages()
	for i := range pages {
		c := s.Inventory.ResolvePage(&s.Settings, &pages[i]).CanonicalURL
		groups[c] = append(groups[c], "page:"+pages[i].ID)
	}
	products := s.Inventory.ActiveProducts()
	for i := range products {
		c := s.Inventory.ResolveProduct(&s.Settings, &products[i], s.ProductPathPrefix).CanonicalURL
		groups[c] = append(groups[c], "product:"+products[i].ID)
	}
	if d := duplicates(groups); len(d) > 0 {
		return warn("Point each canonical URL at a single item.",
			"%d canonical URL(s) are shared by more than one item.", len(d)).with("canonicals", d)
	}
	return pass("All canonical URLs are unique.")
}

func checkDuplicateTitles(s *Snapshot) Check {
	groups := map[string][]string{}
	for _, p := range s.Inventory.ActivePages() {
		if o := s.Inventory.PageOverrides[p.ID]; o != nil && strings.TrimSpace(o.Title) != "" {
			t := strings.TrimSpace(o.Title)
			groups[t] = append(groups[t], "page:"+p.ID)
		}
	}
	for _, p := range s.Inventory.ActiveProducts() {
		if o := s.Inventory.ProductOverrides[p.ID]; o != nil && strings.TrimSpace(o.Title) != "" {
			t := strings.TrimSpace(o.Title)
			groups[t] = append(groups[t], "product:"+p.ID)
		}
	}
	if d := duplicates(groups); len(d) > 0 {
		return warn("Make override titles distinct.",
			"%d title(s) are used by more than one override.", len(d)).with("titles", d)
	}
	return pass("Override titles are unique.")
}

func checkIdentity(s *Snapshot) Check {
	var missing []string
	if strings.TrimSpace(s.Identity.ShortDescription) == "" {
		missing = append(missing, "shortDescription")
	}
	if strings.TrimSpace(s.Identity.LongDescription) == "" {
		missing = append(missing, "longDescription")
	}
	if len(missing) > 0 {
		return warn("Describe the organisation in the identity settings.",
			"Identity is missing: %s.", strings.Join(missing, ", ")).with("fields", missing)
	}
	return pass("Identity descriptions are set.")
}

func checkFaqCount(s *Snapshot) Check {
	if s.FaqCount == 0 {
		return warn("Add FAQ entries or run autofill.", "The FAQ is empty.").with("count", 0)
	}
	return pass("%d FAQ entries.", s.FaqCount).with("count", s.FaqCount)
}

func checkAnswersCount(s *Snapshot) Check {
	if s.AnswerCount == 0 {
		return warn("Add answer blocks or run autofill.", "There are no answer blocks.").with("count", 0)
	}
	return pass("%d answer blocks.", s.AnswerCount).with("count", s.AnswerCount)
}
