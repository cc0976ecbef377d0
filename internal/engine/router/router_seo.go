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

package router

import (
	"strings"

	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/http"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) seoRouter(r fiber.Router) {
	r.Get("/resolve", rt.resolve) // GET /resolve?path=/pricing - computed bundle and structured data
}

const unavailableDocument = `<!doctype html>
<html><head><meta charset="utf-8"><title>Service Unavailable</title></head>
<body><h1>Service Unavailable</h1></body></html>
`

// renderDocument serves the template with the resolved head block. Browsers
// get an HTML 503 when no template can be read.
func (rt *Router) renderDocument(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), apiPrefix+"/") {
		return fiber.ErrNotFound
	}
	doc, err := rt.Services.Injector.Render(c.UserContext(), c.Path())
	if err != nil {
		log.Errorw("failed to read document template", "path", c.Path(), "error", err)
		c.Type("html", "utf-8")
		return c.Status(fiber.StatusServiceUnavailable).SendString(unavailableDocument)
	}
	c.Type("html", "utf-8")
	return c.SendString(doc)
}

func (rt *Router) resolve(c *fiber.Ctx) error {
	path := c.Query("path")
	if strings.TrimSpace(path) == "" {
		return apierr.BadRequest(apierr.CodeValidation, "path is required")
	}
	res, err := rt.Services.Seo.ResolvePath(c.UserContext(), path)
	if err != nil {
		return err
	}
	return http.SetDetail(c, res)
}

func (rt *Router) robotsTxt(c *fiber.Ctx) error {
	body, err := rt.Services.Seo.RobotsTxt(c.UserContext())
	if err != nil {
		return err
	}
	c.Type("txt", "utf-8")
	return c.SendString(body)
}

func (rt *Router) sitemap(c *fiber.Ctx) error {
	body, err := rt.Services.Seo.Sitemap(c.UserContext())
	if err != nil {
		return err
	}
	c.Type("xml", "utf-8")
	return c.Send(body)
}
