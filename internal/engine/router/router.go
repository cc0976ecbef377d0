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
	"github.com/bytedance/sonic"
	"github.com/go-arcade/beacon/internal/engine/service"
	"github.com/go-arcade/beacon/pkg/http"
	"github.com/go-arcade/beacon/pkg/http/middleware"
	"github.com/go-arcade/beacon/pkg/metrics"
	"github.com/go-arcade/beacon/pkg/shutdown"
	"github.com/go-arcade/beacon/pkg/version"
	"github.com/gofiber/fiber/v2"
)

const apiPrefix = "/api/v1/seo"

type Router struct {
	Http     *http.Http
	Services *service.Services
	Metrics  *metrics.Metrics
	Shutdown *shutdown.Manager
}

func NewRouter(httpConf *http.Http, services *service.Services, m *metrics.Metrics, sm *shutdown.Manager) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Metrics:  m,
		Shutdown: sm,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Beacon",
		DisableStartupMessage: true,
		ReadTimeout:           rt.Http.ReadTimeoutDuration(),
		WriteTimeout:          rt.Http.WriteTimeoutDuration(),
		IdleTimeout:           rt.Http.IdleTimeoutDuration(),
		BodyLimit:             rt.Http.BodyLimit,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          http.ErrorHandler,
	})

	app.Use(
		middleware.RequestMiddleware(),
		middleware.TraceMiddleware(),
		middleware.AccessLogMiddleware(rt.Http.AccessLog),
		middleware.ExceptionMiddleware,
		middleware.CorsMiddleware(rt.Http.AllowOrigins),
		middleware.UnifiedResponseMiddleware(),
	)

	app.Get("/health", rt.health)

	app.Get("/version", func(c *fiber.Ctx) error {
		return http.SetDetail(c, version.GetVersion())
	})

	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", rt.Metrics.Handler())
	}

	if rt.Http.Pprof {
		rt.debugRouter(app.Group("/debug/pprof"))
	}

	app.Get("/robots.txt", rt.robotsTxt)
	app.Get("/sitemap.xml", rt.sitemap)

	api := app.Group(apiPrefix)
	{
		rt.seoRouter(api)
		rt.diagnosticsRouter(api)
		rt.autofillRouter(api)
		rt.contentRouter(api)
	}

	// documents, registered last so every other route wins
	app.Get("/*", rt.renderDocument)

	return app
}

// health fails while draining so load balancers stop routing before the
// listener closes.
func (rt *Router) health(c *fiber.Ctx) error {
	if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("draining")
	}
	return c.SendString("ok")
}
