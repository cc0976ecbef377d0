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
	"github.com/go-arcade/beacon/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) diagnosticsRouter(r fiber.Router) {
	r.Get("/diagnostics", rt.runDiagnostics) // GET /diagnostics?refresh=true - bypass the cached report
}

func (rt *Router) runDiagnostics(c *fiber.Ctx) error {
	report, err := rt.Services.Diagnostics.Run(c.UserContext(), c.QueryBool("refresh"))
	if err != nil {
		return err
	}
	return http.SetDetail(c, report)
}
