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
	"github.com/go-arcade/beacon/internal/engine/service/autofill"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) autofillRouter(r fiber.Router) {
	group := r.Group("/autofill")
	{
		group.Post("/preview", rt.previewAutofill) // POST /autofill/preview - proposed changes, no writes
		group.Post("/apply", rt.applyAutofill)     // POST /autofill/apply - write the proposal atomically
	}
}

// autofillRequest accepts targets either as an object of flags or as a
// list of names.
type autofillRequest struct {
	Mode        autofill.Mode    `json:"mode"`
	Confirm     *bool            `json:"confirm"`
	Targets     autofill.Targets `json:"targets"`
	TargetNames []string         `json:"targetNames"`
}

func parseAutofill(c *fiber.Ctx) (autofill.Options, error) {
	var req autofillRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return autofill.Options{}, apierr.BadRequest(apierr.CodeValidation, "invalid request body")
		}
	}
	opts := autofill.Options{Mode: req.Mode, Confirm: req.Confirm, Targets: req.Targets}
	if len(req.TargetNames) > 0 {
		named, err := autofill.ParseTargets(req.TargetNames)
		if err != nil {
			return autofill.Options{}, err
		}
		opts.Targets = named
	}
	return opts, nil
}

func (rt *Router) previewAutofill(c *fiber.Ctx) error {
	opts, err := parseAutofill(c)
	if err != nil {
		return err
	}
	preview, err := rt.Services.Autofill.Preview(c.UserContext(), opts)
	if err != nil {
		return err
	}
	return http.SetDetail(c, preview)
}

func (rt *Router) applyAutofill(c *fiber.Ctx) error {
	opts, err := parseAutofill(c)
	if err != nil {
		return err
	}
	result, err := rt.Services.Autofill.Apply(c.UserContext(), opts)
	if err != nil {
		return err
	}
	return http.SetDetail(c, result)
}
