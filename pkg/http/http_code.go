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

package http

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/log"
	"github.com/gofiber/fiber/v2"
)

var internalMessage = apierr.Internal(nil).Message

// ErrorHandler is installed as fiber.Config.ErrorHandler. Validation errors
// keep their status and code; anything else is logged and masked.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if ae, ok := apierr.As(err); ok && ae.Code != apierr.CodeInternal {
		return WithRepErr(c, ae.Status, ae.Code, ae.Error())
	}

	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < http.StatusInternalServerError {
		return WithRepErr(c, fe.Code, codeForStatus(fe.Code), fe.Message)
	}

	log.Errorw("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("request_id"),
		"error", err,
		"stack", string(debug.Stack()),
	)
	return WithRepErr(c, http.StatusInternalServerError, apierr.CodeInternal, internalMessage)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return apierr.CodeNotFound
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return apierr.CodeValidation
	}
}
