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
	"github.com/gofiber/fiber/v2"
)

// DETAIL is the fiber Locals key the unified response middleware reads.
const DETAIL = "detail"

type Response struct {
	Ok    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WithRepJSON writes {ok:true,data}.
func WithRepJSON(c *fiber.Ctx, data any) error {
	return c.JSON(Response{Ok: true, Data: data})
}

// WithRepErr writes {ok:false,error:{code,message}} with status.
func WithRepErr(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Response{
		Ok:    false,
		Error: &ErrorBody{Code: code, Message: message},
	})
}

// SetDetail stores data for the unified response middleware.
func SetDetail(c *fiber.Ctx, data any) error {
	c.Locals(DETAIL, data)
	return nil
}
