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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, resp *http.Response) Response {
	t.Helper()
	var out Response
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/dup", func(c *fiber.Ctx) error {
		return apierr.BadRequest(apierr.CodeDuplicateIDs, "duplicate ids: %s", "a")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return assert.AnError
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return WithRepJSON(c, fiber.Map{"n": 1})
	})

	tests := []struct {
		path   string
		status int
		ok     bool
		code   string
	}{
		{"/dup", http.StatusBadRequest, false, apierr.CodeDuplicateIDs},
		{"/boom", http.StatusInternalServerError, false, apierr.CodeInternal},
		{"/missing", http.StatusNotFound, false, apierr.CodeNotFound},
		{"/ok", http.StatusOK, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decode(t, resp)
			assert.Equal(t, tt.ok, body.Ok)
			if !tt.ok {
				require.NotNil(t, body.Error)
				assert.Equal(t, tt.code, body.Error.Code)
			}
		})
	}
}

func TestErrorHandler_MasksInternalMessage(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		return apierr.Internal(assert.AnError)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	body := decode(t, resp)
	require.NotNil(t, body.Error)
	assert.NotContains(t, body.Error.Message, assert.AnError.Error())
}
