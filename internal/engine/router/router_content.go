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
	"github.com/go-arcade/beacon/internal/engine/model"
	"github.com/go-arcade/beacon/pkg/apierr"
	"github.com/go-arcade/beacon/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) contentRouter(r fiber.Router) {
	r.Get("/settings", rt.getSettings)  // GET /settings - global settings
	r.Put("/settings", rt.saveSettings) // PUT /settings - replace global settings
	r.Get("/identity", rt.getIdentity)  // GET /identity - brand identity
	r.Put("/identity", rt.saveIdentity) // PUT /identity - replace brand identity
	r.Get("/company", rt.getCompany)    // GET /company - company info
	r.Put("/company", rt.saveCompany)   // PUT /company - replace company info

	faq := r.Group("/faq")
	{
		faq.Get("/", rt.listFaq)
		faq.Post("/", rt.createFaq)
		faq.Put("/reorder", rt.reorderFaq) // PUT /faq/reorder - body {ids: [...]} with every id once
		faq.Put("/:id", rt.updateFaq)
		faq.Delete("/:id", rt.deleteFaq)
	}

	answers := r.Group("/answers")
	{
		answers.Get("/", rt.listAnswers)
		answers.Post("/", rt.createAnswer)
		answers.Put("/reorder", rt.reorderAnswers)
		answers.Put("/:id", rt.updateAnswer)
		answers.Delete("/:id", rt.deleteAnswer)
	}

	pages := r.Group("/pages")
	{
		pages.Get("/", rt.listPages)
		pages.Get("/:id/metadata", rt.getPageOverride)
		pages.Put("/:id/metadata", rt.upsertPageOverride)
		pages.Delete("/:id/metadata", rt.deletePageOverride)
	}

	products := r.Group("/products")
	{
		products.Get("/", rt.listProducts)
		products.Get("/:id/metadata", rt.getProductOverride)
		products.Put("/:id/metadata", rt.upsertProductOverride)
		products.Delete("/:id/metadata", rt.deleteProductOverride)
	}
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apierr.BadRequest(apierr.CodeValidation, "invalid request body")
	}
	return nil
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func (rt *Router) getSettings(c *fiber.Ctx) error {
	settings, err := rt.Services.Content.GetSettings(c.UserContext())
	if err != nil {
		return err
	}
	return http.SetDetail(c, settings)
}

func (rt *Router) saveSettings(c *fiber.Ctx) error {
	var in model.GlobalSettings
	if err := bind(c, &in); err != nil {
		return err
	}
	saved, err := rt.Services.Content.SaveSettings(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return http.SetDetail(c, saved)
}

func (rt *Router) getIdentity(c *fiber.Ctx) error {
	identity, err := rt.Services.Content.GetIdentity(c.UserContext())
	if err != nil {
		return err
	}
	return http.SetDetail(c, identity)
}

func (rt *Router) saveIdentity(c *fiber.Ctx) error {
	var in model.Identity
	if err := bind(c, &in); err != nil {
		return err
	}
	saved, err := rt.Services.Content.SaveIdentity(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return http.SetDetail(c, saved)
}

func (rt *Router) getCompany(c *fiber.Ctx) error {
	company, err := rt.Services.Content.GetCompany(c.UserContext())
	if err != nil {
		return err
	}
	return http.SetDetail(c, company)
}

func (rt *Router) saveCompany(c *fiber.Ctx) error {
	var in model.CompanyInfo
	if err := bind(c, &in); err != nil {
		return err
	}
	saved, err := rt.Services.Content.SaveCompany(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return http.SetDetail(c, saved)
}

func (rt *Router) listFaq(c *fiber.Ctx) error {
	items, err := rt.Services.Content.ListFaq(c.UserContext())
	if err != nil {
		return err
	}
	return http.SetDetail(c, items)
}

func (rt *Router) createFaq(c *fiber.Ctx) error {
	var item model.FaqItem
	if err := bind(c, &item); err != nil {
		return err
	}
	item.ID = ""
	if err := rt.Services.Content.CreateFaq(c.UserContext(), &item); err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	return http.SetDetail(c, item)
}

func (rt *Router) updateFaq(c *fiber.Ctx) error {
	var item model.FaqItem
	if err := bind(c, &item); err != nil {
		return err
	}
	item.ID = c.Params("id")
	if err := rt.Services.Content.UpdateFaq(c.UserContext(), &item); err != nil {
		return err
	}
	return http.SetDetail(c, item)
}

func (rt *Router) deleteFaq(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := rt.Services.Content.DeleteFaq(c.UserContext(), id); err != nil {
		return err
	}
	return http.SetDetail(c, fiber.Map{"id": id})
}

func (rt *Router) reorderFaq(c *fiber.Ctx) error {
	var req reorderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	items, err := rt.Services.Content.ReorderFaq(c.UserContext(), req.IDs)
	if err != nil {
		return err
	}
	return http.SetDetail(c, items)
}

func (rt *Router) listAnswers(c *fiber.Ctx) error {
	items, err := rt.Services.Content.ListAnswers(c.UserContext())
	if err != nil {
		return err
	}
	return http.SetDetail(c, items)
}

func (rt *Router) createAnswer(c *fiber.Ctx) error {
	var item model.AnswerBlock
	if err := bind(c, &item); err != nil {
		return err
	}
	item.ID = ""
	if err := rt.Services.Content.CreateAnswer(c.UserContext(), &item); err != nil {
		return err
	}
	c.Status(fiber.StatusCreated)
	return http.SetDetail(c, item)
}

func (rt *Router) updateAnswer(c *fiber.Ctx) error {
	var item model.AnswerBlock
	if err := bind(c, &item); err != nil {
		return err
	}
	item.ID = c.Params("id")
	if err := rt.Services.Content.UpdateAnswer(c.UserContext(), &item); err != nil {
		return err
	}
	return http.SetDetail(c, item)
}

func (rt *Router) deleteAnswer(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := rt.Services.Content.DeleteAnswer(c.UserContext(), id); err != nil {
		return err
	}
	return http.SetDetail(c, fiber.Map{"id": id})
}

func (rt *Router) reorderAnswers(c *fiber.Ctx) error {
	var req reorderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	items, err := rt.Services.Content.ReorderAnswers(c.UserContext(), req.IDs)
	if err != nil {
		return err
	}
	return http.SetDetail(c, items)
}

func (rt *Router) listPages(c *fiber.Ctx) error {
	pages, err := rt.Services.Content.ListPages(c.UserContext())
	if err != nil {
		return err
	}
	return http.SetDetail(c, pages)
}

func (rt *Router) getPageOverride(c *fiber.Ctx) error {
	o, err := rt.Services.Content.GetPageOverride(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return http.SetDetail(c, o)
}

func (rt *Router) upsertPageOverride(c *fiber.Ctx) error {
	var in model.PageMetadataOverride
	if err := bind(c, &in); err != nil {
		return err
	}
	in.PageID = c.Params("id")
	saved, err := rt.Services.Content.UpsertPageOverride(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return http.SetDetail(c, saved)
}

func (rt *Router) deletePageOverride(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := rt.Services.Content.DeletePageOverride(c.UserContext(), id); err != nil {
		return err
	}
	return http.SetDetail(c, fiber.Map{"pageId": id})
}

func (rt *Router) listProducts(c *fiber.Ctx) error {
	products, err := rt.Services.Content.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return http.SetDetail(c, products)
}

func (rt *Router) getProductOverride(c *fiber.Ctx) error {
	o, err := rt.Services.Content.GetProductOverride(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return http.SetDetail(c, o)
}

func (rt *Router) upsertProductOverride(c *fiber.Ctx) error {
	var in model.ProductMetadataOverride
	if err := bind(c, &in); err != nil {
		return err
	}
	in.ProductID = c.Params("id")
	saved, err := rt.Services.Content.UpsertProductOverride(c.UserContext(), &in)
	if err != nil {
		return err
	}
	return http.SetDetail(c, saved)
}

func (rt *Router) deleteProductOverride(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := rt.Services.Content.DeleteProductOverride(c.UserContext(), id); err != nil {
		return err
	}
	return http.SetDetail(c, fiber.Map{"productId": id})
}
