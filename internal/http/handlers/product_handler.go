package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"shopledger/internal/ledger"
	applog "shopledger/internal/log"
	"shopledger/internal/validate"
)

type ProductHandler struct {
	Ledger *ledger.Engine
}

// GET /api/v1/products?q=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Ledger.Search(validate.Q(c.Query("q"))))
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in ledger.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	p, err := h.Ledger.AddProduct(in)
	if err != nil {
		return ledgerErr(c, "product.create", err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PATCH /api/v1/products/:id — one field per call, form-edit style.
func (h *ProductHandler) UpdateField(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var in struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	value := ""
	if in.Value != nil {
		value = fmt.Sprint(in.Value)
	}
	if err := h.Ledger.UpdateProductField(id, in.Field, value); err != nil {
		return ledgerErr(c, "product.update", err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id, "field": in.Field})
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	h.Ledger.RemoveProduct(id)
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/v1/products/demo — replace the catalogue with the demo seed.
func (h *ProductHandler) ResetDemo(c *fiber.Ctx) error {
	h.Ledger.ResetToDemo()
	applog.Audit(c, "product.demo.reset", nil)
	return c.JSON(h.Ledger.Products())
}
