package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopledger/internal/ledger"
	applog "shopledger/internal/log"
)

type SaleHandler struct {
	Ledger *ledger.Engine
}

// GET /api/v1/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Ledger.Sales())
}

// POST /api/v1/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	rec, err := h.Ledger.PostSale(in.ProductID, in.Qty)
	if err != nil {
		return ledgerErr(c, "sale.post", err)
	}
	applog.Audit(c, "sale.post", map[string]any{"sale_id": rec.ID, "product_id": rec.ProductID, "qty": rec.Qty, "total": rec.Total})
	return c.Status(fiber.StatusCreated).JSON(rec)
}
