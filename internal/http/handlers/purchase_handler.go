package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopledger/internal/ledger"
	applog "shopledger/internal/log"
)

type PurchaseHandler struct {
	Ledger *ledger.Engine
}

// GET /api/v1/purchases
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Ledger.Purchases())
}

// POST /api/v1/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in struct {
		ProductID string  `json:"productId"`
		Qty       int     `json:"qty"`
		Rate      float64 `json:"rate"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	rec, err := h.Ledger.PostPurchase(in.ProductID, in.Qty, in.Rate)
	if err != nil {
		return ledgerErr(c, "purchase.post", err)
	}
	applog.Audit(c, "purchase.post", map[string]any{"purchase_id": rec.ID, "product_id": rec.ProductID, "qty": rec.Qty, "rate": rec.Rate})
	return c.Status(fiber.StatusCreated).JSON(rec)
}
