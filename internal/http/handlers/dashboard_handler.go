package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopledger/internal/ledger"
)

type DashboardHandler struct {
	Ledger *ledger.Engine
}

// GET /
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	m := h.Ledger.Metrics(h.Ledger.Today())
	reorder := h.Ledger.ReorderList()
	return render(c, "dashboard", fiber.Map{
		"Metrics":      m,
		"Reorder":      reorder,
		"ReorderCount": len(reorder),
	})
}

// GET /api/v1/metrics
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.Ledger.Metrics(h.Ledger.Today()))
}

// GET /api/v1/valuation
func (h *DashboardHandler) Valuation(c *fiber.Ctx) error {
	return c.JSON(h.Ledger.Valuation())
}

// GET /api/v1/reorder
func (h *DashboardHandler) Reorder(c *fiber.Ctx) error {
	return c.JSON(h.Ledger.ReorderList())
}
