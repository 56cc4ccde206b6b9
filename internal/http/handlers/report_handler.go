package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopledger/internal/export"
	"shopledger/internal/ledger"
	applog "shopledger/internal/log"
)

type ReportHandler struct {
	Ledger *ledger.Engine
}

// GET /export/products.csv
func (h *ReportHandler) ProductsCSV(c *fiber.Ctx) error {
	return sendCSV(c, "products.csv", export.ProductsCSV(h.Ledger.Products()))
}

// GET /export/sales.csv
func (h *ReportHandler) SalesCSV(c *fiber.Ctx) error {
	return sendCSV(c, "sales.csv", export.SalesCSV(h.Ledger.Sales()))
}

// GET /export/purchases.csv
func (h *ReportHandler) PurchasesCSV(c *fiber.Ctx) error {
	return sendCSV(c, "purchases.csv", export.PurchasesCSV(h.Ledger.Purchases()))
}

// GET /export/backup.json — full state, verbatim.
func (h *ReportHandler) Backup(c *fiber.Ctx) error {
	doc, err := export.Backup(h.Ledger.Products(), h.Ledger.Sales(), h.Ledger.Purchases())
	if err != nil {
		applog.Error(c, "export.backup.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not build backup"})
	}
	c.Set(fiber.HeaderContentType, "application/json; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="backup.json"`)
	return c.Send(doc)
}

func sendCSV(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
