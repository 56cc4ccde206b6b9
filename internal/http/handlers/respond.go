package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopledger/internal/domain"
	applog "shopledger/internal/log"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Render(tmpl, data)
}

// ledgerErr maps the ledger's error taxonomy onto HTTP statuses. All of
// these are business rejections: state is unchanged, nothing to retry.
func ledgerErr(c *fiber.Ctx, action string, err error) error {
	var verr *domain.ValidationError
	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidQuantity):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		status = fiber.StatusConflict
	}
	applog.Info(c, action+".reject", map[string]any{"reason": err.Error()})
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
