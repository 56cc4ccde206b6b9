package ledger

import (
	"github.com/google/uuid"

	"shopledger/internal/domain"
)

// DemoProducts is the onboarding seed: a small stationery shop. The set is
// deterministic per call except for the freshly generated ids.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{ID: uuid.NewString(), Name: "Matador Pinpoint Pen", SKU: "PEN-MAT-PIN", Stock: 48, CostPrice: 10, SellPrice: 12, ReorderLevel: 20},
		{ID: uuid.NewString(), Name: "A4 Copy Paper (Ream)", SKU: "PAPER-A4-RIM", Stock: 6, CostPrice: 420, SellPrice: 500, ReorderLevel: 8},
		{ID: uuid.NewString(), Name: "Stapler #10", SKU: "STAP-10", Stock: 12, CostPrice: 70, SellPrice: 90, ReorderLevel: 10},
		{ID: uuid.NewString(), Name: "Epson 003 Ink", SKU: "INK-003", Stock: 3, CostPrice: 320, SellPrice: 380, ReorderLevel: 5},
	}
}
