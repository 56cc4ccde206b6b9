// Package export serializes ledger state for the reporting surface. The CSV
// shape matches what the shop's spreadsheet tooling already imports: every
// cell is JSON-stringified on its own, so strings arrive quoted and numbers
// bare, with no type coercion on the way out.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"shopledger/internal/domain"
)

// Backup is the full-state JSON document: the three collections verbatim,
// pretty-printed.
func Backup(products []domain.Product, sales []domain.SaleRecord, purchases []domain.PurchaseRecord) ([]byte, error) {
	doc := struct {
		Products  []domain.Product        `json:"products"`
		Sales     []domain.SaleRecord     `json:"sales"`
		Purchases []domain.PurchaseRecord `json:"purchases"`
	}{products, sales, purchases}
	return json.MarshalIndent(doc, "", "  ")
}

// ProductsCSV renders the product collection, one line per record.
func ProductsCSV(products []domain.Product) []byte {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{p.ID, p.Name, p.SKU, p.Stock, p.CostPrice, p.SellPrice, p.ReorderLevel})
	}
	return renderCSV([]string{"id", "name", "sku", "stock", "costPrice", "sellPrice", "reorderLevel"}, rows)
}

// SalesCSV renders the sales ledger, newest first.
func SalesCSV(sales []domain.SaleRecord) []byte {
	rows := make([][]any, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []any{s.ID, s.ProductID, s.Name, s.Qty, s.Rate, s.Total, s.Date})
	}
	return renderCSV(recordHeaders, rows)
}

// PurchasesCSV renders the purchase ledger, newest first.
func PurchasesCSV(purchases []domain.PurchaseRecord) []byte {
	rows := make([][]any, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, []any{p.ID, p.ProductID, p.Name, p.Qty, p.Rate, p.Total, p.Date})
	}
	return renderCSV(recordHeaders, rows)
}

// Sale and purchase records share one shape.
var recordHeaders = []string{"id", "productId", "name", "qty", "rate", "total", "date"}

func renderCSV(headers []string, rows [][]any) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, v := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(cell(v))
		}
	}
	return []byte(b.String())
}

func cell(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return string(b)
}
