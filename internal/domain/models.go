package domain

// Product is a stocked shop item. Stock changes only through explicit
// operations: create, sale posting, purchase posting, or a direct field edit.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Stock        int     `json:"stock"`
	CostPrice    float64 `json:"costPrice"`
	SellPrice    float64 `json:"sellPrice"`
	ReorderLevel int     `json:"reorderLevel"`
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p Product) LowStock() bool { return p.Stock <= p.ReorderLevel }

// SaleRecord is a historical fact, immutable once posted. Name and Rate are
// snapshots of the product at sale time; they survive later product edits
// and deletion.
type SaleRecord struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Rate      float64 `json:"rate"`
	Total     float64 `json:"total"`
	Date      string  `json:"date"` // YYYY-MM-DD, device-local
}

// PurchaseRecord mirrors SaleRecord for stock received. Rate is the unit
// cost paid, snapshotted at posting time.
type PurchaseRecord struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Rate      float64 `json:"rate"`
	Total     float64 `json:"total"`
	Date      string  `json:"date"`
}

// Metrics are the dashboard aggregates, recomputed fresh from current state.
type Metrics struct {
	TotalSales float64   `json:"totalSales"`
	TodaySales float64   `json:"todaySales"`
	LowStock   []Product `json:"lowStockProducts"`
}

// Valuation prices the whole inventory at cost and at sell.
type Valuation struct {
	TotalCostValue   float64 `json:"totalCostValue"`
	PotentialRevenue float64 `json:"potentialRevenue"`
}

// ReorderItem pairs a low-stock product with its suggested purchase
// quantity. The suggestion is a planning heuristic, not a constraint.
type ReorderItem struct {
	Product      Product `json:"product"`
	SuggestedQty int     `json:"suggestedQty"`
}
