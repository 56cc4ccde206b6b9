package ledger

import "shopledger/internal/domain"

// Metrics computes the dashboard aggregates for the given date, fresh from
// current state. Low-stock products keep collection order.
func (e *Engine) Metrics(asOf string) domain.Metrics {
	e.mu.Lock()
	defer e.mu.Unlock()

	m := domain.Metrics{LowStock: []domain.Product{}}
	for _, s := range e.sales {
		m.TotalSales += s.Total
		if s.Date == asOf {
			m.TodaySales += s.Total
		}
	}
	for _, p := range e.products {
		if p.LowStock() {
			m.LowStock = append(m.LowStock, p)
		}
	}
	return m
}

// Valuation prices current stock at cost and at sell over all products.
func (e *Engine) Valuation() domain.Valuation {
	e.mu.Lock()
	defer e.mu.Unlock()

	var v domain.Valuation
	for _, p := range e.products {
		v.TotalCostValue += float64(p.Stock) * p.CostPrice
		v.PotentialRevenue += float64(p.Stock) * p.SellPrice
	}
	return v
}

// ReorderList pairs every low-stock product with its suggested purchase
// quantity, in collection order.
func (e *Engine) ReorderList() []domain.ReorderItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []domain.ReorderItem{}
	for _, p := range e.products {
		if p.LowStock() {
			out = append(out, domain.ReorderItem{Product: p, SuggestedQty: SuggestedReorderQty(p)})
		}
	}
	return out
}

// SuggestedReorderQty is the planning heuristic for how much to buy: refill
// to double the reorder threshold, never less than 1.
func SuggestedReorderQty(p domain.Product) int {
	if n := p.ReorderLevel*2 - p.Stock; n > 1 {
		return n
	}
	return 1
}
