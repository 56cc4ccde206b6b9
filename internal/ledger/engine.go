package ledger

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopledger/internal/domain"
	applog "shopledger/internal/log"
	"shopledger/internal/store"
	"shopledger/internal/validate"
)

const dateFormat = "2006-01-02"

// Store is the persistence the engine writes through after every mutation.
// Saves are fire-and-forget: a failed write degrades to session-only state.
type Store interface {
	Load(key string, dst any) bool
	Save(key string, v any) error
}

// Engine owns the three ledger collections and every mutation to them.
// Mutations are copy-on-write: a new collection is built, swapped in whole,
// then persisted. A rejected operation changes nothing. One mutex serializes
// commands so readers never see a collection mid-mutation.
type Engine struct {
	mu        sync.Mutex
	products  []domain.Product
	sales     []domain.SaleRecord
	purchases []domain.PurchaseRecord
	store     Store
	now       func() time.Time
}

// New loads the three collections from st. A first run (no stored product
// collection) starts from the demo seed, same as the shop's first open.
func New(st Store) *Engine {
	e := &Engine{store: st, now: time.Now}
	if !st.Load(store.KeyProducts, &e.products) {
		e.products = DemoProducts()
		e.persist(store.KeyProducts, e.products)
	}
	st.Load(store.KeySales, &e.sales)
	st.Load(store.KeyPurchases, &e.purchases)
	return e
}

// ProductInput carries the creation form for a product. ReorderLevel is a
// pointer so "unspecified" can default to 5 rather than 0.
type ProductInput struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Stock        int     `json:"stock"`
	CostPrice    float64 `json:"costPrice"`
	SellPrice    float64 `json:"sellPrice"`
	ReorderLevel *int    `json:"reorderLevel"`
}

// AddProduct creates a product and prepends it to the collection.
func (e *Engine) AddProduct(in ProductInput) (domain.Product, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Product{}, &domain.ValidationError{Field: "name", Msg: "product name is required"}
	}
	level := 5
	if in.ReorderLevel != nil {
		level = *in.ReorderLevel
	}
	p := domain.Product{
		ID:           uuid.NewString(),
		Name:         name,
		SKU:          strings.TrimSpace(in.SKU),
		Stock:        in.Stock,
		CostPrice:    in.CostPrice,
		SellPrice:    in.SellPrice,
		ReorderLevel: level,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.products = append([]domain.Product{p}, e.products...)
	e.persist(store.KeyProducts, e.products)
	return p, nil
}

// UpdateProductField edits one field of one product. name/sku are stored as
// given (may be empty); numeric fields go through the coercion policy, so
// unparsable input lands as 0 instead of corrupting later arithmetic. A
// missing id is a no-op. Direct stock edits are deliberately unchecked; only
// sale posting guards against negative stock.
func (e *Engine) UpdateProductField(id, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.find(id)
	if i < 0 {
		return nil
	}
	products := clone(e.products)
	switch field {
	case "name":
		products[i].Name = value
	case "sku":
		products[i].SKU = value
	case "stock":
		products[i].Stock = validate.Int(value)
	case "costPrice":
		products[i].CostPrice = validate.Num(value)
	case "sellPrice":
		products[i].SellPrice = validate.Num(value)
	case "reorderLevel":
		products[i].ReorderLevel = validate.Int(value)
	default:
		return &domain.ValidationError{Field: field, Msg: "unknown product field"}
	}
	e.products = products
	e.persist(store.KeyProducts, e.products)
	return nil
}

// RemoveProduct deletes a product. Sale and purchase records referencing it
// are historical facts and stay untouched.
func (e *Engine) RemoveProduct(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	products := make([]domain.Product, 0, len(e.products))
	for _, p := range e.products {
		if p.ID != id {
			products = append(products, p)
		}
	}
	if len(products) == len(e.products) {
		return
	}
	e.products = products
	e.persist(store.KeyProducts, e.products)
}

// ResetToDemo replaces the product collection with the demo seed. Sales and
// purchases are kept.
func (e *Engine) ResetToDemo() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.products = DemoProducts()
	e.persist(store.KeyProducts, e.products)
}

// PostSale commits a sale: snapshot record prepended to the sales ledger and
// the product's stock decremented, as one unit. Rejections leave every
// collection exactly as it was.
func (e *Engine) PostSale(productID string, qty int) (domain.SaleRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.find(productID)
	if i < 0 {
		return domain.SaleRecord{}, domain.ErrNotFound
	}
	if qty <= 0 {
		return domain.SaleRecord{}, domain.ErrInvalidQuantity
	}
	p := e.products[i]
	if qty > p.Stock {
		return domain.SaleRecord{}, domain.ErrInsufficientStock
	}

	rec := domain.SaleRecord{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Name:      p.Name,
		Qty:       qty,
		Rate:      p.SellPrice,
		Total:     float64(qty) * p.SellPrice,
		Date:      e.today(),
	}
	products := clone(e.products)
	products[i].Stock -= qty
	e.products = products
	e.sales = append([]domain.SaleRecord{rec}, e.sales...)
	e.persist(store.KeySales, e.sales)
	e.persist(store.KeyProducts, e.products)
	return rec, nil
}

// PostPurchase commits stock received: snapshot record prepended to the
// purchase ledger, stock incremented, and costPrice overwritten with the
// purchase rate (last-purchase-price costing). Rate is taken as given; the
// ledger records what was actually paid.
func (e *Engine) PostPurchase(productID string, qty int, rate float64) (domain.PurchaseRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.find(productID)
	if i < 0 {
		return domain.PurchaseRecord{}, domain.ErrNotFound
	}
	if qty <= 0 {
		return domain.PurchaseRecord{}, domain.ErrInvalidQuantity
	}
	p := e.products[i]

	rec := domain.PurchaseRecord{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Name:      p.Name,
		Qty:       qty,
		Rate:      rate,
		Total:     float64(qty) * rate,
		Date:      e.today(),
	}
	products := clone(e.products)
	products[i].Stock += qty
	products[i].CostPrice = rate
	e.products = products
	e.purchases = append([]domain.PurchaseRecord{rec}, e.purchases...)
	e.persist(store.KeyPurchases, e.purchases)
	e.persist(store.KeyProducts, e.products)
	return rec, nil
}

// Products returns a snapshot of the product collection.
func (e *Engine) Products() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.products)
}

// Sales returns a snapshot of the sales ledger, newest first.
func (e *Engine) Sales() []domain.SaleRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.sales)
}

// Purchases returns a snapshot of the purchase ledger, newest first.
func (e *Engine) Purchases() []domain.PurchaseRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.purchases)
}

// Search filters products by a case-insensitive substring match over
// name and sku. An empty query returns everything.
func (e *Engine) Search(q string) []domain.Product {
	q = strings.ToLower(validate.Q(q))
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Product, 0, len(e.products))
	for _, p := range e.products {
		if q == "" || strings.Contains(strings.ToLower(p.Name+" "+p.SKU), q) {
			out = append(out, p)
		}
	}
	return out
}

// Today is the device-local calendar date. Record tagging and today-sales
// filtering both read this same clock.
func (e *Engine) Today() string {
	return e.today()
}

func (e *Engine) today() string { return e.now().Format(dateFormat) }

// find returns the index of the product with the given id, or -1.
// Caller holds the lock.
func (e *Engine) find(id string) int {
	for i, p := range e.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// persist writes a collection through the store. Failures are logged and
// swallowed: in-memory state stays correct for this session.
func (e *Engine) persist(key string, v any) {
	if err := e.store.Save(key, v); err != nil {
		applog.Error(nil, "ledger.persist.fail", err, map[string]any{"key": key})
	}
}

// clone copies a collection. Always non-nil so snapshots encode as JSON
// arrays even when empty.
func clone[T any](s []T) []T {
	out := make([]T, 0, len(s))
	return append(out, s...)
}
