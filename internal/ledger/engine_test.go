package ledger_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"shopledger/internal/domain"
	"shopledger/internal/ledger"
	"shopledger/internal/store"
)

// memStore keeps collections in a map, standing in for the sqlite store.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Load(key string, dst any) bool {
	b, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, dst) == nil
}

func (m *memStore) Save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

// newEngine builds an engine whose store already holds an empty catalogue,
// so tests start from a clean slate instead of the demo seed.
func newEngine(t *testing.T) *ledger.Engine {
	t.Helper()
	st := newMemStore()
	if err := st.Save(store.KeyProducts, []domain.Product{}); err != nil {
		t.Fatal(err)
	}
	return ledger.New(st)
}

func addProduct(t *testing.T, e *ledger.Engine, in ledger.ProductInput) domain.Product {
	t.Helper()
	p, err := e.AddProduct(in)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func intp(n int) *int { return &n }

func TestAddProduct(t *testing.T) {
	e := newEngine(t)

	if _, err := e.AddProduct(ledger.ProductInput{Name: "  "}); err == nil {
		t.Fatal("blank name must be rejected")
	} else {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Field != "name" {
			t.Fatalf("want ValidationError on name, got %v", err)
		}
	}
	if len(e.Products()) != 0 {
		t.Fatal("rejected create must not change state")
	}

	first := addProduct(t, e, ledger.ProductInput{Name: "Pen", SKU: "PEN-1", Stock: 48, CostPrice: 10, SellPrice: 12})
	if first.ID == "" {
		t.Fatal("product id must be assigned")
	}
	if first.ReorderLevel != 5 {
		t.Fatalf("unspecified reorderLevel must default to 5, got %d", first.ReorderLevel)
	}

	second := addProduct(t, e, ledger.ProductInput{Name: "Ink", ReorderLevel: intp(0)})
	if second.ReorderLevel != 0 {
		t.Fatalf("explicit reorderLevel 0 must stick, got %d", second.ReorderLevel)
	}

	got := e.Products()
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("products must be newest first, got %+v", got)
	}
}

func TestUpdateProductField(t *testing.T) {
	e := newEngine(t)
	p := addProduct(t, e, ledger.ProductInput{Name: "Pen", SKU: "PEN-1", Stock: 10, CostPrice: 8, SellPrice: 12})

	// missing id is a no-op
	if err := e.UpdateProductField("no-such-id", "stock", "99"); err != nil {
		t.Fatal(err)
	}
	if e.Products()[0].Stock != 10 {
		t.Fatal("update of unknown id must not touch other products")
	}

	// string fields stored as given, even empty
	if err := e.UpdateProductField(p.ID, "sku", ""); err != nil {
		t.Fatal(err)
	}
	if e.Products()[0].SKU != "" {
		t.Fatal("sku edit must be stored as given")
	}

	// numeric junk normalizes to 0
	if err := e.UpdateProductField(p.ID, "sellPrice", "lots"); err != nil {
		t.Fatal(err)
	}
	if e.Products()[0].SellPrice != 0 {
		t.Fatalf("unparsable numeric must coerce to 0, got %v", e.Products()[0].SellPrice)
	}

	// direct stock edits are unchecked, negative included
	if err := e.UpdateProductField(p.ID, "stock", "-4"); err != nil {
		t.Fatal(err)
	}
	if e.Products()[0].Stock != -4 {
		t.Fatalf("direct stock edit must be unchecked, got %d", e.Products()[0].Stock)
	}

	if err := e.UpdateProductField(p.ID, "color", "red"); err == nil {
		t.Fatal("unknown field must be rejected")
	}
}

func TestPostSaleBasic(t *testing.T) {
	e := newEngine(t)
	p := addProduct(t, e, ledger.ProductInput{Name: "Pen", Stock: 48, SellPrice: 12})

	rec, err := e.PostSale(p.ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Qty != 5 || rec.Rate != 12 || rec.Total != 60 {
		t.Fatalf("bad sale record: %+v", rec)
	}
	if rec.Name != "Pen" || rec.ProductID != p.ID {
		t.Fatalf("bad snapshot fields: %+v", rec)
	}
	if rec.Date != e.Today() {
		t.Fatalf("sale must be dated today, got %q", rec.Date)
	}
	if got := e.Products()[0].Stock; got != 43 {
		t.Fatalf("stock must drop to 43, got %d", got)
	}

	m := e.Metrics(e.Today())
	if m.TodaySales != 60 || m.TotalSales != 60 {
		t.Fatalf("today/total sales must include the sale: %+v", m)
	}

	sales := e.Sales()
	if len(sales) != 1 || sales[0].ID != rec.ID {
		t.Fatalf("sale must be prepended to the ledger: %+v", sales)
	}
}

func TestPostSaleRejections(t *testing.T) {
	e := newEngine(t)
	p := addProduct(t, e, ledger.ProductInput{Name: "Paper", Stock: 3, SellPrice: 500})

	before := snapshot(e)

	if _, err := e.PostSale("no-such-id", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := e.PostSale(p.ID, 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity, got %v", err)
	}
	if _, err := e.PostSale(p.ID, -2); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity, got %v", err)
	}
	if _, err := e.PostSale(p.ID, 5); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	if !reflect.DeepEqual(before, snapshot(e)) {
		t.Fatal("rejected postings must leave all collections untouched")
	}
	if e.Products()[0].Stock != 3 {
		t.Fatalf("stock must remain 3, got %d", e.Products()[0].Stock)
	}
}

func TestPostPurchaseUpdatesCost(t *testing.T) {
	e := newEngine(t)
	p := addProduct(t, e, ledger.ProductInput{Name: "Paper", Stock: 6, CostPrice: 420, SellPrice: 500})

	rec, err := e.PostPurchase(p.ID, 10, 450)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Qty != 10 || rec.Rate != 450 || rec.Total != 4500 {
		t.Fatalf("bad purchase record: %+v", rec)
	}
	got := e.Products()[0]
	if got.Stock != 16 {
		t.Fatalf("stock must rise to 16, got %d", got.Stock)
	}
	if got.CostPrice != 450 {
		t.Fatalf("costPrice must follow the purchase rate, got %v", got.CostPrice)
	}

	// rate is recorded as paid, not validated
	if _, err := e.PostPurchase(p.ID, 1, 0); err != nil {
		t.Fatal(err)
	}
	if e.Products()[0].CostPrice != 0 {
		t.Fatal("zero rate must still overwrite costPrice")
	}
}

func TestPostPurchaseRejections(t *testing.T) {
	e := newEngine(t)
	p := addProduct(t, e, ledger.ProductInput{Name: "Ink", Stock: 2})

	before := snapshot(e)

	if _, err := e.PostPurchase("no-such-id", 1, 10); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := e.PostPurchase(p.ID, 0, 10); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity, got %v", err)
	}

	if !reflect.DeepEqual(before, snapshot(e)) {
		t.Fatal("rejected postings must leave all collections untouched")
	}
}

func TestStockConservation(t *testing.T) {
	e := newEngine(t)
	p := addProduct(t, e, ledger.ProductInput{Name: "Pen", Stock: 20, SellPrice: 12})

	sold, bought := 0, 0
	post := []struct {
		sale bool
		qty  int
	}{
		{true, 5}, {false, 10}, {true, 12}, {true, 40}, // last sale must fail
		{false, 3}, {true, 7},
	}
	for _, op := range post {
		if op.sale {
			if _, err := e.PostSale(p.ID, op.qty); err == nil {
				sold += op.qty
			}
		} else {
			if _, err := e.PostPurchase(p.ID, op.qty, 10); err == nil {
				bought += op.qty
			}
		}
	}

	want := 20 - sold + bought
	if got := e.Products()[0].Stock; got != want {
		t.Fatalf("stock conservation broken: got %d, want %d", got, want)
	}
	if got := e.Products()[0].Stock; got < 0 {
		t.Fatalf("sales must never drive stock negative, got %d", got)
	}
}

func TestLowStockMembership(t *testing.T) {
	e := newEngine(t)
	low := addProduct(t, e, ledger.ProductInput{Name: "Ink", Stock: 3, ReorderLevel: intp(5)})
	edge := addProduct(t, e, ledger.ProductInput{Name: "Stapler", Stock: 10, ReorderLevel: intp(10)})
	ok := addProduct(t, e, ledger.ProductInput{Name: "Pen", Stock: 48, ReorderLevel: intp(20)})

	m := e.Metrics(e.Today())
	if len(m.LowStock) != 2 {
		t.Fatalf("want 2 low-stock products, got %+v", m.LowStock)
	}
	// collection order: newest first
	if m.LowStock[0].ID != edge.ID || m.LowStock[1].ID != low.ID {
		t.Fatalf("low-stock order must follow the product collection: %+v", m.LowStock)
	}

	// recomputed fresh after an edit
	if err := e.UpdateProductField(ok.ID, "stock", "1"); err != nil {
		t.Fatal(err)
	}
	if len(e.Metrics(e.Today()).LowStock) != 3 {
		t.Fatal("low stock must be recomputed from current state")
	}
}

func TestSuggestedReorderQty(t *testing.T) {
	if got := ledger.SuggestedReorderQty(domain.Product{Stock: 6, ReorderLevel: 8}); got != 10 {
		t.Fatalf("want 10, got %d", got)
	}
	if got := ledger.SuggestedReorderQty(domain.Product{Stock: 50, ReorderLevel: 5}); got != 1 {
		t.Fatalf("suggestion must never drop below 1, got %d", got)
	}
}

func TestReorderList(t *testing.T) {
	e := newEngine(t)
	addProduct(t, e, ledger.ProductInput{Name: "Ink", Stock: 6, ReorderLevel: intp(8)})
	addProduct(t, e, ledger.ProductInput{Name: "Pen", Stock: 48, ReorderLevel: intp(20)})

	list := e.ReorderList()
	if len(list) != 1 {
		t.Fatalf("want one reorder item, got %+v", list)
	}
	if list[0].Product.Name != "Ink" || list[0].SuggestedQty != 10 {
		t.Fatalf("bad reorder item: %+v", list[0])
	}
}

func TestValuation(t *testing.T) {
	e := newEngine(t)
	addProduct(t, e, ledger.ProductInput{Name: "Pen", Stock: 10, CostPrice: 8, SellPrice: 12})
	addProduct(t, e, ledger.ProductInput{Name: "Ink", Stock: 2, CostPrice: 320, SellPrice: 380})

	v := e.Valuation()
	if v.TotalCostValue != 10*8+2*320 {
		t.Fatalf("bad cost valuation: %+v", v)
	}
	if v.PotentialRevenue != 10*12+2*380 {
		t.Fatalf("bad revenue valuation: %+v", v)
	}
}

func TestRemoveProductPreservesHistory(t *testing.T) {
	e := newEngine(t)
	p := addProduct(t, e, ledger.ProductInput{Name: "Pen", Stock: 10, SellPrice: 12, ReorderLevel: intp(20)})
	if _, err := e.PostSale(p.ID, 2); err != nil {
		t.Fatal(err)
	}

	e.RemoveProduct(p.ID)
	if len(e.Products()) != 0 {
		t.Fatal("product must be gone")
	}

	sales := e.Sales()
	if len(sales) != 1 || sales[0].ProductID != p.ID || sales[0].Name != "Pen" {
		t.Fatalf("sale history must survive product deletion: %+v", sales)
	}
	if len(e.Metrics(e.Today()).LowStock) != 0 {
		t.Fatal("deleted product must leave the low-stock list")
	}
	if e.Metrics(e.Today()).TotalSales != 24 {
		t.Fatal("totals must still count historical sales")
	}
}

func TestResetToDemo(t *testing.T) {
	e := newEngine(t)
	p := addProduct(t, e, ledger.ProductInput{Name: "Pen", Stock: 10, SellPrice: 12})
	if _, err := e.PostSale(p.ID, 1); err != nil {
		t.Fatal(err)
	}

	e.ResetToDemo()

	got := e.Products()
	if len(got) != 4 {
		t.Fatalf("demo seed must have 4 products, got %d", len(got))
	}
	if len(e.Sales()) != 1 {
		t.Fatal("demo reset must not touch the sales ledger")
	}

	// deterministic apart from ids
	a, b := ledger.DemoProducts(), ledger.DemoProducts()
	for i := range a {
		if a[i].ID == b[i].ID {
			t.Fatal("demo ids must be freshly generated per call")
		}
		a[i].ID, b[i].ID = "", ""
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("demo seed must be deterministic apart from ids:\n%+v\n%+v", a, b)
	}
}

func TestSeedOnFirstRun(t *testing.T) {
	st := newMemStore()
	e := ledger.New(st)
	if len(e.Products()) != 4 {
		t.Fatalf("first run must start from the demo seed, got %d products", len(e.Products()))
	}

	// an explicitly empty stored catalogue is not a first run
	st2 := newMemStore()
	if err := st2.Save(store.KeyProducts, []domain.Product{}); err != nil {
		t.Fatal(err)
	}
	if got := ledger.New(st2).Products(); len(got) != 0 {
		t.Fatalf("stored empty catalogue must stay empty, got %+v", got)
	}
}

func TestSearch(t *testing.T) {
	e := newEngine(t)
	addProduct(t, e, ledger.ProductInput{Name: "Matador Pinpoint Pen", SKU: "PEN-MAT-PIN"})
	addProduct(t, e, ledger.ProductInput{Name: "Epson 003 Ink", SKU: "INK-003"})

	if got := e.Search("pen"); len(got) != 1 || got[0].Name != "Matador Pinpoint Pen" {
		t.Fatalf("name match failed: %+v", got)
	}
	if got := e.Search("003"); len(got) != 1 || got[0].SKU != "INK-003" {
		t.Fatalf("sku match failed: %+v", got)
	}
	if got := e.Search(""); len(got) != 2 {
		t.Fatalf("empty query must return everything: %+v", got)
	}
	if got := e.Search("zzz"); len(got) != 0 {
		t.Fatalf("no-match query must return nothing: %+v", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	e := newEngine(t)
	addProduct(t, e, ledger.ProductInput{Name: "Pen", Stock: 10})

	got := e.Products()
	got[0].Stock = 999
	if e.Products()[0].Stock != 10 {
		t.Fatal("snapshots must not alias engine state")
	}
}

func TestPersistAcrossRestart(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	st.DB.SetMaxOpenConns(1)

	e := ledger.New(st)
	e.ResetToDemo()
	p := e.Products()[0]
	if _, err := e.PostSale(p.ID, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := e.PostPurchase(p.ID, 5, 11); err != nil {
		t.Fatal(err)
	}

	// a fresh engine over the same store sees the same ledger
	e2 := ledger.New(st)
	if !reflect.DeepEqual(snapshot(e), snapshot(e2)) {
		t.Fatal("restarted engine must load identical state")
	}
}

type state struct {
	products  []domain.Product
	sales     []domain.SaleRecord
	purchases []domain.PurchaseRecord
}

func snapshot(e *ledger.Engine) state {
	return state{e.Products(), e.Sales(), e.Purchases()}
}
