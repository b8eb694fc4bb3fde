package cart

import (
	"context"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

type flatRate float64

func (r flatRate) CartRate() float64 { return float64(r) }

func newTestService(t *testing.T, rate float64, cfg Config) *Service {
	t.Helper()
	return NewService(store.NullStore{}, flatRate(rate), cfg)
}

func dress() domain.Product {
	return domain.Product{ID: "prod_dress", Name: "Wrap Dress", Price: 45000}
}

func TestTotals_PricingScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0.08, Config{FreeShippingThreshold: 500, ShippingCost: 15})

	svc.AddItem(ctx, "cust_1", dress(), "M", "black", 2)

	got := svc.Totals(ctx, "cust_1")
	want := Totals{ItemCount: 2, Subtotal: 90000, Tax: 7200, Shipping: 0, Total: 97200}
	if got != want {
		t.Fatalf("totals = %+v, want %+v", got, want)
	}
}

func TestTotals_FlatShippingBelowThreshold(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0.08, Config{FreeShippingThreshold: 100000, ShippingCost: 1500})

	svc.AddItem(ctx, "cust_1", dress(), "M", "black", 1)
	got := svc.Totals(ctx, "cust_1")
	if got.Shipping != 1500 {
		t.Fatalf("shipping = %d, want 1500", got.Shipping)
	}
	if got.Total != got.Subtotal+got.Tax+got.Shipping {
		t.Fatalf("total mismatch: %+v", got)
	}

	if empty := svc.Totals(ctx, "cust_2"); empty != (Totals{}) {
		t.Fatalf("empty cart totals = %+v", empty)
	}
}

func TestAddItem_IncrementsSameKeyAppendsNewKey(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0, Config{})
	p := dress()

	svc.AddItem(ctx, "cust_1", p, "M", "black", 1)
	svc.AddItem(ctx, "cust_1", p, "M", "black", 2)
	svc.AddItem(ctx, "cust_1", p, "L", "black", 1)

	lines := svc.Lines(ctx, "cust_1")
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
	if lines[0].Quantity != 3 || lines[0].Size != "M" {
		t.Fatalf("same-key add did not increment: %+v", lines[0])
	}
	if svc.Totals(ctx, "cust_1").ItemCount != 4 {
		t.Fatalf("itemCount = %d, want 4", svc.Totals(ctx, "cust_1").ItemCount)
	}
}

func TestSubtotal_OrderInvariant(t *testing.T) {
	ctx := context.Background()
	a := domain.Product{ID: "prod_a", Price: 1000}
	b := domain.Product{ID: "prod_b", Price: 2500}

	first := newTestService(t, 0, Config{})
	first.AddItem(ctx, "c", a, "S", "", 2)
	first.AddItem(ctx, "c", b, "", "red", 1)
	first.AddItem(ctx, "c", a, "S", "", 1)

	second := newTestService(t, 0, Config{})
	second.AddItem(ctx, "c", b, "", "red", 1)
	second.AddItem(ctx, "c", a, "S", "", 3)

	if first.Totals(ctx, "c").Subtotal != second.Totals(ctx, "c").Subtotal {
		t.Fatalf("subtotal depends on add order: %d vs %d",
			first.Totals(ctx, "c").Subtotal, second.Totals(ctx, "c").Subtotal)
	}
}

func TestUpdateQuantity_ZeroOrBelowRemoves(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0, Config{})
	p := dress()

	svc.AddItem(ctx, "cust_1", p, "M", "black", 2)
	svc.UpdateQuantity(ctx, "cust_1", p.ID, "M", "black", 5)
	if lines := svc.Lines(ctx, "cust_1"); lines[0].Quantity != 5 {
		t.Fatalf("absolute set failed: %+v", lines[0])
	}

	svc.UpdateQuantity(ctx, "cust_1", p.ID, "M", "black", 0)
	if lines := svc.Lines(ctx, "cust_1"); len(lines) != 0 {
		t.Fatalf("qty 0 did not remove: %+v", lines)
	}

	// Updating or removing a missing line is a no-op.
	svc.UpdateQuantity(ctx, "cust_1", "prod_ghost", "M", "black", 3)
	svc.RemoveItem(ctx, "cust_1", "prod_ghost", "M", "black")
	if lines := svc.Lines(ctx, "cust_1"); len(lines) != 0 {
		t.Fatalf("no-op mutated cart: %+v", lines)
	}
}

func TestCart_SnapshotsProductAtAddTime(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0, Config{})
	p := dress()

	svc.AddItem(ctx, "cust_1", p, "M", "black", 1)
	p.Price = 99
	if got := svc.Totals(ctx, "cust_1").Subtotal; got != 45000 {
		t.Fatalf("line repriced after catalog edit: subtotal = %d", got)
	}
}

func TestCart_PersistsAndRehydratesPerCustomer(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	s := store.NewSQLiteStore(db)

	svc := NewService(s, flatRate(0), Config{})
	svc.AddItem(ctx, "cust_1", dress(), "M", "black", 2)
	svc.AddItem(ctx, "cust_2", dress(), "S", "ivory", 1)

	// A fresh engine over the same storage sees each customer's cart
	// verbatim.
	reloaded := NewService(s, flatRate(0), Config{})
	if lines := reloaded.Lines(ctx, "cust_1"); len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("cust_1 cart lost: %+v", lines)
	}
	if lines := reloaded.Lines(ctx, "cust_2"); len(lines) != 1 || lines[0].Size != "S" {
		t.Fatalf("cust_2 cart lost: %+v", lines)
	}

	reloaded.Clear(ctx, "cust_1")
	third := NewService(s, flatRate(0), Config{})
	if lines := third.Lines(ctx, "cust_1"); len(lines) != 0 {
		t.Fatalf("clear not persisted: %+v", lines)
	}
}
