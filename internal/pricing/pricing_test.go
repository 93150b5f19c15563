package pricing

import (
	"testing"

	"github.com/recyclelect/storefront-backend/internal/catalog"
	"github.com/recyclelect/storefront-backend/pkg/enums"
)

type staticResolver map[string]catalog.Product

func (r staticResolver) Resolve(id string) (catalog.Product, bool) {
	p, ok := r[id]
	return p, ok
}

func cents(v int64) *int64 { return &v }

func testCalculator() *Calculator {
	return NewCalculator(staticResolver{
		"A": {ID: "A", PriceCents: 30000, OriginalPriceCents: cents(45000)},
		"B": {ID: "B", PriceCents: 7000},
	}, 1500)
}

func TestSubtotal(t *testing.T) {
	calc := testCalculator()

	got := calc.Subtotal(map[string]int{"A": 2, "B": 1})
	if got != 67000 {
		t.Fatalf("expected 67000 cents, got %d", got)
	}

	if got := calc.Subtotal(nil); got != 0 {
		t.Fatalf("empty cart should cost 0, got %d", got)
	}
}

func TestSubtotalIgnoresUnknownIDs(t *testing.T) {
	calc := testCalculator()

	with := calc.Subtotal(map[string]int{"A": 2, "B": 1, "ghost": 5})
	without := calc.Subtotal(map[string]int{"A": 2, "B": 1})
	if with != without {
		t.Fatalf("unknown id changed the subtotal: %d vs %d", with, without)
	}
}

func TestDeliveryFee(t *testing.T) {
	calc := testCalculator()

	cases := []struct {
		method enums.DeliveryMethod
		want   int64
	}{
		{enums.DeliveryMethodStandard, 0},
		{enums.DeliveryMethodExpress, 1500},
		{enums.DeliveryMethodPickup, 0},
		{enums.DeliveryMethod("carrier-pigeon"), 0},
	}
	for _, tc := range cases {
		if got := calc.DeliveryFee(tc.method); got != tc.want {
			t.Fatalf("fee for %q: expected %d, got %d", tc.method, tc.want, got)
		}
	}
}

func TestUpgradesTotal(t *testing.T) {
	calc := testCalculator()

	got := calc.UpgradesTotal(map[string]string{"storage": "256gb", "ram": "8gb"})
	if got != 6500 {
		t.Fatalf("expected 6500 cents, got %d", got)
	}

	if got := calc.UpgradesTotal(nil); got != 0 {
		t.Fatalf("no selections should cost 0, got %d", got)
	}

	if got := calc.UpgradesTotal(map[string]string{"storage": "9000gb", "gpu": "rtx"}); got != 0 {
		t.Fatalf("unknown selections should cost 0, got %d", got)
	}
}

func TestQuoteForCheckoutScenario(t *testing.T) {
	calc := testCalculator()
	items := map[string]int{"A": 2, "B": 1}

	express := calc.QuoteFor(items, enums.DeliveryMethodExpress, nil)
	if express.GrandTotalCents != 68500 {
		t.Fatalf("express total: expected 68500, got %d", express.GrandTotalCents)
	}

	upgraded := calc.QuoteFor(items, enums.DeliveryMethodExpress, map[string]string{"storage": "256gb", "ram": "8gb"})
	if upgraded.GrandTotalCents != 73500 {
		t.Fatalf("upgraded total: expected 73500, got %d", upgraded.GrandTotalCents)
	}
	if upgraded.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", upgraded.TotalItems)
	}
	if upgraded.SubtotalCents != 67000 || upgraded.DeliveryFeeCents != 1500 || upgraded.UpgradesTotalCents != 6500 {
		t.Fatalf("unexpected breakdown: %+v", upgraded)
	}
}

func TestSavings(t *testing.T) {
	calc := testCalculator()

	// Only A carries an original price: (450-300) x 2 = 300$.
	if got := calc.Savings(map[string]int{"A": 2, "B": 3}); got != 30000 {
		t.Fatalf("expected 30000 cents saved, got %d", got)
	}

	if got := calc.Savings(map[string]int{"B": 3, "ghost": 1}); got != 0 {
		t.Fatalf("expected no savings, got %d", got)
	}
}

func TestHasUpgrade(t *testing.T) {
	calc := testCalculator()

	if !calc.HasUpgrade("storage", "256gb") {
		t.Fatal("expected storage/256gb to exist")
	}
	if calc.HasUpgrade("storage", "1tb") {
		t.Fatal("unexpected storage/1tb")
	}
	if calc.HasUpgrade("gpu", "rtx") {
		t.Fatal("unexpected gpu category")
	}
}

func TestDeliveryOptionsOrder(t *testing.T) {
	opts := testCalculator().DeliveryOptions()
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if opts[0].Method != enums.DeliveryMethodStandard || opts[1].Method != enums.DeliveryMethodExpress || opts[2].Method != enums.DeliveryMethodPickup {
		t.Fatalf("unexpected option order: %+v", opts)
	}
	if opts[1].FeeCents != 1500 {
		t.Fatalf("express fee should follow configuration, got %d", opts[1].FeeCents)
	}
}
