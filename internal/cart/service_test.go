package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recyclelect/storefront-backend/internal/catalog"
	"github.com/recyclelect/storefront-backend/internal/pricing"
)

type staticResolver map[string]catalog.Product

func (r staticResolver) Resolve(id string) (catalog.Product, bool) {
	p, ok := r[id]
	return p, ok
}

func cents(v int64) *int64 { return &v }

func testService() Service {
	resolver := staticResolver{
		"A": {ID: "A", Name: "Laptop A", PriceCents: 30000, OriginalPriceCents: cents(45000)},
		"B": {ID: "B", Name: "Part B", PriceCents: 7000},
	}
	return NewService(NewMemoryRepository(), resolver, pricing.NewCalculator(resolver, 1500))
}

func TestServiceAddAndView(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	_, err := svc.Add(ctx, "sess", "A")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "sess", "A")
	require.NoError(t, err)
	view, err := svc.Add(ctx, "sess", "B")
	require.NoError(t, err)

	require.Equal(t, 3, view.TotalItems)
	require.Equal(t, int64(67000), view.SubtotalCents)
	require.Equal(t, int64(30000), view.SavingsCents)
	require.Len(t, view.Lines, 2)
	require.Equal(t, "A", view.Lines[0].ProductID)
	require.Equal(t, int64(60000), view.Lines[0].LineTotalCents)
	require.NotNil(t, view.Lines[0].Product)
}

func TestServiceUnknownProductPricesAtZero(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	view, err := svc.Add(ctx, "sess", "ghost")
	require.NoError(t, err)
	require.Equal(t, 1, view.TotalItems)
	require.Equal(t, int64(0), view.SubtotalCents)
	require.Nil(t, view.Lines[0].Product)
}

func TestServiceRemoveAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	_, err := svc.Add(ctx, "sess", "A")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "sess", "A")
	require.NoError(t, err)

	view, err := svc.Remove(ctx, "sess", "A")
	require.NoError(t, err)
	require.Equal(t, 1, view.TotalItems)

	view, err = svc.DeleteLine(ctx, "sess", "A")
	require.NoError(t, err)
	require.Zero(t, view.TotalItems)
	require.Empty(t, view.Lines)
}

func TestServiceRejectsEmptyProductID(t *testing.T) {
	_, err := testService().Add(context.Background(), "sess", "")
	require.Error(t, err)
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	_, err := svc.Add(ctx, "sess-1", "A")
	require.NoError(t, err)

	view, err := svc.View(ctx, "sess-2")
	require.NoError(t, err)
	require.Zero(t, view.TotalItems)
}

func TestServiceClear(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	_, err := svc.Add(ctx, "sess", "A")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "sess"))

	items, err := svc.Items(ctx, "sess")
	require.NoError(t, err)
	require.True(t, items.IsEmpty())
}
