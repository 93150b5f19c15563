package cart

import (
	"context"
	"sort"

	"github.com/recyclelect/storefront-backend/internal/catalog"
	"github.com/recyclelect/storefront-backend/internal/pricing"
	"github.com/recyclelect/storefront-backend/pkg/errors"
)

// Line is one cart row enriched with catalog data. Product is nil for
// ids the catalog cannot resolve; those lines price at zero.
type Line struct {
	ProductID      string           `json:"product_id"`
	Quantity       int              `json:"quantity"`
	UnitPriceCents int64            `json:"unit_price_cents"`
	LineTotalCents int64            `json:"line_total_cents"`
	Product        *catalog.Product `json:"product,omitempty"`
}

// View is the cart as served to clients.
type View struct {
	Lines         []Line `json:"lines"`
	TotalItems    int    `json:"total_items"`
	SubtotalCents int64  `json:"subtotal_cents"`
	SavingsCents  int64  `json:"savings_cents"`
}

// Service mutates and prices per-session carts.
type Service interface {
	View(ctx context.Context, sessionID string) (View, error)
	Add(ctx context.Context, sessionID, productID string) (View, error)
	Remove(ctx context.Context, sessionID, productID string) (View, error)
	DeleteLine(ctx context.Context, sessionID, productID string) (View, error)
	Clear(ctx context.Context, sessionID string) error
	Items(ctx context.Context, sessionID string) (Cart, error)
}

type service struct {
	repo       Repository
	resolver   pricing.Resolver
	calculator *pricing.Calculator
}

func NewService(repo Repository, resolver pricing.Resolver, calculator *pricing.Calculator) Service {
	return &service{repo: repo, resolver: resolver, calculator: calculator}
}

func (s *service) View(ctx context.Context, sessionID string) (View, error) {
	current, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	return s.view(current), nil
}

func (s *service) Add(ctx context.Context, sessionID, productID string) (View, error) {
	return s.mutate(ctx, sessionID, productID, Cart.Add)
}

func (s *service) Remove(ctx context.Context, sessionID, productID string) (View, error) {
	return s.mutate(ctx, sessionID, productID, Cart.Remove)
}

func (s *service) DeleteLine(ctx context.Context, sessionID, productID string) (View, error) {
	return s.mutate(ctx, sessionID, productID, Cart.DeleteLine)
}

func (s *service) mutate(ctx context.Context, sessionID, productID string, op func(Cart, string)) (View, error) {
	if productID == "" {
		return View{}, errors.New(errors.CodeValidation, "product id is required")
	}
	current, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	op(current, productID)
	if err := s.repo.Save(ctx, sessionID, current); err != nil {
		return View{}, err
	}
	return s.view(current), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

func (s *service) Items(ctx context.Context, sessionID string) (Cart, error) {
	return s.repo.Get(ctx, sessionID)
}

func (s *service) view(current Cart) View {
	lines := make([]Line, 0, len(current))
	for id, qty := range current {
		line := Line{ProductID: id, Quantity: qty}
		if product, ok := s.resolver.Resolve(id); ok {
			p := product
			line.Product = &p
			line.UnitPriceCents = product.PriceCents
			line.LineTotalCents = product.PriceCents * int64(qty)
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})
	return View{
		Lines:         lines,
		TotalItems:    current.TotalItems(),
		SubtotalCents: s.calculator.Subtotal(current),
		SavingsCents:  s.calculator.Savings(current),
	}
}
