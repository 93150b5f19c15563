package favorites

import (
	"context"

	"github.com/recyclelect/storefront-backend/internal/catalog"
	"github.com/recyclelect/storefront-backend/internal/pricing"
	"github.com/recyclelect/storefront-backend/pkg/errors"
)

// View is the favorites list as served to clients. Products holds the
// resolvable entries; ids without a catalog entry stay in IDs only.
type View struct {
	IDs      []string          `json:"ids"`
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

// ToggleResult reports the new membership state for the toggled id.
type ToggleResult struct {
	ProductID string `json:"product_id"`
	Favorite  bool   `json:"favorite"`
	Count     int    `json:"count"`
}

// Service mutates and reads per-session favorites.
type Service interface {
	View(ctx context.Context, sessionID string) (View, error)
	Toggle(ctx context.Context, sessionID, productID string) (ToggleResult, error)
	IsFavorite(ctx context.Context, sessionID, productID string) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	repo     Repository
	resolver pricing.Resolver
}

func NewService(repo Repository, resolver pricing.Resolver) Service {
	return &service{repo: repo, resolver: resolver}
}

func (s *service) View(ctx context.Context, sessionID string) (View, error) {
	favs, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	ids := favs.IDs()
	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := s.resolver.Resolve(id); ok {
			products = append(products, product)
		}
	}
	return View{IDs: ids, Products: products, Count: len(ids)}, nil
}

func (s *service) Toggle(ctx context.Context, sessionID, productID string) (ToggleResult, error) {
	if productID == "" {
		return ToggleResult{}, errors.New(errors.CodeValidation, "product id is required")
	}
	favs, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return ToggleResult{}, err
	}
	favorite := favs.Toggle(productID)
	if err := s.repo.Save(ctx, sessionID, favs); err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{ProductID: productID, Favorite: favorite, Count: len(favs)}, nil
}

func (s *service) IsFavorite(ctx context.Context, sessionID, productID string) (bool, error) {
	favs, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return favs.Has(productID), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}
