package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/recyclelect/storefront-backend/api/responses"
	"github.com/recyclelect/storefront-backend/internal/catalog"
	"github.com/recyclelect/storefront-backend/pkg/enums"
	pkgerrors "github.com/recyclelect/storefront-backend/pkg/errors"
	"github.com/recyclelect/storefront-backend/pkg/logger"
	"github.com/recyclelect/storefront-backend/pkg/money"
)

// ProductsList serves the filtered, sorted catalog listing.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		params := catalog.ListParams{
			Query: strings.TrimSpace(r.URL.Query().Get("q")),
			Sort:  strings.TrimSpace(r.URL.Query().Get("sort")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			params.Category = category
		}

		for _, raw := range r.URL.Query()["brand"] {
			if brand := strings.TrimSpace(raw); brand != "" {
				params.Brands = append(params.Brands, brand)
			}
		}

		for _, raw := range r.URL.Query()["condition"] {
			condition, err := enums.ParseCondition(strings.TrimSpace(raw))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition"))
				return
			}
			params.Conditions = append(params.Conditions, condition)
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("max_price")); raw != "" {
			cents, err := money.CentsFromString(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid max price"))
				return
			}
			params.MaxPriceCents = cents
		}

		products := svc.List(params)
		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"count":    len(products),
		})
	}
}

// ProductsGet serves a single product sheet.
func ProductsGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "productId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, ok := svc.Get(id)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductBrands serves the distinct brand list used by listing filters.
func ProductBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"brands": svc.Brands()})
	}
}
