package controllers

import (
	"net/http"

	"github.com/recyclelect/storefront-backend/api/responses"
	"github.com/recyclelect/storefront-backend/internal/pricing"
	pkgerrors "github.com/recyclelect/storefront-backend/pkg/errors"
	"github.com/recyclelect/storefront-backend/pkg/logger"
	"github.com/recyclelect/storefront-backend/pkg/money"
)

type deliveryOptionDTO struct {
	pricing.DeliveryOption
	FeeDisplay string `json:"fee_display"`
}

type upgradeOptionDTO struct {
	pricing.UpgradeOption
	PriceDisplay string `json:"price_display"`
}

type upgradeCategoryDTO struct {
	ID      string             `json:"id"`
	Label   string             `json:"label"`
	Options []upgradeOptionDTO `json:"options"`
}

// DeliveryOptions serves the shipping choices with display prices.
func DeliveryOptions(calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing unavailable"))
			return
		}
		options := calc.DeliveryOptions()
		dtos := make([]deliveryOptionDTO, 0, len(options))
		for _, opt := range options {
			dtos = append(dtos, deliveryOptionDTO{
				DeliveryOption: opt,
				FeeDisplay:     money.FormatCAD(opt.FeeCents),
			})
		}
		responses.WriteSuccess(w, map[string]any{"delivery_options": dtos})
	}
}

// UpgradeOptions serves the configurable upgrade categories.
func UpgradeOptions(calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing unavailable"))
			return
		}
		categories := calc.UpgradeCatalog()
		dtos := make([]upgradeCategoryDTO, 0, len(categories))
		for _, category := range categories {
			options := make([]upgradeOptionDTO, 0, len(category.Options))
			for _, opt := range category.Options {
				options = append(options, upgradeOptionDTO{
					UpgradeOption: opt,
					PriceDisplay:  money.FormatCAD(opt.PriceCents),
				})
			}
			dtos = append(dtos, upgradeCategoryDTO{ID: category.ID, Label: category.Label, Options: options})
		}
		responses.WriteSuccess(w, map[string]any{"upgrade_categories": dtos})
	}
}
