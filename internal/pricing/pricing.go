package pricing

import (
	"github.com/recyclelect/storefront-backend/internal/catalog"
	"github.com/recyclelect/storefront-backend/pkg/enums"
)

// Resolver looks up catalog products by id. Ids with no catalog entry
// price at zero cents rather than failing the calculation.
type Resolver interface {
	Resolve(id string) (catalog.Product, bool)
}

// DeliveryOption is one shipping choice offered at checkout.
type DeliveryOption struct {
	Method   enums.DeliveryMethod `json:"method"`
	Label    string               `json:"label"`
	LeadTime string               `json:"lead_time"`
	FeeCents int64                `json:"fee_cents"`
}

// UpgradeOption is one selectable hardware bump within a category.
type UpgradeOption struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
}

// UpgradeCategory groups mutually exclusive upgrade options; at most
// one option per category can be selected.
type UpgradeCategory struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Options []UpgradeOption `json:"options"`
}

// Quote is a full price breakdown for a session. All amounts are cents.
type Quote struct {
	TotalItems         int   `json:"total_items"`
	SubtotalCents      int64 `json:"subtotal_cents"`
	DeliveryFeeCents   int64 `json:"delivery_fee_cents"`
	UpgradesTotalCents int64 `json:"upgrades_total_cents"`
	GrandTotalCents    int64 `json:"grand_total_cents"`
	SavingsCents       int64 `json:"savings_cents"`
}

// Calculator prices carts against the catalog and the configured
// delivery and upgrade tables. It holds no mutable state.
type Calculator struct {
	resolver  Resolver
	delivery  []DeliveryOption
	upgrades  []UpgradeCategory
	feeByMeth map[enums.DeliveryMethod]int64
	upgradeBy map[string]map[string]int64
}

// NewCalculator builds a calculator with the given express surcharge.
// Standard delivery and depot pickup are always free.
func NewCalculator(resolver Resolver, expressFeeCents int64) *Calculator {
	delivery := []DeliveryOption{
		{Method: enums.DeliveryMethodStandard, Label: "Livraison standard", LeadTime: "5-7 jours ouvrables", FeeCents: 0},
		{Method: enums.DeliveryMethodExpress, Label: "Livraison express", LeadTime: "2-3 jours ouvrables", FeeCents: expressFeeCents},
		{Method: enums.DeliveryMethodPickup, Label: "Ramassage en magasin", LeadTime: "aujourd'hui", FeeCents: 0},
	}
	upgrades := []UpgradeCategory{
		{
			ID:    "storage",
			Label: "Stockage",
			Options: []UpgradeOption{
				{ID: "256gb", Label: "SSD 256GB", PriceCents: 4000},
				{ID: "512gb", Label: "SSD 512GB", PriceCents: 7500},
			},
		},
		{
			ID:    "ram",
			Label: "Memoire vive",
			Options: []UpgradeOption{
				{ID: "8gb", Label: "8GB DDR4", PriceCents: 2500},
				{ID: "16gb", Label: "16GB DDR4", PriceCents: 4500},
			},
		},
	}

	feeByMeth := make(map[enums.DeliveryMethod]int64, len(delivery))
	for _, opt := range delivery {
		feeByMeth[opt.Method] = opt.FeeCents
	}
	upgradeBy := make(map[string]map[string]int64, len(upgrades))
	for _, category := range upgrades {
		options := make(map[string]int64, len(category.Options))
		for _, opt := range category.Options {
			options[opt.ID] = opt.PriceCents
		}
		upgradeBy[category.ID] = options
	}

	return &Calculator{
		resolver:  resolver,
		delivery:  delivery,
		upgrades:  upgrades,
		feeByMeth: feeByMeth,
		upgradeBy: upgradeBy,
	}
}

// DeliveryOptions returns the shipping choices in display order.
func (c *Calculator) DeliveryOptions() []DeliveryOption {
	return c.delivery
}

// UpgradeCatalog returns the configurable upgrade categories.
func (c *Calculator) UpgradeCatalog() []UpgradeCategory {
	return c.upgrades
}

// HasUpgrade reports whether the category/option pair exists.
func (c *Calculator) HasUpgrade(categoryID, optionID string) bool {
	options, ok := c.upgradeBy[categoryID]
	if !ok {
		return false
	}
	_, ok = options[optionID]
	return ok
}

// Subtotal sums price x quantity over the cart lines. Unknown ids
// contribute zero.
func (c *Calculator) Subtotal(items map[string]int) int64 {
	var total int64
	for id, qty := range items {
		product, ok := c.resolver.Resolve(id)
		if !ok {
			continue
		}
		total += product.PriceCents * int64(qty)
	}
	return total
}

// Savings sums (originalPrice - price) x quantity over lines whose
// product carries an original price.
func (c *Calculator) Savings(items map[string]int) int64 {
	var total int64
	for id, qty := range items {
		product, ok := c.resolver.Resolve(id)
		if !ok || product.OriginalPriceCents == nil {
			continue
		}
		total += (*product.OriginalPriceCents - product.PriceCents) * int64(qty)
	}
	return total
}

// DeliveryFee returns the surcharge for a method; unknown methods cost
// nothing.
func (c *Calculator) DeliveryFee(method enums.DeliveryMethod) int64 {
	return c.feeByMeth[method]
}

// UpgradesTotal sums the selected option price per category. Unknown
// categories or options contribute zero.
func (c *Calculator) UpgradesTotal(selections map[string]string) int64 {
	var total int64
	for categoryID, optionID := range selections {
		options, ok := c.upgradeBy[categoryID]
		if !ok {
			continue
		}
		total += options[optionID]
	}
	return total
}

// QuoteFor computes the full breakdown for a cart, delivery method, and
// upgrade selections.
func (c *Calculator) QuoteFor(items map[string]int, method enums.DeliveryMethod, selections map[string]string) Quote {
	subtotal := c.Subtotal(items)
	deliveryFee := c.DeliveryFee(method)
	upgradesTotal := c.UpgradesTotal(selections)

	totalItems := 0
	for _, qty := range items {
		totalItems += qty
	}

	return Quote{
		TotalItems:         totalItems,
		SubtotalCents:      subtotal,
		DeliveryFeeCents:   deliveryFee,
		UpgradesTotalCents: upgradesTotal,
		GrandTotalCents:    subtotal + deliveryFee + upgradesTotal,
		SavingsCents:       c.Savings(items),
	}
}
