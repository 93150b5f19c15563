package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"

	"github.com/recyclelect/storefront-backend/pkg/enums"
	"github.com/recyclelect/storefront-backend/pkg/errors"
	"github.com/recyclelect/storefront-backend/pkg/logger"
	"github.com/recyclelect/storefront-backend/pkg/money"
)

// fileProduct is the on-disk shape. Price fields arrive either as plain
// numbers or as display strings ("300$", "$299.99 CAD"), and condition
// values may still use the legacy French labels.
type fileProduct struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          json.RawMessage `json:"price"`
	OriginalPrice  json.RawMessage `json:"originalPrice"`
	Images         []string        `json:"images"`
	Specifications []Specification `json:"specifications"`
	Warranty       string          `json:"warranty"`
	Condition      string          `json:"condition"`
	Stock          int             `json:"stock"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	CreatedAt      time.Time       `json:"createdAt"`
}

var legacyConditions = map[string]enums.Condition{
	"excellente": enums.ConditionExcellent,
	"bon":        enums.ConditionGood,
	"moyen":      enums.ConditionFair,
}

// Load reads the catalog file and normalizes every entry. Malformed
// fields degrade per entry (price falls back to zero cents, condition to
// "good") and are logged; only an unreadable or unparseable file fails
// the load.
func Load(ctx context.Context, path string, logg *logger.Logger) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "reading catalog file")
	}

	var entries []fileProduct
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "parsing catalog file")
	}

	products := make([]Product, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		if entry.ID == "" {
			logg.Warn(logg.WithField(ctx, "index", i), "skipping catalog entry without id")
			continue
		}
		if seen[entry.ID] {
			logg.Warn(logg.WithField(ctx, "product_id", entry.ID), "skipping duplicate catalog entry")
			continue
		}
		seen[entry.ID] = true

		product, issues := normalize(entry)
		if issues != nil {
			entryCtx := logg.WithField(ctx, "product_id", entry.ID)
			logg.Warn(entryCtx, fmt.Sprintf("catalog entry degraded: %v", issues))
		}
		products = append(products, product)
	}

	logg.Info(logg.WithField(ctx, "products", len(products)), "catalog loaded")
	return newCatalog(products), nil
}

func normalize(entry fileProduct) (Product, error) {
	var issues error

	priceCents, err := parseCents(entry.Price)
	if err != nil {
		issues = multierr.Append(issues, fmt.Errorf("price: %w", err))
		priceCents = 0
	}

	var originalCents *int64
	if len(entry.OriginalPrice) > 0 {
		cents, err := parseCents(entry.OriginalPrice)
		switch {
		case err != nil:
			issues = multierr.Append(issues, fmt.Errorf("original price: %w", err))
		case cents < priceCents:
			issues = multierr.Append(issues, fmt.Errorf("original price %d below price %d", cents, priceCents))
		default:
			originalCents = &cents
		}
	}

	condition, err := parseCondition(entry.Condition)
	if err != nil {
		issues = multierr.Append(issues, err)
		condition = enums.ConditionGood
	}

	category, err := enums.ParseProductCategory(entry.Category)
	if err != nil {
		issues = multierr.Append(issues, err)
		category = enums.ProductCategoryLaptop
	}

	stock := entry.Stock
	if stock < 0 {
		issues = multierr.Append(issues, fmt.Errorf("negative stock %d", stock))
		stock = 0
	}

	return Product{
		ID:                 entry.ID,
		Name:               entry.Name,
		Description:        entry.Description,
		PriceCents:         priceCents,
		OriginalPriceCents: originalCents,
		Images:             entry.Images,
		Specifications:     entry.Specifications,
		Warranty:           entry.Warranty,
		Condition:          condition,
		Stock:              stock,
		Category:           category,
		Brand:              entry.Brand,
		Model:              entry.Model,
		CreatedAt:          entry.CreatedAt,
	}, issues
}

func parseCents(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing amount")
	}
	var amount float64
	if err := json.Unmarshal(raw, &amount); err == nil {
		return money.CentsFromFloat(amount)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("amount is neither number nor string")
	}
	return money.CentsFromString(text)
}

func parseCondition(value string) (enums.Condition, error) {
	if condition, ok := legacyConditions[value]; ok {
		return condition, nil
	}
	return enums.ParseCondition(value)
}
