package catalog

import (
	"time"

	"github.com/recyclelect/storefront-backend/pkg/enums"
)

// Specification is a single labeled spec line on a product sheet.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is an immutable catalog entry. Prices are integer cents,
// normalized at load time.
type Product struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	PriceCents         int64                 `json:"price_cents"`
	OriginalPriceCents *int64                `json:"original_price_cents,omitempty"`
	Images             []string              `json:"images,omitempty"`
	Specifications     []Specification       `json:"specifications,omitempty"`
	Warranty           string                `json:"warranty"`
	Condition          enums.Condition       `json:"condition"`
	Stock              int                   `json:"stock"`
	Category           enums.ProductCategory `json:"category"`
	Brand              string                `json:"brand,omitempty"`
	Model              string                `json:"model,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// Catalog is the read-only product set the storefront serves. It is
// built once at startup and never mutated afterwards, so lookups need
// no locking.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

func newCatalog(products []Product) *Catalog {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Resolve looks up a product by id. Unknown ids are a soft miss: the
// cart accepts synthetic part SKUs that have no catalog entry.
func (c *Catalog) Resolve(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Products returns all entries in file order.
func (c *Catalog) Products() []Product {
	return c.products
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.products)
}
