package catalog

import (
	"sort"
	"strings"

	"github.com/recyclelect/storefront-backend/pkg/enums"
)

// Sort orders applied to product listings.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
)

// ListParams narrows and orders a product listing. Zero values mean "no
// filter".
type ListParams struct {
	Category      enums.ProductCategory
	Brands        []string
	Conditions    []enums.Condition
	MaxPriceCents int64
	Query         string
	Sort          string
}

// Service serves read-only product listings over the loaded catalog.
type Service interface {
	List(params ListParams) []Product
	Get(id string) (Product, bool)
	Brands() []string
}

type service struct {
	catalog *Catalog
}

func NewService(catalog *Catalog) Service {
	return &service{catalog: catalog}
}

func (s *service) Get(id string) (Product, bool) {
	return s.catalog.Resolve(id)
}

// Brands returns the distinct brand names present in the catalog,
// sorted alphabetically.
func (s *service) Brands() []string {
	seen := make(map[string]bool)
	brands := make([]string, 0)
	for _, p := range s.catalog.Products() {
		if p.Brand == "" || seen[p.Brand] {
			continue
		}
		seen[p.Brand] = true
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands
}

func (s *service) List(params ListParams) []Product {
	matched := make([]Product, 0, s.catalog.Len())
	for _, p := range s.catalog.Products() {
		if matches(p, params) {
			matched = append(matched, p)
		}
	}
	sortProducts(matched, params.Sort)
	return matched
}

func matches(p Product, params ListParams) bool {
	if params.Category != "" && p.Category != params.Category {
		return false
	}
	if len(params.Brands) > 0 && !containsFold(params.Brands, p.Brand) {
		return false
	}
	if len(params.Conditions) > 0 && !containsCondition(params.Conditions, p.Condition) {
		return false
	}
	if params.MaxPriceCents > 0 && p.PriceCents > params.MaxPriceCents {
		return false
	}
	if params.Query != "" && !matchesQuery(p, params.Query) {
		return false
	}
	return true
}

func matchesQuery(p Product, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	for _, haystack := range []string{p.Name, p.Description, p.Brand, p.Model} {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []Product, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents < products[j].PriceCents
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents > products[j].PriceCents
		})
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	default:
		// Featured keeps catalog file order.
	}
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}

func containsCondition(values []enums.Condition, target enums.Condition) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
