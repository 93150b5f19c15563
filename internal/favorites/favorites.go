package favorites

import "sort"

// Favorites is the set of product ids a session has saved.
type Favorites map[string]struct{}

func New() Favorites {
	return make(Favorites)
}

// Toggle flips membership and reports whether the id is now a favorite.
func (f Favorites) Toggle(productID string) bool {
	if _, ok := f[productID]; ok {
		delete(f, productID)
		return false
	}
	f[productID] = struct{}{}
	return true
}

// Has reports membership.
func (f Favorites) Has(productID string) bool {
	_, ok := f[productID]
	return ok
}

// IDs returns the members sorted for stable output.
func (f Favorites) IDs() []string {
	ids := make([]string, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (f Favorites) Clone() Favorites {
	out := make(Favorites, len(f))
	for id := range f {
		out[id] = struct{}{}
	}
	return out
}

func (f Favorites) IsEmpty() bool {
	return len(f) == 0
}
