package cart

// Cart maps product id to quantity. Quantities are always >= 1; a line
// that reaches zero is removed rather than stored.
type Cart map[string]int

func New() Cart {
	return make(Cart)
}

// Clone returns an independent copy so stored snapshots never alias
// caller state.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// Add increments the quantity for a product, creating the line at 1.
func (c Cart) Add(productID string) {
	c[productID]++
}

// Remove decrements the quantity for a product; at quantity 1 the line
// disappears. Removing an absent id is a no-op.
func (c Cart) Remove(productID string) {
	qty, ok := c[productID]
	if !ok {
		return
	}
	if qty <= 1 {
		delete(c, productID)
		return
	}
	c[productID] = qty - 1
}

// DeleteLine drops a product line regardless of quantity.
func (c Cart) DeleteLine(productID string) {
	delete(c, productID)
}

// Quantity returns the quantity for a product, zero if absent.
func (c Cart) Quantity(productID string) int {
	return c[productID]
}

// TotalItems sums quantities across all lines.
func (c Cart) TotalItems() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}
