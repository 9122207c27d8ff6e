package models

// Cart is the session-scoped shopping cart: product ID -> requested
// quantity. It lives only for the session lifetime (Redis TTL in
// production) and is never persisted to the relational store; prices are
// recomputed from the catalog every time the cart is viewed.
type Cart map[string]int

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}
