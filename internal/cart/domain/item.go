package domain

// Product is a read-only catalog entry as handed to the cart by the caller
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// ItemKey identifies a cart row. The same product in two sizes is two
// distinct rows, so size is part of the identity.
type ItemKey struct {
	ProductID int
	Size      string
}

// LineItem is a product reference plus a quantity, held in the cart or
// inside a placed order's snapshot
type LineItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Size        string  `json:"size,omitempty"`
	Quantity    int     `json:"quantity"`
}

// NewLineItem creates a single-quantity line item for a product.
// Size may be empty for products without size variants.
func NewLineItem(product Product, size string) LineItem {
	return LineItem{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Image:       product.Image,
		Category:    product.Category,
		Size:        size,
		Quantity:    1,
	}
}

// Key returns the composite identity of the line item
func (li LineItem) Key() ItemKey {
	return ItemKey{ProductID: li.ID, Size: li.Size}
}

// Subtotal returns price times quantity for this row
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// CopyItems returns an independent copy of a line item slice
func CopyItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
