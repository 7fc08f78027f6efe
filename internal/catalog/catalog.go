// Package catalog holds the read-only product fixture list the storefront
// sells from. The cart never depends on it; products are passed in by the
// caller at add-to-cart time.
package catalog

import "go-storefront/internal/cart/domain"

var products = []domain.Product{
	{
		ID:          1,
		Name:        "Baggy Cargo Pants",
		Price:       249.99,
		Description: "Oversized street-style cargo pants. Heavyweight cotton with cargo pockets and an elastic waistband.",
		Image:       "/images/products/baggy-cargo-pants.jpg",
		Category:    "pants",
	},
	{
		ID:          2,
		Name:        "Urban Hoodie",
		Price:       199.99,
		Description: "Classic streetwear hoodie. Soft cotton, relaxed oversized fit, available in several colors.",
		Image:       "/images/products/urban-hoodie.jpg",
		Category:    "hoodies",
	},
	{
		ID:          3,
		Name:        "Oversized Dress",
		Price:       179.99,
		Description: "Loose-cut dress with a minimalist silhouette. Breathable fabric for everyday wear.",
		Image:       "/images/products/oversized-dress.jpg",
		Category:    "dresses",
	},
	{
		ID:          4,
		Name:        "Graphic Tee",
		Price:       89.99,
		Description: "Oversized tee with street-art graphics. High quality print, limited edition design.",
		Image:       "/images/products/graphic-tee.jpg",
		Category:    "tees",
	},
}

// Products returns a copy of the full catalog in display order
func Products() []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

// ByID returns the product with the given id, if present
func ByID(id int) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
