package dto

import "github.com/opscore/helpdesk-api/internal/domain"

// ProductPayload is the wire representation of a product, used for
// both requests and responses.
type ProductPayload struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ToProduct maps the payload onto the domain record.
func (p ProductPayload) ToProduct() domain.Product {
	return domain.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}
}

// FromProduct maps a domain product onto the wire shape.
func FromProduct(product *domain.Product) ProductPayload {
	return ProductPayload{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}
}

// FromProducts maps a slice of domain products onto the wire shape.
func FromProducts(products []domain.Product) []ProductPayload {
	items := make([]ProductPayload, 0, len(products))
	for i := range products {
		items = append(items, FromProduct(&products[i]))
	}
	return items
}
