package domain

// Product is a bare catalog record. No field validation applies beyond
// primary-key existence.
type Product struct {
	ID    int64
	Name  string
	Price float64
	Stock int
}
