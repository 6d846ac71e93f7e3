package entity

// Location representa una bodega, tienda o cualquier lugar físico donde hay stock.
type Location struct {
	LocationID string
	Name       string
}
