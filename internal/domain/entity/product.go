package entity

// Product representa un artículo del inventario. ProductID lo asigna el usuario y no cambia.
// Al borrarlo se borran también sus movimientos.
type Product struct {
	ProductID   string
	Name        string
	Description string
}
