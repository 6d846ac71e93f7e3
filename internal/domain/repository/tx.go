package repository

import "context"

// Stores repositorios atados a una misma transacción.
type Stores struct {
	Products  ProductRepository
	Locations LocationRepository
	Movements MovementRepository
}

// TxRunner ejecuta callbacks dentro de una transacción del almacenamiento.
// Commit si fn devuelve nil, Rollback en cualquier otro caso (incluido panic).
type TxRunner interface {
	Run(ctx context.Context, fn func(s Stores) error) error
	// RunReadOnly ejecuta fn sobre una vista consistente de los datos (sin escrituras).
	RunReadOnly(ctx context.Context, fn func(s Stores) error) error
}
