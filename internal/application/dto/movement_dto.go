package dto

import "time"

// MovementRequest entrada para registrar o editar un movimiento.
// Al menos uno de FromLocation/ToLocation es obligatorio; "" equivale a ausente.
type MovementRequest struct {
	ProductID    string  `json:"product_id" validate:"required"`
	FromLocation *string `json:"from_location"`
	ToLocation   *string `json:"to_location"`
	Qty          int64   `json:"qty" validate:"required,min=1"`
}

// MovementFilterRequest filtros del listado de movimientos (query string).
// Since y Until en RFC3339; LocationID coincide con origen o destino.
type MovementFilterRequest struct {
	ProductID  string `query:"product_id"`
	LocationID string `query:"location_id"`
	Since      string `query:"since"`
	Until      string `query:"until"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// MovementResponse salida de un movimiento. Type es IN, OUT, TRANSFER o UNKNOWN.
type MovementResponse struct {
	MovementID   int64     `json:"movement_id"`
	Timestamp    time.Time `json:"timestamp"`
	ProductID    string    `json:"product_id"`
	FromLocation *string   `json:"from_location"`
	ToLocation   *string   `json:"to_location"`
	Qty          int64     `json:"qty"`
	Type         string    `json:"type"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
