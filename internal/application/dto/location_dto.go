package dto

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,min=1,max=50"`
	Name       string `json:"location_name" validate:"required,min=1,max=100"`
}

// UpdateLocationRequest entrada para renombrar una ubicación.
type UpdateLocationRequest struct {
	Name *string `json:"location_name" validate:"omitempty,min=1,max=100"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	LocationID string `json:"location_id"`
	Name       string `json:"location_name"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
