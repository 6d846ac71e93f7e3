package dto

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	ProductID   string `json:"product_id" validate:"required,min=1,max=50"`
	Name        string `json:"product_name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto (el ProductID es inmutable).
type UpdateProductRequest struct {
	Name        *string `json:"product_name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"product_name"`
	Description string `json:"description"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
