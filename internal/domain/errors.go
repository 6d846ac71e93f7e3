package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrLocationInUse se devuelve al borrar una ubicación referenciada por movimientos.
	ErrLocationInUse = fmt.Errorf("%w: la ubicación tiene movimientos asociados", ErrConflict)
)

// FieldError describe un campo inválido de una petición.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa errores por campo. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye el error a partir de los campos; nil si no hay ninguno.
func NewValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrInvalidInput.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
