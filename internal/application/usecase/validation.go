package usecase

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/jhoicas/inventory-ledger/internal/domain"
)

// Longitudes máximas de identificadores y nombres.
const (
	maxIDLen   = 50
	maxNameLen = 100
)

// fieldErrors acumula errores de validación por campo.
type fieldErrors []domain.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, domain.FieldError{Field: field, Message: message})
}

// length valida 1..max caracteres (runas, no bytes).
func (f *fieldErrors) length(field, value string, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		f.add(field, "es obligatorio")
	case n > max:
		f.add(field, "excede el máximo de caracteres permitido")
	}
}

func (f fieldErrors) err() error {
	return domain.NewValidationError(f)
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %q", domain.ErrNotFound, what, id)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
