package entity

import "time"

// MovementKind tipo de movimiento derivado de sus ubicaciones de origen y destino.
type MovementKind string

// Tipos de movimiento.
const (
	MovementIN       MovementKind = "IN"       // entrada: solo destino
	MovementOUT      MovementKind = "OUT"      // salida: solo origen
	MovementTRANSFER MovementKind = "TRANSFER" // traslado: origen y destino
	MovementUNKNOWN  MovementKind = "UNKNOWN"  // sin origen ni destino
)

// Movement representa qty unidades de un producto que pasan de FromLocation a ToLocation.
// Ambas ubicaciones son opcionales; nil o "" significa ausente.
type Movement struct {
	ID           int64
	Timestamp    time.Time
	ProductID    string
	FromLocation *string
	ToLocation   *string
	Qty          int64
}

// Classify clasifica un movimiento solo por la presencia de origen y destino.
func Classify(from, to *string) MovementKind {
	hasFrom, hasTo := present(from), present(to)
	switch {
	case hasFrom && hasTo:
		return MovementTRANSFER
	case hasTo:
		return MovementIN
	case hasFrom:
		return MovementOUT
	default:
		return MovementUNKNOWN
	}
}

// Kind devuelve la clasificación del movimiento.
func (m Movement) Kind() MovementKind {
	return Classify(m.FromLocation, m.ToLocation)
}

// Source devuelve el origen y si está presente.
func (m Movement) Source() (string, bool) {
	if !present(m.FromLocation) {
		return "", false
	}
	return *m.FromLocation, true
}

// Destination devuelve el destino y si está presente.
func (m Movement) Destination() (string, bool) {
	if !present(m.ToLocation) {
		return "", false
	}
	return *m.ToLocation, true
}

func present(s *string) bool {
	return s != nil && *s != ""
}

// LocationRef normaliza un identificador opcional: "" -> nil.
func LocationRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
