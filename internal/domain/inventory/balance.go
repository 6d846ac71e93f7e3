package inventory

import (
	"sort"

	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// BalanceRow saldo de un producto en una ubicación.
type BalanceRow struct {
	ProductID    string
	ProductName  string
	LocationID   string
	LocationName string
	Balance      int64
}

type balanceKey struct {
	productID  string
	locationID string
}

// Balances calcula el saldo por (producto, ubicación) a partir del historial completo de movimientos
// (servicio de dominio, sin efectos secundarios).
//
//	Saldo = Σ qty con destino en la ubicación - Σ qty con origen en la ubicación
//
// Solo aparecen los pares tocados por al menos un movimiento. Un movimiento cuyo producto no existe
// no aporta nada, y un lado cuya ubicación no existe tampoco (semántica de inner join).
// Resultado ordenado por ProductID y luego LocationID.
func Balances(
	products map[string]entity.Product,
	locations map[string]entity.Location,
	movements []entity.Movement,
) []BalanceRow {
	sums := make(map[balanceKey]int64)
	for _, m := range movements {
		if _, ok := products[m.ProductID]; !ok {
			continue
		}
		if to, ok := m.Destination(); ok {
			if _, known := locations[to]; known {
				sums[balanceKey{m.ProductID, to}] += m.Qty
			}
		}
		if from, ok := m.Source(); ok {
			if _, known := locations[from]; known {
				sums[balanceKey{m.ProductID, from}] -= m.Qty
			}
		}
	}

	rows := make([]BalanceRow, 0, len(sums))
	for k, balance := range sums {
		rows = append(rows, BalanceRow{
			ProductID:    k.productID,
			ProductName:  products[k.productID].Name,
			LocationID:   k.locationID,
			LocationName: locations[k.locationID].Name,
			Balance:      balance,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProductID != rows[j].ProductID {
			return rows[i].ProductID < rows[j].ProductID
		}
		return rows[i].LocationID < rows[j].LocationID
	})
	return rows
}

// IndexProducts arma el mapa por ProductID que espera Balances.
func IndexProducts(list []entity.Product) map[string]entity.Product {
	out := make(map[string]entity.Product, len(list))
	for _, p := range list {
		out[p.ProductID] = p
	}
	return out
}

// IndexLocations arma el mapa por LocationID que espera Balances.
func IndexLocations(list []entity.Location) map[string]entity.Location {
	out := make(map[string]entity.Location, len(list))
	for _, l := range list {
		out[l.LocationID] = l
	}
	return out
}
