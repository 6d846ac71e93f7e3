package dto

import "time"

// BalanceReportRequest filtros opcionales del reporte de saldos.
type BalanceReportRequest struct {
	ProductID  string `query:"product_id"`
	LocationID string `query:"location_id"`
}

// BalanceRowResponse saldo de un producto en una ubicación.
type BalanceRowResponse struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Balance      int64  `json:"balance"`
}

// ProductTotalResponse suma de saldos de un producto sobre todas sus ubicaciones.
type ProductTotalResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Total       int64  `json:"total"`
}

// BalanceReportResponse reporte de saldos por producto y ubicación.
type BalanceReportResponse struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Rows        []BalanceRowResponse   `json:"rows"`
	Totals      []ProductTotalResponse `json:"totals"`
}
