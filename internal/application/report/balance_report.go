package report

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// PDFGenerator genera el PDF del reporte de saldos (implementado en infrastructure/pdf).
type PDFGenerator interface {
	GenerateBalanceReport(report *dto.BalanceReportResponse) ([]byte, error)
}

// CSVHeader columnas del reporte en CSV.
var CSVHeader = []string{"product_id", "product_name", "location_id", "location_name", "balance"}

// BalanceReportUseCase calcula el reporte de saldos por producto y ubicación recorriendo el
// historial completo en cada ejecución. El resultado sin filtros puede quedar en caché hasta la
// próxima escritura.
type BalanceReportUseCase struct {
	tx    repository.TxRunner
	cache repository.BalanceCache
	pdf   PDFGenerator
	log   *logger.Logger
	now   func() time.Time
}

// NewBalanceReportUseCase construye el caso de uso. cache y pdf pueden ser nil.
func NewBalanceReportUseCase(
	tx repository.TxRunner,
	cache repository.BalanceCache,
	pdf PDFGenerator,
	log *logger.Logger,
) *BalanceReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BalanceReportUseCase{tx: tx, cache: cache, pdf: pdf, log: log, now: time.Now}
}

// Rows devuelve todas las filas de saldo, ordenadas por producto y ubicación.
func (uc *BalanceReportUseCase) Rows(ctx context.Context) ([]inventory.BalanceRow, error) {
	var (
		generation int64
		cacheable  bool
	)
	if uc.cache != nil {
		rows, gen, ok, err := uc.cache.Get(ctx)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Msg("caché de saldos no disponible; se recalcula")
		case ok:
			return rows, nil
		default:
			generation, cacheable = gen, true
		}
	}

	var rows []inventory.BalanceRow
	err := uc.tx.RunReadOnly(ctx, func(s repository.Stores) error {
		products, err := s.Products.All(ctx)
		if err != nil {
			return err
		}
		locations, err := s.Locations.All(ctx)
		if err != nil {
			return err
		}
		movements, err := s.Movements.All(ctx)
		if err != nil {
			return err
		}
		rows = inventory.Balances(inventory.IndexProducts(products), inventory.IndexLocations(locations), movements)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := uc.cache.Put(ctx, generation, rows); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el reporte de saldos en caché")
		}
	}
	return rows, nil
}

// Balances arma el reporte filtrado con totales por producto.
func (uc *BalanceReportUseCase) Balances(ctx context.Context, req dto.BalanceReportRequest) (*dto.BalanceReportResponse, error) {
	rows, err := uc.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return buildReport(filterRows(rows, req), uc.now().UTC()), nil
}

// WriteCSV escribe el reporte filtrado en CSV con encabezado.
func (uc *BalanceReportUseCase) WriteCSV(ctx context.Context, req dto.BalanceReportRequest, w io.Writer) error {
	rep, err := uc.Balances(ctx, req)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rep.Rows {
		record := []string{r.ProductID, r.ProductName, r.LocationID, r.LocationName, strconv.FormatInt(r.Balance, 10)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PDF genera el reporte filtrado en PDF.
func (uc *BalanceReportUseCase) PDF(ctx context.Context, req dto.BalanceReportRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, ErrPDFUnavailable
	}
	rep, err := uc.Balances(ctx, req)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateBalanceReport(rep)
}

func filterRows(rows []inventory.BalanceRow, req dto.BalanceReportRequest) []inventory.BalanceRow {
	if req.ProductID == "" && req.LocationID == "" {
		return rows
	}
	out := make([]inventory.BalanceRow, 0, len(rows))
	for _, r := range rows {
		if req.ProductID != "" && r.ProductID != req.ProductID {
			continue
		}
		if req.LocationID != "" && r.LocationID != req.LocationID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// buildReport convierte filas ya ordenadas; los totales salen en el mismo orden de producto.
func buildReport(rows []inventory.BalanceRow, generatedAt time.Time) *dto.BalanceReportResponse {
	rep := &dto.BalanceReportResponse{
		GeneratedAt: generatedAt,
		Rows:        make([]dto.BalanceRowResponse, 0, len(rows)),
		Totals:      []dto.ProductTotalResponse{},
	}
	for _, r := range rows {
		rep.Rows = append(rep.Rows, dto.BalanceRowResponse{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			Balance:      r.Balance,
		})
		n := len(rep.Totals)
		if n == 0 || rep.Totals[n-1].ProductID != r.ProductID {
			rep.Totals = append(rep.Totals, dto.ProductTotalResponse{ProductID: r.ProductID, ProductName: r.ProductName})
			n++
		}
		rep.Totals[n-1].Total += r.Balance
	}
	return rep
}
