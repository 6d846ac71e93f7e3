package http

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/report"
)

// ReportHandler expone el reporte de saldos en JSON, CSV o PDF.
type ReportHandler struct {
	uc *report.BalanceReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.BalanceReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Balances godoc
// @Summary      Reporte de saldos
// @Description  Saldo por (producto, ubicación) con totales por producto. Solo aparecen pares con movimientos.
// @Tags         report
// @Produce      json
// @Produce      text/csv
// @Produce      application/pdf
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        format       query  string  false  "json, csv o pdf"  default(json)
// @Success      200          {object}  dto.BalanceReportResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      503          {object}  dto.ErrorResponse
// @Router       /api/report/balances [get]
func (h *ReportHandler) Balances(c *fiber.Ctx) error {
	var req dto.BalanceReportRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}

	switch strings.ToLower(c.Query("format", "json")) {
	case "json":
		out, err := h.uc.Balances(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	case "csv":
		var buf bytes.Buffer
		if err := h.uc.WriteCSV(c.UserContext(), req, &buf); err != nil {
			return writeError(c, err)
		}
		c.Attachment("saldos.csv")
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Send(buf.Bytes())
	case "pdf":
		doc, err := h.uc.PDF(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		c.Attachment("saldos.pdf")
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send(doc)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "format debe ser json, csv o pdf"})
	}
}
