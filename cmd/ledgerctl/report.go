package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/report"
)

func newReportCmd() *cobra.Command {
	var (
		format string
		out    string
		req    dto.BalanceReportRequest
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Imprime el reporte de saldos por producto y ubicación.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != "table" && format != "csv" && format != "pdf" {
				return fmt.Errorf("formato %q no soportado (table, csv, pdf)", format)
			}
			if format == "pdf" && out == "" {
				return errors.New("--out es obligatorio con --format pdf")
			}

			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			deps, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			if out == "" {
				return render(cmd.Context(), deps.Report, format, req, cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := render(cmd.Context(), deps.Report, format, req, f); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "table, csv o pdf")
	cmd.Flags().StringVar(&out, "out", "", "archivo de salida (por defecto stdout)")
	cmd.Flags().StringVar(&req.ProductID, "product", "", "filtrar por producto")
	cmd.Flags().StringVar(&req.LocationID, "location", "", "filtrar por ubicación")
	return cmd
}

func render(ctx context.Context, uc *report.BalanceReportUseCase, format string, req dto.BalanceReportRequest, w io.Writer) error {
	switch format {
	case "csv":
		return uc.WriteCSV(ctx, req, w)
	case "pdf":
		doc, err := uc.PDF(ctx, req)
		if err != nil {
			return err
		}
		_, err = w.Write(doc)
		return err
	default:
		rep, err := uc.Balances(ctx, req)
		if err != nil {
			return err
		}
		return writeTable(w, rep)
	}
}

// writeTable imprime filas y totales alineados en columnas.
func writeTable(w io.Writer, rep *dto.BalanceReportResponse) error {
	if len(rep.Rows) == 0 {
		_, err := fmt.Fprintln(w, "Sin movimientos registrados.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCTO\tNOMBRE\tUBICACIÓN\tNOMBRE\tSALDO\t")
	for _, r := range rep.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			r.ProductID, r.ProductName, r.LocationID, r.LocationName, report.FormatQuantity(r.Balance))
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	for _, t := range rep.Totals {
		fmt.Fprintf(tw, "%s\t%s\tTOTAL\t\t%s\t\n", t.ProductID, t.ProductName, report.FormatQuantity(t.Total))
	}
	return tw.Flush()
}
