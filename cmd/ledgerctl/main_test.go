package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReport_Tabla(t *testing.T) {
	out, err := run(t, "report", "--product", "P001")
	require.NoError(t, err)
	assert.Contains(t, out, "PRODUCTO")
	assert.Contains(t, out, "WH-A")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "67")
	assert.NotContains(t, out, "P002")
}

func TestReport_CSVAArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saldos.csv")
	_, err := run(t, "report", "--format", "csv", "--out", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "product_id")
	assert.Contains(t, string(raw), "P001,Laptop,STORE,Tienda,7")
}

func TestReport_FormatoInvalido(t *testing.T) {
	_, err := run(t, "report", "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, "report", "--format", "pdf")
	assert.Error(t, err)
}

func TestMigrate_RequierePostgres(t *testing.T) {
	_, err := run(t, "migrate")
	assert.Error(t, err)
}

func TestWriteTable_Vacio(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, &dto.BalanceReportResponse{GeneratedAt: time.Now()}))
	assert.Equal(t, "Sin movimientos registrados.\n", buf.String())
}

func TestWriteTable_SeparadorDeMiles(t *testing.T) {
	var buf bytes.Buffer
	rep := &dto.BalanceReportResponse{
		Rows:   []dto.BalanceRowResponse{{ProductID: "P9", ProductName: "Tornillo", LocationID: "WH-A", LocationName: "Bodega A", Balance: 1250}},
		Totals: []dto.ProductTotalResponse{{ProductID: "P9", ProductName: "Tornillo", Total: 1250}},
	}
	require.NoError(t, writeTable(&buf, rep))
	assert.Contains(t, buf.String(), "1.250")
}
