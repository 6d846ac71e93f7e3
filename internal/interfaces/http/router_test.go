package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/report"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-ledger/internal/infrastructure/memory"
	apihttp "github.com/jhoicas/inventory-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newApp(t *testing.T, mutate ...func(*apihttp.RouterDeps)) *fiber.App {
	t.Helper()
	tx := memory.NewTxRunner(memory.NewDB())
	bc := cache.NewMemoryBalanceCache()
	log := logger.Nop()

	deps := apihttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(tx, bc, log),
		LocationUC: usecase.NewLocationUseCase(tx, bc, log),
		MovementUC: usecase.NewMovementUseCase(tx, bc, log),
		ReportUC:   report.NewBalanceReportUseCase(tx, bc, nil, log),
		Log:        log,
		AppName:    "inventory-ledger",
	}
	for _, m := range mutate {
		m(&deps)
	}

	app := fiber.New(apihttp.FiberConfig(deps.AppName))
	apihttp.Router(app, deps)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func str(s string) *string { return &s }

func seedCatalog(t *testing.T, app *fiber.App) {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: "P001", Name: "Laptop"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	for _, l := range []dto.CreateLocationRequest{{LocationID: "WH-A", Name: "Bodega A"}, {LocationID: "WH-B", Name: "Bodega B"}} {
		resp := do(t, app, http.MethodPost, "/api/locations", l)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CRUD(t *testing.T) {
	app := newApp(t)

	resp := do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: " P001 ", Name: "Laptop"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "P001", created.ProductID)

	resp = do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: "P001", Name: "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPut, "/api/products/P001", dto.UpdateProductRequest{Name: str("Laptop 14")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Laptop 14", decode[dto.ProductResponse](t, resp).Name)

	resp = do(t, app, http.MethodGet, "/api/products?limit=500", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, resp)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, dto.MaxLimit, list.Page.Limit)

	resp = do(t, app, http.MethodDelete, "/api/products/P001", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products/P001", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestIDsConEspaciosYAcentos(t *testing.T) {
	app := newApp(t)

	resp := do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: "P 1", Name: "Cable"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = do(t, app, http.MethodPost, "/api/locations", dto.CreateLocationRequest{LocationID: "Almacén", Name: "Almacén central"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products/P%201", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "P 1", decode[dto.ProductResponse](t, resp).ProductID)

	resp = do(t, app, http.MethodPut, "/api/locations/Almac%C3%A9n", dto.UpdateLocationRequest{Name: str("Almacén norte")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Almacén", decode[dto.LocationResponse](t, resp).LocationID)

	resp = do(t, app, http.MethodPost, "/api/movements", dto.MovementRequest{ProductID: "P 1", ToLocation: str("Almacén"), Qty: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products/P%201/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.MovementListResponse](t, resp).Page.Total)

	resp = do(t, app, http.MethodGet, "/api/locations/Almac%C3%A9n/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.MovementListResponse](t, resp).Page.Total)

	resp = do(t, app, http.MethodDelete, "/api/locations/Almac%C3%A9n", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Borrar el producto elimina sus movimientos y libera la ubicación.
	resp = do(t, app, http.MethodDelete, "/api/products/P%201", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, app, http.MethodGet, "/api/products/P%201", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, app, http.MethodDelete, "/api/locations/Almac%C3%A9n", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestProducts_ErroresDeEntrada(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: "", Name: ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.NotEmpty(t, body.Details)

	resp = do(t, app, http.MethodGet, "/api/products?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLocations_EliminarEnUso(t *testing.T) {
	app := newApp(t)
	seedCatalog(t, app)

	resp := do(t, app, http.MethodPost, "/api/movements", dto.MovementRequest{ProductID: "P001", ToLocation: str("WH-A"), Qty: 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/locations/WH-A", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LOCATION_IN_USE", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodDelete, "/api/locations/WH-B", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/locations/WH-A/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.MovementListResponse](t, resp).Page.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos y reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_FlujoYReporte(t *testing.T) {
	app := newApp(t)
	seedCatalog(t, app)

	resp := do(t, app, http.MethodPost, "/api/movements", dto.MovementRequest{ProductID: "P001", ToLocation: str("WH-A"), Qty: 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	in := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "IN", in.Type)

	resp = do(t, app, http.MethodPost, "/api/movements", dto.MovementRequest{ProductID: "P001", FromLocation: str("WH-A"), ToLocation: str("WH-B"), Qty: 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "TRANSFER", decode[dto.MovementResponse](t, resp).Type)

	resp = do(t, app, http.MethodGet, "/api/report/balances", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rep := decode[dto.BalanceReportResponse](t, resp)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, int64(6), rep.Rows[0].Balance)
	assert.Equal(t, int64(4), rep.Rows[1].Balance)
	require.Len(t, rep.Totals, 1)
	assert.Equal(t, int64(10), rep.Totals[0].Total)

	// Editar la entrada invalida el caché del reporte.
	resp = do(t, app, http.MethodPut, "/api/movements/"+itoa(in.MovementID), dto.MovementRequest{ProductID: "P001", ToLocation: str("WH-A"), Qty: 20})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/report/balances?location_id=WH-A", nil)
	rep = decode[dto.BalanceReportResponse](t, resp)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, int64(16), rep.Rows[0].Balance)

	resp = do(t, app, http.MethodGet, "/api/movements?product_id=P001&limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MovementListResponse](t, resp)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Page.Total)

	resp = do(t, app, http.MethodDelete, "/api/movements/"+itoa(in.MovementID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, app, http.MethodGet, "/api/movements/"+itoa(in.MovementID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovements_Validacion(t *testing.T) {
	app := newApp(t)
	seedCatalog(t, app)

	resp := do(t, app, http.MethodPost, "/api/movements", dto.MovementRequest{ProductID: "P001", FromLocation: str("WH-A"), ToLocation: str("WH-A"), Qty: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "qty")
	assert.Contains(t, fields, "to_location")

	resp = do(t, app, http.MethodGet, "/api/movements/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodGet, "/api/movements?since=ayer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReport_Formatos(t *testing.T) {
	app := newApp(t)
	seedCatalog(t, app)
	resp := do(t, app, http.MethodPost, "/api/movements", dto.MovementRequest{ProductID: "P001", ToLocation: str("WH-A"), Qty: 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/report/balances?format=csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "P001,Laptop,WH-A,Bodega A,3")

	// Sin generador configurado.
	resp = do(t, app, http.MethodGet, "/api/report/balances?format=pdf", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "PDF_UNAVAILABLE", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodGet, "/api/report/balances?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_FORMAT", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware y health
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := newApp(t)
	resp := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	failing := newApp(t, func(d *apihttp.RouterDeps) {
		d.HealthCheck = func(context.Context) error { return errors.New("db caída") }
	})
	resp = do(t, failing, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	app := newApp(t, func(d *apihttp.RouterDeps) {
		d.RateLimiter = apihttp.NewRateLimiter(0.001, 1)
	})

	resp := do(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decode[dto.ErrorResponse](t, resp).Code)

	// /health no está limitado.
	resp = do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimiter_Desactivado(t *testing.T) {
	rl := apihttp.NewRateLimiter(0, 0)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"))
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
