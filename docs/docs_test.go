package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/inventory-ledger/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	for _, p := range []string{"/api/products", "/api/locations/{id}", "/api/movements", "/api/report/balances", "/health"} {
		assert.Contains(t, spec.Paths, p)
	}
}
