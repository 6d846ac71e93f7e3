package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

func TestNew_ProductionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	log.Component("report").Info().Str("product_id", "P001").Msg("saldo calculado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "report", entry["component"])
	assert.Equal(t, "P001", entry["product_id"])
	assert.Equal(t, "saldo calculado", entry["message"])
}

func TestNew_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "WARN", Out: &buf})

	log.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}

func TestNop_NoEscribe(t *testing.T) {
	log := logger.Nop()
	assert.NotPanics(t, func() { log.Error().Msg("silencio") })
}
