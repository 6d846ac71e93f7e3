package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/pkg/config"
	"github.com/jhoicas/inventory-ledger/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Name: "inventory-ledger", Storage: config.StorageMemory, SeedSample: true},
		HTTP: config.HTTPConfig{Host: "127.0.0.1", Port: 0},
	}
}

func TestRun_ErrorDeArranqueSeDevuelve(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Name: "inventory-ledger", Storage: config.StoragePostgres},
		DB:  config.DBConfig{DatabaseURL: "postgres://u:p@127.0.0.1:1/d?sslmode=disable&connect_timeout=1"},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := run(ctx, cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inicializar dependencias")
}

func TestRun_SeedConContextoCanceladoDevuelveError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, memoryConfig(), logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cargar datos de ejemplo")
}

func TestRun_ApagadoOrdenado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, memoryConfig(), logger.Nop()) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run no terminó tras cancelar el contexto")
	}
}
