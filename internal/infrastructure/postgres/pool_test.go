package postgres

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/pkg/config"
)

func TestPoolConfig_DesdeVariables(t *testing.T) {
	cfg := config.DBConfig{Host: "db.internal", Port: 5433, User: "clerk", Password: "p@ss", DBName: "stock", SSLMode: "disable"}

	pc, err := poolConfig(cfg)
	require.NoError(t, err)

	// El hostname se conserva; la resolución queda a cargo del dialer.
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
}

func TestPoolConfig_DatabaseURLConIPv6(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@[::1]:5432/d?sslmode=disable"})
	require.NoError(t, err)
	assert.Equal(t, "::1", pc.ConnConfig.Host)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:puerto/d"})
	assert.Error(t, err)
}

func TestPoolConfig_ForceIPv4(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@localhost:5432/d?sslmode=disable",
		ForceIPv4:   true,
	})
	require.NoError(t, err)
	require.NotNil(t, pc.ConnConfig.DialFunc)

	// Con el flag, un destino IPv6 se rechaza sin intentar conectar.
	_, err = pc.ConnConfig.DialFunc(context.Background(), "tcp", "[::1]:5432")
	assert.Error(t, err)
}

func TestDialIPv4_ConectaPorIPv4(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		if c, err := ln.Accept(); err == nil {
			_ = c.Close()
		}
	}()

	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	conn, err := dialIPv4(context.Background(), "tcp", net.JoinHostPort("localhost", port))
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, "127.0.0.1", conn.RemoteAddr().(*net.TCPAddr).IP.String())
}

func TestDialIPv4_RechazaIPv6Literal(t *testing.T) {
	_, err := dialIPv4(context.Background(), "tcp", "[::1]:5432")
	assert.Error(t, err)
}

func TestDialIPv4_RespetaContexto(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dialIPv4(ctx, "tcp", "127.0.0.1:9")
	assert.Error(t, err)
}
