package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Report    ReportConfig
	RateLimit RateLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env        string // development, staging, production
	Name       string
	LogLevel   string
	Storage    string // postgres | memory
	SeedSample bool   // cargar datos de ejemplo si no hay productos
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrateOnStart bool
	// ForceIPv4 marca conexiones solo por IPv4 (redes de contenedores sin IPv6).
	ForceIPv4 bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig caché del reporte de saldos. Addr vacío desactiva la caché.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// ReportConfig opciones del reporte de saldos.
type ReportConfig struct {
	CacheTTL time.Duration
}

// RateLimitConfig límite de peticiones por IP. RPS <= 0 lo desactiva.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:        getString(v, "APP_ENV", "development"),
			Name:       getString(v, "APP_NAME", "inventory-ledger"),
			LogLevel:   getString(v, "LOG_LEVEL", "info"),
			Storage:    strings.ToLower(getString(v, "STORAGE_DRIVER", StoragePostgres)),
			SeedSample: getBool(v, "SEED_SAMPLE_DATA", false),
		},
		DB: DBConfig{
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "inventory_ledger"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MigrateOnStart: getBool(v, "DB_MIGRATE_ON_START", true),
			ForceIPv4:      getBool(v, "DB_FORCE_IPV4", false),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Report: ReportConfig{
			CacheTTL: time.Duration(getInt(v, "REPORT_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloat(v, "RATE_LIMIT_RPS", 20),
			Burst: getInt(v, "RATE_LIMIT_BURST", 40),
		},
	}

	if cfg.App.Storage != StoragePostgres && cfg.App.Storage != StorageMemory {
		return nil, fmt.Errorf("STORAGE_DRIVER inválido: %q (postgres|memory)", cfg.App.Storage)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
