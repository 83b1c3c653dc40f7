package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPPort    string

	OTLPEndpoint string
	OTLPProtocol string
	OTELEnabled  bool

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int64
	DBConnMaxIdleTime int64

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Tariff TariffConfig
	Import ImportConfig

	SeedDemoData bool
}

// TariffConfig is the flat energy price applied to consumption estimates.
type TariffConfig struct {
	RatePerKwh float64
	Currency   string
}

type ImportConfig struct {
	MaxRows          int
	RatePerMinute    int64
	Burst            int64
	RateLimitEnabled bool
	LockTTLSeconds   int64
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "enervue"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: environment,
		HTTPPort:    getenv("HTTP_PORT", "8080"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),
		OTLPProtocol: strings.ToLower(getenv("OTLP_PROTOCOL", "grpc")),
		OTELEnabled:  getenvBool("OTEL_ENABLED", false),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "enervue"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 5)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 25)),
		DBConnMaxLifetime: getenvInt64("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 60),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       int(getenvInt64("REDIS_DB", 0)),

		Tariff: TariffConfig{
			RatePerKwh: getenvFloat64("TARIFF_RATE_PER_KWH", 0.35),
			Currency:   getenv("TARIFF_CURRENCY", "EUR"),
		},
		Import: ImportConfig{
			MaxRows:          int(getenvInt64("IMPORT_MAX_ROWS", 100000)),
			RatePerMinute:    getenvInt64("IMPORT_RATE_PER_MINUTE", 10),
			Burst:            getenvInt64("IMPORT_BURST", 5),
			RateLimitEnabled: getenvBool("IMPORT_RATE_LIMIT_ENABLED", false),
			LockTTLSeconds:   getenvInt64("IMPORT_LOCK_TTL_SECONDS", 30),
		},

		SeedDemoData: getenvBool("SEED_DEMO_DATA", false),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat64(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
