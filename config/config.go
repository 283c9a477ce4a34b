package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"fieldbook/pkg/logger"
)

type AppConfig struct {
	Port            string
	Timezone        string
	DBDriver        string // sqlite|mysql
	DBPath          string
	DBDSN           string
	LogLevel        string
	LogFormat       string
	CloseThresholdM float64
	StatusCacheTTL  time.Duration
	SlowQuery       time.Duration
	MetricsEnabled  bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Module("config").Debug("no .env file loaded", "err", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function; empty values take defaults.
func FromEnv(getenv func(string) string) AppConfig {
	log := logger.Module("config")
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	getFloat := func(k string, def float64) float64 {
		raw := getenv(k)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			log.Warn("invalid number, using default", "key", k, "value", raw, "default", def)
			return def
		}
		return v
	}
	getDur := func(k string, def time.Duration) time.Duration {
		raw := getenv(k)
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v < 0 {
			log.Warn("invalid duration, using default", "key", k, "value", raw, "default", def)
			return def
		}
		return v
	}

	cfg := AppConfig{
		Port:            get("PORT", "8080"),
		Timezone:        get("TZ", "UTC"),
		DBDriver:        get("DB_DRIVER", "sqlite"),
		DBPath:          get("DB_PATH", "fieldbook.db"),
		DBDSN:           get("DB_DSN", ""),
		LogLevel:        get("LOG_LEVEL", "info"),
		LogFormat:       get("LOG_FORMAT", "text"),
		CloseThresholdM: getFloat("CLOSE_THRESHOLD_M", 20),
		StatusCacheTTL:  getDur("STATUS_CACHE_TTL", 5*time.Minute),
		SlowQuery:       time.Duration(getFloat("SLOW_QUERY_MS", 200)) * time.Millisecond,
		MetricsEnabled:  get("METRICS_ENABLED", "true") == "true",
	}
	log.Info("loaded", "port", cfg.Port, "db_driver", cfg.DBDriver, "db_path", cfg.DBPath,
		"close_threshold_m", cfg.CloseThresholdM, "status_cache_ttl", cfg.StatusCacheTTL)
	return cfg
}
