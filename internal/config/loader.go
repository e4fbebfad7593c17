package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load merges the TOML file at path over the defaults and applies ECOSCENE_*
// overrides. A missing file or empty path leaves the defaults in place. The
// result is not validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// .env is optional
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Server.HTTPAddr, "ECOSCENE_HTTP_ADDR")
	setStr(&cfg.Server.GRPCAddr, "ECOSCENE_GRPC_ADDR")
	setFloat64(&cfg.Server.RateLimit, "ECOSCENE_RATE_LIMIT")
	setInt(&cfg.Server.RateBurst, "ECOSCENE_RATE_BURST")
	setDuration(&cfg.Server.ShutdownTimeout, "ECOSCENE_SHUTDOWN_TIMEOUT")

	setStr(&cfg.MySQL.DSN, "ECOSCENE_MYSQL_DSN")
	setInt(&cfg.MySQL.MaxOpenConns, "ECOSCENE_MYSQL_MAX_OPEN_CONNS")
	setInt(&cfg.MySQL.MaxIdleConns, "ECOSCENE_MYSQL_MAX_IDLE_CONNS")
	setInt(&cfg.MySQL.MigrateRetries, "ECOSCENE_MYSQL_MIGRATE_RETRIES")
	setBool(&cfg.MySQL.SeedFixtures, "ECOSCENE_MYSQL_SEED_FIXTURES")

	setStr(&cfg.Redis.Addr, "ECOSCENE_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ECOSCENE_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ECOSCENE_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "ECOSCENE_REDIS_POOL_SIZE")
	setDuration(&cfg.Redis.CartTTL, "ECOSCENE_REDIS_CART_TTL")

	setStringSlice(&cfg.Kafka.Brokers, "ECOSCENE_KAFKA_BROKERS")
	setStr(&cfg.Kafka.Topic, "ECOSCENE_KAFKA_TOPIC")

	setInt(&cfg.Orders.Workers, "ECOSCENE_ORDER_WORKERS")
	setInt(&cfg.Orders.QueueSize, "ECOSCENE_ORDER_QUEUE_SIZE")

	setStr(&cfg.LogLevel, "ECOSCENE_LOG_LEVEL")
	setStr(&cfg.LogFormat, "ECOSCENE_LOG_FORMAT")
}

// Each helper only mutates dst when the variable is set and parses.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
