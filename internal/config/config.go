// Package config defines the service configuration and its validation.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is populated from a TOML file and then overridden by ECOSCENE_*
// environment variables.
type Config struct {
	Server   ServerConfig `toml:"server"`
	MySQL    MySQLConfig  `toml:"mysql"`
	Redis    RedisConfig  `toml:"redis"`
	Kafka    KafkaConfig  `toml:"kafka"`
	Orders   OrdersConfig `toml:"orders"`
	LogLevel string       `toml:"log_level"`
	// LogFormat is "json" or "console".
	LogFormat string `toml:"log_format"`
}

type ServerConfig struct {
	HTTPAddr        string   `toml:"http_addr"`
	GRPCAddr        string   `toml:"grpc_addr"`
	RateLimit       float64  `toml:"rate_limit"`
	RateBurst       int      `toml:"rate_burst"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// MySQLConfig holds the catalog and order database. An empty DSN serves the
// built-in fixture catalog and keeps orders in memory.
type MySQLConfig struct {
	DSN             string   `toml:"dsn"`
	MaxOpenConns    int      `toml:"max_open_conns"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	ConnMaxLifetime duration `toml:"conn_max_lifetime"`
	MigrateRetries  int      `toml:"migrate_retries"`
	SeedFixtures    bool     `toml:"seed_fixtures"`
}

// RedisConfig holds the cart and idempotency store. An empty Addr keeps both
// in process.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	PoolSize int      `toml:"pool_size"`
	CartTTL  duration `toml:"cart_ttl"`
}

// KafkaConfig holds the order event sink. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type OrdersConfig struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

// duration wraps time.Duration so TOML strings like "5s" decode.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Defaults() Config {
	return Config{
		Server: ServerConfig{
			HTTPAddr:        ":8080",
			GRPCAddr:        ":50051",
			RateLimit:       50,
			RateBurst:       100,
			ShutdownTimeout: duration{5 * time.Second},
		},
		MySQL: MySQLConfig{
			MaxOpenConns:    50,
			MaxIdleConns:    25,
			ConnMaxLifetime: duration{5 * time.Minute},
			MigrateRetries:  3,
			SeedFixtures:    true,
		},
		Redis: RedisConfig{
			PoolSize: 100,
			CartTTL:  duration{7 * 24 * time.Hour},
		},
		Kafka: KafkaConfig{
			Topic: "ecoscene.orders",
		},
		Orders: OrdersConfig{
			Workers:   10,
			QueueSize: 10000,
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate returns a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Sprintf("unknown log_format %q (valid: json, console)", c.LogFormat))
	}

	if c.Server.HTTPAddr == "" {
		errs = append(errs, "server: http_addr must not be empty")
	}
	if c.Server.GRPCAddr == "" {
		errs = append(errs, "server: grpc_addr must not be empty")
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "server: rate_limit must be >= 0")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		errs = append(errs, "server: rate_burst must be >= 1 when rate_limit is set")
	}

	if c.MySQL.DSN != "" && c.MySQL.MaxOpenConns < 1 {
		errs = append(errs, "mysql: max_open_conns must be >= 1")
	}
	if c.Redis.Addr != "" && c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		errs = append(errs, "kafka: topic must not be empty when brokers are set")
	}

	if c.Orders.Workers < 1 {
		errs = append(errs, "orders: workers must be >= 1")
	}
	if c.Orders.QueueSize < 0 {
		errs = append(errs, "orders: queue_size must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
