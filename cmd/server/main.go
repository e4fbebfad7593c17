package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/rl1809/ecoscene/internal/adapter/handler"
	"github.com/rl1809/ecoscene/internal/adapter/messaging"
	"github.com/rl1809/ecoscene/internal/adapter/storage"
	"github.com/rl1809/ecoscene/internal/config"
	"github.com/rl1809/ecoscene/internal/core/service"
	"github.com/rl1809/ecoscene/internal/logging"
	"github.com/rl1809/ecoscene/internal/port"
	"github.com/rl1809/ecoscene/migrations"
)

func main() {
	configPath := flag.String("config", "ecoscene.toml", "path to TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")
}

type backends struct {
	catalog   port.CatalogRepository
	orders    port.DatabaseRepository
	carts     port.CartRepository
	cache     port.CacheRepository
	publisher port.EventPublisher
	closers   []func() error
}

func (b *backends) close(logger zerolog.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Error().Err(err).Msg("failed to close connection")
		}
	}
	logger.Info().Msg("connections closed")
}

func connect(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*backends, error) {
	b := &backends{publisher: messaging.NoopPublisher{}}

	if cfg.MySQL.DSN != "" {
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		b.closers = append(b.closers, db.Close)
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime.Duration)

		if err := db.PingContext(ctx); err != nil {
			b.close(logger)
			return nil, fmt.Errorf("ping mysql: %w", err)
		}
		if err := migrations.AutoMigrate(db, cfg.MySQL.MigrateRetries); err != nil {
			b.close(logger)
			return nil, err
		}
		logger.Info().Msg("connected to mysql")

		mysqlAdapter := storage.NewMySQLAdapter(db)
		if cfg.MySQL.SeedFixtures {
			if err := mysqlAdapter.SeedProducts(ctx, storage.Fixtures()); err != nil {
				b.close(logger)
				return nil, err
			}
			logger.Info().Int("products", len(storage.Fixtures())).Msg("seeded catalog")
		}
		b.catalog, b.orders = mysqlAdapter, mysqlAdapter
	} else {
		b.catalog = storage.NewMemoryCatalog(storage.Fixtures())
		b.orders = storage.NewMemoryOrderStore()
		logger.Warn().Msg("no mysql dsn, serving fixture catalog with in-memory orders")
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		b.closers = append(b.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			b.close(logger)
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info().Msg("connected to redis")

		redisAdapter := storage.NewRedisAdapter(rdb, cfg.Redis.CartTTL.Duration)
		b.carts, b.cache = redisAdapter, redisAdapter
	} else {
		mem := storage.NewMemoryCartStore()
		b.carts, b.cache = mem, mem
		logger.Warn().Msg("no redis addr, keeping carts in memory")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		b.closers = append(b.closers, publisher.Close)
		b.publisher = publisher
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing order events")
	}

	return b, nil
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	b, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.close(logger)

	cartService := service.NewCartService(b.catalog, b.carts, logger)
	orderService := service.NewOrderService(cartService, b.cache, b.orders, cfg.Orders.QueueSize, logger)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	// Start worker pool
	var wg sync.WaitGroup
	worker := service.NewOrderWorker(b.orders, b.cache, b.carts, b.publisher, logger)
	for i := 0; i < cfg.Orders.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker.Run(id, orderService.GetOrderQueue())
		}(i)
	}
	logger.Info().Int("workers", cfg.Orders.Workers).Msg("started order workers")

	e := handler.NewEcho(handler.NewHTTPHandler(cartService, orderService, logger), logger, handler.ServerOptions{
		RateLimit: cfg.Server.RateLimit,
		Burst:     cfg.Server.RateBurst,
	})
	grpcServer := handler.NewGRPCServer(handler.NewGRPCHandler(cartService), logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", cfg.Server.HTTPAddr).Msg("HTTP server listening")
		if err := e.Start(cfg.Server.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("addr", cfg.Server.GRPCAddr).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("HTTP shutdown failed")
		}
		logger.Info().Msg("HTTP server stopped")

		grpcServer.GracefulStop()
		logger.Info().Msg("gRPC server stopped")
		return nil
	})

	err = g.Wait()

	// Close order queue and wait for workers
	orderService.Close()
	wg.Wait()
	logger.Info().Msg("workers stopped")

	return err
}
