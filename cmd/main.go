package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/RaikyD/parcel-orders/internal/application"
	"github.com/RaikyD/parcel-orders/internal/config"
	"github.com/RaikyD/parcel-orders/internal/kafka"
	"github.com/RaikyD/parcel-orders/internal/logger"
	"github.com/RaikyD/parcel-orders/internal/metrics"
	"github.com/RaikyD/parcel-orders/internal/migrate"
	"github.com/RaikyD/parcel-orders/internal/presentation"
	"github.com/RaikyD/parcel-orders/internal/repository"
	"github.com/RaikyD/parcel-orders/internal/storage"
)

func main() {
	// в хранилище и в API цены лежат числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("dev")
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.LOG_MODE)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		logger.Error("store open failed", "backend", cfg.STORE_BACKEND, "err", err)
		os.Exit(1)
	}
	defer closeKV()
	logger.Info("store ready", "backend", cfg.STORE_BACKEND, "key", cfg.STORE_COLLECTION_KEY)

	// Wiring
	m := metrics.New()
	repo := repository.NewOrderRepository(storage.NewOrderStore(kv, cfg.STORE_COLLECTION_KEY))

	var pub application.EventPublisher
	if cfg.KafkaEnabled() {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		pub = prod
	}
	svc := application.NewOrdersService(repo, pub, m)

	if cfg.KafkaEnabled() {
		_, _ = kafka.StartConsumer(ctx, svc, kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_COMMANDS_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		})
	}

	r := presentation.NewRouter(presentation.NewOrdersHandler(svc), m)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP_PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting http", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
	logger.Info("http server stopped")
}

func openKV(ctx context.Context, cfg *config.Config) (storage.KV, func(), error) {
	switch cfg.STORE_BACKEND {
	case config.BackendMemory:
		logger.Warn("memory store: orders are lost on restart")
		return storage.NewMemoryKV(), func() {}, nil

	case config.BackendPostgres:
		if err := migrate.Up(ctx, cfg.DB_STRING); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.DB_STRING)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("db connected")
		return storage.NewPostgresKV(pool), pool.Close, nil

	default:
		kv, err := storage.NewFileKV(cfg.STORE_FILE_DIR)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil
	}
}
