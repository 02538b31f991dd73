package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/api"
	"github.com/safar/artisan-market/internal/cart"
	"github.com/safar/artisan-market/internal/catalog"
	"github.com/safar/artisan-market/internal/config"
	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/events"
	"github.com/safar/artisan-market/internal/kv"
	"github.com/safar/artisan-market/internal/orders"
	"github.com/safar/artisan-market/internal/reviews"
	"github.com/safar/artisan-market/internal/seller"
	"github.com/safar/artisan-market/internal/shops"
	"github.com/safar/artisan-market/internal/store"
	"github.com/safar/artisan-market/internal/store/memory"
	"github.com/safar/artisan-market/internal/store/postgres"
	"github.com/safar/artisan-market/seed"
)

const redisKeyPrefix = "artisan-market"

// app is the wired service graph plus the resources it must release.
type app struct {
	services api.Services
	closers  []func() error
}

func (a *app) Close(logger zerolog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn().Err(err).Msg("close resource")
		}
	}
}

func loadSeed(cfg config.StoreConfig) (*store.Seed, error) {
	var fsys fs.FS = seed.Files
	if cfg.SeedDir != "" {
		fsys = os.DirFS(cfg.SeedDir)
	}
	return store.LoadSeed(fsys)
}

func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	return database.Connect(ctx, &cfg.Database, logger)
}

func wire(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{}

	repos, err := a.repositories(ctx, cfg, logger)
	if err != nil {
		a.Close(logger)
		return nil, err
	}

	sessions, err := a.sessionStore(ctx, cfg, logger)
	if err != nil {
		a.Close(logger)
		return nil, err
	}

	publisher, err := a.publisher(cfg, logger)
	if err != nil {
		a.Close(logger)
		return nil, err
	}

	validate := validator.New()
	catalogService := catalog.NewService(repos.Products)
	orderService := orders.NewService(repos.Orders, publisher, logger, orders.Options{
		StrictTransitions: cfg.Orders.StrictTransitions,
		PublishTimeout:    cfg.Orders.PublishTimeout,
	})
	shopService := shops.NewService(repos.Shops)

	a.services = api.Services{
		Catalog:   catalogService,
		Orders:    orderService,
		Reviews:   reviews.NewService(repos.Reviews, validate),
		Shops:     shopService,
		Dashboard: seller.NewDashboard(orderService, catalogService),
		Registrar: seller.NewRegistrar(shopService, validate),
		Carts:     cart.NewSessions(sessions, logger),
		Validate:  validate,
	}
	return a, nil
}

func (a *app) repositories(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Repositories, error) {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		db, err := openDatabase(ctx, cfg, logger)
		if err != nil {
			return store.Repositories{}, err
		}
		a.closers = append(a.closers, db.Close)
		return postgres.Repositories(db), nil
	}

	data, err := loadSeed(cfg.Store)
	if err != nil {
		return store.Repositories{}, err
	}
	logger.Info().
		Int("products", len(data.Products)).
		Int("orders", len(data.Orders)).
		Dur("latency", cfg.Store.Latency).
		Msg("using in-memory store")
	return memory.New(data, memory.Options{Latency: cfg.Store.Latency}).Repositories(), nil
}

func (a *app) sessionStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (kv.Store, error) {
	if !cfg.Redis.Enabled() {
		return kv.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	a.closers = append(a.closers, client.Close)

	rs := kv.NewRedisStore(client, redisKeyPrefix, cfg.Redis.TTL)
	if err := rs.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("session state in redis")
	return rs, nil
}

func (a *app) publisher(cfg *config.Config, logger zerolog.Logger) (events.Publisher, error) {
	if !cfg.Kafka.Enabled() {
		return events.Nop{}, nil
	}

	writer, err := events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, err
	}
	publisher := events.NewKafkaPublisher(writer, logger)
	a.closers = append(a.closers, publisher.Close)
	logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing order events")
	return publisher, nil
}
