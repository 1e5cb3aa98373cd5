package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/gameroom-backend/internal/auth"
	"github.com/rocketscienceinc/gameroom-backend/internal/config"
	"github.com/rocketscienceinc/gameroom-backend/internal/deck"
	"github.com/rocketscienceinc/gameroom-backend/internal/metrics"
	"github.com/rocketscienceinc/gameroom-backend/internal/repository"
	"github.com/rocketscienceinc/gameroom-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gameroom-backend/internal/session"
	"github.com/rocketscienceinc/gameroom-backend/internal/stats"
	"github.com/rocketscienceinc/gameroom-backend/internal/usecase"
	"github.com/rocketscienceinc/gameroom-backend/transport/rest"
	"github.com/rocketscienceinc/gameroom-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	statsRepo, closeStorage, err := openStatsRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			log.Error("could not close stats storage", "error", closeErr)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gameMetrics := metrics.New(registry)

	clock := quartz.NewReal()

	recorder := stats.NewAsyncRecorder(logger, statsRepo, gameMetrics, clock, conf.Stats.QueueSize, conf.Stats.Timeout)
	hub := session.NewHub(logger, gameMetrics)
	gameManager := usecase.NewGameManager(
		logger, hub, recorder, gameMetrics, clock, deck.NewRand(conf.Game.Seed), conf.Game.RemovalDelay,
	)
	verifier := auth.NewVerifier(conf.Auth.JWTSecret, conf.Auth.AllowGuests)
	coordinator := session.NewCoordinator(logger, gameManager, hub, verifier, clock, conf.Game.ActionDelay)

	wsServer := websocket.New(logger, hub, coordinator)
	httpServer := rest.New(logger, statsRepo, registry)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return recorder.Run(groupCtx)
	})

	group.Go(func() error {
		return coordinator.Run(groupCtx)
	})

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := httpServer.Start(groupCtx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")
		return nil
	})

	return group.Wait()
}

// openStatsRepository - connects the storage selected by stats.driver.
func openStatsRepository(ctx context.Context, conf *config.Config) (repository.StatsRepository, func() error, error) {
	noop := func() error { return nil }

	switch conf.Stats.Driver {
	case config.StatsDriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisStatsRepository(redisStorage, conf.Stats.HistoryLimit), redisStorage.Close, nil

	case config.StatsDriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteStatsRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	case config.StatsDriverPostgres:
		pool, err := storage.NewPostgresStorage(ctx, conf.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		if err = storage.InitPostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("could not init postgres storage: %w", err)
		}

		return repository.NewPostgresStatsRepository(pool), func() error {
			pool.Close()
			return nil
		}, nil

	default:
		return repository.NewDiscardStatsRepository(), noop, nil
	}
}
