// Package autocatalog собирает приложение: хранилище, кеш, очередь
// уведомлений, бизнес-сервисы, HTTP-сервер и фоновую очистку подписок.
package autocatalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/auto-catalog/internal/cache"
	"github.com/magabrotheeeer/auto-catalog/internal/config"
	jwtlib "github.com/magabrotheeeer/auto-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/auto-catalog/internal/migrations"
	"github.com/magabrotheeeer/auto-catalog/internal/rabbitmq"
	accessservice "github.com/magabrotheeeer/auto-catalog/internal/services/access"
	adminservice "github.com/magabrotheeeer/auto-catalog/internal/services/admin"
	authservice "github.com/magabrotheeeer/auto-catalog/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/auto-catalog/internal/services/catalog"
	filesservice "github.com/magabrotheeeer/auto-catalog/internal/services/files"
	proxyservice "github.com/magabrotheeeer/auto-catalog/internal/services/proxy"
	subservice "github.com/magabrotheeeer/auto-catalog/internal/services/subscription"
	sweeperservice "github.com/magabrotheeeer/auto-catalog/internal/services/sweeper"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
	"github.com/magabrotheeeer/auto-catalog/internal/telegram"
)

// App — собранное приложение со всеми зависимостями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *repository.Storage
	amqp    *amqp.Connection
	sweeper *sweeperservice.Service
}

// New создаёт приложение из конфигурации: подключает Postgres и прогоняет
// миграции, поднимает Redis и RabbitMQ, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnectRetries, cfg.ConnectDelay)
	if err != nil {
		return nil, err
	}
	channel, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, err
	}

	tgClient := telegram.NewClient(cfg.BotToken, cfg.APIBase)
	maker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	accessService := accessservice.New(db, db, logger)
	services := Services{
		Auth:         authservice.New(db, tgClient, maker, logger),
		Access:       accessService,
		Subscription: subservice.New(db, logger),
		Catalog:      catalogservice.New(db, cacheRedis, logger),
		Files:        filesservice.New(db, accessService, logger),
		Proxy:        proxyservice.New(cfg.ProxyTimeout, logger),
		Admin:        adminservice.New(db, tgClient, logger),
	}

	sweep := sweeperservice.New(db, &sweeperservice.ChannelPublisher{Ch: channel},
		cfg.SweepInterval, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		db:      db,
		amqp:    conn,
		sweeper: sweep,
	}, nil
}

// Run запускает фоновую очистку подписок и HTTP-сервер; блокируется
// до отмены контекста либо падения сервера.
func (a *App) Run(ctx context.Context) error {
	go a.sweeper.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		if closeErr := a.amqp.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		return err
	}
}
