package playertracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/player-tracker/internal/cache"
	"github.com/magabrotheeeer/player-tracker/internal/config"
	"github.com/magabrotheeeer/player-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/player-tracker/internal/migrations"
	"github.com/magabrotheeeer/player-tracker/internal/mlbapi"
	authservice "github.com/magabrotheeeer/player-tracker/internal/services/auth"
	favoritesservice "github.com/magabrotheeeer/player-tracker/internal/services/favorites"
	"github.com/magabrotheeeer/player-tracker/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер вместе с его ресурсами.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New подключается к базе, применяет миграции и собирает маршруты.
// Redis необязателен: без адреса составы команд не кешируются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "playertracker.New"

	db, err := repository.New(cfg.StorageConnectionString, repository.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = repository.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		opts       []mlbapi.Option
		cacheRedis *cache.Cache
	)
	if cfg.CacheEnabled() {
		cacheRedis, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upstream := mlbapi.NewClient(cfg.MLBAPI)
		opts = append(opts, mlbapi.WithRosterSource(
			mlbapi.NewCachedRosters(upstream, cacheRedis, cfg.RosterTTL, upstream.SportID(), logger),
		))
		logger.Info("roster cache enabled", slog.String("addr", cfg.AddressRedis), slog.Duration("ttl", cfg.RosterTTL))
	}
	players := mlbapi.NewClient(cfg.MLBAPI, opts...)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	favoritesService := favoritesservice.NewService(db, players, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Services{
		Auth:      authService,
		Favorites: favoritesService,
		Players:   players,
		DB:        db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
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
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
}
