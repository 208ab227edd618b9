// Package playertracker собирает HTTP-сервер сервиса избранных игроков.
package playertracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация описания API для /docs.
	_ "github.com/magabrotheeeer/player-tracker/docs"

	"github.com/magabrotheeeer/player-tracker/internal/config"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/auth/changepassword"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/auth/username"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/auth/verify"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/favorites/add"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/favorites/images"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/favorites/list"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/favorites/remove"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/favorites/teams"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/home"
	"github.com/magabrotheeeer/player-tracker/internal/http/handlers/player/get"
	"github.com/magabrotheeeer/player-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/player-tracker/internal/mlbapi"
	authservice "github.com/magabrotheeeer/player-tracker/internal/services/auth"
	favoritesservice "github.com/magabrotheeeer/player-tracker/internal/services/favorites"
)

// Services зависимости обработчиков.
type Services struct {
	Auth      *authservice.AuthService
	Favorites *favoritesservice.Service
	Players   *mlbapi.Client
	DB        health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	r.Get("/", home.New().ServeHTTP)
	r.Get("/health", health.New(logger, svc.DB).ServeHTTP)
	r.Get("/player/{id}", get.New(logger, svc.Players).ServeHTTP)

	// Открытые конечные точки учётных записей
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		r.Post("/user/signup", signup.New(logger, svc.Auth).ServeHTTP)
		r.Post("/user/login", login.New(logger, svc.Auth).ServeHTTP)
	})

	// Токен без префикса Bearer
	r.With(middlewarectx.JWTMiddleware(svc.Auth, logger, middlewarectx.BareToken)).
		Post("/verify-token", verify.New(logger).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger, middlewarectx.BearerToken))
		r.Get("/user/players", list.New(logger, svc.Favorites).ServeHTTP)
		r.Post("/user/players", add.New(logger, svc.Favorites).ServeHTTP)
		r.Get("/user/players/images", images.New(logger, svc.Favorites).ServeHTTP)
		r.Get("/user/players/teams", teams.New(logger, svc.Favorites).ServeHTTP)
		r.Delete("/user/players/{id}", remove.New(logger, svc.Favorites).ServeHTTP)
		r.Get("/user/get_username", username.New(logger, svc.Auth).ServeHTTP)
		r.Post("/user/change_password", changepassword.New(logger, svc.Auth).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
