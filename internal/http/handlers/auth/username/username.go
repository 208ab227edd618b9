// Package username реализует GET /user/get_username.
package username

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/player-tracker/internal/http/response"
)

// Response имя текущего пользователя.
type Response struct {
	Username string `json:"username" example:"judge99"`
}

// Service возвращает имя пользователя по id.
type Service interface {
	GetUsername(ctx context.Context, userID int64) (string, error)
}

// Handler обрабатывает GET /user/get_username.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Имя текущего пользователя
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse
// @Router /user/get_username [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.username"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, middlewarectx.ErrMissingUserID)
		return
	}

	name, err := h.service.GetUsername(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, Response{Username: name})
}
