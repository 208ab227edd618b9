// Package verify реализует POST /verify-token.
//
// Маршрут защищён JWTMiddleware с извлечением токена из заголовка как есть;
// обработчик лишь сообщает id пользователя, положенный middleware в контекст.
package verify

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/player-tracker/internal/http/response"
)

// Response ответ для валидного токена.
type Response struct {
	Message string `json:"message" example:"Token is valid"`
	UserID  int64  `json:"user_id" example:"7"`
}

// Handler обрабатывает POST /verify-token.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Проверка токена
// @Tags Auth
// @Produce  json
// @Param Authorization header string true "Сессионный токен без префикса"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Router /verify-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, middlewarectx.ErrMissingUserID)
		return
	}

	render.JSON(w, r, Response{
		Message: "Token is valid",
		UserID:  userID,
	})
}
