// Package remove реализует DELETE /user/players/{id}.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/player-tracker/internal/http/response"
	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
)

// Handler обрабатывает DELETE /user/players/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service удаляет игрока из избранного.
type Service interface {
	Remove(ctx context.Context, userID, playerID int64) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить игрока из избранного
// @Description Повторное удаление не считается ошибкой.
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Param id path int true "id игрока"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Некорректный id игрока"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /user/players/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, middlewarectx.ErrMissingUserID)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Info("invalid id format", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidInput, "Invalid player ID"))
		return
	}

	if err := h.service.Remove(r.Context(), userID, id); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("favorite removed", sl.UserID(userID), sl.PlayerID(id))
	render.JSON(w, r, response.Message("Player removed successfully"))
}
