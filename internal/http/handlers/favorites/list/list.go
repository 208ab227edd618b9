// Package list реализует GET /user/players: карточки избранных игроков.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/player-tracker/internal/http/response"
	"github.com/magabrotheeeer/player-tracker/internal/models"
)

// Service отдаёт избранное пользователя вместе с данными провайдера.
type Service interface {
	Enriched(ctx context.Context, userID int64) ([]models.Player, error)
}

// Handler обрабатывает GET /user/players.
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
// @Summary Избранные игроки
// @Description Карточки избранных игроков, последние добавленные первыми. Игроки, которых не удалось получить у провайдера, пропускаются.
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.Player
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /user/players [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, middlewarectx.ErrMissingUserID)
		return
	}

	players, err := h.service.Enriched(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Debug("favorites listed", slog.Int("count", len(players)))
	render.JSON(w, r, players)
}
