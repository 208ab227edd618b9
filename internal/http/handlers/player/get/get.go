// Package get реализует GET /player/{id}: карточку игрока из MLB Stats API.
package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/response"
	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/player-tracker/internal/models"
)

// Service источник карточек игроков.
type Service interface {
	FetchPlayer(ctx context.Context, playerID int64) (*models.Player, error)
}

// Handler обрабатывает GET /player/{id}.
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
// @Summary Карточка игрока
// @Tags Players
// @Produce  json
// @Param id path int true "id игрока MLB"
// @Success 200 {object} models.Player
// @Failure 404 {object} response.ErrorResponse "Игрок не найден"
// @Failure 500 {object} response.ErrorResponse
// @Router /player/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.player.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		log.Info("invalid player id", slog.String("id", idStr))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.CodeNotFound, response.MsgPlayerNotFound))
		return
	}

	player, err := h.service.FetchPlayer(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Debug("player fetched", sl.PlayerID(id))
	render.JSON(w, r, player)
}
