// Package teams реализует GET /user/players/teams.
package teams

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

// Service определяет команды избранных игроков.
type Service interface {
	Teams(ctx context.Context, userID int64) (map[int64]models.TeamResult, error)
}

// Handler обрабатывает GET /user/players/teams.
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
// @Summary Команды избранных игроков
// @Description Для каждого избранного игрока команда текущего сезона. Если команда не найдена, teamName равен "Team not found", teamId отсутствует.
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]models.TeamResult
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /user/players/teams [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.teams"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, middlewarectx.ErrMissingUserID)
		return
	}

	teams, err := h.service.Teams(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, teams)
}
