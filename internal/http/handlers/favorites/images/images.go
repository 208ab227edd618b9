// Package images реализует GET /user/players/images.
package images

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/player-tracker/internal/http/response"
)

// Service отдаёт ссылки на фотографии избранных игроков.
type Service interface {
	Images(ctx context.Context, userID int64) (map[int64]string, error)
}

// Handler обрабатывает GET /user/players/images.
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
// @Summary Фотографии избранных игроков
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]string "id игрока -> url фотографии"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /user/players/images [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.images"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, middlewarectx.ErrMissingUserID)
		return
	}

	images, err := h.service.Images(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, images)
}
