// Package add реализует POST /user/players: добавление игрока в избранное.
package add

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/player-tracker/internal/http/response"
	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
)

// Request тело запроса. player_id допускается числом или строкой из цифр.
type Request struct {
	PlayerID any `json:"player_id" swaggertype:"integer" example:"592450"`
}

// Service добавляет игрока в избранное.
type Service interface {
	Add(ctx context.Context, userID int64, rawPlayerID any) (int64, error)
}

// Handler обрабатывает POST /user/players.
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
// @Summary Добавить игрока в избранное
// @Tags Favorites
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "id игрока"
// @Success 201 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Некорректный id игрока"
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Игрок уже в избранном"
// @Failure 500 {object} response.ErrorResponse
// @Router /user/players [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorites.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, middlewarectx.ErrMissingUserID)
		return
	}

	var req Request
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidInput, response.MsgInvalidBody))
		return
	}

	playerID, err := h.service.Add(r.Context(), userID, req.PlayerID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("favorite added", sl.UserID(userID), sl.PlayerID(playerID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.Message("Player added successfully"))
}
