package home

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/response"
)

// Handler отвечает на GET /.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.Message("Welcome to the MLB Server API"))
}
