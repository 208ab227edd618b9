// Package signup реализует HTTP-обработчик регистрации пользователя.
//
// После успешной регистрации пользователь сразу получает сессионный токен,
// отдельный вход не требуется.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/player-tracker/internal/http/response"
	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/player-tracker/internal/models"
)

// Request входные данные для регистрации.
type Request struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response ответ на успешную регистрацию.
type Response struct {
	Message string       `json:"message" example:"User signed up successfully"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

// Service описывает регистрацию пользователя.
type Service interface {
	Signup(ctx context.Context, username, email, password string) (*models.User, string, error)
}

// Handler обрабатывает POST /user/signup.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись и возвращает сессионный токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} Response
// @Failure 400 {object} response.ErrorResponse "Не заполнены обязательные поля"
// @Failure 409 {object} response.ErrorResponse "Имя или email уже заняты"
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /user/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidInput, response.MsgInvalidBody))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Info("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		response.WriteError(w, r, log, err)
		return
	}

	user, token, err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("user signed up", sl.UserID(user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Message: "User signed up successfully",
		User:    user,
		Token:   token,
	})
}
