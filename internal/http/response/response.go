// Package response содержит типы и функции для формирования JSON-ответов
// HTTP-обработчиков. Ошибки отдаются в едином формате {"error", "code"},
// сопоставление доменных ошибок с HTTP-статусами выполняет WriteError.
package response

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/player-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/player-tracker/internal/mlbapi"
	"github.com/magabrotheeeer/player-tracker/internal/services/auth"
	"github.com/magabrotheeeer/player-tracker/internal/services/favorites"
	"github.com/magabrotheeeer/player-tracker/internal/storage/repository"
)

// Коды категорий ошибок в поле code.
const (
	CodeValidation     = "VALIDATION_FAILURE"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeDuplicate      = "DUPLICATE_CREDENTIAL"
	CodeAlreadyExists  = "ALREADY_EXISTS"
	CodeInvalidCreds   = "INVALID_CREDENTIALS"
	CodeAuthFailure    = "AUTHENTICATION_FAILURE"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNotFound       = "NOT_FOUND"
	CodeUpstream       = "UPSTREAM_ERROR"
	CodeStorage        = "STORAGE_ERROR"
	CodeTooManyRequest = "TOO_MANY_REQUESTS"
)

// Тексты ошибок, которые видит клиент.
const (
	MsgMissingToken   = "Missing token"
	MsgTokenExpired   = "Token has expired"
	MsgInvalidToken   = "Invalid token"
	MsgMissingFields  = "Missing required fields"
	MsgInternal       = "Internal server error"
	MsgPlayerNotFound = "Player not found"
	MsgUserNotFound   = "User not found"
	MsgInvalidBody    = "Invalid request body"
)

// ErrorResponse структура ошибки, используется и в Swagger-аннотациях.
type ErrorResponse struct {
	Error  string   `json:"error" example:"Invalid token"`
	Code   string   `json:"code,omitempty" example:"UNAUTHORIZED"`
	Fields []string `json:"fields,omitempty"`
}

// MessageResponse ответ с текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message" example:"Player added successfully"`
}

// Error возвращает ErrorResponse с переданным сообщением и кодом.
func Error(code, msg string) ErrorResponse {
	return ErrorResponse{
		Error: msg,
		Code:  code,
	}
}

// Message возвращает MessageResponse.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// NewValidator возвращает валидатор, который называет поля по их
// json-тегам, чтобы Fields совпадали с ключами тела запроса.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Fields содержит имена полей запроса, не прошедших проверку.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	fields := make([]string, 0, len(errs))
	for _, err := range errs {
		fields = append(fields, err.Field())
	}
	return ErrorResponse{
		Error:  MsgMissingFields,
		Code:   CodeValidation,
		Fields: fields,
	}
}

// Status возвращает HTTP-статус, код и сообщение для доменной ошибки.
// Неизвестные ошибки считаются ошибками хранилища.
func Status(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, auth.ErrValidation):
		return http.StatusBadRequest, Error(CodeValidation, MsgMissingFields)
	case errors.Is(err, favorites.ErrInvalidPlayerID):
		return http.StatusBadRequest, Error(CodeInvalidInput, "Invalid player ID")
	case errors.Is(err, auth.ErrDuplicateCredential):
		return http.StatusConflict, Error(CodeDuplicate, "Username or email already exists")
	case errors.Is(err, favorites.ErrAlreadyExists):
		return http.StatusConflict, Error(CodeAlreadyExists, "Player already added")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, Error(CodeInvalidCreds, "Invalid email or password")
	case errors.Is(err, auth.ErrAuthenticationFailure):
		return http.StatusUnauthorized, Error(CodeAuthFailure, "Incorrect current password")
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized, Error(CodeUnauthorized, MsgTokenExpired)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return http.StatusUnauthorized, Error(CodeUnauthorized, MsgInvalidToken)
	case errors.Is(err, mlbapi.ErrPlayerNotFound):
		return http.StatusNotFound, Error(CodeNotFound, MsgPlayerNotFound)
	case errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound, Error(CodeNotFound, MsgUserNotFound)
	case errors.Is(err, mlbapi.ErrUpstream):
		return http.StatusInternalServerError, Error(CodeUpstream, "Failed to fetch player data")
	default:
		return http.StatusInternalServerError, Error(CodeStorage, MsgInternal)
	}
}

// WriteError логирует ошибку и пишет ответ со статусом из Status.
// Текст внутренней ошибки клиенту не передаётся.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Info("request rejected", slog.Int("status", status), sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
