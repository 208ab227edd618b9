// Package middlewarectx содержит HTTP middleware сервиса.
//
// JWTMiddleware извлекает сессионный токен из заголовка Authorization,
// проверяет его и кладёт id пользователя в контекст запроса. При ошибке
// проверки возвращается 401 с сообщением о причине.
package middlewarectx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-tracker/internal/http/response"
	"github.com/magabrotheeeer/player-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID ключ id пользователя в контексте.
const UserID Key = "user_id"

// ErrMissingUserID обработчик защищённого маршрута вызван без JWTMiddleware.
var ErrMissingUserID = fmt.Errorf("%w: user id missing in request context", jwt.ErrTokenMalformed)

// TokenVerifier проверяет токен и возвращает id пользователя.
type TokenVerifier interface {
	VerifyToken(token string) (int64, error)
}

// TokenExtractor достаёт токен из запроса. Пустая строка означает отсутствие токена.
type TokenExtractor func(r *http.Request) string

// BearerToken принимает заголовок вида "Bearer <token>" или голый токен.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	return header
}

// BareToken возвращает заголовок Authorization как есть.
func BareToken(r *http.Request) string {
	return r.Header.Get("Authorization")
}

// WithUserID возвращает контекст с id пользователя.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserID, userID)
}

// UserIDFromContext возвращает id пользователя, положенный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserID).(int64)
	return id, ok && id > 0
}

// JWTMiddleware возвращает middleware, пропускающий только запросы с валидным токеном.
func JWTMiddleware(verifier TokenVerifier, log *slog.Logger, extract TokenExtractor) func(http.Handler) http.Handler {
	if extract == nil {
		extract = BearerToken
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := extract(r)
			if token == "" {
				log.Info("missing authorization token")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.CodeUnauthorized, response.MsgMissingToken))
				return
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				msg := response.MsgInvalidToken
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = response.MsgTokenExpired
				}
				log.Info("token rejected", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.CodeUnauthorized, msg))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
