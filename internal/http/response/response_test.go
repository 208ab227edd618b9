package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/player-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/player-tracker/internal/mlbapi"
	"github.com/magabrotheeeer/player-tracker/internal/services/auth"
	"github.com/magabrotheeeer/player-tracker/internal/services/favorites"
	"github.com/magabrotheeeer/player-tracker/internal/storage/repository"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", auth.ErrValidation, http.StatusBadRequest, CodeValidation, MsgMissingFields},
		{"invalid player id", favorites.ErrInvalidPlayerID, http.StatusBadRequest, CodeInvalidInput, "Invalid player ID"},
		{"duplicate credential", auth.ErrDuplicateCredential, http.StatusConflict, CodeDuplicate, "Username or email already exists"},
		{"favorite exists", favorites.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists, "Player already added"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCreds, "Invalid email or password"},
		{"wrong current password", auth.ErrAuthenticationFailure, http.StatusUnauthorized, CodeAuthFailure, "Incorrect current password"},
		{"expired token", jwt.ErrTokenExpired, http.StatusUnauthorized, CodeUnauthorized, MsgTokenExpired},
		{"malformed token", jwt.ErrTokenMalformed, http.StatusUnauthorized, CodeUnauthorized, MsgInvalidToken},
		{"player not found", mlbapi.ErrPlayerNotFound, http.StatusNotFound, CodeNotFound, MsgPlayerNotFound},
		{"user not found", repository.ErrUserNotFound, http.StatusNotFound, CodeNotFound, MsgUserNotFound},
		{"upstream", mlbapi.ErrUpstream, http.StatusInternalServerError, CodeUpstream, "Failed to fetch player data"},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, CodeStorage, MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service.Op: %w", tt.err)
			status, body := Status(wrapped)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestWriteError_HidesInternalText(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, log, errors.New("password authentication failed for user postgres"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, MsgInternal, got["error"])
	assert.Equal(t, CodeStorage, got["code"])
	assert.NotContains(t, rec.Body.String(), "postgres")
}

func TestValidationError(t *testing.T) {
	type request struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email,omitempty" validate:"required,email"`
		Password string `validate:"required"`
	}

	err := NewValidator().Struct(request{Email: "not-an-email"})
	require.Error(t, err)

	got := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, CodeValidation, got.Code)
	assert.Equal(t, MsgMissingFields, got.Error)
	assert.Equal(t, []string{"username", "email", "Password"}, got.Fields)
}
