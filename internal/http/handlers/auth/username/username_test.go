package username

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/player-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/player-tracker/internal/storage/repository"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GetUsername(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func TestUsernameHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		userID     int64
		mockName   string
		mockErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found",
			userID:     7,
			mockName:   "judge99",
			wantStatus: http.StatusOK,
			wantBody:   `{"username":"judge99"}`,
		},
		{
			name:       "user no longer exists",
			userID:     8,
			mockErr:    repository.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"User not found","code":"NOT_FOUND"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("GetUsername", mock.Anything, tt.userID).Return(tt.mockName, tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/user/get_username", nil)
			req = req.WithContext(middlewarectx.WithUserID(req.Context(), tt.userID))
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
