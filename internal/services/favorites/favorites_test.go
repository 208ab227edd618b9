package favorites_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/player-tracker/internal/mlbapi"
	"github.com/magabrotheeeer/player-tracker/internal/models"
	"github.com/magabrotheeeer/player-tracker/internal/services/favorites"
	"github.com/magabrotheeeer/player-tracker/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) AddFavorite(ctx context.Context, userID, playerID int64) error {
	args := m.Called(ctx, userID, playerID)
	return args.Error(0)
}

func (m *RepoMock) RemoveFavorite(ctx context.Context, userID, playerID int64) (int, error) {
	args := m.Called(ctx, userID, playerID)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListFavorites(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type PlayersMock struct{ mock.Mock }

func (m *PlayersMock) FetchPlayer(ctx context.Context, playerID int64) (*models.Player, error) {
	args := m.Called(ctx, playerID)
	p, _ := args.Get(0).(*models.Player)
	return p, args.Error(1)
}

func (m *PlayersMock) FindTeamForPlayer(ctx context.Context, playerID int64) (*models.Team, error) {
	args := m.Called(ctx, playerID)
	t, _ := args.Get(0).(*models.Team)
	return t, args.Error(1)
}

func (m *PlayersMock) HeadshotURL(playerID int64) string {
	return fmt.Sprintf("http://img/%d.jpg", playerID)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestParsePlayerID(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int64
		wantErr bool
	}{
		{name: "json number", raw: json.Number("592450"), want: 592450},
		{name: "float64", raw: float64(592450), want: 592450},
		{name: "numeric string", raw: "592450", want: 592450},
		{name: "numeric string with spaces", raw: " 592450 ", want: 592450},
		{name: "int64", raw: int64(7), want: 7},
		{name: "zero", raw: json.Number("0"), wantErr: true},
		{name: "negative", raw: "-5", wantErr: true},
		{name: "fractional", raw: float64(1.5), wantErr: true},
		{name: "fractional json number", raw: json.Number("1.5"), wantErr: true},
		{name: "integral json number with fraction part", raw: json.Number("592450.0"), want: 592450},
		{name: "json number in exponent form", raw: json.Number("5.9245e5"), want: 592450},
		{name: "json number out of range", raw: json.Number("1e400"), wantErr: true},
		{name: "letters", raw: "abc", wantErr: true},
		{name: "empty string", raw: "", wantErr: true},
		{name: "nil", raw: nil, wantErr: true},
		{name: "bool", raw: true, wantErr: true},
		{name: "object", raw: map[string]any{"id": 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := favorites.ParsePlayerID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, favorites.ErrInvalidPlayerID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Add(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		repoErr   error
		callsRepo bool
		wantID    int64
		wantErr   error
	}{
		{name: "added", raw: "592450", callsRepo: true, wantID: 592450},
		{name: "duplicate", raw: json.Number("592450"), repoErr: repository.ErrFavoriteExists, callsRepo: true, wantErr: favorites.ErrAlreadyExists},
		{name: "invalid id", raw: "x", wantErr: favorites.ErrInvalidPlayerID},
		{name: "unknown user", raw: int64(5), repoErr: repository.ErrUserNotFound, callsRepo: true, wantErr: repository.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.callsRepo {
				id, _ := favorites.ParsePlayerID(tt.raw)
				repo.On("AddFavorite", mock.Anything, int64(7), id).Return(tt.repoErr).Once()
			}
			svc := favorites.NewService(repo, new(PlayersMock), newNoopLogger())

			id, err := svc.Add(context.Background(), 7, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Remove(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RemoveFavorite", mock.Anything, int64(7), int64(592450)).Return(1, nil).Once()
	repo.On("RemoveFavorite", mock.Anything, int64(7), int64(1)).Return(0, nil).Once()
	svc := favorites.NewService(repo, new(PlayersMock), newNoopLogger())

	assert.NoError(t, svc.Remove(context.Background(), 7, 592450))
	assert.NoError(t, svc.Remove(context.Background(), 7, 1))
	assert.ErrorIs(t, svc.Remove(context.Background(), 7, 0), favorites.ErrInvalidPlayerID)
	repo.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListFavorites", mock.Anything, int64(7)).Return([]int64{3, 2, 1}, nil).Once()
	repo.On("ListFavorites", mock.Anything, int64(8)).Return(nil, errors.New("db down")).Once()
	svc := favorites.NewService(repo, new(PlayersMock), newNoopLogger())

	ids, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, ids)

	_, err = svc.List(context.Background(), 8)
	assert.Error(t, err)
}

func TestService_EnrichedSkipsFailures(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListFavorites", mock.Anything, int64(7)).Return([]int64{30, 20, 10}, nil).Once()

	players := new(PlayersMock)
	players.On("FetchPlayer", mock.Anything, int64(30)).Return(&models.Player{ID: 30, FullName: "C"}, nil).Once()
	players.On("FetchPlayer", mock.Anything, int64(20)).Return(nil, mlbapi.ErrPlayerNotFound).Once()
	players.On("FetchPlayer", mock.Anything, int64(10)).Return(&models.Player{ID: 10, FullName: "A"}, nil).Once()

	svc := favorites.NewService(repo, players, newNoopLogger())
	got, err := svc.Enriched(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(30), got[0].ID)
	assert.Equal(t, int64(10), got[1].ID)
	players.AssertExpectations(t)
}

func TestService_EnrichedEmpty(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListFavorites", mock.Anything, int64(7)).Return([]int64{}, nil).Once()

	svc := favorites.NewService(repo, new(PlayersMock), newNoopLogger())
	got, err := svc.Enriched(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_Images(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListFavorites", mock.Anything, int64(7)).Return([]int64{592450, 660271}, nil).Once()

	svc := favorites.NewService(repo, new(PlayersMock), newNoopLogger())
	got, err := svc.Images(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{
		592450: "http://img/592450.jpg",
		660271: "http://img/660271.jpg",
	}, got)
}

func TestService_Teams(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListFavorites", mock.Anything, int64(7)).Return([]int64{592450, 1, 2}, nil).Once()

	players := new(PlayersMock)
	players.On("FindTeamForPlayer", mock.Anything, int64(592450)).
		Return(&models.Team{ID: 147, Name: "New York Yankees"}, nil).Once()
	players.On("FindTeamForPlayer", mock.Anything, int64(1)).
		Return(nil, mlbapi.ErrTeamNotFound).Once()
	players.On("FindTeamForPlayer", mock.Anything, int64(2)).
		Return(nil, mlbapi.ErrUpstream).Once()

	svc := favorites.NewService(repo, players, newNoopLogger())
	got, err := svc.Teams(context.Background(), 7)
	require.NoError(t, err)

	require.NotNil(t, got[592450].TeamID)
	assert.Equal(t, int64(147), *got[592450].TeamID)
	assert.Equal(t, "New York Yankees", got[592450].TeamName)
	assert.Equal(t, models.TeamResult{TeamName: models.TeamNotFound}, got[1])
	assert.Equal(t, models.TeamResult{TeamName: models.TeamNotFound}, got[2])
}

func TestService_ViewsReadThroughList(t *testing.T) {
	dbErr := errors.New("db down")

	tests := []struct {
		name string
		call func(svc *favorites.Service) error
		op   string
	}{
		{name: "enriched", op: "favorites.Enriched: favorites.List", call: func(svc *favorites.Service) error {
			_, err := svc.Enriched(context.Background(), 7)
			return err
		}},
		{name: "images", op: "favorites.Images: favorites.List", call: func(svc *favorites.Service) error {
			_, err := svc.Images(context.Background(), 7)
			return err
		}},
		{name: "teams", op: "favorites.Teams: favorites.List", call: func(svc *favorites.Service) error {
			_, err := svc.Teams(context.Background(), 7)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ListFavorites", mock.Anything, int64(7)).Return(nil, dbErr).Once()
			svc := favorites.NewService(repo, new(PlayersMock), newNoopLogger())

			err := tt.call(svc)
			require.ErrorIs(t, err, dbErr)
			assert.Contains(t, err.Error(), tt.op)
			repo.AssertExpectations(t)
		})
	}
}
