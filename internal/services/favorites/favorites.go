// Package favorites реализует список избранных игроков пользователя
// и его обогащение данными MLB Stats API.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/player-tracker/internal/models"
	"github.com/magabrotheeeer/player-tracker/internal/storage/repository"
)

var (
	// ErrInvalidPlayerID id игрока не является положительным целым числом.
	ErrInvalidPlayerID = errors.New("invalid player id")
	// ErrAlreadyExists игрок уже в избранном.
	ErrAlreadyExists = errors.New("player already in favorites")
)

// Repository хранилище избранного.
type Repository interface {
	AddFavorite(ctx context.Context, userID, playerID int64) error
	RemoveFavorite(ctx context.Context, userID, playerID int64) (int, error)
	ListFavorites(ctx context.Context, userID int64) ([]int64, error)
}

// PlayerLookup источник данных об игроках.
type PlayerLookup interface {
	FetchPlayer(ctx context.Context, playerID int64) (*models.Player, error)
	FindTeamForPlayer(ctx context.Context, playerID int64) (*models.Team, error)
	HeadshotURL(playerID int64) string
}

// lookupConcurrency максимум одновременных запросов к провайдеру на один вызов.
const lookupConcurrency = 4

// Service логика избранного.
type Service struct {
	repo    Repository
	players PlayerLookup
	log     *slog.Logger
}

// NewService создаёт сервис избранного.
func NewService(repo Repository, players PlayerLookup, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		players: players,
		log:     log,
	}
}

// ParsePlayerID приводит id игрока из тела запроса к int64.
// Допускаются JSON-число и строка из цифр; значение должно быть больше нуля.
func ParsePlayerID(raw any) (int64, error) {
	var id int64
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			// 592450.0 и 5.9245e5 допустимы, если значение целое.
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidPlayerID, v.String())
			}
			if n, err = integralID(f); err != nil {
				return 0, err
			}
		}
		id = n
	case float64:
		n, err := integralID(v)
		if err != nil {
			return 0, err
		}
		id = n
	case int:
		id = int64(v)
	case int64:
		id = v
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPlayerID, v)
		}
		id = n
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidPlayerID, raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPlayerID, id)
	}
	return id, nil
}

func integralID(v float64) (int64, error) {
	if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPlayerID, v)
	}
	return int64(v), nil
}

// List возвращает id избранных игроков, последние добавленные первыми.
func (s *Service) List(ctx context.Context, userID int64) ([]int64, error) {
	const op = "favorites.List"

	ids, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

// Add добавляет игрока в избранное. Повторное добавление возвращает ErrAlreadyExists.
func (s *Service) Add(ctx context.Context, userID int64, rawPlayerID any) (int64, error) {
	const op = "favorites.Add"

	playerID, err := ParsePlayerID(rawPlayerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.AddFavorite(ctx, userID, playerID); err != nil {
		if errors.Is(err, repository.ErrFavoriteExists) {
			return 0, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return playerID, nil
}

// Remove удаляет игрока из избранного. Отсутствие записи ошибкой не считается.
func (s *Service) Remove(ctx context.Context, userID, playerID int64) error {
	const op = "favorites.Remove"

	if playerID <= 0 {
		return fmt.Errorf("%s: %w: %d", op, ErrInvalidPlayerID, playerID)
	}
	if _, err := s.repo.RemoveFavorite(ctx, userID, playerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Enriched возвращает карточки избранных игроков в порядке списка.
// Игроки, которых не удалось получить у провайдера, пропускаются.
func (s *Service) Enriched(ctx context.Context, userID int64) ([]models.Player, error) {
	const op = "favorites.Enriched"

	ids, err := s.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fetched := make([]*models.Player, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			player, err := s.players.FetchPlayer(gctx, id)
			if err != nil {
				s.log.Warn("skipping favorite player",
					slog.String("op", op), sl.UserID(userID), sl.PlayerID(id), sl.Err(err))
				return nil
			}
			fetched[i] = player
			return nil
		})
	}
	_ = g.Wait()

	players := make([]models.Player, 0, len(ids))
	for _, p := range fetched {
		if p != nil {
			players = append(players, *p)
		}
	}
	return players, nil
}

// Images возвращает ссылки на фотографии избранных игроков.
func (s *Service) Images(ctx context.Context, userID int64) (map[int64]string, error) {
	const op = "favorites.Images"

	ids, err := s.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	images := make(map[int64]string, len(ids))
	for _, id := range ids {
		images[id] = s.players.HeadshotURL(id)
	}
	return images, nil
}

// Teams возвращает команду каждого избранного игрока в текущем сезоне.
// Если команда не найдена или провайдер недоступен, возвращается
// заглушка models.TeamNotFound без id.
func (s *Service) Teams(ctx context.Context, userID int64) (map[int64]models.TeamResult, error) {
	const op = "favorites.Teams"

	ids, err := s.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := make([]models.TeamResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			team, err := s.players.FindTeamForPlayer(gctx, id)
			if err != nil {
				s.log.Debug("team lookup failed",
					slog.String("op", op), sl.PlayerID(id), sl.Err(err))
				results[i] = models.TeamResult{TeamName: models.TeamNotFound}
				return nil
			}
			teamID := team.ID
			results[i] = models.TeamResult{TeamName: team.Name, TeamID: &teamID}
			return nil
		})
	}
	_ = g.Wait()

	teams := make(map[int64]models.TeamResult, len(ids))
	for i, id := range ids {
		teams[id] = results[i]
	}
	return teams, nil
}
