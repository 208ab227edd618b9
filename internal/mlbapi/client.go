// Package mlbapi реализует клиент MLB Stats API: карточки игроков, список
// команд и составы на текущий сезон.
package mlbapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/player-tracker/internal/config"
	"github.com/magabrotheeeer/player-tracker/internal/models"
)

var (
	// ErrPlayerNotFound провайдер не знает игрока с таким id.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrTeamNotFound игрок не найден ни в одном составе текущего сезона.
	ErrTeamNotFound = errors.New("team not found")
	// ErrUpstream сетевая ошибка, таймаут или неразбираемый ответ провайдера.
	ErrUpstream = errors.New("upstream error")
)

const (
	defaultBaseURL     = "https://statsapi.mlb.com/api/v1"
	defaultHeadshotURL = "https://securea.mlb.com/mlb/images/players/head_shot"
	defaultTimeout     = 10 * time.Second
	defaultSportID     = 1
)

// RosterSource источник списка команд и составов.
type RosterSource interface {
	Teams(ctx context.Context) ([]models.Team, error)
	Roster(ctx context.Context, teamID int64, season int) ([]int64, error)
}

// Client клиент MLB Stats API.
type Client struct {
	baseURL     string
	headshotURL string
	sportID     int
	httpClient  *http.Client
	now         func() time.Time
	rosters     RosterSource
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock задаёт источник времени, по которому определяется текущий сезон.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithRosterSource подменяет источник составов, например кешем.
func WithRosterSource(src RosterSource) Option {
	return func(c *Client) {
		c.rosters = src
	}
}

// NewClient создаёт клиент по настройкам из конфига. Пустые поля
// заменяются значениями по умолчанию.
func NewClient(cfg config.MLBAPI, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		headshotURL: strings.TrimRight(cfg.HeadshotURL, "/"),
		sportID:     cfg.SportID,
		now:         time.Now,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.headshotURL == "" {
		c.headshotURL = defaultHeadshotURL
	}
	if c.sportID <= 0 {
		c.sportID = defaultSportID
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.httpClient = &http.Client{Timeout: timeout}

	for _, opt := range opts {
		opt(c)
	}
	if c.rosters == nil {
		c.rosters = c
	}
	return c
}

// SportID идентификатор лиги, для которой запрашиваются команды.
func (c *Client) SportID() int {
	return c.sportID
}

// Season текущий сезон по часам клиента.
func (c *Client) Season() int {
	return c.now().Year()
}

// HeadshotURL возвращает адрес фотографии игрока. Сетевых запросов не делает.
func (c *Client) HeadshotURL(playerID int64) string {
	return fmt.Sprintf("%s/%d.jpg", c.headshotURL, playerID)
}

// FetchPlayer запрашивает карточку игрока.
func (c *Client) FetchPlayer(ctx context.Context, playerID int64) (*models.Player, error) {
	const op = "mlbapi.FetchPlayer"

	var resp peopleResponse
	status, err := c.get(ctx, "people", "/people/"+strconv.FormatInt(playerID, 10), &resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if status != http.StatusOK || len(resp.People) == 0 {
		upstreamRequests.WithLabelValues("people", outcomeNotFound).Inc()
		return nil, fmt.Errorf("%s: id %d: %w", op, playerID, ErrPlayerNotFound)
	}
	upstreamRequests.WithLabelValues("people", outcomeOK).Inc()

	player := resp.People[0].toModel()
	return &player, nil
}

// Teams возвращает команды лиги.
func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	const op = "mlbapi.Teams"

	var resp teamsResponse
	status, err := c.get(ctx, "teams", "/teams?sportId="+strconv.Itoa(c.sportID), &resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if status != http.StatusOK {
		upstreamRequests.WithLabelValues("teams", outcomeError).Inc()
		return nil, fmt.Errorf("%s: unexpected status %d: %w", op, status, ErrUpstream)
	}
	upstreamRequests.WithLabelValues("teams", outcomeOK).Inc()

	teams := make([]models.Team, 0, len(resp.Teams))
	for _, t := range resp.Teams {
		teams = append(teams, models.Team{ID: t.ID, Name: t.Name})
	}
	return teams, nil
}

// Roster возвращает id игроков в составе команды за сезон.
func (c *Client) Roster(ctx context.Context, teamID int64, season int) ([]int64, error) {
	const op = "mlbapi.Roster"

	var resp rosterResponse
	path := fmt.Sprintf("/teams/%d/roster?season=%d", teamID, season)
	status, err := c.get(ctx, "roster", path, &resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if status != http.StatusOK {
		upstreamRequests.WithLabelValues("roster", outcomeError).Inc()
		return nil, fmt.Errorf("%s: team %d: unexpected status %d: %w", op, teamID, status, ErrUpstream)
	}
	upstreamRequests.WithLabelValues("roster", outcomeOK).Inc()

	ids := make([]int64, 0, len(resp.Roster))
	for _, entry := range resp.Roster {
		ids = append(ids, entry.Person.ID)
	}
	return ids, nil
}

// FindTeamForPlayer ищет команду, в составе которой игрок числится в текущем сезоне.
// Команды просматриваются по порядку, возвращается первая найденная.
func (c *Client) FindTeamForPlayer(ctx context.Context, playerID int64) (*models.Team, error) {
	const op = "mlbapi.FindTeamForPlayer"

	teams, err := c.rosters.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	season := c.Season()
	for _, team := range teams {
		roster, err := c.rosters.Roster(ctx, team.ID, season)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, id := range roster {
			if id == playerID {
				found := team
				return &found, nil
			}
		}
	}
	return nil, fmt.Errorf("%s: player %d: %w", op, playerID, ErrTeamNotFound)
}

// get выполняет GET-запрос и декодирует тело 200-ответа в dst.
// Для прочих статусов тело не читается.
func (c *Client) get(ctx context.Context, endpoint, path string, dst any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	upstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, outcomeError).Inc()
		return 0, fmt.Errorf("%w: %s", ErrUpstream, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		upstreamRequests.WithLabelValues(endpoint, outcomeError).Inc()
		return resp.StatusCode, fmt.Errorf("%w: decode %s: %s", ErrUpstream, endpoint, err.Error())
	}
	return resp.StatusCode, nil
}
