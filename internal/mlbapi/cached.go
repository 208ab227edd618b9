package mlbapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/player-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/player-tracker/internal/models"
)

// Cache JSON-хранилище с временем жизни ключей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// CachedRosters кеширует список команд и составы. Ключ состава содержит
// сезон, поэтому с началом нового сезона старые записи не читаются.
// Ошибки кеша не прерывают запрос: данные берутся у провайдера.
type CachedRosters struct {
	next    RosterSource
	cache   Cache
	ttl     time.Duration
	sportID int
	log     *slog.Logger
}

// NewCachedRosters оборачивает источник составов кешем.
func NewCachedRosters(next RosterSource, cache Cache, ttl time.Duration, sportID int, log *slog.Logger) *CachedRosters {
	return &CachedRosters{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		sportID: sportID,
		log:     log,
	}
}

func teamsKey(sportID int) string {
	return fmt.Sprintf("teams:%d", sportID)
}

func rosterKey(season int, teamID int64) string {
	return fmt.Sprintf("roster:%d:%d", season, teamID)
}

// Teams возвращает команды из кеша или у провайдера.
func (c *CachedRosters) Teams(ctx context.Context) ([]models.Team, error) {
	key := teamsKey(c.sportID)

	var teams []models.Team
	if c.lookup(ctx, key, &teams) {
		return teams, nil
	}

	teams, err := c.next.Teams(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, teams)
	return teams, nil
}

// Roster возвращает состав из кеша или у провайдера.
func (c *CachedRosters) Roster(ctx context.Context, teamID int64, season int) ([]int64, error) {
	key := rosterKey(season, teamID)

	var roster []int64
	if c.lookup(ctx, key, &roster) {
		return roster, nil
	}

	roster, err := c.next.Roster(ctx, teamID, season)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, roster)
	return roster, nil
}

func (c *CachedRosters) lookup(ctx context.Context, key string, dst any) bool {
	found, err := c.cache.Get(ctx, key, dst)
	if err != nil {
		c.log.Warn("roster cache read failed", slog.String("key", key), sl.Err(err))
		rosterCacheLookups.WithLabelValues("error").Inc()
		return false
	}
	if !found {
		rosterCacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	rosterCacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (c *CachedRosters) store(ctx context.Context, key string, value any) {
	if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
		c.log.Warn("roster cache write failed", slog.String("key", key), sl.Err(err))
	}
}
