package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/player-tracker/internal/migrations"
	"github.com/magabrotheeeer/player-tracker/internal/testutil"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, passwordHash string) int64 {
	t.Helper()
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3) RETURNING id`,
		username, email, passwordHash).Scan(&id)
	require.NoError(t, err)
	return id
}

// CountFavorites возвращает количество избранных игроков пользователя
func (f *TestDataFactory) CountFavorites(t *testing.T, userID int64) int {
	t.Helper()
	var count int
	err := f.storage.DB.QueryRow("SELECT COUNT(*) FROM favorite_players WHERE user_id = $1", userID).Scan(&count)
	require.NoError(t, err)
	return count
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL и применяет миграции
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	db := testutil.PostgresDB(t)
	require.NoError(t, migrations.Run(db))
	return NewWithDB(db)
}
