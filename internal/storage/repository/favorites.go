package repository

import (
	"context"
	"fmt"
)

// AddFavorite добавляет игрока в избранное пользователя одним выражением.
//
// Уникальный индекс (user_id, player_id) гарантирует отсутствие дубликатов
// при параллельных вызовах: если строка уже есть, возвращается ErrFavoriteExists.
func (s *Storage) AddFavorite(ctx context.Context, userID, playerID int64) error {
	const op = "storage.AddFavorite"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO favorite_players (user_id, player_id)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id, player_id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, userID, playerID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrFavoriteExists)
	}
	return nil
}

// RemoveFavorite удаляет игрока из избранного и возвращает количество удалённых строк.
// Удаление отсутствующего игрока не является ошибкой.
func (s *Storage) RemoveFavorite(ctx context.Context, userID, playerID int64) (int, error) {
	const op = "storage.RemoveFavorite"

	query := `DELETE FROM favorite_players WHERE user_id = $1 AND player_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userID, playerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListFavorites возвращает ID избранных игроков, начиная с последнего добавленного.
func (s *Storage) ListFavorites(ctx context.Context, userID int64) ([]int64, error) {
	const op = "storage.ListFavorites"

	query := `SELECT player_id
			  FROM favorite_players
			  WHERE user_id = $1
			  ORDER BY added_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]int64, 0)
	for rows.Next() {
		var playerID int64
		if err := rows.Scan(&playerID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, playerID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
