// Package auth содержит бизнес-логику учётных записей: регистрацию,
// вход, смену пароля и проверку сессионных токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/player-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/player-tracker/internal/lib/password"
	"github.com/magabrotheeeer/player-tracker/internal/models"
	"github.com/magabrotheeeer/player-tracker/internal/storage/repository"
)

var (
	// ErrValidation обязательное поле отсутствует или пустое.
	ErrValidation = errors.New("missing required fields")
	// ErrDuplicateCredential имя пользователя или email уже заняты.
	ErrDuplicateCredential = errors.New("username or email already exists")
	// ErrInvalidCredentials неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAuthenticationFailure текущий пароль при смене указан неверно.
	ErrAuthenticationFailure = errors.New("current password is incorrect")
)

// UserRepository описывает хранилище учётных записей.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, rehash func(currentHash string) (string, error)) error
}

// AuthService отвечает за учётные записи и выпуск токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Signup создаёт пользователя и сразу выдаёт ему токен.
// Пароль хранится только в виде bcrypt-хэша.
func (s *AuthService) Signup(ctx context.Context, username, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Signup"

	if blank(username) || blank(email) || rawPassword == "" {
		return nil, "", fmt.Errorf("%s: %w", op, ErrValidation)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrDuplicateCredential)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// Login проверяет email и пароль и выдаёт новый токен.
// Для неизвестного email и неверного пароля возвращается одна и та же ошибка.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	if blank(email) || rawPassword == "" {
		return nil, "", fmt.Errorf("%s: %w", op, ErrValidation)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		_ = password.CompareDummy(rawPassword)
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// ChangePassword заменяет пароль, если текущий указан верно.
// Проверка и запись выполняются в одной транзакции хранилища.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	const op = "auth.ChangePassword"

	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%s: %w", op, ErrValidation)
	}

	err := s.users.UpdatePassword(ctx, userID, func(currentHash string) (string, error) {
		if err := password.CompareHash(currentHash, currentPassword); err != nil {
			if errors.Is(err, password.ErrMismatch) {
				return "", ErrAuthenticationFailure
			}
			return "", err
		}
		return password.GetHash(newPassword)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUsername возвращает имя пользователя по id из токена.
func (s *AuthService) GetUsername(ctx context.Context, userID int64) (string, error) {
	const op = "auth.GetUsername"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return user.Username, nil
}

// VerifyToken проверяет токен и возвращает id пользователя.
func (s *AuthService) VerifyToken(token string) (int64, error) {
	const op = "auth.VerifyToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return claims.UserID, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
