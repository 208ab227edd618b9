package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/player-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/player-tracker/internal/lib/password"
	"github.com/magabrotheeeer/player-tracker/internal/models"
	"github.com/magabrotheeeer/player-tracker/internal/services/auth"
	"github.com/magabrotheeeer/player-tracker/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
	NewHash string
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// UpdatePassword вызывает rehash с хэшем, переданным в Return, и сохраняет результат в NewHash.
func (m *UserRepoMock) UpdatePassword(ctx context.Context, userID int64, rehash func(string) (string, error)) error {
	args := m.Called(ctx, userID)
	if err := args.Error(1); err != nil {
		return err
	}
	newHash, err := rehash(args.String(0))
	if err != nil {
		return err
	}
	m.NewHash = newHash
	return nil
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func mustHash(t *testing.T, p string) string {
	t.Helper()
	h, err := password.GetHash(p)
	require.NoError(t, err)
	return h
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful signup",
			username: "judge99",
			email:    "aaron@example.com",
			password: "allrise",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Username == "judge99" &&
						u.Email == "aaron@example.com" &&
						u.PasswordHash != "" &&
						u.PasswordHash != "allrise" &&
						password.CompareHash(u.PasswordHash, "allrise") == nil
				})).Return(&models.User{ID: 7, Username: "judge99", Email: "aaron@example.com"}, nil).Once()
				j.On("GenerateToken", int64(7)).Return("token-7", nil).Once()
			},
			wantToken: "token-7",
		},
		{
			name:     "missing username",
			email:    "aaron@example.com",
			password: "allrise",
			wantErr:  auth.ErrValidation,
		},
		{
			name:     "whitespace email",
			username: "judge99",
			email:    "   ",
			password: "allrise",
			wantErr:  auth.ErrValidation,
		},
		{
			name:     "missing password",
			username: "judge99",
			email:    "aaron@example.com",
			wantErr:  auth.ErrValidation,
		},
		{
			name:     "duplicate credential",
			username: "judge99",
			email:    "aaron@example.com",
			password: "allrise",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(nil, repository.ErrUserExists).Once()
			},
			wantErr: auth.ErrDuplicateCredential,
		},
		{
			name:     "storage failure",
			username: "judge99",
			email:    "aaron@example.com",
			password: "allrise",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			if tt.setupMocks != nil {
				tt.setupMocks(repo, maker)
			}
			svc := auth.NewAuthService(repo, maker)

			user, token, err := svc.Signup(context.Background(), tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, int64(7), user.ID)
			}
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup_DuplicateIsTyped(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil, repository.ErrUserExists).Once()

	svc := auth.NewAuthService(repo, new(JwtMakerMock))
	_, _, err := svc.Signup(context.Background(), "u", "e@x", "p")
	assert.ErrorIs(t, err, auth.ErrDuplicateCredential)
}

func TestAuthService_Login(t *testing.T) {
	hash := mustHash(t, "allrise")
	stored := &models.User{ID: 7, Username: "judge99", Email: "aaron@example.com", PasswordHash: hash}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:     "valid credentials",
			email:    "aaron@example.com",
			password: "allrise",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "aaron@example.com").Return(stored, nil).Once()
				j.On("GenerateToken", int64(7)).Return("token-7", nil).Once()
			},
		},
		{
			name:     "wrong password",
			email:    "aaron@example.com",
			password: "wrong",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "aaron@example.com").Return(stored, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "allrise",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:    "missing password",
			email:   "aaron@example.com",
			wantErr: auth.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(JwtMakerMock)
			if tt.setupMocks != nil {
				tt.setupMocks(repo, maker)
			}
			svc := auth.NewAuthService(repo, maker)

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "token-7", token)
				assert.Equal(t, "judge99", user.Username)
			}
			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUserByEmail", mock.Anything, "a@x").
		Return(&models.User{ID: 1, PasswordHash: mustHash(t, "right")}, nil).Once()
	repo.On("GetUserByEmail", mock.Anything, "b@x").
		Return(nil, repository.ErrUserNotFound).Once()

	svc := auth.NewAuthService(repo, new(JwtMakerMock))
	_, _, errWrong := svc.Login(context.Background(), "a@x", "wrong")
	_, _, errUnknown := svc.Login(context.Background(), "b@x", "wrong")

	require.ErrorIs(t, errWrong, auth.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("success rehashes new password", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("UpdatePassword", mock.Anything, int64(7)).Return(mustHash(t, "old"), nil).Once()

		svc := auth.NewAuthService(repo, new(JwtMakerMock))
		require.NoError(t, svc.ChangePassword(context.Background(), 7, "old", "new"))

		assert.NoError(t, password.CompareHash(repo.NewHash, "new"))
		assert.Error(t, password.CompareHash(repo.NewHash, "old"))
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("UpdatePassword", mock.Anything, int64(7)).Return(mustHash(t, "old"), nil).Once()

		svc := auth.NewAuthService(repo, new(JwtMakerMock))
		err := svc.ChangePassword(context.Background(), 7, "guess", "new")
		assert.ErrorIs(t, err, auth.ErrAuthenticationFailure)
		assert.Empty(t, repo.NewHash)
	})

	t.Run("empty new password", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := auth.NewAuthService(repo, new(JwtMakerMock))
		err := svc.ChangePassword(context.Background(), 7, "old", "")
		assert.ErrorIs(t, err, auth.ErrValidation)
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("UpdatePassword", mock.Anything, int64(42)).Return("", repository.ErrUserNotFound).Once()

		svc := auth.NewAuthService(repo, new(JwtMakerMock))
		err := svc.ChangePassword(context.Background(), 42, "old", "new")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestAuthService_GetUsername(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUserByID", mock.Anything, int64(7)).Return(&models.User{ID: 7, Username: "judge99"}, nil).Once()
	repo.On("GetUserByID", mock.Anything, int64(8)).Return(nil, repository.ErrUserNotFound).Once()

	svc := auth.NewAuthService(repo, new(JwtMakerMock))

	name, err := svc.GetUsername(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "judge99", name)

	_, err = svc.GetUsername(context.Background(), 8)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestAuthService_VerifyToken(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	maker := customjwt.NewJWTMaker("secret", time.Hour, customjwt.WithClock(clock))
	svc := auth.NewAuthService(new(UserRepoMock), maker)

	token, err := maker.GenerateToken(7)
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	_, err = svc.VerifyToken("garbage")
	assert.ErrorIs(t, err, customjwt.ErrTokenMalformed)

	now = now.Add(2 * time.Hour)
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, customjwt.ErrTokenExpired)
}
