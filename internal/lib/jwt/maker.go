// Package jwt реализует выпуск и проверку сессионных JWT токенов.
//
// Токен подписывается HS256 общим для процесса секретом и содержит
// идентификатор пользователя и абсолютное время истечения. Токены не
// хранятся на сервере и не могут быть отозваны до истечения срока.
package jwt

import (
	"errors"
	"time"
)

// DefaultTokenTTL время жизни токена, если в конфиге не задано иное.
const DefaultTokenTTL = 3600 * time.Second

var (
	// ErrTokenExpired возвращается, если срок действия токена истёк.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed возвращается для токенов с неверной подписью,
	// алгоритмом или структурой.
	ErrTokenMalformed = errors.New("invalid token")
	// ErrEmptySecret возвращается, если maker создан без секретного ключа.
	ErrEmptySecret = errors.New("jwt secret key is empty")
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	GenerateToken(userID int64) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// Option настраивает MakerImpl.
type Option func(*MakerImpl)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(m *MakerImpl) {
		m.now = now
	}
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
// Нулевой TTL заменяется на DefaultTokenTTL. С пустым ключом maker
// не выпускает и не принимает токены.
func NewJWTMaker(secretKey string, ttl time.Duration, opts ...Option) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	m := &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL возвращает время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
