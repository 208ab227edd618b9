// Package config предоставляет структуры и функции для загрузки конфигурации сервиса.
//
// Источники применяются по порядку: необязательный .env файл, необязательный
// YAML-файл из CONFIG_PATH, затем переменные окружения.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL" env-required:"true" validate:"required"`
	Database                `yaml:"database"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	MLBAPI                  `yaml:"mlb_api"`
	RedisConnection         `yaml:"redis_connection"`
	RateLimit               `yaml:"rate_limit"`
	CORS                    `yaml:"cors"`
}

// Database настройки пула соединений
type Database struct {
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"localhost:5000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"60s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"120s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true" validate:"required"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"1h"`
}

// MLBAPI настройки клиента MLB Stats API
type MLBAPI struct {
	BaseURL     string        `yaml:"base_url" env:"MLB_API_BASE_URL" env-default:"https://statsapi.mlb.com/api/v1"`
	Timeout     time.Duration `yaml:"timeout" env:"MLB_API_TIMEOUT" env-default:"10s"`
	SportID     int           `yaml:"sport_id" env:"MLB_API_SPORT_ID" env-default:"1"`
	HeadshotURL string        `yaml:"headshot_url" env:"MLB_HEADSHOT_URL" env-default:"https://securea.mlb.com/mlb/images/players/head_shot"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш составов команд.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
	RosterTTL    time.Duration `yaml:"roster_ttl" env:"ROSTER_CACHE_TTL" env-default:"6h"`
}

// RateLimit ограничение частоты запросов к /user/signup и /user/login
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"AUTH_RATE_LIMIT_RPS" env-default:"5"`
	Burst int     `yaml:"burst" env:"AUTH_RATE_LIMIT_BURST" env-default:"10"`
}

// CORS настройки для браузерного клиента
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

// Load читает конфигурацию и возвращает ошибку, если обязательные параметры
// отсутствуют или заданы пустой строкой.
func Load() (*Config, error) {
	const op = "config.Load"

	// .env необязателен
	_ = godotenv.Load()

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// env-required проверяет только наличие переменной, пустое значение
	// отсекается валидатором.
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс, если он некорректен.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// CacheEnabled сообщает, настроено ли подключение к redis.
func (c *Config) CacheEnabled() bool {
	return c.AddressRedis != ""
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"MLBAPI:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"Redis:\n"+
			"  Addr: %s\n"+
			"  RosterTTL: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.BaseURL,
		c.Timeout,
		c.AddressRedis,
		c.RosterTTL,
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
