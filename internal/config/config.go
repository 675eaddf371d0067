// Package config предоставляет структуры и функцию для парсинга и загрузки конфига фронтенд-сервиса
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	Backend         `yaml:"backend"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	Session         `yaml:"session"`
	RabbitMQ        `yaml:"rabbitmq"`
}

// Backend структура для настройки доступа к REST API бэкенда
type Backend struct {
	BaseURL        string        `yaml:"base_url" env:"BACKEND_URL" env-required:"true"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"BACKEND_TIMEOUT" env-default:"10s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"10"`
	RateBurst   int           `yaml:"rate_burst" env-default:"20"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Session структура для настроек пользовательской сессии и подписи cookie
type Session struct {
	CookieName   string        `yaml:"cookie_name" env-default:"denormies_session"`
	SecretKey    string        `yaml:"secret_key" env:"SESSION_SECRET" env-required:"true"`
	TTL          time.Duration `yaml:"ttl" env-default:"168h"`
	ViewTTL      time.Duration `yaml:"view_ttl" env-default:"30m"`
	MaxViews     int           `yaml:"max_views" env-default:"10000"`
	SecureCookie bool          `yaml:"secure_cookie"`
}

// RabbitMQ структура для публикации событий активности; пустой URL отключает публикацию
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"activity"`
	Retries  int    `yaml:"retries" env-default:"3"`
}

// Load читает конфиг из файла по пути path, переменные окружения перекрывают значения файла.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH (в том числе из .env)
func MustLoad() *Config {
	// .env необязателен
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Backend:\n"+
			"  BaseURL: %s\n"+
			"  RequestTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  CookieName: %s\n"+
			"  TTL: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n",
		c.Env,
		c.BaseURL,
		c.RequestTimeout,
		c.AddressRedis,
		c.User,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.CookieName,
		c.TTL,
		c.URL != "",
	)
}
