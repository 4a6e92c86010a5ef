// Package config загружает конфигурацию сервиса из TOML файла.
// Секреты можно переопределить переменными окружения (в т.ч. из .env).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Переменные окружения, переопределяющие значения из файла
const (
	EnvDBPassword    = "PARKING_DB_PASSWORD"
	EnvRedisPassword = "PARKING_REDIS_PASSWORD"
	EnvRabbitMQURL   = "PARKING_RABBITMQ_URL"
)

// ErrInvalidConfig некорректная конфигурация
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Jobs     JobsConfig     `toml:"jobs"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig кэш сводок доступности; Enabled=false отключает кэш
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// RabbitMQConfig публикация доменных событий; Enabled=false отключает публикацию
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// JobsConfig фоновое обновление метрик доступности
type JobsConfig struct {
	OccupancyEnabled  bool   `toml:"occupancy_enabled"`
	OccupancySchedule string `toml:"occupancy_schedule"` // cron выражение
	HorizonDays       int    `toml:"horizon_days"`
}

type BookingConfig struct {
	MaxNights int `toml:"max_nights"`
	MaxSpots  int `toml:"max_spots"`
}

// Limits ограничения брони в доменном виде
func (c BookingConfig) Limits() domain.BookingLimits {
	return domain.BookingLimits{MaxNights: c.MaxNights, MaxSpots: c.MaxSpots}
}

// Load читает .env (если есть), затем TOML файл, применяет значения по умолчанию
// и переопределения из окружения, валидирует результат
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "parking-service",
		},
		Redis:    RedisConfig{Addr: "localhost:6379", TTL: 60},
		RabbitMQ: RabbitMQConfig{Exchange: "parking.events"},
		Jobs: JobsConfig{
			OccupancySchedule: "0 3 * * *",
			HorizonDays:       30,
		},
		Booking: BookingConfig{
			MaxNights: domain.DefaultMaxNights,
			MaxSpots:  domain.DefaultMaxSpots,
		},
	}
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		cfg.Redis.Password = v
	}
	if v, ok := os.LookupEnv(EnvRabbitMQURL); ok && v != "" {
		cfg.RabbitMQ.URL = v
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database.host, database.dbname and database.user are required")
	}
	if c.Redis.Enabled && (c.Redis.Addr == "" || c.Redis.TTL <= 0) {
		problems = append(problems, "redis.addr and positive redis.ttl are required when redis is enabled")
	}
	if c.RabbitMQ.Enabled && (c.RabbitMQ.URL == "" || c.RabbitMQ.Exchange == "") {
		problems = append(problems, "rabbitmq.url and rabbitmq.exchange are required when rabbitmq is enabled")
	}
	if c.Jobs.OccupancyEnabled && (c.Jobs.OccupancySchedule == "" || c.Jobs.HorizonDays <= 0) {
		problems = append(problems, "jobs.occupancy_schedule and positive jobs.horizon_days are required")
	}
	if c.Booking.MaxNights <= 0 || c.Booking.MaxSpots <= 0 {
		problems = append(problems, "booking.max_nights and booking.max_spots must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
