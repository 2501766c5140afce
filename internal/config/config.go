package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ParkingService/internal/scheduler"
)

// MinSignatureKeyLength минимальная длина ключа подписи QR-кодов в байтах
const MinSignatureKeyLength = 32

// Переменные окружения, переопределяющие секреты из файла
const (
	EnvSignatureKey = "SIGNATURE_KEY"
	EnvJWTSecret    = "JWT_SECRET"
	EnvDBPassword   = "DB_PASSWORD"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	QR            QRConfig            `toml:"qr"`
	Scheduler     SchedulerConfig     `toml:"scheduler"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// ServerConfig настройки HTTP-сервера; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type QRConfig struct {
	SignatureKey string `toml:"signature_key"`
}

// SchedulerConfig расписание прохода по просроченным бронированиям
type SchedulerConfig struct {
	Enabled            bool   `toml:"enabled"`
	Spec               string `toml:"spec"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	UnpaidGraceMinutes int    `toml:"unpaid_grace_minutes"`
}

func (c SchedulerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c SchedulerConfig) UnpaidGrace() time.Duration {
	return time.Duration(c.UnpaidGraceMinutes) * time.Minute
}

type NotificationsConfig struct {
	ClientBuffer int `toml:"client_buffer"`
}

// Default значения, применяемые до чтения файла
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "parking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-parkingservice",
		},
		Scheduler: SchedulerConfig{
			Enabled:            true,
			Spec:               "@every 1m",
			TimeoutSeconds:     55,
			UnpaidGraceMinutes: 20,
		},
		Notifications: NotificationsConfig{
			ClientBuffer: 64,
		},
	}
}

// Load читает конфигурацию из TOML-файла, затем применяет .env и переменные окружения
// Отсутствующий .env не является ошибкой
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSignatureKey); v != "" {
		c.QR.SignatureKey = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (or %s) is required", ErrInvalidConfig, EnvJWTSecret)
	}
	if c.QR.SignatureKey == "" {
		return fmt.Errorf("%w: qr.signature_key (or %s) is required", ErrInvalidConfig, EnvSignatureKey)
	}
	if len(c.QR.SignatureKey) < MinSignatureKeyLength {
		return fmt.Errorf("%w: qr.signature_key must be at least %d bytes", ErrInvalidConfig, MinSignatureKeyLength)
	}
	if c.Scheduler.Enabled {
		if err := scheduler.ValidateSpec(c.Scheduler.Spec); err != nil {
			return fmt.Errorf("%w: scheduler.spec: %v", ErrInvalidConfig, err)
		}
	}

	return nil
}
