// Package config собирает конфигурацию сервиса из флагов, YAML-файла и переменных окружения.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aseptimu/link-shortener/internal/app/service"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// ConfigType хранит все настройки сервиса.
// Приоритет: значения по умолчанию < YAML-файл < флаги < окружение.
type ConfigType struct {
	ServerAddress   string        `yaml:"server_address" env:"SERVER_ADDRESS"`
	BaseAddress     string        `yaml:"base_url" env:"BASE_URL"`
	StoreBackend    string        `yaml:"store_backend" env:"STORE_BACKEND"`
	StoreHost       string        `yaml:"store_host" env:"STORE_HOST"`
	StorePort       int           `yaml:"store_port" env:"STORE_PORT"`
	StorePassword   string        `yaml:"store_password" env:"STORE_PASSWORD"`
	StoreDB         int           `yaml:"store_db" env:"STORE_DB"`
	StoreTimeout    time.Duration `yaml:"store_timeout" env:"STORE_TIMEOUT"`
	StoreMaxRetries int           `yaml:"store_max_retries" env:"STORE_MAX_RETRIES"`
	FileStoragePath string        `yaml:"file_storage_path" env:"FILE_STORAGE_PATH"`
	DSN             string        `yaml:"database_dsn" env:"DATABASE_DSN"`
	KeyLength       int           `yaml:"key_length" env:"KEY_LENGTH"`
	KeyAttempts     int           `yaml:"key_attempts" env:"KEY_ATTEMPTS"`
	CollisionPolicy string        `yaml:"collision_policy" env:"COLLISION_POLICY"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL"`
	EnableMetrics   bool          `yaml:"enable_metrics" env:"ENABLE_METRICS"`
	ConfigPath      string        `yaml:"-" env:"CONFIG"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() ConfigType {
	return ConfigType{
		ServerAddress:   "localhost:8080",
		BaseAddress:     "http://localhost:8080",
		StoreBackend:    BackendMemory,
		StoreHost:       "localhost",
		StorePort:       6379,
		StoreTimeout:    time.Second,
		StoreMaxRetries: 2,
		FileStoragePath: "storage.json",
		KeyLength:       6,
		KeyAttempts:     5,
		CollisionPolicy: "retry",
		LogLevel:        "info",
	}
}

// NewConfig читает конфигурацию из аргументов командной строки и окружения процесса.
func NewConfig() (*ConfigType, error) {
	return Parse(os.Args[1:], envMap(os.Environ()))
}

// Parse собирает конфигурацию из args и переменных environ.
func Parse(args []string, environ map[string]string) (*ConfigType, error) {
	def := Default()
	flags := def

	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fs.StringVar(&flags.ServerAddress, "a", def.ServerAddress, "HTTP server address")
	fs.StringVar(&flags.BaseAddress, "b", def.BaseAddress, "shorten URL base address")
	fs.StringVar(&flags.StoreBackend, "s", def.StoreBackend, "store backend: memory, redis, file or postgres")
	fs.StringVar(&flags.FileStoragePath, "f", def.FileStoragePath, "File storage path")
	fs.StringVar(&flags.DSN, "d", def.DSN, "Postgres DSN")
	fs.StringVar(&flags.LogLevel, "l", def.LogLevel, "log level")
	fs.StringVar(&flags.ConfigPath, "c", "", "YAML config file path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := def
	path := flags.ConfigPath
	if p, ok := environ["CONFIG"]; ok && p != "" {
		path = p
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerAddress = flags.ServerAddress
		case "b":
			cfg.BaseAddress = flags.BaseAddress
		case "s":
			cfg.StoreBackend = flags.StoreBackend
		case "f":
			cfg.FileStoragePath = flags.FileStoragePath
		case "d":
			cfg.DSN = flags.DSN
		case "l":
			cfg.LogLevel = flags.LogLevel
		}
	})
	cfg.ConfigPath = path

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StoreAddr возвращает адрес сетевого хранилища host:port.
func (c *ConfigType) StoreAddr() string {
	return fmt.Sprintf("%s:%d", c.StoreHost, c.StorePort)
}

func (c *ConfigType) validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendRedis, BackendFile, BackendPostgres:
	default:
		return fmt.Errorf("%w: unknown store backend %q", service.ErrInvalidConfig, c.StoreBackend)
	}
	if c.StoreBackend == BackendPostgres && c.DSN == "" {
		return fmt.Errorf("%w: store backend %q requires DATABASE_DSN", service.ErrInvalidConfig, c.StoreBackend)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("%w: store timeout must be positive, got %s", service.ErrInvalidConfig, c.StoreTimeout)
	}
	return nil
}

func loadFile(path string, cfg *ConfigType) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, _ := strings.Cut(kv, "=")
		m[k] = v
	}
	return m
}
