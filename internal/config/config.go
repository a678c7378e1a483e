// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	RepositoryInMemory = "inmemory"
	RepositoryPostgres = "postgres"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Repository RepositoryConfig `yaml:"repository"`
	Simulation SimulationConfig `yaml:"simulation"`
	Worker     WorkerConfig     `yaml:"worker"`
	HTTP       HTTPConfig       `yaml:"http"`
}

type ServerConfig struct {
	Port            string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	Host            string        `yaml:"host" env:"SERVER_HOST" env-default:""`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url" env:"DATABASE_URL"`
	MaxConnections int32         `yaml:"max_connections" env:"DATABASE_MAX_CONNECTIONS" env-default:"10"`
	MinConnections int32         `yaml:"min_connections" env:"DATABASE_MIN_CONNECTIONS" env-default:"2"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"DATABASE_IDLE_TIMEOUT" env-default:"5m"`
	SkipSeed       bool          `yaml:"skip_seed" env:"DATABASE_SKIP_SEED"`
}

type LoggingConfig struct {
	Development bool `yaml:"development" env:"LOG_DEVELOPMENT"`
}

type RepositoryConfig struct {
	Type string `yaml:"type" env:"REPOSITORY_TYPE" env-default:"inmemory"` // "postgres" или "inmemory"
}

// SimulationConfig управляет искусственной задержкой сервисов.
// Нулевые значения в файле cleanenv заменяет на env-default, поэтому отключение - отдельным флагом
type SimulationConfig struct {
	DisableLatency bool    `yaml:"disable_latency" env:"DISABLE_LATENCY"`
	LatencyScale   float64 `yaml:"latency_scale" env:"LATENCY_SCALE" env-default:"1"`
}

func (s SimulationConfig) Scale() float64 {
	if s.DisableLatency {
		return 0
	}
	return s.LatencyScale
}

type WorkerConfig struct {
	Disabled bool          `yaml:"disabled" env:"WORKER_DISABLED"`
	Interval time.Duration `yaml:"interval" env:"WORKER_INTERVAL" env-default:"1m"`
}

type HTTPConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"30s"`
	RateLimit      int           `yaml:"rate_limit" env:"HTTP_RATE_LIMIT" env-default:"100"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// Load читает config.yml, а если файла нет - только переменные окружения
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("чтение переменных окружения: %w", err)
		}
		return &cfg, cfg.Validate()
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("чтение переменных окружения: %w", err)
		}
	}

	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Repository.Type {
	case RepositoryInMemory:
	case RepositoryPostgres:
		if c.Database.URL == "" {
			return errors.New("для repository.type=postgres нужен database.url")
		}
	default:
		return fmt.Errorf("неизвестный тип хранилища %q", c.Repository.Type)
	}

	if c.Simulation.LatencyScale < 0 {
		return errors.New("simulation.latency_scale не может быть отрицательным")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
