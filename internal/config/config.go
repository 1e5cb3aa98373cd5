package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StatsDriverRedis    = "redis"
	StatsDriverSQLite   = "sqlite"
	StatsDriverPostgres = "postgres"
	StatsDriverNone     = "none"
)

type Config struct {
	LogLevel          string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Game              Game     `yaml:"game"`
	Auth              Auth     `yaml:"auth"`
	Stats             Stats    `yaml:"stats"`
	Redis             Redis    `yaml:"redis"`
	SQLiteStoragePath string   `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./gameroom.db"`
	Postgres          Postgres `yaml:"postgres"`
}

type Game struct {
	ActionDelay  time.Duration `yaml:"action-delay" env:"GAME_ACTION_DELAY" env-default:"100ms"`
	RemovalDelay time.Duration `yaml:"removal-delay" env:"GAME_REMOVAL_DELAY" env-default:"5s"`
	// Seed of the card shuffler, zero seeds from the clock.
	Seed int64 `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

type Auth struct {
	JWTSecret   string `yaml:"jwt-secret" env:"AUTH_JWT_SECRET"`
	AllowGuests bool   `yaml:"allow-guests" env:"AUTH_ALLOW_GUESTS" env-default:"true"`
}

type Stats struct {
	Driver       string        `yaml:"driver" env:"STATS_DRIVER" env-default:"redis"`
	Timeout      time.Duration `yaml:"timeout" env:"STATS_TIMEOUT" env-default:"2s"`
	QueueSize    int           `yaml:"queue-size" env:"STATS_QUEUE_SIZE" env-default:"256"`
	HistoryLimit int           `yaml:"history-limit" env:"STATS_HISTORY_LIMIT" env-default:"100"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.Stats.Driver {
	case StatsDriverRedis, StatsDriverSQLite, StatsDriverNone:
	case StatsDriverPostgres:
		if that.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for stats driver %q", that.Stats.Driver)
		}
	default:
		return fmt.Errorf("unknown stats driver %q", that.Stats.Driver)
	}

	if that.Game.ActionDelay < 0 || that.Game.RemovalDelay < 0 {
		return fmt.Errorf("game delays must not be negative")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
