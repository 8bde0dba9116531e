package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	RandomMark = "random"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  string `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis    Redis  `yaml:"redis"`
	Bot      Bot    `yaml:"bot"`
	Game     Game   `yaml:"game"`
}

type Redis struct {
	Host     string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	GameTTL  time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"24h"`
}

type Bot struct {
	// Delay is the cosmetic thinking time before the bot answers. A zero in the
	// file falls back to the default, BOT_DELAY=0s disables it.
	Delay    time.Duration `yaml:"delay" env:"BOT_DELAY" env-default:"500ms"`
	Parallel bool          `yaml:"parallel" env:"BOT_PARALLEL" env-default:"false"`
}

type Game struct {
	// HumanMark is X, O or random.
	HumanMark string `yaml:"human-mark" env:"GAME_HUMAN_MARK" env-default:"X"`
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

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

var (
	errUnknownStorage   = fmt.Errorf("unknown storage, want %q or %q", StorageMemory, StorageRedis)
	errUnknownHumanMark = fmt.Errorf("unknown human mark, want X, O or %q", RandomMark)
	errNegativeDelay    = errors.New("bot delay must not be negative")
)

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("%w: %q", errUnknownStorage, that.Storage)
	}

	switch that.Game.HumanMark {
	case "X", "O", RandomMark:
	default:
		return fmt.Errorf("%w: %q", errUnknownHumanMark, that.Game.HumanMark)
	}

	if that.Bot.Delay < 0 {
		return errNegativeDelay
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
