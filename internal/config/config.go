package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn"`
	Difficulty string    `yaml:"difficulty" env:"TTT_DIFFICULTY"`
	HumanMark  string    `yaml:"human-mark" env:"TTT_HUMAN_MARK"`
	MoveCache  MoveCache `yaml:"move-cache"`
	Redis      Redis     `yaml:"redis"`
}

type MoveCache struct {
	Enabled bool          `yaml:"enabled" env:"MOVE_CACHE_ENABLED" env-default:"false"`
	TTL     time.Duration `yaml:"ttl" env:"MOVE_CACHE_TTL" env-default:"24h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load configuration from the yml file at path, or from the environment when the file is missing.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
