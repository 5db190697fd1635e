package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "FOODBRIDGE"

// ErrInvalidConfig is returned when the loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// keys without a default that must still be readable from the environment
var requiredKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"llm.gemini_api_key",
	"llm.base_url",
	"queue.redis_addr",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// A .env file in the working directory, if present, is loaded into the
// environment first without overriding variables that are already set.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range requiredKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Queue.Consumer == "" {
		cfg.Queue.Consumer = defaultConsumerName()
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the rules that span several sections.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.Queue.VisibilityTimeout <= cfg.Matching.OracleTimeout {
		return fmt.Errorf(
			"%w: queue.visibility_timeout (%s) must exceed matching.oracle_timeout (%s)",
			ErrInvalidConfig,
			cfg.Queue.VisibilityTimeout,
			cfg.Matching.OracleTimeout,
		)
	}

	if _, err := time.LoadLocation(cfg.Matching.PickupTimezone); err != nil {
		return fmt.Errorf("%w: matching.pickup_timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_output_tokens", 1000)
	v.SetDefault("llm.temperature", 0.1)

	v.SetDefault("queue.backend", "redis")
	v.SetDefault("queue.stream", "match-requests")
	v.SetDefault("queue.group", "matching-engine")
	v.SetDefault("queue.visibility_timeout", 60*time.Second)
	v.SetDefault("queue.block_timeout", 5*time.Second)
	v.SetDefault("queue.batch_size", 10)
	v.SetDefault("queue.buffer_size", 100)

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.reclaim_interval", 30*time.Second)

	v.SetDefault("matching.candidate_limit", 5)
	v.SetDefault("matching.max_recommendations", 2)
	v.SetDefault("matching.oracle_timeout", 20*time.Second)
	v.SetDefault("matching.pickup_timezone", "Asia/Seoul")
	v.SetDefault("matching.pickup_hours", []int{9, 13})
}

func defaultConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
