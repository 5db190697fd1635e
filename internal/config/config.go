package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Queue    QueueConfig    `mapstructure:"queue" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
	Matching MatchingConfig `mapstructure:"matching" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"`
}

// LLMConfig contains the ranking oracle's Gemini settings.
type LLMConfig struct {
	GeminiAPIKey    string  `mapstructure:"gemini_api_key" validate:"required"`
	ModelName       string  `mapstructure:"model_name" validate:"required"`
	BaseURL         string  `mapstructure:"base_url" validate:"omitempty,url"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens" validate:"required,gt=0"`
	Temperature     float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}

// QueueConfig selects and configures the match request queue.
type QueueConfig struct {
	// Backend is "redis" for Redis Streams or "memory" for a single-process queue.
	Backend           string        `mapstructure:"backend" validate:"required,oneof=redis memory"`
	RedisAddr         string        `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	Stream            string        `mapstructure:"stream" validate:"required"`
	Group             string        `mapstructure:"group" validate:"required"`
	Consumer          string        `mapstructure:"consumer"`
	VisibilityTimeout time.Duration `mapstructure:"visibility_timeout" validate:"required,gt=0"`
	BlockTimeout      time.Duration `mapstructure:"block_timeout" validate:"required,gt=0"`
	BatchSize         int           `mapstructure:"batch_size" validate:"required,gt=0"`
	BufferSize        int           `mapstructure:"buffer_size" validate:"required,gt=0"`
}

// TaskConfig contains the consumer worker pool settings.
type TaskConfig struct {
	WorkerCount     int           `mapstructure:"worker_count" validate:"required,gt=0"`
	ReclaimInterval time.Duration `mapstructure:"reclaim_interval" validate:"required,gt=0"`
}

// MatchingConfig tunes candidate selection and the oracle call.
type MatchingConfig struct {
	CandidateLimit     int           `mapstructure:"candidate_limit" validate:"required,gt=0"`
	MaxRecommendations int           `mapstructure:"max_recommendations" validate:"required,gt=0,lte=2"`
	OracleTimeout      time.Duration `mapstructure:"oracle_timeout" validate:"required,gt=0"`
	PickupTimezone     string        `mapstructure:"pickup_timezone" validate:"required"`
	PickupHours        []int         `mapstructure:"pickup_hours" validate:"required,min=1,dive,gte=0,lte=23"`
}
