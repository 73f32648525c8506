// Package config loads service settings from an optional yaml file, a .env
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"product-extractor/internal/types"
	"product-extractor/store"
)

type Config struct {
	Env       string `yaml:"env" env:"ENV" env-default:"local" validate:"oneof=local dev prod"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text" validate:"oneof=text json"`

	Extractor  Extractor  `yaml:"extractor"`
	Monitor    Monitor    `yaml:"monitor"`
	Storage    Storage    `yaml:"storage"`
	HTTPServer HTTPServer `yaml:"http_server"`
	RabbitMQ   RabbitMQ   `yaml:"rabbitmq"`
}

type Extractor struct {
	RequestDelay          time.Duration `yaml:"request_delay" env:"REQUEST_DELAY" env-default:"1s"`
	MaxRetries            int           `yaml:"max_retries" env:"MAX_RETRIES" env-default:"3" validate:"gte=0"`
	Timeout               time.Duration `yaml:"timeout" env:"REQUEST_TIMEOUT" env-default:"30s" validate:"gt=0"`
	MaxConcurrentRequests int           `yaml:"max_concurrent_requests" env:"MAX_CONCURRENT_REQUESTS" env-default:"5" validate:"gte=1"`
	UseHeadlessBrowser    bool          `yaml:"use_headless_browser" env:"USE_HEADLESS_BROWSER" env-default:"true"`
	UserAgent             string        `yaml:"user_agent" env:"USER_AGENT"`

	FieldTimeout   time.Duration `yaml:"field_timeout" env:"FIELD_TIMEOUT" env-default:"5s" validate:"gt=0"`
	ExpandGallery  bool          `yaml:"expand_gallery" env:"EXPAND_GALLERY" env-default:"true"`
	ExpansionDelay time.Duration `yaml:"expansion_delay" env:"EXPANSION_DELAY" env-default:"300ms"`

	MaxImages  int `yaml:"max_images" env:"MAX_IMAGES" env-default:"20" validate:"gte=1"`
	MaxVideos  int `yaml:"max_videos" env:"MAX_VIDEOS" env-default:"10" validate:"gte=0"`
	MaxReviews int `yaml:"max_reviews" env:"MAX_REVIEWS" env-default:"50" validate:"gte=1"`
}

type Monitor struct {
	Interval    time.Duration `yaml:"interval" env:"MONITOR_INTERVAL" env-default:"30m" validate:"gt=0"`
	Concurrency int           `yaml:"concurrency" env:"MONITOR_CONCURRENCY" env-default:"1" validate:"gte=1"`
	AutoStart   bool          `yaml:"auto_start" env:"MONITOR_AUTO_START" env-default:"false"`
}

type Storage struct {
	Backend    string `yaml:"backend" env:"STORE_BACKEND" env-default:"sqlite" validate:"oneof=memory sqlite redis postgres memcache none"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"extractor.db"`
	Addr       string `yaml:"addr" env:"STORE_ADDR" env-default:"localhost:6379"`
	RedisDB    int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	DSN        string `yaml:"dsn" env:"POSTGRES_DSN"`
}

type HTTPServer struct {
	Port         string        `yaml:"port" env:"API_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"API_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"API_WRITE_TIMEOUT" env-default:"2m"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"API_IDLE_TIMEOUT" env-default:"60s"`
}

// RabbitMQ is disabled when URL is empty
type RabbitMQ struct {
	URL            string `yaml:"url" env:"AMQP_URL"`
	QueueName      string `yaml:"queue_name" env:"AMQP_QUEUE" env-default:"extractor_commands"`
	WorkerPoolSize int    `yaml:"worker_pool_size" env:"AMQP_WORKERS" env-default:"4" validate:"gte=1"`
}

// Load reads configPath when it is set, then the environment. A .env file
// in the working directory is applied first if present.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: .env: %w", op, err)
	}

	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: config file: %w", op, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: cannot read config %s: %w", op, configPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read environment: %w", op, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}
	if cfg.Storage.Backend == store.BackendPostgres && cfg.Storage.DSN == "" {
		return nil, fmt.Errorf("%s: POSTGRES_DSN is required for the postgres backend", op)
	}
	return &cfg, nil
}

// MustLoad is Load for entry points
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

// Engine returns the extractor and monitor settings
func (c *Config) Engine() *types.Config {
	engine := types.DefaultConfig()
	e := c.Extractor

	engine.RequestDelay = e.RequestDelay
	engine.MaxRetries = e.MaxRetries
	engine.Timeout = e.Timeout
	engine.MaxConcurrentRequests = e.MaxConcurrentRequests
	engine.UseHeadlessBrowser = e.UseHeadlessBrowser
	if e.UserAgent != "" {
		engine.UserAgent = e.UserAgent
	}
	engine.FieldTimeout = e.FieldTimeout
	engine.ExpandGallery = e.ExpandGallery
	engine.ExpansionDelay = e.ExpansionDelay
	engine.MaxImages = e.MaxImages
	engine.MaxVideos = e.MaxVideos
	engine.MaxReviews = e.MaxReviews

	engine.MonitorInterval = c.Monitor.Interval
	engine.MonitorConcurrency = c.Monitor.Concurrency
	return engine
}

// Store returns the key-value store settings
func (c *Config) Store() store.Config {
	return store.Config{
		Backend:    c.Storage.Backend,
		SQLitePath: c.Storage.SQLitePath,
		Addr:       c.Storage.Addr,
		RedisDB:    c.Storage.RedisDB,
		DSN:        c.Storage.DSN,
	}
}
