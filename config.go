package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Store     StoreConfig
	Exam      ExamConfig
	Log       LogConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Topics    []QuizTopic     `mapstructure:"topics"`
}

type ServerConfig struct {
	Port           string
	Mode           string
	SecureCookies  bool     `mapstructure:"secure_cookies"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Path    string
	SeedDir string `mapstructure:"seed_dir"`
}

// StoreConfig selects where topic question sets are read from:
// "db" (seeded sqlite bank), "http" (static files) or "minio".
type StoreConfig struct {
	Type           string
	BaseURL        string        `mapstructure:"base_url"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	MaxBytes       int64         `mapstructure:"max_bytes"`
	MinioEndpoint  string        `mapstructure:"minio_endpoint"`
	MinioAccessKey string        `mapstructure:"minio_access_key"`
	MinioSecretKey string        `mapstructure:"minio_secret_key"`
	MinioBucket    string        `mapstructure:"minio_bucket"`
	MinioPrefix    string        `mapstructure:"minio_prefix"`
	MinioUseSSL    bool          `mapstructure:"minio_use_ssl"`
}

type ExamConfig struct {
	DefaultCount  int           `mapstructure:"default_count"`
	TickInterval  time.Duration `mapstructure:"tick_interval"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	Random        string        `mapstructure:"random"`
	PassThreshold float64       `mapstructure:"pass_threshold"`
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.path", "quiz.db")
	v.SetDefault("database.seed_dir", "data/questions")

	v.SetDefault("store.type", "db")
	v.SetDefault("store.fetch_timeout", 10*time.Second)
	v.SetDefault("store.max_bytes", 4<<20)
	v.SetDefault("store.minio_prefix", "questions/")

	v.SetDefault("exam.default_count", 20)
	v.SetDefault("exam.tick_interval", time.Second)
	v.SetDefault("exam.session_ttl", 2*time.Hour)
	v.SetDefault("exam.random", RandCrypto)
	v.SetDefault("exam.pass_threshold", 61.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/quiz.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.collector_endpoint", "http://localhost:14268/api/traces")

	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig reads config.yaml from the given directories if present and
// applies QUIZ_* environment overrides. A missing file is not an error.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Cloud Run style variables
	_ = v.BindEnv("server.port", "QUIZ_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.secure_cookies", "QUIZ_SERVER_SECURE_COOKIES", "SECURE_COOKIES")

	_ = v.BindEnv("store.minio_access_key", "QUIZ_STORE_MINIO_ACCESS_KEY", "MINIO_ACCESS_KEY")
	_ = v.BindEnv("store.minio_secret_key", "QUIZ_STORE_MINIO_SECRET_KEY", "MINIO_SECRET_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Type {
	case "db", "http", "minio":
	default:
		return fmt.Errorf("store.type %q: want db, http or minio", c.Store.Type)
	}
	if c.Store.Type == "http" && c.Store.BaseURL == "" {
		return errors.New("store.base_url is required for the http store")
	}
	if c.Store.Type == "minio" && (c.Store.MinioEndpoint == "" || c.Store.MinioBucket == "") {
		return errors.New("store.minio_endpoint and store.minio_bucket are required for the minio store")
	}
	if c.Store.MaxBytes <= 0 {
		return fmt.Errorf("store.max_bytes must be positive, got %d", c.Store.MaxBytes)
	}
	if c.Exam.DefaultCount <= 0 {
		return fmt.Errorf("exam.default_count must be positive, got %d", c.Exam.DefaultCount)
	}
	if c.Exam.TickInterval <= 0 {
		return fmt.Errorf("exam.tick_interval must be positive, got %s", c.Exam.TickInterval)
	}
	if c.Exam.Random != RandCrypto && c.Exam.Random != RandMath {
		return fmt.Errorf("exam.random %q: want crypto or math", c.Exam.Random)
	}
	if c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowMinutes <= 0 {
		return errors.New("rate_limit.max_requests and rate_limit.window_minutes must be positive")
	}
	return nil
}
