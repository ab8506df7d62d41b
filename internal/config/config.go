// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                     string  `mapstructure:"PORT"`
	Env                      string  `mapstructure:"APP_ENV"`
	DBHost                   string  `mapstructure:"DB_HOST"`
	DBPort                   string  `mapstructure:"DB_PORT"`
	DBUser                   string  `mapstructure:"DB_USER"`
	DBPassword               string  `mapstructure:"DB_PASSWORD"`
	DBName                   string  `mapstructure:"DB_NAME"`
	DBSSLMode                string  `mapstructure:"DB_SSLMODE"`
	DBMaxOpenConns           int     `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns           int     `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes int     `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBAutoMigrate            bool    `mapstructure:"DB_AUTO_MIGRATE"`
	RedisURL                 string  `mapstructure:"REDIS_URL"`
	AllowedOrigins           string  `mapstructure:"ALLOWED_ORIGINS"`
	EventsBackend            string  `mapstructure:"EVENTS_BACKEND"`
	EventsChannel            string  `mapstructure:"EVENTS_CHANNEL"`
	KafkaBrokers             string  `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic               string  `mapstructure:"KAFKA_TOPIC"`
	TracingEnabled           bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter          string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint             string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSampleRatio       float64 `mapstructure:"TRACING_SAMPLE_RATIO"`
}

// Supported EVENTS_BACKEND values.
const (
	EventsBackendNone  = "none"
	EventsBackendRedis = "redis"
	EventsBackendKafka = "kafka"
)

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional; environment variables and defaults are enough.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) || IsProduction(env) {
				return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
			}
		} else {
			log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
		}
	}

	viper.SetDefault("PORT", "8888")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "postboard")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	viper.SetDefault("EVENTS_BACKEND", EventsBackendNone)
	viper.SetDefault("EVENTS_CHANNEL", "postboard:events")
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "postboard.events")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLE_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.EventsBackend = strings.ToLower(strings.TrimSpace(c.EventsBackend))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
	c.RedisURL = strings.TrimSpace(c.RedisURL)
}

// IsProduction reports whether env names a production profile.
func IsProduction(env string) bool {
	return env == "production" || env == "prod"
}

// Origins returns the CORS allow-list as a clean slice.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DBHost == "" || c.DBName == "" {
		return errors.New("DB_HOST and DB_NAME are required")
	}

	origins := c.Origins()
	if len(origins) == 0 {
		return errors.New("ALLOWED_ORIGINS must list at least one origin")
	}
	for _, o := range origins {
		if o == "*" {
			return errors.New("ALLOWED_ORIGINS must be an explicit allow-list; '*' is not accepted")
		}
	}

	switch c.EventsBackend {
	case "", EventsBackendNone:
	case EventsBackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when EVENTS_BACKEND=redis")
		}
	case EventsBackendKafka:
		if strings.TrimSpace(c.KafkaBrokers) == "" || strings.TrimSpace(c.KafkaTopic) == "" {
			return errors.New("KAFKA_BROKERS and KAFKA_TOPIC are required when EVENTS_BACKEND=kafka")
		}
	default:
		return fmt.Errorf("unsupported EVENTS_BACKEND %q", c.EventsBackend)
	}

	if c.TracingEnabled {
		if c.TracingExporter != "stdout" && c.TracingExporter != "otlp" {
			return fmt.Errorf("unsupported TRACING_EXPORTER %q", c.TracingExporter)
		}
		if c.TracingSampleRatio <= 0 || c.TracingSampleRatio > 1 {
			return errors.New("TRACING_SAMPLE_RATIO must be in (0, 1]")
		}
	}

	if IsProduction(c.Env) {
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must not be 'disable' in production")
		}
		for _, o := range origins {
			if strings.Contains(o, "localhost") || strings.Contains(o, "127.0.0.1") {
				log.Printf("WARNING: ALLOWED_ORIGINS contains a local origin (%s) in production.", o)
			}
		}
	}

	return nil
}
