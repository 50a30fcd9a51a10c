package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	Log      LogConfig      `yaml:"log"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Session  SessionConfig  `yaml:"session"`
	Latency  LatencyConfig  `yaml:"latency"`
	Currency CurrencyConfig `yaml:"currency"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Random   RandomConfig   `yaml:"random"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
	DisableDocs    bool          `yaml:"disable_docs" env:"HTTP_DISABLE_DOCS"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
}

type GRPCConfig struct {
	Address string `yaml:"address" env:"GRPC_ADDRESS" env-default:":9090"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// KafkaConfig with no brokers disables event publishing.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	BookingTopic       string   `yaml:"booking_topic" env:"KAFKA_BOOKING_TOPIC" env-default:"booking"`
	NotificationsTopic string   `yaml:"notifications_topic" env:"KAFKA_NOTIFICATIONS_TOPIC" env-default:"notifications"`
	GroupID            string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"skywings-worker"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// SessionConfig.LockTTL caps how long a crashed request keeps a Redis
// session busy; it must outlast every simulated latency.
type SessionConfig struct {
	Store   string        `yaml:"store" env:"SESSION_STORE" env-default:"memory"`
	TTL     time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"30m"`
	LockTTL time.Duration `yaml:"lock_ttl" env:"SESSION_LOCK_TTL" env-default:"30s"`
}

type LatencyConfig struct {
	Search  time.Duration `yaml:"search" env:"LATENCY_SEARCH" env-default:"1500ms"`
	Status  time.Duration `yaml:"status" env:"LATENCY_STATUS" env-default:"1s"`
	Payment time.Duration `yaml:"payment" env:"LATENCY_PAYMENT" env-default:"2s"`
}

type CurrencyConfig struct {
	Default string `yaml:"default" env:"CURRENCY_DEFAULT" env-default:"USD"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" env:"TRACING_ENABLED"`
	ServiceName string `yaml:"service_name" env:"TRACING_SERVICE_NAME" env-default:"skywings"`
}

// RandomConfig.Seed of zero seeds from the clock.
type RandomConfig struct {
	Seed uint64 `yaml:"seed" env:"RANDOM_SEED"`
}

// LoadConfig reads the YAML file at path, then applies environment
// overrides and defaults. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("session.store must be %q or %q, got %q", SessionStoreMemory, SessionStoreRedis, c.Session.Store))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Latency.Search < 0 || c.Latency.Status < 0 || c.Latency.Payment < 0 {
		errs = append(errs, errors.New("latency durations must not be negative"))
	}
	if c.Session.LockTTL <= 0 {
		errs = append(errs, errors.New("session.lock_ttl must be positive"))
	} else if longest := max(c.Latency.Search, c.Latency.Status, c.Latency.Payment); longest >= c.Session.LockTTL {
		errs = append(errs, fmt.Errorf("latency %s must be shorter than session.lock_ttl %s", longest, c.Session.LockTTL))
	}
	if c.Kafka.Enabled() && (c.Kafka.BookingTopic == "" || c.Kafka.NotificationsTopic == "") {
		errs = append(errs, errors.New("kafka topics are required when brokers are set"))
	}
	return errors.Join(errs...)
}
