package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const defaultHTTPAddr = ":4000"

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Log      LogConfig
	Hub      HubConfig
	Kafka    KafkaConfig
	Shutdown ShutdownConfig
}

type HTTPConfig struct {
	Addr string
}

type DatabaseConfig struct {
	URL            string
	MigrationsPath string
}

type LogConfig struct {
	Level  string
	Format string
}

type HubConfig struct {
	WSPath       string
	QueueSize    int
	WriteTimeout time.Duration
	PingInterval time.Duration
	PongTimeout  time.Duration
}

// KafkaConfig configures the event mirror. An empty Brokers disables it.
type KafkaConfig struct {
	Brokers   string
	Topic     string
	QueueSize int
}

type ShutdownConfig struct {
	Timeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", defaultHTTPAddr)
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrations_path", "internal/db/migrations")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("hub.ws_path", "/ws")
	v.SetDefault("hub.queue_size", 16)
	v.SetDefault("hub.write_timeout", 5*time.Second)
	v.SetDefault("hub.ping_interval", 30*time.Second)
	v.SetDefault("hub.pong_timeout", 60*time.Second)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "device-events")
	v.SetDefault("kafka.queue_size", 1024)
	v.SetDefault("shutdown.timeout", 10*time.Second)
}

// Load reads configuration from defaults, an optional file named by
// CONFIG_FILE, and the environment (database.url <- DATABASE_URL). The
// original deployment's PORT variable is honored when HTTP_ADDR is unset.
func Load() (*Config, error) {
	const fn = "Config:Load"
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("config_file", "CONFIG_FILE")
	_ = v.BindEnv("port", "PORT")

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%s:%w:%w", fn, ErrInvalidConfig, err)
		}
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr: v.GetString("http.addr"),
		},
		Database: DatabaseConfig{
			URL:            v.GetString("database.url"),
			MigrationsPath: v.GetString("database.migrations_path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Hub: HubConfig{
			WSPath:       v.GetString("hub.ws_path"),
			QueueSize:    v.GetInt("hub.queue_size"),
			WriteTimeout: v.GetDuration("hub.write_timeout"),
			PingInterval: v.GetDuration("hub.ping_interval"),
			PongTimeout:  v.GetDuration("hub.pong_timeout"),
		},
		Kafka: KafkaConfig{
			Brokers:   v.GetString("kafka.brokers"),
			Topic:     v.GetString("kafka.topic"),
			QueueSize: v.GetInt("kafka.queue_size"),
		},
		Shutdown: ShutdownConfig{
			Timeout: v.GetDuration("shutdown.timeout"),
		},
	}
	if port := v.GetString("port"); port != "" && cfg.HTTP.Addr == defaultHTTPAddr {
		cfg.HTTP.Addr = ":" + port
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("%w: DATABASE_URL is required", ErrInvalidConfig)
	}
	if c.Hub.QueueSize <= 0 {
		return fmt.Errorf("%w: hub queue size must be positive, got %d", ErrInvalidConfig, c.Hub.QueueSize)
	}
	if c.Kafka.Brokers != "" && c.Kafka.Topic == "" {
		return fmt.Errorf("%w: kafka topic is required when brokers are set", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.Hub.WSPath, "/") {
		return fmt.Errorf("%w: websocket path must start with /, got %q", ErrInvalidConfig, c.Hub.WSPath)
	}
	return nil
}

func (c *Config) MirrorEnabled() bool {
	return c.Kafka.Brokers != ""
}
