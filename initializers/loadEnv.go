package initializers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvProduction = "production"

// Config holds all application configuration.
type Config struct {
	App struct {
		Env  string `mapstructure:"env"`
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`
	Database struct {
		Driver          string        `mapstructure:"driver"`
		URL             string        `mapstructure:"url"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	} `mapstructure:"database"`
	JWT struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`
	Admin struct {
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`
	CORS struct {
		FrontendURL string `mapstructure:"frontend_url"`
	} `mapstructure:"cors"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	SMTP struct {
		Host     string `mapstructure:"host"`
		Address  string `mapstructure:"address"`
		From     string `mapstructure:"from"`
		Password string `mapstructure:"password"`
	} `mapstructure:"smtp"`
	Webhook struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"webhook"`
	S3 struct {
		Bucket string `mapstructure:"bucket"`
		Region string `mapstructure:"region"`
	} `mapstructure:"s3"`
}

func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}

// LoadEnv loads variables from a .env file when one is present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "err", err)
	}
}

// LoadConfig reads config.yaml (optional) and environment variables.
// Nested keys map to upper-case env names, e.g. database.url -> DATABASE_URL.
func LoadConfig() (*Config, error) {
	LoadEnv()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.url", "root:@tcp(127.0.0.1:3306)/perfume_store?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_idle_time", 30*time.Second)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 7*24*time.Hour)
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("cors.frontend_url", "")
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "orders.events")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.address", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("webhook.url", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET is empty, using an insecure development secret")
		cfg.JWT.Secret = "development-secret"
	}

	return &cfg, nil
}
