package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the key/value connection string used by the gorm driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres URL form used by the migration runner.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// KafkaConfig holds event broker settings.
type KafkaConfig struct {
	Brokers []string
}

// ServiceConfig is the full configuration for the adoption service.
// Secrets (JWT signing key, admin registration key) live here and are
// injected at startup rather than read from the environment ad hoc.
type ServiceConfig struct {
	Port      string
	AppEnv    string
	AdminKey  string
	UploadDir string
	DB        DatabaseConfig
	JWT       JWTConfig
	Kafka     KafkaConfig
}

// Addr returns the listen address for the HTTP server.
func (c *ServiceConfig) Addr() string { return ":" + c.Port }

// Load reads configuration from ADOPTION_-prefixed environment
// variables with development defaults for everything but secrets.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("ADOPTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "adoption")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("jwt_ttl", "1h")
	v.SetDefault("kafka_brokers", "localhost:9092")

	cfg := &ServiceConfig{
		Port:      v.GetString("service_port"),
		AppEnv:    v.GetString("app_env"),
		AdminKey:  v.GetString("admin_key"),
		UploadDir: v.GetString("upload_dir"),
		DB: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetInt("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt_secret"),
			TTL:    v.GetDuration("jwt_ttl"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(v.GetString("kafka_brokers"), ","),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("ADOPTION_JWT_SECRET is required")
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("ADOPTION_JWT_TTL must be positive")
	}

	return cfg, nil
}
