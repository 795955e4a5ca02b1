package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the POS system.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration.
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Load reads configuration from a YAML file. Environment variables take
// precedence over file values; a .env file is honored when present.
func Load(filename string) (*Config, error) {
	// Ignore a missing .env; it only exists in local setups.
	_ = godotenv.Load()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvOverrides()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides replaces file values with POS_* environment variables.
func (c *Config) applyEnvOverrides() {
	overrideString(&c.Database.Host, "POS_DB_HOST")
	overrideInt(&c.Database.Port, "POS_DB_PORT")
	overrideString(&c.Database.User, "POS_DB_USER")
	overrideString(&c.Database.Password, "POS_DB_PASSWORD")
	overrideString(&c.Database.Database, "POS_DB_NAME")

	overrideString(&c.RabbitMQ.Host, "POS_RABBITMQ_HOST")
	overrideInt(&c.RabbitMQ.Port, "POS_RABBITMQ_PORT")
	overrideString(&c.RabbitMQ.User, "POS_RABBITMQ_USER")
	overrideString(&c.RabbitMQ.Password, "POS_RABBITMQ_PASSWORD")
}

func overrideString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func overrideInt(target *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

// Validate reports every missing or malformed field at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Database.Host == "" {
		result = multierror.Append(result, fmt.Errorf("database.host is required"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("database.port must be between 1 and 65535"))
	}
	if c.Database.User == "" {
		result = multierror.Append(result, fmt.Errorf("database.user is required"))
	}
	if c.Database.Database == "" {
		result = multierror.Append(result, fmt.Errorf("database.database is required"))
	}

	if c.RabbitMQ.Host == "" {
		result = multierror.Append(result, fmt.Errorf("rabbitmq.host is required"))
	}
	if c.RabbitMQ.Port <= 0 || c.RabbitMQ.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("rabbitmq.port must be between 1 and 65535"))
	}
	if c.RabbitMQ.User == "" {
		result = multierror.Append(result, fmt.Errorf("rabbitmq.user is required"))
	}

	return result.ErrorOrNil()
}

// DatabaseURL returns a PostgreSQL connection URL.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL.
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
