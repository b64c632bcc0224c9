package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	AIService struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int64  `yaml:"timeout_seconds"`
		RetryMax       int    `yaml:"retry_max"`
		RetryBackoffMs int64  `yaml:"retry_backoff_ms"`
	} `yaml:"ai_service"`
	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLHours int64  `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.AIService.TimeoutSeconds <= 0 {
		c.AIService.TimeoutSeconds = 30
	}
	if c.AIService.RetryBackoffMs <= 0 {
		c.AIService.RetryBackoffMs = 500
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 24
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
}

// AITimeout returns the per-call deadline for the external AI service.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AIService.TimeoutSeconds) * time.Second
}

// AIRetryBackoff returns the base backoff between AI call retries.
func (c *Config) AIRetryBackoff() time.Duration {
	return time.Duration(c.AIService.RetryBackoffMs) * time.Millisecond
}

// TokenTTL returns the lifetime of issued session tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}
