package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from a YAML file.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
	Database struct {
		Dialect string `yaml:"dialect"`
		DSN     string `yaml:"dsn"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	RecipeCatalog struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"recipe_catalog"`
}

// Default returns the development configuration: local SQLite, API on 8080,
// metrics on 9090.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Database.Dialect = "sqlite3"
	cfg.Database.DSN = "chowhub.db"
	cfg.RecipeCatalog.BaseURL = "https://api.spoonacular.com"
	return cfg
}

// Load reads a YAML config file over the defaults. The JWT secret may come
// from the CHOWHUB_JWT_SECRET environment variable instead of the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if secret := os.Getenv("CHOWHUB_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if key := os.Getenv("CHOWHUB_RECIPE_API_KEY"); key != "" {
		cfg.RecipeCatalog.APIKey = key
	}
	return cfg, nil
}
