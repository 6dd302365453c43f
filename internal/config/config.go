package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/claude/vigor/internal/assess"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Engine    assess.Config   `yaml:"engine"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Engine knobs default to the standard tuning; a YAML engine
// section only needs the fields it wants to change. Env vars use the prefix
// VIGOR_ and underscore-separated paths:
//
//	VIGOR_SERVER_HOST, VIGOR_SERVER_PORT,
//	VIGOR_DB_HOST, VIGOR_DB_PORT, VIGOR_DB_NAME,
//	VIGOR_DB_USER, VIGOR_DB_PASSWORD, VIGOR_DB_SSLMODE,
//	VIGOR_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{Engine: assess.DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VIGOR_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("VIGOR_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("VIGOR_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("VIGOR_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("VIGOR_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("VIGOR_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("VIGOR_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("VIGOR_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("VIGOR_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Engine.ShortWindowDays <= 0 || c.Engine.LongWindowDays < c.Engine.ShortWindowDays {
		return fmt.Errorf("engine baseline windows are invalid")
	}
	if c.Engine.MinSamplesForBaseline < 1 {
		return fmt.Errorf("engine.min_samples_for_baseline must be at least 1")
	}
	return nil
}
