package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v4"
)

const (
	defaultPath         = "config.yaml"
	defaultAPIBaseURL   = "http://localhost:8080"
	defaultListenAddr   = ":8080"
	defaultDBPath       = "lessbyless.db"
	defaultTickSeconds  = 1
	defaultScanSeconds  = 60
	defaultNotifyFrom   = "milestones@lessbyless.app"
)

type Config struct {
	APIBaseURL string `yaml:"api_base_url"`
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`

	// Polling cadences. The elapsed-time tick drives display refresh; the
	// scan interval drives milestone-notification sweeps.
	TickIntervalSeconds int `yaml:"tick_interval_seconds"`
	ScanIntervalSeconds int `yaml:"scan_interval_seconds"`

	NotifyFrom  string `yaml:"notify_from"`
	NotifyEmail string `yaml:"notify_email"`
}

// Load reads the yaml config named by LESSBYLESS_CONFIG (default
// "config.yaml"). A missing file is an error.
func Load() (*Config, error) {
	path := os.Getenv("LESSBYLESS_CONFIG")
	if path == "" {
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.DBPath == "" {
		c.DBPath = defaultDBPath
	}
	if c.TickIntervalSeconds <= 0 {
		c.TickIntervalSeconds = defaultTickSeconds
	}
	if c.ScanIntervalSeconds <= 0 {
		c.ScanIntervalSeconds = defaultScanSeconds
	}
	if c.NotifyFrom == "" {
		c.NotifyFrom = defaultNotifyFrom
	}
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalSeconds) * time.Second
}

func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.ScanIntervalSeconds) * time.Second
}
