package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port         int    `yaml:"port"`
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"server"`

	Database struct {
		Path   string       `yaml:"path"`
		Backup BackupConfig `yaml:"backup"`
	} `yaml:"database"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Workflow struct {
		BaseURL          string `yaml:"base_url"`
		TimeoutSeconds   int    `yaml:"timeout_seconds"`
		CacheTTLSeconds  int    `yaml:"cache_ttl_seconds"`
		ReconcileMinutes int    `yaml:"reconcile_minutes"`
	} `yaml:"workflow"`

	Reminders struct {
		Enabled  bool   `yaml:"enabled"`
		Timezone string `yaml:"timezone"`
		Weekday  int    `yaml:"weekday"` // 0 = Sunday
		Hour     int    `yaml:"hour"`
	} `yaml:"reminders"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

// BackupConfig controls the periodic copy of the cache database file.
type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	StoragePath   string `yaml:"storage_path"`
	IntervalHours int    `yaml:"interval_hours"`
	RetentionDays int    `yaml:"retention_days"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/jiscare.db"
	}
	if cfg.Workflow.BaseURL == "" {
		cfg.Workflow.BaseURL = "http://localhost:5678/webhook"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) WorkflowTimeout() time.Duration {
	if c.Workflow.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Workflow.TimeoutSeconds) * time.Second
}

func (c *Config) ReconcileInterval() time.Duration {
	if c.Workflow.ReconcileMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Workflow.ReconcileMinutes) * time.Minute
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Workflow.CacheTTLSeconds) * time.Second
}

func (c *Config) BackupInterval() time.Duration {
	if c.Database.Backup.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Database.Backup.IntervalHours) * time.Hour
}
