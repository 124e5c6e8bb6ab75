package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/bootcli.log"`
}

// EngineConfig contains bootstrap engine defaults. Request-level settings
// override these per run.
type EngineConfig struct {
	Replicates    int     `yaml:"replicates" envconfig:"REPLICATES" default:"10000"`
	MaxReplicates int     `yaml:"max_replicates" envconfig:"MAX_REPLICATES" default:"1000000"`
	Workers       int     `yaml:"workers" envconfig:"WORKERS" default:"0"`
	Seed          int64   `yaml:"seed" envconfig:"SEED" default:"0"`
	Confidence    float64 `yaml:"confidence" envconfig:"CONFIDENCE" default:"0.95"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// Load loads configuration from environment variables and an optional YAML
// file (BOOT_CONFIG_FILE, defaulting to bootcli.yaml in the working
// directory). Environment takes precedence over the file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("BOOT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func configFilePath() string {
	if path := os.Getenv("BOOT_CONFIG_FILE"); path != "" {
		return path
	}
	return "bootcli.yaml"
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// Only fields envconfig left at their zero value fall back to the file.
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Engine.Replicates == 0 {
		envConfig.Engine.Replicates = fileConfig.Engine.Replicates
	}
	if envConfig.Engine.Workers == 0 {
		envConfig.Engine.Workers = fileConfig.Engine.Workers
	}
	if envConfig.Engine.Seed == 0 {
		envConfig.Engine.Seed = fileConfig.Engine.Seed
	}
	if envConfig.Engine.Confidence == 0 {
		envConfig.Engine.Confidence = fileConfig.Engine.Confidence
	}
	if envConfig.Paths.DataDir == "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Paths.ReportsDir == "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}

	return envConfig
}

// validate checks configuration invariants that would otherwise surface as
// confusing engine errors at request time.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in [1,65535], got %d", c.Server.Port)
	}
	if c.Engine.Replicates < 1 {
		return fmt.Errorf("engine replicates must be >= 1, got %d", c.Engine.Replicates)
	}
	if c.Engine.MaxReplicates < c.Engine.Replicates {
		return fmt.Errorf("engine max_replicates %d is below default replicates %d",
			c.Engine.MaxReplicates, c.Engine.Replicates)
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine workers must be >= 0, got %d", c.Engine.Workers)
	}
	if c.Engine.Confidence <= 0 || c.Engine.Confidence >= 1 {
		return fmt.Errorf("engine confidence must be in (0,1), got %g", c.Engine.Confidence)
	}
	return nil
}
