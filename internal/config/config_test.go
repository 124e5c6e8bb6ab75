package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOOT_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10000, cfg.Engine.Replicates)
	assert.Equal(t, 0, cfg.Engine.Workers)
	assert.Equal(t, 0.95, cfg.Engine.Confidence)
	assert.Equal(t, "data/reports", cfg.Paths.ReportsDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BOOT_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("BOOT_SERVER_PORT", "9090")
	t.Setenv("BOOT_ENGINE_REPLICATES", "500")
	t.Setenv("BOOT_ENGINE_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Engine.Replicates)
	assert.Equal(t, int64(42), cfg.Engine.Seed)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bootcli.yaml")
	content := []byte("engine:\n  replicates: 2500\n  confidence: 0.9\n")
	require.NoError(t, os.WriteFile(configPath, content, 0644))

	cfg, err := loadFromFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, 2500, cfg.Engine.Replicates)
	assert.Equal(t, 0.9, cfg.Engine.Confidence)
}

func TestMergeConfigs(t *testing.T) {
	file := Config{Engine: EngineConfig{Replicates: 2500, Seed: 7}}
	env := Config{Engine: EngineConfig{Replicates: 100}}

	merged := mergeConfigs(file, env)
	assert.Equal(t, 100, merged.Engine.Replicates, "env wins when set")
	assert.Equal(t, int64(7), merged.Engine.Seed, "file fills zero env fields")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server port"},
		{"zero replicates", func(c *Config) { c.Engine.Replicates = 0 }, "replicates"},
		{"max below default", func(c *Config) { c.Engine.MaxReplicates = 1 }, "max_replicates"},
		{"negative workers", func(c *Config) { c.Engine.Workers = -1 }, "workers"},
		{"confidence out of range", func(c *Config) { c.Engine.Confidence = 1.5 }, "confidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Server: ServerConfig{Port: 8080},
				Engine: EngineConfig{Replicates: 100, MaxReplicates: 1000, Confidence: 0.95},
			}
			tt.mutate(&cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvePaths(t *testing.T) {
	paths, err := ResolvePaths(PathsConfig{DataDir: "data", ReportsDir: "data/reports", LogsDir: "logs"})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(paths.DataDir))
	assert.True(t, filepath.IsAbs(paths.ReportsDir))
	assert.Equal(t, filepath.Join(paths.ReportsDir, "out.csv"), paths.ReportPath("out.csv"))
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	paths := &Paths{
		DataDir:    filepath.Join(dir, "data"),
		ReportsDir: filepath.Join(dir, "data", "reports"),
		LogsDir:    filepath.Join(dir, "logs"),
	}

	require.NoError(t, paths.EnsureDirectories())
	for _, d := range []string{paths.DataDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
