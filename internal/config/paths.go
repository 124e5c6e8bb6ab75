package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the resolved directories the application reads and writes.
// All paths are absolute once Resolve has run.
type Paths struct {
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// ResolvePaths turns the configured directories into absolute paths relative
// to the current working directory.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	p := &Paths{}

	var err error
	if p.DataDir, err = filepath.Abs(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}
	if p.ReportsDir, err = filepath.Abs(cfg.ReportsDir); err != nil {
		return nil, fmt.Errorf("failed to resolve reports dir: %w", err)
	}
	if p.LogsDir, err = filepath.Abs(cfg.LogsDir); err != nil {
		return nil, fmt.Errorf("failed to resolve logs dir: %w", err)
	}

	return p, nil
}

// EnsureDirectories creates every configured directory that does not exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DataPath returns the path of a file inside the data directory.
func (p *Paths) DataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// ReportPath returns the path of a file inside the reports directory.
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath returns the path of a file inside the logs directory.
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks whether a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
