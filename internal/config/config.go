// Package config handles loading and managing subjscan configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the subjscan configuration.
type Config struct {
	Data    DataConfig    `toml:"data"`
	Sources SourcesConfig `toml:"sources"`
	Scan    ScanConfig    `toml:"scan"`

	// Computed home directory (not from config file)
	HomeDir string `toml:"-"`
}

// DataConfig holds storage configuration.
type DataConfig struct {
	DataDir  string `toml:"data_dir"`
	Database string `toml:"database"` // overrides data_dir/subjscan.db
}

// SourcesConfig lists the mail corpora a scan run walks, in the order
// they are drained.
type SourcesConfig struct {
	MboxDirs       []string `toml:"mbox_dirs"`       // trees of .mbox/.mbx/.mbx.gz files
	Maildirs       []string `toml:"maildirs"`        // single maildir folders
	Notmuch        string   `toml:"notmuch"`         // notmuch database path
	CorpusDirs     []string `toml:"corpus_dirs"`     // flat research corpora
	CorpusEncoding string   `toml:"corpus_encoding"` // IANA name, or "auto"
}

// ScanConfig tunes the pipeline.
type ScanConfig struct {
	CommitInterval int    `toml:"commit_interval"`
	MinDate        string `toml:"min_date"` // inclusive, YYYY-MM-DD
	MaxDate        string `toml:"max_date"` // inclusive, YYYY-MM-DD
}

// DefaultHome returns the default subjscan home directory.
// Respects the SUBJSCAN_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("SUBJSCAN_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".subjscan"
	}
	return filepath.Join(home, ".subjscan")
}

// Load reads the configuration from the specified file. If path is empty,
// <home>/config.toml is used; homeOverride, when non-empty, replaces the
// default home directory. The config file itself is optional.
func Load(path, homeOverride string) (*Config, error) {
	homeDir := DefaultHome()
	if homeOverride != "" {
		homeDir = homeOverride
	}

	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		Data: DataConfig{
			DataDir: homeDir,
		},
		Sources: SourcesConfig{
			CorpusEncoding: "windows-1252",
		},
		Scan: ScanConfig{
			CommitInterval: 1000,
			MinDate:        "1990-01-01",
			MaxDate:        "2020-01-01",
		},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Data.DataDir = expandPath(cfg.Data.DataDir)
	cfg.Data.Database = expandPath(cfg.Data.Database)
	cfg.Sources.Notmuch = expandPath(cfg.Sources.Notmuch)
	for i, p := range cfg.Sources.MboxDirs {
		cfg.Sources.MboxDirs[i] = expandPath(p)
	}
	for i, p := range cfg.Sources.Maildirs {
		cfg.Sources.Maildirs[i] = expandPath(p)
	}
	for i, p := range cfg.Sources.CorpusDirs {
		cfg.Sources.CorpusDirs[i] = expandPath(p)
	}

	return cfg, nil
}

// EnsureHomeDir creates the data directory if needed.
func (c *Config) EnsureHomeDir() error {
	return os.MkdirAll(c.Data.DataDir, 0755)
}

// DatabasePath returns the path to the SQLite database.
func (c *Config) DatabasePath() string {
	if c.Data.Database != "" {
		return c.Data.Database
	}
	return filepath.Join(c.Data.DataDir, "subjscan.db")
}

// HasSources reports whether at least one source is configured.
func (c *Config) HasSources() bool {
	return len(c.Sources.MboxDirs) > 0 ||
		len(c.Sources.Maildirs) > 0 ||
		c.Sources.Notmuch != "" ||
		len(c.Sources.CorpusDirs) > 0
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
