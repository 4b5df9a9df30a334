// Package config loads tool configuration for cloudcmd.
//
// Configuration lives in a TOML file; every field has a sensible default so
// running without a config file works. The loaded Config is read-only for
// the rest of the program.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the ambient settings the parser and CLI need.
type Config struct {
	// WorkDir is the sandbox root for local file references. Defaults to
	// the process working directory.
	WorkDir string `toml:"work_dir"`

	// DefaultRegion is applied to parsed commands that carry no explicit
	// --region flag. Empty means no default.
	DefaultRegion string `toml:"default_region"`

	// HistoryPath is the SQLite database recording successful parses.
	// Empty disables history.
	HistoryPath string `toml:"history_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{}
}

// Load reads a TOML config file. A missing file is not an error: defaults
// apply. Relative WorkDir is resolved against the config file's directory
// so the sandbox does not drift with the process working directory.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	base := filepath.Dir(path)
	if cfg.WorkDir != "" && !filepath.IsAbs(cfg.WorkDir) {
		cfg.WorkDir = filepath.Join(base, cfg.WorkDir)
	}
	if cfg.HistoryPath != "" && !filepath.IsAbs(cfg.HistoryPath) {
		cfg.HistoryPath = filepath.Join(base, cfg.HistoryPath)
	}
	return cfg, nil
}
