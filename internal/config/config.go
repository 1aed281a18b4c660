// Package config resolves tasklist settings from defaults, TOML config files,
// environment variables and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultFile     = "tasklist.json"
	DefaultLogLevel = "warn"

	// ProjectConfigFile is looked up in the working directory.
	ProjectConfigFile = "tasklist.toml"

	EnvFile     = "TASKLIST_FILE"
	EnvLogLevel = "TASKLIST_LOG_LEVEL"
	EnvNoColor  = "NO_COLOR"
)

type Config struct {
	File     string `toml:"file"`
	Color    bool   `toml:"color"`
	LogLevel string `toml:"log_level"`

	// Files that were read, in load order.
	Sources []string `toml:"-"`
	// Keys found in config files that tasklist does not know.
	Unknown []string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.File = DefaultFile
	cfg.Color = true
	cfg.LogLevel = DefaultLogLevel
}

type flagValues struct {
	file     *string
	config   *string
	noColor  *bool
	logLevel *string
	verbose  *bool
}

func registerFlags(fs *flag.FlagSet) flagValues {
	return flagValues{
		file:     fs.String("file", "", "Task file (.json, .yaml or .yml; default tasklist.json)"),
		config:   fs.String("config", "", "Config file (skips config discovery)"),
		noColor:  fs.Bool("no-color", false, "Disable colored swatches"),
		logLevel: fs.String("log-level", "", "Log level (debug|info|warn|error)"),
		verbose:  fs.Bool("verbose", false, "Shortcut for --log-level debug"),
	}
}

// Load registers tasklist's flags on fs, parses args and resolves the final
// configuration. Positional arguments are rejected.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	fv := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := &Config{}
	setDefaults(cfg)

	if path := strings.TrimSpace(*fv.config); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else {
		for _, path := range []string{findUserConfigFile(), findProjectConfigFile()} {
			if path == "" {
				continue
			}
			if err := loadConfigFile(cfg, path); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	loadFromEnv(cfg)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.File = *fv.file
		case "no-color":
			if *fv.noColor {
				cfg.Color = false
			}
		case "log-level":
			cfg.LogLevel = *fv.logLevel
		}
	})
	if *fv.verbose {
		cfg.LogLevel = "debug"
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	for _, key := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	cfg.Sources = append(cfg.Sources, path)
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvFile)); v != "" {
		cfg.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv(EnvNoColor) != "" {
		cfg.Color = false
	}
}

func finalizeConfig(cfg *Config) error {
	cfg.File = strings.TrimSpace(cfg.File)
	if cfg.File == "" {
		cfg.File = DefaultFile
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if !ValidLogLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log level %q (use debug|info|warn|error)", cfg.LogLevel)
	}
	return nil
}

func ValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// UserConfigPath is where the per-user config file lives, or "" when the OS
// reports no config directory.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "tasklist", "config.toml")
}

func findUserConfigFile() string {
	return existingFile(UserConfigPath())
}

func findProjectConfigFile() string {
	return existingFile(ProjectConfigFile)
}

func existingFile(path string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return path // let the loader report the problem
		}
		return ""
	}
	if info.IsDir() {
		return ""
	}
	return path
}
