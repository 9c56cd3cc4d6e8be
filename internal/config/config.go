package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap/zapcore"
)

// EnvConfigFile names the YAML config file when -config is not given.
const EnvConfigFile = "INPUTSERVER_CONFIG"

// SourceStdin selects standard input as the command source.
const SourceStdin = "stdin"

const (
	defaultLogLevel    = "warn"
	defaultFallbackKey = "a"
)

// Config holds all runtime configuration.
type Config struct {
	Source              string
	ConfigFile          string
	LogLevel            string
	FallbackKey         string
	WarnIgnored         bool
	SkipPermissionCheck bool
	ShowVersion         bool

	// explicit records flags given on the command line; they win over the
	// config file.
	explicit map[string]bool
}

// ParseFlags parses the process command line. Invalid flags print usage
// and exit.
func ParseFlags() *Config {
	cfg, _ := parse(flag.CommandLine, os.Args[1:])
	return cfg
}

func parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	fs.StringVar(&cfg.Source, "source", SourceStdin, `Command source: "stdin" or a ws:// / wss:// URL`)
	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to YAML config file (default $"+EnvConfigFile+")")
	fs.StringVar(&cfg.LogLevel, "log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.FallbackKey, "fallback-key", defaultFallbackKey, "Character sent for an empty key field")
	fs.BoolVar(&cfg.WarnIgnored, "warn-ignored", false, "Log a warning for ignored buttons and empty keys")
	fs.BoolVar(&cfg.SkipPermissionCheck, "skip-permission-check", false, "Do not verify input-injection access at startup")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		cfg.explicit[f.Name] = true
	})

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv(EnvConfigFile)
	}
	return cfg, nil
}

// Merge fills every setting not given on the command line from f.
func (c *Config) Merge(f *File) {
	if f == nil {
		return
	}
	if !c.explicit["source"] && f.Source != "" {
		c.Source = f.Source
	}
	if !c.explicit["log-level"] && f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if !c.explicit["fallback-key"] && f.FallbackKey != "" {
		c.FallbackKey = f.FallbackKey
	}
	if !c.explicit["warn-ignored"] && f.WarnIgnored != nil {
		c.WarnIgnored = *f.WarnIgnored
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.FallbackRune(); err != nil {
		errs = append(errs, err)
	}
	if c.Source != SourceStdin && !strings.HasPrefix(c.Source, "ws://") && !strings.HasPrefix(c.Source, "wss://") {
		errs = append(errs, fmt.Errorf("source %q: want %q or a ws:// or wss:// URL", c.Source, SourceStdin))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// FallbackRune returns the fallback key, which must be exactly one character.
func (c *Config) FallbackRune() (rune, error) {
	if utf8.RuneCountInString(c.FallbackKey) != 1 {
		return 0, fmt.Errorf("fallback key %q: want exactly one character", c.FallbackKey)
	}
	r, _ := utf8.DecodeRuneInString(c.FallbackKey)
	if r == utf8.RuneError {
		return 0, fmt.Errorf("fallback key %q: invalid UTF-8", c.FallbackKey)
	}
	return r, nil
}
