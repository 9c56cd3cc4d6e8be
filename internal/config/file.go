package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the YAML config file. Empty fields leave the flag value alone.
type File struct {
	Source      string `yaml:"source"`
	LogLevel    string `yaml:"log_level"`
	FallbackKey string `yaml:"fallback_key"`
	WarnIgnored *bool  `yaml:"warn_ignored"`
}

// LoadFile reads and parses the YAML file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &f, nil
}

// Watch reloads path whenever it changes and passes the result to
// onChange until ctx is done. The parent directory is watched so editors
// that replace the file on save are still seen. A file that fails to parse
// is logged and skipped.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange func(*File)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				f, err := LoadFile(abs)
				if err != nil {
					logger.Warn("Config reload failed", zap.String("path", abs), zap.Error(err))
					continue
				}
				logger.Debug("Config file changed", zap.String("path", abs))
				onChange(f)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Config watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
