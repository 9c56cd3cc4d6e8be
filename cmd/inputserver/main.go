package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/junsooki/inputserver/internal/config"
	"github.com/junsooki/inputserver/internal/dispatch"
	"github.com/junsooki/inputserver/internal/input/robot"
	"github.com/junsooki/inputserver/internal/logging"
	"github.com/junsooki/inputserver/internal/permissions"
	"github.com/junsooki/inputserver/internal/transport"
)

var version = "0.1.0"

func main() {
	cfg := config.ParseFlags()

	if cfg.ShowVersion {
		fmt.Printf("inputserver version %s\n", version)
		return
	}

	if cfg.ConfigFile != "" {
		f, err := config.LoadFile(cfg.ConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inputserver: %v\n", err)
			os.Exit(1)
		}
		cfg.Merge(f)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "inputserver: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	fallback, _ := cfg.FallbackRune()

	logger, atom, err := logging.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inputserver: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Input server starting",
		zap.String("version", version),
		zap.String("source", cfg.Source),
		zap.String("config", cfg.ConfigFile),
		zap.String("fallback_key", string(fallback)),
		zap.Bool("warn_ignored", cfg.WarnIgnored),
	)

	// Check permissions.
	if !cfg.SkipPermissionCheck {
		if err := permissions.CheckInputAccess(); err != nil {
			logger.Fatal("Cannot inject input", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config reload only touches the log level.
	if cfg.ConfigFile != "" {
		err := config.Watch(ctx, cfg.ConfigFile, logger, func(f *config.File) {
			if err := logging.SetLevel(atom, f.LogLevel); err != nil {
				logger.Warn("Ignoring invalid log level", zap.String("level", f.LogLevel), zap.Error(err))
				return
			}
			logger.Info("Log level updated", zap.String("level", atom.Level().String()))
		})
		if err != nil {
			logger.Warn("Config file will not be reloaded", zap.Error(err))
		}
	}

	// Command source.
	var src transport.LineSource
	if cfg.Source == config.SourceStdin {
		src = transport.NewReaderSource(os.Stdin)
	} else {
		src, err = transport.DialWebSocket(ctx, cfg.Source, logger)
		if err != nil {
			logger.Fatal("Cannot open command source", zap.String("source", cfg.Source), zap.Error(err))
		}
	}
	defer src.Close()

	// Input injector.
	injector := robot.NewInjector()

	d := dispatch.New(injector, os.Stderr, logger, dispatch.Options{
		FallbackKey: fallback,
		WarnIgnored: cfg.WarnIgnored,
	})

	// The dispatcher owns the read loop; main only waits for it or a signal.
	done := make(chan error, 1)
	go func() {
		done <- d.Run(src)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Dispatcher stopped", zap.Error(err))
		}
		logger.Info("Command stream closed")
	case <-ctx.Done():
		logger.Info("Shutting down...")
	}
}
