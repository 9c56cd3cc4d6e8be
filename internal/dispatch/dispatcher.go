// Package dispatch runs the read-decode-dispatch loop that turns command
// lines into injected input.
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/junsooki/inputserver/internal/input"
	"github.com/junsooki/inputserver/internal/transport"
)

// DefaultFallbackKey is used for a KeyPress or KeyClick with an empty key.
const DefaultFallbackKey = 'a'

// maxConsecutiveReadErrors bounds back-to-back stream I/O failures. A
// source that keeps failing is treated as exhausted instead of spinning.
// Rejected lines never count toward it.
const maxConsecutiveReadErrors = 1024

// Options tune the dispatcher's handling of semantically odd commands.
type Options struct {
	// FallbackKey replaces an empty key. Zero means DefaultFallbackKey.
	FallbackKey rune
	// WarnIgnored logs a warning for unknown buttons and empty keys,
	// which are otherwise handled silently.
	WarnIgnored bool
}

// Dispatcher decodes command lines and forwards them to an Injector.
// It keeps no state between lines.
type Dispatcher struct {
	injector input.Injector
	diag     io.Writer
	logger   *zap.Logger
	opts     Options
}

// New creates a Dispatcher. Parse failures are written to diag, one line
// each.
func New(injector input.Injector, diag io.Writer, logger *zap.Logger, opts Options) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.FallbackKey == 0 {
		opts.FallbackKey = DefaultFallbackKey
	}
	return &Dispatcher{
		injector: injector,
		diag:     diag,
		logger:   logger,
		opts:     opts,
	}
}

// Run processes lines from src until it is exhausted. Unreadable lines are
// skipped silently and unparseable lines are reported on the diagnostic
// writer; neither stops the loop. Run returns nil at end of stream.
func (d *Dispatcher) Run(src transport.LineSource) error {
	failures := 0
	for {
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			d.logger.Debug("Command stream closed")
			return nil
		}
		if transport.IsLineError(err) {
			failures = 0
			d.logger.Debug("Skipping unreadable line", zap.Error(err))
			continue
		}
		if err != nil {
			failures++
			d.logger.Debug("Command source read failed", zap.Int("failures", failures), zap.Error(err))
			if failures >= maxConsecutiveReadErrors {
				d.logger.Debug("Command source keeps failing, treating it as closed")
				return nil
			}
			continue
		}
		failures = 0
		d.HandleLine(line)
	}
}

// HandleLine decodes and dispatches a single line.
func (d *Dispatcher) HandleLine(line string) {
	cmd, err := input.Decode([]byte(line))
	if err != nil {
		d.logger.Debug("Decode failed", zap.Error(err))
		fmt.Fprintf(d.diag, "Failed to parse command: %s\n", line)
		return
	}
	d.Dispatch(cmd)
}

// Dispatch invokes the injector action for cmd. Injector errors are logged
// at debug level and otherwise ignored. A command whose payload does not
// match its type is dropped.
func (d *Dispatcher) Dispatch(cmd input.Command) {
	if !cmd.Valid() {
		d.logger.Debug("Dropping command without matching payload", zap.String("command", string(cmd.Type)))
		return
	}

	var err error
	switch cmd.Type {
	case input.CommandMouseMove:
		m := cmd.MouseMove
		err = d.injector.MoveMouse(int(m.X), int(m.Y))

	case input.CommandMouseClick:
		button, ok := input.ParseMouseButton(cmd.MouseClick.Button)
		if !ok {
			if d.opts.WarnIgnored {
				d.logger.Warn("Ignoring click with unknown button", zap.String("button", cmd.MouseClick.Button))
			}
			return
		}
		err = d.injector.Click(button)

	case input.CommandKeyPress:
		err = d.injector.KeyDown(d.firstChar(cmd.KeyPress.Key))

	case input.CommandKeyClick:
		err = d.injector.KeyTap(d.firstChar(cmd.KeyClick.Key))

	case input.CommandScroll:
		err = d.injector.ScrollVertical(int(cmd.Scroll.Y))
	}

	if err != nil {
		d.logger.Debug("Injection failed", zap.String("command", string(cmd.Type)), zap.Error(err))
		return
	}
	d.logger.Debug("Dispatched command", zap.String("command", string(cmd.Type)))
}

// firstChar returns the first character of key, or the fallback key when
// key is empty. The rest of key is dropped.
func (d *Dispatcher) firstChar(key string) rune {
	if key == "" {
		if d.opts.WarnIgnored {
			d.logger.Warn("Empty key, using fallback", zap.String("fallback", string(d.opts.FallbackKey)))
		}
		return d.opts.FallbackKey
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r
}
