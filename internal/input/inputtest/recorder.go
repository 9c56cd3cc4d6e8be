// Package inputtest provides a recording input.Injector for tests.
package inputtest

import (
	"fmt"

	"github.com/junsooki/inputserver/internal/input"
)

var _ input.Injector = (*Recorder)(nil)

// Recorder records every injector call as a readable string, e.g.
// "move(100,200)" or "tap(a)". Err, when set, is returned from every call
// after it is recorded.
type Recorder struct {
	Calls []string
	Err   error
}

func (r *Recorder) record(format string, args ...any) error {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
	return r.Err
}

func (r *Recorder) MoveMouse(x, y int) error { return r.record("move(%d,%d)", x, y) }

func (r *Recorder) Click(button input.MouseButton) error { return r.record("click(%s)", button) }

func (r *Recorder) KeyDown(key rune) error { return r.record("down(%c)", key) }

func (r *Recorder) KeyUp(key rune) error { return r.record("up(%c)", key) }

func (r *Recorder) KeyTap(key rune) error { return r.record("tap(%c)", key) }

func (r *Recorder) ScrollVertical(amount int) error { return r.record("scroll(%d)", amount) }
