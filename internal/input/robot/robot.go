// Package robot injects input through robotgo, which wraps CGEvent on
// macOS, SendInput on Windows and XTest on Linux.
package robot

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/junsooki/inputserver/internal/input"
)

// Injector is the robotgo-backed input.Injector.
type Injector struct {
	keyTap      func(key string, args ...interface{}) error
	unicodeType func(r uint32, args ...int)
}

func NewInjector() *Injector {
	return &Injector{
		keyTap:      robotgo.KeyTap,
		unicodeType: robotgo.UnicodeType,
	}
}

func (inj *Injector) MoveMouse(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (inj *Injector) Click(button input.MouseButton) error {
	name, err := buttonName(button)
	if err != nil {
		return err
	}
	robotgo.Click(name)
	return nil
}

func (inj *Injector) KeyDown(key rune) error {
	return robotgo.KeyToggle(string(key), "down")
}

func (inj *Injector) KeyUp(key rune) error {
	return robotgo.KeyToggle(string(key), "up")
}

// KeyTap taps the key named by key. Characters robotgo has no key name for
// are typed as unicode instead.
func (inj *Injector) KeyTap(key rune) error {
	if err := inj.keyTap(string(key)); err != nil {
		inj.unicodeType(uint32(key))
	}
	return nil
}

func (inj *Injector) ScrollVertical(amount int) error {
	robotgo.Scroll(0, amount)
	return nil
}

// buttonName returns robotgo's name for a button; robotgo calls the middle
// button "center".
func buttonName(b input.MouseButton) (string, error) {
	switch b {
	case input.MouseButtonLeft:
		return "left", nil
	case input.MouseButtonRight:
		return "right", nil
	case input.MouseButtonMiddle:
		return "center", nil
	}
	return "", fmt.Errorf("unsupported mouse button %d", int(b))
}

var _ input.Injector = (*Injector)(nil)
