package permissions

import (
	"fmt"
	"os"
)

// CheckInputAccess requires an X display; injection goes through XTest.
func CheckInputAccess() error {
	return checkDisplay(os.Getenv)
}

func checkDisplay(getenv func(string) string) error {
	if getenv("DISPLAY") != "" {
		return nil
	}
	if getenv("WAYLAND_DISPLAY") != "" {
		return fmt.Errorf("%w: Wayland session without XWayland (DISPLAY unset)", ErrNoInputAccess)
	}
	return fmt.Errorf("%w: DISPLAY is not set", ErrNoInputAccess)
}
