package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDisplay(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	assert.NoError(t, checkDisplay(env(map[string]string{"DISPLAY": ":0"})))
	assert.NoError(t, checkDisplay(env(map[string]string{"DISPLAY": ":1", "WAYLAND_DISPLAY": "wayland-0"})))
	assert.ErrorIs(t, checkDisplay(env(map[string]string{"WAYLAND_DISPLAY": "wayland-0"})), ErrNoInputAccess)
	assert.ErrorIs(t, checkDisplay(env(nil)), ErrNoInputAccess)
}
