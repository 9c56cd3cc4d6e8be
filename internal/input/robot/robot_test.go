package robot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junsooki/inputserver/internal/input"
)

func TestButtonName(t *testing.T) {
	name, err := buttonName(input.MouseButtonMiddle)
	require.NoError(t, err)
	assert.Equal(t, "center", name)

	_, err = buttonName(input.MouseButton(42))
	assert.Error(t, err)
}

func TestKeyTapFallsBackToUnicode(t *testing.T) {
	var tapped []string
	var typed []uint32
	inj := &Injector{
		keyTap: func(key string, _ ...interface{}) error {
			tapped = append(tapped, key)
			if key == "é" {
				return errors.New("key not found")
			}
			return nil
		},
		unicodeType: func(r uint32, _ ...int) { typed = append(typed, r) },
	}

	require.NoError(t, inj.KeyTap('a'))
	require.NoError(t, inj.KeyTap('é'))

	assert.Equal(t, []string{"a", "é"}, tapped)
	assert.Equal(t, []uint32{'é'}, typed)
}
