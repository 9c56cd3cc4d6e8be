package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned for a "type" tag that names no variant.
	ErrUnknownCommand = errors.New("unknown command type")
	// ErrMissingField is returned when the envelope or payload lacks a required key.
	ErrMissingField = errors.New("missing field")
)

const (
	tagField     = "type"
	payloadField = "payload"
)

// Decode parses one line of the form {"type":"<Variant>","payload":{...}}.
//
// Keys are matched exactly, every payload field is required and integers
// must fit in 32 bits. Unknown extra keys are ignored.
func Decode(line []byte) (Command, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(line, &envelope); err != nil {
		return Command{}, fmt.Errorf("decode envelope: %w", err)
	}

	var tag string
	if err := requireField(envelope, tagField, &tag); err != nil {
		return Command{}, err
	}
	raw, ok := envelope[payloadField]
	if !ok || isNull(raw) {
		return Command{}, fmt.Errorf("%w: %s", ErrMissingField, payloadField)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Command{}, fmt.Errorf("decode %s payload: %w", tag, err)
	}

	cmd := Command{Type: CommandType(tag)}
	switch cmd.Type {
	case CommandMouseMove:
		var m MouseMove
		if err := requireFields(payload, fieldRef{"x", &m.X}, fieldRef{"y", &m.Y}); err != nil {
			return Command{}, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		cmd.MouseMove = &m
	case CommandMouseClick:
		var m MouseClick
		if err := requireFields(payload, fieldRef{"button", &m.Button}); err != nil {
			return Command{}, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		cmd.MouseClick = &m
	case CommandKeyPress:
		var k KeyPress
		if err := requireFields(payload, fieldRef{"key", &k.Key}); err != nil {
			return Command{}, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		cmd.KeyPress = &k
	case CommandKeyClick:
		var k KeyClick
		if err := requireFields(payload, fieldRef{"key", &k.Key}); err != nil {
			return Command{}, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		cmd.KeyClick = &k
	case CommandScroll:
		var s Scroll
		if err := requireFields(payload, fieldRef{"x", &s.X}, fieldRef{"y", &s.Y}); err != nil {
			return Command{}, fmt.Errorf("decode %s payload: %w", tag, err)
		}
		cmd.Scroll = &s
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, tag)
	}
	return cmd, nil
}

type fieldRef struct {
	name string
	dst  any
}

func requireFields(obj map[string]json.RawMessage, fields ...fieldRef) error {
	for _, f := range fields {
		if err := requireField(obj, f.name, f.dst); err != nil {
			return err
		}
	}
	return nil
}

// requireField decodes obj[name] into dst. A JSON null counts as missing,
// since encoding/json would otherwise leave dst untouched.
func requireField(obj map[string]json.RawMessage, name string, dst any) error {
	raw, ok := obj[name]
	if !ok || isNull(raw) {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
