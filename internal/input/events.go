package input

// CommandType identifies the variant of a Command.
type CommandType string

const (
	CommandMouseMove  CommandType = "MouseMove"
	CommandMouseClick CommandType = "MouseClick"
	CommandKeyPress   CommandType = "KeyPress"
	CommandKeyClick   CommandType = "KeyClick"
	CommandScroll     CommandType = "Scroll"
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	}
	return "unknown"
}

// ParseMouseButton maps the wire name of a button to a MouseButton.
// Only "left", "right" and "middle" are recognized.
func ParseMouseButton(name string) (MouseButton, bool) {
	switch name {
	case "left":
		return MouseButtonLeft, true
	case "right":
		return MouseButtonRight, true
	case "middle":
		return MouseButtonMiddle, true
	}
	return 0, false
}

// Command is one decoded input request. Exactly one of the payload
// pointers is set, matching Type.
type Command struct {
	Type CommandType

	MouseMove  *MouseMove
	MouseClick *MouseClick
	KeyPress   *KeyPress
	KeyClick   *KeyClick
	Scroll     *Scroll
}

// Valid reports whether Type is known and its payload pointer is set.
func (c Command) Valid() bool {
	switch c.Type {
	case CommandMouseMove:
		return c.MouseMove != nil
	case CommandMouseClick:
		return c.MouseClick != nil
	case CommandKeyPress:
		return c.KeyPress != nil
	case CommandKeyClick:
		return c.KeyClick != nil
	case CommandScroll:
		return c.Scroll != nil
	}
	return false
}

// MouseMove moves the pointer to absolute screen coordinates.
type MouseMove struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// MouseClick clicks Button at the current pointer position.
type MouseClick struct {
	Button string `json:"button"`
}

// KeyPress presses Key down without releasing it.
type KeyPress struct {
	Key string `json:"key"`
}

// KeyClick presses and releases Key.
type KeyClick struct {
	Key string `json:"key"`
}

// Scroll scrolls vertically by Y. X is accepted on the wire but unused.
type Scroll struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}
