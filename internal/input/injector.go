package input

// Injector injects input events into the system.
//
// Calls are synchronous and take effect on the global OS input state
// before returning.
type Injector interface {
	MoveMouse(x, y int) error
	Click(button MouseButton) error
	KeyDown(key rune) error
	KeyUp(key rune) error
	KeyTap(key rune) error
	ScrollVertical(amount int) error
}
