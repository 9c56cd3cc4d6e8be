// Package permissions verifies at startup that the process can inject input.
package permissions

import "errors"

// ErrNoInputAccess is returned when synthetic input cannot be delivered.
var ErrNoInputAccess = errors.New("input injection not available")
