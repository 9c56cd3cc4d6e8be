//go:build !darwin && !linux

package permissions

// CheckInputAccess always succeeds; no extra grant is needed here.
func CheckInputAccess() error {
	return nil
}
