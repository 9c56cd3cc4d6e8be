package permissions

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>

int isTrustedForAccessibility(int prompt) {
    CFMutableDictionaryRef opts = CFDictionaryCreateMutable(NULL, 0, NULL, NULL);
    CFDictionarySetValue(opts, kAXTrustedCheckOptionPrompt, prompt ? kCFBooleanTrue : kCFBooleanFalse);
    Boolean trusted = AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
    return trusted ? 1 : 0;
}
*/
import "C"

import "fmt"

// HasAccessibility returns true if the process may post synthetic input events.
func HasAccessibility() bool {
	return C.isTrustedForAccessibility(0) != 0
}

// RequestAccessibility prompts the user for Accessibility permission.
// Returns true if already granted. Otherwise macOS shows System Settings.
func RequestAccessibility() bool {
	return C.isTrustedForAccessibility(1) != 0
}

// CheckInputAccess fails unless the process is trusted for Accessibility.
// When it is not, the system prompt is raised before returning.
func CheckInputAccess() error {
	if HasAccessibility() {
		return nil
	}
	if RequestAccessibility() {
		return nil
	}
	return fmt.Errorf("%w: grant Accessibility permission in System Settings and restart", ErrNoInputAccess)
}
