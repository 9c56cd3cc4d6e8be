package transport

import "errors"

// ErrInvalidUTF8 is returned for a line that is not valid UTF-8. The line
// is consumed; the next ReadLine continues after it.
var ErrInvalidUTF8 = errors.New("line is not valid UTF-8")

// LineSource yields command lines without their terminators.
//
// ReadLine returns io.EOF once the stream is exhausted. Errors for which
// IsLineError is true cover one consumed line; other errors come from the
// underlying stream.
type LineSource interface {
	ReadLine() (string, error)
	Close() error
}

// IsLineError reports whether err rejects a single line while the source
// itself stays healthy.
func IsLineError(err error) bool {
	return errors.Is(err, ErrInvalidUTF8) || errors.Is(err, ErrBinaryMessage)
}
