package transport

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// ReaderSource reads newline-delimited lines from an io.Reader such as
// os.Stdin.
type ReaderSource struct {
	r      *bufio.Reader
	closer io.Closer
}

// NewReaderSource wraps r. If r is also an io.Closer, Close closes it.
func NewReaderSource(r io.Reader) *ReaderSource {
	s := &ReaderSource{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// ReadLine returns the next line with "\n" or "\r\n" stripped. A final
// line without a terminator is still returned; io.EOF follows it.
func (s *ReaderSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", io.EOF
		}
	}
	line = trimEOL(line)
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	return line, nil
}

func (s *ReaderSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// trimEOL strips "\n" or "\r\n". A lone trailing "\r" is kept.
func trimEOL(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	line = line[:len(line)-1]
	return strings.TrimSuffix(line, "\r")
}
