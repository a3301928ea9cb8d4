package tracefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single trace line.
const maxLineSize = 1 << 20

// ErrMalformed reports a line that does not have the shape a transform needs.
var ErrMalformed = errors.New("malformed line")

// LineError annotates an error with the input line it occurred on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Scan calls fn for every line of r with surrounding whitespace removed.
// It returns the number of lines read. Scanning stops at the first error
// returned by fn.
func Scan(r io.Reader, fn func(line string) error) (int, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for s.Scan() {
		n++
		if err := fn(strings.TrimSpace(s.Text())); err != nil {
			return n, &LineError{Line: n, Err: err}
		}
	}
	if err := s.Err(); err != nil {
		return n, fmt.Errorf("read input: %w", err)
	}
	return n, nil
}

// Fields splits line on commas into at most n fields. n < 0 means no limit.
func Fields(line string, n int) []string {
	return strings.SplitN(line, ",", n)
}

// Malformed builds an ErrMalformed error with a short description.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
