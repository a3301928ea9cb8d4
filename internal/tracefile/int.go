package tracefile

import (
	"errors"
	"fmt"
)

// ErrOverflow reports a running sum that no longer fits in an int64.
var ErrOverflow = errors.New("integer overflow")

// AddInt64 returns a+b, or an ErrOverflow error when the sum wraps.
func AddInt64(a, b int64) (int64, error) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return s, nil
}
