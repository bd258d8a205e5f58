package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSeconds is returned when the input is not a whole number of seconds.
var ErrInvalidSeconds = errors.New("invalid seconds")

// ParseSeconds parses a whole number of seconds. Surrounding whitespace and a
// leading sign are accepted; anything outside the signed 32-bit range is
// rejected the same way as non-numeric input.
func ParseSeconds(input string) (int, time.Duration, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSeconds, input)
	}
	return int(n), time.Duration(n) * time.Second, nil
}
