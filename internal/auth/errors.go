package auth

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError carries field-level messages in the order the checks
// ran. Recoverable: the caller fixes the input and retries.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// RateLimitError signals a throttled identity along with how long to
// wait before the window reopens.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	mins := int((e.RetryAfter + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return fmt.Sprintf("too many attempts, try again in %d minute(s)", mins)
}
