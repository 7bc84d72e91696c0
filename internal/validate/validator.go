// Package validate normalizes and constrains untrusted user input before
// it reaches the auth service or storage.
package validate

import (
	"regexp"
	"strings"
)

// Kind selects the constraint set applied after sanitization.
type Kind int

const (
	Username Kind = iota
	Password
	Text
)

// Result carries the sanitized value alongside any violations, in the
// order they were checked. The sanitized value is populated even when
// OK is false; the caller decides whether to use it.
type Result struct {
	OK        bool
	Sanitized string
	Errors    []string
}

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	usernameRe    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	lowercaseRe   = regexp.MustCompile(`[a-z]`)
	uppercaseRe   = regexp.MustCompile(`[A-Z]`)
	digitRe       = regexp.MustCompile(`[0-9]`)
)

const strippedChars = `<>"'%;()&+`

// Sanitize trims the input, removes <script> blocks (case-insensitive,
// shortest match), and strips the characters commonly used in injection
// payloads. Applied to every kind before any constraint check.
func Sanitize(input string) string {
	s := strings.TrimSpace(input)
	s = scriptBlockRe.ReplaceAllString(s, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(strippedChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Check sanitizes input and applies the constraints for kind. Violations
// are reported independently — a username that is both too short and
// malformed yields both messages, in check order.
func Check(input string, kind Kind) Result {
	s := Sanitize(input)
	var errs []string

	switch kind {
	case Username:
		if len(s) < 3 {
			errs = append(errs, "Username must be at least 3 characters")
		}
		if len(s) > 20 {
			errs = append(errs, "Username must be at most 20 characters")
		}
		if !usernameRe.MatchString(s) {
			errs = append(errs, "Username may only contain letters, numbers and underscores")
		}
	case Password:
		// One combined predicate: partial satisfaction still fails with
		// a single message.
		if len(s) < 8 || !lowercaseRe.MatchString(s) || !uppercaseRe.MatchString(s) || !digitRe.MatchString(s) {
			errs = append(errs, "Password must be at least 8 characters with uppercase, lowercase and a number")
		}
	case Text:
		if len(s) > 1000 {
			errs = append(errs, "Text must be at most 1000 characters")
		}
	}

	return Result{OK: len(errs) == 0, Sanitized: s, Errors: errs}
}
