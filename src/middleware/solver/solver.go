// Package solver is the captcha solving capability used by the legacy login
// flow. A Solver turns a captcha PNG into its 4-digit answer; implementations
// are interchangeable and the login state machines never care which one is
// behind the interface.
package solver

import (
	"fmt"

	helpers "lgsignage/src/middleware/helpers"
)

type Solver interface {
	// Solve returns the 4-digit captcha answer, or an error wrapping
	// helpers.ErrCaptchaSolveFailure when no confident answer exists.
	Solve(image []byte) (string, error)
}

// StaticSolver answers every captcha with a pre-provided value. Used when the
// caller already knows the answer (automation, tests).
type StaticSolver struct {
	Answer string
}

func (s StaticSolver) Solve(image []byte) (string, error) {
	if len(s.Answer) != 4 {
		return "", fmt.Errorf("%w: static answer %q is not 4 digits", helpers.ErrCaptchaSolveFailure, s.Answer)
	}
	return s.Answer, nil
}

func keepDigits(text string) string {
	digits := make([]rune, 0, len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	return string(digits)
}
