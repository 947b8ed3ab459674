package funfact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExhausted reports that the entropy buffer ran out mid-operation.
// Recoverable in principle with a larger buffer, but inside Build or Satisfy
// it terminates the call.
var ErrExhausted = errors.New("entropy exhausted")

// ErrEmptyCandidates reports a choice among zero candidates.
var ErrEmptyCandidates = errors.New("no candidates to choose from")

// Violation is the soft error produced when a mutation replayed under a
// check-only generator would have needed entropy to repair the value. It is
// how verification failures travel out of the mutation code path; Check
// collects it, callers normally never see it as an error.
type Violation struct {
	Reason string
}

func (v *Violation) Error() string { return v.Reason }

// Violationf builds a Violation from a format string. Custom facts use it to
// report labeled failures from their check-only branch.
func Violationf(format string, args ...any) *Violation {
	return &Violation{Reason: fmt.Sprintf(format, args...)}
}

// UnsatisfiedError reports that Satisfy hit its attempt ceiling. It signals a
// misconfigured or unsatisfiable fact, not a transient fault: retrying with
// the same fact and buffer cannot help.
type UnsatisfiedError struct {
	Attempts int
	Last     Check
}

func (e *UnsatisfiedError) Error() string {
	return fmt.Sprintf("could not satisfy the fact after %d attempts; last failure: %s",
		e.Attempts, strings.Join(e.Last.Errors(), "; "))
}

// BruteError reports that brute-force mutation hit its iteration ceiling.
type BruteError struct {
	Limit  int
	Reason string
}

func (e *BruteError) Error() string {
	return fmt.Sprintf("exceeded %d brute-force iterations; last failure: %s", e.Limit, e.Reason)
}
