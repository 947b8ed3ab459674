package funfact

// Check is the aggregated result of verifying a value against a fact: an
// ordered list of violation descriptions. An empty Check means the fact is
// satisfied. Checks combine by concatenation (logical AND across sibling
// facts) and by per-entry relabeling (path annotation across structural
// lifts).
type Check struct {
	violations []string
}

// NewCheck builds a Check from explicit violation messages.
func NewCheck(violations ...string) Check {
	return Check{violations: violations}
}

// checkFromErr converts a mutation outcome into a Check: nil becomes the
// empty Check, an error becomes a single violation entry.
func checkFromErr(err error) Check {
	if err == nil {
		return Check{}
	}
	return Check{violations: []string{err.Error()}}
}

// OK reports whether the fact was satisfied.
func (c Check) OK() bool { return len(c.violations) == 0 }

// Errors returns the violation messages, in order.
func (c Check) Errors() []string { return c.violations }

// Err returns nil when the check passed, and a *CheckError carrying every
// violation otherwise.
func (c Check) Err() error {
	if c.OK() {
		return nil
	}
	return &CheckError{Violations: c.violations}
}

// Map transforms every violation message. Structural lifts use it to prepend
// path labels.
func (c Check) Map(f func(string) string) Check {
	if c.OK() {
		return c
	}
	out := make([]string, len(c.violations))
	for i, v := range c.violations {
		out[i] = f(v)
	}
	return Check{violations: out}
}

// Merge concatenates two Checks. The result is empty only when both are.
func (c Check) Merge(other Check) Check {
	if other.OK() {
		return c
	}
	if c.OK() {
		return other
	}
	merged := make([]string, 0, len(c.violations)+len(other.violations))
	merged = append(merged, c.violations...)
	merged = append(merged, other.violations...)
	return Check{violations: merged}
}

// CheckError is the error form of a failed Check.
type CheckError struct {
	Violations []string
}

func (e *CheckError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "constraint violated"
	case 1:
		return "constraint violated: " + e.Violations[0]
	default:
		msg := "constraints violated:"
		for _, v := range e.Violations {
			msg += "\n  - " + v
		}
		return msg
	}
}
