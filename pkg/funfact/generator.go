package funfact

import (
	"fmt"
	"math"
	"reflect"

	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/funvibe/funfact/internal/arbitrary"
)

// Mode selects how a Generator responds to entropy draws.
type Mode int

const (
	// ModeBuild consumes entropy bytes to synthesize values.
	ModeBuild Mode = iota
	// ModeCheckOnly refuses to introduce new randomness: any draw degenerates
	// into a reported violation. This is what lets verification reuse the
	// mutation code path as a side-effect-free replay.
	ModeCheckOnly
)

// Generator wraps a finite, caller-supplied entropy buffer behind a cursor.
// It is created fresh per top-level check/build/satisfy call and passed down
// a single call chain; it is never shared between calls.
type Generator struct {
	data []byte
	pos  int
	mode Mode
}

// NewGenerator returns a Build-mode generator over the given entropy bytes.
func NewGenerator(data []byte) *Generator {
	return &Generator{data: data}
}

// Checker returns a CheckOnly generator with no usable entropy.
func (g *Generator) Checker() *Generator {
	return newChecker()
}

func newChecker() *Generator {
	return &Generator{mode: ModeCheckOnly}
}

// Mode returns the generator's mode.
func (g *Generator) Mode() Mode { return g.mode }

// CheckOnly reports whether draws are forbidden.
func (g *Generator) CheckOnly() bool { return g.mode == ModeCheckOnly }

// Remaining reports how many entropy bytes are left.
func (g *Generator) Remaining() int { return len(g.data) - g.pos }

// take consumes n raw bytes from the buffer.
func (g *Generator) take(n int) ([]byte, error) {
	if g.mode == ModeCheckOnly {
		return nil, &Violation{Reason: "entropy drawn during a check-only replay"}
	}
	if g.pos+n > len(g.data) {
		return nil, fmt.Errorf("drawing %d bytes with %d left: %w", n, g.Remaining(), ErrExhausted)
	}
	b := g.data[g.pos : g.pos+n]
	g.pos += n
	return b, nil
}

// Bytes draws n raw entropy bytes.
func (g *Generator) Bytes(n int) ([]byte, error) {
	b, err := g.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// Uint32 draws four bytes and decodes them as a big-endian unsigned integer.
// The consumed chunk is treated as a bitstring and matched with funbit, the
// same codec the rest of the funvibe stack uses for binary data.
func (g *Generator) Uint32() (uint32, error) {
	chunk, err := g.take(4)
	if err != nil {
		return 0, err
	}
	m := funbit.NewMatcher()
	var v int
	funbit.Integer(m, &v, funbit.WithSize(32))
	if _, err := m.Match(funbit.NewBitStringFromBytes(chunk)); err != nil {
		return 0, fmt.Errorf("decoding entropy chunk: %w", err)
	}
	return uint32(v), nil
}

// Uint64 draws a full-width unsigned integer.
func (g *Generator) Uint64() (uint64, error) {
	hi, err := g.Uint32()
	if err != nil {
		return 0, err
	}
	lo, err := g.Uint32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// Intn draws an integer in [0, n). n <= 0 yields 0 without consuming entropy.
func (g *Generator) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	v, err := g.Uint32()
	if err != nil {
		return 0, err
	}
	return int(uint64(v) % uint64(n)), nil
}

// Bool draws a single bit.
func (g *Generator) Bool() (bool, error) {
	b, err := g.take(1)
	if err != nil {
		return false, err
	}
	return b[0]&1 == 1, nil
}

// Float64 draws a value in [0, 1].
func (g *Generator) Float64() (float64, error) {
	v, err := g.Uint32()
	if err != nil {
		return 0, err
	}
	return float64(v) / float64(math.MaxUint32), nil
}

// Draw synthesizes an arbitrary T from the remaining entropy. In CheckOnly
// mode it fails with the supplied reason instead, turning the attempted draw
// into a detected violation. Types with variant validity rules implement
// arbitrary.Interface to take over their own construction.
func Draw[T any](g *Generator, reason func() string) (T, error) {
	var zero T
	if g.CheckOnly() {
		return zero, &Violation{Reason: reason()}
	}
	rv, err := arbitrary.Value(reflect.TypeOf(&zero).Elem(), g)
	if err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

// ChooseFrom picks one element of a non-empty ordered candidate list. In
// CheckOnly mode it fails with the supplied reason instead.
func ChooseFrom[T any](g *Generator, candidates []T, reason func() string) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, ErrEmptyCandidates
	}
	if g.CheckOnly() {
		return zero, &Violation{Reason: reason()}
	}
	i, err := g.Intn(len(candidates))
	if err != nil {
		return zero, err
	}
	return candidates[i], nil
}
