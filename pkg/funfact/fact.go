// Package funfact provides composable constraints ("facts") over arbitrary
// data types. A fact declared once serves two purposes: verifying that a
// value satisfies the constraint (Check), and molding an existing or freshly
// synthesized value into a shape that satisfies it (Satisfy, Build), driven
// by a caller-supplied buffer of entropy bytes.
//
// Facts compose structurally: primitives (Eq, InSlice, Brute, ...) constrain
// a value directly, while Lens, Prism and Traversal lift a fact about a
// sub-part into a fact about the containing whole. An ordered collection of
// facts (Facts) is itself a fact.
//
// Verification is derived from mutation: checking a value replays its
// mutation under a check-only generator, where every attempted entropy draw
// surfaces as a violation instead of new data. Keeping one code path for both
// directions means the two can never drift apart.
package funfact

import (
	"fmt"
	"reflect"
)

// deepEqual is the equality every fact reasons with. reflect.DeepEqual keeps
// the contract open to slice- and map-bearing subject types that plain ==
// would reject.
func deepEqual(a, b any) bool { return reflect.DeepEqual(a, b) }

// satisfyAttempts bounds the mutate+check loop in Satisfy, in case repetition
// helps ease into the constraint.
const satisfyAttempts = 7

// Fact is a declarative constraint on values of type T.
//
// Mutate must be convergent: it returns a value strictly no further from
// satisfying the constraint, and fails only on entropy exhaustion (or, under
// a check-only generator, with a *Violation describing the repair it was not
// allowed to make).
//
// Check must be equivalent to replaying Mutate under a check-only generator;
// primitives get exactly that by delegating to CheckWith, structural facts
// recurse and relabel instead.
//
// Advance updates internal bookkeeping between items of a sequence walk. It
// must be invoked once per successive item, after that item's check or build;
// stateless facts make it a no-op.
type Fact[T any] interface {
	Check(obj T) Check
	Mutate(obj T, g *Generator) (T, error)
	Advance(obj T)
}

// Mutator is the mutation half of a Fact, the part CheckWith needs.
type Mutator[T any] interface {
	Mutate(obj T, g *Generator) (T, error)
}

// CheckWith derives a Check from a mutation: it replays m.Mutate against a
// check-only generator and converts any observed change or reported
// violation into violation text. Fact implementations use it as their Check
// method body.
func CheckWith[T any](m Mutator[T], obj T) Check {
	out, err := m.Mutate(obj, newChecker())
	if err != nil {
		return checkFromErr(err)
	}
	if !reflect.DeepEqual(out, obj) {
		return NewCheck(fmt.Sprintf("mutation would change %+v into %+v", obj, out))
	}
	return Check{}
}

// Satisfy mutates obj until the fact's check comes back clean, re-running the
// mutate+check pair at most seven times. Failure to converge within that
// bound returns an *UnsatisfiedError carrying the last violation list; it
// signals an unsatisfiable or misconfigured fact, not a transient fault.
func Satisfy[T any](f Fact[T], obj T, g *Generator) (T, error) {
	var zero T
	var last Check
	for i := 0; i < satisfyAttempts; i++ {
		next, err := f.Mutate(obj, g)
		if err != nil {
			return zero, err
		}
		c := f.Check(next)
		if c.OK() {
			return next, nil
		}
		last = c
		obj = next
	}
	return zero, &UnsatisfiedError{Attempts: satisfyAttempts, Last: last}
}

// MustSatisfy is Satisfy for callers that treat non-convergence as fatal.
func MustSatisfy[T any](f Fact[T], obj T, g *Generator) T {
	obj, err := Satisfy(f, obj, g)
	if err != nil {
		panic(err)
	}
	return obj
}

// Build draws an arbitrary T and satisfies the fact with it.
func Build[T any](f Fact[T], g *Generator) (T, error) {
	obj, err := Draw[T](g, func() string { return "drawing an initial value" })
	if err != nil {
		var zero T
		return zero, err
	}
	return Satisfy(f, obj, g)
}

// MustBuild is Build for callers that treat failure as fatal.
func MustBuild[T any](f Fact[T], g *Generator) T {
	obj, err := Build(f, g)
	if err != nil {
		panic(err)
	}
	return obj
}

// BuildSeq builds n successive values, advancing the fact once after each so
// that sequence-dependent facts see every produced item.
func BuildSeq[T any](f Fact[T], n int, g *Generator) ([]T, error) {
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		obj, err := Build(f, g)
		if err != nil {
			return nil, fmt.Errorf("building item %d: %w", i, err)
		}
		f.Advance(obj)
		out = append(out, obj)
	}
	return out, nil
}

// CheckSeq checks a sequence of values item by item, advancing the fact once
// after each. Violations are prefixed with the item index.
func CheckSeq[T any](f Fact[T], objs []T) Check {
	var c Check
	for i, obj := range objs {
		c = c.Merge(f.Check(obj).Map(func(e string) string {
			return fmt.Sprintf("item %d: %s", i, e)
		}))
		f.Advance(obj)
	}
	return c
}

// Facts is an ordered collection of facts acting as a single fact: its check
// is the concatenation of every member's check, its mutation is a pipeline
// folding each member over the previous member's output (order matters; see
// Brute for the ordering hazard), and advancing broadcasts to every member.
type Facts[T any] []Fact[T]

func (fs Facts[T]) Check(obj T) Check {
	var c Check
	for _, f := range fs {
		c = c.Merge(f.Check(obj))
	}
	return c
}

func (fs Facts[T]) Mutate(obj T, g *Generator) (T, error) {
	for _, f := range fs {
		var err error
		obj, err = f.Mutate(obj, g)
		if err != nil {
			var zero T
			return zero, err
		}
	}
	return obj, nil
}

func (fs Facts[T]) Advance(obj T) {
	for _, f := range fs {
		f.Advance(obj)
	}
}
