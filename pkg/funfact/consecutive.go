package funfact

import "golang.org/x/exp/constraints"

type consecutiveIntFact[T constraints.Integer] struct {
	label string
	next  T
}

// ConsecutiveInt constrains successive items of a sequence walk to form a run
// of consecutive integers starting at initial. It is stateful: the expected
// value moves forward on every Advance, so one instance must be owned by
// exactly one sequence walk at a time.
func ConsecutiveInt[T constraints.Integer](label string, initial T) Fact[T] {
	return &consecutiveIntFact[T]{label: label, next: initial}
}

func (f *consecutiveIntFact[T]) Check(obj T) Check {
	return CheckWith[T](f, obj)
}

func (f *consecutiveIntFact[T]) Mutate(obj T, g *Generator) (T, error) {
	if obj == f.next {
		return obj, nil
	}
	if g.CheckOnly() {
		return obj, Violationf("%s: expected %v, got %v", f.label, f.next, obj)
	}
	return f.next, nil
}

func (f *consecutiveIntFact[T]) Advance(obj T) {
	f.next = obj + 1
}
