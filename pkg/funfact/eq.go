package funfact

import "fmt"

type eqOp int

const (
	opEqual eqOp = iota
	opNotEqual
)

type eqFact[T any] struct {
	label    string
	constant T
	op       eqOp
}

// Eq constrains a value to equal a constant. Mutation overwrites the value
// with the constant outright, consuming no entropy.
func Eq[T any](label string, constant T) Fact[T] {
	return &eqFact[T]{label: label, constant: constant, op: opEqual}
}

// Ne constrains a value to differ from a constant. Mutation redraws fresh
// arbitrary values until one differs, bounded only by the available entropy.
func Ne[T any](label string, constant T) Fact[T] {
	return &eqFact[T]{label: label, constant: constant, op: opNotEqual}
}

func (f *eqFact[T]) Check(obj T) Check {
	return CheckWith[T](f, obj)
}

func (f *eqFact[T]) Mutate(obj T, g *Generator) (T, error) {
	switch f.op {
	case opEqual:
		if deepEqual(obj, f.constant) {
			return obj, nil
		}
		if g.CheckOnly() {
			return obj, Violationf("%s: expected %v to equal %v", f.label, obj, f.constant)
		}
		return f.constant, nil

	default: // opNotEqual
		if !deepEqual(obj, f.constant) {
			return obj, nil
		}
		for {
			next, err := Draw[T](g, func() string {
				return fmt.Sprintf("%s: expected a value other than %v", f.label, f.constant)
			})
			if err != nil {
				var zero T
				return zero, err
			}
			if !deepEqual(next, f.constant) {
				return next, nil
			}
		}
	}
}

func (f *eqFact[T]) Advance(T) {}
