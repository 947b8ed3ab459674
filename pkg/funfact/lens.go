package funfact

import (
	"errors"
	"fmt"
)

type lensFact[O, T any] struct {
	label string
	get   func(O) T
	set   func(O, T) O
	inner Fact[T]
}

// Lens lifts a fact about a mandatory sub-part into a fact about the whole.
// The accessor is a caller-authored pure get/set pair: get projects the
// sub-part out of the whole, set returns a new whole with the sub-part
// replaced. Violations are prefixed with the lens label.
func Lens[O, T any](label string, get func(O) T, set func(O, T) O, inner Fact[T]) Fact[O] {
	return &lensFact[O, T]{label: label, get: get, set: set, inner: inner}
}

func (f *lensFact[O, T]) prefix(e string) string {
	return fmt.Sprintf("lens(%s) > %s", f.label, e)
}

func (f *lensFact[O, T]) Check(obj O) Check {
	return f.inner.Check(f.get(obj)).Map(f.prefix)
}

func (f *lensFact[O, T]) Mutate(obj O, g *Generator) (O, error) {
	t, err := f.inner.Mutate(f.get(obj), g)
	if err != nil {
		var zero O
		return zero, relabel(err, f.prefix)
	}
	return f.set(obj, t), nil
}

func (f *lensFact[O, T]) Advance(obj O) {
	f.inner.Advance(f.get(obj))
}

// relabel applies a path prefix to a violation travelling out of an inner
// mutation, so that derived checks of enclosing facts stay labeled. Other
// errors pass through untouched.
func relabel(err error, prefix func(string) string) error {
	var v *Violation
	if errors.As(err, &v) {
		return &Violation{Reason: prefix(v.Reason)}
	}
	return err
}
