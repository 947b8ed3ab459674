package funfact

import "fmt"

type prismFact[O, T any] struct {
	label string
	get   func(O) (T, bool)
	set   func(O, T) O
	inner Fact[T]
}

// Prism lifts a fact about an optionally-present sub-part into a fact about
// the whole. It is typically used for the variants of a sum-type-like value:
// declare the fact once for a variant and it is skipped automatically
// whenever that variant is not the active one.
//
// When get reports the target absent, the check is vacuously empty and
// mutation and advancing are no-ops. When present, Prism behaves like Lens.
func Prism[O, T any](label string, get func(O) (T, bool), set func(O, T) O, inner Fact[T]) Fact[O] {
	return &prismFact[O, T]{label: label, get: get, set: set, inner: inner}
}

func (f *prismFact[O, T]) prefix(e string) string {
	return fmt.Sprintf("prism(%s) > %s", f.label, e)
}

func (f *prismFact[O, T]) Check(obj O) Check {
	t, ok := f.get(obj)
	if !ok {
		return Check{}
	}
	return f.inner.Check(t).Map(f.prefix)
}

func (f *prismFact[O, T]) Mutate(obj O, g *Generator) (O, error) {
	t, ok := f.get(obj)
	if !ok {
		return obj, nil
	}
	t, err := f.inner.Mutate(t, g)
	if err != nil {
		var zero O
		return zero, relabel(err, f.prefix)
	}
	return f.set(obj, t), nil
}

func (f *prismFact[O, T]) Advance(obj O) {
	if t, ok := f.get(obj); ok {
		f.inner.Advance(t)
	}
}
