package funfact

import "fmt"

type traversalFact[O, T any] struct {
	label string
	get   func(O) []T
	set   func(O, int, T) O
	inner Fact[T]
}

// Traversal lifts a fact about each of zero-to-many sub-parts into a fact
// about the whole. get must return the targets in a stable order; set
// replaces the i-th target and returns the new whole.
//
// Checking concatenates the inner check over every target, indexing the label
// as label[i] when there is more than one. Mutating applies the inner
// mutation to each target of the original whole independently, in traversal
// order: no target's outcome depends on a sibling's post-mutation value.
func Traversal[O, T any](label string, get func(O) []T, set func(O, int, T) O, inner Fact[T]) Fact[O] {
	return &traversalFact[O, T]{label: label, get: get, set: set, inner: inner}
}

func (f *traversalFact[O, T]) prefix(i, n int) func(string) string {
	label := f.label
	if n > 1 {
		label = fmt.Sprintf("%s[%d]", f.label, i)
	}
	return func(e string) string {
		return fmt.Sprintf("traversal(%s) > %s", label, e)
	}
}

func (f *traversalFact[O, T]) Check(obj O) Check {
	ts := f.get(obj)
	var c Check
	for i, t := range ts {
		c = c.Merge(f.inner.Check(t).Map(f.prefix(i, len(ts))))
	}
	return c
}

func (f *traversalFact[O, T]) Mutate(obj O, g *Generator) (O, error) {
	ts := f.get(obj)
	out := obj
	for i, t := range ts {
		nt, err := f.inner.Mutate(t, g)
		if err != nil {
			var zero O
			return zero, relabel(err, f.prefix(i, len(ts)))
		}
		out = f.set(out, i, nt)
	}
	return out, nil
}

func (f *traversalFact[O, T]) Advance(obj O) {
	for _, t := range f.get(obj) {
		f.inner.Advance(t)
	}
}
