package funfact

type orFact[T any] struct {
	a, b Fact[T]
}

// Or is satisfied when either branch is. Mutation leaves an already-valid
// value alone; otherwise it picks a branch by entropy and applies that
// branch's mutation.
func Or[T any](a, b Fact[T]) Fact[T] {
	return &orFact[T]{a: a, b: b}
}

func (f *orFact[T]) Check(obj T) Check {
	ca := f.a.Check(obj)
	if ca.OK() {
		return Check{}
	}
	cb := f.b.Check(obj)
	if cb.OK() {
		return Check{}
	}
	return ca.Merge(cb).Map(func(e string) string { return "or > " + e })
}

func (f *orFact[T]) Mutate(obj T, g *Generator) (T, error) {
	if f.a.Check(obj).OK() || f.b.Check(obj).OK() {
		return obj, nil
	}
	branch, err := ChooseFrom(g, []Fact[T]{f.a, f.b}, func() string {
		return "or: neither branch is satisfied"
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return branch.Mutate(obj, g)
}

func (f *orFact[T]) Advance(obj T) {
	f.a.Advance(obj)
	f.b.Advance(obj)
}
