package funfact

type statelessFact[T any] struct {
	label string
	fn    func(T, *Generator) (T, error)
}

// Stateless builds a custom fact from a mutation closure alone; its check is
// derived by replaying the closure under a check-only generator. The closure
// must route every entropy draw through Draw or ChooseFrom (with a reason) so
// that check-only replays report labeled violations rather than raw draws.
func Stateless[T any](label string, fn func(T, *Generator) (T, error)) Fact[T] {
	return &statelessFact[T]{label: label, fn: fn}
}

func (f *statelessFact[T]) Check(obj T) Check {
	return CheckWith[T](f, obj)
}

func (f *statelessFact[T]) Mutate(obj T, g *Generator) (T, error) {
	return f.fn(obj, g)
}

func (f *statelessFact[T]) Advance(T) {}

// Always is satisfied by every value.
func Always[T any]() Fact[T] {
	return Stateless("always", func(obj T, _ *Generator) (T, error) {
		return obj, nil
	})
}

// Never is satisfied by no value. Checking always yields the given reason;
// building always ends in an *UnsatisfiedError.
func Never[T any](reason string) Fact[T] {
	return Stateless("never", func(obj T, g *Generator) (T, error) {
		if g.CheckOnly() {
			return obj, &Violation{Reason: reason}
		}
		return obj, nil
	})
}
