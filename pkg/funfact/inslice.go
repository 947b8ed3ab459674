package funfact

import "fmt"

type inSliceFact[T any] struct {
	label      string
	candidates []T
}

// InSlice constrains a value to be a member of a finite, non-empty candidate
// set. Mutation replaces an absent value with a uniformly chosen candidate.
func InSlice[T any](label string, candidates []T) Fact[T] {
	return &inSliceFact[T]{label: label, candidates: candidates}
}

func (f *inSliceFact[T]) Check(obj T) Check {
	return CheckWith[T](f, obj)
}

func (f *inSliceFact[T]) Mutate(obj T, g *Generator) (T, error) {
	for _, c := range f.candidates {
		if deepEqual(obj, c) {
			return obj, nil
		}
	}
	return ChooseFrom(g, f.candidates, func() string {
		return fmt.Sprintf("%s: expected %v to be contained in %v", f.label, obj, f.candidates)
	})
}

func (f *inSliceFact[T]) Advance(T) {}
