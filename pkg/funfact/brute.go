package funfact

import "errors"

// bruteIterationLimit bounds resampling in a brute fact's mutation. Exceeding
// it is a *BruteError, never a hang.
const bruteIterationLimit = 100

type bruteFact[T any] struct {
	pred func(T) error
}

// Brute builds a fact from a bare predicate. Mutation can do no better than
// resampling wholly new arbitrary values until the predicate holds, so it is
// only appropriate when the predicate has non-negligible density over
// arbitrary data, e.g. requiring a particular variant of a small sum type.
//
// Because resampling discards the entire value, a brute fact placed after
// stronger facts in a Facts pipeline can silently undo their work. Place
// brute facts first.
func Brute[T any](reason string, pred func(T) bool) Fact[T] {
	return BruteLabeled(func(obj T) error {
		if pred(obj) {
			return nil
		}
		return errors.New(reason)
	})
}

// BruteLabeled is Brute with a predicate that reports its own failure reason:
// nil means the value passes, any error is the reason it does not.
func BruteLabeled[T any](pred func(T) error) Fact[T] {
	return &bruteFact[T]{pred: pred}
}

func (f *bruteFact[T]) Check(obj T) Check {
	return CheckWith[T](f, obj)
}

func (f *bruteFact[T]) Mutate(obj T, g *Generator) (T, error) {
	lastReason := ""
	for i := 0; i <= bruteIterationLimit; i++ {
		err := f.pred(obj)
		if err == nil {
			return obj, nil
		}
		lastReason = err.Error()
		next, drawErr := Draw[T](g, func() string { return lastReason })
		if drawErr != nil {
			var zero T
			return zero, drawErr
		}
		obj = next
	}
	var zero T
	return zero, &BruteError{Limit: bruteIterationLimit, Reason: lastReason}
}

func (f *bruteFact[T]) Advance(T) {}
