package funfact

import (
	"errors"
	"strings"
	"testing"
)

// point is a small subject type for pipeline tests.
type point struct {
	X uint8
	Y uint8
}

func pointX(p point) uint8 { return p.X }

func setPointX(p point, x uint8) point {
	p.X = x
	return p
}

func TestCheckWith_MatchesMutateReplay(t *testing.T) {
	f := Eq("x", uint32(9))

	// A satisfied fact: replaying the mutation changes nothing, so the
	// derived check is empty.
	if c := CheckWith[uint32](f, 9); !c.OK() {
		t.Errorf("replay of a satisfying value reported: %v", c.Errors())
	}

	// An unsatisfied fact: the replayed mutation wants to repair the value,
	// which the check-only generator converts into a violation.
	if c := CheckWith[uint32](f, 10); c.OK() {
		t.Error("replay of a violating value reported nothing")
	}
}

func TestCheckWith_DetectsSilentChange(t *testing.T) {
	// A sloppy custom fact that repairs without consulting the generator.
	// The derived check must still catch the difference.
	f := Stateless("sloppy", func(obj uint32, _ *Generator) (uint32, error) {
		if obj > 10 {
			return 10, nil
		}
		return obj, nil
	})
	if c := f.Check(50); c.OK() {
		t.Error("silent repair went undetected")
	}
	if c := f.Check(5); !c.OK() {
		t.Errorf("unchanged value reported: %v", c.Errors())
	}
}

func TestSatisfy_ResultPassesCheck(t *testing.T) {
	f := Facts[point]{
		Brute("Y is even", func(p point) bool { return p.Y%2 == 0 }),
		Lens("point.X", pointX, setPointX, Eq("x", uint8(7))),
	}
	g := NewGenerator(entropy(13, 1<<16))

	p, err := Satisfy(f, point{X: 1, Y: 1}, g)
	if err != nil {
		t.Fatalf("Satisfy: %v", err)
	}
	if c := f.Check(p); !c.OK() {
		t.Errorf("satisfied value fails its own check: %v", c.Errors())
	}
}

func TestSatisfy_UnsatisfiableHitsBound(t *testing.T) {
	f := Never[uint32]("nothing satisfies this")
	g := NewGenerator(entropy(17, 1<<12))

	_, err := Satisfy(f, 5, g)
	var ue *UnsatisfiedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UnsatisfiedError, got %v", err)
	}
	if ue.Attempts != satisfyAttempts {
		t.Errorf("expected %d attempts, got %d", satisfyAttempts, ue.Attempts)
	}
	if !strings.Contains(err.Error(), "nothing satisfies this") {
		t.Errorf("error should carry the last violation: %q", err.Error())
	}
}

func TestMustBuild_PanicsOnUnsatisfiable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild did not panic for an unsatisfiable fact")
		}
	}()
	MustBuild(Never[uint32]("no"), NewGenerator(entropy(19, 1<<12)))
}

func TestBuild_ExhaustionIsTerminal(t *testing.T) {
	f := Eq("x", uint32(1))
	if _, err := Build(f, NewGenerator(nil)); !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

func TestFacts_CheckConcatenatesAllMembers(t *testing.T) {
	f := Facts[uint32]{
		Eq("first", uint32(1)),
		Eq("second", uint32(2)),
	}
	c := f.Check(3)
	if len(c.Errors()) != 2 {
		t.Fatalf("expected both members to report, got %v", c.Errors())
	}
}

func TestFacts_BruteFirstPreservesStructural(t *testing.T) {
	f := Facts[point]{
		Brute("Y is even", func(p point) bool { return p.Y%2 == 0 }),
		Lens("point.X", pointX, setPointX, Eq("x", uint8(7))),
	}
	g := NewGenerator(entropy(23, 1<<16))

	p, err := Build(f, g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.X != 7 {
		t.Errorf("structural guarantee lost: X = %d", p.X)
	}
	if p.Y%2 != 0 {
		t.Errorf("brute guarantee lost: Y = %d", p.Y)
	}
}

func TestFacts_BruteAfterStructuralCanUndo(t *testing.T) {
	// The documented ordering hazard: a brute fact placed after a structural
	// one resamples the whole value and discards the structural repair. 7 is
	// odd, so any resample that satisfies "even" has necessarily lost it.
	f := Facts[uint8]{
		Eq("seven", uint8(7)),
		Brute("is even", func(x uint8) bool { return x%2 == 0 }),
	}
	g := NewGenerator(entropy(29, 1<<16))

	out, err := f.Mutate(5, g)
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if out%2 != 0 {
		t.Fatalf("brute postcondition missing: %d", out)
	}
	if out == 7 {
		t.Error("an even value cannot be 7; test construction broken")
	}
	if f.Check(out).OK() {
		t.Error("the pipeline cannot be satisfied, check should fail")
	}
}

func TestCheckSeq_LabelsItems(t *testing.T) {
	f := Facts[uint32]{Eq("x", uint32(1))}
	c := CheckSeq[uint32](f, []uint32{1, 2, 1})
	if len(c.Errors()) != 1 {
		t.Fatalf("expected a single violation, got %v", c.Errors())
	}
	if !strings.HasPrefix(c.Errors()[0], "item 1: ") {
		t.Errorf("violation should be indexed: %q", c.Errors()[0])
	}
}
