package funfact

import (
	"strings"
	"testing"
)

type record struct {
	ID   uint32
	Data string
}

func recordID(r record) uint32 { return r.ID }

func setRecordID(r record, id uint32) record {
	r.ID = id
	return r
}

func TestLens_BuildSetsField(t *testing.T) {
	f := Lens("record.ID", recordID, setRecordID, Eq("id", uint32(11)))
	g := NewGenerator(entropy(31, 1<<14))

	r, err := Build(f, g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if r.ID != 11 {
		t.Errorf("built ID = %d, want 11", r.ID)
	}
}

func TestLens_CheckFailsExactlyOnFieldMismatch(t *testing.T) {
	f := Lens("record.ID", recordID, setRecordID, Eq("id", uint32(11)))

	if c := f.Check(record{ID: 11, Data: "anything"}); !c.OK() {
		t.Errorf("matching field rejected: %v", c.Errors())
	}
	c := f.Check(record{ID: 12})
	if c.OK() {
		t.Fatal("mismatching field accepted")
	}
	if !strings.HasPrefix(c.Errors()[0], "lens(record.ID) > ") {
		t.Errorf("violation should carry the lens path: %q", c.Errors()[0])
	}
}

func TestLens_MutateOnlyTouchesTarget(t *testing.T) {
	f := Lens("record.ID", recordID, setRecordID, Eq("id", uint32(11)))
	g := NewGenerator(entropy(37, 64))

	r, err := f.Mutate(record{ID: 5, Data: "keep me"}, g)
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if r.ID != 11 || r.Data != "keep me" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestLens_DerivedCheckKeepsLabel(t *testing.T) {
	// Checking a lens through the generic mutate replay (rather than its own
	// Check method) must still produce a labeled violation.
	f := Lens("record.ID", recordID, setRecordID, Eq("id", uint32(11)))
	c := CheckWith[record](f, record{ID: 3})
	if c.OK() {
		t.Fatal("expected a violation")
	}
	if !strings.Contains(c.Errors()[0], "lens(record.ID)") {
		t.Errorf("replayed violation lost its path: %q", c.Errors()[0])
	}
}

func TestLens_AdvanceReachesInner(t *testing.T) {
	f := Lens("record.ID", recordID, setRecordID, ConsecutiveInt("id run", uint32(3)))
	g := NewGenerator(entropy(41, 1<<16))

	rs, err := BuildSeq(f, 4, g)
	if err != nil {
		t.Fatalf("BuildSeq: %v", err)
	}
	for i, r := range rs {
		if r.ID != uint32(3+i) {
			t.Errorf("item %d: ID = %d, want %d", i, r.ID, 3+i)
		}
	}
}
