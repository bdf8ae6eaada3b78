package serializer

import (
	"errors"
	"strings"
	"testing"

	"github.com/JaggerJo/Prowl/tag"
)

type Person struct {
	Name    string
	Boss    *Person
	Reports []*Person
}

func TestCycle_RejectedWithoutReferenceResolution(t *testing.T) {
	alice := &Person{Name: "Alice"}
	alice.Boss = alice

	_, err := ToTag(alice, ResolveReferences(false))
	if !errors.Is(err, &Error{Kind: CyclicReference}) {
		t.Fatalf("expected CyclicReference, got %v", err)
	}
	if !strings.Contains(err.Error(), "cyclic") {
		t.Errorf("error message should name the cycle, got: %v", err)
	}
}

func TestCycle_RoundTripsWithReferenceResolution(t *testing.T) {
	alice := &Person{Name: "Alice"}
	alice.Boss = alice

	node, err := ToTag(alice)
	if err != nil {
		t.Fatalf("ToTag: %v", err)
	}
	comp := node.(*tag.Compound)
	if !comp.Has("$id") {
		t.Fatal("revisited instance was not stamped with $id")
	}
	boss, err := comp.GetCompound("Boss")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !boss.Has("$ref") {
		t.Fatal("cycle did not serialize as a back-reference")
	}

	var out Person
	if err := FromTag(node, &out); err != nil {
		t.Fatalf("FromTag: %v", err)
	}
	if out.Boss != &out {
		t.Error("cycle not restored: Boss does not point back at the root")
	}
}

func TestSharedInstance_SerializedOnce(t *testing.T) {
	boss := &Person{Name: "Boss"}
	a := &Person{Name: "A", Boss: boss}
	b := &Person{Name: "B", Boss: boss}
	team := &Person{Name: "Root", Reports: []*Person{a, b}}

	node, err := ToTag(team)
	if err != nil {
		t.Fatalf("ToTag: %v", err)
	}

	var out Person
	if err := FromTag(node, &out); err != nil {
		t.Fatalf("FromTag: %v", err)
	}
	if len(out.Reports) != 2 {
		t.Fatalf("restored %d reports", len(out.Reports))
	}
	if out.Reports[0].Boss == nil {
		t.Fatal("shared instance lost")
	}
	if out.Reports[0].Boss != out.Reports[1].Boss {
		t.Error("shared instance restored as two copies")
	}
	if out.Reports[0].Boss.Name != "Boss" {
		t.Errorf("shared instance payload = %q", out.Reports[0].Boss.Name)
	}
}

func TestSharedInstance_DuplicatedWithoutReferenceResolution(t *testing.T) {
	shared := &Person{Name: "Shared"}
	team := &Person{Name: "Root", Reports: []*Person{shared, shared}}

	// A diamond is not a cycle; it serializes fine, duplicating.
	node, err := ToTag(team, ResolveReferences(false))
	if err != nil {
		t.Fatalf("ToTag: %v", err)
	}

	var out Person
	if err := FromTag(node, &out); err != nil {
		t.Fatalf("FromTag: %v", err)
	}
	if out.Reports[0] == out.Reports[1] {
		t.Error("instances should be duplicated when reference resolution is off")
	}
	if out.Reports[0].Name != "Shared" || out.Reports[1].Name != "Shared" {
		t.Errorf("payload lost: %+v", out)
	}
}

func TestBackReference_Dangling(t *testing.T) {
	comp := tag.NewCompound()
	ref := tag.NewCompound()
	ref.Set("$ref", tag.FromInt(7))
	comp.Set("Boss", ref)

	var out Person
	err := FromTag(comp, &out)
	if !errors.Is(err, &Error{Kind: TypeMismatch}) {
		t.Errorf("expected TypeMismatch for dangling back-reference, got %v", err)
	}
}
