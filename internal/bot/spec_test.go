package bot

import "testing"

func TestSpecNormalize(t *testing.T) {
	s := Spec{}.Normalize()
	if s.Type != TypeGeneral {
		t.Fatalf("empty type normalized to %q, want %q", s.Type, TypeGeneral)
	}

	s = Spec{Type: TypeQuiz, Topic: "Computer Networks", Concept: "TCP"}.Normalize()
	if s.Type != TypeQuiz || s.Topic != "Computer Networks" || s.Concept != "TCP" {
		t.Fatalf("Normalize changed populated spec: %+v", s)
	}

	// Unknown types pass through unvalidated; the worker owns interpretation.
	s = Spec{Type: "experimental"}.Normalize()
	if s.Type != "experimental" {
		t.Fatalf("unknown type was rewritten to %q", s.Type)
	}
}
