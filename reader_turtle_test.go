package rdf

import (
	"strings"
	"testing"
)

func mustReadTurtle(t *testing.T, syntax Syntax, input string) *CollectSink {
	t.Helper()
	src := NewReaderSource(strings.NewReader(input), "test")
	r := NewReader(src, syntax)
	sink := NewCollectSink()
	if err := r.Read(sink); err != nil {
		t.Fatalf("Read(%q): %v", input, err)
	}
	return sink
}

func TestTurtlePredicateObjectLists(t *testing.T) {
	input := `@prefix : <http://example.org/> .
:s :p1 :o1 ; :p2 :o2, :o3 .
`
	sink := mustReadTurtle(t, Turtle, input)
	if len(sink.Statements) != 3 {
		t.Fatalf("got %d statements, want 3", len(sink.Statements))
	}
	for i, want := range []StatementFlags{0, TerseSubject, TerseSubject | TerseObject} {
		if sink.Statements[i].Flags&want != want {
			t.Errorf("statement %d flags = %v; want at least %v", i, sink.Statements[i].Flags, want)
		}
	}
}

func TestTurtleRDFTypeShorthand(t *testing.T) {
	input := `@prefix : <http://example.org/> .
:s a :Thing .
`
	sink := mustReadTurtle(t, Turtle, input)
	if len(sink.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(sink.Statements))
	}
	s := sink.Statements[0]
	if s.Predicate.Value() != RDFType {
		t.Errorf("predicate = %q; want rdf:type", s.Predicate.Value())
	}
	if s.Flags&RDFTypeShorthand == 0 {
		t.Error("expected RDFTypeShorthand flag")
	}
}

func TestTurtleAnonymousBlankSubject(t *testing.T) {
	input := `@prefix : <http://example.org/> .
[ :p :o ] :p2 :o2 .
`
	sink := mustReadTurtle(t, Turtle, input)
	if len(sink.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(sink.Statements))
	}
	inner, outer := sink.Statements[0], sink.Statements[1]
	if inner.Subject.Kind() != BlankKind {
		t.Fatalf("inner subject should be a blank node, got %v", inner.Subject)
	}
	if !inner.Subject.Equals(outer.Subject) {
		t.Error("inner and outer statement should share the same blank subject")
	}
	if outer.Flags&AnonSubject == 0 {
		t.Error("outer statement should carry AnonSubject")
	}
	if inner.Flags&AnonSubject != 0 {
		t.Error("inner (defining) statement should not itself carry AnonSubject")
	}
}

func TestTurtleAnonymousBlankObject(t *testing.T) {
	input := `@prefix : <http://example.org/> .
:s :p [ :p2 :o2 ] .
`
	sink := mustReadTurtle(t, Turtle, input)
	if len(sink.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(sink.Statements))
	}
	inner, outer := sink.Statements[0], sink.Statements[1]
	if outer.Flags&AnonObject == 0 {
		t.Error("statement introducing the object should carry AnonObject")
	}
	if !outer.Object.Equals(inner.Subject) {
		t.Error("outer object and inner subject should be the same blank node")
	}
}

func TestTurtleEmptyBlankPropertyList(t *testing.T) {
	input := `@prefix : <http://example.org/> .
[] :p :o .
`
	sink := mustReadTurtle(t, Turtle, input)
	if len(sink.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(sink.Statements))
	}
	if sink.Statements[0].Flags&AnonSubject == 0 {
		t.Error("expected AnonSubject")
	}
}

func TestTurtleCollection(t *testing.T) {
	input := `@prefix : <http://example.org/> .
:s :p ( :a :b :c ) .
`
	sink := mustReadTurtle(t, Turtle, input)
	// one ListObject-flagged statement introducing the collection (its
	// object is the head cell), plus the chain's 3 rdf:first and 3
	// rdf:rest statements = 7 total.
	if len(sink.Statements) != 7 {
		t.Fatalf("got %d statements, want 7:\n%+v", len(sink.Statements), sink.Statements)
	}
	outer := sink.Statements[0]
	if outer.Flags&ListObject == 0 {
		t.Error("outer statement should carry ListObject")
	}

	var firsts, rests int
	for _, s := range sink.Statements[1:] {
		switch s.Predicate.Value() {
		case RDFFirst:
			firsts++
		case RDFRest:
			rests++
		}
	}
	if firsts != 3 || rests != 3 {
		t.Errorf("got %d rdf:first and %d rdf:rest statements; want 3 and 3", firsts, rests)
	}
	last := sink.Statements[len(sink.Statements)-1]
	if last.Predicate.Value() != RDFRest || last.Object.Value() != RDFNil {
		t.Errorf("collection should terminate in rdf:nil, got %+v", last)
	}
}

func TestTurtleEmptyCollection(t *testing.T) {
	input := `@prefix : <http://example.org/> .
:s :p () .
`
	sink := mustReadTurtle(t, Turtle, input)
	if len(sink.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(sink.Statements))
	}
	if sink.Statements[0].Object.Value() != RDFNil {
		t.Errorf("empty collection should be rdf:nil, got %v", sink.Statements[0].Object)
	}
}

func TestTriGBareGraphBlock(t *testing.T) {
	input := `@prefix : <http://example.org/> .
:g1 { :s :p :o . }
`
	src := NewReaderSource(strings.NewReader(input), "test")
	r := NewReader(src, TriG)
	sink := NewCollectSink()
	if err := r.Read(sink); err != nil {
		t.Fatal(err)
	}
	if len(sink.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(sink.Statements))
	}
	s := sink.Statements[0]
	if !s.IsQuad() {
		t.Fatal("statement inside a graph block should be a quad")
	}
	if s.Graph.Value() != "http://example.org/g1" {
		t.Errorf("graph = %q", s.Graph.Value())
	}
}

func TestTriGNamedGraphKeyword(t *testing.T) {
	input := `@prefix : <http://example.org/> .
GRAPH :g1 { :s :p :o . }
`
	sink := mustReadTurtle(t, TriG, input)
	if len(sink.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(sink.Statements))
	}
	if sink.Statements[0].Graph.Value() != "http://example.org/g1" {
		t.Errorf("graph = %q", sink.Statements[0].Graph.Value())
	}
}

func TestTriGDefaultGraphBlock(t *testing.T) {
	input := `@prefix : <http://example.org/> .
{ :s :p :o . }
`
	sink := mustReadTurtle(t, TriG, input)
	if len(sink.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(sink.Statements))
	}
	if sink.Statements[0].IsQuad() {
		t.Error("statement in a bare {...} block is still the default graph")
	}
}

func TestVariablesRequireOption(t *testing.T) {
	input := `?s <http://example.org/p> <http://example.org/o> .`
	src := NewReaderSource(strings.NewReader(input), "test")
	r := NewReader(src, NTriples)
	if err := r.Read(NopSink{}); err == nil {
		t.Error("variables should be rejected without WithVariables")
	}
}

func TestVariablesWithOption(t *testing.T) {
	input := `?s <http://example.org/p> ?o .`
	src := NewReaderSource(strings.NewReader(input), "test")
	r := NewReader(src, NTriples, WithVariables())
	sink := NewCollectSink()
	if err := r.Read(sink); err != nil {
		t.Fatal(err)
	}
	if sink.Statements[0].Subject.Kind() != VariableKind {
		t.Errorf("subject kind = %v; want VariableKind", sink.Statements[0].Subject.Kind())
	}
}
