package rdf

// Turtle/TriG recursive-descent grammar, ported from the shape of the
// teacher's ttl.go parseFn state machine (parseTriple/parseSubject/
// parsePredicate/parseObject, a context stack for collections and blank
// property lists) but written as plain recursive functions calling into
// the shared 3-token lookahead buffer on Reader, and generalised with an
// explicit graph slot so the same code serves both Turtle (graph always
// nil) and TriG (graph set while inside a `{...}`/`GRAPH ... {...}`
// block).

// readTriplesLine parses one top-level Turtle/TriG statement: a subject
// (term, blank property list, or collection) followed by a
// predicate-object list, or — in TriG — a bare graph-name that turns out
// to introduce a `{...}` block rather than a statement.
func (r *Reader) readTriplesLine(sink Sink) error {
	if r.syntax.lineBased() {
		return r.readLineStatement(sink)
	}

	subj, subjFlags, err := r.parseSubjectPosition(sink, r.curGraph)
	if err != nil {
		return err
	}

	if r.syntax == TriG {
		if t := r.peek(); t.typ == tokenGraphStart {
			r.next()
			if subj.Kind() != IRIKind && subj.Kind() != BlankKind {
				return r.errorf(StatusBadSyntax, t, "graph name must be an IRI or blank node")
			}
			g := subj
			return r.readGraphBlock(sink, &g, t)
		}
	}

	if err := r.parseVerbObjectList(sink, subj, r.curGraph, subjFlags); err != nil {
		return err
	}
	return r.expectDot()
}

// readGraphBlock parses `{ statement* }` with graph fixed to g (nil for
// an explicitly-braced default graph block), restoring the prior graph
// context on exit.
func (r *Reader) readGraphBlock(sink Sink, g *Node, start token) error {
	prev := r.curGraph
	r.curGraph = g
	defer func() { r.curGraph = prev }()

	if g != nil {
		if err := r.pushContext(ctxGraph, Node{}, g); err != nil {
			return err
		}
		defer r.popContext()
	}

	for {
		t := r.peek()
		if t.typ == tokenGraphEnd {
			r.next()
			return nil
		}
		if t.typ == tokenEOF {
			return r.errorf(StatusNoData, t, "unterminated graph block")
		}
		if t.typ == tokenEOL {
			r.next()
			continue
		}
		if err := r.readStatement(sink); err != nil {
			return err
		}
	}
}

// readNamedGraphBlock parses `GRAPH graphTerm { statement* }`.
func (r *Reader) readNamedGraphBlock(sink Sink, start token) error {
	g, err := r.parseSubjectTerm()
	if err != nil {
		return err
	}
	brace := r.next()
	if brace.typ != tokenGraphStart {
		return r.errorf(StatusBadSyntax, brace, "expected '{' after GRAPH graph name")
	}
	return r.readGraphBlock(sink, &g, brace)
}

// parseSubjectPosition parses the subject production: a term, a blank
// node property list `[...]`, or a collection `(...)`. Collection/anon
// subjects may themselves trigger nested Statement emissions (the
// collection's rdf:first/rdf:rest chain, or the property list's own
// predicate-object pairs) before the outer subject node is returned.
func (r *Reader) parseSubjectPosition(sink Sink, graph *Node) (Node, StatementFlags, error) {
	t := r.peek()
	switch t.typ {
	case tokenPropertyListStart:
		r.next()
		n, err := r.parseBlankPropertyList(sink, graph)
		return n, AnonSubject, err
	case tokenAnonBNode:
		r.next()
		label := r.freshBlankLabel()
		n := NewBlankUnsafe(label)
		if err := sink.EndAnonymous(label); err != nil {
			return Node{}, 0, newError(StatusBadEvent, r.caret(), "sink rejected end-anonymous: %v", err)
		}
		return n, AnonSubject, nil
	case tokenCollectionStart:
		r.next()
		n, err := r.parseCollection(sink, graph)
		return n, ListSubject, err
	default:
		n, err := r.parseSubjectTerm()
		return n, 0, err
	}
}

// parseVerbObjectList parses `verb objectList (';' (verb objectList)?)*`
// for the given subject, emitting one Statement per (predicate, object)
// pair, with subject/predicate omission flags set for the terse
// continuation forms.
func (r *Reader) parseVerbObjectList(sink Sink, subject Node, graph *Node, subjFlags StatementFlags) error {
	first := true
	for {
		t := r.peek()
		if t.typ == tokenSemicolon {
			r.next()
			// Trailing ';' with nothing after it (followed directly by
			// '.', ']', or another ';') is legal; just loop to check.
			continue
		}
		if isVerbEnd(t.typ) {
			return nil
		}
		pred, err := r.parsePredicateTerm()
		if err != nil {
			return err
		}
		rowFlags := subjFlags
		if !first {
			rowFlags |= TerseSubject
		}
		if err := r.parseObjectList(sink, subject, pred, graph, rowFlags); err != nil {
			return err
		}
		first = false

		nt := r.peek()
		if nt.typ != tokenSemicolon {
			return nil
		}
	}
}

func isVerbEnd(t tokenType) bool {
	switch t {
	case tokenDot, tokenPropertyListEnd, tokenCollectionEnd, tokenGraphEnd, tokenEOF, tokenEOL:
		return true
	}
	return false
}

// parseObjectList parses `object (',' object)*`, emitting one Statement
// per object with the given (subject, predicate), setting TerseObject on
// every object after the first.
func (r *Reader) parseObjectList(sink Sink, subject, pred Node, graph *Node, baseFlags StatementFlags) error {
	first := true
	for {
		obj, objFlags, err := r.parseObject(sink, graph)
		if err != nil {
			return err
		}
		flags := baseFlags | objFlags
		if !first {
			flags |= TerseObject
		}
		if pred.Kind() == IRIKind && pred.Value() == RDFType {
			flags |= RDFTypeShorthand
		}
		if graph == nil {
			flags |= EmptyGraph
		}
		stmt := Statement{Subject: subject, Predicate: pred, Object: obj, Graph: graph, Flags: flags, Caret: r.caret()}
		if err := sink.Statement(stmt); err != nil {
			return newError(StatusBadEvent, r.caret(), "sink rejected statement: %v", err)
		}
		first = false

		t := r.peek()
		if t.typ != tokenComma {
			return nil
		}
		r.next()
	}
}

// parseObject parses a single object-position term: a leaf term, an
// anonymous/property-list blank node, or a collection. Returns the
// StatementFlags bits (AnonObject/ListObject) describing which form was
// used, so the caller can tag the emitted Statement.
func (r *Reader) parseObject(sink Sink, graph *Node) (Node, StatementFlags, error) {
	t := r.peek()
	switch t.typ {
	case tokenPropertyListStart:
		r.next()
		n, err := r.parseBlankPropertyList(sink, graph)
		return n, AnonObject, err
	case tokenAnonBNode:
		r.next()
		label := r.freshBlankLabel()
		n := NewBlankUnsafe(label)
		if err := sink.EndAnonymous(label); err != nil {
			return Node{}, 0, newError(StatusBadEvent, r.caret(), "sink rejected end-anonymous: %v", err)
		}
		return n, AnonObject, nil
	case tokenCollectionStart:
		r.next()
		n, err := r.parseCollection(sink, graph)
		return n, ListObject, err
	default:
		n, err := r.parseObjectTerm()
		return n, 0, err
	}
}

// parseBlankPropertyList parses the body of `[ predicateObjectList ]`
// (the `[` already consumed): a fresh blank node is allocated as the
// subject of every (predicate, object) pair found inside, and returned
// as the value of the whole `[...]` expression once `]` is reached.
func (r *Reader) parseBlankPropertyList(sink Sink, graph *Node) (Node, error) {
	label := r.freshBlankLabel()
	subj := NewBlankUnsafe(label)

	if err := r.pushContext(ctxBlankPropertyList, subj, graph); err != nil {
		return Node{}, err
	}
	defer r.popContext()

	t := r.peek()
	if t.typ == tokenPropertyListEnd {
		r.next()
	} else {
		if err := r.parseVerbObjectList(sink, subj, graph, 0); err != nil {
			return Node{}, err
		}
		end := r.next()
		if end.typ != tokenPropertyListEnd {
			return Node{}, r.errorf(StatusBadSyntax, end, "expected ']'")
		}
	}
	if err := sink.EndAnonymous(label); err != nil {
		return Node{}, newError(StatusBadEvent, r.caret(), "sink rejected end-anonymous: %v", err)
	}
	return subj, nil
}

// parseCollection parses `( object* )` (the `(` already consumed) into an
// rdf:first/rdf:rest cons chain terminated by rdf:nil, emitting one
// Statement per cons cell, and returns the head node (rdf:nil itself for
// an empty collection).
func (r *Reader) parseCollection(sink Sink, graph *Node) (Node, error) {
	if err := r.pushContext(ctxCollection, Node{}, graph); err != nil {
		return Node{}, err
	}
	defer r.popContext()

	t := r.peek()
	if t.typ == tokenCollectionEnd {
		r.next()
		return NewIRIUnsafe(RDFNil), nil
	}

	var head Node
	var prevCell Node
	first := true
	for {
		t := r.peek()
		if t.typ == tokenCollectionEnd {
			r.next()
			break
		}
		item, itemFlags, err := r.parseObject(sink, graph)
		if err != nil {
			return Node{}, err
		}
		cellLabel := r.freshBlankLabel()
		cell := NewBlankUnsafe(cellLabel)
		if first {
			head = cell
			first = false
		} else {
			flags := StatementFlags(0)
			if graph == nil {
				flags |= EmptyGraph
			}
			if err := sink.Statement(Statement{
				Subject: prevCell, Predicate: NewIRIUnsafe(RDFRest), Object: cell,
				Graph: graph, Flags: flags, Caret: r.caret(),
			}); err != nil {
				return Node{}, newError(StatusBadEvent, r.caret(), "sink rejected statement: %v", err)
			}
		}
		flags := ListSubject | itemFlags
		if graph == nil {
			flags |= EmptyGraph
		}
		if err := sink.Statement(Statement{
			Subject: cell, Predicate: NewIRIUnsafe(RDFFirst), Object: item,
			Graph: graph, Flags: flags, Caret: r.caret(),
		}); err != nil {
			return Node{}, newError(StatusBadEvent, r.caret(), "sink rejected statement: %v", err)
		}
		prevCell = cell
	}

	flags := ListSubject
	if graph == nil {
		flags |= EmptyGraph
	}
	if err := sink.Statement(Statement{
		Subject: prevCell, Predicate: NewIRIUnsafe(RDFRest), Object: NewIRIUnsafe(RDFNil),
		Graph: graph, Flags: flags, Caret: r.caret(),
	}); err != nil {
		return Node{}, newError(StatusBadEvent, r.caret(), "sink rejected statement: %v", err)
	}
	return head, nil
}
