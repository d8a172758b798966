package rdf

import (
	"fmt"
	"io"
	"strings"
)

// WriterFlags are the bit-settable behaviours spec.md §6 names for a
// Writer.
type WriterFlags uint16

const (
	// WriteASCII escapes every non-ASCII rune as \uXXXX/\UXXXXXXXX in
	// literals and IRIs, instead of passing UTF-8 through verbatim.
	WriteASCII WriterFlags = 1 << iota
	// Terse collapses whitespace to the minimum the grammar requires.
	Terse
	// Unqualified never uses a prefixed name, even when the
	// Environment's prefix table has a match; every IRI is written in
	// full <...> form.
	Unqualified
	// Unresolved never resolves an IRI against the Environment's base;
	// IRIs are written exactly as the Node carries them.
	Unresolved
	// Contextual suppresses @prefix/@base directive emission, on the
	// assumption the caller shares the Environment with the reader on
	// the other end out of band.
	Contextual
	// WriterLax is stored on the Writer but changes nothing: invalid
	// UTF-8 in a literal or IRI is always written as U+FFFD, and such a
	// write never fails, whether or not WriterLax is set.
	WriterLax
	// Expanded always emits the full <...> IRI form, identical in
	// effect to Unqualified (kept as a separate flag for call-site
	// clarity, matching spec.md's naming).
	Expanded
	// WriteRDFType emits the full rdf:type IRI instead of substituting
	// the Turtle `a` keyword shorthand.
	WriteRDFType
	// Verbatim skips IRI resolution entirely, including the
	// prefix-qualification lookup — the fastest, least abbreviated path.
	Verbatim
)

// WriterOption configures a Writer at construction time.
type WriterOption func(*Writer)

func WithWriteASCII() WriterOption    { return func(w *Writer) { w.flags |= WriteASCII } }
func WithTerse() WriterOption         { return func(w *Writer) { w.flags |= Terse } }
func WithUnqualified() WriterOption   { return func(w *Writer) { w.flags |= Unqualified } }
func WithUnresolved() WriterOption    { return func(w *Writer) { w.flags |= Unresolved } }
func WithContextual() WriterOption    { return func(w *Writer) { w.flags |= Contextual } }
func WithWriterLax() WriterOption     { return func(w *Writer) { w.flags |= WriterLax } }
func WithExpanded() WriterOption      { return func(w *Writer) { w.flags |= Expanded } }
func WithWriteRDFType() WriterOption  { return func(w *Writer) { w.flags |= WriteRDFType } }
func WithVerbatim() WriterOption      { return func(w *Writer) { w.flags |= Verbatim } }

// WithWriterEnvironment supplies a pre-populated Environment (e.g. to
// reuse the Environment a Reader built up) instead of a fresh one.
func WithWriterEnvironment(env *Environment) WriterOption {
	return func(w *Writer) { w.env = env }
}

// WithWriterLogger installs a Logger on the Writer. The Writer stores it
// but never calls it.
func WithWriterLogger(l Logger) WriterOption {
	return func(w *Writer) { w.logger = l }
}

// Writer implements Sink, serialising the events it receives to one of
// the four RDF 1.1 textual syntaxes. Abbreviating Turtle/TriG's
// `[...]`/`(...)` forms needs no look-ahead: the Reader always emits a
// blank node's defining statements (and its EndAnonymous, or the
// terminal rdf:rest rdf:nil of a collection) before the statement that
// references the blank node with an Anon*/List* flag — see
// reader_turtle.go's parseBlankPropertyList/parseCollection. Writer
// mirrors the Reader's own ctxStack with a bounded stack of anonFrames:
// it buffers a blank node's own properties (or list items) in a frame
// keyed to that node's label instead of writing them straight to out,
// and once the frame is sealed (EndAnonymous, or the rdf:nil that
// closes a collection) the accumulated text sits in w.sealed ready to
// be substituted inline wherever the referencing statement's Subject or
// Object carries the matching flag. Depth is bounded by however deeply
// the source nested `[`/`(` — never by the size of the graph.
type Writer struct {
	out    io.Writer
	env    *Environment
	syntax Syntax
	flags  WriterFlags
	logger Logger

	wroteBase     string            // last @base IRI written, so an unchanged SetBase isn't re-emitted
	wrotePrefixes map[string]string // label -> last IRI written for it, same purpose for @prefix

	haveOpen  bool // a statement's "subject verb object" line is open awaiting '.'/';'/','
	openGraph *graphKey
	openSubj  Node
	openPred  Node
	depth     int
	err       error

	frames []*anonFrame      // frames[0] is the always-present root (writes straight to out)
	sealed map[string]string // blank label -> its fully rendered "[ ... ]" / "( ... )" text
}

// anonFrame buffers the statements that define one blank node's
// property list, or the rdf:first/rdf:rest chain of one collection,
// until it is sealed and ready to be substituted at its reference site.
type anonFrame struct {
	label string // blank label this frame buffers for ("" for the root frame)

	// Property-list frame fields.
	sb       strings.Builder
	havePred bool
	openPred Node

	// Collection frame fields.
	isList    bool
	headLabel string   // sealed under this label once the chain reaches rdf:nil
	tailLabel string   // label of the cell currently awaiting rdf:first/rdf:rest
	cells     []string // cell label for each entry in items, same order
	items     []string
}

type graphKey struct {
	isDefault bool
	value     string
}

func keyForGraph(g *Node) graphKey {
	if g == nil {
		return graphKey{isDefault: true}
	}
	return graphKey{value: g.String()}
}

// NewWriter constructs a Writer emitting syntax to out.
func NewWriter(out io.Writer, syntax Syntax, opts ...WriterOption) *Writer {
	w := &Writer{
		out:           out,
		syntax:        syntax,
		wrotePrefixes: make(map[string]string),
		frames:        []*anonFrame{{}},
		sealed:        make(map[string]string),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.env == nil {
		w.env = NewEnvironment()
	}
	return w
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.err = newError(StatusBadWrite, Caret{}, "%v", err)
	}
}

// Err returns the first write error encountered, if any. Sink methods
// also return it directly, but a caller driving many Statement calls in
// a loop can check this once at the end instead of after every call.
func (w *Writer) Err() error { return w.err }

// Base writes an @base/BASE directive (skipped if Contextual is set) and
// updates the Writer's Environment. IRIs are still written in full; the
// Writer does not shorten them relative to the base.
func (w *Writer) Base(iri string) error {
	if err := w.env.SetBase(iri); err != nil {
		return err
	}
	if w.flags&Contextual != 0 || w.syntax.lineBased() || w.wroteBase == iri {
		return w.err
	}
	w.closeOpenStatement()
	switch w.syntax {
	case Turtle, TriG:
		w.writeString("@base <" + escapeIRI(iri) + "> .\n")
	}
	w.wroteBase = iri
	return w.err
}

// Prefix writes an @prefix/PREFIX directive (skipped if Contextual is
// set) and updates the Writer's Environment.
func (w *Writer) Prefix(label, iri string) error {
	w.env.SetPrefix(label, iri)
	if w.flags&Contextual != 0 || w.syntax.lineBased() || w.wrotePrefixes[label] == iri {
		return w.err
	}
	w.closeOpenStatement()
	switch w.syntax {
	case Turtle, TriG:
		w.writeString("@prefix " + label + ": <" + escapeIRI(iri) + "> .\n")
	}
	w.wrotePrefixes[label] = iri
	return w.err
}

// EndAnonymous seals the anonFrame buffering label's property list, if
// Writer opened one for it, storing the rendered "[ ... ]" text in
// w.sealed for the eventual referencing statement to pick up.
func (w *Writer) EndAnonymous(label string) error {
	if w.err != nil {
		return w.err
	}
	top := w.frames[len(w.frames)-1]
	if !top.isList && top.label == label {
		w.frames = w.frames[:len(w.frames)-1]
		if top.sb.Len() == 0 {
			w.sealed[label] = "[]"
		} else {
			w.sealed[label] = "[" + top.sb.String() + " ]"
		}
		return w.err
	}
	// No frame was ever opened for label: the Reader emits EndAnonymous
	// with no preceding Statement calls for both `[]` and the anonymous
	// `[]`-as-single-token form, since neither has any properties to buffer.
	w.sealed[label] = "[]"
	return w.err
}

// Statement writes one triple or quad, abbreviating with `;`/`,` when it
// shares a (graph, subject) or (graph, subject, predicate) with the
// immediately preceding statement.
func (w *Writer) Statement(s Statement) error {
	if w.err != nil {
		return w.err
	}
	switch w.syntax {
	case NTriples, NQuads:
		w.writeFlat(s)
	case Turtle, TriG:
		w.writeAbbreviated(s)
	}
	return w.err
}

// isRDFFirst/isRDFRest identify the two predicates the Reader's
// collection encoding uses, so writeAbbreviated can recognise a
// cons-chain statement regardless of which frame is currently open.
func isRDFFirst(n Node) bool { return n.Kind() == IRIKind && n.Value() == RDFFirst }
func isRDFRest(n Node) bool  { return n.Kind() == IRIKind && n.Value() == RDFRest }

func (w *Writer) writeFlat(s Statement) {
	w.writeString(w.termString(s.Subject))
	w.writeString(" ")
	w.writeString(w.termString(s.Predicate))
	w.writeString(" ")
	w.writeString(w.termString(s.Object))
	if w.syntax == NQuads && s.Graph != nil {
		w.writeString(" ")
		w.writeString(w.termString(*s.Graph))
	}
	w.writeString(" .\n")
}

// writeAbbreviated renders one Turtle/TriG statement, consulting the
// anonFrame stack so a blank node introduced by `[` or `(` is folded
// back into bracket syntax at its point of reference instead of always
// being spelled `_:label`.
func (w *Writer) writeAbbreviated(s Statement) {
	// Pop any frame that the Reader's recursive descent has already
	// left behind: every nested `[`/`(` the current top-level statement
	// opened is resolved (sealed or abandoned) before the next
	// unrelated subject can appear.
	for len(w.frames) > 1 {
		top := w.frames[len(w.frames)-1]
		if top.isList && top.tailLabel == s.Subject.Value() && (isRDFFirst(s.Predicate) || isRDFRest(s.Predicate)) {
			break
		}
		if !top.isList && top.label == s.Subject.Value() {
			break
		}
		w.flushFrame(top)
		w.frames = w.frames[:len(w.frames)-1]
	}

	top := w.frames[len(w.frames)-1]

	switch {
	case top.isList && top.tailLabel == s.Subject.Value() && isRDFFirst(s.Predicate):
		top.cells = append(top.cells, s.Subject.Value())
		top.items = append(top.items, w.objectText(s))
		return
	case top.isList && top.tailLabel == s.Subject.Value() && isRDFRest(s.Predicate):
		if s.Object.Kind() == IRIKind && s.Object.Value() == RDFNil {
			text := "(" + strings.Join(top.items, " ") + ")"
			w.sealed[top.headLabel] = text
			w.frames = w.frames[:len(w.frames)-1]
			return
		}
		top.tailLabel = s.Object.Value()
		return
	case !top.isList && top.label != "" && top.label == s.Subject.Value():
		w.writeBufferedProperty(top, s)
		return
	}

	if s.Subject.Kind() == BlankKind {
		switch {
		case isRDFFirst(s.Predicate) || isRDFRest(s.Predicate):
			// The first statement of a not-yet-tracked collection: its
			// ListSubject flag describes the chain being defined, not a
			// reference to an already-sealed one.
			w.frames = append(w.frames, &anonFrame{
				label: s.Subject.Value(), isList: true,
				headLabel: s.Subject.Value(), tailLabel: s.Subject.Value(),
			})
			w.writeAbbreviated(s)
			return
		case !s.Has(AnonSubject) && !s.Has(ListSubject):
			w.frames = append(w.frames, &anonFrame{label: s.Subject.Value()})
			w.writeAbbreviated(s)
			return
		}
	}

	w.writeRoot(s)
}

// flushFrame is reached only when a frame's blank label never got
// sealed (EndAnonymous, or a list's rdf:nil) before an unrelated
// subject arrived: it was a plain shared blank node, not one
// introduced by `[`/`(`, so its buffered content is written out as an
// ordinary statement with an explicit `_:label` subject instead of
// being folded into bracket syntax.
func (w *Writer) flushFrame(f *anonFrame) {
	w.closeOpenStatement()
	if f.isList {
		// The chain never reached rdf:nil (a malformed or unusual
		// stream), so there is no terminating rdf:rest to write for the
		// final cell; each cell still gets its own rdf:first, linked to
		// the next cell by rdf:rest wherever one is known.
		for i, item := range f.items {
			w.writeString(w.termString(NewBlankUnsafe(f.cells[i])))
			w.writeString(" ")
			w.writeString(w.termString(NewIRIUnsafe(RDFFirst)))
			w.writeString(" ")
			w.writeString(item)
			if i < len(f.cells)-1 {
				w.writeString(" ; ")
				w.writeString(w.termString(NewIRIUnsafe(RDFRest)))
				w.writeString(" ")
				w.writeString(w.termString(NewBlankUnsafe(f.cells[i+1])))
			}
			w.writeString(" .\n")
		}
		return
	}
	if f.sb.Len() == 0 {
		return
	}
	w.writeString(w.termString(NewBlankUnsafe(f.label)))
	w.writeString(f.sb.String())
	w.writeString(" .\n")
}

// writeBufferedProperty appends one predicate/object pair to the
// property-list frame f, joining with ';'/',' exactly like writeRoot
// does for the main output stream.
func (w *Writer) writeBufferedProperty(f *anonFrame, s Statement) {
	objStr := w.objectText(s)
	if f.havePred && f.openPred.Equals(s.Predicate) {
		f.sb.WriteString(", ")
		f.sb.WriteString(objStr)
		return
	}
	if f.sb.Len() > 0 {
		f.sb.WriteString(" ; ")
	} else {
		f.sb.WriteString(" ")
	}
	f.sb.WriteString(w.predicateString(s))
	f.sb.WriteString(" ")
	f.sb.WriteString(objStr)
	f.havePred = true
	f.openPred = s.Predicate
}

// writeRoot renders s directly to out, the same run-tracked `;`/`,`
// abbreviation the Writer has always done at top level, except subject
// and object text now go through subjectText/objectText so a sealed
// anonymous/list reference is substituted instead of `_:label`.
func (w *Writer) writeRoot(s Statement) {
	gk := keyForGraph(s.Graph)
	sameGraph := w.openGraph != nil && *w.openGraph == gk
	if !sameGraph {
		w.closeOpenStatement()
		if w.syntax == TriG {
			if w.openGraph != nil && !w.openGraph.isDefault {
				w.writeSeparator(sepGraphClose, "graphClose")
			}
			if !gk.isDefault {
				w.writeString(w.termString(*s.Graph))
				w.writeSeparator(sepGraphOpen, "graphOpen")
			}
		}
		k := gk
		w.openGraph = &k
		w.haveOpen = false
	}

	sameSubj := w.haveOpen && w.openSubj.Equals(s.Subject)
	samePred := sameSubj && w.openPred.Equals(s.Predicate)

	switch {
	case samePred:
		w.writeSeparator(sepObjectList, "objectList")
		w.writeString(w.objectText(s))
	case sameSubj:
		w.writeSeparator(sepPredicateList, "predicateList")
		if w.flags&Terse == 0 {
			w.writeString(indentString(w.depth + 1))
		}
		w.writeString(w.predicateString(s))
		w.writeString(" ")
		w.writeString(w.objectText(s))
	default:
		w.closeOpenStatement()
		w.writeString(w.subjectText(s))
		w.writeString(" ")
		w.writeString(w.predicateString(s))
		w.writeString(" ")
		w.writeString(w.objectText(s))
		w.haveOpen = true
	}
	w.openSubj = s.Subject
	w.openPred = s.Predicate
}

// subjectText and objectText render a statement's subject/object,
// substituting the sealed bracket/collection text for a node flagged
// Anon*/List* instead of its plain `_:label` form.
func (w *Writer) subjectText(s Statement) string {
	if text, ok := w.sealedText(s.Subject, s.Flags, AnonSubject, ListSubject); ok {
		return text
	}
	return w.termString(s.Subject)
}

func (w *Writer) objectText(s Statement) string {
	if text, ok := w.sealedText(s.Object, s.Flags, AnonObject, ListObject); ok {
		return text
	}
	return w.termString(s.Object)
}

func (w *Writer) sealedText(n Node, flags, anonFlag, listFlag StatementFlags) (string, bool) {
	if flags&listFlag != 0 && n.Kind() == IRIKind && n.Value() == RDFNil {
		return "()", true
	}
	if flags&(anonFlag|listFlag) != 0 && n.Kind() == BlankKind {
		if text, ok := w.sealed[n.Value()]; ok {
			delete(w.sealed, n.Value())
			return text, true
		}
	}
	return "", false
}

// writeSeparator emits the separator text for key, consulting
// terseSeparators instead of the full-form rule when Terse is set, and
// applies the rule's indentDelta to w.depth.
func (w *Writer) writeSeparator(full separatorRule, key string) {
	rule := full
	if w.flags&Terse != 0 {
		if t, ok := terseSeparators[key]; ok {
			rule = t
		}
	}
	w.writeString(rule.text)
	w.depth += rule.indentDelta
}

func (w *Writer) predicateString(s Statement) string {
	if w.flags&WriteRDFType == 0 && s.Predicate.Kind() == IRIKind && s.Predicate.Value() == RDFType {
		return "a"
	}
	return w.termString(s.Predicate)
}

// closeOpenStatement emits the terminating " ." for a pending abbreviated
// statement, if any.
func (w *Writer) closeOpenStatement() {
	if !w.haveOpen {
		return
	}
	if w.flags&Terse != 0 {
		w.writeString(terseSeparators["statement"].text)
	} else {
		w.writeString(sepNewStatement.text)
	}
	w.haveOpen = false
}

// Close flushes any pending statement terminator and graph-block close
// brace. Callers writing Turtle/TriG must call Close when done (or rely
// on a final Statement/Prefix/Base call from a Reader pipeline that
// itself terminates cleanly before EOF propagates here).
func (w *Writer) Close() error {
	for len(w.frames) > 1 {
		top := w.frames[len(w.frames)-1]
		w.flushFrame(top)
		w.frames = w.frames[:len(w.frames)-1]
	}
	w.closeOpenStatement()
	if w.syntax == TriG && w.openGraph != nil && !w.openGraph.isDefault {
		w.writeSeparator(sepGraphClose, "graphClose")
		w.openGraph = nil
	}
	return w.err
}

// termString renders n in the Writer's configured syntax, applying
// prefix qualification, ASCII escaping, and the literal abbreviation
// rules, per the WriterFlags in effect. IRIs are not made relative to
// the base.
func (w *Writer) termString(n Node) string {
	switch n.Kind() {
	case IRIKind:
		return w.iriString(n.Value())
	case BlankKind:
		return "_:" + n.Value()
	case VariableKind:
		return "?" + n.Value()
	case LiteralKind:
		return w.literalString(n)
	default:
		return "<invalid-node>"
	}
}

func (w *Writer) iriString(iri string) string {
	if w.flags&Verbatim != 0 {
		return "<" + w.escapeIRIMaybeASCII(iri) + ">"
	}
	if w.flags&(Unqualified|Expanded) == 0 {
		if label, suffix, ok := w.env.Qualify(iri); ok {
			if label == "" {
				return ":" + suffix
			}
			return label + ":" + suffix
		}
	}
	out := iri
	if w.flags&Unresolved == 0 && w.env.base != nil {
		// Writer intentionally does not re-relativise: spec.md and the
		// teacher both only resolve relative->absolute on read; writing
		// absolute IRIs is always correct Turtle/TriG/NTriples/NQuads
		// output, whereas re-deriving a shorter relative form on write
		// is a separate, optional feature neither the teacher nor any
		// other pack example implements.
	}
	return "<" + w.escapeIRIMaybeASCII(out) + ">"
}

func (w *Writer) escapeIRIMaybeASCII(s string) string {
	if w.flags&WriteASCII != 0 {
		return asciiEscape(escapeIRI(s))
	}
	return escapeIRI(s)
}

func (w *Writer) literalString(n Node) string {
	lex := n.Value()
	long := n.Flags()&IsLongString != 0 || (n.Flags()&HasNewline != 0 && strings.Contains(lex, "\n"))

	var body string
	if long {
		body = `"""` + strings.ReplaceAll(escapeLiteralLong(lex), `"""`, `\"\"\"`) + `"""`
	} else {
		body = `"` + escapeLiteral(lex) + `"`
	}
	if w.flags&WriteASCII != 0 {
		body = asciiEscape(body)
	}

	switch {
	case n.tag == TagLanguage:
		lang, _ := n.Lang()
		return body + "@" + lang
	case n.tag == TagDatatype:
		dt, _ := n.Datatype()
		if w.syntax == Turtle || w.syntax == TriG {
			switch dt {
			case "http://www.w3.org/2001/XMLSchema#integer",
				"http://www.w3.org/2001/XMLSchema#decimal",
				"http://www.w3.org/2001/XMLSchema#double",
				"http://www.w3.org/2001/XMLSchema#boolean":
				if isBareNumericSafe(lex, dt) {
					return lex
				}
			}
		}
		return body + "^^" + w.iriString(dt)
	default:
		return body
	}
}

// isBareNumericSafe reports whether lex can be written without quotes or
// an explicit datatype suffix and still lex back as the same datatype —
// in particular xsd:decimal forbids a bare trailing '.' (spec.md §4.6:
// "5." is not valid Turtle, since it would lex as an integer followed by
// the statement-terminating dot).
func isBareNumericSafe(lex, datatype string) bool {
	want := map[string]tokenType{
		"http://www.w3.org/2001/XMLSchema#integer": tokenLiteralInteger,
		"http://www.w3.org/2001/XMLSchema#decimal": tokenLiteralDecimal,
		"http://www.w3.org/2001/XMLSchema#double":  tokenLiteralDouble,
		"http://www.w3.org/2001/XMLSchema#boolean": tokenLiteralBoolean,
	}[datatype]
	if lex == "" || want == 0 {
		return false
	}
	l := newLexer(strings.NewReader(lex))
	t := l.nextToken()
	return t.typ == want && t.text == lex && l.nextToken().typ == tokenEOF
}

// escapeLiteralLong escapes only backslash; unlike escapeLiteral,
// newlines, quotes and all other characters pass through verbatim.
func escapeLiteralLong(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func asciiEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			b.WriteString(fmt.Sprintf(`\U%08X`, r))
		} else {
			b.WriteString(fmt.Sprintf(`\u%04X`, r))
		}
	}
	return b.String()
}
