package rdf

import (
	"fmt"
	"strings"
)

// Kind discriminates the RDF term variants a Node can hold.
type Kind int

// The four term kinds. Variable is a parser extension used in pattern
// contexts (spec §3); it is never produced unless ReaderOption VARIABLES
// is set.
const (
	IRIKind Kind = iota
	BlankKind
	LiteralKind
	VariableKind
)

func (k Kind) String() string {
	switch k {
	case IRIKind:
		return "IRI"
	case BlankKind:
		return "Blank"
	case LiteralKind:
		return "Literal"
	case VariableKind:
		return "Variable"
	default:
		return "unknown"
	}
}

// LitTag discriminates a Literal's metadata: none (implicitly xsd:string),
// a datatype IRI, or a language tag.
type LitTag int

const (
	TagNone LitTag = iota
	TagDatatype
	TagLanguage
)

// NodeFlags are advisory hints threaded from Reader to Writer.
type NodeFlags uint8

const (
	// HasNewline hints that the literal's lexical form contains a
	// newline, so a Writer should prefer the triple-quoted long form.
	HasNewline NodeFlags = 1 << iota
	// HasQuote hints that the literal's lexical form contains an
	// unescaped quote character matching its delimiter.
	HasQuote
	// IsLongString records that the source used the triple-quoted
	// long-string form, independent of whether it strictly needed to.
	IsLongString
)

// Node is an immutable RDF term value: an IRI, a blank node, a literal, or
// (as a parser extension) a variable. The zero Node is not meaningful;
// always construct with one of the New* functions.
type Node struct {
	kind  Kind
	value string // IRI string, blank label, literal lexical form, or variable name
	tag   LitTag
	meta  string // datatype IRI string or language tag, per tag
	flags NodeFlags
}

// The rdf: namespace and the rdf: vocabulary IRIs the core grammar itself
// depends on (the `a` keyword is rdf:type; collections are rdf:first/
// rdf:rest chains terminated by rdf:nil; language literals have an
// implicit rdf:langString datatype).
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFType       = RDFNamespace + "type"
	RDFFirst      = RDFNamespace + "first"
	RDFRest       = RDFNamespace + "rest"
	RDFNil        = RDFNamespace + "nil"
	RDFLangString = RDFNamespace + "langString"
)

// NewIRI constructs an IRI node. No validation of percent-escaping or
// Unicode class membership is performed here — that only applies to text
// being lexed from a document; a caller constructing Nodes directly is
// trusted to supply a well-formed absolute or relative reference.
func NewIRI(iri string) (Node, error) {
	if iri == "" {
		return Node{}, newError(StatusBadArg, Caret{}, "IRI cannot be empty")
	}
	for _, r := range iri {
		switch r {
		case ' ', '<', '>', '"', '{', '}', '|', '^', '`', '\\':
			return Node{}, newError(StatusBadArg, Caret{}, "IRI contains disallowed character %q", r)
		}
	}
	return Node{kind: IRIKind, value: iri}, nil
}

// NewIRIUnsafe constructs an IRI node without validating its contents.
func NewIRIUnsafe(iri string) Node {
	return Node{kind: IRIKind, value: iri}
}

// NewBlank constructs a blank node with the given label (without the
// leading "_:").
func NewBlank(id string) (Node, error) {
	if strings.TrimSpace(id) == "" {
		return Node{}, newError(StatusBadArg, Caret{}, "blank node cannot have an empty ID")
	}
	return Node{kind: BlankKind, value: id}, nil
}

// NewBlankUnsafe is like NewBlank but performs no validation.
func NewBlankUnsafe(id string) Node {
	return Node{kind: BlankKind, value: id}
}

// NewVariable constructs a pattern variable (e.g. for `?name`/`$name`
// extensions some Turtle-family tools accept).
func NewVariable(name string) (Node, error) {
	if name == "" {
		return Node{}, newError(StatusBadArg, Caret{}, "variable cannot have an empty name")
	}
	return Node{kind: VariableKind, value: name}, nil
}

// NewPlainLiteral constructs a literal with no datatype or language tag
// (implicitly xsd:string, per RDF 1.1).
func NewPlainLiteral(lexical string) Node {
	return Node{kind: LiteralKind, value: lexical, tag: TagNone}
}

// NewTypedLiteral constructs a literal with an explicit datatype IRI. It is
// BAD_ARG to pass rdf:langString here — use NewLangLiteral instead, since a
// language tag is mandatory for that datatype.
func NewTypedLiteral(lexical string, datatypeIRI string) (Node, error) {
	if datatypeIRI == RDFLangString {
		return Node{}, newError(StatusBadArg, Caret{}, "rdf:langString literal must be constructed with a language tag")
	}
	return Node{kind: LiteralKind, value: lexical, tag: TagDatatype, meta: datatypeIRI}, nil
}

// NewTypedLiteralUnsafe is like NewTypedLiteral but performs no validation.
func NewTypedLiteralUnsafe(lexical, datatypeIRI string) Node {
	return Node{kind: LiteralKind, value: lexical, tag: TagDatatype, meta: datatypeIRI}
}

// NewLangLiteral constructs a language-tagged literal. Its datatype is
// implicitly rdf:langString (spec §3). No BCP-47 conformance check is
// performed, matching the teacher's NewLangLiteral.
func NewLangLiteral(lexical, lang string) (Node, error) {
	if lang == "" {
		return Node{}, newError(StatusBadArg, Caret{}, "language tag cannot be empty")
	}
	return Node{kind: LiteralKind, value: lexical, tag: TagLanguage, meta: lang}, nil
}

// Kind returns the term kind of n.
func (n Node) Kind() Kind { return n.kind }

// Value returns the node's principal value: the IRI string, the blank
// label, the literal's lexical form, or the variable name.
func (n Node) Value() string { return n.value }

// Datatype returns the literal's datatype IRI and true, or ("", false) if n
// is not a literal or carries no explicit datatype (implicit xsd:string) or
// carries a language tag instead (implicit rdf:langString; use Lang for
// that case).
func (n Node) Datatype() (string, bool) {
	if n.kind != LiteralKind || n.tag != TagDatatype {
		return "", false
	}
	return n.meta, true
}

// Lang returns the literal's language tag and true, or ("", false) if n is
// not a language-tagged literal.
func (n Node) Lang() (string, bool) {
	if n.kind != LiteralKind || n.tag != TagLanguage {
		return "", false
	}
	return n.meta, true
}

// EffectiveDatatype returns the literal's datatype IRI whether implicit or
// explicit: rdf:langString for language-tagged literals, xsd:string for
// plain literals, or the explicit datatype otherwise. Panics if n is not a
// literal.
func (n Node) EffectiveDatatype() string {
	if n.kind != LiteralKind {
		panic("rdf: EffectiveDatatype called on non-literal Node")
	}
	switch n.tag {
	case TagLanguage:
		return RDFLangString
	case TagDatatype:
		return n.meta
	default:
		return xsdStringIRI
	}
}

// Flags returns the advisory writer hints carried on n.
func (n Node) Flags() NodeFlags { return n.flags }

// WithFlags returns a copy of n with the given flags set (OR'd onto any
// existing flags).
func (n Node) WithFlags(f NodeFlags) Node {
	n.flags |= f
	return n
}

// IsTerm reports whether n was ever constructed (as opposed to the zero
// Node, which is not a valid term).
func (n Node) IsTerm() bool { return n.kind != IRIKind || n.value != "" || n.tag != TagNone }

// String renders n in Turtle/SPARQL-compatible term syntax, used for
// diagnostics and as the canonical NTriples term text when Writer is not
// involved (e.g. in error messages).
func (n Node) String() string {
	switch n.kind {
	case IRIKind:
		return "<" + n.value + ">"
	case BlankKind:
		return "_:" + n.value
	case VariableKind:
		return "?" + n.value
	case LiteralKind:
		switch n.tag {
		case TagLanguage:
			return fmt.Sprintf("%q@%s", n.value, n.meta)
		case TagDatatype:
			return fmt.Sprintf("%q^^<%s>", n.value, n.meta)
		default:
			return fmt.Sprintf("%q", n.value)
		}
	default:
		return "<invalid node>"
	}
}

// Equals tests equality per spec §4.1: kind, lexical value, tag, and
// (recursively) the metadata node's lexical form must all match.
func (n Node) Equals(other Node) bool {
	if n.kind != other.kind {
		return false
	}
	if n.value != other.value {
		return false
	}
	if n.kind != LiteralKind {
		return true
	}
	return n.tag == other.tag && n.meta == other.meta
}

// Compare yields a total order over Nodes: by kind, then lexical value,
// then tag, then metadata lexical form (a full Node order generalising
// the teacher's bySubjectThenPred sort in encoder.go). The package has no
// statement-sorting helper built on it.
func (n Node) Compare(other Node) int {
	if n.kind != other.kind {
		return int(n.kind) - int(other.kind)
	}
	if c := strings.Compare(n.value, other.value); c != 0 {
		return c
	}
	if n.kind != LiteralKind {
		return 0
	}
	if n.tag != other.tag {
		return int(n.tag) - int(other.tag)
	}
	return strings.Compare(n.meta, other.meta)
}
