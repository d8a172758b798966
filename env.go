package rdf

import (
	"net/url"
	"strings"
)

// prefixEntry is one row of an Environment's ordered prefix table. Order
// is preserved (not a map) so that Writer output is deterministic and a
// later declaration of the same prefix label shadows an earlier one
// without disturbing iteration order for the rest.
type prefixEntry struct {
	label string // without the trailing ':'
	iri   string
}

// Environment holds the parse/serialise state that is not part of any
// single statement: the current base IRI and the ordered table of
// `@prefix`/`PREFIX` declarations in scope. A Reader updates an
// Environment as it encounters base and prefix directives; a Writer
// consults one to decide whether an IRI can be abbreviated.
type Environment struct {
	base    *url.URL
	prefix  []prefixEntry
}

// NewEnvironment returns an empty Environment with no base IRI and no
// prefix declarations.
func NewEnvironment() *Environment {
	return &Environment{}
}

// SetBase sets the environment's base IRI, resolving it against any
// existing base first if it is itself relative (per Turtle/TriG's
// `@base`-relative-to-previous-`@base` semantics). Returns BAD_ARG if raw
// does not parse as a URI reference at all.
func (e *Environment) SetBase(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return newError(StatusBadArg, Caret{}, "invalid base IRI %q: %v", raw, err)
	}
	if e.base != nil {
		u = e.base.ResolveReference(u)
	}
	e.base = u
	return nil
}

// Base returns the current base IRI, or "" if none has been set.
func (e *Environment) Base() string {
	if e.base == nil {
		return ""
	}
	return e.base.String()
}

// Resolve expands a (possibly relative) IRI reference against the current
// base IRI using RFC 3986 §5 reference resolution. If no base has been
// set, raw must already be absolute, or BAD_ARG is returned.
//
// This replaces the teacher's ttl.go approach of string-concatenating
// base.str and the suffix directly, which silently produces wrong
// results for references containing "./" or "../" segments or a query
// string; net/url.URL.ResolveReference implements the RFC correctly.
func (e *Environment) Resolve(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", newError(StatusBadArg, Caret{}, "invalid IRI reference %q: %v", raw, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if e.base == nil {
		return "", newError(StatusBadArg, Caret{}, "relative IRI %q with no base set", raw)
	}
	return e.base.ResolveReference(u).String(), nil
}

// SetPrefix declares or redeclares a prefix label to map to the given
// (already-absolute) IRI namespace. A later call with the same label
// replaces the earlier mapping.
func (e *Environment) SetPrefix(label, iri string) {
	for i, p := range e.prefix {
		if p.label == label {
			e.prefix[i].iri = iri
			return
		}
	}
	e.prefix = append(e.prefix, prefixEntry{label: label, iri: iri})
}

// UnsetPrefix removes a previously declared prefix label, if present.
func (e *Environment) UnsetPrefix(label string) {
	for i, p := range e.prefix {
		if p.label == label {
			e.prefix = append(e.prefix[:i], e.prefix[i+1:]...)
			return
		}
	}
}

// Prefixes returns the current prefix table in declaration order, as
// (label, iri) pairs. The returned slice is a copy.
func (e *Environment) Prefixes() [][2]string {
	out := make([][2]string, len(e.prefix))
	for i, p := range e.prefix {
		out[i] = [2]string{p.label, p.iri}
	}
	return out
}

// Qualify performs a linear scan of the prefix table in declaration
// order and returns the first entry whose IRI is a literal prefix of
// iri, not the longest one: spec §4.2 ties Qualify's ambiguity
// resolution to declaration order, not to namespace length, so a
// shorter prefix declared earlier wins over a longer one declared
// later even if both match. It returns ("", "", false) if no declared
// prefix matches, or if every match's computed suffix would fail to
// lex back as a valid PN_LOCAL (a Writer must never emit a prefixed
// name it cannot round-trip).
func (e *Environment) Qualify(iri string) (label, suffix string, ok bool) {
	for _, p := range e.prefix {
		if p.iri == "" || !strings.HasPrefix(iri, p.iri) {
			continue
		}
		rest := iri[len(p.iri):]
		if rest == "" || !isValidPNLocal(rest) {
			continue
		}
		return p.label, rest, true
	}
	return "", "", false
}

// Expand resolves a CURIE (prefix:suffix) to an absolute IRI using the
// environment's prefix table. Returns BAD_CURIE if the prefix label is
// not declared.
func (e *Environment) Expand(label, suffix string) (string, error) {
	for _, p := range e.prefix {
		if p.label == label {
			return p.iri + suffix, nil
		}
	}
	return "", newError(StatusBadCurie, Caret{}, "undeclared prefix %q", label)
}

// isValidPNLocal reports whether s could lex back as a Turtle PN_LOCAL
// production without escaping, so Qualify never emits a prefixed name a
// conformant reader would reject.
func isValidPNLocal(s string) bool {
	if s == "" {
		return false
	}
	first := true
	for _, r := range s {
		if first {
			if !isPnCharsU(r) && r != ':' && !isDigit(r) {
				return false
			}
			first = false
			continue
		}
		if !isPnChars(r) && r != ':' && r != '.' {
			return false
		}
	}
	// A trailing '.' cannot be part of PN_LOCAL (it would be read back as
	// the statement terminator).
	return !strings.HasSuffix(s, ".")
}
