package rdf

import "fmt"

// Status is the closed set of outcomes a Reader, Writer, Node or
// Environment operation can report. SUCCESS and FAILURE are not error
// conditions: FAILURE means "no match was found at this try-point" and is
// used internally by lookahead helpers; it never escapes to a caller.
type Status int

// The exported status kinds, per spec §7.
const (
	StatusSuccess Status = iota
	StatusFailure

	StatusNoData   // unexpected EOF mid-token
	StatusOverflow // caller buffer too small (unused by this Go API, kept for parity)

	StatusBadStack  // reader/writer nesting depth exhausted
	StatusBadSyntax // grammar violation
	StatusBadText   // invalid UTF-8
	StatusBadLabel  // blank-node label collision
	StatusBadCurie  // unknown prefix

	StatusBadArg   // API misuse: impossible argument combination
	StatusBadCall  // API misuse: operation invalid in current state
	StatusBadEvent // API misuse: sink received an out-of-contract event
	StatusBadData  // API misuse: malformed statement passed to a Sink

	StatusBadAlloc  // host/infrastructure: allocation failure
	StatusBadWrite  // host/infrastructure: byte sink write failure
	StatusBadCursor // host/infrastructure: byte source cursor failure
	StatusInternal  // host/infrastructure: implementation bug
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusNoData:
		return "no data"
	case StatusOverflow:
		return "overflow"
	case StatusBadStack:
		return "bad stack"
	case StatusBadSyntax:
		return "bad syntax"
	case StatusBadText:
		return "bad text"
	case StatusBadLabel:
		return "bad label"
	case StatusBadCurie:
		return "bad curie"
	case StatusBadArg:
		return "bad argument"
	case StatusBadCall:
		return "bad call"
	case StatusBadEvent:
		return "bad event"
	case StatusBadData:
		return "bad data"
	case StatusBadAlloc:
		return "bad alloc"
	case StatusBadWrite:
		return "bad write"
	case StatusBadCursor:
		return "bad cursor"
	case StatusInternal:
		return "internal error"
	default:
		return "unknown status"
	}
}

// Caret locates a point in a document for diagnostics.
type Caret struct {
	Document string
	Line     int
	Col      int
}

func (c Caret) String() string {
	if c.Document == "" {
		return fmt.Sprintf("%d:%d", c.Line, c.Col)
	}
	return fmt.Sprintf("%s:%d:%d", c.Document, c.Line, c.Col)
}

// Error is the error type returned by every fallible operation in this
// package. It always carries a Status; Caret is the zero value when the
// error did not originate from reading a document.
type Error struct {
	Status  Status
	Caret   Caret
	Message string
}

func (e *Error) Error() string {
	if e.Caret.Line == 0 && e.Caret.Document == "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Caret, e.Status, e.Message)
}

// Is lets errors.Is(err, target) match on Status via a sentinel such as
// &Error{Status: StatusBadSyntax}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

func newError(status Status, caret Caret, format string, args ...interface{}) *Error {
	return &Error{Status: status, Caret: caret, Message: fmt.Sprintf(format, args...)}
}

// tolerateStatus reports whether a reader in lax mode should recover from
// this status by skipping to the next newline and continuing. Per spec §7:
// SUCCESS/FAILURE are not errors; BAD_STACK/BAD_WRITE/NO_DATA/BAD_CALL/
// BAD_CURSOR are always fatal; everything else is tolerated in lax mode.
func tolerateStatus(s Status) bool {
	switch s {
	case StatusSuccess, StatusFailure:
		return true
	case StatusBadStack, StatusBadWrite, StatusNoData, StatusBadCall, StatusBadCursor:
		return false
	case StatusBadSyntax, StatusBadText, StatusBadLabel, StatusBadCurie:
		return true
	default:
		return false
	}
}
