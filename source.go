package rdf

import (
	"bufio"
	"io"
)

// ByteSource is the external collaborator a Reader pulls bytes from. It
// names the byte-level contract explicitly instead of letting Reader
// depend directly on io.Reader, so a caller can supply a source that also
// tracks document identity and position for diagnostics (the Caret a
// parse error carries). NewReader also requires the source to implement
// io.Reader and reads only through that; see NewReader.
type ByteSource interface {
	// Peek returns the next unread byte without consuming it, and false
	// if the source is exhausted.
	Peek() (byte, bool)
	// Advance consumes the byte last returned by Peek.
	Advance() error
	// Caret returns the source's current position, for error reporting.
	Caret() Caret
	// Prepare is called once before the first Peek, to let a source do
	// setup (e.g. validate a BOM) that should itself report errors
	// through the normal Status mechanism rather than at construction.
	Prepare() error
}

// readerSource adapts an io.Reader into a ByteSource, tracking line/column
// position as it goes. It also implements io.Reader directly (delegating
// to the same underlying bufio.Reader) so the internal lexer — which,
// like the teacher's, reads whole lines at a time for efficiency rather
// than one byte at a time — can be driven from the same source without a
// second buffering layer.
type readerSource struct {
	rdr      *bufio.Reader
	document string
	line     int
	col      int
	pending  byte
	hasPend  bool
	prepared bool
}

// NewReaderSource wraps an io.Reader as a ByteSource. document names the
// source for diagnostics (e.g. a file path); it may be empty.
func NewReaderSource(r io.Reader, document string) ByteSource {
	return &readerSource{rdr: bufio.NewReader(r), document: document, line: 1}
}

func (s *readerSource) Prepare() error {
	s.prepared = true
	return nil
}

func (s *readerSource) Peek() (byte, bool) {
	if s.hasPend {
		return s.pending, true
	}
	b, err := s.rdr.ReadByte()
	if err != nil {
		return 0, false
	}
	if err2 := s.rdr.UnreadByte(); err2 != nil {
		// Can't unread twice in a row; cache the byte ourselves instead.
		s.pending, s.hasPend = b, true
	}
	return b, true
}

func (s *readerSource) Advance() error {
	b, ok := s.Peek()
	if !ok {
		return newError(StatusNoData, s.Caret(), "advance past end of input")
	}
	if s.hasPend {
		s.hasPend = false
	} else {
		if _, err := s.rdr.ReadByte(); err != nil {
			return newError(StatusBadCursor, s.Caret(), "%v", err)
		}
	}
	if b == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return nil
}

func (s *readerSource) Caret() Caret {
	return Caret{Document: s.document, Line: s.line, Col: s.col}
}

// Read implements io.Reader by delegating straight to the underlying
// buffered reader, bypassing the byte-at-a-time Peek/Advance bookkeeping;
// the internal lexer uses this path exclusively and maintains its own
// line/column accounting (matching the teacher's lexer design), so the
// two tracking mechanisms are never mixed on the same source.
func (s *readerSource) Read(p []byte) (int, error) {
	return s.rdr.Read(p)
}
