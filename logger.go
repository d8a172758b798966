package rdf

// Level is the severity of a logged event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Fields carries structured context for a logged event: at minimum the
// document/line/col a Caret provides when the event originates from
// reading, plus whatever else a caller's Logger cares to pass through
// call sites that don't have a Caret at hand.
type Fields map[string]interface{}

// fieldsFromCaret builds the file/line/col fields a Reader attaches to
// every message it logs, so a structured log sink can filter/group on
// them without parsing the message string.
func fieldsFromCaret(c Caret) Fields {
	f := Fields{"line": c.Line, "col": c.Col}
	if c.Document != "" {
		f["file"] = c.Document
	}
	return f
}

// Logger is consulted by a Reader when it recovers from a tolerated error
// in lax mode. A Writer accepts one (WithWriterLogger) but never calls
// it. A nil Logger disables logging entirely; this is the zero value and
// the default.
type Logger func(level Level, fields Fields, message string)
