package rdf

import (
	"math"
	"math/big"
	"strconv"

	"github.com/knakk/rdfstream/xsd"
)

// xsdStringIRI is the implicit datatype of a Node constructed with
// NewPlainLiteral, per RDF 1.1 §5.1.
const xsdStringIRI = xsd.String

// Bool coerces a boolean literal's lexical form to a Go bool, accepting
// both the canonical "true"/"false" and the XSD Schema Part 2 "1"/"0"
// forms. It is BAD_CALL on a non-literal node and BAD_DATA if the lexical
// form matches neither form.
func (n Node) Bool() (bool, error) {
	if n.kind != LiteralKind {
		return false, newError(StatusBadCall, Caret{}, "Bool called on a %s node", n.kind)
	}
	switch n.value {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, newError(StatusBadData, Caret{}, "invalid xsd:boolean lexical form %q", n.value)
	}
}

// Int coerces an integer-family literal to an int64, returning BAD_DATA if
// the lexical form is not a valid base-10 integer or it overflows int64.
// Use BigInt for xsd:integer values that may exceed 64 bits.
func (n Node) Int() (int64, error) {
	if n.kind != LiteralKind {
		return 0, newError(StatusBadCall, Caret{}, "Int called on a %s node", n.kind)
	}
	i, err := strconv.ParseInt(n.value, 10, 64)
	if err != nil {
		return 0, newError(StatusBadData, Caret{}, "invalid integer lexical form %q: %v", n.value, err)
	}
	return i, nil
}

// Uint coerces an unsigned-integer-family literal (xsd:unsignedLong and
// narrower, xsd:nonNegativeInteger) to a uint64.
func (n Node) Uint() (uint64, error) {
	if n.kind != LiteralKind {
		return 0, newError(StatusBadCall, Caret{}, "Uint called on a %s node", n.kind)
	}
	u, err := strconv.ParseUint(n.value, 10, 64)
	if err != nil {
		return 0, newError(StatusBadData, Caret{}, "invalid unsigned integer lexical form %q: %v", n.value, err)
	}
	return u, nil
}

// BigInt coerces an xsd:integer (or any derived integer datatype)
// literal's lexical form into an arbitrary-precision integer, losslessly.
// Grounded on pascaldekloe/tripn's Triple.XSDInteger, which solves the
// identical "xsd:integer has no fixed width" problem with math/big.Int.
func (n Node) BigInt() (*big.Int, error) {
	if n.kind != LiteralKind {
		return nil, newError(StatusBadCall, Caret{}, "BigInt called on a %s node", n.kind)
	}
	i, ok := new(big.Int).SetString(n.value, 10)
	if !ok {
		return nil, newError(StatusBadData, Caret{}, "invalid xsd:integer lexical form %q", n.value)
	}
	return i, nil
}

// BigFloat coerces an xsd:decimal literal's lexical form into a
// math/big.Float with a 256-bit binary mantissa. xsd:decimal has unbounded
// precision and scale, which float64 cannot represent exactly; big.Float
// is far closer, though a decimal fraction such as 0.1 is still rounded to
// the 256-bit mantissa. This is the stdlib type chosen here,
// matching pascaldekloe/tripn's Triple.XSDDecimal.
func (n Node) BigFloat() (*big.Float, error) {
	if n.kind != LiteralKind {
		return nil, newError(StatusBadCall, Caret{}, "BigFloat called on a %s node", n.kind)
	}
	f, ok := new(big.Float).SetPrec(256).SetString(n.value)
	if !ok {
		return nil, newError(StatusBadData, Caret{}, "invalid xsd:decimal lexical form %q", n.value)
	}
	return f, nil
}

// Float coerces an xsd:float or xsd:double literal to a Go float64 via
// strconv.ParseFloat, accepting the XSD special lexical forms "INF",
// "-INF" and "NaN".
func (n Node) Float() (float64, error) {
	if n.kind != LiteralKind {
		return 0, newError(StatusBadCall, Caret{}, "Float called on a %s node", n.kind)
	}
	switch n.value {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(n.value, 64)
	if err != nil {
		return 0, newError(StatusBadData, Caret{}, "invalid floating point lexical form %q: %v", n.value, err)
	}
	return f, nil
}

// integerRange describes the inclusive bounds of a fixed-width XSD integer
// derived datatype, used by NarrowestIntegerDatatype (and so by
// NewIntegerLiteral) to pick the narrowest matching datatype.
type integerRange struct {
	datatype   string
	min, max   *big.Int
	isUnsigned bool
}

func mustBigInt(s string) *big.Int {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("rdf: invalid literal constant " + s)
	}
	return i
}

// integerRanges is ordered narrowest-first within each signedness family,
// matching the widening/narrowing ladder spec §4.1 describes for
// coercing an xsd:integer into the smallest fixed-width datatype that can
// hold it.
var integerRanges = []integerRange{
	{xsd.Byte, mustBigInt("-128"), mustBigInt("127"), false},
	{xsd.Short, mustBigInt("-32768"), mustBigInt("32767"), false},
	{xsd.Int, mustBigInt("-2147483648"), mustBigInt("2147483647"), false},
	{xsd.Long, mustBigInt("-9223372036854775808"), mustBigInt("9223372036854775807"), false},
	{xsd.UnsignedByte, mustBigInt("0"), mustBigInt("255"), true},
	{xsd.UnsignedShort, mustBigInt("0"), mustBigInt("65535"), true},
	{xsd.UnsignedInt, mustBigInt("0"), mustBigInt("4294967295"), true},
	{xsd.UnsignedLong, mustBigInt("0"), mustBigInt("18446744073709551615"), true},
}

// NarrowestIntegerDatatype returns the narrowest signed or unsigned fixed
// width XSD datatype IRI that can hold v, or xsd.Integer if v exceeds even
// xsd:unsignedLong/xsd:long range.
func NarrowestIntegerDatatype(v *big.Int) string {
	for _, r := range integerRanges {
		if r.isUnsigned && v.Sign() < 0 {
			continue
		}
		if v.Cmp(r.min) >= 0 && v.Cmp(r.max) <= 0 {
			return r.datatype
		}
	}
	return xsd.Integer
}

// NewIntegerLiteral constructs a literal node for v, tagged with the
// narrowest fixed-width XSD integer datatype that can represent it.
func NewIntegerLiteral(v *big.Int) Node {
	dt := NarrowestIntegerDatatype(v)
	return NewTypedLiteralUnsafe(v.String(), dt)
}

// NewDecimalLiteral constructs an xsd:decimal literal node from an
// arbitrary-precision float, formatted without a trailing exponent (xsd:decimal
// has no exponent form, unlike xsd:double).
func NewDecimalLiteral(v *big.Float) Node {
	return NewTypedLiteralUnsafe(v.Text('f', -1), xsd.Decimal)
}

// NewDoubleLiteral constructs an xsd:double literal node, using the XSD
// special lexical forms for infinities and NaN.
func NewDoubleLiteral(v float64) Node {
	var s string
	switch {
	case math.IsInf(v, 1):
		s = "INF"
	case math.IsInf(v, -1):
		s = "-INF"
	case math.IsNaN(v):
		s = "NaN"
	default:
		s = strconv.FormatFloat(v, 'E', -1, 64)
	}
	return NewTypedLiteralUnsafe(s, xsd.Double)
}

// NewBoolLiteral constructs an xsd:boolean literal using the canonical
// "true"/"false" lexical forms.
func NewBoolLiteral(v bool) Node {
	if v {
		return NewTypedLiteralUnsafe("true", xsd.Boolean)
	}
	return NewTypedLiteralUnsafe("false", xsd.Boolean)
}
