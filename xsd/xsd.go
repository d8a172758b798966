// Package xsd exports IRIs of XML Schema built-in datatypes, for use as the
// Datatype of an rdf.Node literal.
package xsd

// The XML schema built-in datatypes (xsd):
// https://www.w3.org/TR/xmlschema11-2/
const (
	namespace = "http://www.w3.org/2001/XMLSchema#"

	// Core types.
	String  = namespace + "string"
	Boolean = namespace + "boolean"
	Decimal = namespace + "decimal"
	Integer = namespace + "integer"

	// IEEE floating-point numbers.
	Double = namespace + "double"
	Float  = namespace + "float"

	// Time and date.
	Date          = namespace + "date"
	Time          = namespace + "time"
	DateTime      = namespace + "dateTime"
	DateTimeStamp = namespace + "dateTimeStamp"

	// Recurring and partial dates.
	GYear             = namespace + "gYear"
	GMonth            = namespace + "gMonth"
	GDay              = namespace + "gDay"
	GYearMonth        = namespace + "gYearMonth"
	Duration          = namespace + "duration"
	YearMonthDuration = namespace + "yearMonthDuration"
	DayTimeDuration   = namespace + "dayTimeDuration"

	// Derived numeric types (spec §4.1's integer coercion ladder).
	NonNegativeInteger = namespace + "nonNegativeInteger"
	NonPositiveInteger = namespace + "nonPositiveInteger"
	NegativeInteger    = namespace + "negativeInteger"
	PositiveInteger    = namespace + "positiveInteger"

	Long  = namespace + "long"
	Int   = namespace + "int"
	Short = namespace + "short"
	Byte  = namespace + "byte"

	UnsignedLong  = namespace + "unsignedLong"
	UnsignedInt   = namespace + "unsignedInt"
	UnsignedShort = namespace + "unsignedShort"
	UnsignedByte  = namespace + "unsignedByte"

	HexBinary   = namespace + "hexBinary"
	Base64Binary = namespace + "base64Binary"

	AnyURI = namespace + "anyURI"
)
