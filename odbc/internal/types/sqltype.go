// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package types implements the L5 type system and conversion matrix of
// spec.md §4.5: the concise/verbose SQL type pair, the C type set, and
// the convert(from, to) dispatch table. Grounded on
// driver/internal/protocol/typecode.go's TypeCode -> DataType/fieldType
// switch-dispatch style, generalized from HANA wire type codes to the
// ODBC SQL-type/C-type matrix named in the spec.
package types

// SQLType enumerates the SQL-side concise types named in spec.md §4.5.
type SQLType int

// Concise SQL types.
const (
	SQLChar SQLType = iota
	SQLVarchar
	SQLLongVarchar
	SQLWChar
	SQLWVarchar
	SQLWLongVarchar
	SQLSmallint
	SQLInteger
	SQLBigint
	SQLFloat
	SQLReal
	SQLDouble
	SQLNumeric
	SQLDecimal
	SQLDate
	SQLTime
	SQLTimestamp
	SQLBoolean
	SQLBinary
	SQLVarbinary
	SQLLongVarbinary
	SQLBlobText
	SQLBlobBinary
	SQLGUID
)

// DatetimeSubtype distinguishes the date/time/interval subtype carried by
// a verbose SQL type, per spec.md's "Subtype (for datetime/interval)".
type DatetimeSubtype int

// Subtype values. CodeNone applies to non-datetime concise types.
const (
	CodeNone DatetimeSubtype = iota
	CodeDate
	CodeTime
	CodeTimestamp
)

// VerboseType is the unconcised (type, subtype) pair. ConciseType must
// round-trip through VerboseOf/ConciseOf per spec.md's descriptor record
// invariant: "ConciseType = verbosity_of(VerboseType, Subtype) must
// round-trip."
type VerboseType struct {
	Datetime bool // true if this concise type carries a datetime subtype
	Subtype  DatetimeSubtype
}

// VerboseOf derives the (verbose, subtype) pair for a concise SQL type.
func VerboseOf(t SQLType) VerboseType {
	switch t {
	case SQLDate:
		return VerboseType{Datetime: true, Subtype: CodeDate}
	case SQLTime:
		return VerboseType{Datetime: true, Subtype: CodeTime}
	case SQLTimestamp:
		return VerboseType{Datetime: true, Subtype: CodeTimestamp}
	default:
		return VerboseType{}
	}
}

// ConciseOf re-derives the concise SQL type from a verbose/subtype pair.
// Returns ok=false if the pair does not name a recognized datetime type
// (non-datetime concise types carry no verbose/subtype information to
// invert, so callers must retain the original concise type themselves).
func ConciseOf(v VerboseType) (SQLType, bool) {
	if !v.Datetime {
		return 0, false
	}
	switch v.Subtype {
	case CodeDate:
		return SQLDate, true
	case CodeTime:
		return SQLTime, true
	case CodeTimestamp:
		return SQLTimestamp, true
	default:
		return 0, false
	}
}

// IsCharacter reports whether t is one of the CHAR/WCHAR family.
func (t SQLType) IsCharacter() bool {
	switch t {
	case SQLChar, SQLVarchar, SQLLongVarchar, SQLWChar, SQLWVarchar, SQLWLongVarchar:
		return true
	}
	return false
}

// IsWide reports whether t is one of the 16-bit-unit WCHAR family.
func (t SQLType) IsWide() bool {
	switch t {
	case SQLWChar, SQLWVarchar, SQLWLongVarchar:
		return true
	}
	return false
}

// IsBinary reports whether t is one of the BINARY family (including LOBs).
func (t SQLType) IsBinary() bool {
	switch t {
	case SQLBinary, SQLVarbinary, SQLLongVarbinary, SQLBlobBinary:
		return true
	}
	return false
}

// IsLob reports whether t streams via the BLOB-streaming conversion path
// of spec.md §4.5.
func (t SQLType) IsLob() bool {
	return t == SQLBlobText || t == SQLBlobBinary || t == SQLLongVarchar || t == SQLWLongVarchar || t == SQLLongVarbinary
}

// IsNumeric reports whether t is one of the exact/approximate numeric
// family (excluding NUMERIC/DECIMAL, which carry precision/scale and are
// tested separately via IsDecimal).
func (t SQLType) IsNumeric() bool {
	switch t {
	case SQLSmallint, SQLInteger, SQLBigint, SQLFloat, SQLReal, SQLDouble:
		return true
	}
	return false
}

// IsDecimal reports whether t is NUMERIC(p,s) or DECIMAL(p,s).
func (t SQLType) IsDecimal() bool { return t == SQLNumeric || t == SQLDecimal }

// String implements fmt.Stringer for diagnostics/logging.
func (t SQLType) String() string {
	names := [...]string{
		"CHAR", "VARCHAR", "LONGVARCHAR", "WCHAR", "WVARCHAR", "WLONGVARCHAR",
		"SMALLINT", "INTEGER", "BIGINT", "FLOAT", "REAL", "DOUBLE",
		"NUMERIC", "DECIMAL", "DATE", "TIME", "TIMESTAMP", "BOOLEAN",
		"BINARY", "VARBINARY", "LONGVARBINARY", "BLOB_TEXT", "BLOB_BINARY", "GUID",
	}
	if int(t) < 0 || int(t) >= len(names) {
		return "UNKNOWN"
	}
	return names[t]
}
