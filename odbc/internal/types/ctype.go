// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package types

// CType enumerates the C-side buffer types named in spec.md §4.5.
type CType int

// C types the application binds buffers as.
const (
	CChar CType = iota
	CWChar
	CBinary
	CBit
	CSTinyint
	CUTinyint
	CSShort
	CUShort
	CSLong
	CULong
	CSBigint
	CUBigint
	CFloat
	CDouble
	CNumeric
	CDate
	CTime
	CTimestamp
	CGUID
	CDefault // SQL_C_DEFAULT: caller defers the choice to the driver's default mapping
)

// NumericStruct is the fixed-layout C struct backing the NUMERIC C type,
// mirroring the ODBC SQL_NUMERIC_STRUCT: a 16-octet little-endian
// magnitude plus precision, scale and sign carried out of band from the
// digit buffer itself.
type NumericStruct struct {
	Precision uint8
	Scale     int8
	Sign      uint8 // 1 = positive, 0 = negative
	Val       [16]byte
}

// DefaultCType returns the C type the driver binds to when the caller
// passes SQL_C_DEFAULT, per spec.md's "default C type" mapping table.
func DefaultCType(s SQLType) CType {
	switch {
	case s.IsWide():
		return CWChar
	case s.IsCharacter():
		return CChar
	case s.IsBinary():
		return CBinary
	case s.IsDecimal():
		return CNumeric
	}
	switch s {
	case SQLSmallint:
		return CSShort
	case SQLInteger:
		return CSLong
	case SQLBigint:
		return CSBigint
	case SQLFloat, SQLDouble:
		return CDouble
	case SQLReal:
		return CFloat
	case SQLDate:
		return CDate
	case SQLTime:
		return CTime
	case SQLTimestamp:
		return CTimestamp
	case SQLBoolean:
		return CBit
	case SQLGUID:
		return CGUID
	case SQLBlobText:
		return CChar
	case SQLBlobBinary:
		return CBinary
	default:
		return CChar
	}
}

// String implements fmt.Stringer for diagnostics/logging.
func (c CType) String() string {
	names := [...]string{
		"CHAR", "WCHAR", "BINARY", "BIT", "STINYINT", "UTINYINT",
		"SSHORT", "USHORT", "SLONG", "ULONG", "SBIGINT", "UBIGINT",
		"FLOAT", "DOUBLE", "NUMERIC", "DATE", "TIME", "TIMESTAMP", "GUID", "DEFAULT",
	}
	if int(c) < 0 || int(c) >= len(names) {
		return "UNKNOWN"
	}
	return names[c]
}
