// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fbclient/godbc/odbc/unicode/codec"
)

// Status is the outcome of a single conversion.
type Status int

// Conversion outcomes, matching the SQLSTATEs named in spec.md §4.5.
const (
	StatusOK Status = iota
	StatusTruncated           // 01004
	StatusOutOfRange          // 22003
	StatusInvalidFormat       // 22018
	StatusNull                // source value is SQL NULL
	StatusUnsupported         // 07006: no conversion exists between these types
)

// Kind classifies how lossy a conversion is, used by callers that need to
// decide whether round-tripping a value is expected to be exact.
type Kind int

// Conversion kinds.
const (
	KindExact Kind = iota
	KindWidening
	KindTruncating
)

// Result is what Convert returns: the conversion outcome, the number of
// bytes the destination buffer would need (independent of whether dst was
// large enough to hold it, mirroring StrLen_or_IndPtr semantics), and the
// pre-truncation source length when Status is StatusTruncated.
type Result struct {
	Status          Status
	Kind            Kind
	TotalBytesReq   int64
	PreTruncLen     int64
}

// entry is one row of the convert(from, to) dispatch table.
type entry struct {
	kind Kind
	fn   func(src Value, dst []byte) Result
}

// Value is a self-describing source value: exactly one of the typed
// fields is meaningful, selected by SQLType.
type Value struct {
	SQLType SQLType
	IsNull  bool

	Str     string // CHAR/VARCHAR/LONGVARCHAR text, and WCHAR text when Wide is nil (already UTF-8)
	Wide    []codec.Unit
	Bytes   []byte
	Int64   int64
	Uint64  uint64
	Float64 float64
	Bool    bool
	Numeric NumericValue
	Date    DateValue
	Time    TimeValue
	Stamp   TimestampValue
	GUID    [16]byte
}

// DateValue, TimeValue, TimestampValue mirror the ODBC DATE_STRUCT /
// TIME_STRUCT / TIMESTAMP_STRUCT layouts.
type DateValue struct{ Year int16; Month, Day uint8 }
type TimeValue struct{ Hour, Minute, Second uint8 }
type TimestampValue struct {
	Year              int16
	Month, Day        uint8
	Hour, Minute, Sec uint8
	Fraction          uint32 // nanoseconds
}

var matrix = map[SQLType]map[CType]entry{}

func register(s SQLType, c CType, k Kind, fn func(Value, []byte) Result) {
	row, ok := matrix[s]
	if !ok {
		row = map[CType]entry{}
		matrix[s] = row
	}
	row[c] = entry{kind: k, fn: fn}
}

// Convert looks up and executes the conversion from src's SQL type to the
// requested C type, writing into dst (which may be nil for a size-only
// probe, mirroring codec.EncodeUTF8's nil-destination convention).
func Convert(src Value, to CType, dst []byte) Result {
	if src.IsNull {
		return Result{Status: StatusNull}
	}
	row, ok := matrix[src.SQLType]
	if !ok {
		return Result{Status: StatusUnsupported}
	}
	e, ok := row[to]
	if !ok {
		return Result{Status: StatusUnsupported}
	}
	r := e.fn(src, dst)
	r.Kind = e.kind
	return r
}

func init() {
	registerCharConversions()
	registerNumericConversions()
	registerBooleanConversions()
	registerDatetimeConversions()
	registerBinaryConversions()
	registerGUIDConversions()
}

func registerCharConversions() {
	toChar := func(v Value, dst []byte) Result {
		s := renderText(v)
		return writeText(s, dst, false)
	}
	toWChar := func(v Value, dst []byte) Result {
		s := renderText(v)
		return writeText(s, dst, true)
	}
	for _, s := range []SQLType{SQLChar, SQLVarchar, SQLLongVarchar, SQLWChar, SQLWVarchar, SQLWLongVarchar,
		SQLSmallint, SQLInteger, SQLBigint, SQLFloat, SQLReal, SQLDouble, SQLNumeric, SQLDecimal,
		SQLDate, SQLTime, SQLTimestamp, SQLBoolean, SQLGUID} {
		register(s, CChar, KindTruncating, toChar)
		register(s, CWChar, KindTruncating, toWChar)
	}
}

// renderText formats any supported source value as its canonical textual
// representation, the common path every *->CHAR/WCHAR conversion shares.
func renderText(v Value) string {
	switch v.SQLType {
	case SQLChar, SQLVarchar, SQLLongVarchar, SQLBlobText:
		return v.Str
	case SQLWChar, SQLWVarchar, SQLWLongVarchar:
		if v.Wide == nil {
			return v.Str
		}
		need, _ := codec.DecodeUTF16(nil, v.Wide)
		buf := make([]byte, need)
		n, _ := codec.DecodeUTF16(buf, v.Wide)
		return string(buf[:n])
	case SQLSmallint, SQLInteger, SQLBigint:
		return strconv.FormatInt(v.Int64, 10)
	case SQLFloat, SQLReal, SQLDouble:
		return strconv.FormatFloat(v.Float64, 'g', -1, 64)
	case SQLNumeric, SQLDecimal:
		return v.Numeric.String()
	case SQLBoolean:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case SQLDate:
		return fmt.Sprintf("%04d-%02d-%02d", v.Date.Year, v.Date.Month, v.Date.Day)
	case SQLTime:
		return fmt.Sprintf("%02d:%02d:%02d", v.Time.Hour, v.Time.Minute, v.Time.Second)
	case SQLTimestamp:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%09d",
			v.Stamp.Year, v.Stamp.Month, v.Stamp.Day, v.Stamp.Hour, v.Stamp.Minute, v.Stamp.Sec, v.Stamp.Fraction)
	case SQLGUID:
		return GUIDToText(v.GUID)
	default:
		return ""
	}
}

// writeText writes s into dst as CHAR (8-bit, null-terminated) or WCHAR
// (16-bit units, null-terminated), following the spec's null-termination
// and size-only-probe rules: dst == nil computes TotalBytesReq without
// writing; a too-small non-nil dst truncates and returns StatusTruncated
// with the pre-truncation length recorded for the 01004 diagnostic.
func writeText(s string, dst []byte, wide bool) Result {
	if wide {
		need := codec.UTF16Length([]byte(s))
		total := int64(need+1) * 2 // + null terminator unit
		if dst == nil {
			return Result{Status: StatusOK, TotalBytesReq: total}
		}
		units := make([]codec.Unit, need)
		codec.EncodeUTF8(units, []byte(s))
		capUnits := len(dst)/2 - 1
		if capUnits < 0 {
			capUnits = 0
		}
		if capUnits > len(units) {
			capUnits = len(units)
		}
		fit := make([]codec.Unit, capUnits)
		n := codec.BoundedCopy(fit, units)
		for i, u := range fit[:n] {
			dst[i*2] = byte(u)
			dst[i*2+1] = byte(u >> 8)
		}
		termAt := n * 2
		if termAt+1 < len(dst) {
			dst[termAt], dst[termAt+1] = 0, 0
		}
		if n < len(units) {
			return Result{Status: StatusTruncated, TotalBytesReq: total, PreTruncLen: int64(len(units))}
		}
		return Result{Status: StatusOK, TotalBytesReq: total}
	}

	total := int64(len(s)) + 1
	if dst == nil {
		return Result{Status: StatusOK, TotalBytesReq: total}
	}
	room := len(dst) - 1
	if room < 0 {
		room = 0
	}
	n := copy(dst, s)
	if n > room {
		n = room
	}
	if n < len(dst) {
		dst[n] = 0
	}
	if int64(n) < int64(len(s)) {
		return Result{Status: StatusTruncated, TotalBytesReq: total, PreTruncLen: int64(len(s))}
	}
	return Result{Status: StatusOK, TotalBytesReq: total}
}

func registerNumericConversions() {
	intTypes := map[CType]func(int64) (interface{}, int){
		CSTinyint: func(v int64) (interface{}, int) { return int8(v), 1 },
		CUTinyint: func(v int64) (interface{}, int) { return uint8(v), 1 },
		CSShort:   func(v int64) (interface{}, int) { return int16(v), 2 },
		CUShort:   func(v int64) (interface{}, int) { return uint16(v), 2 },
		CSLong:    func(v int64) (interface{}, int) { return int32(v), 4 },
		CULong:    func(v int64) (interface{}, int) { return uint32(v), 4 },
		CSBigint:  func(v int64) (interface{}, int) { return v, 8 },
		CUBigint:  func(v int64) (interface{}, int) { return uint64(v), 8 },
	}
	for s := range map[SQLType]bool{SQLSmallint: true, SQLInteger: true, SQLBigint: true} {
		for ct, conv := range intTypes {
			ct, conv := ct, conv
			register(s, ct, KindWidening, func(v Value, dst []byte) Result {
				return convertIntTo(v.Int64, ct, conv, dst)
			})
		}
		register(s, CFloat, KindWidening, func(v Value, dst []byte) Result { return writeFloat(float64(v.Int64), 4, dst) })
		register(s, CDouble, KindWidening, func(v Value, dst []byte) Result { return writeFloat(float64(v.Int64), 8, dst) })
		register(s, CNumeric, KindExact, func(v Value, dst []byte) Result { return numericFromInt64(v.Int64, dst) })
	}
	for _, s := range []SQLType{SQLFloat, SQLReal, SQLDouble} {
		register(s, CFloat, KindTruncating, func(v Value, dst []byte) Result { return writeFloat(v.Float64, 4, dst) })
		register(s, CDouble, KindExact, func(v Value, dst []byte) Result { return writeFloat(v.Float64, 8, dst) })
	}
	for _, s := range []SQLType{SQLNumeric, SQLDecimal} {
		register(s, CNumeric, KindExact, func(v Value, dst []byte) Result { return v.Numeric.ToStruct(dst) })
		register(s, CDouble, KindTruncating, func(v Value, dst []byte) Result { return writeFloat(v.Numeric.Float64(), 8, dst) })
	}
}

func convertIntTo(v int64, ct CType, conv func(int64) (interface{}, int), dst []byte) Result {
	val, size := conv(v)
	if dst == nil {
		return Result{Status: StatusOK, TotalBytesReq: int64(size)}
	}
	if len(dst) < size {
		return Result{Status: StatusTruncated, TotalBytesReq: int64(size), PreTruncLen: int64(size)}
	}
	if !fitsRange(v, ct) {
		return Result{Status: StatusOutOfRange, TotalBytesReq: int64(size)}
	}
	putLE(dst, val, size)
	return Result{Status: StatusOK, TotalBytesReq: int64(size)}
}

func fitsRange(v int64, ct CType) bool {
	switch ct {
	case CSTinyint:
		return v >= -128 && v <= 127
	case CUTinyint:
		return v >= 0 && v <= 255
	case CSShort:
		return v >= -32768 && v <= 32767
	case CUShort:
		return v >= 0 && v <= 65535
	case CSLong:
		return v >= -2147483648 && v <= 2147483647
	case CULong:
		return v >= 0 && v <= 4294967295
	case CUBigint:
		return v >= 0
	default:
		return true
	}
}

func putLE(dst []byte, val interface{}, size int) {
	var u uint64
	switch t := val.(type) {
	case int8:
		u = uint64(uint8(t))
	case uint8:
		u = uint64(t)
	case int16:
		u = uint64(uint16(t))
	case uint16:
		u = uint64(t)
	case int32:
		u = uint64(uint32(t))
	case uint32:
		u = uint64(t)
	case int64:
		u = uint64(t)
	case uint64:
		u = t
	}
	for i := 0; i < size; i++ {
		dst[i] = byte(u >> (8 * i))
	}
}

func writeFloat(v float64, size int, dst []byte) Result {
	if dst == nil {
		return Result{Status: StatusOK, TotalBytesReq: int64(size)}
	}
	if len(dst) < size {
		return Result{Status: StatusTruncated, TotalBytesReq: int64(size), PreTruncLen: int64(size)}
	}
	if size == 4 {
		bits := math.Float32bits(float32(v))
		putLE(dst, bits, 4)
	} else {
		bits := math.Float64bits(v)
		putLE(dst, bits, 8)
	}
	return Result{Status: StatusOK, TotalBytesReq: int64(size)}
}

func registerBooleanConversions() {
	register(SQLBoolean, CBit, KindExact, func(v Value, dst []byte) Result {
		if dst == nil {
			return Result{Status: StatusOK, TotalBytesReq: 1}
		}
		if len(dst) < 1 {
			return Result{Status: StatusTruncated, TotalBytesReq: 1, PreTruncLen: 1}
		}
		if v.Bool {
			dst[0] = 1
		} else {
			dst[0] = 0
		}
		return Result{Status: StatusOK, TotalBytesReq: 1}
	})
}

func registerDatetimeConversions() {
	register(SQLDate, CDate, KindExact, func(v Value, dst []byte) Result { return writeDate(v.Date, dst) })
	register(SQLTime, CTime, KindExact, func(v Value, dst []byte) Result { return writeTime(v.Time, dst) })
	register(SQLTimestamp, CTimestamp, KindExact, func(v Value, dst []byte) Result { return writeTimestamp(v.Stamp, dst) })
}

func writeDate(d DateValue, dst []byte) Result {
	const size = 4 // int16 + uint8 + uint8, packed
	if dst == nil {
		return Result{Status: StatusOK, TotalBytesReq: size}
	}
	if len(dst) < size {
		return Result{Status: StatusTruncated, TotalBytesReq: size, PreTruncLen: size}
	}
	putLE(dst[0:2], uint16(d.Year), 2)
	dst[2], dst[3] = d.Month, d.Day
	return Result{Status: StatusOK, TotalBytesReq: size}
}

func writeTime(t TimeValue, dst []byte) Result {
	const size = 3
	if dst == nil {
		return Result{Status: StatusOK, TotalBytesReq: size}
	}
	if len(dst) < size {
		return Result{Status: StatusTruncated, TotalBytesReq: size, PreTruncLen: size}
	}
	dst[0], dst[1], dst[2] = t.Hour, t.Minute, t.Second
	return Result{Status: StatusOK, TotalBytesReq: size}
}

func writeTimestamp(ts TimestampValue, dst []byte) Result {
	const size = 10
	if dst == nil {
		return Result{Status: StatusOK, TotalBytesReq: size}
	}
	if len(dst) < size {
		return Result{Status: StatusTruncated, TotalBytesReq: size, PreTruncLen: size}
	}
	putLE(dst[0:2], uint16(ts.Year), 2)
	dst[2], dst[3] = ts.Month, ts.Day
	dst[4], dst[5], dst[6] = ts.Hour, ts.Minute, ts.Sec
	putLE(dst[6:10], ts.Fraction, 4)
	return Result{Status: StatusOK, TotalBytesReq: size}
}

func registerBinaryConversions() {
	for _, s := range []SQLType{SQLBinary, SQLVarbinary, SQLLongVarbinary, SQLBlobBinary} {
		register(s, CBinary, KindTruncating, func(v Value, dst []byte) Result {
			total := int64(len(v.Bytes))
			if dst == nil {
				return Result{Status: StatusOK, TotalBytesReq: total}
			}
			n := copy(dst, v.Bytes)
			if int64(n) < total {
				return Result{Status: StatusTruncated, TotalBytesReq: total, PreTruncLen: total}
			}
			return Result{Status: StatusOK, TotalBytesReq: total}
		})
	}
}

func registerGUIDConversions() {
	register(SQLGUID, CGUID, KindExact, func(v Value, dst []byte) Result {
		const size = 16
		if dst == nil {
			return Result{Status: StatusOK, TotalBytesReq: size}
		}
		if len(dst) < size {
			return Result{Status: StatusTruncated, TotalBytesReq: size, PreTruncLen: size}
		}
		copy(dst, v.GUID[:])
		return Result{Status: StatusOK, TotalBytesReq: size}
	})
}

// ParseGUID is a permissive fallback for GUID text that may not satisfy
// google/uuid's RFC 4122 variant/version checks (some servers emit
// GUIDs with the variant bits left at zero). It removes every hyphen,
// wherever it appears, and then accepts any 32 hex digits.
func ParseGUID(s string) ([16]byte, error) {
	if g, err := GUIDFromText(s); err == nil {
		return g, nil
	}
	var out [16]byte
	hex := strings.ReplaceAll(strings.ToLower(s), "-", "")
	if len(hex) != 32 {
		return out, fmt.Errorf("types: malformed GUID text %q", s)
	}
	for i := 0; i < 16; i++ {
		b, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return out, fmt.Errorf("types: malformed GUID text %q", s)
		}
		out[i] = byte(b)
	}
	return out, nil
}
