// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/fbclient/godbc/odbc/unicode/codec"
)

// ConvertFromC is the (C type -> SQL type) half of the conversion matrix
// named in spec.md §4.5: it reads an application-bound buffer (src, in
// the shape CType describes) and produces the self-describing Value the
// parameter engine hands to the wire client, rendered as toSQL expects.
// src == nil represents a SQL NULL indicator; the caller checks the
// indicator before calling rather than encoding it in-band here.
func ConvertFromC(from CType, toSQL SQLType, src []byte) (Value, Status) {
	switch from {
	case CChar:
		s := trimNulTail(string(src))
		if toSQL == SQLBoolean {
			return boolValue(toSQL, s), StatusOK
		}
		return Value{SQLType: toSQL, Str: s}, StatusOK
	case CWChar:
		units := make([]codec.Unit, len(src)/2)
		for i := range units {
			units[i] = codec.Unit(uint16(src[i*2]) | uint16(src[i*2+1])<<8)
		}
		units = trimWideNulTail(units)
		need, _ := codec.DecodeUTF16(nil, units)
		buf := make([]byte, need)
		n, _ := codec.DecodeUTF16(buf, units)
		s := string(buf[:n])
		if toSQL == SQLBoolean {
			return boolValue(toSQL, s), StatusOK
		}
		return Value{SQLType: toSQL, Str: s}, StatusOK
	case CBinary:
		cp := make([]byte, len(src))
		copy(cp, src)
		return Value{SQLType: toSQL, Bytes: cp}, StatusOK
	case CBit:
		if len(src) < 1 {
			return Value{}, StatusInvalidFormat
		}
		return Value{SQLType: toSQL, Bool: src[0] != 0}, StatusOK
	case CSTinyint:
		return intValue(toSQL, int64(int8(get1(src)))), StatusOK
	case CUTinyint:
		return intValue(toSQL, int64(get1(src))), StatusOK
	case CSShort:
		return intValue(toSQL, int64(int16(get16(src)))), StatusOK
	case CUShort:
		return intValue(toSQL, int64(get16(src))), StatusOK
	case CSLong:
		return intValue(toSQL, int64(int32(get32(src)))), StatusOK
	case CULong:
		return intValue(toSQL, int64(get32(src))), StatusOK
	case CSBigint:
		return intValue(toSQL, int64(get64(src))), StatusOK
	case CUBigint:
		return Value{SQLType: toSQL, Uint64: get64(src), Int64: int64(get64(src))}, StatusOK
	case CFloat:
		if len(src) < 4 {
			return Value{}, StatusInvalidFormat
		}
		bits := binary.LittleEndian.Uint32(src)
		return Value{SQLType: toSQL, Float64: float64(math.Float32frombits(bits))}, StatusOK
	case CDouble:
		if len(src) < 8 {
			return Value{}, StatusInvalidFormat
		}
		bits := binary.LittleEndian.Uint64(src)
		return Value{SQLType: toSQL, Float64: math.Float64frombits(bits)}, StatusOK
	case CNumeric:
		n, err := NumericFromStruct(src)
		if err != nil {
			return Value{}, StatusInvalidFormat
		}
		return Value{SQLType: toSQL, Numeric: n}, StatusOK
	case CDate:
		if len(src) < 4 {
			return Value{}, StatusInvalidFormat
		}
		return Value{SQLType: toSQL, Date: DateValue{
			Year: int16(binary.LittleEndian.Uint16(src[0:2])), Month: src[2], Day: src[3],
		}}, StatusOK
	case CTime:
		if len(src) < 3 {
			return Value{}, StatusInvalidFormat
		}
		return Value{SQLType: toSQL, Time: TimeValue{Hour: src[0], Minute: src[1], Second: src[2]}}, StatusOK
	case CTimestamp:
		if len(src) < 10 {
			return Value{}, StatusInvalidFormat
		}
		return Value{SQLType: toSQL, Stamp: TimestampValue{
			Year: int16(binary.LittleEndian.Uint16(src[0:2])), Month: src[2], Day: src[3],
			Hour: src[4], Minute: src[5], Sec: src[6], Fraction: binary.LittleEndian.Uint32(src[6:10]),
		}}, StatusOK
	case CGUID:
		if len(src) < 16 {
			return Value{}, StatusInvalidFormat
		}
		var g [16]byte
		copy(g[:], src)
		return Value{SQLType: toSQL, GUID: g}, StatusOK
	default:
		return Value{}, StatusUnsupported
	}
}

// boolValue parses the "TRUE"/"FALSE" textual forms spec.md §4.5 requires
// both sides of a BOOLEAN conversion to accept, matching fromwire.go's
// ValueFromWire SQLBoolean case for the opposite (fetch) direction.
func boolValue(toSQL SQLType, s string) Value {
	t := strings.TrimSpace(strings.ToUpper(s))
	return Value{SQLType: toSQL, Bool: t == "TRUE" || t == "1"}
}

func intValue(toSQL SQLType, v int64) Value {
	if toSQL.IsDecimal() {
		return Value{SQLType: toSQL, Numeric: NumericFromInt64(v)}
	}
	return Value{SQLType: toSQL, Int64: v}
}

func get1(b []byte) uint8 {
	if len(b) < 1 {
		return 0
	}
	return b[0]
}
func get16(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}
func get32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}
func get64(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func trimNulTail(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

func trimWideNulTail(units []codec.Unit) []codec.Unit {
	for i, u := range units {
		if u == 0 {
			return units[:i]
		}
	}
	return units
}
