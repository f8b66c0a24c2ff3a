// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueFromWire decodes one column's raw bytes, as handed back by the
// abstracted wire client's Cursor.Fetch/BlobSegment (spec.md §6), into
// the self-describing Value the result pipeline then feeds to Convert
// for the IRD-type -> ARD-type conversion of spec.md §4.7. Binary SQL
// types pass raw octets through; every other type is parsed from the
// same canonical text rendering wireParamFromValue produces on the way
// out, so a round trip through the wire is lossless for every type the
// matrix supports.
func ValueFromWire(sqlType SQLType, precision uint8, scale int8, raw []byte, isNull bool) (Value, error) {
	if isNull {
		return Value{SQLType: sqlType, IsNull: true}, nil
	}
	if sqlType.IsBinary() {
		return Value{SQLType: sqlType, Bytes: raw}, nil
	}

	s := string(raw)
	switch sqlType {
	case SQLChar, SQLVarchar, SQLLongVarchar, SQLBlobText:
		return Value{SQLType: sqlType, Str: s}, nil
	case SQLWChar, SQLWVarchar, SQLWLongVarchar:
		return Value{SQLType: sqlType, Str: s}, nil
	case SQLSmallint, SQLInteger, SQLBigint:
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("types: malformed integer wire value %q: %w", s, err)
		}
		return Value{SQLType: sqlType, Int64: v}, nil
	case SQLFloat, SQLReal, SQLDouble:
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Value{}, fmt.Errorf("types: malformed float wire value %q: %w", s, err)
		}
		return Value{SQLType: sqlType, Float64: v}, nil
	case SQLNumeric, SQLDecimal:
		n, err := NewNumeric(strings.TrimSpace(s), precision, scale)
		if err != nil {
			return Value{}, fmt.Errorf("types: malformed decimal wire value %q: %w", s, err)
		}
		return Value{SQLType: sqlType, Numeric: n}, nil
	case SQLBoolean:
		t := strings.TrimSpace(strings.ToUpper(s))
		return Value{SQLType: sqlType, Bool: t == "TRUE" || t == "1"}, nil
	case SQLDate:
		d, err := parseDate(s)
		if err != nil {
			return Value{}, err
		}
		return Value{SQLType: sqlType, Date: d}, nil
	case SQLTime:
		t, err := parseTime(s)
		if err != nil {
			return Value{}, err
		}
		return Value{SQLType: sqlType, Time: t}, nil
	case SQLTimestamp:
		ts, err := parseTimestamp(s)
		if err != nil {
			return Value{}, err
		}
		return Value{SQLType: sqlType, Stamp: ts}, nil
	case SQLGUID:
		g, err := ParseGUID(s)
		if err != nil {
			return Value{}, err
		}
		return Value{SQLType: sqlType, GUID: g}, nil
	default:
		return Value{}, fmt.Errorf("types: unsupported wire SQL type %v", sqlType)
	}
}

func parseDate(s string) (DateValue, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%04d-%02d-%02d", &y, &m, &d); err != nil {
		return DateValue{}, fmt.Errorf("types: malformed DATE wire value %q: %w", s, err)
	}
	return DateValue{Year: int16(y), Month: uint8(m), Day: uint8(d)}, nil
}

func parseTime(s string) (TimeValue, error) {
	var h, mi, sec int
	if _, err := fmt.Sscanf(s, "%02d:%02d:%02d", &h, &mi, &sec); err != nil {
		return TimeValue{}, fmt.Errorf("types: malformed TIME wire value %q: %w", s, err)
	}
	return TimeValue{Hour: uint8(h), Minute: uint8(mi), Second: uint8(sec)}, nil
}

func parseTimestamp(s string) (TimestampValue, error) {
	var y, mo, d, h, mi, sec, frac int
	n, err := fmt.Sscanf(s, "%04d-%02d-%02d %02d:%02d:%02d.%09d", &y, &mo, &d, &h, &mi, &sec, &frac)
	if err != nil && n < 6 {
		return TimestampValue{}, fmt.Errorf("types: malformed TIMESTAMP wire value %q: %w", s, err)
	}
	return TimestampValue{
		Year: int16(y), Month: uint8(mo), Day: uint8(d),
		Hour: uint8(h), Minute: uint8(mi), Sec: uint8(sec), Fraction: uint32(frac),
	}, nil
}
