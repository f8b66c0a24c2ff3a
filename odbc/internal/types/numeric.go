// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// NumericValue wraps an arbitrary-precision decimal backing the
// NUMERIC(p,s)/DECIMAL(p,s) SQL types. apd.Decimal gives us the exact
// scale-preserving arithmetic the wire client needs when a server
// reports more digits than a float64 can hold without drift.
type NumericValue struct {
	Dec       apd.Decimal
	Precision uint8
	Scale     int8
}

// NewNumeric parses a decimal literal (as produced by the wire client's
// result decoding) into a NumericValue with the given descriptor
// precision/scale.
func NewNumeric(literal string, precision uint8, scale int8) (NumericValue, error) {
	d, _, err := apd.NewFromString(literal)
	if err != nil {
		return NumericValue{}, err
	}
	return NumericValue{Dec: *d, Precision: precision, Scale: scale}, nil
}

// String renders the canonical decimal text, used by the CHAR/WCHAR
// conversion path.
func (n NumericValue) String() string { return n.Dec.String() }

// Float64 widens to the nearest double, used by the approximate-numeric
// conversion path (a truncating conversion per the matrix).
func (n NumericValue) Float64() float64 {
	f, _ := n.Dec.Float64()
	return f
}

// ToStruct renders the NUMERIC_STRUCT C type: a 16-octet little-endian
// magnitude plus out-of-band precision/scale/sign, per spec.md's
// "NUMERIC_STRUCT" C type and ODBC's SQL_NUMERIC_STRUCT layout.
func (n NumericValue) ToStruct(dst []byte) Result {
	const size = 19 // precision(1) + scale(1) + sign(1) + val(16)
	if dst == nil {
		return Result{Status: StatusOK, TotalBytesReq: size}
	}
	if len(dst) < size {
		return Result{Status: StatusTruncated, TotalBytesReq: size, PreTruncLen: size}
	}

	ns := NumericStruct{Precision: n.Precision, Scale: n.Scale, Sign: 1}
	if n.Dec.Negative {
		ns.Sign = 0
	}

	var bigDigits apd.BigInt
	bigDigits.Set(&n.Dec.Coeff)
	be := bigDigits.Bytes() // big-endian magnitude
	if len(be) > len(ns.Val) {
		return Result{Status: StatusOutOfRange, TotalBytesReq: size}
	}
	// Val is little-endian; be is big-endian, so reverse it into the
	// low-order end of the fixed-width field.
	for i, b := range be {
		ns.Val[i] = be[len(be)-1-i]
		_ = b
	}

	dst[0] = ns.Precision
	dst[1] = byte(ns.Scale)
	dst[2] = ns.Sign
	copy(dst[3:19], ns.Val[:])
	return Result{Status: StatusOK, TotalBytesReq: size}
}

// numericFromInt64 widens a signed integer into the NUMERIC_STRUCT C
// type with scale 0, used by the exact-numeric SQL types' NUMERIC
// conversion row.
func numericFromInt64(v int64, dst []byte) Result {
	n := NumericFromInt64(v)
	return n.ToStruct(dst)
}

// NumericFromInt64 widens a signed integer into a NumericValue at
// scale 0, used by the parameter engine's (C type -> SQL type) path when
// the application binds an integer C type against a NUMERIC/DECIMAL
// parameter.
func NumericFromInt64(v int64) NumericValue {
	n := NumericValue{Precision: 20, Scale: 0}
	n.Dec.SetFinite(v, 0)
	return n
}

// NumericFromStruct is the inverse of ToStruct: it parses an
// application-bound SQL_NUMERIC_STRUCT buffer back into a NumericValue,
// the (C type -> SQL type) half of the NUMERIC conversion row.
func NumericFromStruct(src []byte) (NumericValue, error) {
	const size = 19
	if len(src) < size {
		return NumericValue{}, fmt.Errorf("types: short NUMERIC_STRUCT buffer (%d bytes)", len(src))
	}
	n := NumericValue{Precision: src[0], Scale: int8(src[1])}
	var be [16]byte
	for i, b := range src[3:19] {
		be[15-i] = b
	}
	var bigDigits apd.BigInt
	bigDigits.SetBytes(be[:])
	n.Dec.Coeff.Set(&bigDigits)
	n.Dec.Exponent = int32(-n.Scale)
	n.Dec.Negative = src[2] == 0
	return n, nil
}
