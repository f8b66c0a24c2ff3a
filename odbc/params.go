// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import (
	"fmt"

	"github.com/fbclient/godbc/odbc/internal/types"
)

// ParamOperation is the per-row APD array-status entry that lets a
// caller skip a row of a parameter array without removing it, per
// spec.md §4.6 step 3: "skip rows whose param_operation_ptr[r] ==
// SQL_PARAM_IGNORE."
type ParamOperation int32

// Parameter array operations.
const (
	ParamProceed ParamOperation = iota
	ParamIgnore
)

// RowStatus is the per-row/per-parameter outcome written to the IRD's or
// IPD's ArrayStatusPtr after a block fetch or a parameter-array execute,
// per spec.md §4.6 step 3 and §4.7's "row-status array".
type RowStatus int32

// Row/parameter status values.
const (
	RowSuccess RowStatus = iota
	RowSuccessWithInfo
	RowError
	RowNoRow
	RowUnused
	RowDiagUnavailable
)

// Indicator sentinel values recognized on an APD record's
// IndicatorPtr[r], per spec.md §4.6 step 1: a DAE indicator defers the
// binding until ParamData/PutData streams it in.
const (
	IndicatorNull            int64 = -1
	IndicatorDataAtExec      int64 = -4
	lenDataAtExecOffsetBase  int64 = -100000 // SQL_LEN_DATA_AT_EXEC_OFFSET(length) = base - length
)

// IsDataAtExec reports whether indicator marks a data-at-execution
// parameter, covering both the bare SQL_DATA_AT_EXEC sentinel and the
// SQL_LEN_DATA_AT_EXEC_OFFSET(length) family.
func IsDataAtExec(indicator int64) bool {
	return indicator == IndicatorDataAtExec || indicator <= lenDataAtExecOffsetBase
}

// ctypeWidth returns the fixed byte width of a C type when the
// descriptor record carries no explicit OctetLength, used to compute
// the column-wise stride between rows of a parameter or result array.
func ctypeWidth(ct types.CType) int64 {
	switch ct {
	case types.CSTinyint, types.CUTinyint, types.CBit:
		return 1
	case types.CSShort, types.CUShort:
		return 2
	case types.CSLong, types.CULong, types.CFloat:
		return 4
	case types.CSBigint, types.CUBigint, types.CDouble:
		return 8
	case types.CDate:
		return 4
	case types.CTime:
		return 3
	case types.CTimestamp:
		return 10
	case types.CGUID:
		return 16
	case types.CNumeric:
		return 19
	default:
		return 1 // CHAR/WCHAR/BINARY: caller-declared OctetLength is authoritative
	}
}

// recordStride returns the byte offset between consecutive rows of a
// descriptor record's bound array, per spec.md §4.4's BIND_TYPE rule:
// BindType == BindTypeColumnWise means "each record's DataPtr points
// into a column array indexed by row" (stride = this record's own
// element width); any other BindType is a row-struct byte stride shared
// by every bound record.
func recordStride(desc *Descriptor, rec *DescRecord) int64 {
	if desc.BindType != BindTypeColumnWise {
		return int64(desc.BindType)
	}
	if rec.OctetLength > 0 {
		return rec.OctetLength
	}
	return ctypeWidth(rec.CType)
}

// recordOffset resolves the byte offset of row r within rec.DataPtr,
// folding in the descriptor's BindOffsetPtr per spec.md §4.4.
func recordOffset(desc *Descriptor, rec *DescRecord, r int) int64 {
	base := int64(0)
	if desc.BindOffsetPtr != nil {
		base = *desc.BindOffsetPtr
	}
	return base + int64(r)*recordStride(desc, rec)
}

// recordIndicator returns row r's indicator value, defaulting to 0 (not
// null, not DAE) when the application bound no indicator array.
func recordIndicator(rec *DescRecord, r int) int64 {
	if r < len(rec.IndicatorPtr) {
		return rec.IndicatorPtr[r]
	}
	return 0
}

// recordOctetLength returns row r's bound octet length, falling back to
// the record's declared Length/OctetLength when the application bound
// no per-row length array (a fixed-width C type binds one value).
func recordOctetLength(rec *DescRecord, r int) int64 {
	if r < len(rec.OctetLengthPtr) {
		return rec.OctetLengthPtr[r]
	}
	if rec.OctetLength > 0 {
		return rec.OctetLength
	}
	return ctypeWidth(rec.CType)
}

// BoundRow is one row's worth of resolved parameter values, ready for
// the wire client, alongside the 1-based ordinals (in IPD order) of any
// parameter in that row that requires data-at-execution streaming.
type BoundRow struct {
	Values []BoundParamRow
	DAE    []int
}

// BindParamRows is the L6 parameter engine's entry point: for each row
// of the APD's parameter array (or the single implicit row when no
// array is bound), it validates every bound parameter against spec.md
// §4.6 step 1, resolves data-at-execution ordinals per step 2, and
// applies the BindType/BindOffsetPtr row-wise/column-wise addressing and
// SQL_PARAM_IGNORE skip of step 3. Output/in-out parameter copy-back
// (step 4) is applied separately once doExecute returns, via
// ApplyOutputParams.
func (s *Statement) BindParamRows() ([]BoundRow, error) {
	apd := s.slots[SlotAppParam]
	ipd := s.implicit[SlotImpParam]
	paramCount := ipd.Count()

	n := int(apd.ArraySize)
	if n <= 0 {
		n = 1
	}

	rows := make([]BoundRow, 0, n)
	for r := 0; r < n; r++ {
		if len(apd.ArrayStatusPtr) > r && ParamOperation(apd.ArrayStatusPtr[r]) == ParamIgnore {
			continue
		}
		row, dae, err := s.bindOneRow(apd, ipd, paramCount, r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, BoundRow{Values: row, DAE: dae})
	}
	return rows, nil
}

func (s *Statement) bindOneRow(apd, ipd *Descriptor, paramCount, r int) ([]BoundParamRow, []int, error) {
	row := make([]BoundParamRow, paramCount)
	var dae []int
	for p := 1; p <= paramCount; p++ {
		if p > apd.Count() {
			return nil, nil, fmt.Errorf("odbc: 07002: parameter %d is not bound", p)
		}
		apdRec := &apd.records[p]
		ind := recordIndicator(apdRec, r)

		if IsDataAtExec(ind) {
			dae = append(dae, p)
			continue
		}
		if ind == IndicatorNull {
			row[p-1] = BoundParamRow{IsNull: true}
			continue
		}
		if apdRec.DataPtr == nil {
			return nil, nil, fmt.Errorf("odbc: 07002: parameter %d is not bound", p)
		}

		off := recordOffset(apd, apdRec, r)
		length := recordOctetLength(apdRec, r)
		end := off + length
		if end > int64(len(apdRec.DataPtr)) {
			end = int64(len(apdRec.DataPtr))
		}
		if off > end {
			off = end
		}
		buf := apdRec.DataPtr[off:end]

		ipdRec := &ipd.records[p]
		val, status := types.ConvertFromC(apdRec.CType, ipdRec.ConciseType, buf)
		if status != types.StatusOK {
			return nil, nil, fmt.Errorf("odbc: 22018: invalid parameter value (row %d, param %d)", r, p)
		}
		row[p-1] = wireParamFromValue(val)
	}
	return row, dae, nil
}

// wireParamFromValue renders a self-describing Value as the raw bytes
// the abstracted wire client transports. Binary SQL types pass their raw
// octets through unchanged; everything else renders through the same
// canonical-text path the CHAR/WCHAR conversion row uses (spec.md
// §4.5), since the wire client's own codec (outside the core, per
// spec.md §6) is responsible for any further server-specific encoding.
func wireParamFromValue(v types.Value) BoundParamRow {
	if v.SQLType.IsBinary() {
		return BoundParamRow{Bytes: v.Bytes}
	}
	r := types.Convert(v, types.CChar, nil)
	buf := make([]byte, r.TotalBytesReq)
	types.Convert(v, types.CChar, buf)
	if n := len(buf); n > 0 && buf[n-1] == 0 {
		buf = buf[:n-1] // strip the trailing NUL terminator writeText always appends
	}
	return BoundParamRow{Bytes: buf}
}

// ApplyOutputParams copies returned values back into the APD's DataPtrs
// for OUTPUT/IN_OUT parameters, per spec.md §4.6 step 4. outputs holds
// one value per row-1 parameter ordinal that the wire client populated
// during the execute (stored procedure out/in-out parameters).
func (s *Statement) ApplyOutputParams(row int, outputs map[int]types.Value) error {
	apd := s.slots[SlotAppParam]
	ipd := s.implicit[SlotImpParam]
	for ord, val := range outputs {
		if ord < 1 || ord > ipd.Count() || ord > apd.Count() {
			continue
		}
		ipdRec := &ipd.records[ord]
		if ipdRec.ParameterType != ParamOutput && ipdRec.ParameterType != ParamInOut {
			continue
		}
		apdRec := &apd.records[ord]
		if apdRec.DataPtr == nil {
			continue
		}
		off := recordOffset(apd, apdRec, row)
		length := recordOctetLength(apdRec, row)
		end := off + length
		if end > int64(len(apdRec.DataPtr)) {
			end = int64(len(apdRec.DataPtr))
		}
		res := types.Convert(val, apdRec.CType, apdRec.DataPtr[off:end])
		if row < len(apdRec.IndicatorPtr) {
			apdRec.IndicatorPtr[row] = res.TotalBytesReq
		}
	}
	return nil
}
