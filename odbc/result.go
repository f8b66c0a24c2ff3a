// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Result pipeline (L7): row-array fetch, scrollable STATIC cursors, and
// lazy column retrieval (GetData), per spec.md §4.7. Grounded on the
// same Descriptor-driven marshalling style as params.go (L6), mirrored
// for the opposite direction: IRD sql_type -> ARD c_type instead of
// APD c_type -> IPD sql_type.
package odbc

import (
	"context"
	"fmt"

	"github.com/fbclient/godbc/odbc/internal/types"
)

// FetchDirection is one SQLFetchScroll orientation, per spec.md §4.7.
type FetchDirection int

// Supported fetch orientations. KEYSET/DYNAMIC cursor types are not
// supported at all (SQLSetStmtAttrCursorType rejects them with HYC00,
// not here).
const (
	FetchNext FetchDirection = iota
	FetchPrior
	FetchFirst
	FetchLast
	FetchAbsolute
	FetchRelative
	FetchBookmark
)

// fetchState is the result pipeline's per-statement bookkeeping: the
// last fetched row-array batch (for GetData to reference lazily) and
// the BLOB-continuation cursor of spec.md §4.7's "Lazy column
// retrieval" and "Truncation semantics".
type fetchState struct {
	rows    [][]ParamValue // last fetched batch, rows[i][c] is column c (0-based)
	curRow  int            // index into rows GetData currently reads, -1 if none fetched yet
	blobCol int            // 1-based column GetData is mid-stream on; 0 = none
	blobOff int64          // bytes already delivered from that column's value
}

// FetchResult reports what a Fetch/FetchScroll call produced: how many
// rows it placed and whether the cursor is exhausted.
type FetchResult struct {
	RowsFetched int
	NoData      bool
}

// Fetch retrieves the next row-array batch using the ARD's ArraySize,
// BindType, and BindOffsetPtr, per spec.md §4.7's "Row-array fetch".
// FORWARD_ONLY is the only direction Fetch itself drives; scrollable
// statements use FetchScroll.
func (s *Statement) Fetch(ctx context.Context) (FetchResult, error) {
	return s.FetchScroll(ctx, FetchNext, 0)
}

// FetchScroll retrieves a row-array batch in the requested direction,
// per spec.md §4.7's "Scrollable cursors": FORWARD_ONLY supports only
// FetchNext; STATIC materializes the whole result on first fetch and
// serves every subsequent scroll from that buffer.
func (s *Statement) FetchScroll(ctx context.Context, dir FetchDirection, offset int64) (FetchResult, error) {
	if s.state != StateCursorOpen && s.state != StateDone {
		return FetchResult{}, fmt.Errorf("odbc: HY010: fetch outside an open cursor")
	}
	if s.cursor == nil {
		return FetchResult{}, fmt.Errorf("odbc: 24000: invalid cursor state")
	}

	ard := s.slots[SlotAppRow]
	ird := s.implicit[SlotImpRow]
	n := int(ard.ArraySize)
	if n <= 0 {
		n = 1
	}

	var batch [][]ParamValue
	var exhausted bool
	var err error
	if s.attrs.CursorType == CursorStatic {
		batch, exhausted, err = s.fetchStatic(ctx, dir, offset, n)
	} else {
		if dir != FetchNext {
			return FetchResult{}, fmt.Errorf("odbc: HYC00: scroll direction not supported on a FORWARD_ONLY cursor")
		}
		batch, exhausted, err = s.fetchForward(ctx, n)
	}
	if err != nil {
		return FetchResult{}, err
	}

	s.fetch = fetchState{rows: batch, curRow: len(batch) - 1}
	s.applyRowArray(ard, ird, batch)

	if ird.RowsProcessed != nil {
		*ird.RowsProcessed = int64(len(batch))
	}
	s.rowsFetched += int64(len(batch))
	s.Header().CursorRowCount = int64(len(batch))

	if len(batch) == 0 {
		if err := s.transition("FetchNoData", StateDone); err != nil {
			s.state = StateDone // FetchScroll can legally repeat past exhaustion; keep DONE idempotently.
		}
		return FetchResult{NoData: true}, nil
	}
	if exhausted {
		s.state = StateDone
	}
	return FetchResult{RowsFetched: len(batch)}, nil
}

func (s *Statement) fetchForward(ctx context.Context, n int) (batch [][]ParamValue, exhausted bool, err error) {
	batch, err = s.cursor.Fetch(ctx, n)
	if err != nil {
		return nil, false, err
	}
	return batch, len(batch) < n, nil
}

func (s *Statement) fetchStatic(ctx context.Context, dir FetchDirection, offset int64, n int) (batch [][]ParamValue, exhausted bool, err error) {
	if s.matRows == nil {
		all, err := s.cursor.Fetch(ctx, int(s.cursor.RowCount()))
		if err != nil {
			return nil, false, err
		}
		s.matRows = all
		s.matPos = -1
	}

	start, ok := s.resolveStaticPosition(dir, offset, n)
	if !ok {
		return nil, true, nil
	}
	end := start + n
	if end > len(s.matRows) {
		end = len(s.matRows)
	}
	if start >= len(s.matRows) || start < 0 {
		s.matPos = len(s.matRows)
		return nil, true, nil
	}
	s.matPos = end - 1
	return s.matRows[start:end], end >= len(s.matRows), nil
}

func (s *Statement) resolveStaticPosition(dir FetchDirection, offset int64, n int) (int, bool) {
	switch dir {
	case FetchNext:
		return s.matPos + 1, true
	case FetchPrior:
		return s.matPos - n, true
	case FetchFirst:
		return 0, true
	case FetchLast:
		last := len(s.matRows) - n
		if last < 0 {
			last = 0
		}
		return last, true
	case FetchAbsolute:
		if offset < 0 {
			return len(s.matRows) + int(offset), true
		}
		return int(offset) - 1, true
	case FetchRelative:
		return s.matPos + int(offset), true
	case FetchBookmark:
		return int(offset), true
	default:
		return 0, false
	}
}

// applyRowArray converts each fetched row's columns from the IRD's
// sql_type to the ARD's bound c_type and writes the result at the
// application's bound offset, per spec.md §4.7: "For each bound column:
// apply convert(IRD[c].sql_type -> ARD[c].c_type)."
func (s *Statement) applyRowArray(ard, ird *Descriptor, batch [][]ParamValue) {
	if len(ard.ArrayStatusPtr) > 0 {
		for i := range ard.ArrayStatusPtr {
			if i >= len(batch) {
				ard.ArrayStatusPtr[i] = int32(RowNoRow)
			}
		}
	}
	for r, row := range batch {
		status := RowSuccess
		for c := 1; c <= ard.Count() && c <= ird.Count(); c++ {
			ardRec := &ard.records[c]
			if ardRec.DataPtr == nil {
				continue // column not bound; caller will GetData it lazily
			}
			if c-1 >= len(row) {
				continue
			}
			irdRec := &ird.records[c]
			st := s.convertColumn(ard, ardRec, irdRec, row[c-1], r)
			if st == RowError {
				status = RowError
			} else if st == RowSuccessWithInfo && status == RowSuccess {
				status = RowSuccessWithInfo
			}
		}
		if len(ard.ArrayStatusPtr) > r {
			ard.ArrayStatusPtr[r] = int32(status)
		}
	}
}

// convertColumn applies one (row, column) conversion and writes its
// indicator/octet-length and truncation diagnostics, per spec.md §4.7's
// truncation semantics.
func (s *Statement) convertColumn(ard *Descriptor, ardRec, irdRec *DescRecord, raw ParamValue, r int) RowStatus {
	if raw.IsNull {
		if r < len(ardRec.IndicatorPtr) {
			ardRec.IndicatorPtr[r] = -1
		}
		return RowSuccess
	}
	val, err := types.ValueFromWire(irdRec.ConciseType, irdRec.Precision, irdRec.Scale, raw.Bytes, false)
	if err != nil {
		s.Post(newDiag("22018", 0, err.Error()))
		return RowError
	}

	off := recordOffset(ard, ardRec, r)
	length := recordOctetLength(ardRec, r)
	end := off + length
	if end > int64(len(ardRec.DataPtr)) {
		end = int64(len(ardRec.DataPtr))
	}
	if off > end {
		off = end
	}
	res := types.Convert(val, ardRec.CType, ardRec.DataPtr[off:end])
	if r < len(ardRec.IndicatorPtr) {
		ardRec.IndicatorPtr[r] = res.TotalBytesReq
	}

	switch res.Status {
	case types.StatusTruncated:
		s.Post(newDiag("01004", 0, fmt.Sprintf("string data, right truncated (row %d, col %q)", r, irdRec.Name)))
		if r < len(ardRec.IndicatorPtr) {
			ardRec.IndicatorPtr[r] = res.PreTruncLen
		}
		return RowSuccessWithInfo
	case types.StatusOutOfRange:
		s.Post(newDiag("22003", 0, fmt.Sprintf("numeric value out of range (row %d, col %q)", r, irdRec.Name)))
		return RowError
	case types.StatusInvalidFormat:
		s.Post(newDiag("22018", 0, fmt.Sprintf("invalid character value for cast (row %d, col %q)", r, irdRec.Name)))
		return RowError
	case types.StatusUnsupported:
		s.Post(newDiag("07006", 0, fmt.Sprintf("restricted data type attribute violation (row %d, col %q)", r, irdRec.Name)))
		return RowError
	default:
		return RowSuccess
	}
}

// GetData lazily retrieves column col of the current row into dst, per
// spec.md §4.7's "Lazy column retrieval (GetData)". Permitted only after
// a successful Fetch/FetchScroll; repeated calls on the same column
// stream BLOB contents onward from the last delivered offset, with
// 01004 on every partial delivery; a call on a different column
// abandons whatever remained unread of the previous one.
func (s *Statement) GetData(ctx context.Context, col int, ct types.CType, dst []byte) (types.Result, error) {
	if s.fetch.curRow < 0 || s.fetch.curRow >= len(s.fetch.rows) {
		return types.Result{}, fmt.Errorf("odbc: 24000: GetData called without a current row")
	}
	ird := s.implicit[SlotImpRow]
	if col < 1 || col > ird.Count() {
		return types.Result{}, fmt.Errorf("odbc: 07009: invalid descriptor index")
	}
	if s.fetch.blobCol != col {
		s.fetch.blobCol = col
		s.fetch.blobOff = 0
	}

	raw := s.fetch.rows[s.fetch.curRow][col-1]
	irdRec := &ird.records[col]

	if raw.IsNull {
		return types.Result{Status: types.StatusNull}, nil
	}
	if !irdRec.ConciseType.IsLob() || s.cursor == nil {
		return s.getDataFromBuffer(irdRec, raw, ct, dst)
	}
	return s.getDataStreamed(ctx, col, irdRec, ct, dst)
}

// getDataFromBuffer serves GetData from an already-fully-fetched value
// (every non-LOB type, and LOB values small enough to have arrived
// whole), applying the same Convert + indicator contract as the bulk
// row-array path.
func (s *Statement) getDataFromBuffer(irdRec *DescRecord, raw ParamValue, ct types.CType, dst []byte) (types.Result, error) {
	val, err := types.ValueFromWire(irdRec.ConciseType, irdRec.Precision, irdRec.Scale, raw.Bytes, false)
	if err != nil {
		return types.Result{}, err
	}
	off := s.fetch.blobOff
	var windowed types.Value = val
	if val.SQLType.IsBinary() {
		if off >= int64(len(val.Bytes)) {
			return types.Result{Status: types.StatusOK}, nil
		}
		windowed.Bytes = val.Bytes[off:]
	} else if off > 0 && val.Str != "" {
		if off >= int64(len(val.Str)) {
			return types.Result{Status: types.StatusOK}, nil
		}
		windowed.Str = val.Str[off:]
	}
	res := types.Convert(windowed, ct, dst)
	if res.Status == types.StatusTruncated {
		s.fetch.blobOff += int64(len(dst))
	}
	return res, nil
}

// getDataStreamed drives the wire client's BLOB segment primitive
// directly, per spec.md §4.5's "BLOB streaming" distinguished
// conversion: "Fetching a BLOB into a CHAR/BINARY buffer returns the
// first chunk and 01004 when incomplete; each subsequent GetData on the
// same column continues from the last offset."
func (s *Statement) getDataStreamed(ctx context.Context, col int, irdRec *DescRecord, ct types.CType, dst []byte) (types.Result, error) {
	n, done, err := s.cursor.BlobSegment(ctx, col, s.fetch.blobOff, dst)
	if err != nil {
		return types.Result{}, err
	}
	s.fetch.blobOff += int64(n)
	if !done {
		return types.Result{Status: types.StatusTruncated, TotalBytesReq: int64(n), PreTruncLen: s.fetch.blobOff}, nil
	}
	return types.Result{Status: types.StatusOK, TotalBytesReq: int64(n)}, nil
}

// RowCount reports the diagnostic header's ROW_COUNT field, populated
// after DML execution (spec.md §4.9, §7).
func (s *Statement) RowCount() int64 { return s.Header().RowCount }
