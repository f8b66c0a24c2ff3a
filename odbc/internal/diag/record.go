// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package diag

import (
	"fmt"
	"sort"
)

// Record is a single diagnostic entry, as specified in spec.md §3
// "Diagnostic record": {SqlState, NativeCode, MessageText, ConnectionName,
// ServerName, RowNumber, ColumnNumber, ClassOrigin, SubclassOrigin}.
type Record struct {
	SqlState       string
	NativeCode     int32
	MessageText    string
	ConnectionName string
	ServerName     string
	RowNumber      int64
	ColumnNumber   int32
	ClassOrigin    string
	SubclassOrigin string

	isWarning bool
}

// RowNumberUnknown / ColumnNumberUnknown are the header values ODBC uses
// when row/column coordinates do not apply to a given diagnostic.
const (
	RowNumberUnknown    int64 = -1
	ColumnNumberUnknown int32 = -1
)

func (r *Record) String() string {
	return fmt.Sprintf("%s (native %d): %s", r.SqlState, r.NativeCode, r.MessageText)
}

// IsWarning reports whether the record was posted as a warning (SQLSTATE
// class "01") rather than an error.
func (r *Record) IsWarning() bool { return r.isWarning || (len(r.SqlState) > 0 && r.SqlState[:2] == "01") }

// List is the ordered diagnostic chain carried by every handle kind
// (Environment, Connection, Statement, Descriptor). Per spec.md §3,
// records are ordered by posting sequence with errors sorting before
// warnings in the reader's view.
type List struct {
	records []*Record
}

// Post appends rec to the chain, stamping posting order.
func (l *List) Post(rec *Record) {
	l.records = append(l.records, rec)
}

// Clear drops all records; called at the start of every dispatched entry
// point per the ODBC contract (spec.md §4.10 step 3).
func (l *List) Clear() { l.records = l.records[:0] }

// Count returns the number of posted diagnostics.
func (l *List) Count() int { return len(l.records) }

// Get returns the nth diagnostic (1-based, matching SQLGetDiagRec's
// RecNumber) sorted with errors before warnings, stable on posting order
// within each group.
func (l *List) Get(n int) (*Record, bool) {
	if n < 1 {
		return nil, false
	}
	ordered := l.ordered()
	if n > len(ordered) {
		return nil, false
	}
	return ordered[n-1], true
}

func (l *List) ordered() []*Record {
	out := make([]*Record, len(l.records))
	copy(out, l.records)
	sort.SliceStable(out, func(i, j int) bool {
		return !out[i].IsWarning() && out[j].IsWarning()
	})
	return out
}

// HasErrors reports whether any posted record is a (non-warning) error.
func (l *List) HasErrors() bool {
	for _, r := range l.records {
		if !r.IsWarning() {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any posted record is a warning.
func (l *List) HasWarnings() bool {
	for _, r := range l.records {
		if r.IsWarning() {
			return true
		}
	}
	return false
}

// Move transfers the diagnostic chain of a temporary wrapped-call handle
// into the receiver (the "«" operator of spec.md §4.2), leaving src empty.
func (l *List) Move(src *List) {
	l.records = append(l.records, src.records...)
	src.records = src.records[:0]
}

// Header carries the six diagnostic header fields every handle exposes
// per spec.md §3: CursorRowCount, DynamicFunction, DynamicFunctionCode,
// Number, ReturnCode, RowCount.
type Header struct {
	CursorRowCount      int64
	DynamicFunction     string
	DynamicFunctionCode int32
	Number              int32
	ReturnCode          int32
	RowCount            int64
}
