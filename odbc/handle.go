// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package odbc implements the call-level interface driver: the
// environment/connection/statement/descriptor handle graph (L4), the
// statement state machine (L8), connection lifecycle and attributes
// (L9), and the entry-point dispatcher (L10). Supporting layers
// (codec, diagnostics, concurrency guard, type conversion, parameter
// engine, result pipeline) live under internal/ and unicode/.
//
// Grounded on the teacher's Conn/stmt/tx ownership pattern
// (driver/connection.go) and the explicit env-RWMutex + per-connection
// mutex discipline guard.go makes reusable.
package odbc

import (
	"github.com/fbclient/godbc/odbc/internal/diag"
)

// Kind identifies which of the four handle types a Handle value is.
type Kind int

// Handle kinds.
const (
	KindEnvironment Kind = iota
	KindConnection
	KindStatement
	KindDescriptor
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "ENV"
	case KindConnection:
		return "DBC"
	case KindStatement:
		return "STMT"
	case KindDescriptor:
		return "DESC"
	default:
		return "UNKNOWN"
	}
}

// ReturnCode is the dispatcher-level function result code returned by
// every entry point, per spec.md §7.
type ReturnCode int

// Function result codes, ordered worst-to-best is NOT their numeric
// order; severity below defines the ordering used to merge diagnostics.
const (
	RCSuccess ReturnCode = iota
	RCSuccessWithInfo
	RCNoData
	RCNeedData
	RCStillExecuting
	RCError
	RCInvalidHandle
)

// severity ranks return codes from best to worst so the dispatcher can
// take the worst of the method's own return and any posted diagnostics.
var severity = map[ReturnCode]int{
	RCSuccess:         0,
	RCSuccessWithInfo: 1,
	RCNoData:          2,
	RCNeedData:        2,
	RCStillExecuting:  2,
	RCError:           3,
	RCInvalidHandle:   4,
}

// WorseOf returns whichever of a, b ranks worse, used to fold a posted
// diagnostic's implied severity into a method's own return code.
func WorseOf(a, b ReturnCode) ReturnCode {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

func (rc ReturnCode) String() string {
	switch rc {
	case RCSuccess:
		return "SQL_SUCCESS"
	case RCSuccessWithInfo:
		return "SQL_SUCCESS_WITH_INFO"
	case RCNoData:
		return "SQL_NO_DATA"
	case RCNeedData:
		return "SQL_NEED_DATA"
	case RCStillExecuting:
		return "SQL_STILL_EXECUTING"
	case RCError:
		return "SQL_ERROR"
	case RCInvalidHandle:
		return "SQL_INVALID_HANDLE"
	default:
		return "SQL_UNKNOWN"
	}
}

// Handle is the state every one of the four handle kinds shares: its
// kind tag, its diagnostic chain, and the six diagnostic header fields
// named in spec.md §3.
type Handle struct {
	kind  Kind
	diags diag.List
	hdr   diag.Header
}

func newHandle(k Kind) Handle { return Handle{kind: k} }

// Kind reports which of the four handle kinds this is.
func (h *Handle) Kind() Kind { return h.kind }

// Post appends a diagnostic record to this handle's chain.
func (h *Handle) Post(rec *diag.Record) { h.diags.Post(rec) }

// ClearDiagnostics drops all diagnostics, called at the start of every
// dispatched entry point per spec.md §4.10 step 3.
func (h *Handle) ClearDiagnostics() { h.diags.Clear() }

// Diagnostics returns the handle's diagnostic chain for SQLGetDiagRec.
func (h *Handle) Diagnostics() *diag.List { return &h.diags }

// Header returns the handle's diagnostic header fields.
func (h *Handle) Header() *diag.Header { return &h.hdr }

// AdoptDiagnostics moves a temporary wrapped-call handle's diagnostics
// into h, the "«" operator of spec.md §4.2.
func (h *Handle) AdoptDiagnostics(src *Handle) { h.diags.Move(&src.diags) }
