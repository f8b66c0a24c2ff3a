// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package odbc's dispatcher (L10) is the set of public SQL… entry
// points named in spec.md §4.10: each validates its handle, acquires
// the guard appropriate to its handle kind, clears that handle's
// diagnostics, delegates to the handle method, and folds the method's
// own result into the worst of its posted diagnostics' implied
// severity. Grounded on the teacher's exported driver.Conn/driver.Stmt
// method set (the same call shape database/sql itself drives), wrapped
// here in the explicit validate/guard/clear/delegate/merge pipeline the
// spec requires instead of relying on Go's database/sql package to
// supply it.
package odbc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/fbclient/godbc/odbc/internal/clitrace"
	"github.com/fbclient/godbc/odbc/internal/diag"
	"github.com/fbclient/godbc/odbc/internal/otelcli"
	"github.com/fbclient/godbc/odbc/internal/types"
)

// traceEntry starts an otel span and returns a func that ends it and
// emits a clitrace line, the pattern the teacher's AMBIENT STACK
// analogue (driver/sqltrace + transitively-carried otel) generalizes
// into "one span, one trace line, per dispatched entry point" for the
// handful of highest-traffic entry points (connect/disconnect, prepare,
// execute, fetch, end-transaction) rather than all ~50 mechanically.
func traceEntry(ctx context.Context, name string, h *Handle) (context.Context, func(rc ReturnCode)) {
	ctx, span := otelcli.Start(ctx, name, h.Kind().String())
	return ctx, func(rc ReturnCode) {
		sqlstate := ""
		if n := h.Diagnostics().Count(); n > 0 {
			if rec, ok := h.Diagnostics().Get(1); ok {
				sqlstate = rec.SqlState
			}
		}
		span.End(rc.String(), sqlstate)
		clitrace.Entry(name, h.Kind().String(), rc)
	}
}

// HENV, HDBC, HSTMT, HDESC name the four handle kinds at their public
// API boundary, mirroring ODBC's SQLHENV/SQLHDBC/SQLHSTMT/SQLHDESC
// without resorting to an untyped void*-style handle.
type (
	HENV  = *Environment
	HDBC  = *Connection
	HSTMT = *Statement
	HDESC = *Descriptor
)

var sqlstatePrefix = regexp.MustCompile(`^odbc: ([A-Z0-9]{5}): (.*)$`)

// extractState splits an "odbc: SQLSTATE: message" string, by convention
// produced by fmt.Errorf throughout this package, into its embedded
// SQLSTATE and the remaining message text. A message with no recognizable
// prefix is returned unchanged with an empty state.
func extractState(msg string) (state, rest string) {
	if m := sqlstatePrefix.FindStringSubmatch(msg); m != nil {
		return m[1], m[2]
	}
	return "", msg
}

// errToDiag converts an internal or wire-client error into a diagnostic
// record. A *WireError resolves through the L2 mapper's server-code/
// legacy-code tables first, per spec.md §4.2's resolution order — this is
// the path that fixes "the previous driver's long tail of fall-through-to
// -HY000 errors" the spec calls out. Anything else is, by convention,
// formatted as "odbc: SQLSTATE: message" (e.g. by fmt.Errorf throughout
// this package); a bare message with no recognizable SQLSTATE prefix
// resolves through mapper's default-state fallback.
func errToDiag(err error, mapper diag.Mapper) *diag.Record {
	var we *WireError
	if errors.As(err, &we) {
		state, msg := extractState(we.Message)
		return newDiag(mapper.Resolve(we.ServerCode, we.LegacyCode, state), we.ServerCode, msg)
	}
	state, msg := extractState(err.Error())
	return newDiag(mapper.Resolve(0, 0, state), 0, msg)
}

func mapperFor(e *Environment) diag.Mapper {
	v := diag.V3
	switch e.Version() {
	case VersionV2:
		v = diag.V2
	case VersionV38:
		v = diag.V38
	}
	return diag.Mapper{Version: v}
}

// severityOf folds a handle's posted diagnostics into a return code:
// RCError if any non-warning diagnostic was posted, RCSuccessWithInfo if
// only warnings were, RCSuccess otherwise. Callers that also produced
// their own return code (NO_DATA, NEED_DATA, …) merge it via WorseOf.
func severityOf(h *Handle) ReturnCode {
	switch {
	case h.Diagnostics().HasErrors():
		return RCError
	case h.Diagnostics().HasWarnings():
		return RCSuccessWithInfo
	default:
		return RCSuccess
	}
}

// --- Handle allocation / free (§4.10 "handle allocation/free") ---

// SQLAllocEnv allocates a fresh environment handle at the given version.
func SQLAllocEnv(v Version) HENV { return NewEnvironment(v) }

// SQLFreeEnv frees env and, recursively, every child connection.
func SQLFreeEnv(env HENV) ReturnCode {
	if env == nil {
		return RCInvalidHandle
	}
	var rc ReturnCode
	env.lock.WriteLocked(func() {
		env.ClearDiagnostics()
		if err := env.Free(); err != nil {
			env.Post(errToDiag(err, mapperFor(env)))
		}
		rc = severityOf(&env.Handle)
	})
	return rc
}

// SQLAllocConnect allocates a connection handle under env.
func SQLAllocConnect(env HENV) (HDBC, ReturnCode) {
	if env == nil {
		return nil, RCInvalidHandle
	}
	var conn HDBC
	env.lock.ReadLocked(func() {
		env.ClearDiagnostics()
		conn, _ = env.AllocConnection()
	})
	return conn, severityOf(&env.Handle)
}

// SQLFreeConnect frees conn; fails with HY010 if statements remain open.
func SQLFreeConnect(conn HDBC) ReturnCode {
	if conn == nil {
		return RCInvalidHandle
	}
	conn.ClearDiagnostics()
	if err := conn.Disconnect(); err != nil {
		conn.Post(errToDiag(err, mapperFor(conn.env)))
	}
	return severityOf(&conn.Handle)
}

// SQLAllocStmt allocates a statement handle under conn.
func SQLAllocStmt(conn HDBC) (HSTMT, ReturnCode) {
	if conn == nil {
		return nil, RCInvalidHandle
	}
	var stmt HSTMT
	var rc ReturnCode
	conn.lock.Locked(func() {
		conn.ClearDiagnostics()
		s, err := conn.AllocStatement()
		if err != nil {
			conn.Post(errToDiag(err, mapperFor(conn.env)))
			rc = RCError
			return
		}
		stmt = s
	})
	if stmt != nil {
		rc = severityOf(&conn.Handle)
	}
	return stmt, rc
}

// SQLFreeStmt releases stmt's resources per the drop/unbind/close
// options named in spec.md §4.10.
type FreeStmtOption int

// FreeStmt options.
const (
	FreeStmtClose FreeStmtOption = iota // close any open cursor only
	FreeStmtUnbind
	FreeStmtUnparam
	FreeStmtDrop // destroy the statement entirely
)

func SQLFreeStmt(stmt HSTMT, opt FreeStmtOption) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	return withStmtGuard(stmt, func() error {
		switch opt {
		case FreeStmtClose:
			return stmt.CloseCursor()
		case FreeStmtUnbind:
			stmt.slots[SlotAppRow].SetCount(0)
			return nil
		case FreeStmtUnparam:
			stmt.slots[SlotAppParam].SetCount(0)
			return nil
		case FreeStmtDrop:
			return stmt.Free()
		}
		return nil
	})
}

// SQLAllocHandleDesc allocates an explicit descriptor on conn.
func SQLAllocHandleDesc(conn HDBC) (HDESC, ReturnCode) {
	if conn == nil {
		return nil, RCInvalidHandle
	}
	var desc HDESC
	conn.lock.Locked(func() {
		conn.ClearDiagnostics()
		desc = conn.AllocExplicitDescriptor()
	})
	return desc, severityOf(&conn.Handle)
}

// SQLFreeHandleDesc frees an explicit descriptor; fails if any statement
// still references it.
func SQLFreeHandleDesc(conn HDBC, desc HDESC) ReturnCode {
	if conn == nil || desc == nil {
		return RCInvalidHandle
	}
	return withConnGuard(conn, func() error {
		return conn.FreeExplicitDescriptor(desc)
	})
}

// --- Guard helpers shared by every entry point below ---

// isTransportState reports whether a resolved SQLSTATE belongs to the
// "08" connection-exception class, spec.md §4.9's trigger for latching
// CONNECTION_DEAD.
func isTransportState(state string) bool {
	return len(state) == 5 && state[0] == '0' && state[1] == '8'
}

// deadConnDiag is the 08S01 diagnostic a dead connection's subsequent
// calls short-circuit to, per spec.md §4.9: "subsequent API calls
// short-circuit to 08S01 without retry."
func deadConnDiag() *diag.Record {
	return newDiag("08S01", 0, "odbc: connection is dead")
}

func withConnGuard(conn HDBC, fn func() error) ReturnCode {
	var rc ReturnCode
	conn.lock.Locked(func() {
		conn.ClearDiagnostics()
		if conn.IsDead() {
			conn.Post(deadConnDiag())
			rc = RCError
			return
		}
		if err := fn(); err != nil {
			rec := errToDiag(err, mapperFor(conn.env))
			conn.Post(rec)
			if isTransportState(rec.SqlState) {
				conn.markDead()
			}
		}
		rc = severityOf(&conn.Handle)
	})
	return rc
}

func withStmtGuard(stmt HSTMT, fn func() error) ReturnCode {
	var rc ReturnCode
	stmt.conn.lock.Locked(func() {
		stmt.ClearDiagnostics()
		if stmt.conn.IsDead() {
			stmt.Post(deadConnDiag())
			rc = RCError
			return
		}
		if err := fn(); err != nil {
			rec := errToDiag(err, mapperFor(stmt.conn.env))
			stmt.Post(rec)
			if isTransportState(rec.SqlState) {
				stmt.conn.markDead()
			}
		}
		rc = severityOf(&stmt.Handle)
	})
	return rc
}

// --- Connect / Disconnect (§4.10) ---

// SQLConnect does not route through withConnGuard: Connection.Connect
// already takes the connection lock for the span of its own work, and
// ConnLock is not reentrant.
func SQLConnect(ctx context.Context, conn HDBC, client Client, params AttachParams) ReturnCode {
	if conn == nil {
		return RCInvalidHandle
	}
	ctx, end := traceEntry(ctx, "SQLConnect", &conn.Handle)
	conn.ClearDiagnostics()
	if err := conn.Connect(ctx, client, params); err != nil {
		conn.Post(errToDiag(err, mapperFor(conn.env)))
	}
	rc := severityOf(&conn.Handle)
	end(rc)
	return rc
}

// SQLDriverConnect resolves a raw connection string (spec.md §6) and
// loads the named wire client before attaching, the single-call
// counterpart to separately calling ResolveAttachParams/LoadWireClient
// and SQLConnect.
func SQLDriverConnect(ctx context.Context, conn HDBC, connStr string, loader func(path string) (Client, error)) ReturnCode {
	if conn == nil {
		return RCInvalidHandle
	}
	ctx, end := traceEntry(ctx, "SQLDriverConnect", &conn.Handle)
	conn.ClearDiagnostics()
	params, err := ResolveAttachParams(connStr)
	if err != nil {
		conn.Post(newDiag("HY090", 0, err.Error()))
		end(RCError)
		return RCError
	}
	client, err := conn.env.LoadWireClient(ResolveClientPath(params), func() (Client, error) {
		return loader(ResolveClientPath(params))
	})
	if err != nil {
		conn.Post(newDiag("IM003", 0, err.Error()))
		end(RCError)
		return RCError
	}
	if err := conn.Connect(ctx, client, params); err != nil {
		conn.Post(errToDiag(err, mapperFor(conn.env)))
	}
	rc := severityOf(&conn.Handle)
	end(rc)
	return rc
}

func SQLDisconnect(conn HDBC) ReturnCode {
	if conn == nil {
		return RCInvalidHandle
	}
	_, end := traceEntry(context.Background(), "SQLDisconnect", &conn.Handle)
	conn.ClearDiagnostics()
	if err := conn.Disconnect(); err != nil {
		conn.Post(errToDiag(err, mapperFor(conn.env)))
	}
	rc := severityOf(&conn.Handle)
	end(rc)
	return rc
}

// --- Prepare / Execute / data-at-execution (§4.10) ---

func SQLPrepare(ctx context.Context, stmt HSTMT, sql string) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	ctx, end := traceEntry(ctx, "SQLPrepare", &stmt.Handle)
	rc := withStmtGuard(stmt, func() error { return stmt.Prepare(ctx, sql) })
	end(rc)
	return rc
}

// ExecOutcome carries the richer-than-ReturnCode result an Execute-family
// call needs to report (SQL_NEED_DATA in particular is not an error).
type ExecOutcome struct {
	RC     ReturnCode
	Result ExecResult
}

func SQLExecute(ctx context.Context, stmt HSTMT) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return dispatchExecute(ctx, "SQLExecute", stmt, func() (ExecResult, error) {
		rows, err := stmt.BindParamRows()
		if err != nil {
			return ExecResult{}, err
		}
		return stmt.runParamRows(ctx, rows)
	})
}

func SQLExecDirect(ctx context.Context, stmt HSTMT, sql string) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return dispatchExecute(ctx, "SQLExecDirect", stmt, func() (ExecResult, error) {
		// ExecDirect prepares first so BindParamRows sees fresh IPD
		// metadata, per spec.md §4.8's fused ALLOCATED -> EXECUTED/
		// CURSOR_OPEN transition.
		if err := stmt.Prepare(ctx, sql); err != nil {
			return ExecResult{}, err
		}
		rows, err := stmt.BindParamRows()
		if err != nil {
			return ExecResult{}, err
		}
		return stmt.runParamRows(ctx, rows)
	})
}

// runParamRows drives Statement.Execute once per resolved parameter row,
// per spec.md §4.6 step 3: continue to the next row on a per-row error,
// writing the IPD's ArrayStatusPtr/RowsProcessed as it goes. The state
// machine only allows the "Execute" event from PREPARED, so between rows
// this rearms PREPARED directly (closing any cursor the previous row
// opened) rather than re-preparing the plan. A row that carries
// data-at-execution ordinals stops the loop and surfaces SQL_NEED_DATA;
// mixing DAE parameters with a multi-row paramset is not supported.
func (s *Statement) runParamRows(ctx context.Context, rows []BoundRow) (ExecResult, error) {
	ipd := s.implicit[SlotImpParam]
	var last ExecResult
	var firstErr error
	processed := int64(0)
	for i, row := range rows {
		if i > 0 {
			if s.cursor != nil {
				_ = s.cursor.Close(ctx)
				s.cursor = nil
			}
			s.state = StatePrepared
		}
		res, err := s.Execute(ctx, row.Values, row.DAE)
		if err == errNeedData {
			return ExecResult{}, err // caller must drive ParamData/PutData
		}
		status := RowSuccess
		if err != nil {
			status = RowError
			if firstErr == nil {
				firstErr = err
			}
		} else {
			last = res
			processed++
		}
		if i < len(ipd.ArrayStatusPtr) {
			ipd.ArrayStatusPtr[i] = int32(status)
		}
		if ipd.RowsProcessed != nil {
			*ipd.RowsProcessed = processed
		}
	}
	if ipd.RowsProcessed != nil {
		*ipd.RowsProcessed = processed
	}
	return last, firstErr
}

func dispatchExecute(ctx context.Context, name string, stmt HSTMT, fn func() (ExecResult, error)) ExecOutcome {
	_, end := traceEntry(ctx, name, &stmt.Handle)
	var out ExecOutcome
	stmt.conn.lock.Locked(func() {
		stmt.ClearDiagnostics()
		if stmt.conn.IsDead() {
			stmt.Post(deadConnDiag())
			out.RC = RCError
			return
		}
		start := time.Now()
		res, err := fn()
		if err != errNeedData {
			stmt.conn.env.recordExecTime(stmt.sqlText, time.Since(start))
		}
		if err == errNeedData {
			out.RC = RCNeedData
			return
		}
		if err != nil {
			rec := errToDiag(err, mapperFor(stmt.conn.env))
			stmt.Post(rec)
			if isTransportState(rec.SqlState) {
				stmt.conn.markDead()
			}
		}
		out.Result = res
		out.RC = severityOf(&stmt.Handle)
	})
	end(out.RC)
	return out
}

func SQLParamData(stmt HSTMT) (token int, rc ReturnCode) {
	if stmt == nil {
		return 0, RCInvalidHandle
	}
	stmt.conn.lock.Locked(func() {
		stmt.ClearDiagnostics()
		if stmt.conn.IsDead() {
			stmt.Post(deadConnDiag())
			rc = RCError
			return
		}
		ordinal, done, _, err := stmt.ParamData()
		if err != nil {
			rec := errToDiag(err, mapperFor(stmt.conn.env))
			stmt.Post(rec)
			if isTransportState(rec.SqlState) {
				stmt.conn.markDead()
			}
			rc = RCError
			return
		}
		if !done {
			token, rc = ordinal, RCNeedData
			return
		}
		rc = severityOf(&stmt.Handle)
	})
	return token, rc
}

func SQLPutData(stmt HSTMT, buf []byte) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	return withStmtGuard(stmt, func() error { return stmt.PutData(buf) })
}

// --- Binding (§4.10) ---

// SQLBindParameter assigns CType/SQLType and the binding triple on the
// APD's record n, implicitly growing Count per spec.md §4.4.
func SQLBindParameter(stmt HSTMT, n int, io ParamIO, ct types.CType, sqlType types.SQLType, precision uint8, scale int8, dataPtr []byte, octetLenPtr, indicatorPtr []int64) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	return withStmtGuard(stmt, func() error {
		apd := stmt.slots[SlotAppParam]
		rec, err := apd.Record(n)
		if err != nil {
			return fmt.Errorf("odbc: HY009: %w", err)
		}
		rec.CType = ct
		rec.setConciseType(sqlType)
		rec.Precision, rec.Scale = precision, scale
		rec.DataPtr, rec.OctetLengthPtr, rec.IndicatorPtr = dataPtr, octetLenPtr, indicatorPtr

		ipd := stmt.implicit[SlotImpParam]
		irec, _ := ipd.Record(n)
		irec.ParameterType = io
		irec.setConciseType(sqlType)
		irec.Precision, irec.Scale = precision, scale
		return nil
	})
}

// SQLBindCol assigns CType and the binding triple on the ARD's record n.
func SQLBindCol(stmt HSTMT, n int, ct types.CType, dataPtr []byte, octetLenPtr, indicatorPtr []int64) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	return withStmtGuard(stmt, func() error {
		ard := stmt.slots[SlotAppRow]
		rec, err := ard.Record(n)
		if err != nil {
			return fmt.Errorf("odbc: HY009: %w", err)
		}
		rec.CType = ct
		rec.DataPtr, rec.OctetLengthPtr, rec.IndicatorPtr = dataPtr, octetLenPtr, indicatorPtr
		return nil
	})
}

// --- Result metadata (§4.10) ---

func SQLNumResultCols(stmt HSTMT) (int, ReturnCode) {
	if stmt == nil {
		return 0, RCInvalidHandle
	}
	var n int
	rc := withStmtGuard(stmt, func() error { n = stmt.NumResultCols(); return nil })
	return n, rc
}

// ColumnDescription is what SQLDescribeCol reports for one IRD record.
type ColumnDescription struct {
	Name      string
	SQLType   types.SQLType
	Precision uint8
	Scale     int8
	Nullable  bool
}

func SQLDescribeCol(stmt HSTMT, col int) (ColumnDescription, ReturnCode) {
	if stmt == nil {
		return ColumnDescription{}, RCInvalidHandle
	}
	var desc ColumnDescription
	rc := withStmtGuard(stmt, func() error {
		ird := stmt.implicit[SlotImpRow]
		if col < 1 || col > ird.Count() {
			return fmt.Errorf("odbc: 07009: invalid column number %d", col)
		}
		rec := &ird.records[col]
		desc = ColumnDescription{Name: rec.Name, SQLType: rec.ConciseType, Precision: rec.Precision, Scale: rec.Scale, Nullable: rec.Nullable}
		return nil
	})
	return desc, rc
}

// SQLColAttribute reads one DescField off the IRD's record col.
func SQLColAttribute(stmt HSTMT, col int, field DescField) (*DescRecord, ReturnCode) {
	if stmt == nil {
		return nil, RCInvalidHandle
	}
	var rec *DescRecord
	rc := withStmtGuard(stmt, func() error {
		ird := stmt.implicit[SlotImpRow]
		if col < 1 || col > ird.Count() {
			return fmt.Errorf("odbc: 07009: invalid column number %d", col)
		}
		rec = &ird.records[col]
		return nil
	})
	return rec, rc
}

// --- Fetch / GetData / RowCount (§4.10) ---

func SQLFetch(ctx context.Context, stmt HSTMT) (FetchResult, ReturnCode) {
	if stmt == nil {
		return FetchResult{}, RCInvalidHandle
	}
	ctx, end := traceEntry(ctx, "SQLFetch", &stmt.Handle)
	var res FetchResult
	rc := withStmtGuard(stmt, func() error {
		var err error
		res, err = stmt.Fetch(ctx)
		return err
	})
	if res.NoData {
		rc = WorseOf(RCNoData, rc)
	}
	end(rc)
	return res, rc
}

func SQLFetchScroll(ctx context.Context, stmt HSTMT, dir FetchDirection, offset int64) (FetchResult, ReturnCode) {
	if stmt == nil {
		return FetchResult{}, RCInvalidHandle
	}
	var res FetchResult
	rc := withStmtGuard(stmt, func() error {
		var err error
		res, err = stmt.FetchScroll(ctx, dir, offset)
		return err
	})
	if res.NoData {
		return res, WorseOf(RCNoData, rc)
	}
	return res, rc
}

func SQLGetData(ctx context.Context, stmt HSTMT, col int, ct types.CType, dst []byte) (types.Result, ReturnCode) {
	if stmt == nil {
		return types.Result{}, RCInvalidHandle
	}
	var res types.Result
	rc := withStmtGuard(stmt, func() error {
		var err error
		res, err = stmt.GetData(ctx, col, ct, dst)
		return err
	})
	if res.Status == types.StatusTruncated {
		rc = WorseOf(rc, RCSuccessWithInfo)
	}
	return res, rc
}

func SQLRowCount(stmt HSTMT) (int64, ReturnCode) {
	if stmt == nil {
		return 0, RCInvalidHandle
	}
	var n int64
	rc := withStmtGuard(stmt, func() error { n = stmt.RowCount(); return nil })
	return n, rc
}

// --- Cursor / cancel (§4.10) ---

func SQLSetCursorName(stmt HSTMT, name string) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	return withStmtGuard(stmt, func() error { return stmt.SetCursorName(name) })
}

func SQLGetCursorName(stmt HSTMT) (string, ReturnCode) {
	if stmt == nil {
		return "", RCInvalidHandle
	}
	var name string
	rc := withStmtGuard(stmt, func() error { name = stmt.CursorName(); return nil })
	return name, rc
}

func SQLCloseCursor(stmt HSTMT) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	return withStmtGuard(stmt, func() error { return stmt.CloseCursor() })
}

// SQLCancel deliberately bypasses the connection lock (spec.md §4.3),
// so it is safe to call concurrently with an in-flight call on stmt.
func SQLCancel(stmt HSTMT) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	if err := stmt.Cancel(); err != nil {
		return RCError
	}
	return RCSuccess
}

// --- Transactions (§4.10 EndTran) ---

type CompletionType int

const (
	CompletionCommit CompletionType = iota
	CompletionRollback
)

func SQLEndTran(ctx context.Context, conn HDBC, ct CompletionType) ReturnCode {
	if conn == nil {
		return RCInvalidHandle
	}
	ctx, end := traceEntry(ctx, "SQLEndTran", &conn.Handle)
	rc := withConnGuard(conn, func() error {
		if ct == CompletionCommit {
			return conn.Commit(ctx)
		}
		return conn.Rollback(ctx)
	})
	end(rc)
	return rc
}

// --- Connection / statement / environment attributes (§4.10) ---

func SQLSetConnectAttrAutocommit(conn HDBC, on bool) ReturnCode {
	if conn == nil {
		return RCInvalidHandle
	}
	return withConnGuard(conn, func() error { conn.SetAutocommit(on); return nil })
}

func SQLSetConnectAttrIsolation(conn HDBC, l IsolationLevel) ReturnCode {
	if conn == nil {
		return RCInvalidHandle
	}
	return withConnGuard(conn, func() error { conn.SetIsolation(l); return nil })
}

func SQLSetConnectAttrAsyncEnable(conn HDBC, on bool) ReturnCode {
	if conn == nil {
		return RCInvalidHandle
	}
	return withConnGuard(conn, func() error { return conn.SetAsyncEnable(on) })
}

func SQLGetConnectAttr(conn HDBC) (connAttrs, ReturnCode) {
	if conn == nil {
		return connAttrs{}, RCInvalidHandle
	}
	var a connAttrs
	rc := withConnGuard(conn, func() error { a = conn.Attrs(); return nil })
	return a, rc
}

func secondsToDuration(seconds int64) time.Duration { return time.Duration(seconds) * time.Second }

func SQLSetStmtAttrQueryTimeout(stmt HSTMT, seconds int64) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	return withStmtGuard(stmt, func() error {
		stmt.attrs.QueryTimeout = secondsToDuration(seconds)
		return nil
	})
}

func SQLSetStmtAttrCursorType(stmt HSTMT, ct CursorType) ReturnCode {
	if stmt == nil {
		return RCInvalidHandle
	}
	return withStmtGuard(stmt, func() error {
		if ct != CursorForwardOnly && ct != CursorStatic {
			return fmt.Errorf("odbc: HYC00: cursor type %d is not supported", ct)
		}
		stmt.attrs.CursorType = ct
		return nil
	})
}

func SQLGetStmtAttr(stmt HSTMT) (stmtAttrs, ReturnCode) {
	if stmt == nil {
		return stmtAttrs{}, RCInvalidHandle
	}
	var a stmtAttrs
	rc := withStmtGuard(stmt, func() error { a = stmt.attrs; return nil })
	return a, rc
}

func SQLSetEnvAttrVersion(env HENV, v Version) ReturnCode {
	if env == nil {
		return RCInvalidHandle
	}
	env.SetVersion(v)
	return RCSuccess
}

func SQLGetEnvAttrVersion(env HENV) (Version, ReturnCode) {
	if env == nil {
		return 0, RCInvalidHandle
	}
	return env.Version(), RCSuccess
}

// --- Descriptor fields / records / copy (§4.10) ---

func SQLSetDescField(desc HDESC, record int, field DescField, sqlType types.SQLType) ReturnCode {
	if desc == nil {
		return RCInvalidHandle
	}
	var rc ReturnCode
	desc.conn.lock.Locked(func() {
		desc.ClearDiagnostics()
		if field == FieldConciseType {
			if err := desc.SetConciseType(record, sqlType); err != nil {
				desc.Post(errToDiag(err, mapperFor(desc.conn.env)))
			}
		}
		rc = severityOf(&desc.Handle)
	})
	return rc
}

func SQLGetDescField(desc HDESC, record int) (*DescRecord, ReturnCode) {
	if desc == nil {
		return nil, RCInvalidHandle
	}
	var rec *DescRecord
	var rc ReturnCode
	desc.conn.lock.Locked(func() {
		desc.ClearDiagnostics()
		r, err := desc.Record(record)
		if err != nil {
			desc.Post(errToDiag(err, mapperFor(desc.conn.env)))
		}
		rec = r
		rc = severityOf(&desc.Handle)
	})
	return rec, rc
}

func SQLSetDescRec(desc HDESC, record int, rec DescRecord) ReturnCode {
	if desc == nil {
		return RCInvalidHandle
	}
	var rc ReturnCode
	desc.conn.lock.Locked(func() {
		desc.ClearDiagnostics()
		r, err := desc.Record(record)
		if err != nil {
			desc.Post(errToDiag(err, mapperFor(desc.conn.env)))
		} else {
			*r = rec
		}
		rc = severityOf(&desc.Handle)
	})
	return rc
}

func SQLGetDescRec(desc HDESC, record int) (*DescRecord, ReturnCode) {
	return SQLGetDescField(desc, record)
}

func SQLCopyDesc(src, dst HDESC) ReturnCode {
	if src == nil || dst == nil {
		return RCInvalidHandle
	}
	var rc ReturnCode
	dst.conn.lock.Locked(func() {
		dst.ClearDiagnostics()
		if err := CopyDesc(src, dst); err != nil {
			dst.Post(errToDiag(err, mapperFor(dst.conn.env)))
		}
		rc = severityOf(&dst.Handle)
	})
	return rc
}

// --- Diagnostics (§4.10) ---

func SQLGetDiagRec(h *Handle, n int) (*diag.Record, bool) { return h.Diagnostics().Get(n) }

func SQLGetDiagFieldNumber(h *Handle) int32 { return int32(h.Diagnostics().Count()) }

// --- GetInfo / GetFunctions / GetTypeInfo / NativeSql (§4.10) ---

func SQLGetInfoServerName(conn HDBC, client Client) (string, ReturnCode) {
	if conn == nil {
		return "", RCInvalidHandle
	}
	if client == nil {
		return "", RCError
	}
	var name string
	rc := withConnGuard(conn, func() error {
		name = client.Dispatcher().ServerName()
		return nil
	})
	return name, rc
}

func SQLGetFunctions(client Client, name string) bool {
	if client == nil {
		return false
	}
	return client.Dispatcher().SupportsFunction(name)
}

// SQLNativeSql returns sql unchanged: the core performs no SQL rewriting
// of its own (the legacy array-parameter heuristic named as an open
// question in spec.md §9 is out of scope per that decision).
func SQLNativeSql(sql string) string { return sql }
