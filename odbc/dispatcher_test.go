// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import (
	"context"
	"testing"
	"time"

	"github.com/fbclient/godbc/odbc/internal/types"
)

// TestNullHandlesReturnInvalidHandle exercises spec.md §8's universal
// property: "For every handle kind H and every supported entry point
// that accepts a handle, calling with a null handle returns
// INVALID_HANDLE and does not crash."
func TestNullHandlesReturnInvalidHandle(t *testing.T) {
	if rc := SQLFreeEnv(nil); rc != RCInvalidHandle {
		t.Errorf("SQLFreeEnv(nil) = %v, want RCInvalidHandle", rc)
	}
	if _, rc := SQLAllocConnect(nil); rc != RCInvalidHandle {
		t.Errorf("SQLAllocConnect(nil) = %v, want RCInvalidHandle", rc)
	}
	if rc := SQLFreeConnect(nil); rc != RCInvalidHandle {
		t.Errorf("SQLFreeConnect(nil) = %v, want RCInvalidHandle", rc)
	}
	if _, rc := SQLAllocStmt(nil); rc != RCInvalidHandle {
		t.Errorf("SQLAllocStmt(nil) = %v, want RCInvalidHandle", rc)
	}
	if rc := SQLFreeStmt(nil, FreeStmtDrop); rc != RCInvalidHandle {
		t.Errorf("SQLFreeStmt(nil) = %v, want RCInvalidHandle", rc)
	}
	if rc := SQLPrepare(context.Background(), nil, "SELECT 1"); rc != RCInvalidHandle {
		t.Errorf("SQLPrepare(nil) = %v, want RCInvalidHandle", rc)
	}
	if out := SQLExecute(context.Background(), nil); out.RC != RCInvalidHandle {
		t.Errorf("SQLExecute(nil) = %v, want RCInvalidHandle", out.RC)
	}
	if rc := SQLBindParameter(nil, 1, ParamInput, types.CChar, types.SQLChar, 0, 0, nil, nil, nil); rc != RCInvalidHandle {
		t.Errorf("SQLBindParameter(nil) = %v, want RCInvalidHandle", rc)
	}
	if rc := SQLCloseCursor(nil); rc != RCInvalidHandle {
		t.Errorf("SQLCloseCursor(nil) = %v, want RCInvalidHandle", rc)
	}
	if rc := SQLCancel(nil); rc != RCInvalidHandle {
		t.Errorf("SQLCancel(nil) = %v, want RCInvalidHandle", rc)
	}
	if _, rc := SQLGetDescRec(nil, 1); rc != RCInvalidHandle {
		t.Errorf("SQLGetDescRec(nil) = %v, want RCInvalidHandle", rc)
	}
	if rc := SQLCopyDesc(nil, nil); rc != RCInvalidHandle {
		t.Errorf("SQLCopyDesc(nil, nil) = %v, want RCInvalidHandle", rc)
	}
}

// TestCopyDescEmptyGuard exercises spec.md §8 scenario 2: two explicit
// descriptors without any records copy cleanly without dereferencing a
// nonexistent record.
func TestCopyDescEmptyGuard(t *testing.T) {
	env := NewEnvironment(VersionV3)
	conn, rc := SQLAllocConnect(env)
	if rc != RCSuccess {
		t.Fatalf("SQLAllocConnect: rc=%v", rc)
	}
	a, rc := SQLAllocHandleDesc(conn)
	if rc != RCSuccess {
		t.Fatalf("SQLAllocHandleDesc(a): rc=%v", rc)
	}
	b, rc := SQLAllocHandleDesc(conn)
	if rc != RCSuccess {
		t.Fatalf("SQLAllocHandleDesc(b): rc=%v", rc)
	}
	if rc := SQLCopyDesc(a, b); rc != RCSuccess {
		t.Fatalf("SQLCopyDesc(empty a, b) = %v, want RCSuccess", rc)
	}
	if b.Count() != 0 {
		t.Fatalf("b.Count() = %d, want 0", b.Count())
	}
}

// TestCopyDescShrinksDestination exercises the other half of spec.md
// §4.4's crash-site pin: copying a smaller src onto a larger dst frees
// the destination's excess records rather than leaving them dangling.
func TestCopyDescShrinksDestination(t *testing.T) {
	env := NewEnvironment(VersionV3)
	conn, _ := SQLAllocConnect(env)
	a, _ := SQLAllocHandleDesc(conn)
	b, _ := SQLAllocHandleDesc(conn)
	a.SetCount(2)
	b.SetCount(5)
	if rc := SQLCopyDesc(a, b); rc != RCSuccess {
		t.Fatalf("SQLCopyDesc: rc=%v", rc)
	}
	if b.Count() != 2 {
		t.Fatalf("b.Count() = %d, want 2", b.Count())
	}
}

// TestDataAtExecutionRoundTrip exercises spec.md §8 scenario 3: prepare
// an insert, bind a DATA_AT_EXEC parameter, stream it in three PutData
// chunks, and confirm the wire client receives the concatenated bytes.
func TestDataAtExecutionRoundTrip(t *testing.T) {
	_, _, stmt, sess := newConnectedStatement(t)

	var gotParams []ParamValue
	sess.prepareFn = func(sql string) (WireStatement, error) {
		return &fakeStatement{
			sql:    sql,
			inputs: []ParamMeta{{SQLType: int(types.SQLInteger)}, {SQLType: int(types.SQLVarchar)}},
			execFn: func(params []ParamValue) (ExecResult, error) {
				gotParams = params
				return ExecResult{RowsAffected: 1}, nil
			},
		}, nil
	}

	if rc := SQLPrepare(context.Background(), stmt, "INSERT INTO T(ID, TXT) VALUES(?,?)"); rc != RCSuccess {
		t.Fatalf("SQLPrepare: rc=%v", rc)
	}

	idBuf := make([]byte, 4)
	idOctet := []int64{4}
	idInd := []int64{0}
	if rc := SQLBindParameter(stmt, 1, ParamInput, types.CSLong, types.SQLInteger, 0, 0, idBuf, idOctet, idInd); rc != RCSuccess {
		t.Fatalf("SQLBindParameter(1): rc=%v", rc)
	}
	txtInd := []int64{IndicatorDataAtExec}
	if rc := SQLBindParameter(stmt, 2, ParamInput, types.CChar, types.SQLVarchar, 0, 0, nil, nil, txtInd); rc != RCSuccess {
		t.Fatalf("SQLBindParameter(2): rc=%v", rc)
	}

	out := SQLExecute(context.Background(), stmt)
	if out.RC != RCNeedData {
		t.Fatalf("SQLExecute = %v, want RCNeedData", out.RC)
	}

	token, rc := SQLParamData(stmt)
	if rc != RCNeedData {
		t.Fatalf("SQLParamData (first) = %v, want RCNeedData", rc)
	}
	if token != 2 {
		t.Fatalf("SQLParamData token = %d, want 2", token)
	}

	for _, chunk := range []string{"chunk1-", "chunk2-", "chunk3"} {
		if rc := SQLPutData(stmt, []byte(chunk)); rc != RCSuccess {
			t.Fatalf("SQLPutData(%q): rc=%v", chunk, rc)
		}
	}

	_, rc = SQLParamData(stmt)
	if rc != RCSuccess {
		t.Fatalf("SQLParamData (final) = %v, want RCSuccess", rc)
	}
	if len(gotParams) != 2 || string(gotParams[1].Bytes) != "chunk1-chunk2-chunk3" {
		t.Fatalf("wire-client saw params %+v, want concatenated chunk", gotParams)
	}
	if stmt.State() != StateExecuted {
		t.Fatalf("state = %v, want EXECUTED", stmt.State())
	}
}

// TestCancelDuringBlockedExecute exercises spec.md §8's "Cancel from
// thread B on a statement blocked in thread A" property: Cancel does not
// take the connection lock, so it can reach the statement while a
// different goroutine is still inside a blocking wire-client call.
func TestCancelDuringBlockedExecute(t *testing.T) {
	_, _, stmt, sess := newConnectedStatement(t)

	started := make(chan struct{})
	release := make(chan struct{})
	var cancelSeen int

	sess.prepareFn = func(sql string) (WireStatement, error) {
		return &fakeStatement{
			sql: sql,
			execFn: func(params []ParamValue) (ExecResult, error) {
				close(started)
				<-release
				cancelSeen = sess.cancelCount()
				return ExecResult{}, &WireError{Message: "odbc: HY008: operation cancelled"}
			},
		}, nil
	}
	if rc := SQLPrepare(context.Background(), stmt, "SELECT * FROM BIG"); rc != RCSuccess {
		t.Fatalf("SQLPrepare: rc=%v", rc)
	}

	done := make(chan ExecOutcome, 1)
	go func() { done <- SQLExecute(context.Background(), stmt) }()

	<-started
	if rc := SQLCancel(stmt); rc != RCSuccess {
		t.Fatalf("SQLCancel: rc=%v", rc)
	}
	close(release)

	select {
	case out := <-done:
		if out.RC != RCError {
			t.Fatalf("SQLExecute after cancel = %v, want RCError", out.RC)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SQLExecute did not return within 5s of Cancel")
	}
	if cancelSeen == 0 {
		t.Fatal("wire session never observed CancelOperation")
	}
}

// TestWireErrorMapsToSQLState exercises spec.md §8 scenario 1 at the
// mapper boundary: a wire-client error carrying the native unique-
// constraint-violation code resolves to SQLSTATE 23000 instead of
// falling through to the generic HY000.
func TestWireErrorMapsToSQLState(t *testing.T) {
	_, _, stmt, sess := newConnectedStatement(t)
	sess.prepareFn = func(sql string) (WireStatement, error) {
		return &fakeStatement{
			sql: sql,
			execFn: func(params []ParamValue) (ExecResult, error) {
				return ExecResult{}, &WireError{ServerCode: 335544466, Message: "violation of PRIMARY KEY constraint"}
			},
		}, nil
	}
	if rc := SQLPrepare(context.Background(), stmt, "INSERT INTO T(ID) VALUES(1)"); rc != RCSuccess {
		t.Fatalf("SQLPrepare: rc=%v", rc)
	}
	out := SQLExecute(context.Background(), stmt)
	if out.RC != RCError {
		t.Fatalf("SQLExecute = %v, want RCError", out.RC)
	}
	rec, ok := stmt.Diagnostics().Get(1)
	if !ok {
		t.Fatal("no diagnostic posted")
	}
	if rec.SqlState != "23000" {
		t.Fatalf("SqlState = %q, want 23000", rec.SqlState)
	}
}

// TestWireErrorMessagePrefixMapsToSQLState exercises the "odbc: SQLSTATE:
// message" convention's own resolution path: a *WireError with no server
// or legacy code still surfaces the SQLSTATE embedded in its Message,
// instead of falling through to the generic HY000/S1000.
func TestWireErrorMessagePrefixMapsToSQLState(t *testing.T) {
	_, _, stmt, sess := newConnectedStatement(t)
	sess.prepareFn = func(sql string) (WireStatement, error) {
		return &fakeStatement{
			sql: sql,
			execFn: func(params []ParamValue) (ExecResult, error) {
				return ExecResult{}, &WireError{Message: "odbc: HYT00: query timeout expired"}
			},
		}, nil
	}
	if rc := SQLPrepare(context.Background(), stmt, "SELECT * FROM T"); rc != RCSuccess {
		t.Fatalf("SQLPrepare: rc=%v", rc)
	}
	out := SQLExecute(context.Background(), stmt)
	if out.RC != RCError {
		t.Fatalf("SQLExecute = %v, want RCError", out.RC)
	}
	rec, ok := stmt.Diagnostics().Get(1)
	if !ok {
		t.Fatal("no diagnostic posted")
	}
	if rec.SqlState != "HYT00" {
		t.Fatalf("SqlState = %q, want HYT00", rec.SqlState)
	}
	if rec.MessageText != "query timeout expired" {
		t.Fatalf("MessageText = %q, want the SQLSTATE prefix stripped", rec.MessageText)
	}
}

// TestParamDataTransportErrorMarksConnectionDead exercises the same
// spec.md §4.9 latch as TestTransportErrorMarksConnectionDead, but through
// SQLParamData's own execute path (the final PutData-driven doExecute),
// which carries its own IsDead/markDead wiring separate from
// withStmtGuard/dispatchExecute.
func TestParamDataTransportErrorMarksConnectionDead(t *testing.T) {
	_, conn, stmt, sess := newConnectedStatement(t)
	var execCalls int
	sess.prepareFn = func(sql string) (WireStatement, error) {
		return &fakeStatement{
			sql:    sql,
			inputs: []ParamMeta{{SQLType: int(types.SQLVarchar)}},
			execFn: func(params []ParamValue) (ExecResult, error) {
				execCalls++
				return ExecResult{}, &WireError{Message: "odbc: 08S01: communication link failure"}
			},
		}, nil
	}
	if rc := SQLPrepare(context.Background(), stmt, "INSERT INTO T(TXT) VALUES(?)"); rc != RCSuccess {
		t.Fatalf("SQLPrepare: rc=%v", rc)
	}
	txtInd := []int64{IndicatorDataAtExec}
	if rc := SQLBindParameter(stmt, 1, ParamInput, types.CChar, types.SQLVarchar, 0, 0, nil, nil, txtInd); rc != RCSuccess {
		t.Fatalf("SQLBindParameter: rc=%v", rc)
	}
	if out := SQLExecute(context.Background(), stmt); out.RC != RCNeedData {
		t.Fatalf("SQLExecute = %v, want RCNeedData", out.RC)
	}
	if rc := SQLPutData(stmt, []byte("chunk")); rc != RCSuccess {
		t.Fatalf("SQLPutData: rc=%v", rc)
	}

	if _, rc := SQLParamData(stmt); rc != RCError {
		t.Fatalf("SQLParamData (final) = %v, want RCError", rc)
	}
	rec, ok := stmt.Diagnostics().Get(1)
	if !ok || rec.SqlState != "08S01" {
		t.Fatalf("diagnostic = %+v (ok=%v), want SqlState 08S01", rec, ok)
	}
	if !conn.IsDead() {
		t.Fatal("conn.IsDead() = false after a transport-class error from doExecute, want true")
	}
	if execCalls != 1 {
		t.Fatalf("wire client Execute invoked %d times, want 1", execCalls)
	}

	if _, rc := SQLParamData(stmt); rc != RCError {
		t.Fatalf("SQLParamData after dead connection = %v, want RCError", rc)
	}
	rec, ok = stmt.Diagnostics().Get(1)
	if !ok || rec.SqlState != "08S01" {
		t.Fatalf("short-circuit diagnostic = %+v (ok=%v), want SqlState 08S01", rec, ok)
	}
	if execCalls != 1 {
		t.Fatalf("wire client Execute invoked %d times after dead connection, want 1 (short-circuit)", execCalls)
	}
}

// TestTransportErrorMarksConnectionDead exercises spec.md §4.9: a
// connection-exception-class (SQLSTATE "08...") diagnostic latches
// CONNECTION_DEAD, and every later call on that connection or its
// statements short-circuits to 08S01 without reaching the wire client.
func TestTransportErrorMarksConnectionDead(t *testing.T) {
	_, conn, stmt, sess := newConnectedStatement(t)
	var prepareCalls int
	sess.prepareFn = func(sql string) (WireStatement, error) {
		prepareCalls++
		return nil, &WireError{Message: "odbc: 08S01: communication link failure"}
	}

	if rc := SQLPrepare(context.Background(), stmt, "SELECT 1"); rc != RCError {
		t.Fatalf("SQLPrepare = %v, want RCError", rc)
	}
	rec, ok := stmt.Diagnostics().Get(1)
	if !ok || rec.SqlState != "08S01" {
		t.Fatalf("diagnostic = %+v (ok=%v), want SqlState 08S01", rec, ok)
	}
	if !conn.IsDead() {
		t.Fatal("conn.IsDead() = false after a transport-class error, want true")
	}

	if rc := SQLPrepare(context.Background(), stmt, "SELECT 2"); rc != RCError {
		t.Fatalf("SQLPrepare after dead connection = %v, want RCError", rc)
	}
	rec, ok = stmt.Diagnostics().Get(1)
	if !ok || rec.SqlState != "08S01" {
		t.Fatalf("short-circuit diagnostic = %+v (ok=%v), want SqlState 08S01", rec, ok)
	}
	if prepareCalls != 1 {
		t.Fatalf("wire client Prepare invoked %d times, want 1 (second call should short-circuit)", prepareCalls)
	}
}
