// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import (
	"context"
	"sync"
)

// fakeClient/fakeSession/fakeStatement/fakeCursor are a minimal in-memory
// stand-in for the wire-client collaborator of spec.md §6, sized to drive
// the dispatcher (L10) and statement state machine (L8) end to end
// without a real server. Grounded on the same table-of-rows shape
// driver/drivertest/dbtest.go uses to stand up a throwaway schema for the
// teacher's own example tests, simplified here to whatever a single test
// case needs to script.
type fakeClient struct {
	mu       sync.Mutex
	sessions []*fakeSession
}

func (c *fakeClient) Dispatcher() Dispatcher { return fakeDispatcher{} }
func (c *fakeClient) Status() ClientStatus   { return ClientOK }

func (c *fakeClient) Attach(ctx context.Context, params AttachParams) (Session, error) {
	s := &fakeSession{}
	c.mu.Lock()
	c.sessions = append(c.sessions, s)
	c.mu.Unlock()
	return s, nil
}

type fakeDispatcher struct{}

func (fakeDispatcher) ServerName() string            { return "fakedb" }
func (fakeDispatcher) ServerVersion() string          { return "1.0" }
func (fakeDispatcher) SupportsFunction(string) bool   { return true }

// fakeSession is a live attach. prepareFn lets a test script exactly what
// a Prepare call returns for a given SQL text; tests that don't care wire
// up a default echo statement.
type fakeSession struct {
	mu        sync.Mutex
	prepareFn func(sql string) (WireStatement, error)
	cancelled int
	closed    bool
}

func (s *fakeSession) StartTransaction(ctx context.Context) error { return nil }
func (s *fakeSession) Commit(ctx context.Context) error           { return nil }
func (s *fakeSession) Rollback(ctx context.Context) error         { return nil }
func (s *fakeSession) RegisterEventCallback(fn func(event string)) {}

func (s *fakeSession) Prepare(ctx context.Context, sql string) (WireStatement, error) {
	s.mu.Lock()
	fn := s.prepareFn
	s.mu.Unlock()
	if fn != nil {
		return fn(sql)
	}
	return &fakeStatement{sql: sql}, nil
}

func (s *fakeSession) CancelOperation() error {
	s.mu.Lock()
	s.cancelled++
	s.mu.Unlock()
	return nil
}

func (s *fakeSession) cancelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

func (s *fakeSession) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// fakeStatement is a prepared plan with fixed metadata and a scriptable
// execute/cursor outcome.
type fakeStatement struct {
	sql     string
	inputs  []ParamMeta
	outputs []ColumnMeta

	execFn   func(params []ParamValue) (ExecResult, error)
	cursorFn func(params []ParamValue) (Cursor, error)
}

func (w *fakeStatement) InputMetadata() []ParamMeta    { return w.inputs }
func (w *fakeStatement) OutputMetadata() []ColumnMeta  { return w.outputs }
func (w *fakeStatement) Plan() string                  { return w.sql }
func (w *fakeStatement) Free() error                   { return nil }

func (w *fakeStatement) Execute(ctx context.Context, params []ParamValue) (ExecResult, error) {
	if w.execFn != nil {
		return w.execFn(params)
	}
	return ExecResult{RowsAffected: 1}, nil
}

func (w *fakeStatement) OpenCursor(ctx context.Context, params []ParamValue) (Cursor, error) {
	if w.cursorFn != nil {
		return w.cursorFn(params)
	}
	return &fakeCursor{}, nil
}

// fakeCursor serves canned rows, one batch per Fetch call.
type fakeCursor struct {
	batches [][][]ParamValue
	pos     int
	closed  bool
}

func (c *fakeCursor) Fetch(ctx context.Context, n int) ([][]ParamValue, error) {
	if c.pos >= len(c.batches) {
		return nil, nil
	}
	b := c.batches[c.pos]
	c.pos++
	return b, nil
}

func (c *fakeCursor) RowCount() int64 { return int64(len(c.batches)) }
func (c *fakeCursor) Close(ctx context.Context) error {
	c.closed = true
	return nil
}
func (c *fakeCursor) BlobSegment(ctx context.Context, col int, offset int64, buf []byte) (int, bool, error) {
	return 0, true, nil
}

// newConnectedStatement wires up a fresh Environment->Connection->Statement
// chain attached to a fakeClient, for tests that don't care about the
// Connect/Disconnect path itself.
func newConnectedStatement(t interface{ Fatalf(string, ...any) }) (*Environment, *Connection, *Statement, *fakeSession) {
	env := NewEnvironment(VersionV3)
	client := &fakeClient{}
	conn, rc := SQLAllocConnect(env)
	if rc != RCSuccess || conn == nil {
		t.Fatalf("SQLAllocConnect: rc=%v", rc)
	}
	rc = SQLConnect(context.Background(), conn, client, AttachParams{})
	if rc != RCSuccess {
		t.Fatalf("SQLConnect: rc=%v", rc)
	}
	sess := client.sessions[0]
	stmt, rc := SQLAllocStmt(conn)
	if rc != RCSuccess || stmt == nil {
		t.Fatalf("SQLAllocStmt: rc=%v", rc)
	}
	return env, conn, stmt, sess
}
