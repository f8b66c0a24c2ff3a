// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fbclient/godbc/odbc/internal/guard"
)

// IsolationLevel mirrors the teacher's string-keyed isolation level
// constants (driver/connection.go), generalized to the four ODBC
// TXN_ISOLATION attribute values.
type IsolationLevel int

// Supported isolation levels.
const (
	IsolationReadCommitted IsolationLevel = iota
	IsolationRepeatableRead
	IsolationSerializable
	IsolationReadUncommitted
)

// AccessMode is the ODBC ACCESS_MODE connection attribute.
type AccessMode int

// Access modes.
const (
	AccessReadWrite AccessMode = iota
	AccessReadOnly
)

// CursorMode is the ODBC_CURSORS connection attribute.
type CursorMode int

// Cursor driver modes.
const (
	CursorsODBC CursorMode = iota
	CursorsDriver
)

// connAttrs holds every settable/gettable connection attribute of
// spec.md §4.9.
type connAttrs struct {
	Autocommit       bool
	Isolation        IsolationLevel
	AccessMode       AccessMode
	CurrentCatalog   string
	LoginTimeout     time.Duration
	ConnectTimeout   time.Duration
	QueryTimeout     time.Duration // per-statement default
	Cursors          CursorMode
	Trace            bool
	AsyncEnable      bool // SQLSTATE HYC00 if set to ON; stored only to reject consistently
	ConnectionDead   bool
}

func defaultConnAttrs() connAttrs {
	return connAttrs{
		Autocommit: true,
		Isolation:  IsolationReadCommitted,
		AccessMode: AccessReadWrite,
		Cursors:    CursorsODBC,
	}
}

// Connection is the L9 handle: parent environment, wire session,
// attributes, child statements and explicit descriptors, and the
// per-connection mutex every call serializes through. Grounded on
// driver/connector.go's attribute get/set pattern and
// driver/connection.go's session/Conn split.
type Connection struct {
	Handle

	env  *Environment
	lock guard.ConnLock

	mu          sync.Mutex // protects the fields below
	attrs       connAttrs
	session     Session
	inTx        bool
	stmts       map[*Statement]struct{}
	explDescs   map[*Descriptor]struct{}
	connSettings []string
}

func newConnection(env *Environment) *Connection {
	return &Connection{
		Handle:    newHandle(KindConnection),
		env:       env,
		attrs:     defaultConnAttrs(),
		stmts:     map[*Statement]struct{}{},
		explDescs: map[*Descriptor]struct{}{},
	}
}

// Connect attaches a wire session using the given client and resolved
// parameters, then runs ConnSettings (spec.md §4.9): "A failure during
// ConnSettings fails the connect."
func (c *Connection) Connect(ctx context.Context, client Client, params AttachParams) error {
	c.lock.Locked(func() {
		var err error
		c.mu.Lock()
		defer c.mu.Unlock()
		c.session, err = client.Attach(ctx, params)
		if err != nil {
			c.postConnectError(err)
			return
		}
		c.connSettings = params.ConnSettings
		c.attrs.CurrentCatalog = params.Database
	})
	if c.session == nil {
		return fmt.Errorf("odbc: connect failed")
	}
	for _, stmt := range c.connSettings {
		if _, err := c.execConnSettingsStmt(ctx, stmt); err != nil {
			c.postConnectError(err)
			return err
		}
	}
	return nil
}

func (c *Connection) execConnSettingsStmt(ctx context.Context, sql string) (ExecResult, error) {
	ws, err := c.session.Prepare(ctx, sql)
	if err != nil {
		return ExecResult{}, err
	}
	defer ws.Free()
	return ws.Execute(ctx, nil)
}

func (c *Connection) postConnectError(err error) {
	c.Post(newDiag("08001", 0, fmt.Sprintf("connection could not be established: %v", err)))
}

// Disconnect closes the wire session. It does not close statements: while
// any statement of the connection is still allocated it fails with HY010
// and leaves the session open, per spec.md §3's lifecycle contract:
// "Freeing a connection requires all statements closed first."
func (c *Connection) Disconnect() error {
	c.mu.Lock()
	stmts := make([]*Statement, 0, len(c.stmts))
	for s := range c.stmts {
		stmts = append(stmts, s)
	}
	c.mu.Unlock()
	if len(stmts) > 0 {
		return fmt.Errorf("odbc: HY010: function sequence error: %d statements still open", len(stmts))
	}

	var err error
	c.lock.Locked(func() {
		c.mu.Lock()
		session := c.session
		c.mu.Unlock()
		if session != nil {
			err = session.Close(context.Background())
		}
	})
	c.env.FreeConnection(c)
	return err
}

// AllocStatement creates a child statement. Per spec.md §3, creation
// fails if the connection is not connected.
func (c *Connection) AllocStatement() (*Statement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, fmt.Errorf("odbc: connection not established")
	}
	s := newStatement(c)
	c.stmts[s] = struct{}{}
	return s, nil
}

// FreeStatement removes s from the connection's open-statement set,
// called once the statement has released its own resources.
func (c *Connection) FreeStatement(s *Statement) {
	c.mu.Lock()
	delete(c.stmts, s)
	c.mu.Unlock()
}

// AllocExplicitDescriptor creates a connection-scoped explicit
// descriptor, shareable across this connection's statements only.
func (c *Connection) AllocExplicitDescriptor() *Descriptor {
	d := newDescriptor(true, c)
	c.mu.Lock()
	c.explDescs[d] = struct{}{}
	c.mu.Unlock()
	return d
}

// FreeExplicitDescriptor removes d from the connection's explicit set.
// Valid only when no statement references it (spec.md §3).
func (c *Connection) FreeExplicitDescriptor(d *Descriptor) error {
	if d.Refs() > 0 {
		return fmt.Errorf("odbc: descriptor still referenced by %d statement(s)", d.Refs())
	}
	c.mu.Lock()
	delete(c.explDescs, d)
	c.mu.Unlock()
	return nil
}

// Attrs returns a copy of the connection's current attributes.
func (c *Connection) Attrs() connAttrs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attrs
}

// SetAutocommit sets the AUTOCOMMIT attribute.
func (c *Connection) SetAutocommit(on bool) {
	c.mu.Lock()
	c.attrs.Autocommit = on
	c.mu.Unlock()
}

// SetIsolation sets the TXN_ISOLATION attribute.
func (c *Connection) SetIsolation(l IsolationLevel) {
	c.mu.Lock()
	c.attrs.Isolation = l
	c.mu.Unlock()
}

// SetAsyncEnable rejects any value other than off, per spec.md §4.9:
// "ASYNC_ENABLE (rejects ON with HYC00)".
func (c *Connection) SetAsyncEnable(on bool) error {
	if on {
		return fmt.Errorf("odbc: HYC00: asynchronous execution is not supported")
	}
	c.mu.Lock()
	c.attrs.AsyncEnable = false
	c.mu.Unlock()
	return nil
}

// IsDead reports the CONNECTION_DEAD read-only attribute.
func (c *Connection) IsDead() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attrs.ConnectionDead
}

// markDead sets CONNECTION_DEAD, per spec.md §4.9: "any transport-level
// error sets CONNECTION_DEAD = TRUE; subsequent API calls short-circuit
// to 08S01 without retry."
func (c *Connection) markDead() {
	c.mu.Lock()
	c.attrs.ConnectionDead = true
	c.mu.Unlock()
}

// ResetConnection implements RESET_CONNECTION=YES (spec.md §4.9): rolls
// back any pending transaction, closes every cursor, restores every
// connection attribute and every child statement's attributes to
// defaults, and clears all diagnostics. The wire session itself is
// kept alive.
func (c *Connection) ResetConnection(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	inTx := c.inTx
	stmts := make([]*Statement, 0, len(c.stmts))
	for s := range c.stmts {
		stmts = append(stmts, s)
	}
	c.mu.Unlock()

	if inTx && session != nil {
		if err := session.Rollback(ctx); err != nil {
			return err
		}
	}
	for _, s := range stmts {
		if err := s.CloseCursor(); err != nil {
			return err
		}
		s.resetAttrs()
	}

	c.mu.Lock()
	c.attrs = defaultConnAttrs()
	c.inTx = false
	c.mu.Unlock()
	c.ClearDiagnostics()
	return nil
}

// Commit/Rollback implement EndTran for this connection.
func (c *Connection) Commit(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.inTx = false
	c.mu.Unlock()
	if session == nil {
		return fmt.Errorf("odbc: 08003: connection not open")
	}
	return session.Commit(ctx)
}

func (c *Connection) Rollback(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.inTx = false
	c.mu.Unlock()
	if session == nil {
		return fmt.Errorf("odbc: 08003: connection not open")
	}
	return session.Rollback(ctx)
}
