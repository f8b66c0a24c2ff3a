// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package refclient is a minimal in-memory implementation of odbc.Client,
// useful for demos, benchmarks, and tests that want to drive the public
// SQL... entry points without a real server behind them. It accepts any
// statement text, tracks no schema, and reports every execute as having
// affected one row after an optional simulated round-trip
// latency — enough to exercise the full allocate/bind/execute pipeline's
// own overhead in isolation from network and server cost. Grounded on the
// odbc package's own fake_test.go test double, promoted here to an
// exported package for cmd/odbcbench (driver/drivertest served the same
// promoted-test-double role for the teacher's own cmd/bulkbench).
package refclient

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fbclient/godbc/odbc"
	"github.com/fbclient/godbc/odbc/internal/wireauth"
)

// attachRounds is a stand-in PBKDF2 round count for the simulated
// credential-proof step Attach performs; a real wire client would use a
// server-supplied salt/round count negotiated during the handshake.
const attachRounds = 4096

// Client is an in-memory odbc.Client. The zero value is not usable; use
// New.
type Client struct {
	latency time.Duration
}

// New returns a Client that sleeps for latency before completing each
// simulated round trip (Attach, Prepare, Execute, OpenCursor), standing in for network
// and server think time in a benchmark.
func New(latency time.Duration) *Client {
	return &Client{latency: latency}
}

func (c *Client) Dispatcher() odbc.Dispatcher         { return dispatcher{} }
func (c *Client) Status() odbc.ClientStatus           { return odbc.ClientOK }

func (c *Client) Attach(ctx context.Context, params odbc.AttachParams) (odbc.Session, error) {
	c.sleep(ctx)
	if params.PWD != "" {
		// Derive a client proof the way a real wire client's challenge/
		// response step would, instead of holding the plaintext password
		// any longer than the Attach call needs it for.
		if _, err := wireauth.DeriveCredential(params.PWD, []byte(params.UID), attachRounds); err != nil {
			return nil, err
		}
	}
	return &session{client: c}, nil
}

func (c *Client) sleep(ctx context.Context) {
	if c.latency <= 0 {
		return
	}
	select {
	case <-time.After(c.latency):
	case <-ctx.Done():
	}
}

type dispatcher struct{}

func (dispatcher) ServerName() string          { return "refclient" }
func (dispatcher) ServerVersion() string       { return "0.0" }
func (dispatcher) SupportsFunction(string) bool { return true }

type session struct {
	client *Client
}

func (s *session) StartTransaction(ctx context.Context) error { return nil }
func (s *session) Commit(ctx context.Context) error           { return nil }
func (s *session) Rollback(ctx context.Context) error          { return nil }
func (s *session) RegisterEventCallback(fn func(event string)) {}
func (s *session) CancelOperation() error                      { return nil }
func (s *session) Close(ctx context.Context) error             { return nil }

func (s *session) Prepare(ctx context.Context, sql string) (odbc.WireStatement, error) {
	s.client.sleep(ctx)
	return &statement{client: s.client, sql: sql}, nil
}

type statement struct {
	client      *Client
	sql         string
	rowsWritten int64
}

func (w *statement) InputMetadata() []odbc.ParamMeta   { return nil }
func (w *statement) OutputMetadata() []odbc.ColumnMeta { return nil }
func (w *statement) Plan() string                      { return w.sql }
func (w *statement) Free() error                       { return nil }

func (w *statement) Execute(ctx context.Context, params []odbc.ParamValue) (odbc.ExecResult, error) {
	w.client.sleep(ctx)
	atomic.AddInt64(&w.rowsWritten, 1)
	return odbc.ExecResult{RowsAffected: 1}, nil
}

func (w *statement) OpenCursor(ctx context.Context, params []odbc.ParamValue) (odbc.Cursor, error) {
	w.client.sleep(ctx)
	return &cursor{}, nil
}

type cursor struct{}

func (c *cursor) Fetch(ctx context.Context, n int) ([][]odbc.ParamValue, error) { return nil, nil }
func (c *cursor) RowCount() int64                                              { return 0 }
func (c *cursor) Close(ctx context.Context) error                              { return nil }
func (c *cursor) BlobSegment(ctx context.Context, col int, offset int64, buf []byte) (int, bool, error) {
	return 0, true, nil
}
