// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import "context"

// Client is the wire-client capability set of spec.md §6: an abstracted
// collaborator the core drives but never implements. Loading the actual
// native client library (however it is packaged) is outside the core;
// the core depends only on this interface, exactly as Environment.
// LoadWireClient's loader callback returns one. Grounded on the
// teacher's own split between driver (the core) and its internal wire
// protocol package, generalized here into an explicit Go interface
// instead of the teacher's concrete session type.
type Client interface {
	// Dispatcher reports the wire protocol's own capability/version
	// info, used by GetInfo/GetFunctions.
	Dispatcher() Dispatcher
	// Status reports whether the underlying transport is still usable.
	Status() ClientStatus
	// Attach negotiates a new session (the ODBC "Connect"/"DriverConnect"
	// step) using the resolved connection parameters.
	Attach(ctx context.Context, params AttachParams) (Session, error)
}

// ClientStatus reports wire-client transport health.
type ClientStatus int

// Transport health states.
const (
	ClientOK ClientStatus = iota
	ClientDegraded
	ClientDown
)

// Dispatcher reports static wire-protocol capability info consumed by
// GetInfo/GetFunctions/GetTypeInfo.
type Dispatcher interface {
	ServerName() string
	ServerVersion() string
	SupportsFunction(name string) bool
}

// AttachParams carries the resolved connection-string keys of spec.md
// §6 ("Connection-string keys (recognized)") needed to attach a session.
type AttachParams struct {
	Driver      string
	DSN         string
	UID, PWD    string
	Database    string
	Role        string
	Charset     string
	Dialect     int
	ReadOnly    bool
	AutoQuoted  bool
	ClientPath  string
	ConnSettings []string

	// WriteResultAsDiag routes a non-cursor statement's result rows into
	// the diagnostic chain as informational records instead of discarding
	// them, per spec.md §6's WRITE_RESULT_AS_DIAG connection attribute.
	WriteResultAsDiag bool
}

// Session is a live wire-client connection, the collaborator behind
// Connection. One Session backs exactly one Connection; no sharing.
type Session interface {
	StartTransaction(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Prepare(ctx context.Context, sql string) (WireStatement, error)
	CancelOperation() error
	RegisterEventCallback(fn func(event string))
	Close(ctx context.Context) error
}

// WireStatement is a prepared statement on the wire-client side,
// collaborating with the L8 statement state machine.
type WireStatement interface {
	InputMetadata() []ParamMeta
	OutputMetadata() []ColumnMeta
	Plan() string
	Execute(ctx context.Context, params []ParamValue) (ExecResult, error)
	OpenCursor(ctx context.Context, params []ParamValue) (Cursor, error)
	Free() error
}

// ParamMeta describes one input/output parameter as reported by
// prepare, feeding IPD population.
type ParamMeta struct {
	Name      string
	SQLType   int // types.SQLType, kept as int to avoid an import cycle at this layer's boundary
	Precision uint8
	Scale     int8
	Nullable  bool
	IO        ParamIO
}

// ColumnMeta describes one result column as reported by prepare,
// feeding IRD population.
type ColumnMeta struct {
	Name          string
	SQLType       int
	Precision     uint8
	Scale         int8
	Nullable      bool
	DisplaySize   int64
	BaseColumn    string
	BaseTable     string
	Catalog       string
	Schema        string
	Table         string
}

// ParamValue is one bound/streamed parameter value handed to the wire
// client at execute time.
type ParamValue struct {
	Bytes  []byte
	IsNull bool
}

// ExecResult is what a non-cursor execute (DML) returns.
type ExecResult struct {
	RowsAffected int64
}

// WireError is the error shape a Client/Session/WireStatement/Cursor
// returns for a server-reported failure, carrying whichever native code
// the wire protocol gave it so errToDiag can resolve it through the L2
// mapper's server/legacy code tables (spec.md §4.2) instead of falling
// through to the generic HY000/S1000 state. A wire-client error that
// carries no recognizable code (a transport failure, say) can still
// return a plain error; it resolves through the mapper's default-state
// fallback exactly as before.
type WireError struct {
	ServerCode int32
	LegacyCode int32
	Message    string
}

func (e *WireError) Error() string { return e.Message }

// Cursor is an open server-side result cursor.
type Cursor interface {
	Fetch(ctx context.Context, n int) ([][]ParamValue, error)
	RowCount() int64
	Close(ctx context.Context) error
	BlobSegment(ctx context.Context, col int, offset int64, buf []byte) (n int, done bool, err error)
}
