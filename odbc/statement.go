// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import (
	"context"
	"fmt"
	"time"

	"github.com/fbclient/godbc/odbc/internal/types"
)

// State is one of the seven statement states of spec.md §4.8.
type State int

// Statement states.
const (
	StateAllocated State = iota
	StatePrepared
	StateExecuted
	StateCursorOpen
	StateNeedData
	StateNeedParam
	StateDone
)

func (s State) String() string {
	names := [...]string{"ALLOCATED", "PREPARED", "EXECUTED", "CURSOR_OPEN", "NEED_DATA", "NEED_PARAM", "DONE"}
	if int(s) < 0 || int(s) >= len(names) {
		return "UNKNOWN"
	}
	return names[s]
}

// stmtAttrs holds the per-statement settable attributes that
// RESET_CONNECTION restores to defaults, per spec.md §4.9.
type stmtAttrs struct {
	QueryTimeout time.Duration
	RowArraySize int64
	ParamsetSize int64
	CursorType   CursorType
}

// CursorType is the scrollable-cursor mode named in spec.md §4.7.
type CursorType int

// Supported cursor types. KEYSET and DYNAMIC are not supported and
// advertise HYC00 if requested (spec.md §4.7).
const (
	CursorForwardOnly CursorType = iota
	CursorStatic
)

// Statement is the L8 handle: state machine, prepared metadata, the
// four descriptor slots, and cursor/timeout/savepoint bookkeeping.
// Grounded on the implicit state transitions spread across
// driver/stmt.go and driver/connection.go, made explicit here as a
// typed state enum with a transition table.
type Statement struct {
	Handle

	conn  *Connection
	state State

	sqlText  string
	wireStmt WireStatement

	slots      [4]*Descriptor // indexed by DescSlot
	implicit   [4]*Descriptor // the statement's own implicit descriptors, always alive

	attrs stmtAttrs

	cursorName   string
	savepointSeq int

	cursor       Cursor
	rowsFetched  int64
	daeQueue     []int // remaining DAE parameter ordinals to satisfy, in IPD order
	daeCur       int   // index into daeQueue currently being streamed
	daeBuf       []byte
	pending      *pendingExecute

	fetch   fetchState      // L7 result pipeline state, see result.go
	matRows [][]ParamValue  // STATIC cursor: fully materialized on first fetch
	matPos  int             // STATIC cursor: 0-based logical cursor position, -1 before first row

	cancelled bool
	timer     *time.Timer
}

func newStatement(conn *Connection) *Statement {
	s := &Statement{
		Handle: newHandle(KindStatement),
		conn:   conn,
		state:  StateAllocated,
		attrs:  stmtAttrs{ParamsetSize: 1, RowArraySize: 1},
		matPos: -1,
	}
	for i := range s.implicit {
		d := newDescriptor(false, conn)
		s.implicit[i] = d
		s.slots[i] = d
	}
	return s
}

// CursorName returns the statement's cursor name, auto-generating one
// (driver-defined, duplicates permitted — see DESIGN.md's Open Question
// decision) the first time it is requested without one having been set.
func (s *Statement) CursorName() string {
	if s.cursorName == "" {
		s.cursorName = fmt.Sprintf("CUR_%p", s)
	}
	return s.cursorName
}

// SetCursorName sets the statement's cursor name. Per the Open Question
// decision recorded in DESIGN.md, duplicate names across statements on
// the same connection are permitted rather than raising 3C000.
func (s *Statement) SetCursorName(name string) error {
	if name == "" {
		return fmt.Errorf("odbc: HY090: invalid string or buffer length")
	}
	s.cursorName = name
	return nil
}

// Descriptor returns the descriptor currently assigned to slot.
func (s *Statement) Descriptor(slot DescSlot) *Descriptor { return s.slots[slot] }

// SetDescriptor assigns an explicit descriptor to an ARD/APD slot, or
// restores the implicit descriptor when explicit is nil. Per spec.md
// §4.4: "The IRD and IPD are always implicit; only ARD and APD may be
// overridden", and "Setting a slot to 'null descriptor' restores the
// implicit."
func (s *Statement) SetDescriptor(slot DescSlot, explicit *Descriptor) error {
	if slot == SlotImpRow || slot == SlotImpParam {
		return fmt.Errorf("odbc: HY017: IRD/IPD cannot be reassigned")
	}
	if old := s.slots[slot]; old != s.implicit[slot] {
		old.Detach()
	}
	if explicit == nil {
		s.slots[slot] = s.implicit[slot]
		return nil
	}
	if explicit.conn != s.conn {
		return fmt.Errorf("odbc: HY024: descriptor belongs to a different connection")
	}
	explicit.Attach()
	s.slots[slot] = explicit
	return nil
}

// State reports the statement's current state.
func (s *Statement) State() State { return s.state }

// transitionTable is the explicit {from state -> {event -> allowed next
// states}} map of spec.md §4.8. Events whose outcome depends on whether
// the statement is cursor-producing (Prepare+Execute/ExecDirect, and the
// NEED_DATA-to-EXECUTED-or-CURSOR_OPEN step) list both legal targets;
// the caller resolves which one applies via hasCursor() before calling
// transition, and transition only rejects targets outside this set.
var transitionTable = map[State]map[string][]State{
	StateAllocated:  {"Prepare": {StatePrepared}, "ExecDirect": {StateExecuted, StateCursorOpen}},
	StatePrepared:   {"Execute": {StateExecuted, StateCursorOpen}, "ExecuteDAE": {StateNeedData}},
	StateExecuted:   {"CloseCursor": {StateAllocated}},
	StateCursorOpen: {"Fetch": {StateCursorOpen}, "FetchScroll": {StateCursorOpen}, "GetData": {StateCursorOpen}, "FetchNoData": {StateDone}, "CloseCursor": {StatePrepared}},
	StateNeedData:   {"PutData": {StateNeedData}, "ParamDataLast": {StateExecuted, StateCursorOpen}, "Cancel": {StatePrepared}},
	StateDone:       {"CloseCursor": {StatePrepared}},
}

// transition validates and applies a state change, raising HY010 (per
// spec.md §4.8: "omitted transitions are illegal and raise HY010") for
// anything not in transitionTable.
func (s *Statement) transition(event string, to State) error {
	targets, ok := transitionTable[s.state][event]
	if !ok {
		return fmt.Errorf("odbc: HY010: function sequence error (%s in state %s)", event, s.state)
	}
	for _, t := range targets {
		if t == to {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("odbc: HY010: invalid target state %s for event %s", to, event)
}

// nextExecState resolves whether an Execute/ExecDirect/ParamDataLast
// event should land on EXECUTED (DML) or CURSOR_OPEN (SELECT-shaped),
// based on the prepared statement's result column count.
func (s *Statement) nextExecState() State {
	if s.hasCursor() {
		return StateCursorOpen
	}
	return StateExecuted
}

// Prepare parses sql via the wire client and populates IPD/IRD from its
// reported metadata, per spec.md §4.8's ALLOCATED -> PREPARED transition.
func (s *Statement) Prepare(ctx context.Context, sql string) error {
	if err := s.transition("Prepare", StatePrepared); err != nil {
		return err
	}
	conn := s.conn
	conn.mu.Lock()
	session := conn.session
	conn.mu.Unlock()
	if session == nil {
		return fmt.Errorf("odbc: 08003: connection not open")
	}
	ws, err := session.Prepare(ctx, sql)
	if err != nil {
		s.state = StateAllocated
		return err
	}
	s.sqlText = sql
	s.wireStmt = ws
	s.populateMetadata(ws)
	return nil
}

func (s *Statement) populateMetadata(ws WireStatement) {
	ipd := s.implicit[SlotImpParam]
	ipd.SetCount(0)
	for i, pm := range ws.InputMetadata() {
		rec, _ := ipd.Record(i + 1)
		rec.setConciseType(types.SQLType(pm.SQLType))
		rec.Name = pm.Name
		rec.Precision = pm.Precision
		rec.Scale = pm.Scale
		rec.Nullable = pm.Nullable
		rec.ParameterType = pm.IO
	}
	ird := s.implicit[SlotImpRow]
	ird.SetCount(0)
	for i, cm := range ws.OutputMetadata() {
		rec, _ := ird.Record(i + 1)
		rec.setConciseType(types.SQLType(cm.SQLType))
		rec.Name = cm.Name
		rec.Precision = cm.Precision
		rec.Scale = cm.Scale
		rec.Nullable = cm.Nullable
		rec.DisplaySize = cm.DisplaySize
		rec.BaseColumnName = cm.BaseColumn
		rec.BaseTableName = cm.BaseTable
		rec.CatalogName = cm.Catalog
		rec.SchemaName = cm.Schema
		rec.TableName = cm.Table
	}
}

// NumResultCols reports the prepared statement's result column count.
func (s *Statement) NumResultCols() int { return s.implicit[SlotImpRow].Count() }

// ParameterCount reports the prepared statement's parameter count.
func (s *Statement) ParameterCount() int { return s.implicit[SlotImpParam].Count() }

// hasCursor reports whether the prepared/executed statement produces a
// result set (SELECT-shaped) rather than a plain row count (DML-shaped).
func (s *Statement) hasCursor() bool { return s.NumResultCols() > 0 }

// BoundParamRow is one resolved parameter value for a single execute
// row, after the parameter engine (params.go) has applied
// BindType/BindOffsetPtr and skipped SQL_PARAM_IGNORE rows.
type BoundParamRow = ParamValue

// pendingExecute holds everything needed to finish an execute once
// every data-at-execution parameter has been streamed in.
type pendingExecute struct {
	ctx  context.Context
	row  []BoundParamRow
}

// Execute runs the prepared statement using row, the parameter engine's
// already-resolved bindings for a single execute (or, for a parameter
// array, the caller invokes Execute once per row). daeOrdinals lists the
// 1-based parameter ordinals that carry a data-at-execution indicator,
// in IPD order, per spec.md §4.6. A non-DAE execute lands on EXECUTED
// or CURSOR_OPEN; a DAE execute returns SQL_NEED_DATA and the statement
// moves to NEED_DATA, to be driven to completion via ParamData/PutData.
func (s *Statement) Execute(ctx context.Context, row []BoundParamRow, daeOrdinals []int) (ExecResult, error) {
	if len(daeOrdinals) > 0 {
		if err := s.transition("ExecuteDAE", StateNeedData); err != nil {
			return ExecResult{}, err
		}
		s.daeQueue = daeOrdinals
		s.daeCur = 0
		s.pending = &pendingExecute{ctx: ctx, row: row}
		return ExecResult{}, errNeedData
	}
	target := s.nextExecState()
	if err := s.transition("Execute", target); err != nil {
		return ExecResult{}, err
	}
	return s.doExecute(ctx, row)
}

// ExecDirect combines Prepare and Execute in one call, per spec.md
// §4.8's ALLOCATED -> EXECUTED/CURSOR_OPEN fused transition.
func (s *Statement) ExecDirect(ctx context.Context, sql string, row []BoundParamRow, daeOrdinals []int) (ExecResult, error) {
	conn := s.conn
	conn.mu.Lock()
	session := conn.session
	conn.mu.Unlock()
	if session == nil {
		return ExecResult{}, fmt.Errorf("odbc: 08003: connection not open")
	}
	ws, err := session.Prepare(ctx, sql)
	if err != nil {
		return ExecResult{}, err
	}
	s.sqlText = sql
	s.wireStmt = ws
	s.populateMetadata(ws)

	if len(daeOrdinals) > 0 {
		if err := s.transition("Prepare", StatePrepared); err != nil {
			return ExecResult{}, err
		}
		return s.Execute(ctx, row, daeOrdinals)
	}

	target := s.nextExecState()
	if err := s.transition("ExecDirect", target); err != nil {
		return ExecResult{}, err
	}
	return s.doExecute(ctx, row)
}

func (s *Statement) doExecute(ctx context.Context, row []BoundParamRow) (ExecResult, error) {
	if s.hasCursor() {
		cur, err := s.wireStmt.OpenCursor(ctx, row)
		if err != nil {
			s.state = StateAllocated
			return ExecResult{}, err
		}
		s.cursor = cur
		s.rowsFetched = 0
		s.matRows = nil
		s.matPos = -1
		s.fetch = fetchState{}
		return ExecResult{}, nil
	}
	res, err := s.wireStmt.Execute(ctx, row)
	if err != nil {
		s.state = StateAllocated
		return ExecResult{}, err
	}
	s.Header().RowCount = res.RowsAffected
	return res, nil
}

var errNeedData = fmt.Errorf("odbc: SQL_NEED_DATA")

// ParamData returns the next DAE parameter's ordinal for the caller to
// stream via PutData, or completes the execute once every DAE parameter
// has been satisfied, per spec.md §4.6 step 2.
func (s *Statement) ParamData() (paramOrdinal int, done bool, res ExecResult, err error) {
	if s.daeCur > 0 {
		// The previous ordinal's PutData calls are complete; hand its
		// accumulated buffer to the pending row before advancing.
		s.pending.row[s.daeQueue[s.daeCur-1]-1] = ParamValue{Bytes: s.daeBuf}
		s.daeBuf = nil
	}
	if s.daeCur >= len(s.daeQueue) {
		target := s.nextExecState()
		if err := s.transition("ParamDataLast", target); err != nil {
			return 0, false, ExecResult{}, err
		}
		res, err = s.doExecute(s.pending.ctx, s.pending.row)
		s.daeQueue, s.daeCur, s.pending = nil, 0, nil
		return 0, true, res, err
	}
	ordinal := s.daeQueue[s.daeCur]
	s.daeCur++
	return ordinal, false, ExecResult{}, nil
}

// PutData appends a chunk to the current DAE parameter's buffer, per
// spec.md §4.6 step 2: "the caller streams bytes via PutData(buf, len)
// (multiple calls concatenate)".
func (s *Statement) PutData(buf []byte) error {
	if s.state != StateNeedData {
		return fmt.Errorf("odbc: HY010: PutData outside NEED_DATA")
	}
	s.daeBuf = append(s.daeBuf, buf...)
	return nil
}

// CancelDAE aborts an in-progress data-at-execution sequence, per
// spec.md §4.8: "NEED_DATA -> Cancel -> PREPARED, bindings preserved."
func (s *Statement) CancelDAE() error {
	err := s.transition("Cancel", StatePrepared)
	if err == nil {
		s.daeQueue, s.daeCur, s.pending, s.daeBuf = nil, 0, nil, nil
	}
	return err
}

// nextSavepointName returns the unnamed savepoint identifier for the
// current execute, incrementing the ring per spec.md §4.8 "Per-statement
// savepoint ring".
func (s *Statement) nextSavepointName() string {
	s.savepointSeq++
	return fmt.Sprintf("sp_%d", s.savepointSeq)
}

// CloseCursor releases the open server cursor and returns the statement
// to PREPARED, per spec.md §4.8.
func (s *Statement) CloseCursor() error {
	if s.cursor == nil {
		if s.state == StateCursorOpen || s.state == StateDone {
			s.state = StatePrepared
		}
		return nil
	}
	err := s.cursor.Close(context.Background())
	s.cursor = nil
	s.state = StatePrepared
	return err
}

// resetAttrs restores per-statement attributes to defaults and unbinds
// all columns/parameters, per RESET_CONNECTION's contract (spec.md
// §4.9) and the statement-free contract (spec.md §3: "resets implicit
// ARD/APD Count to 0 but keeps the descriptor objects alive").
func (s *Statement) resetAttrs() {
	s.attrs = stmtAttrs{ParamsetSize: 1, RowArraySize: 1}
	s.implicit[SlotAppRow].SetCount(0)
	s.implicit[SlotAppParam].SetCount(0)
	s.ClearDiagnostics()
}

// Cancel aborts an in-flight call on this statement from another
// goroutine, per spec.md §4.3/§4.8: it does not take the connection
// lock so it can race with the blocked call.
func (s *Statement) Cancel() error {
	s.cancelled = true
	conn := s.conn
	conn.mu.Lock()
	session := conn.session
	conn.mu.Unlock()
	if session == nil {
		return nil
	}
	return session.CancelOperation()
}

// ArmQueryTimeout starts the one-shot timer of spec.md §4.8: "when it
// fires, the dispatcher invokes the wire client's abort primitive on
// the statement's current request."
func (s *Statement) ArmQueryTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	s.timer = time.AfterFunc(d, func() { _ = s.Cancel() })
}

// DisarmQueryTimeout stops a timer armed by ArmQueryTimeout, called once
// the execute completes within the deadline.
func (s *Statement) DisarmQueryTimeout() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Free releases the statement's open cursor, unbinds all
// columns/parameters, drops diagnostics, detaches any explicit
// descriptors, and removes the statement from its connection's set.
// Per spec.md §3's lifecycle contract for freeing a statement.
func (s *Statement) Free() error {
	err := s.CloseCursor()
	for slot := range s.slots {
		if s.slots[slot] != s.implicit[slot] {
			s.slots[slot].Detach()
			s.slots[slot] = s.implicit[slot]
		}
	}
	s.implicit[SlotAppRow].SetCount(0)
	s.implicit[SlotAppParam].SetCount(0)
	s.ClearDiagnostics()
	s.conn.FreeStatement(s)
	return err
}
