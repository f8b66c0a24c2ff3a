// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package clitrace is the SQL-call-level tracing facility the dispatcher
// (L10) uses to log every SQL… entry point it dispatches, analogous to
// the teacher's driver/sqltrace package (same On/SetOn/Trace/Tracef/
// Traceln surface and -flag-controlled default) but built on this
// repository's own internal/trace.Trace instead of duplicating its
// atomic-bool/log.Logger bookkeeping.
package clitrace

import (
	"flag"
	"fmt"

	"github.com/fbclient/godbc/odbc/internal/trace"
)

var tracer = trace.New("godbc")

func init() {
	flag.Var(trace.NewFlag(tracer), "godbc.sqlTrace", "enable godbc SQL call trace")
}

// On reports whether SQL call tracing is active.
func On() bool { return tracer.On() }

// SetOn enables or disables SQL call tracing.
func SetOn(on bool) { tracer.SetOn(on) }

// Trace logs v via the trace logger's Print method.
func Trace(v ...any) { tracer.Print(v...) }

// Tracef logs a formatted message via the trace logger's Printf method.
func Tracef(format string, v ...any) { tracer.Printf(format, v...) }

// Traceln logs v via the trace logger's Println method.
func Traceln(v ...any) { tracer.Println(v...) }

// Entry traces one dispatched entry point: its name, the handle kind it
// ran against, and the ReturnCode-shaped value it produced. Logged as a
// single line so a trace session reads as one row per SQL… call, the
// shape spec.md §4.10's dispatcher narrative describes ("write result
// codes, propagate diagnostics").
func Entry(name string, handleKind string, rc fmt.Stringer) {
	if !On() {
		return
	}
	Tracef("%s(%s) -> %s", name, handleKind, rc.String())
}
