// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package trace implements a very simple tracing package: a *log.Logger
// whose output can be toggled between os.Stdout and io.Discard at
// runtime, optionally wired to a flag.Value so a -driver.trace-style flag
// can flip it at process startup. Generalized from the teacher's
// driver/internal/trace package (same On/SetOn/Flag shape), kept as a
// small reusable primitive the SQL-call-level clitrace package and the
// dispatcher build on instead of each rolling their own atomic bool.
package trace

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// A Trace represents a tracing object: a standard logger whose output
// toggles between discarded and os.Stdout.
type Trace struct {
	*log.Logger
}

// New returns a new Trace with output initially discarded.
func New(prefix ...string) *Trace {
	return &Trace{Logger: log.New(io.Discard, fmt.Sprintf("%s ", strings.Join(prefix, " ")), log.Ldate|log.Ltime|log.Lmicroseconds)}
}

// On reports whether tracing output is currently enabled.
func (t *Trace) On() bool { return t.Writer() != io.Discard }

// SetOn enables or disables tracing output.
func (t *Trace) SetOn(on bool) {
	if on {
		t.SetOutput(os.Stdout)
	} else {
		t.SetOutput(io.Discard)
	}
}

// Flag adapts a Trace to the flag.Value interface so a command can
// register e.g. flag.Var(trace.NewFlag(t), "godbc.trace", "...").
type Flag struct{ trace *Trace }

// NewFlag returns a Flag bound to t.
func NewFlag(t *Trace) *Flag { return &Flag{trace: t} }

func (f *Flag) String() string {
	if f.trace == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(f.trace.On())
}

// IsBoolFlag implements the flag.Value boolean-flag convention.
func (f *Flag) IsBoolFlag() bool { return true }

// Set implements flag.Value.
func (f *Flag) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.trace.SetOn(on)
	return nil
}
