// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import "github.com/fbclient/godbc/odbc/internal/diag"

// newDiag builds a diagnostic record in the shape every handle method
// posts: a resolved SQLSTATE, the native wire-client code (0 if none),
// and message text. Row/column coordinates default to "unknown" and are
// overridden by callers that have them (the result pipeline, mainly).
func newDiag(state string, nativeCode int32, text string) *diag.Record {
	return &diag.Record{
		SqlState:     state,
		NativeCode:   nativeCode,
		MessageText:  text,
		RowNumber:    diag.RowNumberUnknown,
		ColumnNumber: diag.ColumnNumberUnknown,
	}
}
