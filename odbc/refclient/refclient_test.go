// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package refclient_test

import (
	"context"
	"testing"

	"github.com/fbclient/godbc/odbc"
	"github.com/fbclient/godbc/odbc/refclient"
)

func TestRoundTrip(t *testing.T) {
	env := odbc.NewEnvironment(odbc.VersionV3)
	client := refclient.New(0)

	conn, rc := odbc.SQLAllocConnect(env)
	if rc != odbc.RCSuccess {
		t.Fatalf("SQLAllocConnect: rc=%v", rc)
	}
	if rc := odbc.SQLConnect(context.Background(), conn, client, odbc.AttachParams{}); rc != odbc.RCSuccess {
		t.Fatalf("SQLConnect: rc=%v", rc)
	}

	stmt, rc := odbc.SQLAllocStmt(conn)
	if rc != odbc.RCSuccess {
		t.Fatalf("SQLAllocStmt: rc=%v", rc)
	}
	out := odbc.SQLExecDirect(context.Background(), stmt, "INSERT INTO T VALUES (1)")
	if out.RC != odbc.RCSuccess {
		t.Fatalf("SQLExecDirect: rc=%v", out.RC)
	}
	if out.Result.RowsAffected != 1 {
		t.Fatalf("RowsAffected = %d, want 1", out.Result.RowsAffected)
	}
}
