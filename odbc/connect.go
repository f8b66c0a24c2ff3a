// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import "github.com/fbclient/godbc/odbc/internal/dsn"

// ResolveAttachParams parses an ODBC-style "KEY=value;KEY=value" connection
// string (spec.md §6) into the AttachParams Connection.Connect and the
// wire-client loader consume. This is the SQLDriverConnect/SQLConnect entry
// points' shared collaborator, kept outside dispatcher.go since it has no
// handle to validate or guard.
func ResolveAttachParams(connStr string) (AttachParams, error) {
	info, err := dsn.Parse(connStr)
	if err != nil {
		return AttachParams{}, err
	}
	return AttachParams{
		Driver:            info.Driver,
		DSN:               info.DSN,
		UID:               info.UID,
		PWD:               info.PWD,
		Database:          info.Database,
		Role:              info.Role,
		Charset:           info.Charset,
		Dialect:           info.Dialect,
		ReadOnly:          info.ReadOnly,
		AutoQuoted:        info.AutoQuoted,
		ClientPath:        info.ClientPath,
		ConnSettings:      info.ConnSettings,
		WriteResultAsDiag: info.WriteResultAsDiag,
	}, nil
}

// ResolveClientPath returns the wire-client library path a connection
// should load: the explicit CLIENT= override when given, otherwise the
// DRIVER= name used as the registry key for Environment.LoadWireClient.
func ResolveClientPath(p AttachParams) string {
	if p.ClientPath != "" {
		return p.ClientPath
	}
	return p.Driver
}
