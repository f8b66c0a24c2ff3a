// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import (
	"context"

	"github.com/fbclient/godbc/odbc/catalog"
	"github.com/fbclient/godbc/odbc/internal/types"
)

// The catalog functions (SQLTables, SQLColumns, ...) are, at the core's
// level, ordinary statement executions: a template from odbc/catalog
// builds a query over the information schema, ExecDirect runs it through
// the same L6/L7 parameter and result pipeline every other statement
// uses, and the caller then fetches rows exactly as from any other
// result set. Per spec.md §6 the templates themselves are an external
// collaborator; the core's contract is column layout, not query syntax,
// so these wrappers never special-case the rows they get back.

// SQLTables executes the Tables catalog template.
func SQLTables(ctx context.Context, stmt HSTMT, p catalog.Pattern, tableTypes []string) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.TablesQuery(p, tableTypes))
}

// SQLColumns executes the Columns catalog template.
func SQLColumns(ctx context.Context, stmt HSTMT, p catalog.Pattern, columnPattern string) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.ColumnsQuery(p, columnPattern))
}

// SQLPrimaryKeys executes the PrimaryKeys catalog template.
func SQLPrimaryKeys(ctx context.Context, stmt HSTMT, p catalog.Pattern) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.PrimaryKeysQuery(p))
}

// SQLForeignKeys executes the ForeignKeys catalog template. pk identifies
// the referenced (primary-key side) table pattern, fk the referencing
// (foreign-key side) table pattern; either may be left zero-valued to mean
// "unrestricted", per the ODBC convention of passing empty strings for the
// side not being searched on.
func SQLForeignKeys(ctx context.Context, stmt HSTMT, pk, fk catalog.Pattern) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.ForeignKeysQuery(pk, fk))
}

// SQLStatistics executes the Statistics catalog template.
func SQLStatistics(ctx context.Context, stmt HSTMT, p catalog.Pattern, uniqueOnly bool) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.StatisticsQuery(p, uniqueOnly))
}

// SQLSpecialColumns executes the SpecialColumns catalog template.
func SQLSpecialColumns(ctx context.Context, stmt HSTMT, p catalog.Pattern) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.SpecialColumnsQuery(p))
}

// SQLProcedures executes the Procedures catalog template.
func SQLProcedures(ctx context.Context, stmt HSTMT, p catalog.Pattern) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.ProceduresQuery(p))
}

// SQLProcedureColumns executes the ProcedureColumns catalog template.
func SQLProcedureColumns(ctx context.Context, stmt HSTMT, p catalog.Pattern, columnPattern string) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.ProcedureColumnsQuery(p, columnPattern))
}

// SQLTablePrivileges executes the TablePrivileges catalog template.
func SQLTablePrivileges(ctx context.Context, stmt HSTMT, p catalog.Pattern) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.TablePrivilegesQuery(p))
}

// SQLColumnPrivileges executes the ColumnPrivileges catalog template.
func SQLColumnPrivileges(ctx context.Context, stmt HSTMT, p catalog.Pattern, columnPattern string) ExecOutcome {
	if stmt == nil {
		return ExecOutcome{RC: RCInvalidHandle}
	}
	return SQLExecDirect(ctx, stmt, catalog.ColumnPrivilegesQuery(p, columnPattern))
}

// TypeInfoRow is one row of the SQLGetTypeInfo result set. It carries 16
// of the 19 standard columns; SQL_DATA_TYPE, SQL_DATETIME_SUB and
// INTERVAL_PRECISION are not represented. Unlike the other catalog
// functions, GetTypeInfo describes the closed
// SQLType enumeration of [[odbc/internal/types]] itself rather than
// server catalog contents, so it needs no SQL template and no wire round
// trip: it is answered directly out of the type system the core already
// owns.
type TypeInfoRow struct {
	TypeName        string
	DataType        types.SQLType
	ColumnSize      int
	LiteralPrefix   string
	LiteralSuffix   string
	CreateParams    string
	Nullable        bool
	CaseSensitive   bool
	Searchable      int
	Unsigned        bool
	FixedPrecScale  bool
	AutoUniqueValue bool
	LocalTypeName   string
	MinimumScale    int8
	MaximumScale    int8
	NumPrecRadix    int
}

var typeInfoTable = []TypeInfoRow{
	{TypeName: "CHAR", DataType: types.SQLChar, ColumnSize: 8000, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, CaseSensitive: true, Searchable: 3},
	{TypeName: "VARCHAR", DataType: types.SQLVarchar, ColumnSize: 8000, LiteralPrefix: "'", LiteralSuffix: "'", CreateParams: "length", Nullable: true, CaseSensitive: true, Searchable: 3},
	{TypeName: "LONGVARCHAR", DataType: types.SQLLongVarchar, ColumnSize: 2147483647, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, CaseSensitive: true, Searchable: 2},
	{TypeName: "WCHAR", DataType: types.SQLWChar, ColumnSize: 4000, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, CaseSensitive: true, Searchable: 3},
	{TypeName: "WVARCHAR", DataType: types.SQLWVarchar, ColumnSize: 4000, LiteralPrefix: "'", LiteralSuffix: "'", CreateParams: "length", Nullable: true, CaseSensitive: true, Searchable: 3},
	{TypeName: "WLONGVARCHAR", DataType: types.SQLWLongVarchar, ColumnSize: 1073741823, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, CaseSensitive: true, Searchable: 2},
	{TypeName: "SMALLINT", DataType: types.SQLSmallint, ColumnSize: 5, Nullable: true, Searchable: 2, NumPrecRadix: 10},
	{TypeName: "INTEGER", DataType: types.SQLInteger, ColumnSize: 10, Nullable: true, Searchable: 2, NumPrecRadix: 10},
	{TypeName: "BIGINT", DataType: types.SQLBigint, ColumnSize: 19, Nullable: true, Searchable: 2, NumPrecRadix: 10},
	{TypeName: "FLOAT", DataType: types.SQLFloat, ColumnSize: 15, Nullable: true, Searchable: 2, NumPrecRadix: 2},
	{TypeName: "REAL", DataType: types.SQLReal, ColumnSize: 7, Nullable: true, Searchable: 2, NumPrecRadix: 2},
	{TypeName: "DOUBLE", DataType: types.SQLDouble, ColumnSize: 15, Nullable: true, Searchable: 2, NumPrecRadix: 2},
	{TypeName: "NUMERIC", DataType: types.SQLNumeric, ColumnSize: 38, CreateParams: "precision,scale", Nullable: true, Searchable: 2, FixedPrecScale: true, MaximumScale: 38, NumPrecRadix: 10},
	{TypeName: "DECIMAL", DataType: types.SQLDecimal, ColumnSize: 38, CreateParams: "precision,scale", Nullable: true, Searchable: 2, FixedPrecScale: true, MaximumScale: 38, NumPrecRadix: 10},
	{TypeName: "DATE", DataType: types.SQLDate, ColumnSize: 10, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, Searchable: 2},
	{TypeName: "TIME", DataType: types.SQLTime, ColumnSize: 8, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, Searchable: 2},
	{TypeName: "TIMESTAMP", DataType: types.SQLTimestamp, ColumnSize: 26, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, Searchable: 2, MaximumScale: 9},
	{TypeName: "BOOLEAN", DataType: types.SQLBoolean, ColumnSize: 1, Nullable: true, Searchable: 2},
	{TypeName: "BINARY", DataType: types.SQLBinary, ColumnSize: 8000, LiteralPrefix: "0x", Nullable: true, Searchable: 2},
	{TypeName: "VARBINARY", DataType: types.SQLVarbinary, ColumnSize: 8000, LiteralPrefix: "0x", CreateParams: "length", Nullable: true, Searchable: 2},
	{TypeName: "LONGVARBINARY", DataType: types.SQLLongVarbinary, ColumnSize: 2147483647, LiteralPrefix: "0x", Nullable: true, Searchable: 2},
	{TypeName: "BLOB_TEXT", DataType: types.SQLBlobText, ColumnSize: 2147483647, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, Searchable: 2},
	{TypeName: "BLOB_BINARY", DataType: types.SQLBlobBinary, ColumnSize: 2147483647, LiteralPrefix: "0x", Nullable: true, Searchable: 2},
	{TypeName: "GUID", DataType: types.SQLGUID, ColumnSize: 36, LiteralPrefix: "'", LiteralSuffix: "'", Nullable: true, Searchable: 2},
}

// SQLGetTypeInfo reports the driver's supported SQL types. A nil dataType
// requests every type (the SQL_ALL_TYPES case); a non-nil one filters to
// that single concise type. Rows are returned in DATA_TYPE order, the
// order ODBC recommends for SQLGetTypeInfo result sets.
func SQLGetTypeInfo(dataType *types.SQLType) []TypeInfoRow {
	if dataType == nil {
		out := make([]TypeInfoRow, len(typeInfoTable))
		copy(out, typeInfoTable)
		return out
	}
	var out []TypeInfoRow
	for _, row := range typeInfoTable {
		if row.DataType == *dataType {
			out = append(out, row)
		}
	}
	return out
}
