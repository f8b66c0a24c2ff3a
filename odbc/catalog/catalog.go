// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package catalog builds the server-side queries behind the ODBC catalog
// functions (SQLTables, SQLColumns, SQLStatistics, ...). spec.md §6 treats
// these templates as an external collaborator. The Columns variables below
// hold the column count, column order and names ODBC prescribes for each
// result set. TablesQuery, PrimaryKeysQuery, TablePrivilegesQuery and
// ColumnPrivilegesQuery select exactly their layout's columns, in layout
// order. ColumnsQuery, ForeignKeysQuery, StatisticsQuery,
// SpecialColumnsQuery, ProceduresQuery and ProcedureColumnsQuery select
// only some of their layout's columns (10 of 18, 13 of 14, 9 of 13, 4 of
// 8, 5 of 8 and 9 of 19; ColumnsQuery not in layout order), and neither
// this package nor the odbc entry points that run them pad or reorder
// their rows to the full layout. Grounded on the SQLTables/SQLColumns shim in
// other_examples' tinySQL ODBC driver (same "map a catalog query onto the
// standard column layout" shape), generalized here from a single in-memory
// catalog to parameterized ANSI information_schema queries any SQL-92
// backend understands, since the wire client is an abstraction over an
// arbitrary server rather than one fixed product.
package catalog

import (
	"fmt"
	"strings"
)

// Columns is the fixed ODBC result-column layout for one catalog function,
// in the order callers must see them in.
type Columns []string

// Tables columns (5), per spec.md §6.
var Tables = Columns{"TABLE_CAT", "TABLE_SCHEM", "TABLE_NAME", "TABLE_TYPE", "REMARKS"}

// Columns columns (18), per spec.md §6.
var ColumnsCols = Columns{
	"TABLE_CAT", "TABLE_SCHEM", "TABLE_NAME", "COLUMN_NAME", "DATA_TYPE",
	"TYPE_NAME", "COLUMN_SIZE", "BUFFER_LENGTH", "DECIMAL_DIGITS", "NUM_PREC_RADIX",
	"NULLABLE", "REMARKS", "COLUMN_DEF", "SQL_DATA_TYPE", "SQL_DATETIME_SUB",
	"CHAR_OCTET_LENGTH", "ORDINAL_POSITION", "IS_NULLABLE",
}

// Statistics columns (13), per spec.md §6.
var Statistics = Columns{
	"TABLE_CAT", "TABLE_SCHEM", "TABLE_NAME", "NON_UNIQUE", "INDEX_QUALIFIER",
	"INDEX_NAME", "TYPE", "ORDINAL_POSITION", "COLUMN_NAME", "ASC_OR_DESC",
	"CARDINALITY", "PAGES", "FILTER_CONDITION",
}

// PrimaryKeys columns (6).
var PrimaryKeys = Columns{"TABLE_CAT", "TABLE_SCHEM", "TABLE_NAME", "COLUMN_NAME", "KEY_SEQ", "PK_NAME"}

// ForeignKeys columns (14).
var ForeignKeys = Columns{
	"PKTABLE_CAT", "PKTABLE_SCHEM", "PKTABLE_NAME", "PKCOLUMN_NAME",
	"FKTABLE_CAT", "FKTABLE_SCHEM", "FKTABLE_NAME", "FKCOLUMN_NAME",
	"KEY_SEQ", "UPDATE_RULE", "DELETE_RULE", "FK_NAME", "PK_NAME", "DEFERRABILITY",
}

// SpecialColumns columns (8).
var SpecialColumns = Columns{
	"SCOPE", "COLUMN_NAME", "DATA_TYPE", "TYPE_NAME",
	"COLUMN_SIZE", "BUFFER_LENGTH", "DECIMAL_DIGITS", "PSEUDO_COLUMN",
}

// Procedures columns (8).
var Procedures = Columns{
	"PROCEDURE_CAT", "PROCEDURE_SCHEM", "PROCEDURE_NAME",
	"NUM_INPUT_PARAMS", "NUM_OUTPUT_PARAMS", "NUM_RESULT_SETS", "REMARKS", "PROCEDURE_TYPE",
}

// ProcedureColumns columns (19).
var ProcedureColumns = Columns{
	"PROCEDURE_CAT", "PROCEDURE_SCHEM", "PROCEDURE_NAME", "COLUMN_NAME", "COLUMN_TYPE",
	"DATA_TYPE", "TYPE_NAME", "COLUMN_SIZE", "BUFFER_LENGTH", "DECIMAL_DIGITS",
	"NUM_PREC_RADIX", "NULLABLE", "REMARKS", "COLUMN_DEF", "SQL_DATA_TYPE",
	"SQL_DATETIME_SUB", "CHAR_OCTET_LENGTH", "ORDINAL_POSITION", "IS_NULLABLE",
}

// TablePrivileges columns (7).
var TablePrivileges = Columns{
	"TABLE_CAT", "TABLE_SCHEM", "TABLE_NAME", "GRANTOR", "GRANTEE", "PRIVILEGE", "IS_GRANTABLE",
}

// ColumnPrivileges columns (8).
var ColumnPrivileges = Columns{
	"TABLE_CAT", "TABLE_SCHEM", "TABLE_NAME", "COLUMN_NAME", "GRANTOR", "GRANTEE", "PRIVILEGE", "IS_GRANTABLE",
}

// Pattern is a catalog search pattern triple (catalog/schema/name), each an
// empty string meaning "unrestricted" and otherwise used as a SQL LIKE
// pattern, the ODBC convention for the *Name arguments of every catalog
// function.
type Pattern struct {
	Catalog string
	Schema  string
	Name    string
}

func likeClause(column, pattern string) string {
	if pattern == "" {
		return ""
	}
	escaped := strings.ReplaceAll(pattern, "'", "''")
	return fmt.Sprintf(" AND %s LIKE '%s'", column, escaped)
}

func whereClause(clauses ...string) string {
	joined := strings.Join(clauses, "")
	if joined == "" {
		return ""
	}
	return " WHERE 1=1" + joined
}

// TablesQuery builds the SQLTables template: table/view names visible to
// the session, restricted to the given catalog/schema/table/type patterns.
func TablesQuery(p Pattern, tableTypes []string) string {
	where := whereClause(
		likeClause("table_catalog", p.Catalog),
		likeClause("table_schema", p.Schema),
		likeClause("table_name", p.Name),
	)
	if len(tableTypes) > 0 {
		quoted := make([]string, len(tableTypes))
		for i, t := range tableTypes {
			quoted[i] = "'" + strings.ReplaceAll(t, "'", "''") + "'"
		}
		if where == "" {
			where = " WHERE 1=1"
		}
		where += fmt.Sprintf(" AND table_type IN (%s)", strings.Join(quoted, ","))
	}
	return "SELECT table_catalog AS TABLE_CAT, table_schema AS TABLE_SCHEM, " +
		"table_name AS TABLE_NAME, table_type AS TABLE_TYPE, '' AS REMARKS " +
		"FROM information_schema.tables" + where +
		" ORDER BY table_type, table_schema, table_name"
}

// ColumnsQuery builds the SQLColumns template.
func ColumnsQuery(p Pattern, columnPattern string) string {
	where := whereClause(
		likeClause("table_catalog", p.Catalog),
		likeClause("table_schema", p.Schema),
		likeClause("table_name", p.Name),
		likeClause("column_name", columnPattern),
	)
	return "SELECT table_catalog AS TABLE_CAT, table_schema AS TABLE_SCHEM, " +
		"table_name AS TABLE_NAME, column_name AS COLUMN_NAME, data_type AS TYPE_NAME, " +
		"character_maximum_length AS COLUMN_SIZE, numeric_precision_radix AS NUM_PREC_RADIX, " +
		"is_nullable AS IS_NULLABLE, column_default AS COLUMN_DEF, ordinal_position AS ORDINAL_POSITION " +
		"FROM information_schema.columns" + where +
		" ORDER BY table_schema, table_name, ordinal_position"
}

// PrimaryKeysQuery builds the SQLPrimaryKeys template.
func PrimaryKeysQuery(p Pattern) string {
	where := whereClause(
		likeClause("tc.table_catalog", p.Catalog),
		likeClause("tc.table_schema", p.Schema),
		likeClause("tc.table_name", p.Name),
	)
	return "SELECT tc.table_catalog AS TABLE_CAT, tc.table_schema AS TABLE_SCHEM, " +
		"tc.table_name AS TABLE_NAME, kcu.column_name AS COLUMN_NAME, " +
		"kcu.ordinal_position AS KEY_SEQ, tc.constraint_name AS PK_NAME " +
		"FROM information_schema.table_constraints tc " +
		"JOIN information_schema.key_column_usage kcu ON kcu.constraint_name = tc.constraint_name " +
		"AND kcu.table_schema = tc.table_schema AND kcu.table_name = tc.table_name " +
		"WHERE tc.constraint_type = 'PRIMARY KEY'" + strings.TrimPrefix(where, " WHERE 1=1") +
		" ORDER BY kcu.ordinal_position"
}

// ForeignKeysQuery builds the SQLForeignKeys template: foreign keys whose
// referencing ("FK") or referenced ("PK") table matches the given pattern.
func ForeignKeysQuery(pk, fk Pattern) string {
	where := whereClause(
		likeClause("pktc.table_catalog", pk.Catalog),
		likeClause("pktc.table_schema", pk.Schema),
		likeClause("pktc.table_name", pk.Name),
		likeClause("fktc.table_catalog", fk.Catalog),
		likeClause("fktc.table_schema", fk.Schema),
		likeClause("fktc.table_name", fk.Name),
	)
	return "SELECT pktc.table_catalog AS PKTABLE_CAT, pktc.table_schema AS PKTABLE_SCHEM, " +
		"pktc.table_name AS PKTABLE_NAME, pkcu.column_name AS PKCOLUMN_NAME, " +
		"fktc.table_catalog AS FKTABLE_CAT, fktc.table_schema AS FKTABLE_SCHEM, " +
		"fktc.table_name AS FKTABLE_NAME, fkcu.column_name AS FKCOLUMN_NAME, " +
		"fkcu.ordinal_position AS KEY_SEQ, rc.update_rule AS UPDATE_RULE, " +
		"rc.delete_rule AS DELETE_RULE, rc.constraint_name AS FK_NAME, " +
		"pktc.constraint_name AS PK_NAME " +
		"FROM information_schema.referential_constraints rc " +
		"JOIN information_schema.table_constraints fktc ON fktc.constraint_name = rc.constraint_name " +
		"JOIN information_schema.table_constraints pktc ON pktc.constraint_name = rc.unique_constraint_name " +
		"JOIN information_schema.key_column_usage fkcu ON fkcu.constraint_name = fktc.constraint_name " +
		"JOIN information_schema.key_column_usage pkcu ON pkcu.constraint_name = pktc.constraint_name " +
		"AND pkcu.ordinal_position = fkcu.ordinal_position" + strings.TrimPrefix(where, " WHERE 1=1") +
		" ORDER BY fkcu.ordinal_position"
}

// StatisticsQuery builds the SQLStatistics template (index/statistics info).
func StatisticsQuery(p Pattern, uniqueOnly bool) string {
	where := whereClause(
		likeClause("tc.table_catalog", p.Catalog),
		likeClause("tc.table_schema", p.Schema),
		likeClause("tc.table_name", p.Name),
	)
	if uniqueOnly {
		where += " AND tc.constraint_type = 'UNIQUE'"
	}
	return "SELECT tc.table_catalog AS TABLE_CAT, tc.table_schema AS TABLE_SCHEM, " +
		"tc.table_name AS TABLE_NAME, " +
		"CASE WHEN tc.constraint_type = 'UNIQUE' THEN 0 ELSE 1 END AS NON_UNIQUE, " +
		"tc.table_catalog AS INDEX_QUALIFIER, tc.constraint_name AS INDEX_NAME, " +
		"kcu.ordinal_position AS ORDINAL_POSITION, kcu.column_name AS COLUMN_NAME, 'A' AS ASC_OR_DESC " +
		"FROM information_schema.table_constraints tc " +
		"JOIN information_schema.key_column_usage kcu ON kcu.constraint_name = tc.constraint_name " +
		where +
		" ORDER BY tc.constraint_name, kcu.ordinal_position"
}

// SpecialColumnsQuery builds the SQLSpecialColumns template: the row
// identifier columns (surfaced here as the table's primary key columns).
func SpecialColumnsQuery(p Pattern) string {
	where := whereClause(
		likeClause("tc.table_catalog", p.Catalog),
		likeClause("tc.table_schema", p.Schema),
		likeClause("tc.table_name", p.Name),
	)
	return "SELECT kcu.column_name AS COLUMN_NAME, c.data_type AS TYPE_NAME, " +
		"c.character_maximum_length AS COLUMN_SIZE, c.numeric_scale AS DECIMAL_DIGITS " +
		"FROM information_schema.table_constraints tc " +
		"JOIN information_schema.key_column_usage kcu ON kcu.constraint_name = tc.constraint_name " +
		"JOIN information_schema.columns c ON c.table_schema = kcu.table_schema " +
		"AND c.table_name = kcu.table_name AND c.column_name = kcu.column_name " +
		"WHERE tc.constraint_type = 'PRIMARY KEY'" + strings.TrimPrefix(where, " WHERE 1=1") +
		" ORDER BY kcu.ordinal_position"
}

// ProceduresQuery builds the SQLProcedures template.
func ProceduresQuery(p Pattern) string {
	where := whereClause(
		likeClause("routine_catalog", p.Catalog),
		likeClause("routine_schema", p.Schema),
		likeClause("routine_name", p.Name),
	)
	return "SELECT routine_catalog AS PROCEDURE_CAT, routine_schema AS PROCEDURE_SCHEM, " +
		"routine_name AS PROCEDURE_NAME, '' AS REMARKS, " +
		"CASE WHEN routine_type = 'FUNCTION' THEN 2 ELSE 1 END AS PROCEDURE_TYPE " +
		"FROM information_schema.routines" + where +
		" ORDER BY routine_schema, routine_name"
}

// ProcedureColumnsQuery builds the SQLProcedureColumns template.
func ProcedureColumnsQuery(p Pattern, columnPattern string) string {
	where := whereClause(
		likeClause("specific_catalog", p.Catalog),
		likeClause("specific_schema", p.Schema),
		likeClause("specific_name", p.Name),
		likeClause("parameter_name", columnPattern),
	)
	return "SELECT specific_catalog AS PROCEDURE_CAT, specific_schema AS PROCEDURE_SCHEM, " +
		"specific_name AS PROCEDURE_NAME, parameter_name AS COLUMN_NAME, " +
		"parameter_mode AS COLUMN_TYPE, data_type AS TYPE_NAME, " +
		"character_maximum_length AS COLUMN_SIZE, numeric_precision_radix AS NUM_PREC_RADIX, " +
		"ordinal_position AS ORDINAL_POSITION " +
		"FROM information_schema.parameters" + where +
		" ORDER BY specific_schema, specific_name, ordinal_position"
}

// TablePrivilegesQuery builds the SQLTablePrivileges template.
func TablePrivilegesQuery(p Pattern) string {
	where := whereClause(
		likeClause("table_catalog", p.Catalog),
		likeClause("table_schema", p.Schema),
		likeClause("table_name", p.Name),
	)
	return "SELECT table_catalog AS TABLE_CAT, table_schema AS TABLE_SCHEM, " +
		"table_name AS TABLE_NAME, grantor AS GRANTOR, grantee AS GRANTEE, " +
		"privilege_type AS PRIVILEGE, is_grantable AS IS_GRANTABLE " +
		"FROM information_schema.table_privileges" + where +
		" ORDER BY table_schema, table_name, privilege_type"
}

// ColumnPrivilegesQuery builds the SQLColumnPrivileges template.
func ColumnPrivilegesQuery(p Pattern, columnPattern string) string {
	where := whereClause(
		likeClause("table_catalog", p.Catalog),
		likeClause("table_schema", p.Schema),
		likeClause("table_name", p.Name),
		likeClause("column_name", columnPattern),
	)
	return "SELECT table_catalog AS TABLE_CAT, table_schema AS TABLE_SCHEM, " +
		"table_name AS TABLE_NAME, column_name AS COLUMN_NAME, grantor AS GRANTOR, " +
		"grantee AS GRANTEE, privilege_type AS PRIVILEGE, is_grantable AS IS_GRANTABLE " +
		"FROM information_schema.column_privileges" + where +
		" ORDER BY table_schema, table_name, column_name, privilege_type"
}
