// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package catalog

import "testing"

// Every catalog entry point must report its documented ODBC column count
// even when nothing has been queried yet, so a driver manager's metadata
// probing never sees a short or empty column set.
func TestColumnCounts(t *testing.T) {
	cases := []struct {
		name string
		cols Columns
		want int
	}{
		{"Tables", Tables, 5},
		{"Columns", ColumnsCols, 18},
		{"Statistics", Statistics, 13},
		{"PrimaryKeys", PrimaryKeys, 6},
		{"ForeignKeys", ForeignKeys, 14},
		{"SpecialColumns", SpecialColumns, 8},
		{"Procedures", Procedures, 8},
		{"ProcedureColumns", ProcedureColumns, 19},
		{"TablePrivileges", TablePrivileges, 7},
		{"ColumnPrivileges", ColumnPrivileges, 8},
	}
	for _, c := range cases {
		if len(c.cols) != c.want {
			t.Errorf("%s: got %d columns, want %d", c.name, len(c.cols), c.want)
		}
	}
}

func TestLikeClauseEmptyPatternUnrestricted(t *testing.T) {
	if got := likeClause("table_name", ""); got != "" {
		t.Errorf("empty pattern should not restrict the query, got %q", got)
	}
}

func TestLikeClauseEscapesQuotes(t *testing.T) {
	got := likeClause("table_name", "O'Brien")
	want := " AND table_name LIKE 'O''Brien'"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TablesQuery with every pattern empty must still produce a valid,
// unrestricted query rather than a dangling WHERE clause.
func TestTablesQueryUnrestricted(t *testing.T) {
	q := TablesQuery(Pattern{}, nil)
	if q == "" {
		t.Fatal("expected a non-empty query")
	}
	if want := "FROM information_schema.tables ORDER BY"; !contains(q, want) {
		t.Errorf("query %q missing expected unrestricted tail %q", q, want)
	}
}

func TestTablesQueryFiltersByTypeAndPattern(t *testing.T) {
	q := TablesQuery(Pattern{Schema: "public", Name: "emp%"}, []string{"TABLE", "VIEW"})
	for _, want := range []string{
		"table_schema LIKE 'public'",
		"table_name LIKE 'emp%'",
		"table_type IN ('TABLE','VIEW')",
	} {
		if !contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}
}

func TestPrimaryKeysQueryPattern(t *testing.T) {
	q := PrimaryKeysQuery(Pattern{Name: "orders"})
	if !contains(q, "tc.table_name LIKE 'orders'") {
		t.Errorf("query %q missing table name filter", q)
	}
	if !contains(q, "PRIMARY KEY") {
		t.Errorf("query %q missing primary key constraint filter", q)
	}
}

func TestForeignKeysQueryBothSidesFiltered(t *testing.T) {
	q := ForeignKeysQuery(Pattern{Name: "parent"}, Pattern{Name: "child"})
	if !contains(q, "pktc.table_name LIKE 'parent'") || !contains(q, "fktc.table_name LIKE 'child'") {
		t.Errorf("query %q missing one side of the join filter", q)
	}
}

func contains(s, sub string) bool {
	return len(s) >= len(sub) && (func() bool {
		for i := 0; i+len(sub) <= len(s); i++ {
			if s[i:i+len(sub)] == sub {
				return true
			}
		}
		return false
	})()
}
