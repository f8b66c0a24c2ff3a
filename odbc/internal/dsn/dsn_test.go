// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package dsn

import (
	"reflect"
	"testing"
)

func TestParseBasicKeys(t *testing.T) {
	info, err := Parse("DRIVER=hdbodbc;UID=scott;PWD=tiger;DATABASE=SYSTEMDB;READONLY;AUTOQUOTED=false")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.Driver != "hdbodbc" || info.UID != "scott" || info.PWD != "tiger" || info.Database != "SYSTEMDB" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if !info.ReadOnly {
		t.Fatal("READONLY bare flag should default to true")
	}
	if info.AutoQuoted {
		t.Fatal("AUTOQUOTED=false should be false")
	}
	if info.Charset != defaultCharset || info.Dialect != defaultDialect {
		t.Fatalf("defaults not applied: %+v", info)
	}
}

func TestParseRejectsUnknownKey(t *testing.T) {
	if _, err := Parse("DRIVER=hdbodbc;BOGUS=1"); err == nil {
		t.Fatal("expected error for unrecognized key")
	}
}

func TestParseConnSettingsSplitsOnSemicolon(t *testing.T) {
	info, err := Parse("UID=scott;CONNSETTINGS=SET NAMES 'UTF8';SET TIME ZONE 'UTC'")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"SET NAMES 'UTF8'", "SET TIME ZONE 'UTC'"}
	if !reflect.DeepEqual(info.ConnSettings, want) {
		t.Fatalf("ConnSettings = %#v, want %#v", info.ConnSettings, want)
	}
}

// TestParseConnSettingsQuotedSemicolon confirms a semicolon embedded in a
// quoted string literal inside CONNSETTINGS does not split the statement,
// the reason CONNSETTINGS now parses through sqlscript's quote-aware
// scanner instead of a naive strings.Split.
func TestParseConnSettingsQuotedSemicolon(t *testing.T) {
	info, err := Parse("UID=scott;CONNSETTINGS=SET SCHEMA 'A;B';SET NAMES 'UTF8'")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"SET SCHEMA 'A;B'", "SET NAMES 'UTF8'"}
	if !reflect.DeepEqual(info.ConnSettings, want) {
		t.Fatalf("ConnSettings = %#v, want %#v", info.ConnSettings, want)
	}
}

func TestParseConnSettingsMustBeLast(t *testing.T) {
	info, err := Parse("CONNSETTINGS=SET NAMES 'UTF8';UID=scott")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Everything after CONNSETTINGS= is SQL, including the trailing
	// "UID=scott" segment: callers must put CONNSETTINGS last.
	if len(info.ConnSettings) != 2 || info.UID != "" {
		t.Fatalf("unexpected parse of trailing CONNSETTINGS: %+v", info)
	}
}

func TestParseEmptyString(t *testing.T) {
	if _, err := Parse("   "); err == nil {
		t.Fatal("expected error for empty connection string")
	}
}
