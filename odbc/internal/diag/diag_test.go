// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package diag

import "testing"

func TestMapperResolvesServerCode(t *testing.T) {
	m := Mapper{Version: V3}
	got := m.Resolve(335544466, 0, "")
	if got != "23000" {
		t.Fatalf("unique constraint violation: got %s, want 23000", got)
	}
}

func TestMapperFallsBackToLegacyCode(t *testing.T) {
	m := Mapper{Version: V3}
	got := m.Resolve(0, -803, "")
	if got != "23000" {
		t.Fatalf("legacy code -803: got %s, want 23000", got)
	}
}

func TestMapperDefaultAndGenericFallback(t *testing.T) {
	m := Mapper{Version: V3}
	if got := m.Resolve(0, 0, "28000"); got != "28000" {
		t.Fatalf("default state: got %s, want 28000", got)
	}
	if got := m.Resolve(0, 0, ""); got != "HY000" {
		t.Fatalf("generic fallback v3: got %s, want HY000", got)
	}

	m2 := Mapper{Version: V2}
	if got := m2.Resolve(0, 0, ""); got != "S1000" {
		t.Fatalf("generic fallback v2: got %s, want S1000", got)
	}
}

func TestMapperVersionSelectsSpelling(t *testing.T) {
	v3 := Mapper{Version: V3}.Resolve(335544336, 0, "")
	v2 := Mapper{Version: V2}.Resolve(335544336, 0, "")
	if v3 != "40001" {
		t.Fatalf("v3 deadlock state: got %s", v3)
	}
	if v2 != "40001" { // 40001 has no distinct v2 spelling
		t.Fatalf("v2 deadlock state: got %s", v2)
	}

	v3b := Mapper{Version: V3}.Resolve(0, 0, "HY000")
	v2b := Mapper{Version: V2}.Resolve(0, 0, "HY000")
	if v3b != "HY000" || v2b != "S1000" {
		t.Fatalf("HY000/S1000 mapping mismatch: v3=%s v2=%s", v3b, v2b)
	}
}

func TestListOrdersErrorsBeforeWarnings(t *testing.T) {
	var l List
	l.Post(&Record{SqlState: "01004", isWarning: true, MessageText: "truncated"})
	l.Post(&Record{SqlState: "23000", MessageText: "constraint violation"})

	first, ok := l.Get(1)
	if !ok || first.SqlState != "23000" {
		t.Fatalf("expected error record first, got %+v", first)
	}
	second, ok := l.Get(2)
	if !ok || second.SqlState != "01004" {
		t.Fatalf("expected warning record second, got %+v", second)
	}
	if _, ok := l.Get(3); ok {
		t.Fatal("expected no third record")
	}
}

func TestListClear(t *testing.T) {
	var l List
	l.Post(&Record{SqlState: "HY000"})
	l.Clear()
	if l.Count() != 0 {
		t.Fatalf("expected empty list after Clear, got %d", l.Count())
	}
}

func TestListMoveTransfersAndEmptiesSource(t *testing.T) {
	var src, dst List
	src.Post(&Record{SqlState: "HY000"})
	dst.Move(&src)
	if dst.Count() != 1 {
		t.Fatalf("expected 1 record moved into dst, got %d", dst.Count())
	}
	if src.Count() != 0 {
		t.Fatalf("expected src emptied after Move, got %d", src.Count())
	}
}
