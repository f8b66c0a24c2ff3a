// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"testing"
)

func TestRuneLen(t *testing.T) {
	cases := []struct {
		r    rune
		want int
	}{
		{0x45, 1},
		{0x205, 1},
		{0x10400, 2},
		{surr1, -1},  // unpaired surrogate is never a valid code point
		{0x110000, -1}, // beyond maxRune
	}
	for _, c := range cases {
		if got := RuneLen(c.r); got != c.want {
			t.Errorf("RuneLen(%#x) = %d, want %d", c.r, got, c.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	strs := []string{
		"",
		"abcd",
		"\U0001F600", // 😀: 4 utf-8 bytes, 2 utf-16 units, 1 code point
		"日本語Héllo",
	}
	for _, s := range strs {
		units := make([]Unit, UTF16Length([]byte(s)))
		written, consumed := EncodeUTF8(units, []byte(s))
		if written != len(units) || consumed != len(s) {
			t.Fatalf("EncodeUTF8(%q): written=%d consumed=%d, want %d/%d", s, written, consumed, len(units), len(s))
		}

		back := make([]byte, 0)
		n, _ := DecodeUTF16(nil, units)
		back = make([]byte, n)
		w2, c2 := DecodeUTF16(back, units)
		if w2 != n || c2 != len(units) {
			t.Fatalf("DecodeUTF16(%q): written=%d consumed=%d, want %d/%d", s, w2, c2, n, len(units))
		}
		if string(back) != s {
			t.Fatalf("round trip mismatch: got %q want %q", back, s)
		}
	}
}

func TestSizeOnlyThenRetry(t *testing.T) {
	s := "\U0001F600hello"
	need := UTF16Length([]byte(s))
	small := make([]Unit, need-1)
	written, _ := EncodeUTF8(small, []byte(s))
	if written >= need {
		t.Fatalf("expected partial write into undersized buffer, got %d units (need %d)", written, need)
	}
	full := make([]Unit, need)
	written, consumed := EncodeUTF8(full, []byte(s))
	if written != need || consumed != len(s) {
		t.Fatalf("retry with full buffer: written=%d consumed=%d, want %d/%d", written, consumed, need, len(s))
	}
}

func TestUnpairedSurrogateStopsDecoding(t *testing.T) {
	units := []Unit{'a', Unit(surr1), 'b'} // high surrogate with no low surrogate follower
	n, consumed := DecodeUTF16(nil, units)
	if consumed != 1 {
		t.Fatalf("expected decoding to stop at offending unit (consumed=1), got consumed=%d", consumed)
	}
	if n != 1 {
		t.Fatalf("expected 1 byte decoded ('a'), got %d", n)
	}
}

func TestCompare(t *testing.T) {
	a := []Unit{'a', 'b', 'c'}
	b := []Unit{'a', 'b', 'd'}
	if Compare(a, a) != 0 {
		t.Fatal("expected equal buffers to compare 0")
	}
	if Compare(a, b) >= 0 {
		t.Fatal("expected a < b")
	}
	if Compare(b, a) <= 0 {
		t.Fatal("expected b > a")
	}
}

func TestBoundedCopyDoesNotSplitSurrogatePair(t *testing.T) {
	hi, lo := EncodeSurrogatePair(0x1F600)
	units := []Unit{'x', Unit(hi), Unit(lo)}
	dst := make([]Unit, 2) // room for 'x' + one more unit only: not enough for the pair
	n := BoundedCopy(dst, units)
	if n != 1 {
		t.Fatalf("expected BoundedCopy to stop before the unpairable surrogate, got n=%d", n)
	}
}
