package util

import "testing"

func TestCondense(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"", 10, ""},
		{"a  b\n\tc", 10, "a b c"},
		{"abcdefgh", 5, "abcd…"},
		{"short", 10, "short"},
		{"abc", 1, "…"},
		{"ab", 2, "ab"},
	}
	for _, tc := range tests {
		if got := Condense(tc.in, tc.limit); got != tc.want {
			t.Errorf("Condense(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateCountsCells(t *testing.T) {
	if got := Truncate("日本語", 4); got != "日…" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("abc", 3); got != "abc" {
		t.Fatalf("uncut string changed: %q", got)
	}
}

func TestVisibleWidthStripsANSI(t *testing.T) {
	if got := VisibleWidth("\x1b[31mab\x1b[0m"); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}
