package ui

import (
	"path/filepath"
	"strings"
	"testing"

	"blockpad/internal/grid"
	"blockpad/internal/history"
	"blockpad/internal/search"
	"blockpad/internal/theme"
)

func newTestModel(t *testing.T, content string) Model {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "history.json")
	m := New(Config{
		InitialContent: content,
		Theme:          theme.DefaultDark(),
		History:        history.NewLog(logPath, 5),
	})
	m.resize(80, 24)
	return m
}

func TestRebuildMatchSpansProjectsRows(t *testing.T) {
	m := newTestModel(t, "alpha beta\ngamma alpha\nalpha")
	m.findExpr = "alpha"
	m.rescan()

	if len(m.matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(m.matches))
	}
	for row, wantCol := range map[int]int{0: 0, 1: 6, 2: 0} {
		spans := m.matchSpans[row]
		if len(spans) != 1 {
			t.Fatalf("row %d: expected 1 span, got %d", row, len(spans))
		}
		if spans[0].startCol != wantCol || spans[0].endCol != wantCol+5 {
			t.Fatalf("row %d: span [%d,%d), want [%d,%d)", row, spans[0].startCol, spans[0].endCol, wantCol, wantCol+5)
		}
	}
}

func TestRebuildMatchSpansSplitsMultilineMatch(t *testing.T) {
	m := newTestModel(t, "one\ntwo\nthree")
	m.findExpr = "one\ntwo"
	m.opts.Regex = false
	m.rescan()

	if len(m.matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(m.matches))
	}
	if len(m.matchSpans[0]) != 1 || len(m.matchSpans[1]) != 1 {
		t.Fatalf("match should span rows 0 and 1: %v", m.matchSpans)
	}
	if got := m.matchSpans[1][0].endCol; got != 3 {
		t.Fatalf("row 1 span end = %d, want 3", got)
	}
}

func TestGridPositionAccountsForGutterAndScroll(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "0123456789"
	}
	m := newTestModel(t, strings.Join(lines, "\n"))
	m.view.SetYOffset(5)

	// gutter for 30 lines is 2 digits + space = 3 cells
	pos, ok := m.gridPosition(3, headerHeight)
	if !ok {
		t.Fatal("expected a position")
	}
	if pos.Row != 5 || pos.Col != 0 {
		t.Fatalf("got (%d,%d), want (5,0)", pos.Row, pos.Col)
	}

	if _, ok := m.gridPosition(3, 0); ok {
		t.Fatal("header row should not map to a position")
	}
}

func TestGridPositionResolvesWideRunes(t *testing.T) {
	m := newTestModel(t, "日本語")
	// cell 3 in the text area is the middle of the second wide rune
	pos, ok := m.gridPosition(m.gutterWidth()+3, headerHeight)
	if !ok {
		t.Fatal("expected a position")
	}
	if pos.Col != 1 {
		t.Fatalf("col = %d, want 1", pos.Col)
	}
}

func TestApplyReplaceMarkedSubset(t *testing.T) {
	m := newTestModel(t, "x x x")
	m.findExpr = "x"
	m.replaceExpr = "y"
	m.rescan()
	if len(m.matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(m.matches))
	}

	m.marked[0] = true
	m.marked[2] = true
	m.applyReplace(applyMarked)

	if m.buffer != "y x y" {
		t.Fatalf("buffer = %q, want %q", m.buffer, "y x y")
	}
	ops := m.cfg.History.Entries()
	if len(ops) != 1 || ops[0].Matches != 2 {
		t.Fatalf("expected one logged operation with 2 matches, got %+v", ops)
	}
	if len(m.matches) != 0 {
		t.Fatal("matches should be invalidated after a replace")
	}
}

func TestRunBatchComposesAndLogsPerRule(t *testing.T) {
	m := newTestModel(t, "a a")
	m.rules = []search.Rule{
		{Find: "a", Replace: "b", Enabled: true},
		{Find: "b", Replace: "c", Enabled: true},
		{Find: "(", Replace: "x", Enabled: false},
	}
	m.opts.Regex = true

	res, _ := m.runBatch()
	got := res.(Model)
	if got.buffer != "c c" {
		t.Fatalf("buffer = %q, want %q", got.buffer, "c c")
	}
	ops := got.cfg.History.Entries()
	if len(ops) != 2 {
		t.Fatalf("expected 2 logged operations, got %d", len(ops))
	}
}

func TestParseLineRange(t *testing.T) {
	tests := []struct {
		in      string
		want    *search.LineRange
		wantErr bool
	}{
		{"", nil, false},
		{"3:7", &search.LineRange{Start: 3, End: 7}, false},
		{"7:3", &search.LineRange{Start: 3, End: 7}, false},
		{"4-9", &search.LineRange{Start: 4, End: 9}, false},
		{"5", &search.LineRange{Start: 5, End: 5}, false},
		{"0:4", nil, true},
		{"a:b", nil, true},
	}
	for _, tc := range tests {
		got, err := parseLineRange(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseLineRange(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLineRange(%q): %v", tc.in, err)
			continue
		}
		if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
			t.Errorf("parseLineRange(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCopySelectionBlankBlockStaysOffClipboard(t *testing.T) {
	m := newTestModel(t, "    \n    ")
	m.region.Begin(grid.Position{Row: 0, Col: 0})
	m.region.Extend(grid.Position{Row: 1, Col: 3})
	m.region.Finish()

	if cmd := m.copySelection(); cmd != nil {
		t.Fatal("blank selection must not produce a clipboard write")
	}
	if m.status.level != statusWarn {
		t.Fatalf("status level = %d, want warn", m.status.level)
	}
}

func TestCopySelectionNonBlankProducesCommand(t *testing.T) {
	m := newTestModel(t, "data")
	m.region.Begin(grid.Position{Row: 0, Col: 0})
	m.region.Extend(grid.Position{Row: 0, Col: 3})
	m.region.Finish()

	if cmd := m.copySelection(); cmd == nil {
		t.Fatal("non-blank selection must produce a clipboard command")
	}
}

func TestInvalidPatternKeepsMatchesEmpty(t *testing.T) {
	m := newTestModel(t, "text")
	m.findExpr = "("
	m.opts.Regex = true
	m.rescan()

	if len(m.matches) != 0 {
		t.Fatal("invalid pattern must produce no matches")
	}
	if m.status.level != statusError {
		t.Fatalf("status level = %d, want error", m.status.level)
	}
}
