package history

import (
	"path/filepath"
	"testing"
	"time"
)

func tempLog(t *testing.T, capacity int) *Log {
	t.Helper()
	return NewLog(filepath.Join(t.TempDir(), "history.json"), capacity)
}

func TestAppendAndEntries(t *testing.T) {
	l := tempLog(t, 0)
	if err := l.Append(Operation{Find: "a", Replace: "b", Matches: 3}); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	op := entries[0]
	if op.ID == "" || op.ExecutedAt.IsZero() {
		t.Fatalf("append must fill id and timestamp: %+v", op)
	}
	if op.Find != "a" || op.Replace != "b" || op.Matches != 3 {
		t.Fatalf("unexpected entry: %+v", op)
	}
}

func TestCapacityEvictsOldestFirst(t *testing.T) {
	l := tempLog(t, 3)
	base := time.Now()
	for i := 0; i < 5; i++ {
		op := Operation{Find: string(rune('a' + i)), ExecutedAt: base.Add(time.Duration(i) * time.Second)}
		if err := l.Append(op); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected capacity of 3, got %d", len(entries))
	}
	if entries[0].Find != "e" || entries[2].Find != "c" {
		t.Fatalf("wrong entries survived: %+v", entries)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	l := NewLog(path, 20)
	if err := l.Append(Operation{Find: "old", Replace: "new"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	reopened := NewLog(path, 20)
	if err := reopened.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	entries := reopened.Entries()
	if len(entries) != 1 || entries[0].Find != "old" {
		t.Fatalf("round trip lost the entry: %+v", entries)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := tempLog(t, 20)
	if err := l.Load(); err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(l.Entries()) != 0 {
		t.Fatalf("expected empty log")
	}
}

func TestReset(t *testing.T) {
	l := tempLog(t, 20)
	if err := l.Append(Operation{Find: "a"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := l.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(l.Entries()) != 0 {
		t.Fatalf("reset must clear the log")
	}
}
