package patterns

import (
	"path/filepath"
	"reflect"
	"testing"

	"blockpad/internal/search"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "patterns.json"))
}

func TestSaveAndGetReturnsPatternUnchanged(t *testing.T) {
	s := tempStore(t)
	p := Pattern{
		Name:    "todo-cleanup",
		Find:    `TODO\(\w+\)`,
		Replace: "TODO",
		Options: search.Options{Regex: true, CaseSensitive: true, LineRange: &search.LineRange{Start: 1, End: 100}},
	}
	if err := s.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := s.Get("todo-cleanup")
	if !ok {
		t.Fatalf("pattern not found")
	}
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("load changed the pattern:\ngot  %+v\nwant %+v", got, p)
	}
}

func TestSaveUpsertsByName(t *testing.T) {
	s := tempStore(t)
	if err := s.Save(Pattern{Name: "x", Find: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(Pattern{Name: "x", Find: "b"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.List(); len(got) != 1 || got[0].Find != "b" {
		t.Fatalf("expected upsert, got %+v", got)
	}
}

func TestSaveRequiresName(t *testing.T) {
	s := tempStore(t)
	if err := s.Save(Pattern{Find: "a"}); err == nil {
		t.Fatalf("expected an error for a nameless pattern")
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)
	if err := s.Save(Pattern{Name: "x", Find: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	removed, err := s.Delete("x")
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	if removed, _ := s.Delete("x"); removed {
		t.Fatalf("second delete should report nothing removed")
	}
}

func TestListSortedByName(t *testing.T) {
	s := tempStore(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Save(Pattern{Name: name, Find: "x"}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got := s.List()
	if got[0].Name != "alpha" || got[1].Name != "mid" || got[2].Name != "zeta" {
		t.Fatalf("list not sorted: %+v", got)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	s := NewStore(path)
	if err := s.Save(Pattern{Name: "keep", Find: "a", Replace: "b"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := reopened.Get("keep"); !ok {
		t.Fatalf("pattern lost across reopen")
	}
}
