package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, "block.txt", "col1\ncol2\n")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "col1\ncol2\n" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestWriteNeverClobbers(t *testing.T) {
	dir := t.TempDir()
	first, err := Write(dir, "out.txt", "one")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	second, err := Write(dir, "out.txt", "two")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if first == second {
		t.Fatalf("second write reused %s", first)
	}
	if filepath.Base(second) != "out_1.txt" {
		t.Fatalf("unexpected unique name: %s", second)
	}
	data, _ := os.ReadFile(first)
	if string(data) != "one" {
		t.Fatalf("first file was overwritten: %q", data)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain.txt", "plain.txt"},
		{"../../etc/passwd", "passwd"},
		{"a:b*c.txt", "a_b_c.txt"},
		{"  ", ""},
		{"..", ""},
	}
	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteRejectsEmptyName(t *testing.T) {
	if _, err := Write(t.TempDir(), "   ", "x"); err == nil {
		t.Fatalf("expected an error for an empty filename")
	}
}
