// Package export writes produced text to files on behalf of the UI; the
// engines themselves never touch storage.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blockpad/internal/errdef"
)

// Write saves text under dir as filename and returns the path actually
// written. The filename is sanitized to a single path element and suffixed
// with a counter when the name is already taken, so an export never clobbers
// an existing file.
func Write(dir, filename, text string) (string, error) {
	name := Sanitize(filename)
	if name == "" {
		return "", errdef.New(errdef.CodeFilesystem, "empty export filename")
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "create export dir")
	}

	path, err := ensureUniquePath(filepath.Join(dir, name))
	if err != nil {
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "resolve export path")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "write export tmp")
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "place export file")
	}

	return path, nil
}

// Sanitize reduces a requested filename to a safe single path element.
func Sanitize(filename string) string {
	name := strings.TrimSpace(filename)
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}

func ensureUniquePath(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", err
	}
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ext := filepath.Ext(path)
	for i := 1; i < 1000; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not create unique path for %s", path)
}
