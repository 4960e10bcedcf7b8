package ui

import (
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"blockpad/internal/search"
)

// buildPreview produces a unified diff between the buffer and the text the
// pending replacement would yield, without touching the buffer. Marked
// matches narrow the preview the same way they narrow an applied replace.
func (m *Model) buildPreview() string {
	opts := m.opts
	var subset []int
	if len(m.marked) > 0 {
		opts.FirstOnly = false
		subset = make([]int, 0, len(m.marked))
		for i := range m.marked {
			subset = append(subset, i)
		}
		sort.Ints(subset)
	}
	res := search.Replace(m.buffer, m.matches, m.replaceExpr, opts, subset)
	return udiff.Unified("current", "replaced", m.buffer, res.NewText)
}

// renderPreview paints the diff into the viewport, one style per line kind.
func (m *Model) renderPreview() {
	lines := strings.Split(m.preview, "\n")
	styled := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			styled[i] = m.theme.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			styled[i] = m.theme.DiffRemove.Render(line)
		case strings.HasPrefix(line, "@@"):
			styled[i] = m.theme.DiffHunk.Render(line)
		default:
			styled[i] = line
		}
	}
	m.view.SetContent(strings.Join(styled, "\n"))
	m.view.SetYOffset(0)
	m.setStatus(statusInfo, "Preview — t or esc closes, nothing has been changed")
}
