package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"blockpad/internal/grid"
	"blockpad/internal/selection"
)

// spanKind orders overlay layers: a higher kind wins when layers overlap on
// the same character.
type spanKind int

const (
	spanNone spanKind = iota
	spanFrozen
	spanSelection
	spanMatch
	spanMarked
	spanCurrent
)

func (m *Model) gutterWidth() int {
	digits := len(fmt.Sprintf("%d", len(m.lines())))
	if digits < 2 {
		digits = 2
	}
	return digits + 1
}

// rebuildMatchSpans projects every match onto the rows it covers, converting
// byte offsets into character columns per row. Multi-line matches contribute
// one span per covered row.
func (m *Model) rebuildMatchSpans() {
	m.matchSpans = map[int][]matchSpan{}
	if len(m.matches) == 0 {
		return
	}

	lines := m.lines()
	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}

	for idx, match := range m.matches {
		row := match.Line - 1
		for row < len(lines) && starts[row] < match.End {
			lineStart := starts[row]
			lineEnd := lineStart + len(lines[row])
			s := match.Start
			if s < lineStart {
				s = lineStart
			}
			e := match.End
			if e > lineEnd {
				e = lineEnd
			}
			if s < e {
				m.matchSpans[row] = append(m.matchSpans[row], matchSpan{
					startCol: len([]rune(m.buffer[lineStart:s])),
					endCol:   len([]rune(m.buffer[lineStart:e])),
					idx:      idx,
				})
			}
			row++
		}
	}
}

// renderSelect rebuilds the viewport content with the selection, frozen
// blocks and match highlights painted over the buffer text.
func (m *Model) renderSelect() {
	if !m.ready || m.mode == modeEdit {
		return
	}

	lines := m.lines()
	gutter := m.gutterWidth()
	numWidth := gutter - 1
	textWidth := m.view.Width - gutter
	if textWidth < 1 {
		textWidth = 1
	}

	var regionBounds *selection.Bounds
	if m.region.Present() {
		b := m.region.NormalizedBounds()
		regionBounds = &b
	}

	rendered := make([]string, len(lines))
	for i, line := range lines {
		num := m.theme.LineNumber.Render(fmt.Sprintf("%*d ", numWidth, i+1))
		rendered[i] = num + m.overlayLine(i, line, regionBounds, textWidth)
	}
	m.view.SetContent(strings.Join(rendered, "\n"))
}

// overlayLine paints one buffer row. Kinds are resolved per character, then
// consecutive characters of one kind are rendered as a single styled run.
func (m *Model) overlayLine(row int, line string, region *selection.Bounds, maxCells int) string {
	runes := clipToCells(line, maxCells)
	if len(runes) == 0 && region == nil && len(m.frozen) == 0 {
		return ""
	}

	kinds := make([]spanKind, len(runes))
	paint := func(startCol, endCol int, kind spanKind) {
		if startCol < 0 {
			startCol = 0
		}
		if endCol > len(runes) {
			endCol = len(runes)
		}
		for c := startCol; c < endCol; c++ {
			if kind > kinds[c] {
				kinds[c] = kind
			}
		}
	}

	for _, b := range m.frozen {
		if row >= b.MinRow && row <= b.MaxRow {
			paint(b.MinCol, b.MaxCol+1, spanFrozen)
		}
	}
	if region != nil && row >= region.MinRow && row <= region.MaxRow {
		paint(region.MinCol, region.MaxCol+1, spanSelection)
	}
	for _, span := range m.matchSpans[row] {
		kind := spanMatch
		if m.marked[span.idx] {
			kind = spanMarked
		}
		if span.idx == m.matchIdx {
			kind = spanCurrent
		}
		paint(span.startCol, span.endCol, kind)
	}

	var b strings.Builder
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && kinds[end] == kinds[start] {
			end++
		}
		segment := string(runes[start:end])
		if style, ok := m.spanStyle(kinds[start]); ok {
			b.WriteString(style.Render(segment))
		} else {
			b.WriteString(segment)
		}
		start = end
	}
	return b.String()
}

func (m *Model) spanStyle(kind spanKind) (lipgloss.Style, bool) {
	switch kind {
	case spanFrozen:
		return m.theme.FrozenSelection, true
	case spanSelection:
		return m.theme.Selection, true
	case spanMatch:
		return m.theme.MatchHighlight, true
	case spanMarked:
		return m.theme.MarkedMatch, true
	case spanCurrent:
		return m.theme.CurrentMatch, true
	}
	return lipgloss.Style{}, false
}

// clipToCells cuts a line to the runes that fit in maxCells display cells.
func clipToCells(line string, maxCells int) []rune {
	runes := []rune(line)
	width := 0
	for i := range runes {
		width = grid.CellForColumn(line, i+1)
		if width > maxCells {
			return runes[:i]
		}
	}
	return runes
}

// ensureMatchVisible scrolls the viewport so the current match's line is on
// screen.
func (m *Model) ensureMatchVisible() {
	if len(m.matches) == 0 || m.matchIdx >= len(m.matches) {
		return
	}
	line := m.matches[m.matchIdx].Line - 1
	switch {
	case line < m.view.YOffset:
		m.view.SetYOffset(line)
	case line >= m.view.YOffset+m.view.Height:
		m.view.SetYOffset(line - m.view.Height + 1)
	}
}
