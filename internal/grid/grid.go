// Package grid maps pointer coordinates onto the character grid of a
// monospaced text buffer.
package grid

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Position is a character cell in the buffer, zero-indexed.
type Position struct {
	Row int
	Col int
}

// Metrics describes the geometry of the rendered text area. CellWidth must
// come from measured glyph metrics of the font in use; in a terminal both
// CellWidth and LineHeight are 1. Scroll offsets are added to the pointer
// coordinate before division so positions stay stable while scrolled.
type Metrics struct {
	CellWidth  float64
	LineHeight float64
	FontSize   float64
	OriginX    float64
	OriginY    float64
	ScrollX    float64
	ScrollY    float64
}

func (m Metrics) cellWidth() float64 {
	if m.CellWidth > 0 {
		return m.CellWidth
	}
	return 1
}

// lineHeight falls back to 1.2x the font size when no explicit height is set.
func (m Metrics) lineHeight() float64 {
	if m.LineHeight > 0 {
		return m.LineHeight
	}
	if m.FontSize > 0 {
		return m.FontSize * 1.2
	}
	return 1
}

// ToPosition maps a pointer coordinate to the character cell under it.
// Coordinates above or left of the origin clamp to the first row or column.
// It reports false when the computed row falls past the last line of a
// non-empty buffer: pointer events below the text produce no position.
func ToPosition(x, y float64, m Metrics, lineCount int) (Position, bool) {
	col := int(math.Floor((x - m.OriginX + m.ScrollX) / m.cellWidth()))
	if col < 0 {
		col = 0
	}
	row := int(math.Floor((y - m.OriginY + m.ScrollY) / m.lineHeight()))
	if row < 0 {
		row = 0
	}
	if lineCount > 0 && row >= lineCount {
		return Position{}, false
	}
	return Position{Row: row, Col: col}, true
}

// ColumnForCell converts a display-cell offset within a line to a character
// column. Wide runes occupy two cells; cells past the end of the line map to
// virtual columns one cell apart.
func ColumnForCell(line string, cell int) int {
	if cell <= 0 {
		return 0
	}
	width := 0
	col := 0
	for _, r := range line {
		w := runeCells(r)
		if width+w > cell {
			return col
		}
		width += w
		col++
	}
	return col + (cell - width)
}

// CellForColumn converts a character column within a line to the display-cell
// offset where that column starts.
func CellForColumn(line string, col int) int {
	if col <= 0 {
		return 0
	}
	width := 0
	i := 0
	for _, r := range line {
		if i >= col {
			return width
		}
		width += runeCells(r)
		i++
	}
	return width + (col - i)
}

func runeCells(r rune) int {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		return 1
	}
	return w
}
