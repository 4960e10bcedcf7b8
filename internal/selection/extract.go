package selection

import "strings"

// Extract returns the block of characters bounds covers, one output line per
// row in [MinRow, MaxRow]. Rows past the end of the text and rows whose
// column clip is empty contribute an empty string, so the result always has
// exactly MaxRow-MinRow+1 lines. Columns are character units.
func Extract(text string, b Bounds) string {
	lines := strings.Split(text, "\n")
	rows := make([]string, 0, b.MaxRow-b.MinRow+1)
	for row := b.MinRow; row <= b.MaxRow; row++ {
		if row < 0 || row >= len(lines) {
			rows = append(rows, "")
			continue
		}
		rows = append(rows, clip(lines[row], b.MinCol, b.MaxCol))
	}
	return strings.Join(rows, "\n")
}

// clip slices [minCol, maxCol+1) out of line, clamped to the line's length.
func clip(line string, minCol, maxCol int) string {
	runes := []rune(line)
	start := minCol
	if start < 0 {
		start = 0
	}
	end := maxCol + 1
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// Blank reports whether a block contains nothing worth writing to the
// clipboard. Callers surface a "nothing to copy" status instead of writing
// blank content.
func Blank(block string) bool {
	return strings.TrimSpace(block) == ""
}
