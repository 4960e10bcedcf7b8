// Package selection tracks a drag-defined rectangular region over a
// character grid and extracts the block of text it covers.
package selection

import "blockpad/internal/grid"

// Bounds is the normalized extent of a column selection.
type Bounds struct {
	MinRow int
	MaxRow int
	MinCol int
	MaxCol int
}

// Region is one drag-defined rectangle. A finished region stays renderable
// and extractable; only Clear or a new Begin discards it.
type Region struct {
	startRow, startCol int
	endRow, endCol     int
	active             bool
	present            bool
}

// Begin anchors a new drag at pos, replacing any prior region.
func (r *Region) Begin(pos grid.Position) {
	r.startRow, r.startCol = pos.Row, pos.Col
	r.endRow, r.endCol = pos.Row, pos.Col
	r.active = true
	r.present = true
}

// Extend moves the drag corner. No-op unless a drag is active.
func (r *Region) Extend(pos grid.Position) {
	if !r.active {
		return
	}
	r.endRow, r.endCol = pos.Row, pos.Col
}

// Finish freezes the region. Idempotent.
func (r *Region) Finish() {
	r.active = false
}

func (r *Region) Clear() {
	*r = Region{}
}

// Active reports whether a drag is in progress.
func (r *Region) Active() bool {
	return r.active
}

// Present reports whether the region holds a rectangle, frozen or not.
func (r *Region) Present() bool {
	return r.present
}

// NormalizedBounds is valid at any time, including for a single-point region
// where MinRow == MaxRow and MinCol == MaxCol.
func (r *Region) NormalizedBounds() Bounds {
	b := Bounds{MinRow: r.startRow, MaxRow: r.endRow, MinCol: r.startCol, MaxCol: r.endCol}
	if b.MinRow > b.MaxRow {
		b.MinRow, b.MaxRow = b.MaxRow, b.MinRow
	}
	if b.MinCol > b.MaxCol {
		b.MinCol, b.MaxCol = b.MaxCol, b.MinCol
	}
	return b
}
