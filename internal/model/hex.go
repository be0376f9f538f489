package model

import "sort"

// HexCell identifies a cell on the hex board using odd-column offset
// coordinates (flat-top hexes, odd columns shifted down).
type HexCell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Axis is one of the three undirected lines of hex adjacency. The same
// axes are used for glyphling slides, tile casts and word scanning.
type Axis int

const (
	AxisNorthSouth Axis = iota
	AxisNortheastSouthwest
	AxisNorthwestSoutheast
)

// Axes lists all three axes in canonical scan order.
var Axes = [3]Axis{AxisNorthSouth, AxisNortheastSouthwest, AxisNorthwestSoutheast}

// Direction selects one of the two ends of an axis.
type Direction int

const (
	// DirPositive walks south on the NS axis and toward increasing
	// columns on the diagonal axes. Words read in this direction.
	DirPositive Direction = 1
	DirNegative Direction = -1
)

// Directions lists both directions of an axis.
var Directions = [2]Direction{DirNegative, DirPositive}

// Step returns the cell one step from c along the given axis and
// direction. The result is raw coordinate math; callers must check the
// cell against the board.
func (c HexCell) Step(axis Axis, dir Direction) HexCell {
	odd := c.Col&1 == 1
	switch axis {
	case AxisNorthSouth:
		if dir == DirPositive {
			return HexCell{c.Col, c.Row + 1} // S
		}
		return HexCell{c.Col, c.Row - 1} // N
	case AxisNortheastSouthwest:
		if dir == DirPositive { // NE
			if odd {
				return HexCell{c.Col + 1, c.Row}
			}
			return HexCell{c.Col + 1, c.Row - 1}
		}
		// SW
		if odd {
			return HexCell{c.Col - 1, c.Row + 1}
		}
		return HexCell{c.Col - 1, c.Row}
	default: // AxisNorthwestSoutheast
		if dir == DirPositive { // SE
			if odd {
				return HexCell{c.Col + 1, c.Row + 1}
			}
			return HexCell{c.Col + 1, c.Row}
		}
		// NW
		if odd {
			return HexCell{c.Col - 1, c.Row}
		}
		return HexCell{c.Col - 1, c.Row - 1}
	}
}

// BoardSize is one of the three supported board tiers.
type BoardSize string

const (
	BoardSmall  BoardSize = "small"
	BoardMedium BoardSize = "medium"
	BoardLarge  BoardSize = "large"
)

// Radius returns the hexagon radius for the tier, or -1 for an
// unknown tier.
func (s BoardSize) Radius() int {
	switch s {
	case BoardSmall:
		return 3
	case BoardMedium:
		return 4
	case BoardLarge:
		return 5
	default:
		return -1
	}
}

// ValidBoardSizes returns all supported board tiers.
func ValidBoardSizes() []BoardSize {
	return []BoardSize{BoardSmall, BoardMedium, BoardLarge}
}

// Board is the fixed set of valid cells for a board tier. It is
// generated once and immutable; rebuild it from the tier wherever a
// persisted game is loaded.
type Board struct {
	Size  BoardSize
	cells map[HexCell]struct{}
	order []HexCell // sorted, for deterministic iteration
}

// NewBoard generates the hexagonal cell set for the tier. Returns nil
// for an unknown tier.
func NewBoard(size BoardSize) *Board {
	radius := size.Radius()
	if radius < 0 {
		return nil
	}

	// Generate a hexagon of the given radius in axial coordinates,
	// then convert to odd-column offset and translate so all
	// coordinates are non-negative.
	var raw []HexCell
	minRow := 0
	for q := -radius; q <= radius; q++ {
		rLo := max(-radius, -q-radius)
		rHi := min(radius, -q+radius)
		for r := rLo; r <= rHi; r++ {
			col := q + radius
			row := r + (col-(col&1))/2
			if row < minRow {
				minRow = row
			}
			raw = append(raw, HexCell{Col: col, Row: row})
		}
	}

	b := &Board{
		Size:  size,
		cells: make(map[HexCell]struct{}, len(raw)),
		order: make([]HexCell, 0, len(raw)),
	}
	for _, c := range raw {
		c.Row -= minRow
		b.cells[c] = struct{}{}
		b.order = append(b.order, c)
	}
	sort.Slice(b.order, func(i, j int) bool {
		if b.order[i].Col != b.order[j].Col {
			return b.order[i].Col < b.order[j].Col
		}
		return b.order[i].Row < b.order[j].Row
	})
	return b
}

// Contains reports whether the cell is on the board.
func (b *Board) Contains(c HexCell) bool {
	_, ok := b.cells[c]
	return ok
}

// Cells returns the board's cells sorted by column, then row.
func (b *Board) Cells() []HexCell {
	out := make([]HexCell, len(b.order))
	copy(out, b.order)
	return out
}

// CellCount returns the number of valid cells.
func (b *Board) CellCount() int {
	return len(b.order)
}

// Neighbor returns the adjacent cell along the axis and direction, and
// whether it exists. Off-board queries report no neighbor.
func (b *Board) Neighbor(c HexCell, axis Axis, dir Direction) (HexCell, bool) {
	if !b.Contains(c) {
		return HexCell{}, false
	}
	next := c.Step(axis, dir)
	if !b.Contains(next) {
		return HexCell{}, false
	}
	return next, true
}

// Columns returns the minimum and maximum column present on the board.
func (b *Board) Columns() (minCol, maxCol int) {
	if len(b.order) == 0 {
		return 0, 0
	}
	return b.order[0].Col, b.order[len(b.order)-1].Col
}

// ColumnCells returns the cells in a column sorted by row.
func (b *Board) ColumnCells(col int) []HexCell {
	var out []HexCell
	for _, c := range b.order {
		if c.Col == col {
			out = append(out, c)
		}
	}
	return out
}
