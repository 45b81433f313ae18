// Package engine implements the Tetromino board engine: a fixed-size grid,
// falling pieces, collision checks, placement, line clears and the
// score-driven level progression. It has no dependencies on the terminal
// platform and is driven one frame at a time by a Session.
package engine

// Cell is a single board square. Empty, or a color index in [0, colors).
type Cell int8

// Empty marks a board cell with no settled block.
const Empty Cell = -1

// IsEmpty reports whether the cell holds no block.
func (c Cell) IsEmpty() bool {
	return c == Empty
}

// Board is a fixed-size grid of settled blocks.
// Row 0 is the top of the visible well, row Height()-1 the bottom.
type Board struct {
	width  int
	height int
	cells  [][]Cell // [row][column]
}

// BlankBoard returns a width x height board with every cell empty.
func BlankBoard(width, height int) *Board {
	b := &Board{
		width:  width,
		height: height,
		cells:  make([][]Cell, height),
	}
	for y := range b.cells {
		b.cells[y] = make([]Cell, width)
		b.clearRow(y)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// At returns the cell at column x, row y. Out-of-range coordinates read as Empty.
func (b *Board) At(x, y int) Cell {
	if !b.inside(x, y) {
		return Empty
	}
	return b.cells[y][x]
}

// Set writes a cell. Out-of-range coordinates are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !b.inside(x, y) {
		return
	}
	b.cells[y][x] = c
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// onBoard has no lower bound on y: rows above the top are handled by the caller.
func (b *Board) onBoard(x, y int) bool {
	return x >= 0 && x < b.width && y < b.height
}

// IsValidPosition reports whether p, shifted by (dx, dy), fits on the board.
//
// Every occupied template cell must stay inside the side walls. Cells that are
// still above the top row are otherwise exempt, which lets pieces enter and
// rotate from off-screen. All remaining cells must be above the floor and land
// on empty squares.
func (b *Board) IsValidPosition(p Piece, dx, dy int) bool {
	t := p.Template()
	for y := range TemplateSize {
		for x := range TemplateSize {
			if !t.Occupied(x, y) {
				continue
			}
			bx, by := p.X+x+dx, p.Y+y+dy
			if bx < 0 || bx >= b.width {
				return false
			}
			if by < 0 {
				continue
			}
			if !b.onBoard(bx, by) {
				return false
			}
			if !b.cells[by][bx].IsEmpty() {
				return false
			}
		}
	}
	return true
}

// PlacePiece merges p into the board using its color.
// The caller must have checked IsValidPosition first. Cells still above the
// top row have nowhere to go and are dropped.
func (b *Board) PlacePiece(p Piece) {
	t := p.Template()
	for y := range TemplateSize {
		for x := range TemplateSize {
			if t.Occupied(x, y) {
				b.Set(p.X+x, p.Y+y, Cell(p.Color))
			}
		}
	}
}

// IsCompleteLine reports whether row y has no gaps.
func (b *Board) IsCompleteLine(y int) bool {
	for x := range b.width {
		if b.cells[y][x].IsEmpty() {
			return false
		}
	}
	return true
}

// ClearCompletedLines removes every full row and returns how many were removed.
//
// Rows are scanned from the bottom up. When a full row is found, everything
// above it is pulled down one row and the top row is blanked; the same row
// index is then examined again, since the row pulled into it may be full too.
func (b *Board) ClearCompletedLines() int {
	removed := 0
	y := b.height - 1
	for y >= 0 {
		if !b.IsCompleteLine(y) {
			y--
			continue
		}
		for pull := y; pull > 0; pull-- {
			copy(b.cells[pull], b.cells[pull-1])
		}
		b.clearRow(0)
		removed++
	}
	return removed
}

// StackHeight returns the topmost filled row in column x, or Height() when the
// column is empty.
func (b *Board) StackHeight(x int) int {
	for y := range b.height {
		if !b.At(x, y).IsEmpty() {
			return y
		}
	}
	return b.height
}

func (b *Board) clearRow(y int) {
	for x := range b.cells[y] {
		b.cells[y][x] = Empty
	}
}
