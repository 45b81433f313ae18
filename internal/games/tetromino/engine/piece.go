package engine

import "math/rand"

// SpawnRow is the row a new piece starts at, two rows above the visible board.
const SpawnRow = -2

// Piece is a falling tetromino.
type Piece struct {
	Shape    Shape
	Rotation int // 0..Shape.Rotations()-1
	X, Y     int // board position of the template's top-left corner
	Color    int
}

// Template returns the occupancy pattern for the piece's current rotation.
func (p Piece) Template() *Template {
	return p.Shape.Template(p.Rotation)
}

// Rotated returns a copy of p turned by steps (positive is clockwise),
// wrapped modulo the shape's rotation count.
func (p Piece) Rotated(steps int) Piece {
	n := p.Shape.Rotations()
	p.Rotation = ((p.Rotation+steps)%n + n) % n
	return p
}

// Moved returns a copy of p shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Cells returns the board coordinates of every occupied cell, top to bottom.
func (p Piece) Cells() [][2]int {
	t := p.Template()
	cells := make([][2]int, 0, 4)
	for y := range TemplateSize {
		for x := range TemplateSize {
			if t.Occupied(x, y) {
				cells = append(cells, [2]int{p.X + x, p.Y + y})
			}
		}
	}
	return cells
}

// SpawnColumn returns the start column that centers a template on the board.
func SpawnColumn(boardWidth int) int {
	return boardWidth/2 - TemplateSize/2
}

// SpawnPiece picks a random shape, rotation and color and places the piece
// centered horizontally two rows above the board.
func SpawnPiece(rng *rand.Rand, boardWidth, colors int) Piece {
	shape := Shape(rng.Intn(ShapeCount))
	return Piece{
		Shape:    shape,
		Rotation: rng.Intn(shape.Rotations()),
		X:        SpawnColumn(boardWidth),
		Y:        SpawnRow,
		Color:    rng.Intn(colors),
	}
}
