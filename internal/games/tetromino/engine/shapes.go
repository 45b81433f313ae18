package engine

import "fmt"

// TemplateSize is the width and height of every shape template.
const TemplateSize = 5

// Shape identifies one of the seven tetrominoes.
type Shape int

const (
	ShapeS Shape = iota
	ShapeZ
	ShapeJ
	ShapeL
	ShapeI
	ShapeO
	ShapeT
)

// ShapeCount is the number of distinct shapes.
const ShapeCount = 7

// Template is the 5x5 occupancy pattern of a shape in one rotation.
// Indexed as [row][column].
type Template [TemplateSize][TemplateSize]bool

// Occupied reports whether the template cell at column x, row y is filled.
func (t *Template) Occupied(x, y int) bool {
	return t[y][x]
}

// String renders the template with 'O' for filled cells and '.' for blanks.
func (t *Template) String() string {
	b := make([]byte, 0, TemplateSize*(TemplateSize+1))
	for y := range TemplateSize {
		if y > 0 {
			b = append(b, '\n')
		}
		for x := range TemplateSize {
			if t[y][x] {
				b = append(b, 'O')
			} else {
				b = append(b, '.')
			}
		}
	}
	return string(b)
}

// shapeArt holds the rotation patterns of every shape in drawing order.
var shapeArt = [ShapeCount][][TemplateSize]string{
	ShapeS: {
		{".....", ".....", "..OO.", ".OO..", "....."},
		{".....", "..O..", "..OO.", "...O.", "....."},
	},
	ShapeZ: {
		{".....", ".....", ".OO..", "..OO.", "....."},
		{".....", "..O..", ".OO..", ".O...", "....."},
	},
	ShapeJ: {
		{".....", ".O...", ".OOO.", ".....", "....."},
		{".....", "..OO.", "..O..", "..O..", "....."},
		{".....", ".....", ".OOO.", "...O.", "....."},
		{".....", "..O..", "..O..", ".OO..", "....."},
	},
	ShapeL: {
		{".....", "...O.", ".OOO.", ".....", "....."},
		{".....", "..O..", "..O..", "..OO.", "....."},
		{".....", ".....", ".OOO.", ".O...", "....."},
		{".....", ".OO..", "..O..", "..O..", "....."},
	},
	ShapeI: {
		{"..O..", "..O..", "..O..", "..O..", "....."},
		{".....", ".....", "OOOO.", ".....", "....."},
	},
	ShapeO: {
		{".....", ".....", ".OO..", ".OO..", "....."},
	},
	ShapeT: {
		{".....", "..O..", ".OOO.", ".....", "....."},
		{".....", "..O..", "..OO.", "..O..", "....."},
		{".....", ".....", ".OOO.", "..O..", "....."},
		{".....", "..O..", ".OO..", "..O..", "....."},
	},
}

// templates is the static lookup table built from shapeArt.
var templates [ShapeCount][]Template

func init() {
	for s, rotations := range shapeArt {
		templates[s] = make([]Template, len(rotations))
		for r, rows := range rotations {
			for y, row := range rows {
				for x, ch := range row {
					templates[s][r][y][x] = ch == 'O'
				}
			}
		}
	}
}

// Rotations returns the number of distinct orientations of the shape.
func (s Shape) Rotations() int {
	return len(templates[s])
}

// Template returns the occupancy pattern for the given rotation.
// The rotation is reduced modulo the shape's rotation count.
func (s Shape) Template(rotation int) *Template {
	n := len(templates[s])
	return &templates[s][((rotation%n)+n)%n]
}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// AllShapes returns every shape in table order.
func AllShapes() []Shape {
	return []Shape{ShapeS, ShapeZ, ShapeJ, ShapeL, ShapeI, ShapeO, ShapeT}
}
