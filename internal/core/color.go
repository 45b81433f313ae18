package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// BlockColors is the palette for settled and falling blocks, indexed by a
// piece color index. The first four match the classic blue, green, red and
// yellow set.
var BlockColors = []Color{
	ColorBrightBlue,
	ColorBrightGreen,
	ColorBrightRed,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorOrange,
}

// BlockColor returns the palette color for a piece color index.
func BlockColor(i int) Color {
	if i < 0 {
		return ColorDefault
	}
	return BlockColors[i%len(BlockColors)]
}
