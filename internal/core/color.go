package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Neon palette for arena elements.
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
	ColorBrightYellow
	ColorBrightMagenta
	ColorBrightCyan
	ColorOrange
	ColorGray
	ColorDim
)

// String returns the color name, used in snapshots and the spectator feed.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorBrightRed:
		return "bright-red"
	case ColorBrightYellow:
		return "bright-yellow"
	case ColorBrightMagenta:
		return "bright-magenta"
	case ColorBrightCyan:
		return "bright-cyan"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "gray"
	case ColorDim:
		return "dim"
	default:
		return "default"
	}
}
