package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

var colorNames = map[Color]string{
	ColorDefault:      "default",
	ColorRed:          "red",
	ColorGreen:        "green",
	ColorYellow:       "yellow",
	ColorMagenta:      "magenta",
	ColorCyan:         "cyan",
	ColorWhite:        "white",
	ColorBrightYellow: "bright-yellow",
	ColorBrightCyan:   "bright-cyan",
	ColorBrightWhite:  "bright-white",
	ColorOrange:       "orange",
	ColorGray:         "gray",
	ColorDarkGray:     "dark-gray",
}

// String returns the lower-case color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}
