package core

// Color is a foreground color for a screen cell. The zero value leaves
// the terminal's own foreground untouched.
type Color uint8

// Palette used by the board, HUD and confetti.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightBlue
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
	ColorGold
	ColorSky
	ColorNavy
	ColorSilver
)

// ansiCodes holds the ANSI 256-color index for each palette entry.
var ansiCodes = [...]string{
	ColorDefault:     "",
	ColorGreen:       "2",
	ColorYellow:      "3",
	ColorBlue:        "4",
	ColorCyan:        "6",
	ColorWhite:       "7",
	ColorBrightRed:   "9",
	ColorBrightGreen: "10",
	ColorBrightBlue:  "12",
	ColorBrightCyan:  "14",
	ColorBrightWhite: "15",
	ColorGray:        "245",
	ColorGold:        "220",
	ColorSky:         "117",
	ColorNavy:        "18",
	ColorSilver:      "250",
}

// Palette returns every color in declaration order.
func Palette() []Color {
	out := make([]Color, len(ansiCodes))
	for i := range ansiCodes {
		out[i] = Color(i)
	}
	return out
}

// ANSI returns the 256-color index as a string, or "" for ColorDefault
// and unknown values.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) {
		return ""
	}
	return ansiCodes[c]
}
