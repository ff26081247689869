package highlight

import (
	"strconv"
	"strings"
)

// Color is one entry of the standard 16-color mIRC palette.
type Color struct {
	Code string // two digits, "00".."15"
	Name string
	Hex  string // approximate RGB used for terminal rendering
}

// Palette lists the mIRC colors in code order.
var Palette = []Color{
	{"00", "white", "#FFFFFF"},
	{"01", "black", "#000000"},
	{"02", "blue", "#00007F"},
	{"03", "green", "#009300"},
	{"04", "red", "#FF0000"},
	{"05", "brown", "#7F0000"},
	{"06", "purple", "#9C009C"},
	{"07", "orange", "#FC7F00"},
	{"08", "yellow", "#FFFF00"},
	{"09", "lightgreen", "#00FC00"},
	{"10", "cyan", "#009393"},
	{"11", "lightcyan", "#00FFFF"},
	{"12", "lightblue", "#0000FC"},
	{"13", "pink", "#FF00FF"},
	{"14", "grey", "#7F7F7F"},
	{"15", "lightgrey", "#D2D2D2"},
}

// LookupColor resolves a color name or numeric code. One-digit codes are
// padded to two digits so "4" and "04" are the same color.
func LookupColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, false
	}

	if n, err := strconv.Atoi(s); err == nil && len(s) <= 2 {
		if n >= 0 && n < len(Palette) {
			return Palette[n], true
		}
		return Color{}, false
	}

	switch s {
	case "gray":
		s = "grey"
	case "lightgray":
		s = "lightgrey"
	}
	for _, c := range Palette {
		if c.Name == s {
			return c, true
		}
	}
	return Color{}, false
}
