package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")) // White
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	grayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // Gray
)

// colorsEnabled controls whether output is colorized.
var colorsEnabled = true

// SetColorsEnabled enables or disables color output.
func SetColorsEnabled(enabled bool) {
	colorsEnabled = enabled
}

// ColorsEnabled reports whether output is colorized.
func ColorsEnabled() bool {
	return colorsEnabled
}

func styled(s lipgloss.Style, text string) string {
	if !colorsEnabled {
		return text
	}
	return s.Render(text)
}

// Setting is one key/value pair shown by FormatSettings.
type Setting struct {
	Key   string
	Value any
}

// FormatSettings formats settings as colorized "key: value" lines, keeping
// the given order.
func FormatSettings(settings []Setting) string {
	var sb strings.Builder
	for _, s := range settings {
		var v string
		switch val := s.Value.(type) {
		case []string:
			v = "[" + strings.Join(val, ", ") + "]"
		default:
			v = fmt.Sprint(val)
		}
		sb.WriteString(styled(keyStyle, s.Key) + ": " + styled(valueStyle, v) + "\n")
	}
	return sb.String()
}

// Success formats a success message with a green checkmark prefix.
func Success(msg string) string {
	return styled(successStyle, "✓ ") + msg
}

// Error formats an error message with a red X prefix.
func Error(msg string) string {
	return styled(errorStyle, "✗ ") + msg
}

// Warning formats a warning message with a yellow warning prefix.
func Warning(msg string) string {
	return styled(warningStyle, "⚠ ") + msg
}

// Gray returns gray-styled text.
func Gray(text string) string {
	return styled(grayStyle, text)
}
