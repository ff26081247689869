package format

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/seabearDEV/hlwords/internal/highlight"
)

// mIRC formatting control bytes.
const (
	ircBold          = '\x02'
	ircColor         = '\x03'
	ircReset         = '\x0f'
	ircReverse       = '\x16'
	ircItalic        = '\x1d'
	ircStrikethrough = '\x1e'
	ircUnderline     = '\x1f'
)

type ircState struct {
	fg, bg                                         string
	bold, italic, underline, reverse, strikethrough bool
}

func (s ircState) plain() bool {
	return s == ircState{}
}

func (s ircState) style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := highlight.LookupColor(s.fg); ok {
		st = st.Foreground(lipgloss.Color(c.Hex))
	}
	if c, ok := highlight.LookupColor(s.bg); ok {
		st = st.Background(lipgloss.Color(c.Hex))
	}
	return st.
		Bold(s.bold).
		Italic(s.italic).
		Underline(s.underline).
		Reverse(s.reverse).
		Strikethrough(s.strikethrough)
}

// readDigits returns up to two ASCII digits from the start of s.
func readDigits(s string) string {
	n := 0
	for n < len(s) && n < 2 && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return s[:n]
}

// walkIRC splits s into runs of text sharing the same formatting state.
func walkIRC(s string, emit func(text string, st ircState)) {
	var st ircState
	var run strings.Builder

	flush := func() {
		if run.Len() > 0 {
			emit(run.String(), st)
			run.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch s[i] {
		case ircBold:
			flush()
			st.bold = !st.bold
			i++
		case ircItalic:
			flush()
			st.italic = !st.italic
			i++
		case ircUnderline:
			flush()
			st.underline = !st.underline
			i++
		case ircReverse:
			flush()
			st.reverse = !st.reverse
			i++
		case ircStrikethrough:
			flush()
			st.strikethrough = !st.strikethrough
			i++
		case ircReset:
			flush()
			st = ircState{}
			i++
		case ircColor:
			flush()
			i++
			fg := readDigits(s[i:])
			if fg == "" {
				st.fg, st.bg = "", ""
				continue
			}
			i += len(fg)
			st.fg = fg
			if i+1 < len(s) && s[i] == ',' {
				if bg := readDigits(s[i+1:]); bg != "" {
					st.bg = bg
					i += 1 + len(bg)
				}
			}
		default:
			run.WriteByte(s[i])
			i++
		}
	}
	flush()
}

// StripIRC removes mIRC formatting codes, leaving only the text.
func StripIRC(s string) string {
	var sb strings.Builder
	walkIRC(s, func(text string, _ ircState) {
		sb.WriteString(text)
	})
	return sb.String()
}

// RenderIRC converts mIRC formatting into terminal styling. When colors are
// disabled the codes are stripped instead.
func RenderIRC(s string) string {
	if !colorsEnabled {
		return StripIRC(s)
	}
	var sb strings.Builder
	walkIRC(s, func(text string, st ircState) {
		if st.plain() {
			sb.WriteString(text)
			return
		}
		sb.WriteString(st.style().Render(text))
	})
	return sb.String()
}

// ColorSwatch renders a palette color name in its own color.
func ColorSwatch(c highlight.Color) string {
	return RenderIRC(highlight.ColorIntro + c.Code + c.Name + highlight.Reset)
}
