// Package highlight wraps configured words in mIRC color codes.
//
// A Highlighter is built once from a word list and is read-only afterwards,
// so a single instance can serve every incoming message. Matching is always
// case-insensitive and the matched text keeps its original casing. Whole-word
// matching uses RE2's \b, which only knows ASCII word characters.
package highlight

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// mIRC/HexChat control codes. They are written to the output verbatim.
const (
	// ColorIntro starts a color sequence; it is followed by a two digit code.
	ColorIntro = "\x03"
	// Reset clears all formatting.
	Reset = "\x0f"
)

// ErrCompile is returned by New when a word cannot be turned into a pattern.
var ErrCompile = errors.New("compile highlight pattern")

// Mode selects how multiple patterns are applied to a line.
type Mode string

const (
	// ModeSequential applies each pattern, in configuration order, to the
	// output of the previous one. Later patterns can therefore match inside
	// text (or control codes) inserted by earlier ones.
	ModeSequential Mode = "sequential"
	// ModeCombined matches all patterns in a single leftmost-first pass and
	// never rescans inserted text.
	ModeCombined Mode = "combined"
)

// ValidModes returns the accepted Mode values.
func ValidModes() []Mode {
	return []Mode{ModeSequential, ModeCombined}
}

// Rule is one configured target word.
type Rule struct {
	Word      string
	WholeWord bool
}

func (r Rule) expr() string {
	if r.WholeWord {
		return `\b(` + regexp.QuoteMeta(r.Word) + `)\b`
	}
	return `(` + regexp.QuoteMeta(r.Word) + `)`
}

type pattern struct {
	rule Rule
	re   *regexp.Regexp
}

// Highlighter holds the compiled patterns and the color to apply.
type Highlighter struct {
	patterns  []pattern
	combined  *regexp.Regexp
	colorCode string
	wholeWord bool
	mode      Mode
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithMode selects the pattern application mode. The default is ModeSequential.
func WithMode(m Mode) Option {
	return func(h *Highlighter) {
		h.mode = m
	}
}

// New compiles one pattern per non-empty word, keeping configuration order.
// An empty word list produces a Highlighter that never changes anything.
func New(words []string, colorCode string, wholeWord bool, opts ...Option) (*Highlighter, error) {
	h := &Highlighter{
		colorCode: colorCode,
		wholeWord: wholeWord,
		mode:      ModeSequential,
	}
	for _, opt := range opts {
		opt(h)
	}

	switch h.mode {
	case ModeSequential, ModeCombined:
	default:
		return nil, fmt.Errorf("unknown match mode %q", h.mode)
	}

	alts := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		rule := Rule{Word: w, WholeWord: wholeWord}
		re, err := regexp.Compile("(?i)" + rule.expr())
		if err != nil {
			return nil, fmt.Errorf("%w for %q: %v", ErrCompile, w, err)
		}
		h.patterns = append(h.patterns, pattern{rule: rule, re: re})
		alts = append(alts, "(?:"+rule.expr()+")")
	}

	if h.mode == ModeCombined && len(alts) > 0 {
		re, err := regexp.Compile("(?i)" + strings.Join(alts, "|"))
		if err != nil {
			return nil, fmt.Errorf("%w: combined: %v", ErrCompile, err)
		}
		h.combined = re
	}

	return h, nil
}

// Len returns the number of compiled patterns.
func (h *Highlighter) Len() int {
	return len(h.patterns)
}

// Words returns the configured words in order.
func (h *Highlighter) Words() []string {
	words := make([]string, len(h.patterns))
	for i, p := range h.patterns {
		words[i] = p.rule.Word
	}
	return words
}

// ColorCode returns the color code inserted after ColorIntro.
func (h *Highlighter) ColorCode() string { return h.colorCode }

// WholeWord reports whether matches must sit on word boundaries.
func (h *Highlighter) WholeWord() bool { return h.wholeWord }

// Mode returns the pattern application mode.
func (h *Highlighter) Mode() Mode { return h.mode }

// WouldMatch reports whether any pattern matches anywhere in line.
func (h *Highlighter) WouldMatch(line string) bool {
	for _, p := range h.patterns {
		if p.re.MatchString(line) {
			return true
		}
	}
	return false
}

// AlreadyFormatted reports whether line already carries a color code.
func AlreadyFormatted(line string) bool {
	return strings.Contains(line, ColorIntro)
}

// AlreadyFormatted reports whether line already carries a color code.
func (h *Highlighter) AlreadyFormatted(line string) bool {
	return AlreadyFormatted(line)
}

func (h *Highlighter) wrap(match string) string {
	return ColorIntro + h.colorCode + match + Reset
}

// Highlight wraps every match in the configured color. It does not look at
// existing formatting; use Apply for the full decision.
func (h *Highlighter) Highlight(line string) string {
	if h.mode == ModeCombined {
		if h.combined == nil {
			return line
		}
		return h.combined.ReplaceAllStringFunc(line, h.wrap)
	}

	for _, p := range h.patterns {
		line = p.re.ReplaceAllStringFunc(line, h.wrap)
	}
	return line
}

// Apply runs the full decision for one message. It returns the highlighted
// line and true when the message should be replaced, or the input and false
// when the host should display the original.
func (h *Highlighter) Apply(line string) (string, bool) {
	if len(h.patterns) == 0 || !h.WouldMatch(line) {
		return line, false
	}
	if AlreadyFormatted(line) {
		return line, false
	}
	out := h.Highlight(line)
	if out == line {
		return line, false
	}
	return out, true
}
