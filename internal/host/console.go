package host

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/seabearDEV/hlwords/internal/format"
)

// maxEmitDepth bounds callbacks that emit the event they are hooked to.
const maxEmitDepth = 8

// KnownEvents lists the print events a Console understands, in the order
// they are documented.
func KnownEvents() []string {
	return []string{
		EventChannelMessage,
		EventChannelMsgHilight,
		EventChannelAction,
		EventChannelActionHilight,
		EventChannelNotice,
		EventPrivateMessage,
		EventPrivateMessageToDialog,
		EventYourMessage,
		EventGenericMessage,
	}
}

type hook struct {
	plain     PrintCallback
	withAttrs PrintAttrsCallback
}

func (h hook) call(word []string, attrs Attrs) Eat {
	if h.withAttrs != nil {
		return h.withAttrs(word, attrs)
	}
	return h.plain(word)
}

// Console is a line-oriented host. Events arrive as text lines and the
// display is an io.Writer. It is not safe for concurrent use.
//
// Input lines are "nick<TAB>message" for a Channel Message, or
// "event<TAB>nick<TAB>message" where event is one of KnownEvents. A line
// without a tab reaches callbacks as a single-element word list.
type Console struct {
	out        io.Writer
	status     io.Writer
	render     bool
	timestamps bool
	now        func() time.Time
	events     map[string]bool
	hooks      map[string][]hook
	depth      int
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithRender renders mIRC formatting as terminal styling instead of writing
// the raw control codes.
func WithRender(render bool) ConsoleOption {
	return func(c *Console) {
		c.render = render
	}
}

// WithStatus sends Print output to w instead of the display writer.
func WithStatus(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.status = w
	}
}

// WithTimestamps prefixes displayed lines with the event time.
func WithTimestamps(on bool) ConsoleOption {
	return func(c *Console) {
		c.timestamps = on
	}
}

// WithClock sets the time source for event attributes.
func WithClock(now func() time.Time) ConsoleOption {
	return func(c *Console) {
		c.now = now
	}
}

// WithEvents restricts the events the console knows about.
func WithEvents(names ...string) ConsoleOption {
	return func(c *Console) {
		c.events = make(map[string]bool, len(names))
		for _, n := range names {
			c.events[n] = true
		}
	}
}

// NewConsole creates a Console writing display lines to out.
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		out:    out,
		now:    time.Now,
		events: make(map[string]bool),
		hooks:  make(map[string][]hook),
	}
	for _, name := range KnownEvents() {
		c.events[name] = true
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Plain returns a view of the console without the attrs capability, as seen
// by addons built against older clients.
func (c *Console) Plain() API {
	return plainConsole{c}
}

type plainConsole struct {
	c *Console
}

func (p plainConsole) HookPrint(event string, cb PrintCallback) error {
	return p.c.HookPrint(event, cb)
}

func (p plainConsole) EmitPrint(event string, args ...string) error {
	return p.c.EmitPrint(event, args...)
}

func (p plainConsole) Print(text string) {
	p.c.Print(text)
}

func (c *Console) known(event string) error {
	if !c.events[event] {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return nil
}

// HookPrint registers cb for event.
func (c *Console) HookPrint(event string, cb PrintCallback) error {
	if err := c.known(event); err != nil {
		return err
	}
	c.hooks[event] = append(c.hooks[event], hook{plain: cb})
	return nil
}

// HookPrintAttrs registers cb for event, receiving attributes.
func (c *Console) HookPrintAttrs(event string, cb PrintAttrsCallback) error {
	if err := c.known(event); err != nil {
		return err
	}
	c.hooks[event] = append(c.hooks[event], hook{withAttrs: cb})
	return nil
}

// EmitPrint prints event as if it had arrived now. Hooks for event run first.
func (c *Console) EmitPrint(event string, args ...string) error {
	return c.EmitPrintAttrs(event, Attrs{Time: c.now()}, args...)
}

// EmitPrintAttrs prints event with the given attributes. Hooks for event run
// first.
func (c *Console) EmitPrintAttrs(event string, attrs Attrs, args ...string) error {
	if err := c.known(event); err != nil {
		return err
	}
	if c.depth >= maxEmitDepth {
		return fmt.Errorf("emit %q: nested too deep", event)
	}
	c.depth++
	defer func() { c.depth-- }()
	return c.fire(event, args, attrs)
}

// Print writes text to the status writer, or the display when none is set.
func (c *Console) Print(text string) {
	if c.status != nil {
		_, _ = fmt.Fprintln(c.status, format.StripIRC(text))
		return
	}
	_ = c.writeLine(text)
}

// Dispatch parses one input line and fires the event it describes. Empty
// lines are ignored.
func (c *Console) Dispatch(line string) error {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil
	}
	event, word := c.ParseLine(line)
	return c.fire(event, word, Attrs{Time: c.now()})
}

// ParseLine splits an input line into its event name and word list.
func (c *Console) ParseLine(line string) (string, []string) {
	if name, rest, ok := strings.Cut(line, "\t"); ok && c.events[name] {
		return name, strings.SplitN(rest, "\t", 2)
	}
	return EventChannelMessage, strings.SplitN(line, "\t", 2)
}

// Run dispatches every line read from r until EOF or ctx is done.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Dispatch(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (c *Console) fire(event string, word []string, attrs Attrs) error {
	suppressed := false
	for _, h := range c.hooks[event] {
		eat := h.call(word, attrs)
		if eat == EatHost || eat == EatAll {
			suppressed = true
		}
		if eat == EatPlugin || eat == EatAll {
			break
		}
	}
	if suppressed {
		return nil
	}
	return c.display(event, word, attrs)
}

func (c *Console) display(event string, word []string, attrs Attrs) error {
	var text string
	switch {
	case len(word) < 2:
		text = strings.Join(word, " ")
	case event == EventChannelAction || event == EventChannelActionHilight:
		text = "* " + word[0] + " " + word[1]
	case event == EventChannelNotice:
		text = "-" + word[0] + "- " + word[1]
	case event == EventPrivateMessage:
		text = "*" + word[0] + "* " + word[1]
	default:
		text = "<" + word[0] + "> " + word[1]
	}

	if c.timestamps && !attrs.Time.IsZero() {
		text = attrs.Time.Format("[15:04:05] ") + text
	}
	return c.writeLine(text)
}

func (c *Console) writeLine(text string) error {
	if c.render {
		text = format.RenderIRC(text)
	}
	_, err := fmt.Fprintln(c.out, text)
	return err
}
