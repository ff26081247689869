// Package addon connects a Highlighter to a chat host.
//
// Register negotiates the host's capabilities once, hooks the message events
// and re-emits highlighted messages as Generic Message lines. The text
// transformation itself lives in package highlight and knows nothing about
// the host.
package addon

import (
	"errors"
	"fmt"

	"github.com/seabearDEV/hlwords/internal/highlight"
	"github.com/seabearDEV/hlwords/internal/host"
	"github.com/seabearDEV/hlwords/internal/logging"
)

// Info identifies the addon to the host.
type Info struct {
	Name        string
	Version     string
	Description string
}

// DefaultInfo is the addon's identity.
var DefaultInfo = Info{
	Name:        "Highlight Words",
	Version:     "0.5",
	Description: "Highlight identified words in red font",
}

// Events returns the message events the addon hooks, in hook order.
func Events() []string {
	return []string{
		host.EventChannelMessage,
		host.EventChannelMsgHilight,
		host.EventChannelAction,
		host.EventChannelActionHilight,
	}
}

// privateEvents are tried in order; the first one the host accepts is hooked.
var privateEvents = []string{
	host.EventPrivateMessageToDialog,
	host.EventPrivateMessage,
}

// emitter re-displays a highlighted line.
type emitter func(nick, text string, attrs host.Attrs) error

// Addon is a Highlighter registered with a host.
type Addon struct {
	info   Info
	h      *highlight.Highlighter
	logger *logging.Logger
	emit   emitter
	attrs  bool
	hooked []string
}

// Option configures Register.
type Option func(*Addon)

// WithLogger sets the logger used for registration and emit failures.
func WithLogger(l *logging.Logger) Option {
	return func(a *Addon) {
		a.logger = l
	}
}

// WithInfo overrides the addon identity printed at startup.
func WithInfo(info Info) Option {
	return func(a *Addon) {
		a.info = info
	}
}

// Handle runs the highlight decision on an event word list. It returns
// ok=false when the host should display the original event: the payload is
// malformed or nothing would change.
func Handle(h *highlight.Highlighter, word []string) (nick, text string, ok bool) {
	if h == nil || len(word) < 2 {
		return "", "", false
	}
	text, ok = h.Apply(word[1])
	if !ok {
		return "", "", false
	}
	return word[0], text, true
}

// Register hooks the message events on api and prints the startup line.
// Hosts implementing host.AttrsAPI get attribute-preserving callbacks.
func Register(h *highlight.Highlighter, api host.API, opts ...Option) (*Addon, error) {
	a := &Addon{
		info:   DefaultInfo,
		h:      h,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	var hookFn func(event string) error
	if attrsAPI, ok := api.(host.AttrsAPI); ok {
		a.attrs = true
		a.emit = func(nick, text string, attrs host.Attrs) error {
			return attrsAPI.EmitPrintAttrs(host.EventGenericMessage, attrs, nick, text)
		}
		hookFn = func(event string) error {
			return attrsAPI.HookPrintAttrs(event, a.onPrintAttrs)
		}
	} else {
		a.emit = func(nick, text string, _ host.Attrs) error {
			return api.EmitPrint(host.EventGenericMessage, nick, text)
		}
		hookFn = func(event string) error {
			return api.HookPrint(event, a.onPrint)
		}
	}

	for _, event := range Events() {
		if err := hookFn(event); err != nil {
			return nil, fmt.Errorf("hook %q: %w", event, err)
		}
		a.hooked = append(a.hooked, event)
	}

	var privErr error
	for _, event := range privateEvents {
		err := hookFn(event)
		if err == nil {
			a.hooked = append(a.hooked, event)
			privErr = nil
			break
		}
		a.logger.Debug("private message event not available", "event", event, "error", err)
		privErr = errors.Join(privErr, err)
	}
	if privErr != nil {
		a.logger.Warn("no private message event hooked", "error", privErr)
	}

	if err := hookFn(host.EventYourMessage); err != nil {
		return nil, fmt.Errorf("hook %q: %w", host.EventYourMessage, err)
	}
	a.hooked = append(a.hooked, host.EventYourMessage)

	a.logger.Info("addon registered",
		"words", h.Len(),
		"color", h.ColorCode(),
		"whole_words", h.WholeWord(),
		"mode", string(h.Mode()),
		"attrs", a.attrs,
		"events", a.hooked,
	)
	api.Print(a.StartupLine())

	return a, nil
}

// StartupLine is the message printed to the host when the addon loads.
func (a *Addon) StartupLine() string {
	return fmt.Sprintf("%s %s loaded (attrs=%t)", a.info.Name, a.info.Version, a.attrs)
}

// Attrs reports whether the attribute-preserving host API was negotiated.
func (a *Addon) Attrs() bool {
	return a.attrs
}

// Hooked returns the events the addon is hooked to, in hook order.
func (a *Addon) Hooked() []string {
	return append([]string(nil), a.hooked...)
}

func (a *Addon) onPrint(word []string) host.Eat {
	return a.handle(word, host.Attrs{})
}

func (a *Addon) onPrintAttrs(word []string, attrs host.Attrs) host.Eat {
	return a.handle(word, attrs)
}

func (a *Addon) handle(word []string, attrs host.Attrs) host.Eat {
	nick, text, ok := Handle(a.h, word)
	if !ok {
		return host.EatNone
	}
	if err := a.emit(nick, text, attrs); err != nil {
		a.logger.Error("re-emit highlighted message", "nick", nick, "error", err)
		return host.EatNone
	}
	return host.EatHost
}
