// Package host describes the chat client an addon runs inside.
//
// The API mirrors the print-event model of HexChat: an addon hooks named
// print events, receives the event's word list, and tells the client whether
// to continue with its own display by returning an Eat value. Clients that can
// carry per-line metadata additionally implement AttrsAPI.
package host

import (
	"errors"
	"time"
)

// Eat tells the host what to do with an event after a callback ran.
type Eat int

const (
	// EatNone lets the host and other callbacks see the event.
	EatNone Eat = iota
	// EatHost suppresses the host's own display of the event.
	EatHost
	// EatPlugin stops other callbacks from seeing the event.
	EatPlugin
	// EatAll is EatHost and EatPlugin together.
	EatAll
)

func (e Eat) String() string {
	switch e {
	case EatNone:
		return "none"
	case EatHost:
		return "host"
	case EatPlugin:
		return "plugin"
	case EatAll:
		return "all"
	default:
		return "unknown"
	}
}

// Print event names.
const (
	EventChannelMessage         = "Channel Message"
	EventChannelMsgHilight      = "Channel Msg Hilight"
	EventChannelAction          = "Channel Action"
	EventChannelActionHilight   = "Channel Action Hilight"
	EventChannelNotice          = "Channel Notice"
	EventPrivateMessage         = "Private Message"
	EventPrivateMessageToDialog = "Private Message to Dialog"
	EventYourMessage            = "Your Message"
	EventGenericMessage         = "Generic Message"
)

// ErrUnknownEvent is returned when hooking or emitting an event the host
// does not know.
var ErrUnknownEvent = errors.New("unknown print event")

// Attrs is metadata that travels with a printed line. Addons pass it through
// untouched.
type Attrs struct {
	Time  time.Time
	Extra map[string]string
}

// PrintCallback receives the word list of a print event.
type PrintCallback func(word []string) Eat

// PrintAttrsCallback receives the word list and attributes of a print event.
type PrintAttrsCallback func(word []string, attrs Attrs) Eat

// API is the minimal surface every host provides.
type API interface {
	HookPrint(event string, cb PrintCallback) error
	EmitPrint(event string, args ...string) error
	Print(text string)
}

// AttrsAPI is implemented by hosts that can hook and emit with attributes.
type AttrsAPI interface {
	API
	HookPrintAttrs(event string, cb PrintAttrsCallback) error
	EmitPrintAttrs(event string, attrs Attrs, args ...string) error
}
