package addon

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/seabearDEV/hlwords/internal/highlight"
	"github.com/seabearDEV/hlwords/internal/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	event string
	attrs host.Attrs
	args  []string
}

// plainHost records calls and only implements host.API.
type plainHost struct {
	hooks   map[string]host.PrintCallback
	order   []string
	reject  map[string]bool
	emitted []emitted
	printed []string
	emitErr error
}

func newPlainHost(reject ...string) *plainHost {
	p := &plainHost{
		hooks:  make(map[string]host.PrintCallback),
		reject: make(map[string]bool),
	}
	for _, r := range reject {
		p.reject[r] = true
	}
	return p
}

func (p *plainHost) HookPrint(event string, cb host.PrintCallback) error {
	if p.reject[event] {
		return host.ErrUnknownEvent
	}
	p.hooks[event] = cb
	p.order = append(p.order, event)
	return nil
}

func (p *plainHost) EmitPrint(event string, args ...string) error {
	if p.emitErr != nil {
		return p.emitErr
	}
	p.emitted = append(p.emitted, emitted{event: event, args: args})
	return nil
}

func (p *plainHost) Print(text string) {
	p.printed = append(p.printed, text)
}

// attrsHost adds the attrs capability.
type attrsHost struct {
	*plainHost
	attrHooks map[string]host.PrintAttrsCallback
}

func newAttrsHost() *attrsHost {
	return &attrsHost{
		plainHost: newPlainHost(),
		attrHooks: make(map[string]host.PrintAttrsCallback),
	}
}

func (a *attrsHost) HookPrintAttrs(event string, cb host.PrintAttrsCallback) error {
	a.attrHooks[event] = cb
	a.order = append(a.order, event)
	return nil
}

func (a *attrsHost) EmitPrintAttrs(event string, attrs host.Attrs, args ...string) error {
	a.emitted = append(a.emitted, emitted{event: event, attrs: attrs, args: args})
	return nil
}

func newHighlighter(t *testing.T, words ...string) *highlight.Highlighter {
	t.Helper()
	h, err := highlight.New(words, "04", false)
	require.NoError(t, err)
	return h
}

func TestHandle(t *testing.T) {
	h := newHighlighter(t, "example", "highlight")

	tests := []struct {
		name     string
		word     []string
		wantNick string
		wantText string
		wantOK   bool
	}{
		{"replace", []string{"alice", "an Example"}, "alice", "an \x0304Example\x0f", true},
		{"extra fields ignored", []string{"bob", "highlight", "@"}, "bob", "\x0304highlight\x0f", true},
		{"no match", []string{"alice", "hello"}, "", "", false},
		{"already formatted", []string{"alice", "\x0302example"}, "", "", false},
		{"missing message", []string{"alice"}, "", "", false},
		{"empty payload", nil, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nick, text, ok := Handle(h, tt.word)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantNick, nick)
			assert.Equal(t, tt.wantText, text)
		})
	}

	_, _, ok := Handle(nil, []string{"alice", "example"})
	assert.False(t, ok, "nil highlighter never replaces")
}

func TestRegisterPlainHost(t *testing.T) {
	api := newPlainHost()
	a, err := Register(newHighlighter(t, "example"), api)
	require.NoError(t, err)

	assert.False(t, a.Attrs())
	assert.Equal(t, []string{
		host.EventChannelMessage,
		host.EventChannelMsgHilight,
		host.EventChannelAction,
		host.EventChannelActionHilight,
		host.EventPrivateMessageToDialog,
		host.EventYourMessage,
	}, a.Hooked())
	assert.Equal(t, a.Hooked(), api.order)
	assert.Equal(t, []string{"Highlight Words 0.5 loaded (attrs=false)"}, api.printed)

	cb := api.hooks[host.EventChannelMessage]
	assert.Equal(t, host.EatHost, cb([]string{"alice", "an example"}))
	require.Len(t, api.emitted, 1)
	assert.Equal(t, host.EventGenericMessage, api.emitted[0].event)
	assert.Equal(t, []string{"alice", "an \x0304example\x0f"}, api.emitted[0].args)

	assert.Equal(t, host.EatNone, cb([]string{"alice", "nothing"}))
	assert.Equal(t, host.EatNone, cb([]string{"alice"}))
	assert.Len(t, api.emitted, 1)
}

func TestRegisterAttrsHost(t *testing.T) {
	api := newAttrsHost()
	a, err := Register(newHighlighter(t, "cat"), api)
	require.NoError(t, err)

	assert.True(t, a.Attrs())
	assert.Empty(t, api.hooks, "plain hooks must not be used when attrs are available")
	assert.Len(t, api.attrHooks, 6)
	assert.Equal(t, []string{"Highlight Words 0.5 loaded (attrs=true)"}, api.printed)

	attrs := host.Attrs{
		Time:  time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Extra: map[string]string{"account": "alice"},
	}
	eat := api.attrHooks[host.EventYourMessage]([]string{"me", "a cat ran"}, attrs)
	assert.Equal(t, host.EatHost, eat)
	require.Len(t, api.emitted, 1)
	assert.Equal(t, attrs, api.emitted[0].attrs, "attributes pass through unmodified")
	assert.Equal(t, []string{"me", "a \x0304cat\x0f ran"}, api.emitted[0].args)
}

func TestRegisterPrivateMessageFallback(t *testing.T) {
	api := newPlainHost(host.EventPrivateMessageToDialog)
	a, err := Register(newHighlighter(t, "x"), api)
	require.NoError(t, err)
	assert.Contains(t, a.Hooked(), host.EventPrivateMessage)
	assert.NotContains(t, a.Hooked(), host.EventPrivateMessageToDialog)

	api = newPlainHost(host.EventPrivateMessageToDialog, host.EventPrivateMessage)
	a, err = Register(newHighlighter(t, "x"), api)
	require.NoError(t, err, "missing private events are not fatal")
	assert.Len(t, a.Hooked(), 5)
}

func TestRegisterHookFailure(t *testing.T) {
	api := newPlainHost(host.EventChannelAction)
	_, err := Register(newHighlighter(t, "x"), api)
	require.Error(t, err)
	assert.True(t, errors.Is(err, host.ErrUnknownEvent))
	assert.Empty(t, api.printed)
}

func TestEmitFailureFallsBackToOriginal(t *testing.T) {
	api := newPlainHost()
	api.emitErr = errors.New("display closed")
	_, err := Register(newHighlighter(t, "example"), api)
	require.NoError(t, err)

	eat := api.hooks[host.EventChannelMessage]([]string{"alice", "example"})
	assert.Equal(t, host.EatNone, eat)
}

func TestEmptyConfigurationNeverReplaces(t *testing.T) {
	api := newPlainHost()
	_, err := Register(newHighlighter(t), api)
	require.NoError(t, err)

	for _, event := range api.order {
		assert.Equal(t, host.EatNone, api.hooks[event]([]string{"alice", "example highlight"}))
	}
	assert.Empty(t, api.emitted)
}

func TestWithInfo(t *testing.T) {
	api := newPlainHost()
	_, err := Register(newHighlighter(t, "x"), api, WithInfo(Info{Name: "HW", Version: "1.0"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"HW 1.0 loaded (attrs=false)"}, api.printed)
}

func TestConsoleEndToEnd(t *testing.T) {
	tests := []struct {
		name  string
		plain bool
		input string
		want  string
	}{
		{"attrs", false, "alice\tthis is an Example of highlighting", "<alice> this is an \x0304Example\x0f of \x0304highlight\x0fing\n"},
		{"plain", true, "Channel Action\tbob\twaves an example", "<bob> waves an \x0304example\x0f\n"},
		{"untouched", false, "alice\thello", "<alice> hello\n"},
		{"malformed", false, "example without a nick", "example without a nick\n"},
		{"formatted", false, "alice\t\x0303example", "<alice> \x0303example\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			console := host.NewConsole(&out)
			var api host.API = console
			if tt.plain {
				api = console.Plain()
			}
			a, err := Register(newHighlighter(t, "example", "highlight"), api)
			require.NoError(t, err)
			assert.Equal(t, !tt.plain, a.Attrs())

			out.Reset()
			require.NoError(t, console.Dispatch(tt.input))
			assert.Equal(t, tt.want, out.String())
		})
	}
}
