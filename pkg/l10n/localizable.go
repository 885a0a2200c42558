package l10n

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/native"
)

// Localizable is text that is either literal or resolved from a message
// code. Message is the literal text, or the fallback when Code is set.
type Localizable struct {
	Message string
	Code    string
	Args    []any
}

// Text returns literal text.
func Text(message string) Localizable {
	return Localizable{Message: message}
}

// Code returns text resolved from code, falling back to fallback.
func Code(code, fallback string, args ...any) Localizable {
	return Localizable{Code: code, Message: fallback, Args: args}
}

// IsZero reports whether l carries neither text nor a code.
func (l Localizable) IsZero() bool {
	return strings.TrimSpace(l.Message) == "" && strings.TrimSpace(l.Code) == ""
}

// Resolve renders l with ctx (or Default when ctx is nil).
func (l Localizable) Resolve(ctx *Context) string {
	ctx = OrDefault(ctx)
	if strings.TrimSpace(l.Code) == "" {
		return Format(ctx.Locale(), l.Message, l.Args...)
	}
	return ctx.Translate(l.Code, l.Message, l.Args...)
}

// OnFirstAttach runs fn once, the first time widget is attached to its
// presentation tree. Widgets already attached, or unable to report
// attachment, run fn immediately. The returned Registration cancels a
// pending call; after fn ran it does nothing.
func OnFirstAttach(widget any, fn func()) event.Registration {
	if fn == nil {
		return event.Noop
	}
	attachable, ok := widget.(native.Attachable)
	if !ok || attachable.IsAttached() {
		fn()
		return event.Noop
	}

	var reg event.Registration
	reg = attachable.AddAttachListener(func() {
		reg.Remove()
		fn()
	})
	return reg
}

// Apply runs resolve with ctx either now or, when deferred is set, on the
// first attach of widget.
func Apply(ctx *Context, deferred bool, widget any, resolve func(*Context)) event.Registration {
	if resolve == nil {
		return event.Noop
	}
	run := func() { resolve(OrDefault(ctx)) }
	if !deferred {
		run()
		return event.Noop
	}
	return OnFirstAttach(widget, run)
}
