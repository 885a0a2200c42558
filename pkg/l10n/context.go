// Package l10n resolves localizable text for widgets. A Context bundles a
// message Resolver with a locale accessor and is passed explicitly to
// converters and configurators; Default provides a process-wide instance for
// convenience only.
package l10n

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrMissingMessage is returned when no message exists for a code.
var ErrMissingMessage = errors.New("l10n: missing message")

// Resolver looks up the message template for code in locale.
type Resolver interface {
	Resolve(locale language.Tag, code string) (string, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(locale language.Tag, code string) (string, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(locale language.Tag, code string) (string, bool) {
	return f(locale, code)
}

// MissingHandler decides the text used when code has no message. fallback is
// the caller supplied default, possibly empty.
type MissingHandler func(locale language.Tag, code, fallback string) string

// Option configures a Context.
type Option func(*Context)

// WithResolver sets the message resolver.
func WithResolver(resolver Resolver) Option {
	return func(c *Context) { c.resolver = resolver }
}

// WithLocale fixes the locale.
func WithLocale(tag language.Tag) Option {
	return func(c *Context) {
		c.locale = func() language.Tag { return tag }
	}
}

// WithLocaleFunc reads the locale on every resolution, for applications
// whose locale changes at runtime.
func WithLocaleFunc(fn func() language.Tag) Option {
	return func(c *Context) {
		if fn != nil {
			c.locale = fn
		}
	}
}

// WithOnMissing overrides the missing message handling.
func WithOnMissing(fn MissingHandler) Option {
	return func(c *Context) { c.onMissing = fn }
}

// WithLogger sets the logger used to report missing messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Context resolves message codes for the current locale.
type Context struct {
	resolver  Resolver
	locale    func() language.Tag
	onMissing MissingHandler
	logger    *slog.Logger
}

// NewContext builds a Context. Without a resolver every lookup misses and
// falls back to the supplied default text.
func NewContext(opts ...Option) *Context {
	c := &Context{
		locale: func() language.Tag { return language.English },
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Locale returns the current locale.
func (c *Context) Locale() language.Tag {
	if c == nil || c.locale == nil {
		return language.English
	}
	return c.locale()
}

// Lookup resolves code and formats args into it. It fails with
// ErrMissingMessage when the resolver has no entry.
func (c *Context) Lookup(code string, args ...any) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: empty code", ErrMissingMessage)
	}
	if c == nil || c.resolver == nil {
		return "", fmt.Errorf("%w: %q (no resolver)", ErrMissingMessage, code)
	}
	locale := c.Locale()
	template, ok := c.resolver.Resolve(locale, code)
	if !ok || strings.TrimSpace(template) == "" {
		return "", fmt.Errorf("%w: %q for %s", ErrMissingMessage, code, locale)
	}
	return Format(locale, template, args...), nil
}

// Translate resolves code, falling back to fallback (or the code itself)
// when the message is missing.
func (c *Context) Translate(code, fallback string, args ...any) string {
	if strings.TrimSpace(code) == "" {
		return Format(c.Locale(), fallback, args...)
	}
	text, err := c.Lookup(code, args...)
	if err == nil {
		return text
	}

	locale := c.Locale()
	if c != nil {
		c.logger.Debug("l10n: message not found",
			slog.String("code", code),
			slog.String("locale", locale.String()),
		)
		if c.onMissing != nil {
			return c.onMissing(locale, code, fallback)
		}
	}
	if strings.TrimSpace(fallback) != "" {
		return Format(locale, fallback, args...)
	}
	return code
}

// Format expands args into template using locale aware number formatting.
// Templates without args are returned untouched.
func Format(locale language.Tag, template string, args ...any) string {
	if len(args) == 0 {
		return template
	}
	return message.NewPrinter(locale).Sprintf(template, args...)
}

var (
	defaultMu      sync.RWMutex
	defaultContext = NewContext()
)

// Default returns the process-wide Context.
func Default() *Context {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultContext
}

// SetDefault replaces the process-wide Context. A nil ctx resets it.
func SetDefault(ctx *Context) {
	if ctx == nil {
		ctx = NewContext()
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultContext = ctx
}

// OrDefault returns ctx, or Default when ctx is nil.
func OrDefault(ctx *Context) *Context {
	if ctx != nil {
		return ctx
	}
	return Default()
}
