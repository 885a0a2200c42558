package configurator

import (
	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/l10n"
	"github.com/goliatone/go-formbind/pkg/property"
)

// textSetter applies localizable text through a setter, now or on first
// attach. Setting new text cancels a pending deferred resolution.
type textSetter struct {
	widget  any
	loc     *Localization
	set     func(string)
	pending event.Registration
	value   l10n.Localizable
}

func newTextSetter(widget any, loc *Localization, set func(string)) textSetter {
	return textSetter{widget: widget, loc: loc, set: set}
}

func (t *textSetter) apply(value l10n.Localizable) {
	if t.pending != nil {
		t.pending.Remove()
		t.pending = nil
	}
	t.value = value
	if t.set == nil {
		return
	}
	set := t.set
	t.pending = l10n.Apply(t.loc.Context(), t.loc.Deferred(), t.widget, func(ctx *l10n.Context) {
		set(SanitizeText(value.Resolve(ctx)))
	})
}

func setterOr(set func(string), fallback property.Handler[string]) func(string) {
	if set != nil {
		return set
	}
	return fallback.Set
}

// LabelConfigurator sets the widget caption.
type LabelConfigurator[B any] struct {
	owner B
	text  textSetter
}

// NewLabel configures the label of widget. A nil set writes through
// native.HasLabel when the widget implements it.
func NewLabel[B any](owner B, widget any, loc *Localization, set func(string)) LabelConfigurator[B] {
	return LabelConfigurator[B]{
		owner: owner,
		text:  newTextSetter(widget, loc, setterOr(set, property.Label(widget))),
	}
}

// Label sets literal label text.
func (c *LabelConfigurator[B]) Label(text string) B {
	c.text.apply(l10n.Text(text))
	return c.owner
}

// LabelCode sets label text resolved from a message code.
func (c *LabelConfigurator[B]) LabelCode(code, fallback string, args ...any) B {
	c.text.apply(l10n.Code(code, fallback, args...))
	return c.owner
}

// LabelText returns the configured label source.
func (c *LabelConfigurator[B]) LabelText() l10n.Localizable { return c.text.value }

// PlaceholderConfigurator sets the hint shown inside an empty widget.
type PlaceholderConfigurator[B any] struct {
	owner B
	text  textSetter
}

// NewPlaceholder configures the placeholder of widget. A nil set writes
// through native.HasPlaceholder when the widget implements it.
func NewPlaceholder[B any](owner B, widget any, loc *Localization, set func(string)) PlaceholderConfigurator[B] {
	return PlaceholderConfigurator[B]{
		owner: owner,
		text:  newTextSetter(widget, loc, setterOr(set, property.Placeholder(widget))),
	}
}

func (c *PlaceholderConfigurator[B]) Placeholder(text string) B {
	c.text.apply(l10n.Text(text))
	return c.owner
}

func (c *PlaceholderConfigurator[B]) PlaceholderCode(code, fallback string, args ...any) B {
	c.text.apply(l10n.Code(code, fallback, args...))
	return c.owner
}

func (c *PlaceholderConfigurator[B]) PlaceholderText() l10n.Localizable { return c.text.value }

// TitleConfigurator sets the widget tooltip.
type TitleConfigurator[B any] struct {
	owner B
	text  textSetter
}

// NewTitle configures the title of widget. A nil set writes through
// native.HasTitle when the widget implements it.
func NewTitle[B any](owner B, widget any, loc *Localization, set func(string)) TitleConfigurator[B] {
	return TitleConfigurator[B]{
		owner: owner,
		text:  newTextSetter(widget, loc, setterOr(set, property.Title(widget))),
	}
}

func (c *TitleConfigurator[B]) Title(text string) B {
	c.text.apply(l10n.Text(text))
	return c.owner
}

func (c *TitleConfigurator[B]) TitleCode(code, fallback string, args ...any) B {
	c.text.apply(l10n.Code(code, fallback, args...))
	return c.owner
}

func (c *TitleConfigurator[B]) TitleText() l10n.Localizable { return c.text.value }
