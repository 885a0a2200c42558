package configurator

import (
	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/native"
)

// AutocompleteConfigurator forwards an autocomplete hint.
type AutocompleteConfigurator[B any] struct {
	owner  B
	widget native.HasAutocomplete
}

func NewAutocomplete[B any](owner B, widget any) AutocompleteConfigurator[B] {
	w, _ := widget.(native.HasAutocomplete)
	return AutocompleteConfigurator[B]{owner: owner, widget: w}
}

func (c *AutocompleteConfigurator[B]) Autocomplete(value native.Autocomplete) B {
	if c.widget != nil {
		c.widget.SetAutocomplete(value)
	}
	return c.owner
}

// ValueChangeModeConfigurator controls when client edits are synchronised.
type ValueChangeModeConfigurator[B any] struct {
	owner  B
	widget native.HasValueChangeMode
}

func NewValueChangeMode[B any](owner B, widget any) ValueChangeModeConfigurator[B] {
	w, _ := widget.(native.HasValueChangeMode)
	return ValueChangeModeConfigurator[B]{owner: owner, widget: w}
}

func (c *ValueChangeModeConfigurator[B]) ValueChangeMode(mode native.ValueChangeMode) B {
	if c.widget != nil {
		c.widget.SetValueChangeMode(mode)
	}
	return c.owner
}

// ValueChangeTimeout switches to timeout mode with the given delay.
func (c *ValueChangeModeConfigurator[B]) ValueChangeTimeout(millis int) B {
	if c.widget != nil {
		c.widget.SetValueChangeMode(native.ValueChangeTimeout)
		c.widget.SetValueChangeTimeout(millis)
	}
	return c.owner
}

// KeyNotifierConfigurator registers keyboard listeners.
type KeyNotifierConfigurator[B any] struct {
	owner         B
	widget        native.KeyNotifier
	registrations []event.Registration
}

func NewKeyNotifier[B any](owner B, widget any) KeyNotifierConfigurator[B] {
	w, _ := widget.(native.KeyNotifier)
	return KeyNotifierConfigurator[B]{owner: owner, widget: w}
}

func (c *KeyNotifierConfigurator[B]) OnKeyDown(fn func(native.KeyEvent)) B {
	if c.widget != nil && fn != nil {
		c.registrations = append(c.registrations, c.widget.AddKeyDownListener(fn))
	}
	return c.owner
}

func (c *KeyNotifierConfigurator[B]) OnKeyPress(fn func(native.KeyEvent)) B {
	if c.widget != nil && fn != nil {
		c.registrations = append(c.registrations, c.widget.AddKeyPressListener(fn))
	}
	return c.owner
}

func (c *KeyNotifierConfigurator[B]) OnKeyUp(fn func(native.KeyEvent)) B {
	if c.widget != nil && fn != nil {
		c.registrations = append(c.registrations, c.widget.AddKeyUpListener(fn))
	}
	return c.owner
}

// OnShortcut runs fn on key down of key with exactly modifiers held.
func (c *KeyNotifierConfigurator[B]) OnShortcut(key string, modifiers native.KeyModifier, fn func()) B {
	if fn == nil {
		return c.owner
	}
	return c.OnKeyDown(func(e native.KeyEvent) {
		if e.Matches(key, modifiers) {
			fn()
		}
	})
}

// KeyRegistrations removes every key listener added through this
// configurator.
func (c *KeyNotifierConfigurator[B]) KeyRegistrations() event.Registration {
	return event.Combine(c.registrations...)
}

// CompositionNotifierConfigurator registers IME composition listeners.
type CompositionNotifierConfigurator[B any] struct {
	owner         B
	widget        native.CompositionNotifier
	registrations []event.Registration
}

func NewCompositionNotifier[B any](owner B, widget any) CompositionNotifierConfigurator[B] {
	w, _ := widget.(native.CompositionNotifier)
	return CompositionNotifierConfigurator[B]{owner: owner, widget: w}
}

func (c *CompositionNotifierConfigurator[B]) OnCompositionStart(fn func(native.CompositionEvent)) B {
	if c.widget != nil && fn != nil {
		c.registrations = append(c.registrations, c.widget.AddCompositionStartListener(fn))
	}
	return c.owner
}

func (c *CompositionNotifierConfigurator[B]) OnCompositionUpdate(fn func(native.CompositionEvent)) B {
	if c.widget != nil && fn != nil {
		c.registrations = append(c.registrations, c.widget.AddCompositionUpdateListener(fn))
	}
	return c.owner
}

func (c *CompositionNotifierConfigurator[B]) OnCompositionEnd(fn func(native.CompositionEvent)) B {
	if c.widget != nil && fn != nil {
		c.registrations = append(c.registrations, c.widget.AddCompositionEndListener(fn))
	}
	return c.owner
}

func (c *CompositionNotifierConfigurator[B]) CompositionRegistrations() event.Registration {
	return event.Combine(c.registrations...)
}
