// Package native describes the facets a UI widget can expose to the binding
// layer. A widget only has to implement HasValue; every other interface is an
// optional capability discovered by type assertion. Operations on a missing
// capability are no-ops in the binding layer, never errors.
package native

import "github.com/goliatone/go-formbind/pkg/event"

// ValueChange is emitted by a widget whenever its native value changes.
// FromClient distinguishes user interaction from programmatic updates.
type ValueChange[V any] struct {
	Old        V
	New        V
	FromClient bool
}

// HasValue is the minimal contract of a value-holding widget.
type HasValue[V any] interface {
	Value() V
	// SetValue updates the value programmatically. Listeners receive a
	// ValueChange with FromClient=false when the value actually changed.
	SetValue(V)
	// EmptyValue returns the value the widget shows when cleared.
	EmptyValue() V
	AddValueChangeListener(func(ValueChange[V])) event.Registration
}

// Identifiable widgets carry an element id.
type Identifiable interface {
	ID() string
	SetID(string)
}

// Focusable widgets can request keyboard focus.
type Focusable interface {
	Focus()
	SetTabIndex(int)
	SetAutoFocus(bool)
}

// HasEnabled widgets can be disabled.
type HasEnabled interface {
	SetEnabled(bool)
	IsEnabled() bool
}

// HasReadOnly widgets can be made read-only.
type HasReadOnly interface {
	SetReadOnly(bool)
	IsReadOnly() bool
}

// HasRequiredIndicator widgets can show a required marker.
type HasRequiredIndicator interface {
	SetRequiredIndicatorVisible(bool)
	IsRequiredIndicatorVisible() bool
}

// Attachable widgets notify when they enter or leave the presentation tree.
type Attachable interface {
	IsAttached() bool
	AddAttachListener(func()) event.Registration
	AddDetachListener(func()) event.Registration
}

// HasLabel widgets render a caption next to the control.
type HasLabel interface {
	SetLabel(string)
	Label() string
}

// HasPlaceholder widgets render a hint inside an empty control.
type HasPlaceholder interface {
	SetPlaceholder(string)
	Placeholder() string
}

// HasTitle widgets render a tooltip/help text.
type HasTitle interface {
	SetTitle(string)
	Title() string
}

// HasStyle widgets accept class names and inline style properties.
type HasStyle interface {
	AddClassNames(...string)
	RemoveClassNames(...string)
	ClassNames() []string
	SetStyle(property, value string)
	Style(property string) string
}

// HasSize widgets accept CSS-like size values ("" means undefined).
type HasSize interface {
	SetWidth(string)
	SetHeight(string)
	Width() string
	Height() string
}

// HasAutocomplete widgets forward an autocomplete hint to the client.
type HasAutocomplete interface {
	SetAutocomplete(Autocomplete)
	Autocomplete() Autocomplete
}

// HasValueChangeMode widgets control when client edits are synchronised.
type HasValueChangeMode interface {
	SetValueChangeMode(ValueChangeMode)
	ValueChangeMode() ValueChangeMode
	SetValueChangeTimeout(millis int)
	ValueChangeTimeout() int
}

// HasPattern widgets validate raw client input against a pattern.
type HasPattern interface {
	SetPattern(string)
	Pattern() string
	SetPreventInvalidInput(bool)
}

// HasValidation widgets can display an invalid state with a message.
type HasValidation interface {
	SetInvalid(bool)
	IsInvalid() bool
	SetErrorMessage(string)
	ErrorMessage() string
}

// KeyNotifier widgets emit keyboard events.
type KeyNotifier interface {
	AddKeyDownListener(func(KeyEvent)) event.Registration
	AddKeyPressListener(func(KeyEvent)) event.Registration
	AddKeyUpListener(func(KeyEvent)) event.Registration
}

// CompositionNotifier widgets emit IME composition events.
type CompositionNotifier interface {
	AddCompositionStartListener(func(CompositionEvent)) event.Registration
	AddCompositionUpdateListener(func(CompositionEvent)) event.Registration
	AddCompositionEndListener(func(CompositionEvent)) event.Registration
}

// HasItems widgets display a collection of selectable items.
type HasItems[ITEM any] interface {
	SetItems([]ITEM)
	Items() []ITEM
	AddItemsChangeListener(func([]ITEM)) event.Registration
}

// HasItemCaption widgets render items through a caption function.
type HasItemCaption[ITEM any] interface {
	SetItemCaption(func(ITEM) string)
}

// SingleSelect is a widget holding at most one selected item (nil when
// nothing is selected).
type SingleSelect[ITEM any] interface {
	HasValue[*ITEM]
	HasItems[ITEM]
}

// MultiSelect is a widget holding a set of selected items.
type MultiSelect[ITEM any] interface {
	HasValue[[]ITEM]
	HasItems[ITEM]
}
