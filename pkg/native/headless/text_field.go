package headless

import (
	"regexp"

	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/native"
)

// TextField is an in-memory single line text input.
type TextField struct {
	Component
	valueHolder[string]

	autocomplete       native.Autocomplete
	valueChangeMode    native.ValueChangeMode
	valueChangeTimeout int
	pattern            string
	compiledPattern    *regexp.Regexp
	preventInvalid     bool

	keyDown  event.Listeners[native.KeyEvent]
	keyPress event.Listeners[native.KeyEvent]
	keyUp    event.Listeners[native.KeyEvent]

	compositionStart  event.Listeners[native.CompositionEvent]
	compositionUpdate event.Listeners[native.CompositionEvent]
	compositionEnd    event.Listeners[native.CompositionEvent]
}

// NewTextField returns an empty, enabled text field.
func NewTextField() *TextField {
	return &TextField{
		Component:       newComponent(),
		valueChangeMode: native.ValueChangeOnChange,
	}
}

// Input simulates the user typing text. When prevent-invalid-input is on and
// the text does not match the pattern, the edit is rejected and false is
// returned. Otherwise the field flags itself invalid on a pattern mismatch
// and still accepts the text, like a browser input would.
func (f *TextField) Input(text string) bool {
	matches := f.matchesPattern(text)
	if !matches && f.preventInvalid {
		return false
	}
	if !matches {
		f.SetInvalid(true)
	}
	f.update(text, true)
	return true
}

func (f *TextField) matchesPattern(text string) bool {
	if f.compiledPattern == nil || text == "" {
		return true
	}
	return f.compiledPattern.MatchString(text)
}

func (f *TextField) SetAutocomplete(a native.Autocomplete) { f.autocomplete = a }
func (f *TextField) Autocomplete() native.Autocomplete     { return f.autocomplete }

func (f *TextField) SetValueChangeMode(m native.ValueChangeMode) { f.valueChangeMode = m }
func (f *TextField) ValueChangeMode() native.ValueChangeMode     { return f.valueChangeMode }
func (f *TextField) SetValueChangeTimeout(millis int)            { f.valueChangeTimeout = millis }
func (f *TextField) ValueChangeTimeout() int                     { return f.valueChangeTimeout }

// SetPattern stores the client-side validation pattern. An invalid regular
// expression is kept as text but not enforced.
func (f *TextField) SetPattern(pattern string) {
	f.pattern = pattern
	f.compiledPattern = nil
	if pattern == "" {
		return
	}
	if re, err := regexp.Compile("^(?:" + pattern + ")$"); err == nil {
		f.compiledPattern = re
	}
}

func (f *TextField) Pattern() string                { return f.pattern }
func (f *TextField) SetPreventInvalidInput(on bool) { f.preventInvalid = on }
func (f *TextField) PreventInvalidInput() bool      { return f.preventInvalid }

func (f *TextField) AddKeyDownListener(fn func(native.KeyEvent)) event.Registration {
	return f.keyDown.Add(fn)
}

func (f *TextField) AddKeyPressListener(fn func(native.KeyEvent)) event.Registration {
	return f.keyPress.Add(fn)
}

func (f *TextField) AddKeyUpListener(fn func(native.KeyEvent)) event.Registration {
	return f.keyUp.Add(fn)
}

// PressKey simulates a key down/press/up sequence.
func (f *TextField) PressKey(e native.KeyEvent) {
	f.keyDown.Fire(e)
	f.keyPress.Fire(e)
	f.keyUp.Fire(e)
}

func (f *TextField) AddCompositionStartListener(fn func(native.CompositionEvent)) event.Registration {
	return f.compositionStart.Add(fn)
}

func (f *TextField) AddCompositionUpdateListener(fn func(native.CompositionEvent)) event.Registration {
	return f.compositionUpdate.Add(fn)
}

func (f *TextField) AddCompositionEndListener(fn func(native.CompositionEvent)) event.Registration {
	return f.compositionEnd.Add(fn)
}

// Compose simulates an IME composition that ends with data.
func (f *TextField) Compose(steps ...string) {
	if len(steps) == 0 {
		return
	}
	f.compositionStart.Fire(native.CompositionEvent{Data: steps[0]})
	for _, step := range steps[1:] {
		f.compositionUpdate.Fire(native.CompositionEvent{Data: step})
	}
	f.compositionEnd.Fire(native.CompositionEvent{Data: steps[len(steps)-1]})
}
