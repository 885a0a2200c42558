// Package headless provides in-memory widgets that implement the native
// capability interfaces. They hold state only, which makes them suitable for
// server-side form handling and for tests. Client interaction is simulated
// with the Input/Select/Toggle style methods, which emit client-originated
// value changes.
package headless

import (
	"slices"
	"strings"

	"github.com/goliatone/go-formbind/pkg/event"
)

// Component carries the state shared by every headless widget.
type Component struct {
	id          string
	label       string
	placeholder string
	title       string
	classNames  []string
	styles      map[string]string
	width       string
	height      string

	enabled           bool
	readOnly          bool
	requiredIndicator bool
	invalid           bool
	errorMessage      string

	focused   bool
	tabIndex  int
	autoFocus bool

	attached bool
	attach   event.Listeners[struct{}]
	detach   event.Listeners[struct{}]
}

func newComponent() Component {
	return Component{enabled: true}
}

func (c *Component) ID() string      { return c.id }
func (c *Component) SetID(id string) { c.id = id }

func (c *Component) Focus()               { c.focused = true }
func (c *Component) Blur()                { c.focused = false }
func (c *Component) IsFocused() bool      { return c.focused }
func (c *Component) SetTabIndex(idx int)  { c.tabIndex = idx }
func (c *Component) TabIndex() int        { return c.tabIndex }
func (c *Component) SetAutoFocus(on bool) { c.autoFocus = on }
func (c *Component) AutoFocus() bool      { return c.autoFocus }

func (c *Component) SetEnabled(enabled bool) { c.enabled = enabled }
func (c *Component) IsEnabled() bool         { return c.enabled }

func (c *Component) SetReadOnly(readOnly bool) { c.readOnly = readOnly }
func (c *Component) IsReadOnly() bool          { return c.readOnly }

func (c *Component) SetRequiredIndicatorVisible(visible bool) { c.requiredIndicator = visible }
func (c *Component) IsRequiredIndicatorVisible() bool         { return c.requiredIndicator }

func (c *Component) SetLabel(label string) { c.label = label }
func (c *Component) Label() string         { return c.label }

func (c *Component) SetPlaceholder(placeholder string) { c.placeholder = placeholder }
func (c *Component) Placeholder() string               { return c.placeholder }

func (c *Component) SetTitle(title string) { c.title = title }
func (c *Component) Title() string         { return c.title }

func (c *Component) SetInvalid(invalid bool)  { c.invalid = invalid }
func (c *Component) IsInvalid() bool          { return c.invalid }
func (c *Component) SetErrorMessage(m string) { c.errorMessage = m }
func (c *Component) ErrorMessage() string     { return c.errorMessage }

func (c *Component) SetWidth(width string)   { c.width = strings.TrimSpace(width) }
func (c *Component) SetHeight(height string) { c.height = strings.TrimSpace(height) }
func (c *Component) Width() string           { return c.width }
func (c *Component) Height() string          { return c.height }

// AddClassNames appends class names, ignoring blanks and duplicates.
func (c *Component) AddClassNames(names ...string) {
	for _, name := range splitClassNames(names) {
		if !slices.Contains(c.classNames, name) {
			c.classNames = append(c.classNames, name)
		}
	}
}

// RemoveClassNames drops the supplied class names.
func (c *Component) RemoveClassNames(names ...string) {
	for _, name := range splitClassNames(names) {
		c.classNames = slices.DeleteFunc(c.classNames, func(existing string) bool {
			return existing == name
		})
	}
}

// ClassNames returns a copy of the class names in insertion order.
func (c *Component) ClassNames() []string {
	return append([]string(nil), c.classNames...)
}

// SetStyle sets an inline style property; an empty value removes it.
func (c *Component) SetStyle(property, value string) {
	property = strings.TrimSpace(property)
	if property == "" {
		return
	}
	if strings.TrimSpace(value) == "" {
		delete(c.styles, property)
		return
	}
	if c.styles == nil {
		c.styles = make(map[string]string)
	}
	c.styles[property] = value
}

func (c *Component) Style(property string) string {
	return c.styles[strings.TrimSpace(property)]
}

func (c *Component) IsAttached() bool { return c.attached }

func (c *Component) AddAttachListener(fn func()) event.Registration {
	if fn == nil {
		return event.Noop
	}
	return c.attach.Add(func(struct{}) { fn() })
}

func (c *Component) AddDetachListener(fn func()) event.Registration {
	if fn == nil {
		return event.Noop
	}
	return c.detach.Add(func(struct{}) { fn() })
}

// Attach simulates the widget entering the presentation tree. Attaching an
// attached widget is a no-op.
func (c *Component) Attach() {
	if c.attached {
		return
	}
	c.attached = true
	c.attach.Fire(struct{}{})
}

// Detach simulates the widget leaving the presentation tree.
func (c *Component) Detach() {
	if !c.attached {
		return
	}
	c.attached = false
	c.detach.Fire(struct{}{})
}

func splitClassNames(names []string) []string {
	var out []string
	for _, name := range names {
		out = append(out, strings.Fields(name)...)
	}
	return out
}
