package configurator

import "github.com/goliatone/go-formbind/pkg/native"

// EnabledConfigurator toggles the enabled and read-only states.
type EnabledConfigurator[B any] struct {
	owner    B
	enabled  native.HasEnabled
	readOnly native.HasReadOnly
}

func NewEnabled[B any](owner B, widget any) EnabledConfigurator[B] {
	enabled, _ := widget.(native.HasEnabled)
	readOnly, _ := widget.(native.HasReadOnly)
	return EnabledConfigurator[B]{owner: owner, enabled: enabled, readOnly: readOnly}
}

func (c *EnabledConfigurator[B]) Enabled(enabled bool) B {
	if c.enabled != nil {
		c.enabled.SetEnabled(enabled)
	}
	return c.owner
}

func (c *EnabledConfigurator[B]) Disabled() B { return c.Enabled(false) }

func (c *EnabledConfigurator[B]) ReadOnly(readOnly bool) B {
	if c.readOnly != nil {
		c.readOnly.SetReadOnly(readOnly)
	}
	return c.owner
}

// FocusConfigurator controls keyboard focus.
type FocusConfigurator[B any] struct {
	owner  B
	widget native.Focusable
}

func NewFocus[B any](owner B, widget any) FocusConfigurator[B] {
	w, _ := widget.(native.Focusable)
	return FocusConfigurator[B]{owner: owner, widget: w}
}

// Focus requests focus immediately.
func (c *FocusConfigurator[B]) Focus() B {
	if c.widget != nil {
		c.widget.Focus()
	}
	return c.owner
}

func (c *FocusConfigurator[B]) TabIndex(index int) B {
	if c.widget != nil {
		c.widget.SetTabIndex(index)
	}
	return c.owner
}

// AutoFocus focuses the widget when it is first shown.
func (c *FocusConfigurator[B]) AutoFocus() B {
	if c.widget != nil {
		c.widget.SetAutoFocus(true)
	}
	return c.owner
}
