package configurator

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/theming"
)

// StyleConfigurator adds class names and inline style properties.
type StyleConfigurator[B any] struct {
	owner   B
	widget  native.HasStyle
	palette theming.Palette
}

// NewStyle configures the style of widget; theme tokens are read from
// palette.
func NewStyle[B any](owner B, widget any, palette theming.Palette) StyleConfigurator[B] {
	w, _ := widget.(native.HasStyle)
	return StyleConfigurator[B]{owner: owner, widget: w, palette: palette}
}

func (c *StyleConfigurator[B]) ClassNames(names ...string) B {
	if c.widget != nil {
		c.widget.AddClassNames(names...)
	}
	return c.owner
}

func (c *StyleConfigurator[B]) RemoveClassNames(names ...string) B {
	if c.widget != nil {
		c.widget.RemoveClassNames(names...)
	}
	return c.owner
}

// Style sets an inline style property; an empty value removes it.
func (c *StyleConfigurator[B]) Style(property, value string) B {
	if c.widget != nil {
		c.widget.SetStyle(property, value)
	}
	return c.owner
}

// ThemeStyle sets property to the value of the palette token. Unknown
// tokens leave the property untouched.
func (c *StyleConfigurator[B]) ThemeStyle(property, token string) B {
	if value, ok := c.palette.Token(token); ok {
		c.Style(property, value)
	}
	return c.owner
}

// ThemeVar sets property to a var() reference of token, for clients that
// receive the palette as custom properties.
func (c *StyleConfigurator[B]) ThemeVar(property, token string) B {
	if strings.TrimSpace(token) == "" {
		return c.owner
	}
	return c.Style(property, c.palette.Var(token))
}

// ThemeClassNames adds the space separated class names stored in token.
func (c *StyleConfigurator[B]) ThemeClassNames(token string) B {
	if value, ok := c.palette.Token(token); ok {
		c.ClassNames(strings.Fields(value)...)
	}
	return c.owner
}

// SizeConfigurator sets width and height.
type SizeConfigurator[B any] struct {
	owner  B
	widget native.HasSize
}

func NewSize[B any](owner B, widget any) SizeConfigurator[B] {
	w, _ := widget.(native.HasSize)
	return SizeConfigurator[B]{owner: owner, widget: w}
}

func (c *SizeConfigurator[B]) Width(width string) B {
	if c.widget != nil {
		c.widget.SetWidth(width)
	}
	return c.owner
}

func (c *SizeConfigurator[B]) Height(height string) B {
	if c.widget != nil {
		c.widget.SetHeight(height)
	}
	return c.owner
}

func (c *SizeConfigurator[B]) Size(width, height string) B {
	c.Width(width)
	return c.Height(height)
}

func (c *SizeConfigurator[B]) FullWidth() B  { return c.Width("100%") }
func (c *SizeConfigurator[B]) FullHeight() B { return c.Height("100%") }

// SizeUndefined clears both dimensions.
func (c *SizeConfigurator[B]) SizeUndefined() B { return c.Size("", "") }
