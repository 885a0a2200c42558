package configurator

import (
	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/native"
)

// PatternConfigurator sets the native input pattern. A pattern taken from
// a converter follows the converter's configuration changes.
type PatternConfigurator[B any] struct {
	owner  B
	widget native.HasPattern
	// generation invalidates listeners of converters no longer followed.
	generation int
}

func NewPattern[B any](owner B, widget any) PatternConfigurator[B] {
	w, _ := widget.(native.HasPattern)
	return PatternConfigurator[B]{owner: owner, widget: w}
}

// Pattern sets a fixed pattern and stops following a converter.
func (c *PatternConfigurator[B]) Pattern(pattern string) B {
	c.generation++
	c.setPattern(pattern)
	return c.owner
}

// PreventInvalidInput rejects client edits not matching the pattern.
func (c *PatternConfigurator[B]) PreventInvalidInput(on bool) B {
	if c.widget != nil {
		c.widget.SetPreventInvalidInput(on)
	}
	return c.owner
}

// PatternFrom uses the validation pattern of conv and refreshes it whenever
// conv reports a configuration change.
func (c *PatternConfigurator[B]) PatternFrom(conv any) B {
	if _, ok := conv.(convert.Patterned); !ok {
		return c.owner
	}
	c.generation++
	current := c.generation
	c.setPattern(convert.PatternOf(conv))
	if observable, ok := conv.(convert.Observable); ok {
		observable.OnConfigChange(func() {
			if c.generation == current {
				c.setPattern(convert.PatternOf(conv))
			}
		})
	}
	return c.owner
}

func (c *PatternConfigurator[B]) setPattern(pattern string) {
	if c.widget != nil {
		c.widget.SetPattern(pattern)
	}
}
