package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/native/headless"
)

// NoneOption is offered by optional single selections to clear the value.
const NoneOption = "(none)"

// Asker is implemented by widgets that can prompt for their value.
type Asker interface {
	Ask(ctx context.Context, driver Driver) error
}

// TextField is a text input edited through an input prompt.
type TextField struct {
	*headless.TextField
}

// NewTextField returns an empty prompt text field.
func NewTextField() *TextField {
	return &TextField{TextField: headless.NewTextField()}
}

// Ask prompts for a new text. The current text is offered as default.
func (f *TextField) Ask(ctx context.Context, driver Driver) error {
	help := f.Title()
	if placeholder := f.Placeholder(); placeholder != "" && help == "" {
		help = placeholder
	}
	text, err := driver.Input(ctx, InputConfig{
		Message: message(f.Label(), f.IsRequiredIndicatorVisible()),
		Default: f.Value(),
		Help:    help,
	})
	if err != nil {
		return err
	}
	f.Input(text)
	return nil
}

// Checkbox is a boolean edited through a confirm prompt.
type Checkbox struct {
	*headless.Checkbox
}

// NewCheckbox returns an unchecked prompt checkbox.
func NewCheckbox() *Checkbox {
	return &Checkbox{Checkbox: headless.NewCheckbox()}
}

func (c *Checkbox) Ask(ctx context.Context, driver Driver) error {
	answer, err := driver.Confirm(ctx, ConfirmConfig{
		Message: message(c.Label(), c.IsRequiredIndicatorVisible()),
		Default: c.Value(),
		Help:    c.Title(),
	})
	if err != nil {
		return err
	}
	if answer != c.Value() {
		c.Toggle()
	}
	return nil
}

// DatePicker is a date edited as YYYY-MM-DD text. Malformed dates are
// rejected by the prompt itself; an empty answer clears the date.
type DatePicker struct {
	*headless.DatePicker
}

// NewDatePicker returns an empty prompt date picker.
func NewDatePicker() *DatePicker {
	return &DatePicker{DatePicker: headless.NewDatePicker()}
}

func (d *DatePicker) Ask(ctx context.Context, driver Driver) error {
	current := ""
	if value := d.Value(); value != nil {
		current = value.Format(time.DateOnly)
	}
	text, err := driver.Input(ctx, InputConfig{
		Message:   message(d.Label(), d.IsRequiredIndicatorVisible()),
		Default:   current,
		Help:      d.Title(),
		Validator: validDate,
	})
	if err != nil {
		return err
	}
	date, err := parseDate(text)
	if err != nil {
		return err
	}
	d.Pick(date)
	return nil
}

func validDate(text string) error {
	_, err := parseDate(text)
	return err
}

func parseDate(text string) (*time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(time.DateOnly, text, time.UTC)
	if err != nil {
		return nil, errors.New("enter a date as YYYY-MM-DD")
	}
	return &parsed, nil
}

// Select is a single selection edited through a select prompt. Optional
// selections offer NoneOption first.
type Select[ITEM any] struct {
	*headless.Select[ITEM]
}

// NewSelect returns a prompt select over items.
func NewSelect[ITEM any](items ...ITEM) *Select[ITEM] {
	return &Select[ITEM]{Select: headless.NewSelect(items...)}
}

func (s *Select[ITEM]) Ask(ctx context.Context, driver Driver) error {
	items := s.Items()
	options := captions(items, s.Caption)
	offset := 0
	if !s.IsRequiredIndicatorVisible() {
		options = append([]string{NoneOption}, options...)
		offset = 1
	}
	current := -1
	if value := s.Value(); value != nil {
		current = indexOf(options, captions([]ITEM{*value}, s.Caption)[0])
	}
	if current < 0 {
		current = 0
	}
	index, err := driver.Select(ctx, SelectConfig{
		Message:      message(s.Label(), s.IsRequiredIndicatorVisible()),
		Options:      options,
		DefaultIndex: current,
		Help:         s.Title(),
	})
	if err != nil {
		return err
	}
	s.Choose(index - offset)
	return nil
}

// MultiSelect is a multi selection edited through a checkbox list prompt.
type MultiSelect[ITEM any] struct {
	*headless.CheckboxGroup[ITEM]
}

// NewMultiSelect returns a prompt multi selection over items.
func NewMultiSelect[ITEM any](items ...ITEM) *MultiSelect[ITEM] {
	return &MultiSelect[ITEM]{CheckboxGroup: headless.NewCheckboxGroup(items...)}
}

func (m *MultiSelect[ITEM]) Ask(ctx context.Context, driver Driver) error {
	items := m.Items()
	var defaults []int
	for i, item := range items {
		if m.IsSelected(item) {
			defaults = append(defaults, i)
		}
	}
	indexes, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  message(m.Label(), m.IsRequiredIndicatorVisible()),
		Options:  captions(items, m.Caption),
		Defaults: defaults,
		Help:     m.Title(),
	})
	if err != nil {
		return err
	}
	m.CheckIndexes(indexes...)
	return nil
}

func message(label string, required bool) string {
	if required {
		return label + " *"
	}
	return label
}

func captions[ITEM any](items []ITEM, caption func(ITEM) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		text := caption(item)
		if text == "" {
			text = fmt.Sprint(item)
		}
		out = append(out, text)
	}
	return out
}

// Factory creates prompt widgets. Its method set matches the widget
// factory expected by schemafield.
type Factory struct{}

// NewFactory returns a prompt widget factory.
func NewFactory() Factory { return Factory{} }

func (Factory) Text(string) native.HasValue[string]     { return NewTextField() }
func (Factory) Checkbox(string) native.HasValue[bool]   { return NewCheckbox() }
func (Factory) Date(string) native.HasValue[*time.Time] { return NewDatePicker() }
func (Factory) Select(_ string, items []string) native.SingleSelect[string] {
	return NewSelect(items...)
}
func (Factory) MultiSelect(_ string, items []string) native.MultiSelect[string] {
	return NewMultiSelect(items...)
}

var (
	_ Asker = (*TextField)(nil)
	_ Asker = (*Checkbox)(nil)
	_ Asker = (*DatePicker)(nil)
	_ Asker = (*Select[string])(nil)
	_ Asker = (*MultiSelect[string])(nil)
)
