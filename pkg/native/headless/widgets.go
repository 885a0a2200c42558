package headless

import (
	"reflect"
	"time"

	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/native"
)

// Checkbox is an in-memory boolean toggle.
type Checkbox struct {
	Component
	valueHolder[bool]
}

// NewCheckbox returns an unchecked checkbox.
func NewCheckbox() *Checkbox {
	return &Checkbox{Component: newComponent()}
}

// Toggle simulates the user clicking the checkbox.
func (c *Checkbox) Toggle() {
	c.update(!c.value, true)
}

// DatePicker is an in-memory date input; nil means no date.
type DatePicker struct {
	Component
	valueHolder[*time.Time]

	i18n native.CalendarI18n
	min  *time.Time
	max  *time.Time
}

// NewDatePicker returns an empty date picker.
func NewDatePicker() *DatePicker {
	return &DatePicker{Component: newComponent()}
}

// Pick simulates the user choosing a date; nil clears the picker.
func (d *DatePicker) Pick(date *time.Time) {
	d.update(date, true)
}

func (d *DatePicker) SetCalendarI18n(i18n native.CalendarI18n) { d.i18n = i18n }
func (d *DatePicker) CalendarI18n() native.CalendarI18n        { return d.i18n }

// SetRange bounds the selectable dates; nil leaves a side open.
func (d *DatePicker) SetRange(earliest, latest *time.Time) {
	d.min, d.max = earliest, latest
}

func (d *DatePicker) Range() (*time.Time, *time.Time) { return d.min, d.max }

type itemHolder[ITEM any] struct {
	items     []ITEM
	caption   func(ITEM) string
	listeners event.Listeners[[]ITEM]
}

func (h *itemHolder[ITEM]) SetItems(items []ITEM) {
	h.items = append([]ITEM(nil), items...)
	h.listeners.Fire(h.Items())
}

func (h *itemHolder[ITEM]) Items() []ITEM {
	return append([]ITEM(nil), h.items...)
}

func (h *itemHolder[ITEM]) AddItemsChangeListener(fn func([]ITEM)) event.Registration {
	return h.listeners.Add(fn)
}

func (h *itemHolder[ITEM]) SetItemCaption(fn func(ITEM) string) { h.caption = fn }

// Caption renders item with the configured caption function.
func (h *itemHolder[ITEM]) Caption(item ITEM) string {
	if h.caption == nil {
		return ""
	}
	return h.caption(item)
}

// Select is an in-memory single selection list (combo box, radio group).
type Select[ITEM any] struct {
	Component
	valueHolder[*ITEM]
	itemHolder[ITEM]
}

// NewSelect returns a select over items with nothing selected.
func NewSelect[ITEM any](items ...ITEM) *Select[ITEM] {
	s := &Select[ITEM]{Component: newComponent()}
	s.items = append([]ITEM(nil), items...)
	return s
}

// Choose simulates the user selecting the item at index; an out of range
// index clears the selection.
func (s *Select[ITEM]) Choose(index int) {
	if index < 0 || index >= len(s.items) {
		s.update(nil, true)
		return
	}
	item := s.items[index]
	s.update(&item, true)
}

// CheckboxGroup is an in-memory multi selection (checkbox group, list box).
type CheckboxGroup[ITEM any] struct {
	Component
	valueHolder[[]ITEM]
	itemHolder[ITEM]
}

// NewCheckboxGroup returns a group over items with nothing selected.
func NewCheckboxGroup[ITEM any](items ...ITEM) *CheckboxGroup[ITEM] {
	g := &CheckboxGroup[ITEM]{Component: newComponent()}
	g.items = append([]ITEM(nil), items...)
	g.empty = []ITEM{}
	g.value = []ITEM{}
	return g
}

// Check simulates the user toggling the item at index.
func (g *CheckboxGroup[ITEM]) Check(index int) {
	if index < 0 || index >= len(g.items) {
		return
	}
	item := g.items[index]
	next := make([]ITEM, 0, len(g.value)+1)
	found := false
	for _, selected := range g.value {
		if reflect.DeepEqual(selected, item) {
			found = true
			continue
		}
		next = append(next, selected)
	}
	if !found {
		next = append(next, item)
	}
	g.update(next, true)
}

// CheckIndexes simulates the user replacing the whole selection.
func (g *CheckboxGroup[ITEM]) CheckIndexes(indexes ...int) {
	next := make([]ITEM, 0, len(indexes))
	for _, idx := range indexes {
		if idx >= 0 && idx < len(g.items) {
			next = append(next, g.items[idx])
		}
	}
	g.update(next, true)
}

// IsSelected reports whether item is part of the current selection.
func (g *CheckboxGroup[ITEM]) IsSelected(item ITEM) bool {
	for _, selected := range g.value {
		if reflect.DeepEqual(selected, item) {
			return true
		}
	}
	return false
}

var (
	_ native.HasValue[string]       = (*TextField)(nil)
	_ native.HasValue[bool]         = (*Checkbox)(nil)
	_ native.HasValue[*time.Time]   = (*DatePicker)(nil)
	_ native.SingleSelect[string]   = (*Select[string])(nil)
	_ native.MultiSelect[string]    = (*CheckboxGroup[string])(nil)
	_ native.Attachable             = (*TextField)(nil)
	_ native.HasValidation          = (*TextField)(nil)
	_ native.KeyNotifier            = (*TextField)(nil)
	_ native.CompositionNotifier    = (*TextField)(nil)
	_ native.HasValueChangeMode     = (*TextField)(nil)
	_ native.HasCalendarI18n        = (*DatePicker)(nil)
	_ native.HasItemCaption[string] = (*Select[string])(nil)
)
