package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-formbind/pkg/convert"
	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/native"
)

// Single binds a widget holding at most one item. The model value is nil
// when nothing is selected or when no item represents the value being set.
func Single[T, ITEM any](widget native.HasValue[*ITEM], conv ItemConverter[T, ITEM], opts ...input.Option) input.Input[*T] {
	mustConverter(conv)
	return input.From(input.New[*ITEM](widget), convert.Func(
		func(item *ITEM) (*T, error) {
			if item == nil {
				return nil, nil
			}
			value := conv.Value(*item)
			return &value, nil
		},
		func(value *T) (*ITEM, error) {
			if value == nil {
				return nil, nil
			}
			item, ok := conv.Item(*value)
			if !ok {
				return nil, nil
			}
			return &item, nil
		},
	), opts...)
}

// Multi binds a widget holding a set of items. Selected items missing from
// the widget's current items are left out of the value, and values without
// an item are dropped when set. Duplicates collapse to one entry. When the
// widget's items change and that changes the value, listeners receive a
// programmatic value change.
func Multi[T comparable, ITEM any](widget native.MultiSelect[ITEM], conv ItemConverter[T, ITEM], opts ...input.Option) input.Input[[]T] {
	mustConverter(conv)
	available := func() map[T]struct{} {
		items := widget.Items()
		set := make(map[T]struct{}, len(items))
		for _, item := range items {
			set[conv.Value(item)] = struct{}{}
		}
		return set
	}

	opts = append([]input.Option{input.WithIsEmpty(func(values []T) bool { return len(values) == 0 })}, opts...)
	base := input.From(input.New[[]ITEM](widget), convert.Func(
		func(items []ITEM) ([]T, error) {
			present := available()
			values := make([]T, 0, len(items))
			seen := make(map[T]struct{}, len(items))
			for _, item := range items {
				value := conv.Value(item)
				if _, ok := present[value]; !ok {
					continue
				}
				if _, dup := seen[value]; dup {
					continue
				}
				seen[value] = struct{}{}
				values = append(values, value)
			}
			return values, nil
		},
		func(values []T) ([]ITEM, error) {
			items := make([]ITEM, 0, len(values))
			seen := make(map[T]struct{}, len(values))
			for _, value := range values {
				if _, dup := seen[value]; dup {
					continue
				}
				item, ok := conv.Item(value)
				if !ok {
					continue
				}
				seen[value] = struct{}{}
				items = append(items, item)
			}
			return items, nil
		},
	), opts...)

	m := &multiInput[T]{Input: base, last: base.Value()}
	base.AddValueChangeListener(m.onChange)
	widget.AddItemsChangeListener(func([]ITEM) { m.onItemsChange() })
	return m
}

// multiInput re-announces the value when an items change filters the
// selection without the widget's own value changing.
type multiInput[T comparable] struct {
	input.Input[[]T]
	listeners event.Listeners[input.ValueChangeEvent[[]T]]
	last      []T
}

func (m *multiInput[T]) AddValueChangeListener(fn func(input.ValueChangeEvent[[]T])) event.Registration {
	if fn == nil {
		panic(fmt.Errorf("%w: value change listener is nil", input.ErrIllegalArgument))
	}
	return m.listeners.Add(fn)
}

func (m *multiInput[T]) ConversionInvalid() bool {
	return input.HasConversionError(m.Input)
}

func (m *multiInput[T]) onChange(e input.ValueChangeEvent[[]T]) {
	m.last = e.New
	m.listeners.Fire(input.ValueChangeEvent[[]T]{Source: m, Old: e.Old, New: e.New, FromClient: e.FromClient})
}

func (m *multiInput[T]) onItemsChange() {
	next := m.Value()
	if slices.Equal(next, m.last) {
		return
	}
	old := m.last
	m.last = next
	m.listeners.Fire(input.ValueChangeEvent[[]T]{Source: m, Old: old, New: next})
}

func mustConverter(conv any) {
	if conv == nil {
		panic(errors.Join(ErrIllegalArgument, errors.New("selection: item converter is nil")))
	}
}
