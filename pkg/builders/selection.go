package builders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formbind/pkg/input"
	"github.com/goliatone/go-formbind/pkg/native"
	"github.com/goliatone/go-formbind/pkg/selection"
	"github.com/goliatone/go-formbind/pkg/validation"
)

// items configures the item list of selection widgets.
type items[ITEM, B any] struct {
	owner  B
	widget native.HasItems[ITEM]
	logger *slog.Logger
}

// Items replaces the offered items.
func (c *items[ITEM, B]) Items(list ...ITEM) B {
	c.widget.SetItems(list)
	return c.owner
}

// ItemsFrom loads the offered items from source. A failed fetch leaves the
// items untouched and is returned.
func (c *items[ITEM, B]) ItemsFrom(ctx context.Context, source selection.DataSource[ITEM], query selection.Query) (B, error) {
	if source == nil {
		return c.owner, errors.New("builders: data source is nil")
	}
	list, err := source.Fetch(ctx, query)
	if err != nil {
		c.logger.Debug("builders: fetch items failed", slog.String("error", err.Error()))
		return c.owner, fmt.Errorf("builders: fetch items: %w", err)
	}
	c.widget.SetItems(list)
	return c.owner, nil
}

// ItemCaption sets how items are rendered, when the widget supports it.
func (c *items[ITEM, B]) ItemCaption(caption func(ITEM) string) B {
	if w, ok := captionable[ITEM](c.widget); ok && caption != nil {
		w.SetItemCaption(caption)
	}
	return c.owner
}

// SingleSelectBuilder binds a single selection widget to a nullable value.
type SingleSelectBuilder[T, ITEM any] struct {
	Common[*SingleSelectBuilder[T, ITEM]]
	Base[*T, *SingleSelectBuilder[T, ITEM]]
	items[ITEM, *SingleSelectBuilder[T, ITEM]]

	widget native.SingleSelect[ITEM]
	conv   selection.ItemConverter[T, ITEM]
}

// SingleSelect starts a builder for widget; conv maps items to values.
func SingleSelect[T, ITEM any](widget native.SingleSelect[ITEM], conv selection.ItemConverter[T, ITEM], opts ...Option) *SingleSelectBuilder[T, ITEM] {
	s := resolveSettings(opts)
	b := &SingleSelectBuilder[T, ITEM]{widget: widget, conv: conv}
	b.Base = newBase[*T](b, widget, s)
	b.Common = newCommon(b, widget, b.loc, s)
	b.items = items[ITEM, *SingleSelectBuilder[T, ITEM]]{owner: b, widget: widget, logger: s.Logger}
	return b
}

func (b *SingleSelectBuilder[T, ITEM]) Build() input.Input[*T] {
	return b.finish(selection.Single(b.widget, b.conv, b.inputOptions()...))
}

func (b *SingleSelectBuilder[T, ITEM]) BuildValidatable() *validation.Input[*T] {
	return b.validatable(b.Build())
}

// MultiSelectBuilder binds a multi selection widget to a set of values.
type MultiSelectBuilder[T comparable, ITEM any] struct {
	Common[*MultiSelectBuilder[T, ITEM]]
	Base[[]T, *MultiSelectBuilder[T, ITEM]]
	items[ITEM, *MultiSelectBuilder[T, ITEM]]

	widget native.MultiSelect[ITEM]
	conv   selection.ItemConverter[T, ITEM]
}

// MultiSelect starts a builder for widget; conv maps items to values.
func MultiSelect[T comparable, ITEM any](widget native.MultiSelect[ITEM], conv selection.ItemConverter[T, ITEM], opts ...Option) *MultiSelectBuilder[T, ITEM] {
	s := resolveSettings(opts)
	b := &MultiSelectBuilder[T, ITEM]{widget: widget, conv: conv}
	b.Base = newBase[[]T](b, widget, s)
	b.Common = newCommon(b, widget, b.loc, s)
	b.items = items[ITEM, *MultiSelectBuilder[T, ITEM]]{owner: b, widget: widget, logger: s.Logger}
	return b
}

func (b *MultiSelectBuilder[T, ITEM]) Build() input.Input[[]T] {
	return b.finish(selection.Multi(b.widget, b.conv, b.inputOptions()...))
}

func (b *MultiSelectBuilder[T, ITEM]) BuildValidatable() *validation.Input[[]T] {
	return b.validatable(b.Build())
}
