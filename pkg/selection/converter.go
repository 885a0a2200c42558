// Package selection binds single- and multi-select widgets, which hold
// items, to inputs exposing the logical values those items stand for.
package selection

import "errors"

// ErrIllegalArgument is wrapped by panics caused by invalid configuration.
var ErrIllegalArgument = errors.New("selection: illegal argument")

// ItemConverter maps widget items to model values and back. Item reports
// false when no item represents value; the input then shows no selection.
type ItemConverter[T, ITEM any] interface {
	Value(item ITEM) T
	Item(value T) (ITEM, bool)
}

// Identity is the converter for widgets whose items are the model values.
func Identity[T any]() ItemConverter[T, T] {
	return identity[T]{}
}

type identity[T any] struct{}

func (identity[T]) Value(item T) T         { return item }
func (identity[T]) Item(value T) (T, bool) { return value, true }

// Funcs builds an ItemConverter from two functions.
func Funcs[T, ITEM any](toValue func(ITEM) T, toItem func(T) (ITEM, bool)) ItemConverter[T, ITEM] {
	if toValue == nil || toItem == nil {
		panic(errors.Join(ErrIllegalArgument, errors.New("selection: converter functions are required")))
	}
	return funcs[T, ITEM]{toValue: toValue, toItem: toItem}
}

type funcs[T, ITEM any] struct {
	toValue func(ITEM) T
	toItem  func(T) (ITEM, bool)
}

func (f funcs[T, ITEM]) Value(item ITEM) T         { return f.toValue(item) }
func (f funcs[T, ITEM]) Item(value T) (ITEM, bool) { return f.toItem(value) }

// Keyed builds an ItemConverter over a fixed item list, matching items by
// the value key returns for them.
func Keyed[T comparable, ITEM any](items []ITEM, key func(ITEM) T) ItemConverter[T, ITEM] {
	if key == nil {
		panic(errors.Join(ErrIllegalArgument, errors.New("selection: key function is required")))
	}
	index := make(map[T]ITEM, len(items))
	for _, item := range items {
		index[key(item)] = item
	}
	return funcs[T, ITEM]{
		toValue: key,
		toItem: func(value T) (ITEM, bool) {
			item, ok := index[value]
			return item, ok
		},
	}
}
