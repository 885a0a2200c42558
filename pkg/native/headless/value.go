package headless

import (
	"reflect"

	"github.com/goliatone/go-formbind/pkg/event"
	"github.com/goliatone/go-formbind/pkg/native"
)

// valueHolder implements native.HasValue for a concrete value type.
type valueHolder[V any] struct {
	value     V
	empty     V
	listeners event.Listeners[native.ValueChange[V]]
}

func (h *valueHolder[V]) Value() V      { return h.value }
func (h *valueHolder[V]) EmptyValue() V { return h.empty }

func (h *valueHolder[V]) SetValue(value V) {
	h.update(value, false)
}

func (h *valueHolder[V]) AddValueChangeListener(fn func(native.ValueChange[V])) event.Registration {
	return h.listeners.Add(fn)
}

func (h *valueHolder[V]) update(value V, fromClient bool) {
	if reflect.DeepEqual(h.value, value) {
		return
	}
	old := h.value
	h.value = value
	h.listeners.Fire(native.ValueChange[V]{Old: old, New: value, FromClient: fromClient})
}
