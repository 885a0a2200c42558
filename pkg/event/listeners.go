package event

// Listeners keeps an ordered list of callbacks. Fire invokes them
// synchronously in registration order. Listeners is not safe for concurrent
// use; it is meant to be driven from the UI event loop.
type Listeners[E any] struct {
	entries []listenerEntry[E]
	nextID  uint64
}

type listenerEntry[E any] struct {
	id uint64
	fn func(E)
}

// Add appends fn and returns a Registration removing it. A nil fn is ignored
// and yields Noop.
func (l *Listeners[E]) Add(fn func(E)) Registration {
	if fn == nil {
		return Noop
	}
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry[E]{id: id, fn: fn})
	return Once(func() {
		l.remove(id)
	})
}

// AddOnce registers fn so that it runs on the next Fire only, then removes
// itself. The returned Registration cancels it before it fires.
func (l *Listeners[E]) AddOnce(fn func(E)) Registration {
	if fn == nil {
		return Noop
	}
	var reg Registration
	reg = l.Add(func(e E) {
		reg.Remove()
		fn(e)
	})
	return reg
}

// Fire delivers e to every listener registered at the time of the call.
// Listeners added or removed while firing take effect on the next Fire.
func (l *Listeners[E]) Fire(e E) {
	if len(l.entries) == 0 {
		return
	}
	snapshot := append([]listenerEntry[E](nil), l.entries...)
	for _, entry := range snapshot {
		entry.fn(e)
	}
}

// Len reports the number of registered listeners.
func (l *Listeners[E]) Len() int {
	return len(l.entries)
}

func (l *Listeners[E]) remove(id uint64) {
	for i, entry := range l.entries {
		if entry.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}
