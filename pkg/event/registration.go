package event

// Registration removes a previously registered listener or callback. Remove is
// idempotent: calling it more than once has no further effect.
type Registration interface {
	Remove()
}

// RegistrationFunc adapts a plain function into a Registration. The function
// runs at most once.
type RegistrationFunc func()

// Remove implements Registration.
func (f RegistrationFunc) Remove() {
	if f != nil {
		f()
	}
}

// Once wraps remove so that repeated Remove calls only run it the first time.
func Once(remove func()) Registration {
	return &onceRegistration{remove: remove}
}

type onceRegistration struct {
	remove func()
	done   bool
}

func (r *onceRegistration) Remove() {
	if r == nil || r.done {
		return
	}
	r.done = true
	if r.remove != nil {
		r.remove()
	}
}

// Noop is a Registration that does nothing. It is returned when a capability
// is not supported by the underlying widget.
var Noop Registration = RegistrationFunc(func() {})

// Combine groups registrations so they can be removed together.
func Combine(registrations ...Registration) Registration {
	regs := make([]Registration, 0, len(registrations))
	for _, reg := range registrations {
		if reg != nil {
			regs = append(regs, reg)
		}
	}
	return Once(func() {
		for _, reg := range regs {
			reg.Remove()
		}
	})
}
