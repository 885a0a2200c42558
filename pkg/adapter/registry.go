// Package adapter stores capability adapters keyed by type. Each factory is
// materialised lazily, at most once, and the instance is reused afterwards.
package adapter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"sync"
)

// ErrInvalidAdapter is returned for nil keys or factories.
var ErrInvalidAdapter = errors.New("adapter: invalid registration")

// Factory produces an adapter instance.
type Factory func() any

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report overrides.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry stores adapter factories by type. Registering a second factory
// for the same type replaces the first one and drops any instance already
// materialised from it.
type Registry struct {
	mu        sync.RWMutex
	factories map[reflect.Type]Factory
	instances map[reflect.Type]any
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		factories: make(map[reflect.Type]Factory),
		instances: make(map[reflect.Type]any),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds factory under key.
func (r *Registry) Register(key reflect.Type, factory Factory) error {
	if key == nil {
		return fmt.Errorf("%w: type key is required", ErrInvalidAdapter)
	}
	if factory == nil {
		return fmt.Errorf("%w: factory for %s is required", ErrInvalidAdapter, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		r.logger.Debug("adapter: replacing registration", slog.String("type", key.String()))
	}
	r.factories[key] = factory
	delete(r.instances, key)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(key reflect.Type, factory Factory) {
	if err := r.Register(key, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the adapter registered under key, materialising it on the
// first call.
func (r *Registry) Lookup(key reflect.Type) (any, bool) {
	if r == nil || key == nil {
		return nil, false
	}

	r.mu.RLock()
	instance, ok := r.instances[key]
	r.mu.RUnlock()
	if ok {
		return instance, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if instance, ok := r.instances[key]; ok {
		return instance, true
	}
	factory, ok := r.factories[key]
	if !ok {
		return nil, false
	}
	instance = factory()
	r.instances[key] = instance
	return instance, true
}

// Has reports whether a factory is registered under key.
func (r *Registry) Has(key reflect.Type) bool {
	if r == nil || key == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[key]
	return ok
}

// Types returns the registered keys sorted by name.
func (r *Registry) Types() []reflect.Type {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]reflect.Type, 0, len(r.factories))
	for key := range r.factories {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Key returns the type key for A. Interface types are keyed by the
// interface itself, not by a concrete implementation.
func Key[A any]() reflect.Type {
	return reflect.TypeFor[A]()
}

// Register adds a typed factory for A.
func Register[A any](r *Registry, factory func() A) error {
	if factory == nil {
		return fmt.Errorf("%w: factory for %s is required", ErrInvalidAdapter, Key[A]())
	}
	return r.Register(Key[A](), func() any { return factory() })
}

// Get returns the adapter registered for A.
func Get[A any](r *Registry) (A, bool) {
	var zero A
	instance, ok := r.Lookup(Key[A]())
	if !ok {
		return zero, false
	}
	typed, ok := instance.(A)
	if !ok {
		return zero, false
	}
	return typed, true
}
