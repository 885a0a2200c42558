// Package schemafield turns OpenAPI schemas into bound inputs. A priority
// ordered registry decides the field kind of each property, and Builder
// creates the matching widget, input and schema validators.
package schemafield

import (
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Kind identifies how a property is edited.
type Kind string

// Built-in field kinds resolved by the registry.
const (
	KindText        Kind = "text"
	KindNumber      Kind = "number"
	KindInteger     Kind = "integer"
	KindBoolean     Kind = "boolean"
	KindDate        Kind = "date"
	KindTime        Kind = "time"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multi-select"
)

// KindExtension names the schema extension that forces a kind.
const KindExtension = "x-formbind-kind"

// Matcher decides whether a kind should handle the supplied schema.
type Matcher func(schema *openapi3.Schema) bool

type rule struct {
	kind     Kind
	priority int
	match    Matcher
	order    int
}

// Registry selects field kinds for schemas based on explicit extensions or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a kind.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for kind with the provided priority. The latest
// registration wins among equal priorities only by being evaluated after
// earlier ones, so prefer a higher priority to override a built-in.
func (r *Registry) Register(kind Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := Kind(strings.TrimSpace(string(kind)))
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for schema. The x-formbind-kind extension is
// honoured before matcher evaluation.
func (r *Registry) Resolve(schema *openapi3.Schema) (Kind, bool) {
	if schema == nil {
		return "", false
	}
	if explicit := explicitKind(schema); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(schema) {
			return entry.kind, true
		}
	}
	return "", false
}

func explicitKind(schema *openapi3.Schema) Kind {
	if schema.Extensions == nil {
		return ""
	}
	value, ok := schema.Extensions[KindExtension].(string)
	if !ok {
		return ""
	}
	return Kind(strings.TrimSpace(value))
}

func (r *Registry) registerBuiltins() {
	r.Register(KindMultiSelect, 90, func(schema *openapi3.Schema) bool {
		if !schemaIs(schema, openapi3.TypeArray) || schema.Items == nil || schema.Items.Value == nil {
			return false
		}
		return len(schema.Items.Value.Enum) > 0
	})

	r.Register(KindSelect, 80, func(schema *openapi3.Schema) bool {
		if schemaIs(schema, openapi3.TypeArray) || schemaIs(schema, openapi3.TypeObject) {
			return false
		}
		return len(schema.Enum) > 0
	})

	r.Register(KindBoolean, 70, func(schema *openapi3.Schema) bool {
		return schemaIs(schema, openapi3.TypeBoolean)
	})

	r.Register(KindDate, 60, func(schema *openapi3.Schema) bool {
		return schemaIs(schema, openapi3.TypeString) && normalizedFormat(schema) == "date"
	})

	r.Register(KindTime, 60, func(schema *openapi3.Schema) bool {
		if !schemaIs(schema, openapi3.TypeString) {
			return false
		}
		format := normalizedFormat(schema)
		return format == "time" || format == "partial-time"
	})

	r.Register(KindInteger, 50, func(schema *openapi3.Schema) bool {
		return schemaIs(schema, openapi3.TypeInteger)
	})

	r.Register(KindNumber, 40, func(schema *openapi3.Schema) bool {
		return schemaIs(schema, openapi3.TypeNumber)
	})

	r.Register(KindText, 10, func(schema *openapi3.Schema) bool {
		return schemaIs(schema, openapi3.TypeString)
	})
}

func schemaIs(schema *openapi3.Schema, typ string) bool {
	return schema != nil && schema.Type != nil && schema.Type.Includes(typ)
}

func normalizedFormat(schema *openapi3.Schema) string {
	return strings.TrimSpace(strings.ToLower(schema.Format))
}
