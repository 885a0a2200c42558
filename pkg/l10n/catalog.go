package l10n

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog is an in-memory Resolver keyed by locale. Nested message trees
// are flattened into dotted codes ("validation.required").
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback language.Tag
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithFallbackLocale sets the locale consulted when neither the requested
// locale nor its base language has a message.
func WithFallbackLocale(tag language.Tag) CatalogOption {
	return func(c *Catalog) { c.fallback = tag }
}

// NewCatalog creates an empty catalog falling back to English.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		messages: make(map[string]map[string]string),
		fallback: language.English,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Add merges messages for locale. Later additions override earlier ones.
func (c *Catalog) Add(locale language.Tag, messages map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := locale.String()
	bucket, ok := c.messages[key]
	if !ok {
		bucket = make(map[string]string, len(messages))
		c.messages[key] = bucket
	}
	for code, text := range messages {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		bucket[code] = text
	}
}

// LoadYAML reads a document whose top-level keys are locales and whose
// values are (possibly nested) message maps:
//
//	en:
//	  validation:
//	    required: Value is required
//	de:
//	  validation:
//	    required: Wert ist erforderlich
func (c *Catalog) LoadYAML(r io.Reader) error {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("l10n: decode yaml: %w", err)
	}

	for rawLocale, tree := range doc {
		locale, err := language.Parse(strings.TrimSpace(rawLocale))
		if err != nil {
			return fmt.Errorf("l10n: invalid locale %q: %w", rawLocale, err)
		}
		nested, ok := asStringMap(tree)
		if !ok {
			return fmt.Errorf("l10n: invalid messages for %q: expected map, got %T", rawLocale, tree)
		}
		flat := make(map[string]string)
		flatten("", nested, flat)
		c.Add(locale, flat)
	}
	return nil
}

// LoadYAMLFile loads a YAML catalog from path.
func LoadYAMLFile(path string, opts ...CatalogOption) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("l10n: read catalog: %w", err)
	}
	catalog := NewCatalog(opts...)
	if err := catalog.LoadYAML(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Resolve implements Resolver. It tries the exact locale, its base language
// and finally the fallback locale.
func (c *Catalog) Resolve(locale language.Tag, code string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.candidates(locale) {
		if text, ok := c.messages[candidate][code]; ok {
			return text, true
		}
	}
	return "", false
}

// Locales lists the locales with at least one message, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) candidates(locale language.Tag) []string {
	out := []string{locale.String()}
	if base, conf := locale.Base(); conf != language.No {
		if b := base.String(); b != out[0] {
			out = append(out, b)
		}
	}
	if fallback := c.fallback.String(); fallback != out[len(out)-1] {
		out = append(out, fallback)
	}
	return out
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for key, value := range tree {
		code := key
		if prefix != "" {
			code = prefix + "." + key
		}
		if nested, ok := asStringMap(value); ok {
			flatten(code, nested, out)
			continue
		}
		if value == nil {
			continue
		}
		out[code] = fmt.Sprint(value)
	}
}

func asStringMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out, true
	default:
		return nil, false
	}
}
