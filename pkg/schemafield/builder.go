package schemafield

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/builders"
	"github.com/goliatone/go-formbind/pkg/condition"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/selection"
	"github.com/goliatone/go-formbind/pkg/validation"
	"github.com/goliatone/go-formbind/pkg/validation/schemarule"
)

// Schema extensions read while configuring a field.
const (
	// PlaceholderExtension holds the placeholder text of text fields.
	PlaceholderExtension = "x-formbind-placeholder"
	// ClassTokenExtension names a palette token holding class names.
	ClassTokenExtension = "x-formbind-class-token"
	// ConditionExtension holds an expression over form paths; the field is
	// active only while it holds.
	ConditionExtension = "x-formbind-visible-if"
)

// ErrNotObject is returned when a form is requested for a non-object schema.
var ErrNotObject = errors.New("schemafield: schema is not an object")

// Field describes one schema property about to be bound.
type Field struct {
	Path     string
	Name     string
	Kind     Kind
	Schema   *openapi3.Schema
	Required bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithRegistry replaces the kind registry.
func WithRegistry(registry *Registry) Option {
	return func(b *Builder) {
		if registry != nil {
			b.registry = registry
		}
	}
}

// WithBuilderOptions passes opts to every input builder.
func WithBuilderOptions(opts ...builders.Option) Option {
	return func(b *Builder) { b.settings = append(b.settings, opts...) }
}

// WithLogger sets the logger used to report skipped properties.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFormatValidation enables "format" checks in schema validators.
func WithFormatValidation() Option {
	return func(b *Builder) { b.rules = append(b.rules, schemarule.WithFormatValidation()) }
}

// WithAllErrors reports every schema violation of a field.
func WithAllErrors() Option {
	return func(b *Builder) { b.rules = append(b.rules, schemarule.WithAllErrors()) }
}

// WithLabelCodes resolves labels through the message code
// "<prefix>.<path>", falling back to the schema title or property name.
func WithLabelCodes(prefix string) Option {
	return func(b *Builder) { b.labelPrefix = strings.TrimSuffix(strings.TrimSpace(prefix), ".") }
}

// Builder binds the properties of object schemas into form groups.
type Builder struct {
	registry    *Registry
	factory     WidgetFactory
	settings    []builders.Option
	rules       []schemarule.Option
	labelPrefix string
	logger      *slog.Logger
}

// New returns a builder creating widgets with factory. A nil factory uses
// headless widgets.
func New(factory WidgetFactory, opts ...Option) *Builder {
	if factory == nil {
		factory = NewHeadless()
	}
	b := &Builder{
		registry: NewRegistry(),
		factory:  factory,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build returns a new group holding one field per supported property.
func (b *Builder) Build(schema *openapi3.Schema) (*form.Group, error) {
	g := form.NewGroup()
	if err := b.BindTo(g, "", schema); err != nil {
		return g, err
	}
	return g, nil
}

// BindTo binds the properties of schema into g below prefix. Properties are
// bound in name order; nested objects contribute dotted paths. Properties
// whose kind cannot be resolved are skipped. Binding errors are joined.
func (b *Builder) BindTo(g *form.Group, prefix string, schema *openapi3.Schema) error {
	if !isObject(schema) {
		return ErrNotObject
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		path := joinPath(prefix, name)
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			b.logger.Debug("schemafield: unresolved property", slog.String("path", path))
			continue
		}
		prop := ref.Value
		if isObject(prop) && explicitKind(prop) == "" {
			if err := b.BindTo(g, path, prop); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		kind, ok := b.registry.Resolve(prop)
		if !ok {
			b.logger.Debug("schemafield: unsupported property", slog.String("path", path))
			continue
		}
		f := Field{
			Path:     path,
			Name:     name,
			Kind:     kind,
			Schema:   prop,
			Required: slices.Contains(schema.Required, name),
		}
		if err := b.bind(g, f); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := b.guard(g, f); err != nil {
			errs = append(errs, err)
		}
	}
	if err := g.Refresh(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (b *Builder) guard(g *form.Group, f Field) error {
	source, ok := f.Schema.Extensions[ConditionExtension].(string)
	if !ok || strings.TrimSpace(source) == "" {
		return nil
	}
	rule, err := condition.Compile(source)
	if err != nil {
		return fmt.Errorf("schemafield: condition for %q: %w", f.Path, err)
	}
	return g.SetCondition(f.Path, rule)
}

func (b *Builder) bind(g *form.Group, f Field) error {
	var err error
	switch f.Kind {
	case KindText:
		in := configure[*string](b, f, builders.String(b.factory.Text(f.Path), b.settings...))
		err = form.Bind(g, f.Path, in)
	case KindNumber:
		nb := builders.Number[float64](b.factory.Text(f.Path), b.settings...)
		nb.AllowNegative(allowsNegative(f.Schema))
		err = form.Bind(g, f.Path, configure[*float64](b, f, nb))
	case KindInteger:
		nb := builders.Number[int64](b.factory.Text(f.Path), b.settings...)
		nb.AllowNegative(allowsNegative(f.Schema))
		err = form.Bind(g, f.Path, configure[*int64](b, f, nb))
	case KindBoolean:
		in := configure[bool](b, f, builders.Boolean(b.factory.Checkbox(f.Path), b.settings...))
		err = form.Bind(g, f.Path, in)
	case KindDate:
		in := configure[*time.Time](b, f, builders.Date(b.factory.Date(f.Path), b.settings...))
		err = form.Bind(g, f.Path, in)
	case KindTime:
		tb := builders.Time(b.factory.Text(f.Path), b.settings...).Seconds(true)
		err = form.Bind(g, f.Path, configure[*time.Time](b, f, tb))
	case KindSelect:
		captions, conv := enumItems(f.Schema.Enum)
		sb := builders.SingleSelect(b.factory.Select(f.Path, captions), conv, b.settings...)
		err = form.Bind(g, f.Path, configure[*any](b, f, sb))
	case KindMultiSelect:
		captions, conv := enumItems(f.Schema.Items.Value.Enum)
		mb := builders.MultiSelect(b.factory.MultiSelect(f.Path, captions), conv, b.settings...)
		err = form.Bind(g, f.Path, configure[[]any](b, f, mb))
	default:
		b.logger.Debug("schemafield: no binding for kind",
			slog.String("path", f.Path),
			slog.String("kind", string(f.Kind)),
		)
		return nil
	}
	if err != nil {
		return err
	}
	return b.applyDefault(g, f)
}

func (b *Builder) applyDefault(g *form.Group, f Field) error {
	if f.Schema.Default == nil {
		return nil
	}
	field, ok := g.Field(f.Path)
	if !ok {
		return nil
	}
	if err := field.SetValue(f.Schema.Default); err != nil {
		return fmt.Errorf("schemafield: default for %q: %w", f.Path, err)
	}
	return nil
}

type configurable[T, B any] interface {
	ID(string) B
	Label(string) B
	LabelCode(code, fallback string, args ...any) B
	Title(string) B
	ReadOnly(bool) B
	ThemeClassNames(token string) B
	Required() B
	Validator(validation.Validator[T]) B
	BuildValidatable() *validation.Input[T]
}

type placeholderSetter[B any] interface {
	Placeholder(string) B
}

func configure[T any, B configurable[T, B]](b *Builder, f Field, builder B) *validation.Input[T] {
	schema := f.Schema
	builder.ID("field-" + strings.ReplaceAll(f.Path, ".", "-"))

	label := strings.TrimSpace(schema.Title)
	if label == "" {
		label = f.Name
	}
	if b.labelPrefix != "" {
		builder.LabelCode(b.labelPrefix+"."+f.Path, label)
	} else {
		builder.Label(label)
	}
	if description := strings.TrimSpace(schema.Description); description != "" {
		builder.Title(description)
	}
	if placeholder, ok := schema.Extensions[PlaceholderExtension].(string); ok {
		if p, ok := any(builder).(placeholderSetter[B]); ok {
			p.Placeholder(placeholder)
		}
	}
	if token, ok := schema.Extensions[ClassTokenExtension].(string); ok {
		builder.ThemeClassNames(token)
	}
	if schema.ReadOnly {
		builder.ReadOnly(true)
	}
	if f.Required {
		builder.Required()
	}
	builder.Validator(schemarule.For[T](schema, b.rules...))
	return builder.BuildValidatable()
}

func enumItems(values []any) ([]string, selection.ItemConverter[any, string]) {
	captions := make([]string, 0, len(values))
	byCaption := make(map[string]any, len(values))
	for _, value := range values {
		caption := fmt.Sprint(value)
		if _, exists := byCaption[caption]; exists {
			continue
		}
		byCaption[caption] = value
		captions = append(captions, caption)
	}
	conv := selection.Funcs(
		func(caption string) any { return byCaption[caption] },
		func(value any) (string, bool) {
			caption := fmt.Sprint(value)
			_, ok := byCaption[caption]
			return caption, ok
		},
	)
	return captions, conv
}

func allowsNegative(schema *openapi3.Schema) bool {
	return schema.Min == nil || *schema.Min < 0
}

func isObject(schema *openapi3.Schema) bool {
	if schema == nil {
		return false
	}
	if schema.Type == nil || len(schema.Type.Slice()) == 0 {
		return len(schema.Properties) > 0
	}
	return schema.Type.Is(openapi3.TypeObject)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
