package schemafield

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// ErrSchemaNotFound is returned when a document has no schema for the
// requested name.
var ErrSchemaNotFound = errors.New("schemafield: schema not found")

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// LoadFile reads path and calls Load.
func LoadFile(ctx context.Context, path, name string) (*openapi3.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafield: read %s: %w", path, err)
	}
	return Load(ctx, raw, name)
}

// Load decodes a JSON or YAML payload. OpenAPI documents are loaded with
// their references resolved and name selects a component schema or, when
// no component matches, the request body of the operation with that id. A
// document with a single component schema needs no name. Any other payload
// is decoded as a bare schema and name is ignored.
func Load(ctx context.Context, raw []byte, name string) (*openapi3.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var probe map[string]any
	if err := yaml.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("schemafield: decode: %w", err)
	}
	if _, ok := probe["openapi"]; ok {
		return loadFromDocument(ctx, raw, strings.TrimSpace(name))
	}

	// Round trip through JSON so YAML schemas decode like JSON ones.
	encoded, err := json.Marshal(probe)
	if err != nil {
		return nil, fmt.Errorf("schemafield: decode: %w", err)
	}
	var schema openapi3.Schema
	if err := json.Unmarshal(encoded, &schema); err != nil {
		return nil, fmt.Errorf("schemafield: decode schema: %w", err)
	}
	return &schema, nil
}

func loadFromDocument(ctx context.Context, raw []byte, name string) (*openapi3.Schema, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schemafield: load document: %w", err)
	}

	var schemas openapi3.Schemas
	if doc.Components != nil {
		schemas = doc.Components.Schemas
	}
	if name == "" {
		if len(schemas) != 1 {
			return nil, fmt.Errorf("%w: document has %d component schemas, pick one of %s",
				ErrSchemaNotFound, len(schemas), strings.Join(schemaNames(schemas), ", "))
		}
		for _, ref := range schemas {
			return resolved(ref, "component")
		}
	}
	if ref, ok := schemas[name]; ok {
		return resolved(ref, name)
	}
	if doc.Paths != nil {
		for _, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op == nil || op.OperationID != name {
					continue
				}
				return requestSchema(op, name)
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
}

func requestSchema(op *openapi3.Operation, name string) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("%w: operation %q has no request body", ErrSchemaNotFound, name)
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return resolved(mt.Schema, name)
		}
	}
	for _, mt := range content {
		if mt != nil {
			return resolved(mt.Schema, name)
		}
	}
	return nil, fmt.Errorf("%w: operation %q has no request schema", ErrSchemaNotFound, name)
}

func resolved(ref *openapi3.SchemaRef, name string) (*openapi3.Schema, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q is not resolved", ErrSchemaNotFound, name)
	}
	return ref.Value, nil
}

func schemaNames(schemas openapi3.Schemas) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
