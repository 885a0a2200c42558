package selection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// Query narrows a data source fetch. A zero Limit means no limit.
type Query struct {
	Text   string
	Offset int
	Limit  int
}

// DataSource provides the items a selection widget offers. Implementations
// typically run a datastore query.
type DataSource[ITEM any] interface {
	Fetch(ctx context.Context, query Query) ([]ITEM, error)
}

// DataSourceFunc adapts a function to DataSource.
type DataSourceFunc[ITEM any] func(ctx context.Context, query Query) ([]ITEM, error)

func (f DataSourceFunc[ITEM]) Fetch(ctx context.Context, query Query) ([]ITEM, error) {
	return f(ctx, query)
}

// Slice serves items from memory. caption is used to match Query.Text
// (case-insensitive substring); a nil caption ignores the text filter.
func Slice[ITEM any](items []ITEM, caption func(ITEM) string) DataSource[ITEM] {
	return sliceSource[ITEM]{items: items, caption: caption}
}

type sliceSource[ITEM any] struct {
	items   []ITEM
	caption func(ITEM) string
}

func (s sliceSource[ITEM]) Fetch(ctx context.Context, query Query) ([]ITEM, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := strings.ToLower(strings.TrimSpace(query.Text))
	matched := make([]ITEM, 0, len(s.items))
	for _, item := range s.items {
		if text != "" && s.caption != nil && !strings.Contains(strings.ToLower(s.caption(item)), text) {
			continue
		}
		matched = append(matched, item)
	}
	if query.Offset > 0 {
		if query.Offset >= len(matched) {
			return []ITEM{}, nil
		}
		matched = matched[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(matched) {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

// LookupOption configures Lookup.
type LookupOption func(*lookupConfig)

type lookupConfig struct {
	query    Query
	pageSize int
	logger   *slog.Logger
}

// WithQuery sets the base query used to scan the source.
func WithQuery(query Query) LookupOption {
	return func(c *lookupConfig) { c.query = query }
}

// WithPageSize scans the source in pages of size items. Zero fetches
// everything at once.
func WithPageSize(size int) LookupOption {
	return func(c *lookupConfig) {
		if size >= 0 {
			c.pageSize = size
		}
	}
}

// WithLogger sets the logger used to report fetch failures.
func WithLogger(logger *slog.Logger) LookupOption {
	return func(c *lookupConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Lookup builds an ItemConverter resolving values by scanning source for
// the item whose identity equals the value. Fetch failures and missing items
// both mean "no selection"; failures are logged.
func Lookup[T comparable, ITEM any](ctx context.Context, source DataSource[ITEM], identity func(ITEM) T, opts ...LookupOption) ItemConverter[T, ITEM] {
	if source == nil || identity == nil {
		panic(errors.Join(ErrIllegalArgument, errors.New("selection: lookup needs a source and an identity function")))
	}
	cfg := lookupConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &lookup[T, ITEM]{ctx: ctx, source: source, identity: identity, cfg: cfg}
}

type lookup[T comparable, ITEM any] struct {
	ctx      context.Context
	source   DataSource[ITEM]
	identity func(ITEM) T
	cfg      lookupConfig
}

func (l *lookup[T, ITEM]) Value(item ITEM) T { return l.identity(item) }

func (l *lookup[T, ITEM]) Item(value T) (ITEM, bool) {
	query := l.cfg.query
	if l.cfg.pageSize > 0 {
		query.Limit = l.cfg.pageSize
	}
	for {
		items, err := l.source.Fetch(l.ctx, query)
		if err != nil {
			l.cfg.logger.Debug("selection: lookup fetch failed",
				slog.Any("value", value),
				slog.String("error", err.Error()),
			)
			break
		}
		for _, item := range items {
			if l.identity(item) == value {
				return item, true
			}
		}
		if l.cfg.pageSize == 0 || len(items) < l.cfg.pageSize {
			break
		}
		query.Offset += len(items)
	}
	var zero ITEM
	return zero, false
}
