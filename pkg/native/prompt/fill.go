package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/native"
)

// FillOption configures Fill.
type FillOption func(*fillConfig)

type fillConfig struct {
	attempts int
	logger   *slog.Logger
}

// WithMaxAttempts bounds how often an invalid field is asked again. Zero
// or less asks until the answer is valid.
func WithMaxAttempts(n int) FillOption {
	return func(c *fillConfig) { c.attempts = n }
}

// WithLogger sets the logger used to trace prompts.
func WithLogger(logger *slog.Logger) FillOption {
	return func(c *fillConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Fill asks every field of g whose widget implements Asker, in binding
// order. Disabled and read-only widgets are skipped. After each answer the
// field is validated; failures are shown through driver.Info and the field
// is asked again.
func Fill(ctx context.Context, driver Driver, g *form.Group, opts ...FillOption) error {
	if driver == nil {
		return errors.New("prompt: driver is nil")
	}
	cfg := fillConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for _, f := range g.Fields() {
		asker, ok := f.Component().(Asker)
		if !ok || !editable(f.Component()) {
			continue
		}
		if err := fillField(ctx, driver, f, asker, cfg); err != nil {
			return err
		}
	}
	return nil
}

func fillField(ctx context.Context, driver Driver, f form.Field, asker Asker, cfg fillConfig) error {
	for attempt := 1; ; attempt++ {
		if err := asker.Ask(ctx, driver); err != nil {
			return fmt.Errorf("prompt: %s: %w", f.Path(), err)
		}
		v, ok := f.(form.Validatable)
		if !ok {
			return nil
		}
		result := v.Validate()
		if result.IsValid() {
			return nil
		}
		cfg.logger.Debug("prompt: invalid answer",
			slog.String("path", f.Path()),
			slog.Int("attempt", attempt),
		)
		if cfg.attempts > 0 && attempt >= cfg.attempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, f.Path())
		}
		if err := driver.Info(ctx, strings.Join(result.Messages(), "\n")); err != nil {
			return err
		}
	}
}

func editable(component any) bool {
	if w, ok := component.(native.HasEnabled); ok && !w.IsEnabled() {
		return false
	}
	if w, ok := component.(native.HasReadOnly); ok && w.IsReadOnly() {
		return false
	}
	return true
}
