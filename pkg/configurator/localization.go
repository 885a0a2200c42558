package configurator

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbind/pkg/l10n"
)

// Localization is the localization state shared by the text configurators
// of one builder.
type Localization struct {
	ctx      *l10n.Context
	deferred bool
}

// NewLocalization returns shared localization state. A nil ctx resolves
// through l10n.Default.
func NewLocalization(ctx *l10n.Context, deferred bool) *Localization {
	return &Localization{ctx: ctx, deferred: deferred}
}

// Context returns the context text is resolved with.
func (l *Localization) Context() *l10n.Context {
	if l == nil {
		return l10n.Default()
	}
	return l10n.OrDefault(l.ctx)
}

// Deferred reports whether resolution waits for the widget's first attach.
func (l *Localization) Deferred() bool {
	return l != nil && l.deferred
}

// LocalizationConfigurator changes how subsequently configured text is
// resolved. Text configured earlier keeps the settings it was applied with.
type LocalizationConfigurator[B any] struct {
	owner B
	state *Localization
}

// NewLocalizationConfigurator binds state to owner.
func NewLocalizationConfigurator[B any](owner B, state *Localization) LocalizationConfigurator[B] {
	if state == nil {
		state = NewLocalization(nil, false)
	}
	return LocalizationConfigurator[B]{owner: owner, state: state}
}

// Localized resolves text with ctx.
func (c *LocalizationConfigurator[B]) Localized(ctx *l10n.Context) B {
	c.state.ctx = ctx
	return c.owner
}

// DeferLocalization postpones text resolution until the widget is first
// attached.
func (c *LocalizationConfigurator[B]) DeferLocalization(deferred bool) B {
	c.state.deferred = deferred
	return c.owner
}

// LocalizationState returns the shared state.
func (c *LocalizationConfigurator[B]) LocalizationState() *Localization {
	return c.state
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeText strips markup from caption text. Entities are decoded so the
// result is plain text suitable for a widget caption.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
