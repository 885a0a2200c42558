package convert

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Numeric lists the model types supported by Number.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NumberOption configures a Number converter at construction.
type NumberOption func(*numberConfig)

type numberConfig struct {
	locale        language.Tag
	symbols       *Symbols
	allowNegative bool
	minDecimals   int
	maxDecimals   int
	grouping      bool
}

// WithLocale sets the locale used to pick separators.
func WithLocale(tag language.Tag) NumberOption {
	return func(c *numberConfig) { c.locale = tag }
}

// WithSymbols forces explicit separators instead of probing the locale.
func WithSymbols(symbols Symbols) NumberOption {
	return func(c *numberConfig) { c.symbols = &symbols }
}

// WithAllowNegative toggles acceptance of negative values.
func WithAllowNegative(allow bool) NumberOption {
	return func(c *numberConfig) { c.allowNegative = allow }
}

// WithDecimals bounds the number of decimal digits. A negative upper bound
// means unbounded.
func WithDecimals(lower, upper int) NumberOption {
	return func(c *numberConfig) {
		c.minDecimals = lower
		c.maxDecimals = upper
	}
}

// WithGrouping toggles grouping separators in the presentation.
func WithGrouping(on bool) NumberOption {
	return func(c *numberConfig) { c.grouping = on }
}

// Number converts between localized text and a nullable number.
//
// Empty or blank text maps to nil. Integer model types never accept
// decimals. The validation pattern is regenerated whenever the locale,
// sign, decimals or grouping configuration changes, and OnConfigChange
// listeners are notified so widgets can refresh their native pattern.
//
// Lossy: ToPresentation rounds to MaxDecimals, so values with more decimal
// digits do not survive a round trip.
type Number[N Numeric] struct {
	cfg       numberConfig
	kind      reflect.Kind
	symbols   Symbols
	pattern   string
	matcher   *regexp.Regexp
	listeners []func()
}

// NewNumber builds a Number converter. Defaults: English separators,
// negatives allowed, no grouping, unbounded decimals for floats.
func NewNumber[N Numeric](opts ...NumberOption) *Number[N] {
	var zero N
	n := &Number[N]{
		kind: reflect.TypeOf(zero).Kind(),
		cfg: numberConfig{
			locale:        language.English,
			allowNegative: true,
			maxDecimals:   -1,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&n.cfg)
		}
	}
	n.regenerate()
	return n
}

// SetLocale changes the locale and regenerates the pattern.
func (n *Number[N]) SetLocale(tag language.Tag) {
	n.cfg.locale = tag
	n.cfg.symbols = nil
	n.changed()
}

// SetSymbols forces explicit separators.
func (n *Number[N]) SetSymbols(symbols Symbols) {
	n.cfg.symbols = &symbols
	n.changed()
}

// SetAllowNegative toggles negative values.
func (n *Number[N]) SetAllowNegative(allow bool) {
	n.cfg.allowNegative = allow
	n.changed()
}

// SetMinDecimals sets the digits always shown after the separator. It is
// capped by a bounded MaxDecimals.
func (n *Number[N]) SetMinDecimals(digits int) {
	n.cfg.minDecimals = digits
	n.changed()
}

// SetMaxDecimals bounds the decimal digits; a negative value means unbounded.
func (n *Number[N]) SetMaxDecimals(digits int) {
	n.cfg.maxDecimals = digits
	n.changed()
}

// SetGrouping toggles grouping separators.
func (n *Number[N]) SetGrouping(on bool) {
	n.cfg.grouping = on
	n.changed()
}

// Locale returns the configured locale.
func (n *Number[N]) Locale() language.Tag { return n.cfg.locale }

// Symbols returns the separators currently in effect.
func (n *Number[N]) Symbols() Symbols { return n.symbols }

// AllowNegative reports whether negative values are accepted.
func (n *Number[N]) AllowNegative() bool { return n.cfg.allowNegative }

// MaxDecimals returns the effective maximum number of decimals.
func (n *Number[N]) MaxDecimals() int { return n.maxDecimals() }

// ValidationPattern implements Patterned.
func (n *Number[N]) ValidationPattern() string { return n.pattern }

// OnConfigChange implements Observable.
func (n *Number[N]) OnConfigChange(fn func()) {
	if fn != nil {
		n.listeners = append(n.listeners, fn)
	}
}

// ToModel parses text. Blank text yields nil.
func (n *Number[N]) ToModel(text string) (*N, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	if !n.matcher.MatchString(trimmed) {
		return nil, newError(text, "model", n.pattern, errPatternMismatch)
	}

	normalized := n.normalize(trimmed)
	value, err := n.parse(normalized)
	if err != nil {
		return nil, newError(text, "model", n.pattern, err)
	}
	return &value, nil
}

// ToPresentation formats value. nil yields "".
func (n *Number[N]) ToPresentation(value *N) (string, error) {
	if value == nil {
		return "", nil
	}
	v := *value
	if v < 0 && !n.cfg.allowNegative {
		return "", newError(v, "presentation", n.pattern, errNegative)
	}

	var raw string
	switch {
	case n.isFloat():
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", newError(v, "presentation", n.pattern, errOutOfRange)
		}
		raw = n.formatFloat(f)
	case n.isUnsigned():
		raw = strconv.FormatUint(uint64(v), 10)
	default:
		raw = strconv.FormatInt(int64(v), 10)
	}
	return n.localize(raw), nil
}

func (n *Number[N]) changed() {
	n.regenerate()
	for _, fn := range n.listeners {
		fn()
	}
}

func (n *Number[N]) regenerate() {
	if n.cfg.symbols != nil {
		n.symbols = *n.cfg.symbols
	} else {
		n.symbols = DetectSymbols(n.cfg.locale)
	}
	n.pattern = n.buildPattern()
	n.matcher = regexp.MustCompile("^(?:" + n.pattern + ")$")
}

func (n *Number[N]) buildPattern() string {
	var b strings.Builder
	if n.cfg.allowNegative && !n.isUnsigned() {
		b.WriteString("-?")
	}

	alternatives := n.symbols.groupingAlternatives()
	if n.cfg.grouping && len(alternatives) > 0 {
		group := charClass(alternatives)
		b.WriteString(`(?:\d{1,3}(?:` + group + `\d{3})*|\d+)`)
	} else {
		b.WriteString(`\d+`)
	}

	decimal := regexp.QuoteMeta(string(n.symbols.Decimal))
	switch limit := n.maxDecimals(); {
	case limit == 0:
	case limit < 0:
		b.WriteString(`(?:` + decimal + `\d+)?`)
	default:
		b.WriteString(`(?:` + decimal + `\d{1,` + strconv.Itoa(limit) + `})?`)
	}
	return b.String()
}

func (n *Number[N]) minDecimals() int {
	if limit := n.cfg.maxDecimals; limit >= 0 && n.cfg.minDecimals > limit {
		return limit
	}
	return n.cfg.minDecimals
}

func (n *Number[N]) maxDecimals() int {
	if !n.isFloat() {
		return 0
	}
	return n.cfg.maxDecimals
}

func (n *Number[N]) normalize(text string) string {
	var b strings.Builder
	grouping := n.symbols.groupingAlternatives()
	for _, r := range text {
		switch {
		case r == n.symbols.Decimal:
			b.WriteRune('.')
		case containsRune(grouping, r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (n *Number[N]) parse(text string) (N, error) {
	switch {
	case n.isFloat():
		bits := 64
		if n.kind == reflect.Float32 {
			bits = 32
		}
		f, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return 0, errOutOfRange
		}
		return N(f), nil
	case n.isUnsigned():
		u, err := strconv.ParseUint(text, 10, n.bitSize())
		if err != nil {
			return 0, errOutOfRange
		}
		return N(u), nil
	default:
		i, err := strconv.ParseInt(text, 10, n.bitSize())
		if err != nil {
			return 0, errOutOfRange
		}
		return N(i), nil
	}
}

func (n *Number[N]) formatFloat(f float64) string {
	bits := 64
	if n.kind == reflect.Float32 {
		bits = 32
	}
	if f == 0 {
		f = 0 // drops the sign of -0
	}
	raw := strconv.FormatFloat(f, 'f', -1, bits)
	decimals := 0
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		decimals = len(raw) - idx - 1
	}
	if limit := n.cfg.maxDecimals; limit >= 0 && decimals > limit {
		raw = strconv.FormatFloat(f, 'f', limit, bits)
		decimals = limit
	}
	if pad := n.minDecimals(); pad > decimals {
		if decimals == 0 {
			raw += "."
		}
		raw += strings.Repeat("0", pad-decimals)
	}
	return raw
}

func (n *Number[N]) localize(raw string) string {
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign, raw = "-", raw[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(raw, ".")
	if n.cfg.grouping && n.symbols.Grouping != 0 && len(intPart) > 3 {
		intPart = group(intPart, n.symbols.Grouping)
	}
	out := sign + intPart
	if hasFrac {
		out += string(n.symbols.Decimal) + fracPart
	}
	return out
}

func (n *Number[N]) isFloat() bool {
	return n.kind == reflect.Float32 || n.kind == reflect.Float64
}

func (n *Number[N]) isUnsigned() bool {
	switch n.kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func (n *Number[N]) bitSize() int {
	switch n.kind {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32:
		return 32
	default:
		return 64
	}
}

func group(digits string, sep rune) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteRune(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func charClass(runes []rune) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range runes {
		b.WriteString(regexp.QuoteMeta(string(r)))
	}
	b.WriteByte(']')
	return b.String()
}

func containsRune(runes []rune, r rune) bool {
	for _, candidate := range runes {
		if candidate == r {
			return true
		}
	}
	return false
}
