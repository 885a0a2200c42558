package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeOption configures a TimeOfDay converter at construction.
type TimeOption func(*TimeOfDay)

// WithTimeSeparator sets the rune between hours, minutes and seconds.
func WithTimeSeparator(sep rune) TimeOption {
	return func(t *TimeOfDay) {
		if sep != 0 {
			t.separator = sep
		}
	}
}

// WithSeconds toggles the seconds component.
func WithSeconds(on bool) TimeOption {
	return func(t *TimeOfDay) { t.seconds = on }
}

// TimeOfDay converts between "HH:MM[:SS]" text and a nullable clock time.
// Model values are normalised to 0000-01-01 in UTC so that two equal clock
// readings compare equal.
//
// Lossy: nanoseconds are always dropped, and seconds are dropped when the
// seconds component is disabled.
type TimeOfDay struct {
	separator rune
	seconds   bool
	pattern   string
	matcher   *regexp.Regexp
	listeners []func()
}

// NewTimeOfDay builds a TimeOfDay converter using ':' and no seconds.
func NewTimeOfDay(opts ...TimeOption) *TimeOfDay {
	t := &TimeOfDay{separator: ':'}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	t.regenerate()
	return t
}

// SetSeparator changes the separator and regenerates the pattern.
func (t *TimeOfDay) SetSeparator(sep rune) {
	if sep == 0 || sep == t.separator {
		return
	}
	t.separator = sep
	t.changed()
}

// SetSeconds toggles the seconds component and regenerates the pattern.
func (t *TimeOfDay) SetSeconds(on bool) {
	if on == t.seconds {
		return
	}
	t.seconds = on
	t.changed()
}

func (t *TimeOfDay) Separator() rune  { return t.separator }
func (t *TimeOfDay) HasSeconds() bool { return t.seconds }

// ValidationPattern implements Patterned.
func (t *TimeOfDay) ValidationPattern() string { return t.pattern }

// OnConfigChange implements Observable.
func (t *TimeOfDay) OnConfigChange(fn func()) {
	if fn != nil {
		t.listeners = append(t.listeners, fn)
	}
}

// Clock returns the model value for the given clock reading.
func Clock(hour, minute, second int) time.Time {
	return time.Date(0, time.January, 1, hour, minute, second, 0, time.UTC)
}

// ToModel parses text. Blank text yields nil.
func (t *TimeOfDay) ToModel(text string) (*time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	if !t.matcher.MatchString(trimmed) {
		return nil, newError(text, "model", t.pattern, errPatternMismatch)
	}

	parts := strings.Split(trimmed, string(t.separator))
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	second := 0
	if len(parts) == 3 {
		second, _ = strconv.Atoi(parts[2])
	}
	if hour > 23 || minute > 59 || second > 59 {
		return nil, newError(text, "model", t.pattern, errOutOfRange)
	}
	value := Clock(hour, minute, second)
	return &value, nil
}

// ToPresentation formats value. nil yields "".
func (t *TimeOfDay) ToPresentation(value *time.Time) (string, error) {
	if value == nil {
		return "", nil
	}
	sep := string(t.separator)
	out := fmt.Sprintf("%02d%s%02d", value.Hour(), sep, value.Minute())
	if t.seconds {
		out += fmt.Sprintf("%s%02d", sep, value.Second())
	}
	return out, nil
}

func (t *TimeOfDay) changed() {
	t.regenerate()
	for _, fn := range t.listeners {
		fn()
	}
}

func (t *TimeOfDay) regenerate() {
	sep := regexp.QuoteMeta(string(t.separator))
	t.pattern = `\d{1,2}` + sep + `\d{2}`
	if t.seconds {
		t.pattern += `(?:` + sep + `\d{2})?`
	}
	t.matcher = regexp.MustCompile("^(?:" + t.pattern + ")$")
}
