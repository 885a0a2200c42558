package native

import "strings"

// Autocomplete mirrors the HTML autocomplete attribute values.
type Autocomplete string

const (
	AutocompleteOff           Autocomplete = "off"
	AutocompleteOn            Autocomplete = "on"
	AutocompleteName          Autocomplete = "name"
	AutocompleteEmail         Autocomplete = "email"
	AutocompleteUsername      Autocomplete = "username"
	AutocompleteNewPassword   Autocomplete = "new-password"
	AutocompleteCurrentPasswd Autocomplete = "current-password"
	AutocompleteTel           Autocomplete = "tel"
	AutocompleteStreetAddress Autocomplete = "street-address"
	AutocompletePostalCode    Autocomplete = "postal-code"
	AutocompleteCountry       Autocomplete = "country"
	AutocompleteBirthday      Autocomplete = "bday"
)

// ValueChangeMode controls when the client synchronises edits.
type ValueChangeMode string

const (
	ValueChangeEager    ValueChangeMode = "eager"
	ValueChangeLazy     ValueChangeMode = "lazy"
	ValueChangeTimeout  ValueChangeMode = "timeout"
	ValueChangeOnBlur   ValueChangeMode = "on-blur"
	ValueChangeOnChange ValueChangeMode = "on-change"
)

// KeyModifier is a bit set of modifier keys held during a key event.
type KeyModifier uint8

const (
	ModifierShift KeyModifier = 1 << iota
	ModifierCtrl
	ModifierAlt
	ModifierMeta
)

// KeyEvent describes a keyboard interaction.
type KeyEvent struct {
	Key       string
	Code      string
	Modifiers KeyModifier
	Repeat    bool
}

// Matches reports whether the event is for key (case-insensitive) with
// exactly the supplied modifiers.
func (e KeyEvent) Matches(key string, modifiers KeyModifier) bool {
	return strings.EqualFold(e.Key, key) && e.Modifiers == modifiers
}

// CompositionEvent describes an IME composition step.
type CompositionEvent struct {
	Data   string
	Locale string
}

// CalendarI18n carries the localized captions of a date picker.
type CalendarI18n struct {
	MonthNames   []string
	WeekdayNames []string
	Today        string
	Cancel       string
	FirstWeekday int
}

// HasCalendarI18n widgets accept localized calendar captions.
type HasCalendarI18n interface {
	SetCalendarI18n(CalendarI18n)
	CalendarI18n() CalendarI18n
}
