package convert

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbols are the separators a locale uses when writing numbers.
type Symbols struct {
	Decimal  rune
	Grouping rune
}

// DefaultSymbols are used when a locale cannot be probed.
var DefaultSymbols = Symbols{Decimal: '.', Grouping: ','}

// DetectSymbols probes the decimal and grouping separators of tag by
// formatting a sample number through golang.org/x/text. Locales that do not
// write ASCII digits fall back to DefaultSymbols.
func DetectSymbols(tag language.Tag) Symbols {
	printer := message.NewPrinter(tag)
	sample := printer.Sprint(number.Decimal(12345.6, number.MinFractionDigits(1), number.MaxFractionDigits(1)))

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, sample)
	if digits != "123456" {
		return DefaultSymbols
	}

	var separators []rune
	for _, r := range sample {
		if r >= '0' && r <= '9' {
			continue
		}
		separators = append(separators, r)
	}

	switch len(separators) {
	case 1:
		return Symbols{Decimal: separators[0]}
	case 2:
		return Symbols{Grouping: separators[0], Decimal: separators[1]}
	default:
		return DefaultSymbols
	}
}

// groupingAlternatives returns the runes accepted as grouping separator when
// parsing. Space-like separators also accept a plain space since users rarely
// type non-breaking spaces.
func (s Symbols) groupingAlternatives() []rune {
	if s.Grouping == 0 {
		return nil
	}
	if unicode.IsSpace(s.Grouping) || s.Grouping == ' ' {
		if s.Grouping == ' ' {
			return []rune{' '}
		}
		return []rune{s.Grouping, ' '}
	}
	return []rune{s.Grouping}
}
