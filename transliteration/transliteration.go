// Package transliteration rewrites German umlauts and ß into ASCII so that payloads
// survive barcode scanners running in keyboard emulation mode.
package transliteration

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how umlauts are written.
type Mode int

const (
	// None leaves text untouched.
	None Mode = iota
	// Marker writes umlauts as bracket markers ({ae}, {Ue}, {ss}, ...). Reversible with Restore.
	Marker
	// Plain writes umlauts as bare digraphs (ae, Ue, ss, ...). Lossy, ASCII only.
	Plain
)

func (m Mode) String() string {
	switch m {
	case Marker:
		return "marker"
	case Plain:
		return "plain"
	default:
		return "none"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "marker":
		return Marker, nil
	case "plain":
		return Plain, nil
	}
	return None, fmt.Errorf("unknown transliteration mode: %q", s)
}

// markerReplacer also matches decomposed umlauts (base letter + U+0308) so that all
// other text stays byte-identical. Restore returns those in precomposed form.
var markerReplacer = strings.NewReplacer(
	"ä", "{ae}", "Ä", "{Ae}",
	"ö", "{oe}", "Ö", "{Oe}",
	"ü", "{ue}", "Ü", "{Ue}",
	"ß", "{ss}",
	"a\u0308", "{ae}", "A\u0308", "{Ae}",
	"o\u0308", "{oe}", "O\u0308", "{Oe}",
	"u\u0308", "{ue}", "U\u0308", "{Ue}",
)

var plainReplacer = strings.NewReplacer(
	"ä", "ae", "Ä", "Ae",
	"ö", "oe", "Ö", "Oe",
	"ü", "ue", "Ü", "Ue",
	"ß", "ss",
)

var restoreReplacer = strings.NewReplacer(
	"{ae}", "ä", "{Ae}", "Ä",
	"{oe}", "ö", "{Oe}", "Ö",
	"{ue}", "ü", "{Ue}", "Ü",
	"{ss}", "ß",
)

// Transliterate rewrites text according to mode. Marker only touches umlauts and ß,
// precomposed or decomposed. Plain NFC normalises first and folds the rest to ASCII.
func Transliterate(text string, mode Mode) string {
	switch mode {
	case Marker:
		return markerReplacer.Replace(text)
	case Plain:
		return foldASCII(plainReplacer.Replace(norm.NFC.String(text)))
	default:
		return text
	}
}

// Restore reverses Marker transliteration. Text that already contained a literal marker
// such as "{ae}" before transliteration cannot be told apart from a marked umlaut.
func Restore(text string) string {
	return restoreReplacer.Replace(text)
}

// foldASCII strips combining marks from the remaining non-ASCII letters (é -> e) and
// replaces whatever is still outside ASCII with '?'.
func foldASCII(s string) string {
	if isASCII(s) {
		return s
	}
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return '?'
			}
			return r
		}),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return '?'
			}
			return r
		}, s)
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
