package document

import (
	"strings"

	"travmd-form/i18n"
)

func YesNo(l i18n.Localizer, value bool) string {
	if value {
		return l.T("yes")
	}
	return l.T("no")
}

// AnswerText is the printed text of a radio answer. Known values are localised, anything
// else is printed as submitted.
func AnswerText(l i18n.Localizer, value string) string {
	if s, ok := l.Lookup("answer." + value); ok {
		return s
	}
	return value
}

// TravelStyleText prints the option label of a travel style, or the raw value when the
// option is unknown.
func TravelStyleText(l i18n.Localizer, value string) string {
	if s, ok := l.Lookup("travelStyle." + value); ok {
		return s
	}
	return value
}

func labelled(label, value string) string {
	return strings.TrimRight(label+" "+value, " ")
}
