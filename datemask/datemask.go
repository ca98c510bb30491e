// Package datemask formats typed birth dates as DD.MM.YYYY and checks their ranges.
package datemask

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxDigits is the number of digits a complete date holds.
const MaxDigits = 8

// State is the validation state shown on the input.
type State string

const (
	// StateNone means the value is incomplete; no validation state is shown.
	StateNone    State = ""
	StateValid   State = "valid"
	StateInvalid State = "invalid"
)

// MinYear is the earliest accepted birth year.
const MinYear = 1900

var completeDate = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)

// Mask keeps the first MaxDigits ASCII digits of value and inserts dots after the day
// and month positions.
func Mask(value string) string {
	var b strings.Builder
	n := 0
	for i := 0; i < len(value) && n < MaxDigits; i++ {
		c := value[i]
		if c < '0' || c > '9' {
			continue
		}
		if n == 2 || n == 4 {
			b.WriteByte('.')
		}
		b.WriteByte(c)
		n++
	}
	return b.String()
}

// Progress replays typing keys one at a time into an empty input and returns the masked
// value after every keystroke.
func Progress(keys string) []string {
	values := make([]string, 0, len(keys))
	current := ""
	for _, r := range keys {
		current = Mask(current + string(r))
		values = append(values, current)
	}
	return values
}

// Validate checks a masked value. Only a complete DD.MM.YYYY value is judged; day must be
// 1..31, month 1..12 and year MinYear..currentYear. Day is not checked against the
// length of the month.
func Validate(value string, currentYear int) State {
	match := completeDate.FindStringSubmatch(value)
	if match == nil {
		return StateNone
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	if day >= 1 && day <= 31 && month >= 1 && month <= 12 && year >= MinYear && year <= currentYear {
		return StateValid
	}
	return StateInvalid
}
