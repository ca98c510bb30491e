package datemask

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testYear = 2026

func TestProgressValidDate(t *testing.T) {
	values := Progress("14031990")

	require.Equal(t, []string{"1", "14", "14.0", "14.03", "14.03.1", "14.03.19", "14.03.199", "14.03.1990"}, values)
	require.Equal(t, "14.03.1990", values[len(values)-1])
	require.Equal(t, StateValid, Validate(values[len(values)-1], testYear))
}

func TestProgressOutOfRange(t *testing.T) {
	values := Progress("99139999")

	final := values[len(values)-1]
	require.Equal(t, "99.13.9999", final)
	require.Equal(t, StateInvalid, Validate(final, testYear))
}

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"two digits", "14", "14"},
		{"three digits", "140", "14.0"},
		{"already masked", "14.03.1990", "14.03.1990"},
		{"letters dropped", "1a4b0c3", "14.03"},
		{"capped at eight digits", "1403199012", "14.03.1990"},
		{"misplaced dots", "1.4.0.3", "14.03"},
		{"non ascii digits dropped", "١٤0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Mask(tt.input))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected State
	}{
		{"valid", "14.03.1990", StateValid},
		{"incomplete", "14.03.19", StateNone},
		{"empty", "", StateNone},
		{"day zero", "00.03.1990", StateInvalid},
		{"day 32", "32.01.1990", StateInvalid},
		{"month 13", "01.13.1990", StateInvalid},
		{"year before 1900", "01.01.1899", StateInvalid},
		{"year 1900", "01.01.1900", StateValid},
		{"current year", "01.01.2026", StateValid},
		{"next year", "01.01.2027", StateInvalid},
		{"impossible day of month accepted", "31.02.1990", StateValid},
		{"wrong separators", "14-03-1990", StateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Validate(tt.input, testYear))
		})
	}
}
