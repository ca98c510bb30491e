// Package payload serialises intake records into the text that goes into a QR code.
package payload

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"travmd-form/transliteration"
)

// Format is the output encoding selected in the form.
type Format string

const (
	// FormatJSON is the record as plain JSON.
	FormatJSON Format = "json"
	// FormatBase64 is the JSON text, UTF-8 encoded, in standard base64 with padding.
	FormatBase64 Format = "base64"
	// FormatW3Fix is plain JSON built from plain-ASCII values, without parentheses in
	// duration units and without the email address.
	FormatW3Fix Format = "w3fix"
)

var ErrUnknownFormat = errors.New("unknown payload format")

var Formats = []Format{FormatJSON, FormatBase64, FormatW3Fix}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatBase64, FormatW3Fix:
		return true
	}
	return false
}

// Transliteration returns the mode used for free-text fields when building records for f.
func (f Format) Transliteration() transliteration.Mode {
	if f == FormatW3Fix {
		return transliteration.Plain
	}
	return transliteration.Marker
}

func (f Format) String() string {
	return string(f)
}

// Encode serialises record for the given format. Struct records keep their field order
// as key order. Transliteration is not applied here.
func Encode(record any, format Format) (string, error) {
	if !format.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}

	data, err := marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	if format == FormatBase64 {
		return base64.StdEncoding.EncodeToString(data), nil
	}
	return string(data), nil
}

// Decode parses text produced by Encode into v.
func Decode(text string, format Format, v any) error {
	if !format.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}

	data := []byte(text)
	if format == FormatBase64 {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		data = decoded
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

// marshal matches what a browser's JSON.stringify produces for valid UTF-8: no HTML
// escaping of <, > and &, raw U+2028/U+2029 and no trailing newline. Invalid UTF-8 is
// still replaced with U+FFFD.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes written by encoding/json
// back into raw characters. Escaped backslashes are skipped as a pair so that a literal
// "\\u2028" in a value is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if i+5 < len(data) && data[i+1] == 'u' {
			switch string(data[i+2 : i+6]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}
