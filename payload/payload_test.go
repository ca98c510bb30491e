package payload

import (
	"encoding/base64"
	"regexp"
	"testing"

	"travmd-form/models"
	"travmd-form/transliteration"

	"github.com/stretchr/testify/require"
)

var base64Alphabet = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

func testPersonalRecord() models.PersonalRecord {
	return models.PersonalRecord{
		Title:         "Dr.",
		FirstName:     "J{ue}rgen",
		LastName:      "Mei{ss}ner",
		BirthDate:     "14.03.1990",
		Street:        "Hauptstra{ss}e 1",
		PostalCode:    "80331",
		City:          "M{ue}nchen",
		Destination1:  "Kenia",
		MoreCountries: true,
		DepartureDate: "14.03.2025",
		Duration:      "3 Woche(n)",
		Email:         "j.m@example.org",
		Phone:         "+49 89 123456",
		TravelStyle:   "rucksack",
	}
}

func TestEncodeJSONKeepsKeyOrder(t *testing.T) {
	record := models.MedicalRecord{Q1: "ja", Q1Detail: "Asthma", Q2: "nein"}

	text, err := Encode(record, FormatJSON)
	require.NoError(t, err)
	require.Equal(t,
		`{"q1":"ja","q1d":"Asthma","q2":"nein","q2d":"","q3":"","q4":"","q5":"","q6":"","q7":"","q7d":"","q8":"","q9":"","q9d":"","q10":"","q11":"","q12":""}`,
		text)
}

func TestEncodeJSONPersonal(t *testing.T) {
	text, err := Encode(testPersonalRecord(), FormatJSON)
	require.NoError(t, err)
	require.Equal(t,
		`{"ti":"Dr.","fn":"J{ue}rgen","ln":"Mei{ss}ner","bd":"14.03.1990","st":"Hauptstra{ss}e 1","pc":"80331","ct":"M{ue}nchen",`+
			`"ds1":"Kenia","ds2":"","ds3":"","ds4":"","ds5":"","ds6":"","mc":true,"dd":"14.03.2025","dr":"3 Woche(n)",`+
			`"em":"j.m@example.org","ph":"+49 89 123456","rs":"rucksack"}`,
		text)
}

func TestEncodeJSONDoesNotEscapeHTML(t *testing.T) {
	record := map[string]string{"a": "<b>&</b>"}
	text, err := Encode(record, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, `{"a":"<b>&</b>"}`, text)
}

func TestEncodeJSONKeepsLineSeparatorsRaw(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"line separator", "x\u2028y", "{\"a\":\"x\u2028y\"}"},
		{"paragraph separator", "x\u2029y", "{\"a\":\"x\u2029y\"}"},
		{"literal escape text", `x\u2028y`, `{"a":"x\\u2028y"}`},
		{"other escapes", "tab\tquote\"", `{"a":"tab\tquote\""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Encode(map[string]string{"a": tt.value}, FormatJSON)
			require.NoError(t, err)
			require.Equal(t, tt.expected, text)

			var decoded map[string]string
			require.NoError(t, Decode(text, FormatJSON, &decoded))
			require.Equal(t, tt.value, decoded["a"])
		})
	}
}

func TestEncodeBase64(t *testing.T) {
	record := testPersonalRecord()

	plain, err := Encode(record, FormatJSON)
	require.NoError(t, err)

	encoded, err := Encode(record, FormatBase64)
	require.NoError(t, err)
	require.Regexp(t, base64Alphabet, encoded)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, plain, string(decoded))
}

func TestEncodeBase64WithRawUmlauts(t *testing.T) {
	record := models.PersonalRecord{City: "Köln", Email: "a+b/c@example.org"}

	encoded, err := Encode(record, FormatBase64)
	require.NoError(t, err)
	require.Regexp(t, base64Alphabet, encoded)

	var back models.PersonalRecord
	require.NoError(t, Decode(encoded, FormatBase64, &back))
	require.Equal(t, record, back)
}

func TestEncodeW3FixIsPlainJSON(t *testing.T) {
	record := testPersonalRecord()

	plain, err := Encode(record, FormatJSON)
	require.NoError(t, err)
	fixed, err := Encode(record, FormatW3Fix)
	require.NoError(t, err)
	require.Equal(t, plain, fixed)
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode(testPersonalRecord(), Format("xml"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			record := testPersonalRecord()
			text, err := Encode(record, format)
			require.NoError(t, err)

			var back models.PersonalRecord
			require.NoError(t, Decode(text, format, &back))
			require.Equal(t, record, back)
		})
	}
}

func TestDecodeInvalidBase64(t *testing.T) {
	var back models.PersonalRecord
	err := Decode("not base64!", FormatBase64, &back)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode base64 payload")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"Base64", FormatBase64, false},
		{" w3fix ", FormatW3Fix, false},
		{"", "", true},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, f)
		})
	}
}

func TestFormatTransliteration(t *testing.T) {
	require.Equal(t, transliteration.Marker, FormatJSON.Transliteration())
	require.Equal(t, transliteration.Marker, FormatBase64.Transliteration())
	require.Equal(t, transliteration.Plain, FormatW3Fix.Transliteration())
}
