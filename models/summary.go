package models

// Summary holds the display values of the printable document. Values are shown as the
// user typed them, without transliteration.
type Summary struct {
	Name          string
	BirthDate     string
	Street        string
	PostalCity    string
	Email         string
	Phone         string
	Destinations  string
	MoreCountries bool
	DepartureDate string
	Duration      string
	TravelStyle   string
	Medical       []SummaryLine
}

// SummaryLine is one line of the medical block. Answered is false for a question without
// a checked option, in which case the document prints a "no data" label instead of Value.
type SummaryLine struct {
	LabelKey string
	Value    string
	Detail   bool
	Answered bool
}
