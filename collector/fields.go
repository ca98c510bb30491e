package collector

// Field ids of the intake form.
const (
	FieldTitle          = "titel"
	FieldFirstName      = "vorname"
	FieldLastName       = "name"
	FieldBirthDate      = "geb"
	FieldStreet         = "strasse"
	FieldPostalCode     = "plz"
	FieldCity           = "ort"
	FieldMoreCountries  = "more_countries"
	FieldDepartureDate  = "abreisetermin"
	FieldDurationNumber = "reisedauer_number"
	FieldDurationUnit   = "reisedauer_unit"
	FieldEmail          = "email"
	FieldPhone          = "telefon"
	FieldTravelStyle    = "reisestil"
)

// DestinationFields are the six destination inputs in display order.
var DestinationFields = [6]string{"reiseland1", "reiseland2", "reiseland3", "reiseland4", "reiseland5", "reiseland6"}

// Affirmative is the radio value that unlocks a question's detail field.
const Affirmative = "ja"

// Question describes one radio group of the medical block. DetailField is empty for
// questions without a free-text follow-up.
type Question struct {
	Number      int
	Name        string
	DetailField string
	LabelKey    string
}

var Questions = []Question{
	{Number: 1, Name: "q1", DetailField: "q1_detail", LabelKey: "q1"},
	{Number: 2, Name: "q2", DetailField: "q2_detail", LabelKey: "q2"},
	{Number: 3, Name: "q3", LabelKey: "q3"},
	{Number: 4, Name: "q4", LabelKey: "q4"},
	{Number: 5, Name: "q5", LabelKey: "q5"},
	{Number: 6, Name: "q6", LabelKey: "q6"},
	{Number: 7, Name: "q7", DetailField: "q7_detail", LabelKey: "q7"},
	{Number: 8, Name: "q8", LabelKey: "q8"},
	{Number: 9, Name: "q9", DetailField: "q9_detail", LabelKey: "q9"},
	{Number: 10, Name: "q10", LabelKey: "q10"},
	{Number: 11, Name: "q11", LabelKey: "q11"},
	{Number: 12, Name: "q12", LabelKey: "q12"},
}

func (q Question) HasDetail() bool {
	return q.DetailField != ""
}

// DetailVisible reports whether the detail field of q is shown for the given answer.
// Hidden detail fields are cleared.
func (q Question) DetailVisible(answer string) bool {
	return q.HasDetail() && answer == Affirmative
}

func isRadioGroup(name string) bool {
	for _, q := range Questions {
		if q.Name == name {
			return true
		}
	}
	return false
}
