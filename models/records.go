package models

// PersonalRecord is the payload of the first QR code (personal and travel data).
// Field order is the key order of the encoded JSON.
type PersonalRecord struct {
	Title         string `json:"ti"`
	FirstName     string `json:"fn"`
	LastName      string `json:"ln"`
	BirthDate     string `json:"bd"`
	Street        string `json:"st"`
	PostalCode    string `json:"pc"`
	City          string `json:"ct"`
	Destination1  string `json:"ds1"`
	Destination2  string `json:"ds2"`
	Destination3  string `json:"ds3"`
	Destination4  string `json:"ds4"`
	Destination5  string `json:"ds5"`
	Destination6  string `json:"ds6"`
	MoreCountries bool   `json:"mc"`
	DepartureDate string `json:"dd"`
	Duration      string `json:"dr"`
	Email         string `json:"em"`
	Phone         string `json:"ph"`
	TravelStyle   string `json:"rs"`
}

func (p *PersonalRecord) Destinations() []string {
	return []string{p.Destination1, p.Destination2, p.Destination3, p.Destination4, p.Destination5, p.Destination6}
}

// SetDestination sets the i-th destination, zero based. Out of range indexes are ignored.
func (p *PersonalRecord) SetDestination(i int, value string) {
	switch i {
	case 0:
		p.Destination1 = value
	case 1:
		p.Destination2 = value
	case 2:
		p.Destination3 = value
	case 3:
		p.Destination4 = value
	case 4:
		p.Destination5 = value
	case 5:
		p.Destination6 = value
	}
}

// MedicalRecord is the payload of the second QR code. Answers hold the value of the
// checked option ("ja", "nein", ...) or "" when nothing was checked.
type MedicalRecord struct {
	Q1       string `json:"q1"`
	Q1Detail string `json:"q1d"`
	Q2       string `json:"q2"`
	Q2Detail string `json:"q2d"`
	Q3       string `json:"q3"`
	Q4       string `json:"q4"`
	Q5       string `json:"q5"`
	Q6       string `json:"q6"`
	Q7       string `json:"q7"`
	Q7Detail string `json:"q7d"`
	Q8       string `json:"q8"`
	Q9       string `json:"q9"`
	Q9Detail string `json:"q9d"`
	Q10      string `json:"q10"`
	Q11      string `json:"q11"`
	Q12      string `json:"q12"`
}

// answerField returns pointers to the answer and, where one exists, the detail field of
// question n (1..12).
func (m *MedicalRecord) answerField(n int) (answer *string, detail *string) {
	switch n {
	case 1:
		return &m.Q1, &m.Q1Detail
	case 2:
		return &m.Q2, &m.Q2Detail
	case 3:
		return &m.Q3, nil
	case 4:
		return &m.Q4, nil
	case 5:
		return &m.Q5, nil
	case 6:
		return &m.Q6, nil
	case 7:
		return &m.Q7, &m.Q7Detail
	case 8:
		return &m.Q8, nil
	case 9:
		return &m.Q9, &m.Q9Detail
	case 10:
		return &m.Q10, nil
	case 11:
		return &m.Q11, nil
	case 12:
		return &m.Q12, nil
	}
	return nil, nil
}

// SetAnswer stores the answer of question n (1..12). Unknown questions are ignored.
func (m *MedicalRecord) SetAnswer(n int, value string) {
	if answer, _ := m.answerField(n); answer != nil {
		*answer = value
	}
}

// SetDetail stores the detail text of question n. It reports false when the question has
// no detail field.
func (m *MedicalRecord) SetDetail(n int, value string) bool {
	_, detail := m.answerField(n)
	if detail == nil {
		return false
	}
	*detail = value
	return true
}

func (m *MedicalRecord) Answer(n int) string {
	if answer, _ := m.answerField(n); answer != nil {
		return *answer
	}
	return ""
}

func (m *MedicalRecord) Detail(n int) string {
	if _, detail := m.answerField(n); detail != nil {
		return *detail
	}
	return ""
}
