// Package collector reads the intake form into the records encoded in the QR codes.
package collector

import (
	"net/url"
	"strings"

	"travmd-form/models"
	"travmd-form/payload"
	"travmd-form/transliteration"
)

// FormState is read-only access to the current form values. Absent fields read as ""
// and unchecked inputs as false.
type FormState interface {
	Value(id string) string
	IsChecked(id string) bool
	Selected(group string) string
}

// CollectPersonal builds the personal and travel record for format.
func CollectPersonal(form FormState, format payload.Format) models.PersonalRecord {
	mode := format.Transliteration()
	tr := func(id string) string {
		return transliteration.Transliterate(form.Value(id), mode)
	}

	record := models.PersonalRecord{
		Title:         tr(FieldTitle),
		FirstName:     tr(FieldFirstName),
		LastName:      tr(FieldLastName),
		BirthDate:     form.Value(FieldBirthDate),
		Street:        tr(FieldStreet),
		PostalCode:    form.Value(FieldPostalCode),
		City:          tr(FieldCity),
		MoreCountries: form.IsChecked(FieldMoreCountries),
		DepartureDate: ReverseISODate(form.Value(FieldDepartureDate)),
		Duration:      Duration(form.Value(FieldDurationNumber), form.Value(FieldDurationUnit), format),
		Email:         form.Value(FieldEmail),
		Phone:         form.Value(FieldPhone),
		TravelStyle:   form.Value(FieldTravelStyle),
	}
	for i, id := range DestinationFields {
		record.SetDestination(i, tr(id))
	}

	if format == payload.FormatW3Fix {
		record.Email = ""
	}
	return record
}

// CollectMedical builds the medical record for format. Detail texts are only taken when
// the governing answer is affirmative.
func CollectMedical(form FormState, format payload.Format) models.MedicalRecord {
	mode := format.Transliteration()

	var record models.MedicalRecord
	for _, q := range Questions {
		answer := form.Selected(q.Name)
		record.SetAnswer(q.Number, answer)
		if q.DetailVisible(answer) {
			record.SetDetail(q.Number, transliteration.Transliterate(form.Value(q.DetailField), mode))
		}
	}
	return record
}

// CollectSummary reads the display values for the printable document.
func CollectSummary(form FormState) models.Summary {
	name := form.Value(FieldFirstName) + " " + form.Value(FieldLastName)
	if title := form.Value(FieldTitle); title != "" {
		name = title + " " + name
	}

	var destinations []string
	for _, id := range DestinationFields {
		if v := form.Value(id); v != "" {
			destinations = append(destinations, v)
		}
	}

	summary := models.Summary{
		Name:          name,
		BirthDate:     form.Value(FieldBirthDate),
		Street:        form.Value(FieldStreet),
		PostalCity:    form.Value(FieldPostalCode) + " " + form.Value(FieldCity),
		Email:         form.Value(FieldEmail),
		Phone:         form.Value(FieldPhone),
		Destinations:  strings.Join(destinations, ", "),
		MoreCountries: form.IsChecked(FieldMoreCountries),
		DepartureDate: form.Value(FieldDepartureDate),
		Duration:      form.Value(FieldDurationNumber) + " " + form.Value(FieldDurationUnit),
		TravelStyle:   form.Value(FieldTravelStyle),
	}

	for _, q := range Questions {
		answer := form.Selected(q.Name)
		summary.Medical = append(summary.Medical, models.SummaryLine{
			LabelKey: q.LabelKey,
			Value:    answer,
			Answered: answer != "",
		})
		if q.HasDetail() {
			detail := ""
			if q.DetailVisible(answer) {
				detail = form.Value(q.DetailField)
			}
			summary.Medical = append(summary.Medical, models.SummaryLine{
				LabelKey: "detail",
				Value:    detail,
				Detail:   true,
				Answered: true,
			})
		}
	}
	return summary
}

// SnapshotFromValues converts a urlencoded form post. Radio groups q1..q12 become
// Radios, the more-countries checkbox is checked for any non-empty value other than
// "false" and "off", everything else is a text field.
func SnapshotFromValues(values url.Values) models.FormSnapshot {
	snapshot := models.FormSnapshot{
		Fields:     map[string]string{},
		Checkboxes: map[string]bool{},
		Radios:     map[string]string{},
	}
	for key := range values {
		value := values.Get(key)
		switch {
		case key == FieldMoreCountries:
			snapshot.Checkboxes[key] = value != "" && value != "false" && value != "off"
		case isRadioGroup(key):
			snapshot.Radios[key] = value
		default:
			snapshot.Fields[key] = value
		}
	}
	return snapshot
}
