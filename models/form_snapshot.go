package models

// FormSnapshot is the state of the intake form at the moment a button was pressed.
// Text inputs and selects live in Fields, checkboxes in Checkboxes and radio groups
// in Radios (group name to the value of the checked option).
type FormSnapshot struct {
	Fields     map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Checkboxes map[string]bool   `json:"checkboxes,omitempty" yaml:"checkboxes,omitempty"`
	Radios     map[string]string `json:"radios,omitempty" yaml:"radios,omitempty"`
}

// Value returns the value of a text field, or "" when the field is absent.
func (f FormSnapshot) Value(id string) string {
	return f.Fields[id]
}

func (f FormSnapshot) IsChecked(id string) bool {
	return f.Checkboxes[id]
}

// Selected returns the checked option of a radio group, or "" when none is checked.
func (f FormSnapshot) Selected(group string) string {
	return f.Radios[group]
}
