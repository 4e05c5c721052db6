package form

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// Field is one fillable form entry. The description is shown to the model verbatim.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Schema is the ordered set of fields an extraction must return.
type Schema []Field

func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))

	for _, f := range s {
		keys = append(keys, f.Name)
	}

	return keys
}

// JSONSchema describes an extraction result: an object with one string property per field.
func (s Schema) JSONSchema() *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(s))

	for _, f := range s {
		properties[f.Name] = &jsonschema.Schema{
			Type:        "string",
			Description: f.Description,
		}
	}

	return &jsonschema.Schema{
		Type: "object",

		Properties: properties,
		Required:   s.Keys(),
	}
}

// Map returns the JSON schema as a plain map, the shape completers expect.
func (s Schema) Map() map[string]any {
	data, err := json.Marshal(s.JSONSchema())

	if err != nil {
		return nil
	}

	var result map[string]any

	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}

	return result
}

// DefaultSchema is the dental screening camp form.
func DefaultSchema() Schema {
	return Schema{
		{Name: "organised_by", Description: "The name of the organization conducting the event."},
		{Name: "department", Description: "The specific department involved."},
		{Name: "event_date", Description: "The date of the event."},
		{Name: "event_place", Description: "The city or location of the event."},
		{Name: "event_district", Description: "The district where the event is taking place."},

		{Name: "patient_name", Description: "The patient's full name."},
		{Name: "patient_age", Description: "The patient's age in years."},
		{Name: "patient_contact", Description: "The patient's contact phone number."},
		{Name: "patient_education", Description: "The patient's educational qualifications."},
		{Name: "family_monthly_income", Description: "The monthly income of the patient's family."},

		{Name: "chief_complaint", Description: "The primary medical or dental complaint from the patient, in their own words."},
		{Name: "past_medical_history_others", Description: "Any other past medical conditions mentioned that are not in the Yes/No list."},
		{Name: "past_dental_visit_details", Description: "Details about the last dental visit if mentioned (e.g., 'about a year ago for a cleaning')."},
		{Name: "personal_habits_others", Description: "Any other personal habits mentioned besides smoking or alcohol."},

		{Name: "clinical_decayed", Description: "Description or count of decayed teeth."},
		{Name: "clinical_missing", Description: "Description or count of missing teeth."},
		{Name: "clinical_filled", Description: "Description or count of filled teeth."},
		{Name: "clinical_pain", Description: "Details about any dental pain the patient is experiencing."},
		{Name: "clinical_fractured_teeth", Description: "Details about any fractured teeth."},
		{Name: "clinical_mobility", Description: "Details about any mobile or loose teeth."},
		{Name: "clinical_examination_others", Description: "Any other clinical findings mentioned."},

		{Name: "oral_mucosal_lesion", Description: "Description of any oral mucosal lesions observed."},
		{Name: "teeth_cleaning_method", Description: "The method the patient uses for cleaning their teeth (e.g., 'brush and paste twice a day')."},
		{Name: "doctors_name", Description: "The name of the examining doctor."},
		{Name: "treatment_plan", Description: "The proposed treatment plan based on the examination."},
	}
}
