package training

import "strings"

const (
	ColumnEmployeeNumber   = "employee_number"
	ColumnEmail            = "email"
	ColumnTrainingTypeName = "training_type_name"
	ColumnFacilityCode     = "facility_code"
	ColumnLastTrainingDate = "last_training_date"
	ColumnTrainer          = "trainer"
	ColumnCompany          = "company"
	ColumnNote             = "note"
)

// Columns lists the import columns in template order.
var Columns = []string{
	ColumnEmployeeNumber,
	ColumnEmail,
	ColumnTrainingTypeName,
	ColumnFacilityCode,
	ColumnLastTrainingDate,
	ColumnTrainer,
	ColumnCompany,
	ColumnNote,
}

// ImportRow is one data row of an uploaded spreadsheet. Values are trimmed but
// otherwise unchecked; validation happens during classification.
type ImportRow struct {
	EmployeeNumber   string
	Email            string
	TrainingTypeName string
	FacilityCode     string
	LastTrainingDate string
	Trainer          string
	Company          string
	Note             string
}

// NewImportRow builds a row from header/value pairs. Header names are matched
// after trimming and lowercasing; unknown columns are ignored.
func NewImportRow(values map[string]string) ImportRow {
	get := func(column string) string {
		for key, value := range values {
			if strings.ToLower(strings.TrimSpace(key)) == column {
				return strings.TrimSpace(value)
			}
		}
		return ""
	}

	return ImportRow{
		EmployeeNumber:   get(ColumnEmployeeNumber),
		Email:            get(ColumnEmail),
		TrainingTypeName: get(ColumnTrainingTypeName),
		FacilityCode:     get(ColumnFacilityCode),
		LastTrainingDate: get(ColumnLastTrainingDate),
		Trainer:          get(ColumnTrainer),
		Company:          get(ColumnCompany),
		Note:             get(ColumnNote),
	}
}

// Values returns the row in Columns order.
func (r ImportRow) Values() []string {
	return []string{
		r.EmployeeNumber,
		r.Email,
		r.TrainingTypeName,
		r.FacilityCode,
		r.LastTrainingDate,
		r.Trainer,
		r.Company,
		r.Note,
	}
}

func (r ImportRow) IsBlank() bool {
	for _, value := range r.Values() {
		if value != "" {
			return false
		}
	}
	return true
}

// RejectedRow is a row that failed validation or resolution, kept in its
// original column shape for correction and re-upload.
type RejectedRow struct {
	RowNumber int
	Row       ImportRow
	Message   string
}
