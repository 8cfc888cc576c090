package trainingimport

import (
	"fmt"
	"regexp"
	"time"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/ekaterinavoj/validity-view/internal/matching"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Catalogue is the reference data prefetched once per import.
type Catalogue struct {
	Employees         []domain.EmployeeRef
	TrainingTypes     []domain.TrainingTypeRef
	ExistingTrainings []domain.ExistingTrainingRef
}

type trainingPair struct {
	employeeID     string
	trainingTypeID string
}

// Classifier assigns every import row to exactly one disposition. It never
// mutates the catalogue it was built from.
type Classifier struct {
	settings   domain.Settings
	employees  *matching.EmployeeIndex
	types      *matching.TypeResolver
	duplicates map[trainingPair]domain.ExistingTrainingRef
}

func NewClassifier(catalogue Catalogue, settings domain.Settings) (*Classifier, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	duplicates := make(map[trainingPair]domain.ExistingTrainingRef, len(catalogue.ExistingTrainings))
	for _, existing := range catalogue.ExistingTrainings {
		key := trainingPair{employeeID: existing.EmployeeID, trainingTypeID: existing.TrainingTypeID}
		if current, ok := duplicates[key]; ok && !existing.LastTrainingDate.After(current.LastTrainingDate) {
			continue
		}
		duplicates[key] = existing
	}

	return &Classifier{
		settings:   settings,
		employees:  matching.NewEmployeeIndex(catalogue.Employees),
		types:      matching.NewTypeResolver(catalogue.TrainingTypes, settings.MinSimilarityThreshold),
		duplicates: duplicates,
	}, nil
}

func (c *Classifier) Types() *matching.TypeResolver {
	return c.types
}

// Classify processes rows in order. Row numbers start at 1 + HeaderOffset.
func (c *Classifier) Classify(rows []domain.ImportRow) *Preview {
	parsed := make([]*ParsedRow, 0, len(rows))
	for i, row := range rows {
		parsed = append(parsed, c.ClassifyRow(i+1+HeaderOffset, row))
	}
	return NewPreview(parsed)
}

func (c *Classifier) ClassifyRow(rowNumber int, row domain.ImportRow) *ParsedRow {
	parsed := &ParsedRow{RowNumber: rowNumber, Row: row}

	lastTrainingDate, msg := validateRow(row)
	if msg != "" {
		parsed.Outcome = &Rejected{Kind: ErrorKindValidation, Message: msg}
		return parsed
	}

	employee, ok := c.employees.Resolve(row.EmployeeNumber, row.Email)
	if !ok {
		parsed.Outcome = &Rejected{Kind: ErrorKindResolution, Message: employeeNotFoundMessage(row)}
		return parsed
	}

	match, ok := c.types.Resolve(row.TrainingTypeName, row.FacilityCode)
	if !ok {
		msg := fmt.Sprintf("training type %q not found in facility %q or below minimum similarity %d%%",
			row.TrainingTypeName, row.FacilityCode, c.settings.MinSimilarityThreshold)
		parsed.Outcome = &Rejected{Kind: ErrorKindResolution, Message: msg}
		return parsed
	}

	resolution := Resolution{
		EmployeeID:       employee.ID,
		LastTrainingDate: lastTrainingDate,
		Match: TypeMatch{
			TrainingTypeID:   match.Type.ID,
			TrainingTypeName: match.Type.Name,
			Facility:         match.Type.Facility,
			PeriodDays:       match.Type.PeriodDays,
			Confidence:       match.Score,
			CrossFacility:    match.CrossFacility,
		},
	}
	if match.CrossFacility {
		parsed.Warning = crossFacilityWarning(match.Type.Facility, row.FacilityCode)
	}

	// Duplicates win over the match tier but keep the match for display.
	if existing, ok := c.duplicates[trainingPair{employeeID: employee.ID, trainingTypeID: match.Type.ID}]; ok {
		parsed.Outcome = &Duplicate{
			Resolution:           resolution,
			ExistingTrainingID:   existing.ID,
			ExistingTrainingDate: existing.LastTrainingDate,
		}
		return parsed
	}

	switch {
	case match.Exact:
		parsed.Outcome = &Valid{Resolution: resolution}
	case !match.CrossFacility && match.Score >= c.settings.AutoMatchThreshold:
		parsed.Outcome = &AutoMatched{Resolution: resolution}
	default:
		parsed.Outcome = &Suggestion{Resolution: resolution}
	}
	return parsed
}

// validateRow checks required fields and the date format. It returns an
// empty message when the row may proceed to resolution.
func validateRow(row domain.ImportRow) (time.Time, string) {
	required := []struct {
		column string
		value  string
	}{
		{domain.ColumnTrainingTypeName, row.TrainingTypeName},
		{domain.ColumnFacilityCode, row.FacilityCode},
		{domain.ColumnLastTrainingDate, row.LastTrainingDate},
	}
	for _, field := range required {
		if field.value == "" {
			return time.Time{}, fmt.Sprintf("missing required field %s", field.column)
		}
	}

	if !datePattern.MatchString(row.LastTrainingDate) {
		return time.Time{}, fmt.Sprintf("%s %q must be in YYYY-MM-DD format", domain.ColumnLastTrainingDate, row.LastTrainingDate)
	}
	date, err := time.Parse(dateLayout, row.LastTrainingDate)
	if err != nil {
		return time.Time{}, fmt.Sprintf("%s %q is not a valid date", domain.ColumnLastTrainingDate, row.LastTrainingDate)
	}

	if row.EmployeeNumber == "" && row.Email == "" {
		return time.Time{}, fmt.Sprintf("one of %s or %s is required", domain.ColumnEmployeeNumber, domain.ColumnEmail)
	}

	return date, ""
}

func employeeNotFoundMessage(row domain.ImportRow) string {
	switch {
	case row.EmployeeNumber != "" && row.Email != "":
		return fmt.Sprintf("employee not found by number %q or email %q", row.EmployeeNumber, row.Email)
	case row.EmployeeNumber != "":
		return fmt.Sprintf("employee not found by number %q", row.EmployeeNumber)
	default:
		return fmt.Sprintf("employee not found by email %q", row.Email)
	}
}

func crossFacilityWarning(matched, requested string) string {
	return fmt.Sprintf("training type found in facility %q instead of %q", matched, requested)
}
