package trainingimport

import (
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
)

type RowValuesOutput struct {
	EmployeeNumber   string `json:"employee_number,omitempty"`
	Email            string `json:"email,omitempty"`
	TrainingTypeName string `json:"training_type_name,omitempty"`
	FacilityCode     string `json:"facility_code,omitempty"`
	LastTrainingDate string `json:"last_training_date,omitempty"`
	Trainer          string `json:"trainer,omitempty"`
	Company          string `json:"company,omitempty"`
	Note             string `json:"note,omitempty"`
}

type MatchOutput struct {
	TrainingTypeID   string `json:"training_type_id"`
	TrainingTypeName string `json:"training_type_name"`
	Facility         string `json:"facility"`
	PeriodDays       int    `json:"period_days"`
	Confidence       int    `json:"match_confidence"`
	CrossFacility    bool   `json:"cross_facility"`
}

type RowOutput struct {
	RowNumber            int             `json:"row_number"`
	Disposition          Disposition     `json:"disposition"`
	Row                  RowValuesOutput `json:"row"`
	Error                string          `json:"error,omitempty"`
	ErrorKind            ErrorKind       `json:"error_kind,omitempty"`
	Warning              string          `json:"warning,omitempty"`
	EmployeeID           string          `json:"employee_id,omitempty"`
	Match                *MatchOutput    `json:"match,omitempty"`
	ExistingTrainingID   string          `json:"existing_training_id,omitempty"`
	ExistingTrainingDate string          `json:"existing_training_date,omitempty"`
	Approved             *bool           `json:"approved,omitempty"`
	ManualOverrideTypeID string          `json:"manual_override_type_id,omitempty"`
}

type PreviewOutput struct {
	Counts      Counts      `json:"counts"`
	Valid       []RowOutput `json:"valid"`
	AutoMatched []RowOutput `json:"auto_matched"`
	Suggestions []RowOutput `json:"suggestions"`
	Duplicates  []RowOutput `json:"duplicates"`
	Errors      []RowOutput `json:"errors"`
}

type SessionOutput struct {
	SessionID string          `json:"session_id"`
	FileName  string          `json:"file_name,omitempty"`
	State     SessionState    `json:"state"`
	Settings  domain.Settings `json:"settings"`
	Progress  CommitProgress  `json:"progress"`
	Preview   PreviewOutput   `json:"preview"`
	Result    *BatchResult    `json:"result,omitempty"`
}

func NewPreviewOutput(p *Preview) PreviewOutput {
	out := PreviewOutput{
		Counts:      p.Counts(),
		Valid:       []RowOutput{},
		AutoMatched: []RowOutput{},
		Suggestions: []RowOutput{},
		Duplicates:  []RowOutput{},
		Errors:      []RowOutput{},
	}

	for _, row := range p.Rows() {
		view := newRowOutput(row)
		switch row.Disposition() {
		case DispositionValid:
			out.Valid = append(out.Valid, view)
		case DispositionAutoMatched:
			out.AutoMatched = append(out.AutoMatched, view)
		case DispositionSuggestion:
			out.Suggestions = append(out.Suggestions, view)
		case DispositionDuplicate:
			out.Duplicates = append(out.Duplicates, view)
		case DispositionError:
			out.Errors = append(out.Errors, view)
		}
	}
	return out
}

func newRowOutput(row *ParsedRow) RowOutput {
	out := RowOutput{
		RowNumber:   row.RowNumber,
		Disposition: row.Disposition(),
		Row: RowValuesOutput{
			EmployeeNumber:   row.Row.EmployeeNumber,
			Email:            row.Row.Email,
			TrainingTypeName: row.Row.TrainingTypeName,
			FacilityCode:     row.Row.FacilityCode,
			LastTrainingDate: row.Row.LastTrainingDate,
			Trainer:          row.Row.Trainer,
			Company:          row.Row.Company,
			Note:             row.Row.Note,
		},
		Warning: row.Warning,
	}

	if resolution, ok := row.Resolution(); ok {
		out.EmployeeID = resolution.EmployeeID
		out.Match = &MatchOutput{
			TrainingTypeID:   resolution.Match.TrainingTypeID,
			TrainingTypeName: resolution.Match.TrainingTypeName,
			Facility:         resolution.Match.Facility,
			PeriodDays:       resolution.Match.PeriodDays,
			Confidence:       resolution.Match.Confidence,
			CrossFacility:    resolution.Match.CrossFacility,
		}
	}

	switch o := row.Outcome.(type) {
	case *Rejected:
		out.Error = o.Message
		out.ErrorKind = o.Kind
	case *Duplicate:
		out.ExistingTrainingID = o.ExistingTrainingID
		out.ExistingTrainingDate = o.ExistingTrainingDate.Format(dateLayout)
	case *Suggestion:
		approved := o.Approved
		out.Approved = &approved
		out.ManualOverrideTypeID = o.OverrideTypeID
	}
	return out
}
