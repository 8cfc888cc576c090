package trainingimport

import (
	"time"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
)

// HeaderOffset is added to the 1-based data row position so row numbers match
// the spreadsheet line the operator sees.
const HeaderOffset = 1

type Disposition string

const (
	DispositionValid       Disposition = "valid"
	DispositionError       Disposition = "error"
	DispositionDuplicate   Disposition = "duplicate"
	DispositionAutoMatched Disposition = "auto_matched"
	DispositionSuggestion  Disposition = "suggestion"
)

// Dispositions lists every bucket in display order.
var Dispositions = []Disposition{
	DispositionValid,
	DispositionAutoMatched,
	DispositionSuggestion,
	DispositionDuplicate,
	DispositionError,
}

type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindResolution ErrorKind = "resolution"
)

type TypeMatch struct {
	TrainingTypeID   string
	TrainingTypeName string
	Facility         string
	PeriodDays       int
	Confidence       int
	CrossFacility    bool
}

// Resolution is what every non-error row carries: the resolved employee, the
// parsed date and the matched training type.
type Resolution struct {
	EmployeeID       string
	LastTrainingDate time.Time
	Match            TypeMatch
}

// Outcome is the disposition of a classified row. The concrete types are
// Valid, Rejected, Duplicate, AutoMatched and Suggestion.
type Outcome interface {
	Disposition() Disposition
	isOutcome()
}

type Valid struct {
	Resolution
}

type Rejected struct {
	Kind    ErrorKind
	Message string
}

type Duplicate struct {
	Resolution
	ExistingTrainingID   string
	ExistingTrainingDate time.Time
}

type AutoMatched struct {
	Resolution
}

// Suggestion is the only outcome the review workflow mutates.
type Suggestion struct {
	Resolution
	Approved       bool
	OverrideTypeID string
}

func (*Valid) Disposition() Disposition       { return DispositionValid }
func (*Rejected) Disposition() Disposition    { return DispositionError }
func (*Duplicate) Disposition() Disposition   { return DispositionDuplicate }
func (*AutoMatched) Disposition() Disposition { return DispositionAutoMatched }
func (*Suggestion) Disposition() Disposition  { return DispositionSuggestion }

func (*Valid) isOutcome()       {}
func (*Rejected) isOutcome()    {}
func (*Duplicate) isOutcome()   {}
func (*AutoMatched) isOutcome() {}
func (*Suggestion) isOutcome()  {}

type ParsedRow struct {
	RowNumber int
	Row       domain.ImportRow
	Warning   string
	Outcome   Outcome
}

func (r *ParsedRow) Disposition() Disposition {
	return r.Outcome.Disposition()
}

// Resolution returns the resolved references of a non-error row.
func (r *ParsedRow) Resolution() (Resolution, bool) {
	switch o := r.Outcome.(type) {
	case *Valid:
		return o.Resolution, true
	case *Duplicate:
		return o.Resolution, true
	case *AutoMatched:
		return o.Resolution, true
	case *Suggestion:
		return o.Resolution, true
	default:
		return Resolution{}, false
	}
}

type Counts struct {
	Total       int `json:"total"`
	Valid       int `json:"valid"`
	Errors      int `json:"errors"`
	Duplicates  int `json:"duplicates"`
	AutoMatched int `json:"auto_matched"`
	Suggestions int `json:"suggestions"`
	Approved    int `json:"approved"`
}

// Preview holds every classified row of one import. Each row sits in exactly
// one disposition bucket.
type Preview struct {
	rows     []*ParsedRow
	byNumber map[int]*ParsedRow
}

func NewPreview(rows []*ParsedRow) *Preview {
	byNumber := make(map[int]*ParsedRow, len(rows))
	for _, row := range rows {
		byNumber[row.RowNumber] = row
	}
	return &Preview{rows: rows, byNumber: byNumber}
}

// Rows returns all rows in input order.
func (p *Preview) Rows() []*ParsedRow {
	return p.rows
}

func (p *Preview) Row(rowNumber int) (*ParsedRow, bool) {
	row, ok := p.byNumber[rowNumber]
	return row, ok
}

func (p *Preview) Bucket(d Disposition) []*ParsedRow {
	out := make([]*ParsedRow, 0)
	for _, row := range p.rows {
		if row.Disposition() == d {
			out = append(out, row)
		}
	}
	return out
}

func (p *Preview) Counts() Counts {
	counts := Counts{Total: len(p.rows)}
	for _, row := range p.rows {
		switch o := row.Outcome.(type) {
		case *Valid:
			counts.Valid++
		case *Rejected:
			counts.Errors++
		case *Duplicate:
			counts.Duplicates++
		case *AutoMatched:
			counts.AutoMatched++
		case *Suggestion:
			counts.Suggestions++
			if o.Approved {
				counts.Approved++
			}
		}
	}
	return counts
}

// RejectedRows lists the error bucket in the input column shape.
func (p *Preview) RejectedRows() []domain.RejectedRow {
	out := make([]domain.RejectedRow, 0)
	for _, row := range p.rows {
		rejected, ok := row.Outcome.(*Rejected)
		if !ok {
			continue
		}
		out = append(out, domain.RejectedRow{
			RowNumber: row.RowNumber,
			Row:       row.Row,
			Message:   rejected.Message,
		})
	}
	return out
}
