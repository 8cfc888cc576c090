package trainingimport

import (
	"fmt"

	"github.com/ekaterinavoj/validity-view/internal/matching"
)

// Review is the approval state machine over the suggestion bucket of a
// preview. Operations are synchronous, idempotent and purely in memory.
type Review struct {
	preview *Preview
	types   *matching.TypeResolver
}

func NewReview(preview *Preview, types *matching.TypeResolver) *Review {
	return &Review{preview: preview, types: types}
}

func (r *Review) Approve(rowNumber int) error {
	suggestion, _, err := r.suggestion(rowNumber)
	if err != nil {
		return err
	}
	suggestion.Approved = true
	return nil
}

func (r *Review) Reject(rowNumber int) error {
	suggestion, _, err := r.suggestion(rowNumber)
	if err != nil {
		return err
	}
	suggestion.Approved = false
	return nil
}

// ApproveAll approves every suggestion and returns how many changed state.
func (r *Review) ApproveAll() int {
	return r.setAll(true)
}

// RejectAll clears approval on every suggestion and returns how many changed state.
func (r *Review) RejectAll() int {
	return r.setAll(false)
}

// Override replaces the suggested type with an operator-chosen one. The
// confidence becomes 100, the cross-facility flag is recomputed against the
// row's facility and the row is approved.
func (r *Review) Override(rowNumber int, trainingTypeID string) error {
	suggestion, row, err := r.suggestion(rowNumber)
	if err != nil {
		return err
	}

	ref, ok := r.types.Lookup(trainingTypeID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrainingType, trainingTypeID)
	}

	crossFacility := !matching.SameFacility(ref.Facility, row.Row.FacilityCode)
	suggestion.Match = TypeMatch{
		TrainingTypeID:   ref.ID,
		TrainingTypeName: ref.Name,
		Facility:         ref.Facility,
		PeriodDays:       ref.PeriodDays,
		Confidence:       100,
		CrossFacility:    crossFacility,
	}
	suggestion.OverrideTypeID = ref.ID
	suggestion.Approved = true

	row.Warning = ""
	if crossFacility {
		row.Warning = crossFacilityWarning(ref.Facility, row.Row.FacilityCode)
	}
	return nil
}

func (r *Review) setAll(approved bool) int {
	changed := 0
	for _, row := range r.preview.Rows() {
		suggestion, ok := row.Outcome.(*Suggestion)
		if !ok || suggestion.Approved == approved {
			continue
		}
		suggestion.Approved = approved
		changed++
	}
	return changed
}

func (r *Review) suggestion(rowNumber int) (*Suggestion, *ParsedRow, error) {
	row, ok := r.preview.Row(rowNumber)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrRowNotFound, rowNumber)
	}
	suggestion, ok := row.Outcome.(*Suggestion)
	if !ok {
		return nil, nil, fmt.Errorf("%w: row %d is %s", ErrRowNotSuggestion, rowNumber, row.Disposition())
	}
	return suggestion, row, nil
}
