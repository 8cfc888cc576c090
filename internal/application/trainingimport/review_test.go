package trainingimport_test

import (
	"testing"

	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReview(t *testing.T) (*app.Preview, *app.Review) {
	t.Helper()

	classifier, err := app.NewClassifier(testCatalogue(), domain.DefaultSettings())
	require.NoError(t, err)
	preview := classifier.Classify(testRows())
	return preview, app.NewReview(preview, classifier.Types())
}

func suggestionAt(t *testing.T, preview *app.Preview, number int) *app.Suggestion {
	t.Helper()

	r, ok := preview.Row(number)
	require.True(t, ok)
	suggestion, ok := r.Outcome.(*app.Suggestion)
	require.True(t, ok)
	return suggestion
}

func TestReviewApproveRejectIsIdempotent(t *testing.T) {
	t.Parallel()

	preview, review := newReview(t)

	require.NoError(t, review.Approve(4))
	require.NoError(t, review.Approve(4))
	assert.True(t, suggestionAt(t, preview, 4).Approved)
	assert.False(t, suggestionAt(t, preview, 10).Approved)

	require.NoError(t, review.Reject(4))
	require.NoError(t, review.Reject(4))
	assert.False(t, suggestionAt(t, preview, 4).Approved)
}

func TestReviewApproveAllAndRejectAll(t *testing.T) {
	t.Parallel()

	preview, review := newReview(t)

	require.NoError(t, review.Approve(4))
	assert.Equal(t, 1, review.ApproveAll())
	assert.Equal(t, 0, review.ApproveAll())
	assert.Equal(t, 2, preview.Counts().Approved)

	assert.Equal(t, 2, review.RejectAll())
	assert.Equal(t, 0, review.RejectAll())
	assert.Equal(t, 0, preview.Counts().Approved)
	assert.Len(t, preview.Bucket(app.DispositionSuggestion), 2)
}

func TestReviewOverrideSameFacility(t *testing.T) {
	t.Parallel()

	preview, review := newReview(t)

	require.NoError(t, review.Override(4, "t-aid"))

	suggestion := suggestionAt(t, preview, 4)
	assert.True(t, suggestion.Approved)
	assert.Equal(t, "t-aid", suggestion.OverrideTypeID)
	assert.Equal(t, "t-aid", suggestion.Match.TrainingTypeID)
	assert.Equal(t, 730, suggestion.Match.PeriodDays)
	assert.Equal(t, 100, suggestion.Match.Confidence)
	assert.False(t, suggestion.Match.CrossFacility)

	r, _ := preview.Row(4)
	assert.Empty(t, r.Warning)
	assert.Equal(t, app.DispositionSuggestion, r.Disposition())
}

func TestReviewOverrideRecomputesCrossFacility(t *testing.T) {
	t.Parallel()

	preview, review := newReview(t)

	require.NoError(t, review.Override(10, "t-heights"))

	suggestion := suggestionAt(t, preview, 10)
	assert.True(t, suggestion.Approved)
	assert.True(t, suggestion.Match.CrossFacility)
	assert.Equal(t, 100, suggestion.Match.Confidence)

	r, _ := preview.Row(10)
	assert.Contains(t, r.Warning, "fac-2")
}

func TestReviewErrors(t *testing.T) {
	t.Parallel()

	_, review := newReview(t)

	assert.ErrorIs(t, review.Approve(999), app.ErrRowNotFound)
	assert.ErrorIs(t, review.Approve(2), app.ErrRowNotSuggestion)
	assert.ErrorIs(t, review.Reject(5), app.ErrRowNotSuggestion)
	assert.ErrorIs(t, review.Override(6, "t-aid"), app.ErrRowNotSuggestion)
	assert.ErrorIs(t, review.Override(4, "missing"), app.ErrUnknownTrainingType)
}
