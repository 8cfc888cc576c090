package matching_test

import (
	"testing"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/ekaterinavoj/validity-view/internal/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(refs []domain.TrainingTypeRef) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = ref.ID
	}
	return out
}

func TestSearchRanksMatches(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"t2", "t4"}, ids(matching.Search(catalogue(), "atex", 10)))
	assert.Equal(t, []string{"t3"}, ids(matching.Search(catalogue(), "VYSK", 10)))
	assert.Empty(t, matching.Search(catalogue(), "zzz", 10))
}

func TestSearchLimit(t *testing.T) {
	t.Parallel()

	got := matching.Search(catalogue(), "atex", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)

	assert.Len(t, matching.Search(catalogue(), "", 3), 3)
	assert.Len(t, matching.Search(catalogue(), "", 0), 4)
}
