package matching

import (
	"sort"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Search ranks catalogue types whose name contains the query characters in
// order, closest first. It backs the manual override picker and is not used
// for classification.
func Search(types []domain.TrainingTypeRef, query string, limit int) []domain.TrainingTypeRef {
	if limit <= 0 {
		limit = 20
	}

	if query == "" {
		if len(types) > limit {
			return append([]domain.TrainingTypeRef(nil), types[:limit]...)
		}
		return append([]domain.TrainingTypeRef(nil), types...)
	}

	names := make([]string, len(types))
	for i, ref := range types {
		names[i] = ref.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]domain.TrainingTypeRef, 0, min(limit, len(ranks)))
	for _, rank := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, types[rank.OriginalIndex])
	}
	return out
}
