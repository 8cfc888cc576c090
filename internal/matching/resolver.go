package matching

import (
	"strings"

	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
)

type MatchResult struct {
	Type          domain.TrainingTypeRef
	Score         int
	CrossFacility bool
	Exact         bool
}

type typeEntry struct {
	ref        domain.TrainingTypeRef
	key        string
	normalized string
}

// TypeResolver resolves training type names against a prefetched catalogue.
// It is read-only after construction and safe for concurrent use.
type TypeResolver struct {
	entries       []typeEntry
	byID          map[string]domain.TrainingTypeRef
	minSimilarity int
}

func NewTypeResolver(types []domain.TrainingTypeRef, minSimilarity int) *TypeResolver {
	entries := make([]typeEntry, 0, len(types))
	byID := make(map[string]domain.TrainingTypeRef, len(types))
	for _, ref := range types {
		entries = append(entries, typeEntry{
			ref:        ref,
			key:        exactKey(ref.Name),
			normalized: Normalize(ref.Name),
		})
		if _, ok := byID[ref.ID]; !ok {
			byID[ref.ID] = ref
		}
	}

	return &TypeResolver{
		entries:       entries,
		byID:          byID,
		minSimilarity: minSimilarity,
	}
}

// Resolve tries an exact match in the row's facility, then the best fuzzy
// match in that facility, then the best fuzzy match in any other facility.
// The first tier that yields a candidate at or above the minimum similarity
// wins; ties keep catalogue order.
func (r *TypeResolver) Resolve(name, facility string) (MatchResult, bool) {
	key := exactKey(name)
	if key == "" {
		return MatchResult{}, false
	}

	for _, entry := range r.entries {
		if SameFacility(entry.ref.Facility, facility) && entry.key == key {
			return MatchResult{Type: entry.ref, Score: 100, Exact: true}, true
		}
	}

	normalized := Normalize(name)

	if best, ok := r.bestFuzzy(normalized, func(e typeEntry) bool {
		return SameFacility(e.ref.Facility, facility)
	}); ok {
		return best, true
	}

	if best, ok := r.bestFuzzy(normalized, func(e typeEntry) bool {
		return !SameFacility(e.ref.Facility, facility)
	}); ok {
		best.CrossFacility = true
		return best, true
	}

	return MatchResult{}, false
}

func (r *TypeResolver) bestFuzzy(normalized string, include func(typeEntry) bool) (MatchResult, bool) {
	bestScore := -1
	var best typeEntry
	for _, entry := range r.entries {
		if !include(entry) {
			continue
		}
		score := normalizedSimilarity(normalized, entry.normalized)
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if bestScore < 0 || bestScore < r.minSimilarity {
		return MatchResult{}, false
	}
	return MatchResult{Type: best.ref, Score: bestScore}, true
}

// Lookup returns the catalogue entry with the given id.
func (r *TypeResolver) Lookup(id string) (domain.TrainingTypeRef, bool) {
	ref, ok := r.byID[id]
	return ref, ok
}

// Types returns the catalogue in its original order.
func (r *TypeResolver) Types() []domain.TrainingTypeRef {
	out := make([]domain.TrainingTypeRef, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry.ref)
	}
	return out
}

func SameFacility(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// EmployeeIndex resolves employee identity by exact, case-insensitive
// employee number or email. There is no fuzzy fallback.
type EmployeeIndex struct {
	byNumber map[string]domain.EmployeeRef
	byEmail  map[string]domain.EmployeeRef
}

func NewEmployeeIndex(employees []domain.EmployeeRef) *EmployeeIndex {
	idx := &EmployeeIndex{
		byNumber: make(map[string]domain.EmployeeRef, len(employees)),
		byEmail:  make(map[string]domain.EmployeeRef, len(employees)),
	}
	for _, employee := range employees {
		if key := identityKey(employee.EmployeeNumber); key != "" {
			if _, ok := idx.byNumber[key]; !ok {
				idx.byNumber[key] = employee
			}
		}
		if key := identityKey(employee.Email); key != "" {
			if _, ok := idx.byEmail[key]; !ok {
				idx.byEmail[key] = employee
			}
		}
	}
	return idx
}

// Resolve prefers the employee number and falls back to the email when the
// number is absent or unknown.
func (i *EmployeeIndex) Resolve(employeeNumber, email string) (domain.EmployeeRef, bool) {
	if key := identityKey(employeeNumber); key != "" {
		if employee, ok := i.byNumber[key]; ok {
			return employee, true
		}
	}
	if key := identityKey(email); key != "" {
		if employee, ok := i.byEmail[key]; ok {
			return employee, true
		}
	}
	return domain.EmployeeRef{}, false
}

func identityKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
