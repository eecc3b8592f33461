package catalog

import (
	"fmt"
	"sort"

	"github.com/jonathan/career-recommender/internal/types"
)

// Store holds the career records in source order along with derived lookup
// views. It is never mutated after New returns.
type Store struct {
	records   []types.CareerRecord
	byID      map[int]int
	skills    []string
	interests []string
	levels    []string
}

// New builds a Store from records. Ids must be unique.
func New(records []types.CareerRecord) (*Store, error) {
	s := &Store{
		records: make([]types.CareerRecord, len(records)),
		byID:    make(map[int]int, len(records)),
	}
	copy(s.records, records)

	skillSet := make(map[string]bool)
	interestSet := make(map[string]bool)
	levelSet := make(map[string]bool)

	for i, rec := range s.records {
		if prev, dup := s.byID[rec.ID]; dup {
			return nil, &DataLoadError{
				Message: fmt.Sprintf("duplicate career id %d at rows %d and %d", rec.ID, prev+1, i+1),
			}
		}
		s.byID[rec.ID] = i

		for _, skill := range types.SplitList(rec.Skills) {
			skillSet[skill] = true
		}
		for _, interest := range types.SplitList(rec.Interests) {
			interestSet[interest] = true
		}
		if rec.ExperienceLevel != "" {
			levelSet[rec.ExperienceLevel] = true
		}
	}

	s.skills = sortedKeys(skillSet)
	s.interests = sortedKeys(interestSet)
	s.levels = sortedKeys(levelSet)
	return s, nil
}

// Len returns the number of careers.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of every career in source order.
func (s *Store) All() []types.CareerRecord {
	out := make([]types.CareerRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Records returns the backing slice. Callers must treat it as read-only.
func (s *Store) Records() []types.CareerRecord {
	return s.records
}

// FindByID returns the career with the given id.
func (s *Store) FindByID(id int) (types.CareerRecord, error) {
	idx, ok := s.byID[id]
	if !ok {
		return types.CareerRecord{}, &NotFoundError{ID: id}
	}
	return s.records[idx], nil
}

// SkillTexts returns each career's raw skills text in source order.
func (s *Store) SkillTexts() []string {
	out := make([]string, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Skills
	}
	return out
}

// DistinctSkills returns every skill token in the catalog, deduplicated and sorted.
func (s *Store) DistinctSkills() []string {
	return cloneStrings(s.skills)
}

// DistinctInterests returns every interest token in the catalog, deduplicated and sorted.
func (s *Store) DistinctInterests() []string {
	return cloneStrings(s.interests)
}

// ExperienceLevels returns the distinct experience labels, sorted.
func (s *Store) ExperienceLevels() []string {
	return cloneStrings(s.levels)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
