package catalog

import (
	"testing"

	"github.com/jonathan/career-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []types.CareerRecord {
	return []types.CareerRecord{
		{ID: 3, Title: "Data Analyst", Skills: "python, sql ,statistics", Interests: "data,analysis", ExperienceLevel: "entry"},
		{ID: 1, Title: "Backend Engineer", Skills: "java,spring,sql", Interests: "backend, data", ExperienceLevel: "mid"},
		{ID: 2, Title: "Artist", Skills: "", Interests: "", ExperienceLevel: "senior"},
	}
}

func TestNew_PreservesOrder(t *testing.T) {
	s, err := New(sampleRecords())
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, 3, s.Len())
}

func TestNew_DuplicateID(t *testing.T) {
	records := sampleRecords()
	records[2].ID = 3

	_, err := New(records)
	var loadErr *DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "duplicate career id 3")
}

func TestNew_EmptyCatalog(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.DistinctSkills())
}

func TestStore_FindByID(t *testing.T) {
	s, err := New(sampleRecords())
	require.NoError(t, err)

	rec, err := s.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", rec.Title)

	_, err = s.FindByID(99)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 99, notFound.ID)
}

func TestStore_DistinctViews(t *testing.T) {
	s, err := New(sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, []string{"java", "python", "spring", "sql", "statistics"}, s.DistinctSkills())
	assert.Equal(t, []string{"analysis", "backend", "data"}, s.DistinctInterests())
	assert.Equal(t, []string{"entry", "mid", "senior"}, s.ExperienceLevels())
}

func TestStore_Immutable(t *testing.T) {
	records := sampleRecords()
	s, err := New(records)
	require.NoError(t, err)

	// mutating the input or returned copies does not leak into the store
	records[0].Title = "changed"
	all := s.All()
	all[1].Title = "changed"
	skills := s.DistinctSkills()
	skills[0] = "changed"

	rec, err := s.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", rec.Title)
	rec, err = s.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", rec.Title)
	assert.Equal(t, "java", s.DistinctSkills()[0])
}

func TestStore_SkillTexts(t *testing.T) {
	s, err := New(sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, []string{"python, sql ,statistics", "java,spring,sql", ""}, s.SkillTexts())
}
