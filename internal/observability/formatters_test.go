package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/career-recommender/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintQuery(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintQuery(&types.UserQuery{Skills: []string{"python", "sql"}})
	output := buf.String()

	assert.Contains(t, output, "QUERY")
	assert.Contains(t, output, "python, sql")
	assert.Contains(t, output, "(none)")
	assert.Contains(t, output, "entry")
}

func TestPrintQuery_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintQuery(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	recs := make([]types.Recommendation, 7)
	for i := range recs {
		recs[i] = types.Recommendation{CareerID: i + 1, Title: "Career", OverallScore: 0.5}
	}
	recs[0].Title = "Data Scientist"
	recs[0].MatchReasons = []string{"Strong skill match"}

	p.PrintRecommendations(recs)
	output := buf.String()

	assert.Contains(t, output, "TOP RECOMMENDATIONS")
	assert.Contains(t, output, "Total recommendations: 7")
	assert.Contains(t, output, "#1  Data Scientist (id 1)")
	assert.Contains(t, output, "Strong skill match")
	assert.Contains(t, output, "#5")
	assert.NotContains(t, output, "#6")
	assert.Contains(t, output, "... and 2 more careers")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecommendations(nil)
	assert.Contains(t, buf.String(), "No careers in the catalog")
}

func TestPrintCareer(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCareer(&types.CareerRecord{
		ID:              3,
		Title:           "Nurse",
		Skills:          "patient care,communication",
		Interests:       "healthcare",
		ExperienceLevel: "entry",
		SalaryRange:     "$60k-$80k",
	})
	output := buf.String()

	assert.Contains(t, output, "NURSE")
	assert.Contains(t, output, "patient care,communication")
	assert.Contains(t, output, "$60k-$80k")
	assert.NotContains(t, output, "Growth:")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[3], "...")
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
}
