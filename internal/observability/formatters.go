// Package observability provides formatted output utilities for human-readable CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-recommender/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for --pretty mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintQuery outputs the query being scored.
func (p *Printer) PrintQuery(query *types.UserQuery) {
	if query == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills:      %s\n", listOrNone(query.Skills)))
	sb.WriteString(fmt.Sprintf("Interests:   %s\n", listOrNone(query.Interests)))
	sb.WriteString(fmt.Sprintf("Experience:  %s", query.ExperienceOrDefault()))

	p.printBox("QUERY", sb.String())
}

// PrintRecommendations outputs the top recommendations with their component scores.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		p.printBox("RECOMMENDATIONS", "No careers in the catalog")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total recommendations: %d\n\n", len(recs)))

	count := min(len(recs), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := recs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (id %d)\n", i+1, rec.Title, rec.CareerID))
		sb.WriteString(fmt.Sprintf("    Score: %.3f  skill %.2f  interest %.2f  exp %.2f\n",
			rec.OverallScore, rec.SkillScore, rec.InterestScore, rec.ExperienceScore))
		if len(rec.MatchReasons) > 0 {
			sb.WriteString(fmt.Sprintf("    %s\n", strings.Join(rec.MatchReasons, "; ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more careers", len(recs)-maxItemsToShow))
	}

	p.printBox("TOP RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCareer outputs every field of one career.
func (p *Printer) PrintCareer(career *types.CareerRecord) {
	if career == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:           %d\n", career.ID))
	if career.Description != "" {
		sb.WriteString(fmt.Sprintf("Description:  %s\n", career.Description))
	}
	sb.WriteString(fmt.Sprintf("Skills:       %s\n", career.Skills))
	sb.WriteString(fmt.Sprintf("Interests:    %s\n", career.Interests))
	sb.WriteString(fmt.Sprintf("Experience:   %s", career.ExperienceLevel))
	for _, f := range []struct{ label, value string }{
		{"Salary", career.SalaryRange},
		{"Growth", career.GrowthPotential},
		{"Environment", career.WorkEnvironment},
	} {
		if f.value != "" {
			sb.WriteString(fmt.Sprintf("\n%-13s %s", f.label+":", f.value))
		}
	}

	p.printBox(strings.ToUpper(career.Title), sb.String())
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
