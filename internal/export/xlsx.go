// Package export writes ranked recommendations to spreadsheet files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/career-recommender/internal/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the generated workbook.
const (
	SummarySheet         = "Summary"
	RecommendationsSheet = "Recommendations"
)

// RecommendationHeaders is the header row of the Recommendations sheet.
var RecommendationHeaders = []string{
	"Rank", "Career ID", "Title", "Overall", "Skill", "Interest", "Experience",
	"Personality", "Match Reasons", "Experience Level", "Salary Range", "Growth Potential",
}

// WriteXLSX writes recs and the query that produced them to path, appending
// ".xlsx" when missing. It returns the path actually written.
func WriteXLSX(recs []types.Recommendation, query types.UserQuery, path string) (string, error) {
	return writeXLSX(recs, query, path, time.Now())
}

func writeXLSX(recs []types.Recommendation, query types.UserQuery, path string, generated time.Time) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(RecommendationsSheet); err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeSummary(f, recs, query, generated); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRecommendations(f, recs); err != nil {
		return "", fmt.Errorf("failed to create recommendations sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return path, nil
}

func writeSummary(f *excelize.File, recs []types.Recommendation, query types.UserQuery, generated time.Time) error {
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 60); err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Career Recommendations"},
		{},
		{"Generated", generated.UTC().Format(time.RFC3339)},
		{"Skills", strings.Join(query.Skills, ", ")},
		{"Interests", strings.Join(query.Interests, ", ")},
		{"Experience", query.ExperienceOrDefault()},
		{"Recommendations", len(recs)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
		if len(row) > 0 {
			if err := f.SetCellStyle(SummarySheet, cell, cell, labelStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeRecommendations(f *excelize.File, recs []types.Recommendation) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	header := make([]any, len(RecommendationHeaders))
	for i, h := range RecommendationHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(RecommendationsSheet, "A1", &header); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(RecommendationHeaders))
	if err := f.SetCellStyle(RecommendationsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, rec := range recs {
		row := []any{
			i + 1,
			rec.CareerID,
			rec.Title,
			rec.OverallScore,
			rec.SkillScore,
			rec.InterestScore,
			rec.ExperienceScore,
			rec.PersonalityScore,
			strings.Join(rec.MatchReasons, "; "),
			rec.ExperienceLevel,
			rec.SalaryRange,
			rec.GrowthPotential,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(RecommendationsSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(RecommendationsSheet, "C", "C", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(RecommendationsSheet, "I", "I", 50); err != nil {
		return err
	}
	if len(recs) > 0 {
		if err := f.AutoFilter(RecommendationsSheet, fmt.Sprintf("A1:%s%d", lastCol, len(recs)+1), nil); err != nil {
			return err
		}
	}
	return f.SetPanes(RecommendationsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
