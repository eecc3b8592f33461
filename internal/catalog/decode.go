package catalog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/jonathan/career-recommender/internal/types"
	"github.com/mitchellh/mapstructure"
)

// RequiredColumns must be present in every tabular catalog source.
var RequiredColumns = []string{"id", "title", "skills", "interests", "experience_level"}

// normalizeHeader lowercases and trims header names so "Experience_Level " matches.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	return out
}

// checkColumns verifies the header carries every required column.
func checkColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &DataLoadError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return nil
}

// decodeRows converts header plus data rows into career records. Rows shorter
// than the header are padded with empty values; fully blank rows are skipped.
func decodeRows(header []string, rows [][]string) ([]types.CareerRecord, error) {
	header = normalizeHeader(header)
	if err := checkColumns(header); err != nil {
		return nil, err
	}

	records := make([]types.CareerRecord, 0, len(rows))
	for i, row := range rows {
		if isBlank(row) {
			continue
		}

		fields := make(map[string]string, len(header))
		for j, col := range header {
			if col == "" {
				continue
			}
			if j < len(row) {
				fields[col] = strings.TrimSpace(row[j])
			} else {
				fields[col] = ""
			}
		}

		// header is row 1
		rec, err := decodeRecord(fields)
		if err != nil {
			return nil, &DataLoadError{Message: fmt.Sprintf("row %d", i+2), Cause: err}
		}
		records = append(records, rec)
	}

	return records, nil
}

// decodeRecord maps one row onto a CareerRecord. Integer fields are parsed
// as base-10 text, so "010" is 10; anything non-integral is rejected.
func decodeRecord(fields map[string]string) (types.CareerRecord, error) {
	var rec types.CareerRecord

	if fields["id"] == "" {
		return rec, fmt.Errorf("id is empty")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "mapstructure",
		DecodeHook: decimalIntHook,
		Result:     &rec,
	})
	if err != nil {
		return rec, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return rec, fmt.Errorf("failed to decode row: %w", err)
	}

	return rec, nil
}

// decimalIntHook parses strings bound for int fields in base 10. Leading
// zeros are not octal and "0x" prefixes are not hex.
func decimalIntHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	n, err := strconv.ParseInt(raw, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("%q is not a base-10 integer", raw)
	}
	return int(n), nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
