package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/career-recommender/internal/types"
	"github.com/xuri/excelize/v2"
)

// ParseCSV reads a catalog from CSV. The first record is the header.
func ParseCSV(r io.Reader) ([]types.CareerRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DataLoadError{Message: "catalog is empty"}
		}
		return nil, &DataLoadError{Message: "failed to read CSV header", Cause: err}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &DataLoadError{Message: "failed to read CSV rows", Cause: err}
	}

	return decodeRows(header, rows)
}

// ParseXLSX reads a catalog from the first sheet of an XLSX workbook.
func ParseXLSX(r io.Reader) ([]types.CareerRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DataLoadError{Message: "failed to open workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &DataLoadError{Message: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &DataLoadError{Message: fmt.Sprintf("failed to read sheet %q", sheets[0]), Cause: err}
	}
	if len(rows) == 0 {
		return nil, &DataLoadError{Message: "catalog is empty"}
	}

	return decodeRows(rows[0], rows[1:])
}
