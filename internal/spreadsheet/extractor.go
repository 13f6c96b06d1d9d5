package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnreadable means the payload could not be parsed as a spreadsheet at
// all. The draft is left untouched in that case.
var ErrUnreadable = errors.New("spreadsheet could not be read")

// Fixed column layout of the data row (row index 1; row 0 is the header).
const (
	colTitle = iota
	colDescription
	colObjective
	colQuarter
	colYear
	colKeyResults // pairs of (description, target) from here on
)

const defaultCurrent = "0"

// Extract reads the first worksheet of an xlsx payload and merges the data
// row into draft. Pure function of the input bytes and the prior draft; it
// never touches the store.
func Extract(data []byte, draft Draft) (Draft, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return draft, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return draft, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return draft, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(rows) < 2 {
		// Header-only or empty sheet: nothing to extract, not an error.
		return draft, nil
	}

	row := rows[1]

	if v := cell(row, colTitle); v != "" {
		draft.Title = v
	}
	if v := cell(row, colDescription); v != "" {
		draft.Description = v
	}
	if v := cell(row, colObjective); v != "" {
		draft.Objective = v
	}
	if v := cell(row, colQuarter); v != "" {
		draft.Quarter = v
	}
	if v := cell(row, colYear); v != "" {
		draft.Year = parseYear(v)
	}

	if krs := extractKeyResults(row); len(krs) > 0 {
		draft.KeyResults = krs
	}

	return draft, nil
}

// extractKeyResults consumes columns from colKeyResults on as consecutive
// (description, target) pairs. A pair counts only when both halves are
// present; the scan stops at the first incomplete pair.
func extractKeyResults(row []string) []KeyResultDraft {
	var results []KeyResultDraft
	for i := colKeyResults; i < len(row); i += 2 {
		description := cell(row, i)
		target := cell(row, i+1)
		if description == "" || target == "" {
			break
		}
		results = append(results, KeyResultDraft{
			Description: description,
			Target:      target,
			Current:     defaultCurrent,
		})
	}
	return results
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseYear accepts both "2025" and the "2025.0" excel sometimes produces
// for numeric cells. Non-numeric content yields 0, which later validation
// rejects.
func parseYear(v string) int {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
