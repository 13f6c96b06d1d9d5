package spreadsheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/okrhub/okrhub-lambda/internal/spreadsheet"
)

var header = []any{"Title", "Description", "Objective", "Quarter", "Year", "KR 1", "Target 1", "KR 2", "Target 2"}

func buildSheet(t *testing.T, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellName, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func priorDraft() spreadsheet.Draft {
	return spreadsheet.Draft{
		Title:     "Old title",
		Objective: "Old objective",
		Quarter:   "Q3",
		Year:      2024,
		KeyResults: []spreadsheet.KeyResultDraft{
			{Description: "Old KR", Target: "1", Current: "0"},
		},
	}
}

func TestExtractFullRow(t *testing.T) {
	data := buildSheet(t,
		header,
		[]any{"Grow revenue", "Company-wide push", "Increase MRR", "Q1", 2025, "Ship v1", "100"},
	)

	draft, err := spreadsheet.Extract(data, spreadsheet.Draft{})
	require.NoError(t, err)

	assert.Equal(t, "Grow revenue", draft.Title)
	assert.Equal(t, "Company-wide push", draft.Description)
	assert.Equal(t, "Increase MRR", draft.Objective)
	assert.Equal(t, "Q1", draft.Quarter)
	assert.Equal(t, 2025, draft.Year)
	assert.Equal(t, []spreadsheet.KeyResultDraft{
		{Description: "Ship v1", Target: "100", Current: "0"},
	}, draft.KeyResults)
}

func TestExtractHeaderOnlySheetLeavesDraftUnchanged(t *testing.T) {
	data := buildSheet(t, header)

	before := priorDraft()
	draft, err := spreadsheet.Extract(data, before)
	require.NoError(t, err)
	assert.Equal(t, before, draft)
}

func TestExtractEmptySheetLeavesDraftUnchanged(t *testing.T) {
	data := buildSheet(t)

	before := priorDraft()
	draft, err := spreadsheet.Extract(data, before)
	require.NoError(t, err)
	assert.Equal(t, before, draft)
}

func TestExtractFieldIndependence(t *testing.T) {
	// Only the objective column is populated; every other field keeps its
	// prior value.
	data := buildSheet(t,
		header,
		[]any{nil, nil, "New objective"},
	)

	before := priorDraft()
	draft, err := spreadsheet.Extract(data, before)
	require.NoError(t, err)

	assert.Equal(t, "New objective", draft.Objective)
	assert.Equal(t, before.Title, draft.Title)
	assert.Equal(t, before.Quarter, draft.Quarter)
	assert.Equal(t, before.Year, draft.Year)
	assert.Equal(t, before.KeyResults, draft.KeyResults)
}

func TestExtractKeyResultBatchReplacement(t *testing.T) {
	data := buildSheet(t,
		header,
		[]any{nil, nil, nil, nil, nil, "Ship v1", "100", "Improve latency", "50ms"},
	)

	draft, err := spreadsheet.Extract(data, priorDraft())
	require.NoError(t, err)

	assert.Equal(t, []spreadsheet.KeyResultDraft{
		{Description: "Ship v1", Target: "100", Current: "0"},
		{Description: "Improve latency", Target: "50ms", Current: "0"},
	}, draft.KeyResults)
}

func TestExtractPartialPairRejection(t *testing.T) {
	// The second pair is missing its target; exactly the one complete pair
	// survives.
	data := buildSheet(t,
		header,
		[]any{nil, nil, nil, nil, nil, "Ship v1", "100", "Improve latency"},
	)

	draft, err := spreadsheet.Extract(data, priorDraft())
	require.NoError(t, err)

	assert.Equal(t, []spreadsheet.KeyResultDraft{
		{Description: "Ship v1", Target: "100", Current: "0"},
	}, draft.KeyResults)
}

func TestExtractZeroPairsKeepsPriorKeyResults(t *testing.T) {
	data := buildSheet(t,
		header,
		[]any{"New title"},
	)

	before := priorDraft()
	draft, err := spreadsheet.Extract(data, before)
	require.NoError(t, err)

	assert.Equal(t, "New title", draft.Title)
	assert.Equal(t, before.KeyResults, draft.KeyResults)
}

func TestExtractNonNumericYear(t *testing.T) {
	data := buildSheet(t,
		header,
		[]any{nil, nil, nil, nil, "next year"},
	)

	draft, err := spreadsheet.Extract(data, priorDraft())
	require.NoError(t, err)

	// Unusable year; creation-time validation rejects it.
	assert.Equal(t, 0, draft.Year)
}

func TestExtractCorruptPayload(t *testing.T) {
	before := priorDraft()
	draft, err := spreadsheet.Extract([]byte("definitely not a spreadsheet"), before)

	require.ErrorIs(t, err, spreadsheet.ErrUnreadable)
	assert.Equal(t, before, draft)
}
