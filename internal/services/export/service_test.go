package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/pdf-renamer/constants"
	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/rename"
)

func TestWriteXLSX(t *testing.T) {
	summary := &rename.Summary{
		RunID:  "run-1",
		Total:  2,
		Counts: map[constants.OutcomeKind]int{constants.OutcomeRenamed: 1, constants.OutcomeFailed: 1},
	}
	r := Report{
		Folder:    "/docs",
		Mode:      "whole",
		StartedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Outcomes: []rename.Outcome{
			{Kind: constants.OutcomeRenamed, Source: "doc1.pdf", FinalName: "May_Rent_Invoice.pdf"},
			{Kind: constants.OutcomeFailed, Source: "b.pdf", Reason: "openai status 401: bad key"},
			{Kind: constants.OutcomeDone, Summary: summary},
		},
	}

	b, err := NewService(nil).WriteXLSX(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetOutcomes)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "Outcome", "Source", "Final Name", "Reason", "Log Line"}, rows[0])
	assert.Equal(t, "RENAMED", rows[1][1])
	assert.Equal(t, "May_Rent_Invoice.pdf", rows[1][3])
	assert.Equal(t, "Renamed doc1.pdf to: May_Rent_Invoice.pdf", rows[1][5])
	assert.Equal(t, "openai status 401: bad key", rows[2][4])

	sum, err := f.GetRows(sheetSummary)
	require.NoError(t, err)
	values := map[string]string{}
	for _, row := range sum {
		if len(row) == 2 {
			values[row[0]] = row[1]
		}
	}
	assert.Equal(t, "/docs", values["Folder"])
	assert.Equal(t, "run-1", values["Run ID"])
	assert.Equal(t, "1", values["RENAMED"])
	assert.Equal(t, "0", values["SKIPPED_CONFLICT"])
}

func TestCheckPath(t *testing.T) {
	dir := t.TempDir()
	require.ErrorIs(t, CheckPath(filepath.Join(dir, "report.xlsx"), dir), common.ErrInvalidInput)
	require.ErrorIs(t, CheckPath(filepath.Join(t.TempDir(), "report.csv"), dir), common.ErrInvalidInput)
	require.NoError(t, CheckPath(filepath.Join(t.TempDir(), "report.xlsx"), dir))
	require.NoError(t, CheckPath(filepath.Join(dir, "sub", "report.xlsx"), dir))
}
