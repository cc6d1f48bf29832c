package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/pdf-renamer/constants"
	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/rename"
)

const (
	sheetOutcomes = "Outcomes"
	sheetSummary  = "Summary"
)

// Service writes a run report as an XLSX workbook.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Report describes one finished batch.
type Report struct {
	Folder      string
	PreviewOnly bool
	Mode        string
	StartedAt   time.Time
	Outcomes    []rename.Outcome
}

// WriteXLSX builds the workbook for r and returns its bytes.
func (s *Service) WriteXLSX(r Report) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("export.xlsx.close_error", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetOutcomes); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(sheetOutcomes)
	f.SetActiveSheet(activeIndex)

	headers := []string{"#", "Outcome", "Source", "Final Name", "Reason", "Log Line"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetOutcomes, cell, h)
	}

	var summary *rename.Summary
	row := 2
	for _, o := range r.Outcomes {
		if o.Kind == constants.OutcomeDone {
			summary = o.Summary
			continue
		}
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetOutcomes, cell, v)
		}
		write(1, row-1)
		write(2, string(o.Kind))
		write(3, o.Source)
		write(4, o.FinalName)
		write(5, truncate(o.Reason, 300))
		write(6, o.Line())
		row++
	}

	_ = f.SetColWidth(sheetOutcomes, "A", "A", 6)
	_ = f.SetColWidth(sheetOutcomes, "B", "B", 22)
	_ = f.SetColWidth(sheetOutcomes, "C", "D", 40)
	_ = f.SetColWidth(sheetOutcomes, "E", "F", 60)

	pairs := [][2]any{
		{"Folder", r.Folder},
		{"Mode", r.Mode},
		{"Preview Only", r.PreviewOnly},
		{"Started", r.StartedAt.Format(time.RFC3339)},
	}
	if summary != nil {
		pairs = append(pairs, [2]any{"Run ID", summary.RunID}, [2]any{"Files", summary.Total})
		for _, k := range constants.OutcomeKinds {
			pairs = append(pairs, [2]any{string(k), summary.Counts[k]})
		}
	}
	for i, p := range pairs {
		_ = f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", i+1), p[0])
		_ = f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", i+1), p[1])
	}
	_ = f.SetColWidth(sheetSummary, "A", "A", 24)
	_ = f.SetColWidth(sheetSummary, "B", "B", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"folder", r.Folder,
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// CheckPath rejects report paths inside the folder being renamed, so a
// report can never be picked up or collide with a renamed file.
func CheckPath(reportPath, folder string) error {
	absReport, err := filepath.Abs(reportPath)
	if err != nil {
		return fmt.Errorf("%w: report path: %v", common.ErrInvalidInput, err)
	}
	absFolder, err := filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("%w: folder path: %v", common.ErrInvalidInput, err)
	}
	if filepath.Dir(absReport) == filepath.Clean(absFolder) {
		return fmt.Errorf("%w: report must not be written inside the target folder", common.ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(absReport), ".xlsx") {
		return fmt.Errorf("%w: report path must end in .xlsx", common.ErrInvalidInput)
	}
	return nil
}

// Save writes the report to path.
func (s *Service) Save(path string, r Report) error {
	b, err := s.WriteXLSX(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("%w: write report: %v", common.ErrFilesystem, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
