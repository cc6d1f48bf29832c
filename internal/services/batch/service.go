package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/pdf-renamer/constants"
	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/area"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/pdf"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/rename"
)

// Starter launches a rename job; async.Worker satisfies it.
type Starter interface {
	Start(ctx context.Context, job rename.Job) (<-chan rename.Outcome, error)
}

// Request is what the control surface supplies for one batch.
type Request struct {
	Folder      string
	Prefix      string
	Suffix      string
	PreviewOnly bool
	UseRegion   bool
	// Selection is required when UseRegion is set. A zero Preview size means
	// the sample was rendered at the configured preview width.
	Selection area.Selection
}

// Service validates requests, maps the selection into document space and hands the job to the worker.
type Service struct {
	worker       Starter
	inspector    pdf.Inspector
	previewWidth int
	logger       *slog.Logger
}

func NewService(worker Starter, inspector pdf.Inspector, previewWidth int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if previewWidth <= 0 {
		previewWidth = constants.PreviewWidthDefault
	}
	return &Service{worker: worker, inspector: inspector, previewWidth: previewWidth, logger: logger}
}

// Start rejects bad requests without side effects, then starts the batch.
func (s *Service) Start(ctx context.Context, req Request) (<-chan rename.Outcome, error) {
	req.Prefix = strings.TrimSpace(req.Prefix)
	req.Suffix = strings.TrimSpace(req.Suffix)

	v := common.NewValidator().
		Field("folder", req.Folder, common.Required, common.Directory).
		Field("prefix", req.Prefix, common.NoPathSeparator).
		Field("suffix", req.Suffix, common.NoPathSeparator)
	if req.UseRegion {
		v.Check(!req.Selection.Rect.IsZero(), "area", req.Selection.Rect.String(), "no area selected on the sample document").
			Field("sample", req.Selection.SamplePath, common.Required, common.RegularFile)
	}
	if err := common.ValidateAndReturnError(v); err != nil {
		s.logger.Warn("batch.start.invalid", "error", err)
		return nil, err
	}

	job := rename.Job{
		Folder:      req.Folder,
		Prefix:      req.Prefix,
		Suffix:      req.Suffix,
		PreviewOnly: req.PreviewOnly,
		Mode:        pdf.ModeWhole,
	}
	if req.UseRegion {
		region, err := s.Map(ctx, req.Selection)
		if err != nil {
			return nil, err
		}
		job.Mode = pdf.ModeRegion
		job.Region = region
	}

	ch, err := s.worker.Start(ctx, job)
	if err != nil {
		return nil, err
	}
	s.logger.Info("batch.start.ok",
		"folder", job.Folder,
		"mode", job.Mode,
		"region", job.Region.String(),
		"preview_only", job.PreviewOnly,
	)
	return ch, nil
}

// Map converts a selection into document space using the sample's first page.
func (s *Service) Map(ctx context.Context, sel area.Selection) (area.Rect, error) {
	info, err := s.inspector.Inspect(ctx, sel.SamplePath)
	if err != nil {
		return area.Rect{}, common.WrapError(err, "inspect sample")
	}
	if info.PageCount == 0 {
		return area.Rect{}, common.NewAppError("INVALID_ARGUMENT", "sample document has no pages", common.ErrInvalidInput)
	}

	preview := sel.Preview
	if preview.Width <= 0 || preview.Height <= 0 {
		preview = area.PreviewSize(info.FirstPage, s.previewWidth)
	}
	doc := area.MapToDocument(preview, info.FirstPage, sel.Rect)
	s.logger.Debug("batch.map",
		"screen", sel.Rect.String(),
		"preview", preview.String(),
		"page", info.FirstPage.String(),
		"document", doc.String(),
	)
	return doc, nil
}

// Describe renders a mapped rectangle the way the CLI prints it.
func Describe(r area.Rect) string {
	return fmt.Sprintf("x0=%g y0=%g x1=%g y1=%g (w=%g h=%g)", r.X0, r.Y0, r.X1, r.Y1, r.Width(), r.Height())
}
