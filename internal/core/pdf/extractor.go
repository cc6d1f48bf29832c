package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joseph-ayodele/pdf-renamer/constants"
	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/area"
)

// Mode selects which part of a document is read.
type Mode string

const (
	ModeWhole  Mode = "whole"
	ModeRegion Mode = "region"
)

// ExtractionRequest describes one text extraction.
type ExtractionRequest struct {
	Path string
	Mode Mode
	// Region is in document space and only used in region mode.
	Region    area.Rect
	MaxLength int
}

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
}

// Extractor reads text from documents through poppler, with page
// information from an Inspector.
type Extractor struct {
	cfg       Config
	runner    Runner
	inspector Inspector
	logger    *slog.Logger
}

type Option func(*Extractor)

func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

func WithInspector(i Inspector) Option {
	return func(e *Extractor) {
		if i != nil {
			e.inspector = i
		}
	}
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	e := &Extractor{cfg: cfg, runner: ExecRunner{}, inspector: PdfcpuInspector{}, logger: logger}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Inspect exposes the configured inspector.
func (e *Extractor) Inspect(ctx context.Context, path string) (DocumentInfo, error) {
	return e.inspector.Inspect(ctx, path)
}

// Extract returns the text for req. Errors wrap common.ErrExtraction, or
// are common.ErrEmptyRegion when a region holds no text.
func (e *Extractor) Extract(ctx context.Context, req ExtractionRequest) (string, error) {
	start := time.Now()
	var (
		text string
		err  error
	)
	switch req.Mode {
	case ModeRegion:
		text, err = e.extractRegion(ctx, req)
	case ModeWhole, "":
		text, err = e.extractWhole(ctx, req)
	default:
		return "", fmt.Errorf("%w: unknown extraction mode %q", common.ErrInvalidInput, req.Mode)
	}

	if err != nil {
		e.logger.Debug("pdf.extract.failed", "path", req.Path, "mode", req.Mode, "error", err)
		return "", err
	}
	e.logger.Debug("pdf.extract.ok",
		"path", req.Path,
		"mode", req.Mode,
		"chars", utf8.RuneCountInString(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (e *Extractor) extractWhole(ctx context.Context, req ExtractionRequest) (string, error) {
	maxLen := req.MaxLength
	if maxLen <= 0 {
		maxLen = constants.MaxTextLengthDefault
	}

	info, err := e.inspector.Inspect(ctx, req.Path)
	if err != nil {
		return "", err
	}
	if info.PageCount == 0 {
		return "", common.ErrNoContent
	}

	var b strings.Builder
	for page := 1; page <= info.PageCount; page++ {
		txt, err := e.pageText(ctx, req.Path, page, nil)
		if err != nil {
			return "", err
		}
		b.WriteString(txt)
		if utf8.RuneCountInString(b.String()) >= maxLen {
			break
		}
	}

	text := truncateRunes(strings.TrimSpace(b.String()), maxLen)
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no extractable text", common.ErrExtraction)
	}
	return text, nil
}

func (e *Extractor) extractRegion(ctx context.Context, req ExtractionRequest) (string, error) {
	region := req.Region.Normalize()
	if region.IsEmpty() {
		return "", common.ErrEmptyRegion
	}

	info, err := e.inspector.Inspect(ctx, req.Path)
	if err != nil {
		return "", err
	}
	if info.PageCount == 0 {
		return "", common.ErrNoContent
	}

	txt, err := e.pageText(ctx, req.Path, 1, &region)
	if err != nil {
		return "", err
	}
	txt = strings.TrimSpace(txt)
	if txt == "" {
		return "", common.ErrEmptyRegion
	}
	return txt, nil
}

// pageText runs pdftotext for one page, optionally cropped to clip.
// pdftotext crop coordinates are pixels at -r 72, which are document points.
func (e *Extractor) pageText(ctx context.Context, path string, page int, clip *area.Rect) (string, error) {
	p := strconv.Itoa(page)
	args := []string{"-f", p, "-l", p}
	if clip != nil {
		args = append(args,
			"-r", "72",
			"-x", fmtPt(clip.X0),
			"-y", fmtPt(clip.Y0),
			"-W", fmtPt(clip.Width()),
			"-H", fmtPt(clip.Height()),
		)
	}
	args = append(args, "-enc", "UTF-8", "-eol", "unix", "-nopgbrk", path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, e.logger, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.Join(common.ErrExtraction, ctxErr)
		}
		return "", fmt.Errorf("%w: %s", common.ErrExtraction, toolError("pdftotext", errb, err))
	}
	return string(out), nil
}

func fmtPt(v float64) string {
	return strconv.Itoa(int(v))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
