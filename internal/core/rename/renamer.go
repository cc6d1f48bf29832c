package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/pdf-renamer/constants"
	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/area"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/pdf"
)

// TextExtractor reads the text a name is derived from.
type TextExtractor interface {
	Extract(ctx context.Context, req pdf.ExtractionRequest) (string, error)
}

// Namer turns text into a candidate filename.
type Namer interface {
	Generate(ctx context.Context, text string) llm.NamingResult
}

// Job is one batch invocation.
type Job struct {
	Folder      string
	Prefix      string
	Suffix      string
	PreviewOnly bool
	Mode        pdf.Mode
	// Region is in document space; used in region mode only.
	Region area.Rect
}

// Renamer walks a folder and renames each PDF after its content.
type Renamer struct {
	extractor     TextExtractor
	namer         Namer
	maxTextLength int
	logger        *slog.Logger
}

func NewRenamer(extractor TextExtractor, namer Namer, maxTextLength int, logger *slog.Logger) *Renamer {
	if logger == nil {
		logger = slog.Default()
	}
	if maxTextLength <= 0 {
		maxTextLength = constants.MaxTextLengthDefault
	}
	return &Renamer{extractor: extractor, namer: namer, maxTextLength: maxTextLength, logger: logger}
}

// FinalName composes prefix + candidate + suffix with exactly one .pdf extension.
func FinalName(prefix, candidate, suffix string) string {
	return constants.TrimPDFExt(prefix+candidate+suffix) + "." + constants.PDFExt
}

// Run processes job on its own goroutine and streams outcomes
// in visiting order. The channel always ends with a Done outcome and is then closed.
// The caller must drain it.
func (r *Renamer) Run(ctx context.Context, job Job) <-chan Outcome {
	out := make(chan Outcome, 16)
	go func() {
		defer close(out)
		r.run(ctx, job, out)
	}()
	return out
}

func (r *Renamer) run(ctx context.Context, job Job, out chan<- Outcome) {
	runID := common.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.New().String()
		ctx = common.WithRunID(ctx, runID)
	}
	log := r.logger.With("run_id", runID)
	start := time.Now()
	summary := newSummary(runID)

	emit := func(o Outcome) {
		summary.add(o.Kind)
		out <- o
	}

	log.Info("rename.run.start",
		"folder", job.Folder,
		"mode", job.Mode,
		"preview_only", job.PreviewOnly,
		"region", job.Region.String(),
	)

	names, err := listPDFs(job.Folder)
	if err != nil {
		log.Error("rename.run.list_failed", "folder", job.Folder, "error", err)
		emit(Outcome{Kind: constants.OutcomeFailed, Reason: err.Error()})
		out <- Outcome{Kind: constants.OutcomeDone, Summary: summary}
		return
	}

	var stopped string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			stopped = err.Error()
			log.Warn("rename.run.cancelled", "error", err)
			break
		}
		o := r.processFile(ctx, log, job, name)
		emit(o)
	}

	log.Info("rename.run.done",
		"files", summary.Total,
		"summary", summary.String(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	out <- Outcome{Kind: constants.OutcomeDone, Reason: stopped, Summary: summary}
}

func (r *Renamer) processFile(ctx context.Context, log *slog.Logger, job Job, name string) Outcome {
	src := filepath.Join(job.Folder, name)
	log = log.With("file", name)

	text, err := r.extractor.Extract(ctx, pdf.ExtractionRequest{
		Path:      src,
		Mode:      job.Mode,
		Region:    job.Region,
		MaxLength: r.maxTextLength,
	})
	switch {
	case errors.Is(err, common.ErrEmptyRegion):
		log.Info("rename.file.empty_region")
		return Outcome{Kind: constants.OutcomeSkippedEmptyRegion, Source: name}
	case err != nil:
		log.Warn("rename.file.extract_failed", "error", err)
		return Outcome{Kind: constants.OutcomeFailed, Source: name, Reason: err.Error()}
	}

	res := r.namer.Generate(ctx, text)
	if !res.OK() {
		log.Warn("rename.file.naming_failed", "reason", res.Reason())
		return Outcome{Kind: constants.OutcomeFailed, Source: name, Reason: res.Reason()}
	}

	final := FinalName(job.Prefix, res.Name(), job.Suffix)
	if job.PreviewOnly {
		log.Info("rename.file.would_rename", "final", final)
		return Outcome{Kind: constants.OutcomeWouldRename, Source: name, FinalName: final}
	}

	dst := filepath.Join(job.Folder, final)
	// Lstat then Rename leaves a window where another process could create dst.
	if _, err := os.Lstat(dst); err == nil {
		log.Info("rename.file.conflict", "final", final)
		return Outcome{Kind: constants.OutcomeSkippedConflict, Source: name, FinalName: final, Reason: common.ErrConflict.Error()}
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Warn("rename.file.stat_failed", "final", final, "error", err)
		return Outcome{Kind: constants.OutcomeFailed, Source: name, FinalName: final, Reason: fmt.Sprintf("%v: %v", common.ErrFilesystem, err)}
	}

	if err := os.Rename(src, dst); err != nil {
		log.Warn("rename.file.rename_failed", "final", final, "error", err)
		return Outcome{Kind: constants.OutcomeFailed, Source: name, FinalName: final, Reason: fmt.Sprintf("%v: %v", common.ErrFilesystem, err)}
	}
	log.Info("rename.file.renamed", "final", final)
	return Outcome{Kind: constants.OutcomeRenamed, Source: name, FinalName: final}
}

// listPDFs returns the names of .pdf files in dir that are regular files or
// symlinks to regular files, in the order the filesystem reports them.
func listPDFs(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: open folder: %v", common.ErrFilesystem, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: list folder: %v", common.ErrFilesystem, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !constants.IsPDF(e.Name()) || !isRegularFile(dir, e) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func isRegularFile(dir string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && fi.Mode().IsRegular()
}
