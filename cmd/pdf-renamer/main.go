package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/area"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/async"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/llm/provider"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/pdf"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/rename"
	"github.com/joseph-ayodele/pdf-renamer/internal/services/batch"
	"github.com/joseph-ayodele/pdf-renamer/internal/services/export"
	"github.com/joseph-ayodele/pdf-renamer/internal/services/progress"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "pdf-renamer",
		Usage: "rename PDFs after their content using a language model",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file to load before reading the environment"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides LOG_LEVEL)"},
		},
		Before: func(c *cli.Context) error {
			if err := godotenv.Load(c.String("env-file")); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", c.String("env-file"), err)
			}
			level := c.String("log-level")
			if level == "" {
				level = common.LoadConfig().Log.Level
			}
			setupLogger(level)
			return nil
		},
		Commands: []*cli.Command{
			previewCommand(),
			mapCommand(),
			renameCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger sends structured logs to stderr; stdout carries only the progress log.
func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

func newExtractor(cfg *common.Config) *pdf.Extractor {
	return pdf.NewExtractor(pdf.Config{Pdftotext: cfg.PDF.Pdftotext, Pdftoppm: cfg.PDF.Pdftoppm}, slog.Default())
}

func selectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "sample", Usage: "sample PDF the area was drawn on"},
		&cli.StringFlag{Name: "area", Usage: "selection on the preview as x0,y0,x1,y1 (pixels)"},
		&cli.StringFlag{Name: "preview-size", Usage: "rendered preview size as WxH; defaults to the configured preview width"},
	}
}

func parseSelection(c *cli.Context) (area.Selection, error) {
	sel := area.Selection{SamplePath: c.String("sample")}
	if s := c.String("area"); s != "" {
		r, err := area.ParseRect(s)
		if err != nil {
			return sel, err
		}
		sel.Rect = r
	}
	if s := c.String("preview-size"); s != "" {
		size, err := area.ParseSize(s)
		if err != nil {
			return sel, err
		}
		sel.Preview = size
	}
	return sel, nil
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "render the first page of a sample PDF for area selection",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sample", Required: true, Usage: "sample PDF"},
			&cli.StringFlag{Name: "out", Required: true, Usage: "output PNG path"},
			&cli.IntFlag{Name: "width", Usage: "preview width in pixels (default PREVIEW_WIDTH)"},
		},
		Action: func(c *cli.Context) error {
			cfg := common.LoadConfig()
			width := c.Int("width")
			if width <= 0 {
				width = cfg.PDF.PreviewWidth
			}
			p, err := newExtractor(cfg).RenderPreview(c.Context, c.String("sample"), width, c.String("out"))
			if err != nil {
				return err
			}
			fmt.Printf("preview: %s\nrendered: %s\npage: %s\n", p.Path, p.Rendered, p.Page)
			return nil
		},
	}
}

func mapCommand() *cli.Command {
	return &cli.Command{
		Name:  "map",
		Usage: "map a preview selection into document space",
		Flags: selectionFlags(),
		Action: func(c *cli.Context) error {
			cfg := common.LoadConfig()
			sel, err := parseSelection(c)
			if err != nil {
				return err
			}
			v := common.NewValidator().
				Field("sample", sel.SamplePath, common.Required, common.RegularFile).
				Field("area", c.String("area"), common.Required)
			if err := common.ValidateAndReturnError(v); err != nil {
				return err
			}
			svc := batch.NewService(nil, newExtractor(cfg), cfg.PDF.PreviewWidth, slog.Default())
			doc, err := svc.Map(c.Context, sel)
			if err != nil {
				return err
			}
			fmt.Println(batch.Describe(doc))
			return nil
		},
	}
}

func renameCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "dir", Required: true, Usage: "folder of PDFs to rename"},
		&cli.StringFlag{Name: "prefix", Usage: "text prepended to every new name"},
		&cli.StringFlag{Name: "suffix", Usage: "text appended to every new name"},
		&cli.BoolFlag{Name: "preview-only", Usage: "log intended renames without touching files"},
		&cli.StringFlag{Name: "report", Usage: "write an XLSX run report to this path (outside --dir)"},
	}
	return &cli.Command{
		Name:  "rename",
		Usage: "rename every PDF in a folder",
		Flags: append(flags, selectionFlags()...),
		Action: func(c *cli.Context) error {
			return runRename(c)
		},
	}
}

func runRename(c *cli.Context) error {
	ctx := c.Context
	logger := slog.Default()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	sel, err := parseSelection(c)
	if err != nil {
		return err
	}
	reportPath := c.String("report")
	if reportPath != "" {
		if err := export.CheckPath(reportPath, c.String("dir")); err != nil {
			return err
		}
	}

	completer, err := provider.NewCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		return err
	}
	extractor := newExtractor(cfg)
	generator := llm.NewGenerator(completer, logger, llm.WithRequestsPerMinute(cfg.LLM.RequestsPerMinute))
	renamer := rename.NewRenamer(extractor, generator, cfg.Rename.MaxTextLength, logger)
	worker := async.NewWorker(renamer, logger)
	svc := batch.NewService(worker, extractor, cfg.PDF.PreviewWidth, logger)

	req := batch.Request{
		Folder:      c.String("dir"),
		Prefix:      c.String("prefix"),
		Suffix:      c.String("suffix"),
		PreviewOnly: c.Bool("preview-only"),
		UseRegion:   c.IsSet("area") || c.IsSet("sample"),
		Selection:   sel,
	}
	startedAt := time.Now()
	ch, err := svc.Start(ctx, req)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		worker.Cancel()
	}()

	log := progress.NewLog(os.Stdout, logger)
	done, _ := log.Drain(ch)
	worker.Shutdown(context.Background())

	if done.Summary != nil {
		logger.Info("rename.summary", "run_id", done.Summary.RunID, "files", done.Summary.Total, "counts", done.Summary.String())
	}

	if reportPath != "" {
		mode := string(pdf.ModeWhole)
		if req.UseRegion {
			mode = string(pdf.ModeRegion)
		}
		err := export.NewService(logger).Save(reportPath, export.Report{
			Folder:      req.Folder,
			PreviewOnly: req.PreviewOnly,
			Mode:        mode,
			StartedAt:   startedAt,
			Outcomes:    log.Outcomes(),
		})
		if err != nil {
			return err
		}
		logger.Info("rename.report.saved", "path", reportPath)
	}
	return nil
}
