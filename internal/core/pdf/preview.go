package pdf

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/area"
)

// Preview is a rendered first page.
type Preview struct {
	Path string
	// Rendered is the actual pixel size of the image written to Path.
	Rendered area.Size
	Page     area.Size
}

// RenderPreview renders the first page of path as a PNG scaled to width
// pixels and writes it to out. The sample document is never modified.
func (e *Extractor) RenderPreview(ctx context.Context, path string, width int, out string) (Preview, error) {
	if width <= 0 {
		return Preview{}, fmt.Errorf("%w: preview width must be positive", common.ErrInvalidInput)
	}
	info, err := e.inspector.Inspect(ctx, path)
	if err != nil {
		return Preview{}, err
	}
	if info.PageCount == 0 {
		return Preview{}, common.ErrNoContent
	}

	if !strings.EqualFold(filepath.Ext(out), ".png") {
		out += ".png"
	}
	// pdftoppm appends .png to the output root with -singlefile
	root := strings.TrimSuffix(out, filepath.Ext(out))

	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, e.logger,
		"-f", "1", "-l", "1", "-singlefile", "-png",
		"-scale-to-x", strconv.Itoa(width), "-scale-to-y", "-1",
		path, root,
	)
	if err != nil {
		return Preview{}, fmt.Errorf("%w: %s", common.ErrExtraction, toolError("pdftoppm", errb, err))
	}

	rendered, err := imageSize(root + ".png")
	if err != nil {
		return Preview{}, err
	}
	e.logger.Info("pdf.preview.rendered", "sample", path, "out", root+".png", "rendered", rendered.String(), "page", info.FirstPage.String())
	return Preview{Path: root + ".png", Rendered: rendered, Page: info.FirstPage}, nil
}

func imageSize(path string) (area.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return area.Size{}, fmt.Errorf("%w: preview image: %v", common.ErrFilesystem, err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return area.Size{}, fmt.Errorf("%w: preview image: %v", common.ErrExtraction, err)
	}
	return area.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}
