package pdf

import (
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/pdf-renamer/internal/common"
	"github.com/joseph-ayodele/pdf-renamer/internal/core/area"
)

// DocumentInfo is what the renamer needs to know about a document before reading text.
type DocumentInfo struct {
	PageCount int
	// FirstPage is the first page's size in points. Zero when the document has no pages.
	FirstPage area.Size
}

// Inspector reports page information for a document.
type Inspector interface {
	Inspect(ctx context.Context, path string) (DocumentInfo, error)
}

// PdfcpuInspector reads the document structure with pdfcpu.
type PdfcpuInspector struct{}

func (PdfcpuInspector) Inspect(ctx context.Context, path string) (DocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return DocumentInfo{}, err
	}
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return DocumentInfo{}, common.ExtractionError("cannot open document: %v", err)
	}

	info := DocumentInfo{PageCount: pdfCtx.PageCount}
	if info.PageCount == 0 {
		return info, nil
	}
	// poppler renders and crops against the visible CropBox, after page rotation.
	pbs, err := pdfCtx.PageBoundaries(nil)
	if err != nil {
		return DocumentInfo{}, common.ExtractionError("cannot read page size: %v", err)
	}
	if len(pbs) == 0 || pbs[0].CropBox() == nil {
		return DocumentInfo{}, fmt.Errorf("%w: page size missing", common.ErrExtraction)
	}
	dim := pbs[0].CropBox().Dimensions()
	info.FirstPage = area.Size{Width: dim.Width, Height: dim.Height}
	if pbs[0].Rot%180 != 0 {
		info.FirstPage.Width, info.FirstPage.Height = info.FirstPage.Height, info.FirstPage.Width
	}
	return info, nil
}
