package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("a.pdf"))
	assert.True(t, IsPDF("A.PDF"))
	assert.True(t, IsPDF("x.Pdf"))
	assert.False(t, IsPDF("a.pdfx"))
	assert.False(t, IsPDF("pdf"))
	assert.False(t, IsPDF("a.txt"))
}

func TestTrimPDFExt(t *testing.T) {
	assert.Equal(t, "Invoice", TrimPDFExt("Invoice"))
	assert.Equal(t, "Invoice", TrimPDFExt("Invoice.pdf"))
	assert.Equal(t, "Invoice", TrimPDFExt("Invoice.PDF.pdf"))
	assert.Equal(t, "Invoice.v2", TrimPDFExt("Invoice.v2.pdf"))
	assert.Equal(t, "", TrimPDFExt(".pdf"))
}
