package constants

import (
	"path/filepath"
	"strings"
)

// PDFExt is the only extension the renamer picks up and writes (lowercase, without '.').
const PDFExt = "pdf"

// MaxTextLengthDefault caps whole-document text sent to the naming service.
const MaxTextLengthDefault = 1000

// PreviewWidthDefault is the fixed pixel width sample pages are rendered at.
const PreviewWidthDefault = 600

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDF reports whether name carries a .pdf extension, case-insensitively.
func IsPDF(name string) bool {
	return NormalizeExt(filepath.Ext(name)) == PDFExt
}

// TrimPDFExt removes any trailing ".pdf" (any case, repeated) from name.
func TrimPDFExt(name string) string {
	for IsPDF(name) {
		name = name[:len(name)-len(PDFExt)-1]
	}
	return name
}
