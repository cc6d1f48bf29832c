package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Invoice ACME March 2024", "Invoice_ACME_March_2024"},
		{"  a/b\\c  ", "a_b_c"},
		{`"Quarterly Report Q1"`, "Quarterly_Report_Q1"},
		{"`code block name`", "code_block_name"},
		{"Tax Return 2023.pdf", "Tax_Return_2023"},
		{"Scan.PDF.pdf", "Scan"},
		{"What: is it?", "What__is_it_"},
		{"tab\there", "tab_here"},
		{"", ""},
		{`""`, ""},
		{".pdf", ""},
		{" / ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeFilenameNeverKeepsSeparators(t *testing.T) {
	got := SanitizeFilename("../../etc/passwd")
	assert.NotContains(t, got, "/")
	assert.NotContains(t, got, "\\")
}
