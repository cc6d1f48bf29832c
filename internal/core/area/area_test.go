package area

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToDocument(t *testing.T) {
	tests := []struct {
		name    string
		preview Size
		page    Size
		screen  Rect
		want    Rect
	}{
		{
			name:    "letter page at 600 wide",
			preview: Size{Width: 600, Height: 776},
			page:    Size{Width: 612, Height: 792},
			screen:  Rect{X0: 100, Y0: 50, X1: 300, Y1: 150},
			want:    Rect{X0: 102, Y0: 51, X1: 306, Y1: 153},
		},
		{
			name:    "axes scale independently",
			preview: Size{Width: 100, Height: 100},
			page:    Size{Width: 200, Height: 50},
			screen:  Rect{X0: 10, Y0: 10, X1: 20, Y1: 20},
			want:    Rect{X0: 20, Y0: 5, X1: 40, Y1: 10},
		},
		{
			name:    "reversed drag is normalized",
			preview: Size{Width: 100, Height: 100},
			page:    Size{Width: 100, Height: 100},
			screen:  Rect{X0: 30, Y0: 40, X1: 10, Y1: 20},
			want:    Rect{X0: 10, Y0: 20, X1: 30, Y1: 40},
		},
		{
			name:    "fractions truncate toward zero",
			preview: Size{Width: 3, Height: 3},
			page:    Size{Width: 10, Height: 10},
			screen:  Rect{X0: 1, Y0: 1, X1: 2, Y1: 2},
			want:    Rect{X0: 3, Y0: 3, X1: 6, Y1: 6},
		},
		{
			name:    "degenerate stays degenerate",
			preview: Size{Width: 600, Height: 776},
			page:    Size{Width: 612, Height: 792},
			screen:  Rect{X0: 50, Y0: 50, X1: 50, Y1: 90},
			want:    Rect{X0: 51, Y0: 51, X1: 51, Y1: 91},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapToDocument(tt.preview, tt.page, tt.screen)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapToDocumentPerAxisLinear(t *testing.T) {
	preview := Size{Width: 500, Height: 250}
	page := Size{Width: 1000, Height: 1000}
	got := MapToDocument(preview, page, Rect{X0: 0, Y0: 0, X1: 500, Y1: 250})
	assert.Equal(t, Rect{X0: 0, Y0: 0, X1: 1000, Y1: 1000}, got)
}

func TestMapToDocumentZeroPreview(t *testing.T) {
	got := MapToDocument(Size{}, Size{Width: 612, Height: 792}, Rect{X0: 1, Y0: 1, X1: 5, Y1: 5})
	assert.True(t, got.IsEmpty())
}

func TestRectEmptiness(t *testing.T) {
	assert.True(t, Rect{}.IsEmpty())
	assert.True(t, Rect{}.IsZero())
	assert.True(t, Rect{X0: 5, Y0: 1, X1: 5, Y1: 9}.IsEmpty())
	assert.False(t, Rect{X0: 5, Y0: 1, X1: 5, Y1: 9}.IsZero())
	assert.False(t, Rect{X0: 9, Y0: 9, X1: 1, Y1: 1}.IsEmpty())
}

func TestPreviewSizeMatchesRenderer(t *testing.T) {
	tests := []struct {
		name  string
		page  Size
		width int
		want  Size
	}{
		{"a4 rounds up", Size{Width: 595, Height: 842}, 600, Size{Width: 600, Height: 850}},
		{"letter rounds up", Size{Width: 612, Height: 792}, 600, Size{Width: 600, Height: 777}},
		{"exact stays exact", Size{Width: 300, Height: 600}, 600, Size{Width: 600, Height: 1200}},
		{"landscape", Size{Width: 842, Height: 595}, 600, Size{Width: 600, Height: 424}},
		{"no page", Size{}, 600, Size{}},
		{"no width", Size{Width: 612, Height: 792}, 0, Size{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviewSize(tt.page, tt.width))
		})
	}
}

func TestFallbackPreviewMapsBottomOfA4(t *testing.T) {
	page := Size{Width: 595, Height: 842}
	got := MapToDocument(PreviewSize(page, 600), page, Rect{X0: 0, Y0: 800, X1: 600, Y1: 850})
	assert.Equal(t, 792.0, got.Y0)
	assert.Equal(t, 842.0, got.Y1)
}

func TestParseRect(t *testing.T) {
	r, err := ParseRect(" 10, 20.5,30,40 ")
	require.NoError(t, err)
	assert.Equal(t, Rect{X0: 10, Y0: 20.5, X1: 30, Y1: 40}, r)

	_, err = ParseRect("1,2,3")
	require.Error(t, err)
	_, err = ParseRect("a,b,c,d")
	require.Error(t, err)
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize("600x776")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 600, Height: 776}, s)

	_, err = ParseSize("600")
	require.Error(t, err)
	_, err = ParseSize("0x10")
	require.Error(t, err)
}
