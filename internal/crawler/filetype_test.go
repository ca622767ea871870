package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryFor(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"https://x.org/docs/report.pdf", CategoryPDF, true},
		{"https://x.org/docs/Report.PDF", CategoryPDF, true},
		{"https://x.org/a/page.html", CategoryHTML, true},
		{"https://x.org/a/page.php?id=3", CategoryHTML, true},
		{"https://x.org/files/notice.docx", CategoryDocs, true},
		{"https://x.org/files/fees.xlsx", CategoryDocs, true},
		{"https://x.org/files/slides.pptx", CategoryDocs, true},
		{"https://x.org/files/readme.txt", CategoryDocs, true},
		{"https://x.org/img/logo.png", "", false},
		{"https://x.org/a/page", "", false},
	}
	for _, tc := range cases {
		got, ok := CategoryFor(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestSkippable(t *testing.T) {
	require.True(t, Skippable("https://x.org/img/banner.jpeg"))
	require.True(t, Skippable("https://x.org/static/app.js"))
	require.True(t, Skippable("https://x.org/fonts/icons.woff2"))
	require.True(t, Skippable("https://x.org/fonts/devanagari.ttf"))
	require.False(t, Skippable("https://x.org/docs/report.pdf"))
	require.False(t, Skippable("https://x.org/page"))
}
