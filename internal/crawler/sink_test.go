package crawler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSafeFilename(t *testing.T) {
	got := SafeFilename("https://www.x.org/docs/report.pdf", CategoryPDF)
	require.Equal(t, "www_x_org_docs_report.pdf", got)

	got = SafeFilename("https://x.org/admissions/", CategoryHTML)
	require.Equal(t, "x_org_admissions.html", got)

	got = SafeFilename("https://x.org/page.php?id=3&lang=en", CategoryHTML)
	require.Equal(t, "x_org_page_id-3_lang-en.html", got)
}

func TestSafeFilenameTruncatesLongNames(t *testing.T) {
	long := "https://x.org/" + strings.Repeat("a", 400) + ".pdf"
	got := SafeFilename(long, CategoryPDF)
	require.LessOrEqual(t, len(got), 200)
	require.True(t, strings.HasSuffix(got, ".pdf"))
}

func TestSinkSaveCollisionSuffix(t *testing.T) {
	root := t.TempDir()
	sink, err := NewArtifactSink(root, zap.NewNop())
	require.NoError(t, err)

	first, err := sink.Save(CategoryPDF, "https://x.org/docs/report.pdf", []byte("one"))
	require.NoError(t, err)
	second, err := sink.Save(CategoryPDF, "https://x.org/docs/report.pdf", []byte("two"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.Equal(t, "report.pdf", strings.TrimPrefix(filepath.Base(first), "x_org_docs_"))
	require.Contains(t, filepath.Base(second), "_1.pdf")

	one, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, "one", string(one))
	two, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, "two", string(two))
}

func TestSinkCreatesCategoryDirs(t *testing.T) {
	root := t.TempDir()
	_, err := NewArtifactSink(root, zap.NewNop())
	require.NoError(t, err)

	for _, cat := range []Category{CategoryPDF, CategoryDocs, CategoryHTML} {
		info, err := os.Stat(filepath.Join(root, string(cat)))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}
