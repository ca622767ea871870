package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, parts map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestDocxText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notice.docx")
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Admission notice</w:t></w:r></w:p>
    <w:p><w:r><w:t>Last date: </w:t></w:r><w:r><w:t>30 June</w:t></w:r></w:p>
  </w:body>
</w:document>`
	writeZip(t, path, map[string]string{"word/document.xml": doc})

	got, err := docxText(path)
	require.NoError(t, err)
	require.Equal(t, "Admission notice\nLast date: 30 June", got)
}

func TestDocxTextMissingDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	writeZip(t, path, map[string]string{"word/other.xml": "<x/>"})

	_, err := docxText(path)
	require.Error(t, err)
}

func TestPptxTextSlideOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	slide := func(text string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:cSld>
</p:sld>`
	}
	// slide10 sorts after slide2 numerically, not lexically.
	writeZip(t, path, map[string]string{
		"ppt/slides/slide10.xml": slide("third"),
		"ppt/slides/slide1.xml":  slide("first"),
		"ppt/slides/slide2.xml":  slide("second"),
		"ppt/media/image1.png":   "binary",
	})

	got, err := pptxText(path)
	require.NoError(t, err)
	require.Equal(t,
		"=== Slide 1 ===\nfirst\n=== Slide 2 ===\nsecond\n=== Slide 10 ===\nthird",
		got)
}

func TestDocxTextTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.docx")
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Fee structure</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Programme</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Fee</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>B.Tech</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>52,000</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p></w:p></w:tc>
        <w:tc><w:p></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`
	writeZip(t, path, map[string]string{"word/document.xml": doc})

	got, err := docxText(path)
	require.NoError(t, err)
	require.Equal(t, "Fee structure\nProgramme | Fee\nB.Tech | 52,000", got)
}
