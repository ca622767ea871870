package extract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePDF struct {
	pages  []string
	images [][]byte
	closed bool
}

func (f *fakePDF) NumPages() int { return len(f.pages) }

func (f *fakePDF) PageText(n int) (string, error) { return f.pages[n], nil }

func (f *fakePDF) PageImagePNG(n int, dpi float64) ([]byte, error) {
	if f.images == nil {
		return nil, errors.New("no images")
	}
	return f.images[n], nil
}

func (f *fakePDF) Close() error {
	f.closed = true
	return nil
}

type fakeRecognizer struct {
	calls int
}

func (r *fakeRecognizer) Text(png []byte) (string, error) {
	r.calls++
	return fmt.Sprintf("ocr:%s", png), nil
}

func (r *fakeRecognizer) Close() error { return nil }

func newTestPDFExtractor(doc *fakePDF, rec *fakeRecognizer) *pdfExtractor {
	p := newPDFExtractor([]string{"eng"}, 200, zap.NewNop())
	p.open = func(string) (pdfDocument, error) { return doc, nil }
	p.newRecognizer = func() (textRecognizer, error) { return rec, nil }
	return p
}

func TestPDFDigitalPathSkipsOCR(t *testing.T) {
	doc := &fakePDF{pages: []string{"first page", "second page"}}
	rec := &fakeRecognizer{}
	p := newTestPDFExtractor(doc, rec)

	text, err := p.Extract("digital.pdf")
	require.NoError(t, err)
	require.Contains(t, text, "first page")
	require.Contains(t, text, "second page")
	require.Zero(t, rec.calls)
	require.True(t, doc.closed)
}

func TestPDFOnePageWithoutTextGoesToOCR(t *testing.T) {
	doc := &fakePDF{
		pages:  []string{"has text", "   "},
		images: [][]byte{[]byte("p1"), []byte("p2")},
	}
	rec := &fakeRecognizer{}
	p := newTestPDFExtractor(doc, rec)

	text, err := p.Extract("mixed.pdf")
	require.NoError(t, err)
	require.Equal(t, 2, rec.calls)
	require.Contains(t, text, "ocr:p1")
	require.Contains(t, text, "ocr:p2")
}

func TestPDFEmptyDocumentGoesToOCR(t *testing.T) {
	digital, err := isDigital(&fakePDF{})
	require.NoError(t, err)
	require.False(t, digital)
}

func TestPDFOpenFailureWrapsExtractionError(t *testing.T) {
	p := newPDFExtractor([]string{"eng"}, 200, zap.NewNop())
	p.open = func(string) (pdfDocument, error) { return nil, errors.New("corrupt") }

	_, err := p.Extract("bad.pdf")
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	require.Equal(t, "bad.pdf", exErr.Path)
}
