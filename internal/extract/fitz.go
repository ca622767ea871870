package extract

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// pdfDocument abstracts an open PDF so the page-routing logic can be
// exercised without MuPDF.
type pdfDocument interface {
	NumPages() int
	PageText(n int) (string, error)
	PageImagePNG(n int, dpi float64) ([]byte, error)
	Close() error
}

type fitzDocument struct {
	doc *fitz.Document
}

func openPDF(path string) (pdfDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &fitzDocument{doc: doc}, nil
}

func (f *fitzDocument) NumPages() int { return f.doc.NumPage() }

func (f *fitzDocument) PageText(n int) (string, error) {
	return f.doc.Text(n)
}

func (f *fitzDocument) PageImagePNG(n int, dpi float64) ([]byte, error) {
	img, err := f.doc.ImageDPI(n, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", n, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", n, err)
	}
	return buf.Bytes(), nil
}

func (f *fitzDocument) Close() error { return f.doc.Close() }
