package extract

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// pdfExtractor routes a PDF down the digital-text path or the OCR path.
// The OCR engine is created lazily on the first scanned document, so runs
// over purely digital corpora never touch Tesseract.
type pdfExtractor struct {
	open          func(path string) (pdfDocument, error)
	newRecognizer func() (textRecognizer, error)
	dpi           float64
	logger        *zap.Logger

	once   sync.Once
	ocr    textRecognizer
	ocrErr error
}

func newPDFExtractor(languages []string, dpi float64, logger *zap.Logger) *pdfExtractor {
	return &pdfExtractor{
		open: openPDF,
		newRecognizer: func() (textRecognizer, error) {
			return newOCREngine(languages)
		},
		dpi:    dpi,
		logger: logger,
	}
}

// isDigital reports whether every page carries an embedded text layer.
// A single text-free page sends the whole document to OCR, since mixed
// scans are common and a partial text layer is usually boilerplate.
func isDigital(doc pdfDocument) (bool, error) {
	n := doc.NumPages()
	if n == 0 {
		return false, nil
	}
	for i := 0; i < n; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return false, fmt.Errorf("read page %d: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			return false, nil
		}
	}
	return true, nil
}

func (p *pdfExtractor) Extract(path string) (string, error) {
	doc, err := p.open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	defer doc.Close()

	digital, err := isDigital(doc)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}

	var text string
	if digital {
		text, err = p.digitalText(doc)
	} else {
		p.logger.Info("pdf has no full text layer, running ocr", zap.String("path", path))
		text, err = p.scannedText(doc)
	}
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	return text, nil
}

func (p *pdfExtractor) digitalText(doc pdfDocument) (string, error) {
	var b strings.Builder
	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i, err)
		}
		fmt.Fprintf(&b, "Page %d:\n%s\n---\n", i+1, text)
	}
	return b.String(), nil
}

func (p *pdfExtractor) scannedText(doc pdfDocument) (string, error) {
	ocr, err := p.recognizer()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := 0; i < doc.NumPages(); i++ {
		img, err := doc.PageImagePNG(i, p.dpi)
		if err != nil {
			return "", fmt.Errorf("render page %d: %w", i, err)
		}
		text, err := ocr.Text(img)
		if err != nil {
			return "", fmt.Errorf("ocr page %d: %w", i, err)
		}
		fmt.Fprintf(&b, "Page %d:\n%s\n---\n", i+1, text)
	}
	return b.String(), nil
}

func (p *pdfExtractor) recognizer() (textRecognizer, error) {
	p.once.Do(func() {
		p.ocr, p.ocrErr = p.newRecognizer()
	})
	if p.ocrErr != nil {
		return nil, fmt.Errorf("init ocr: %w", p.ocrErr)
	}
	return p.ocr, nil
}

func (p *pdfExtractor) Close() error {
	if p.ocr != nil {
		return p.ocr.Close()
	}
	return nil
}
