// Package extract turns crawled artifacts (PDF, Office, HTML, plain text)
// into normalized plain text documents.
package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Document is the normalized result of extracting one source file.
type Document struct {
	Text       string
	SourceFile string
	FileType   string
}

// Config selects the OCR behavior for scanned PDFs.
type Config struct {
	OCRLanguages []string
	OCRDPI       float64
}

// Extractor dispatches files to a strategy by extension.
type Extractor struct {
	pdf    *pdfExtractor
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Extractor {
	return &Extractor{
		pdf:    newPDFExtractor(cfg.OCRLanguages, cfg.OCRDPI, logger),
		logger: logger,
	}
}

// Extract reads one file and returns its normalized text. Unsupported
// extensions fail with ErrUnsupportedType wrapped in an ExtractionError.
func (e *Extractor) Extract(path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = e.pdf.Extract(path)
	case ".docx":
		text, err = docxText(path)
	case ".pptx":
		text, err = pptxText(path)
	case ".xlsx":
		text, err = xlsxText(path)
	case ".html", ".htm":
		text, err = e.htmlFile(path)
	case ".txt":
		text, err = plainText(path)
	default:
		return Document{}, &ExtractionError{Path: path, Err: ErrUnsupportedType}
	}
	if err != nil {
		var exErr *ExtractionError
		if errors.As(err, &exErr) {
			return Document{}, err
		}
		return Document{}, &ExtractionError{Path: path, Err: err}
	}

	return Document{
		Text:       Normalize(text),
		SourceFile: filepath.Base(path),
		FileType:   strings.TrimPrefix(ext, "."),
	}, nil
}

func (e *Extractor) htmlFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	title, text, err := HTMLText(f)
	if err != nil {
		return "", err
	}
	if title != "" {
		return title + "\n\n" + text, nil
	}
	return text, nil
}

// Close releases the OCR engine if one was ever created.
func (e *Extractor) Close() error {
	return e.pdf.Close()
}
