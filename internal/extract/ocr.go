package extract

import (
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// textRecognizer turns a rendered page image (PNG bytes) into text.
type textRecognizer interface {
	Text(png []byte) (string, error)
	Close() error
}

// ocrEngine wraps a single Tesseract client. The client is not safe for
// concurrent use, so calls are serialized.
type ocrEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

func newOCREngine(languages []string) (*ocrEngine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("set ocr languages: %w", err)
	}
	return &ocrEngine{client: client}, nil
}

func (o *ocrEngine) Text(png []byte) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("load page image: %w", err)
	}
	text, err := o.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize page: %w", err)
	}
	return text, nil
}

func (o *ocrEngine) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.client.Close()
}
