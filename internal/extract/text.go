package extract

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// plainText reads a text file as UTF-8, falling back to a Latin-1
// interpretation when the bytes are not valid UTF-8.
func plainText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), nil
}
