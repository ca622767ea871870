package ingest

import "strings"

// Chunk splits text into windows of size words, with overlap words shared
// between consecutive windows. Whitespace-separated words stand in for
// tokens; for the mixed Hindi/English corpus this tracks model tokens
// closely enough for retrieval.
func Chunk(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size <= 0 || len(words) <= size {
		return []string{strings.Join(words, " ")}
	}

	step := size - overlap
	if step <= 0 {
		step = size
	}

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
