package ingest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(w, " ")
}

func TestChunkShortTextIsOneChunk(t *testing.T) {
	chunks := Chunk("just a few words", 512, 50)
	require.Equal(t, []string{"just a few words"}, chunks)
}

func TestChunkEmptyText(t *testing.T) {
	require.Nil(t, Chunk("   \n\t ", 512, 50))
}

func TestChunkOverlap(t *testing.T) {
	chunks := Chunk(words(25), 10, 3)
	require.Len(t, chunks, 4)

	// Consecutive chunks share exactly the overlap words.
	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	require.Equal(t, first[len(first)-3:], second[:3])
	require.Len(t, first, 10)

	// Every word appears somewhere.
	all := strings.Join(chunks, " ")
	for i := 0; i < 25; i++ {
		require.Contains(t, all, fmt.Sprintf("w%d", i))
	}
}

func TestChunkExactWindow(t *testing.T) {
	chunks := Chunk(words(10), 10, 3)
	require.Len(t, chunks, 1)
}

func TestChunkNormalizesWhitespace(t *testing.T) {
	chunks := Chunk("a\n\nb\t c", 512, 50)
	require.Equal(t, []string{"a b c"}, chunks)
}
