package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCollapsesPageMarkers(t *testing.T) {
	in := "Page 1:\nfirst page\n---\nPage 2:\nsecond page\n---\n"
	got := Normalize(in)
	require.Equal(t, "#\nfirst page\n#\nsecond page\n#", got)
}

func TestNormalizeDropsEmptyLines(t *testing.T) {
	require.Equal(t, "a\nb", Normalize("a\n\n\n\n\nb"))
}

func TestNormalizeCRLF(t *testing.T) {
	require.Equal(t, "a\nb", Normalize("a\r\nb\r\n"))
}

func TestNormalizeKeepsContentVerbatim(t *testing.T) {
	require.Equal(t, "fee:   52,000", Normalize("fee:   52,000"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Page 1:\nsome text\n----\n\n\nPage 2:\nmore",
		"plain text\nno markers",
		"#\ntext\n#",
		"",
		"\n\n---\n\n",
		"--- Page 3 of 7 ---\nbody",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeAdjacentMarkersBecomeOne(t *testing.T) {
	require.Equal(t, "#\ntext", Normalize("---\n----\nPage 3\ntext"))
}
