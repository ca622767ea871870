package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeStripsFragmentAndTrackingParams(t *testing.T) {
	a := Canonicalize("https://x.org/a?utm_source=y&b=1#frag")
	b := Canonicalize("https://x.org/a?b=1")
	require.Equal(t, "https://x.org/a?b=1", a)
	require.Equal(t, a, b)
}

func TestCanonicalizeSortsQueryParameters(t *testing.T) {
	a := Canonicalize("https://x.org/p?b=2&a=1")
	b := Canonicalize("https://x.org/p?a=1&b=2")
	require.Equal(t, a, b)
	require.Equal(t, "https://x.org/p?a=1&b=2", a)
}

func TestCanonicalizeTrailingSlash(t *testing.T) {
	require.Equal(t, "https://x.org/a", Canonicalize("https://x.org/a/"))
	require.Equal(t, "https://x.org/", Canonicalize("https://x.org/"))
	require.Equal(t, "https://x.org/", Canonicalize("https://x.org"))
}

func TestCanonicalizeDropsSessionKeysCaseInsensitively(t *testing.T) {
	got := Canonicalize("https://x.org/a?JSESSIONID=abc&QT-tab=2&keep=1")
	require.Equal(t, "https://x.org/a?keep=1", got)
}

func TestCanonicalizeKeepsBlankValues(t *testing.T) {
	require.Equal(t, "https://x.org/a?b=", Canonicalize("https://x.org/a?b="))
}

func TestCanonicalizeMalformedPassesThrough(t *testing.T) {
	raw := "http://[::1:bad"
	require.Equal(t, raw, Canonicalize(" "+raw))
}
