package weaviate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassName(t *testing.T) {
	require.Equal(t, "Static", className("static"))
	require.Equal(t, "Dynamic", className("dynamic"))
	require.Equal(t, "Sitemap", className("sitemap"))
	require.Equal(t, "Already", className("Already"))
	require.Equal(t, "", className(""))
}

func TestClassDefinition(t *testing.T) {
	class := classDefinition("static")
	require.Equal(t, "Static", class.Class)
	require.Equal(t, "none", class.Vectorizer)
	require.Len(t, class.Properties, 7)

	names := make(map[string]bool)
	for _, p := range class.Properties {
		names[p.Name] = true
		require.Equal(t, []string{"text"}, p.DataType)
	}
	for _, want := range objectProperties {
		require.True(t, names[want], want)
	}
}
