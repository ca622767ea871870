package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 0.60, cfg.Classify.Threshold)
	require.Equal(t, 2000, cfg.Classify.TruncateChars)
	require.Equal(t, 512, cfg.Ingest.ChunkSize)
	require.Equal(t, 50, cfg.Ingest.ChunkOverlap)
	require.Equal(t, []string{"hin", "eng"}, cfg.Extract.OCRLanguages)
	require.Equal(t, "localhost:8080", cfg.Weaviate.Host)
	require.Equal(t, "watch_folders", cfg.Watch.BaseDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	payload := []byte(`
crawler:
  seed_url: https://example.edu/
  max_depth: 2
classify:
  threshold: 0.75
`)
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://example.edu/", cfg.Crawler.SeedURL)
	require.Equal(t, 2, cfg.Crawler.MaxDepth)
	require.Equal(t, 0.75, cfg.Classify.Threshold)
	// Untouched keys keep defaults.
	require.Equal(t, "bge-m3", cfg.Embedding.Model)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := cfg
	bad.Classify.Threshold = 1.5
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Ingest.ChunkOverlap = bad.Ingest.ChunkSize
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Extract.OCRLanguages = nil
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Crawler.Budget = 0
	require.Error(t, bad.Validate())
}
