package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/classify"
	"github.com/Recklore/sih2025/internal/vectorstore/memory"
)

type fakeEmbedder struct {
	failOn string
	calls  int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errors.New("embedding failed")
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func TestIngestIntoChunksAndInserts(t *testing.T) {
	store := memory.New()
	emb := &fakeEmbedder{}
	router := NewRouter(store, emb, 5, 1, zap.NewNop())

	doc := Document{
		Text:       "one two three four five six seven eight",
		FileName:   "notice.txt",
		SourceType: "docs",
	}
	require.NoError(t, router.IngestInto(context.Background(), "static", doc))

	objs := store.Objects("static")
	require.Len(t, objs, 2)
	for _, o := range objs {
		require.Equal(t, "notice.txt", o.FileName)
		require.Equal(t, "static", o.Category)
		require.Equal(t, "docs", o.SourceType)
		require.Len(t, o.Vector, 3)
	}
}

func TestIngestIntoToleratesPartialEmbedFailures(t *testing.T) {
	store := memory.New()
	emb := &fakeEmbedder{failOn: "seven"}
	router := NewRouter(store, emb, 5, 1, zap.NewNop())

	doc := Document{Text: "one two three four five six seven eight", FileName: "a.txt"}
	require.NoError(t, router.IngestInto(context.Background(), "static", doc))
	require.Len(t, store.Objects("static"), 1)
}

func TestIngestIntoFailsWhenNothingLands(t *testing.T) {
	store := memory.New()
	emb := &fakeEmbedder{failOn: "word"}
	router := NewRouter(store, emb, 512, 50, zap.NewNop())

	err := router.IngestInto(context.Background(), "static", Document{Text: "word", FileName: "a.txt"})
	var ingErr *IngestionError
	require.ErrorAs(t, err, &ingErr)
	require.Equal(t, "a.txt", ingErr.FileName)
	require.Equal(t, "static", ingErr.Collection)
}

func TestIngestIntoEmptyDocument(t *testing.T) {
	router := NewRouter(memory.New(), &fakeEmbedder{}, 512, 50, zap.NewNop())
	err := router.IngestInto(context.Background(), "static", Document{Text: "  ", FileName: "empty.txt"})
	var ingErr *IngestionError
	require.ErrorAs(t, err, &ingErr)
}

func TestIngestRoutesToEveryTarget(t *testing.T) {
	store := memory.New()
	router := NewRouter(store, &fakeEmbedder{}, 512, 50, zap.NewNop())

	doc := Document{Text: "uncertain content", FileName: "u.txt"}
	targets := []classify.Label{classify.LabelStatic, classify.LabelDynamic}
	require.NoError(t, router.Ingest(context.Background(), doc, targets))

	require.Len(t, store.Objects("static"), 1)
	require.Len(t, store.Objects("dynamic"), 1)
	require.Equal(t, "static", store.Objects("static")[0].Category)
	require.Equal(t, "dynamic", store.Objects("dynamic")[0].Category)
}
