// Package vectorstore defines the storage port for embedded document chunks.
package vectorstore

import "context"

// Object is one text chunk with its embedding and source metadata.
type Object struct {
	Text       string
	FileName   string
	Category   string
	SourceType string
	URL        string
	Title      string
	FetchedAt  string
	Vector     []float32
}

// Store is the narrow surface the ingestion pipeline needs from a vector
// database. Collections are named with lowercase logical names; adapters
// map them to backend conventions.
type Store interface {
	// EnsureCollection creates the collection if it does not exist yet.
	EnsureCollection(ctx context.Context, name string) error
	// ReplaceCollection drops any existing collection and recreates it empty.
	ReplaceCollection(ctx context.Context, name string) error
	// Insert writes objects in one batch and returns how many succeeded.
	Insert(ctx context.Context, collection string, objects []Object) (int, error)
	// DeleteByFileName removes every object whose file_name matches exactly.
	DeleteByFileName(ctx context.Context, collection, fileName string) (int64, error)
	Close() error
}
