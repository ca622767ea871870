// Package weaviate adapts the Weaviate Go client to the vectorstore port.
package weaviate

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate/entities/models"
	"go.uber.org/zap"

	"github.com/Recklore/sih2025/internal/vectorstore"
)

// objectProperties are the metadata fields stored alongside each chunk.
var objectProperties = []string{
	"text", "file_name", "category", "source_type", "url", "title", "fetched_at",
}

// Config locates the Weaviate instance.
type Config struct {
	Host   string
	Scheme string
	APIKey string
}

// Store implements vectorstore.Store on a Weaviate instance. Vectors are
// self-provided, so every class is created with the "none" vectorizer.
type Store struct {
	client *weaviate.Client
	logger *zap.Logger
}

// New connects and verifies the instance is ready.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	conf := weaviate.Config{
		Host:   cfg.Host,
		Scheme: cfg.Scheme,
	}
	if cfg.APIKey != "" {
		conf.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}

	client, err := weaviate.NewClient(conf)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}

	ready, err := client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("check weaviate readiness: %w", err)
	}
	if !ready {
		return nil, fmt.Errorf("weaviate at %s is not ready", cfg.Host)
	}
	return &Store{client: client, logger: logger}, nil
}

// className maps a lowercase logical name to a Weaviate class name, which
// must start with an uppercase letter.
func className(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func classDefinition(name string) *models.Class {
	props := make([]*models.Property, 0, len(objectProperties))
	for _, p := range objectProperties {
		props = append(props, &models.Property{
			Name:     p,
			DataType: []string{"text"},
		})
	}
	return &models.Class{
		Class:      className(name),
		Vectorizer: "none",
		Properties: props,
	}
}

func (s *Store) EnsureCollection(ctx context.Context, name string) error {
	class := className(name)
	exists, err := s.client.Schema().ClassExistenceChecker().WithClassName(class).Do(ctx)
	if err != nil {
		return fmt.Errorf("check class %s: %w", class, err)
	}
	if exists {
		return nil
	}
	if err := s.client.Schema().ClassCreator().WithClass(classDefinition(name)).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", class, err)
	}
	s.logger.Info("collection created", zap.String("class", class))
	return nil
}

func (s *Store) ReplaceCollection(ctx context.Context, name string) error {
	class := className(name)
	exists, err := s.client.Schema().ClassExistenceChecker().WithClassName(class).Do(ctx)
	if err != nil {
		return fmt.Errorf("check class %s: %w", class, err)
	}
	if exists {
		if err := s.client.Schema().ClassDeleter().WithClassName(class).Do(ctx); err != nil {
			return fmt.Errorf("delete class %s: %w", class, err)
		}
	}
	if err := s.client.Schema().ClassCreator().WithClass(classDefinition(name)).Do(ctx); err != nil {
		return fmt.Errorf("recreate class %s: %w", class, err)
	}
	s.logger.Info("collection replaced", zap.String("class", class))
	return nil
}

func (s *Store) Insert(ctx context.Context, collection string, objects []vectorstore.Object) (int, error) {
	if len(objects) == 0 {
		return 0, nil
	}
	class := className(collection)

	batch := make([]*models.Object, 0, len(objects))
	for _, o := range objects {
		batch = append(batch, &models.Object{
			ID:    strfmt.UUID(uuid.NewString()),
			Class: class,
			Properties: map[string]interface{}{
				"text":        o.Text,
				"file_name":   o.FileName,
				"category":    o.Category,
				"source_type": o.SourceType,
				"url":         o.URL,
				"title":       o.Title,
				"fetched_at":  o.FetchedAt,
			},
			Vector: models.C11yVector(o.Vector),
		})
	}

	resp, err := s.client.Batch().ObjectsBatcher().WithObjects(batch...).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("batch insert into %s: %w", class, err)
	}

	inserted := 0
	for _, r := range resp {
		if r.Result == nil || r.Result.Errors == nil || len(r.Result.Errors.Error) == 0 {
			inserted++
			continue
		}
		s.logger.Warn("object rejected",
			zap.String("class", class),
			zap.String("message", r.Result.Errors.Error[0].Message))
	}
	return inserted, nil
}

func (s *Store) DeleteByFileName(ctx context.Context, collection, fileName string) (int64, error) {
	class := className(collection)
	where := filters.Where().
		WithPath([]string{"file_name"}).
		WithOperator(filters.Equal).
		WithValueText(fileName)

	resp, err := s.client.Batch().ObjectsBatchDeleter().
		WithClassName(class).
		WithWhere(where).
		WithOutput("minimal").
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete from %s by file_name: %w", class, err)
	}
	if resp == nil || resp.Results == nil {
		return 0, nil
	}
	return resp.Results.Matches, nil
}

// Close is a no-op: the client is plain HTTP.
func (s *Store) Close() error { return nil }
