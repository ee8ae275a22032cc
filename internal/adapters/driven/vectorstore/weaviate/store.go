// Package weaviate provides the production vector store adapter backed by
// a Weaviate instance. Chunks live in one class per namespace; object IDs
// are UUIDs derived from the deterministic chunk ID so re-ingesting the
// same text overwrites instead of duplicating.
package weaviate

import (
	"context"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driven"
	"github.com/campus-labs/clubscout-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultHost   = "localhost:8080"
	DefaultScheme = "http"
	DefaultClass  = "ClubDocuments"
)

// idNamespace seeds the UUIDv5 derivation of object IDs from chunk IDs.
var idNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Config holds configuration for the Weaviate store.
type Config struct {
	// Host is the Weaviate host:port (default: localhost:8080).
	Host string

	// Scheme is http or https (default: http).
	Scheme string

	// APIKey authenticates against a secured instance. Empty means
	// anonymous access.
	APIKey string

	// Class is the collection name, one class per namespace
	// (default: ClubDocuments).
	Class string
}

// Store is a Weaviate-backed vector store.
type Store struct {
	client *weaviate.Client
	class  string
}

// metadataProperties are the flattened chunk metadata fields stored as
// class properties and returned on search.
var metadataProperties = []struct {
	name     string
	dataType string
}{
	{"chunk_id", "text"},
	{"text", "text"},
	{"organization_name", "text"},
	{"source_file", "text"},
	{"chunk_index", "int"},
	{"total_chunks", "int"},
	{"dues", "number"},
	{"meeting_frequency", "text"},
	{"last_updated", "text"},
	{"membership_requirements", "text"},
}

// NewStore creates a Weaviate store and ensures the class exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Scheme == "" {
		cfg.Scheme = DefaultScheme
	}
	if cfg.Class == "" {
		cfg.Class = DefaultClass
	}

	clientCfg := weaviate.Config{
		Host:   cfg.Host,
		Scheme: cfg.Scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}

	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", domain.ErrVectorStoreUnavailable, err)
	}

	s := &Store{client: client, class: cfg.Class}
	if err := s.ensureClass(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureClass creates the chunk class if it does not exist yet.
func (s *Store) ensureClass(ctx context.Context) error {
	exists, err := s.client.Schema().ClassExistenceChecker().WithClassName(s.class).Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: checking class %s: %v", domain.ErrVectorStoreUnavailable, s.class, err)
	}
	if exists {
		return nil
	}

	logger.Debug("creating weaviate class %s", s.class)
	if err := s.client.Schema().ClassCreator().WithClass(s.classDefinition()).Do(ctx); err != nil {
		return fmt.Errorf("%w: creating class %s: %v", domain.ErrVectorStoreUnavailable, s.class, err)
	}
	return nil
}

func (s *Store) classDefinition() *models.Class {
	props := make([]*models.Property, 0, len(metadataProperties))
	for _, p := range metadataProperties {
		props = append(props, &models.Property{
			Name:     p.name,
			DataType: []string{p.dataType},
		})
	}
	return &models.Class{
		Class:       s.class,
		Description: "Student organization document chunks",
		// Vectors are computed client-side.
		Vectorizer: "none",
		Properties: props,
	}
}

// ObjectID derives the stable Weaviate UUID for a chunk ID.
func ObjectID(chunkID string) string {
	return uuid.NewSHA1(idNamespace, []byte(chunkID)).String()
}

// Upsert writes the records through the batch API. Per-object failures
// are logged and excluded from the returned count.
func (s *Store) Upsert(ctx context.Context, records []driven.VectorRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	objects := make([]*models.Object, 0, len(records))
	for _, rec := range records {
		properties := map[string]any{
			"chunk_id": rec.ID,
			"text":     rec.Text,
		}
		for k, v := range rec.Metadata {
			properties[k] = v
		}

		obj := &models.Object{
			Class:      s.class,
			ID:         strfmt.UUID(ObjectID(rec.ID)),
			Properties: properties,
		}
		if len(rec.Vector) > 0 {
			obj.Vector = rec.Vector
		}
		objects = append(objects, obj)
	}

	resp, err := s.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: batch upsert: %v", domain.ErrVectorStoreUnavailable, err)
	}

	written := 0
	for i, res := range resp {
		if res.Result != nil && res.Result.Errors != nil && len(res.Result.Errors.Error) > 0 {
			logger.Warn("upsert of %s failed: %s", records[i].ID, res.Result.Errors.Error[0].Message)
			continue
		}
		written++
	}
	return written, nil
}

// Search runs a nearVector query when a vector is supplied, otherwise a
// nearText query over the raw text.
func (s *Store) Search(ctx context.Context, query driven.SearchQuery) ([]domain.RetrievedMatch, error) {
	fields := make([]graphql.Field, 0, len(metadataProperties)+1)
	for _, p := range metadataProperties {
		fields = append(fields, graphql.Field{Name: p.name})
	}
	fields = append(fields, graphql.Field{Name: "_additional", Fields: []graphql.Field{
		{Name: "id"},
		{Name: "certainty"},
		{Name: "distance"},
	}})

	get := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithFields(fields...).
		WithLimit(query.TopK)

	if len(query.Vector) > 0 {
		get = get.WithNearVector(
			s.client.GraphQL().NearVectorArgBuilder().WithVector(query.Vector),
		)
	} else {
		get = get.WithNearText(
			s.client.GraphQL().NearTextArgBuilder().WithConcepts([]string{query.Text}),
		)
	}

	if where := buildWhere(query.Filters); where != nil {
		get = get.WithWhere(where)
	}

	result, err := get.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", domain.ErrVectorStoreUnavailable, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: search: %s", domain.ErrVectorStoreUnavailable, result.Errors[0].Message)
	}

	return s.parseMatches(result.Data), nil
}

// buildWhere maps the domain filters onto a Weaviate where clause:
// organisation name is an equality match, dues is an upper bound.
func buildWhere(f domain.Filters) *filters.WhereBuilder {
	var operands []*filters.WhereBuilder

	if f.OrganizationName != "" {
		operands = append(operands, filters.Where().
			WithPath([]string{"organization_name"}).
			WithOperator(filters.Equal).
			WithValueText(f.OrganizationName))
	}
	if f.MaxDues != nil {
		operands = append(operands, filters.Where().
			WithPath([]string{"dues"}).
			WithOperator(filters.LessThanEqual).
			WithValueNumber(*f.MaxDues))
	}

	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	default:
		return filters.Where().WithOperator(filters.And).WithOperands(operands)
	}
}

// parseMatches extracts matches from the GraphQL response payload.
func (s *Store) parseMatches(data map[string]models.JSONObject) []domain.RetrievedMatch {
	get, ok := data["Get"].(map[string]any)
	if !ok {
		return nil
	}
	items, ok := get[s.class].([]any)
	if !ok {
		return nil
	}

	matches := make([]domain.RetrievedMatch, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		match := domain.RetrievedMatch{Metadata: make(map[string]any)}
		for k, v := range obj {
			switch k {
			case "_additional":
			case "chunk_id":
				match.ID, _ = v.(string)
			case "text":
				match.Text, _ = v.(string)
			default:
				if v != nil {
					match.Metadata[k] = v
				}
			}
		}

		if additional, ok := obj["_additional"].(map[string]any); ok {
			if certainty, ok := additional["certainty"].(float64); ok {
				match.Score = certainty
			} else if distance, ok := additional["distance"].(float64); ok {
				match.Score = 1 - distance
			}
		}

		matches = append(matches, match)
	}
	return matches
}

// DeleteNamespace drops the class and recreates it empty.
func (s *Store) DeleteNamespace(ctx context.Context) error {
	if err := s.client.Schema().ClassDeleter().WithClassName(s.class).Do(ctx); err != nil {
		return fmt.Errorf("%w: deleting class %s: %v", domain.ErrVectorStoreUnavailable, s.class, err)
	}
	return s.ensureClass(ctx)
}

// Stats aggregates the object count for the class.
func (s *Store) Stats(ctx context.Context) (driven.StoreStats, error) {
	result, err := s.client.GraphQL().Aggregate().
		WithClassName(s.class).
		WithFields(graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}}).
		Do(ctx)
	if err != nil {
		return driven.StoreStats{}, fmt.Errorf("%w: aggregate: %v", domain.ErrVectorStoreUnavailable, err)
	}
	if len(result.Errors) > 0 {
		return driven.StoreStats{}, fmt.Errorf("%w: aggregate: %s", domain.ErrVectorStoreUnavailable, result.Errors[0].Message)
	}

	stats := driven.StoreStats{Namespace: s.class}
	if agg, ok := result.Data["Aggregate"].(map[string]any); ok {
		if items, ok := agg[s.class].([]any); ok && len(items) > 0 {
			if obj, ok := items[0].(map[string]any); ok {
				if meta, ok := obj["meta"].(map[string]any); ok {
					if count, ok := meta["count"].(float64); ok {
						stats.VectorCount = int64(count)
					}
				}
			}
		}
	}
	return stats, nil
}

// Ping checks the instance readiness endpoint.
func (s *Store) Ping(ctx context.Context) error {
	ready, err := s.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, err)
	}
	if !ready {
		return fmt.Errorf("%w: instance not ready", domain.ErrVectorStoreUnavailable)
	}
	return nil
}

// Close releases resources. The underlying client is HTTP-based and
// needs no explicit cleanup.
func (s *Store) Close() error {
	return nil
}
