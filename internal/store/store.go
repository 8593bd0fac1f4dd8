package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

// Store implements interfaces.DocumentStore on top of a bun repository.
type Store struct {
	repo   repository.Repository[*Record]
	logger interfaces.Logger
}

// Option customizes store construction.
type Option func(*options)

type options struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	logger        interfaces.Logger
}

// WithCache wraps the repository with a read-through cache. Both the
// service and the serializer must be provided for caching to activate.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(o *options) {
		o.cacheService = service
		o.keySerializer = serializer
	}
}

// WithLogger sets the logger used for index activity.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New builds a document store backed by db.
func New(db *bun.DB, opts ...Option) *Store {
	cfg := &options{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(cfg)
	}

	repo := NewDocumentRepository(db)
	if cfg.cacheService != nil && cfg.keySerializer != nil {
		repo = repositorycache.New(repo, cfg.cacheService, cfg.keySerializer)
	}

	return &Store{repo: repo, logger: cfg.logger}
}

// Upsert writes the document's index row. Rows whose checksum matches the
// incoming document are left untouched and reported as skipped.
func (s *Store) Upsert(ctx context.Context, doc *interfaces.Document) (interfaces.StoreOutcome, error) {
	if doc == nil {
		return interfaces.StoreSkipped, fmt.Errorf("store: document is required")
	}

	record := recordFromDocument(doc)

	existing, err := s.repo.GetByIdentifier(ctx, doc.FilePath)
	if err != nil {
		mapped := mapRepositoryError(err, doc.FilePath)
		if !errors.Is(mapped, ErrDocumentNotFound) {
			return interfaces.StoreSkipped, mapped
		}

		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
		if _, err := s.repo.Create(ctx, record); err != nil {
			return interfaces.StoreSkipped, mapRepositoryError(err, doc.FilePath)
		}
		s.logger.Debug("indexed document", "document_path", doc.FilePath, "sync_action", "create")
		return interfaces.StoreCreated, nil
	}

	if existing.Checksum == record.Checksum {
		return interfaces.StoreSkipped, nil
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now().UTC()
	if _, err := s.repo.Update(ctx, record); err != nil {
		return interfaces.StoreSkipped, mapRepositoryError(err, doc.FilePath)
	}
	s.logger.Debug("indexed document", "document_path", doc.FilePath, "sync_action", "update")
	return interfaces.StoreUpdated, nil
}

// Paths returns every indexed source path in sorted order.
func (s *Store) Paths(ctx context.Context) ([]string, error) {
	records, _, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}

	paths := make([]string, 0, len(records))
	for _, record := range records {
		paths = append(paths, record.Path)
	}
	sort.Strings(paths)
	return paths, nil
}

// DeleteOrphans removes rows whose source path is absent from keep and
// returns the deleted paths.
func (s *Store) DeleteOrphans(ctx context.Context, keep []string) ([]string, error) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, path := range keep {
		keepSet[path] = struct{}{}
	}

	records, _, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}

	var deleted []string
	for _, record := range records {
		if _, ok := keepSet[record.Path]; ok {
			continue
		}
		if err := s.repo.Delete(ctx, &Record{ID: record.ID}); err != nil {
			return deleted, mapRepositoryError(err, record.Path)
		}
		s.logger.Debug("removed orphaned document", "document_path", record.Path, "sync_action", "delete")
		deleted = append(deleted, record.Path)
	}
	sort.Strings(deleted)
	return deleted, nil
}

// Get looks up the index row for a source path.
func (s *Store) Get(ctx context.Context, path string) (*Record, error) {
	record, err := s.repo.GetByIdentifier(ctx, path)
	if err != nil {
		return nil, mapRepositoryError(err, path)
	}
	return record, nil
}

// Checksum reports the stored checksum for a source path, decoded from hex.
func (s *Store) Checksum(ctx context.Context, path string) ([]byte, error) {
	record, err := s.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	sum, err := hex.DecodeString(record.Checksum)
	if err != nil {
		return nil, fmt.Errorf("store: decode checksum for %s: %w", path, err)
	}
	return sum, nil
}
