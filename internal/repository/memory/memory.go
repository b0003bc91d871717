package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/seokhojung/befunweb/internal/domain"
	apperrors "github.com/seokhojung/befunweb/pkg/errors"
)

// CatalogRepository implements repository.CatalogRepository with an
// in-memory snapshot that is replaced atomically.
type CatalogRepository struct {
	mu      sync.RWMutex
	entries []domain.CatalogEntry
	byID    map[string]int
	bySlug  map[string]int
}

// New creates an empty in-memory catalog repository.
func New() *CatalogRepository {
	return &CatalogRepository{
		byID:   make(map[string]int),
		bySlug: make(map[string]int),
	}
}

// ReplaceAll swaps the snapshot. Later duplicates of an ID or slug shadow
// earlier ones in the indexes.
func (r *CatalogRepository) ReplaceAll(_ context.Context, entries []domain.CatalogEntry) error {
	snapshot := make([]domain.CatalogEntry, len(entries))
	copy(snapshot, entries)

	byID := make(map[string]int, len(snapshot))
	bySlug := make(map[string]int, len(snapshot))
	for i, e := range snapshot {
		byID[e.ID] = i
		if e.Slug != "" {
			bySlug[e.Slug] = i
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries, r.byID, r.bySlug = snapshot, byID, bySlug
	return nil
}

// GetByID retrieves an entry by its identity.
func (r *CatalogRepository) GetByID(_ context.Context, id string) (*domain.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("catalog entry", id)
	}
	e := r.entries[i]
	return &e, nil
}

// GetBySlug retrieves an entry by slug.
func (r *CatalogRepository) GetBySlug(_ context.Context, slug string) (*domain.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.bySlug[slug]
	if !ok {
		return nil, apperrors.NotFound("catalog entry", slug)
	}
	e := r.entries[i]
	return &e, nil
}

// List returns a copy of the snapshot.
func (r *CatalogRepository) List(_ context.Context) ([]domain.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CatalogEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// ListByFurnitureType returns entries whose label matches, ignoring case.
func (r *CatalogRepository) ListByFurnitureType(_ context.Context, furnitureType string) ([]domain.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.CatalogEntry, 0)
	for i := range r.entries {
		if r.entries[i].MatchesFurnitureType(furnitureType) {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

// DistinctColorNames returns the sorted set of variant names.
func (r *CatalogRepository) DistinctColorNames(_ context.Context) ([]string, error) {
	r.mu.RLock()
	seen := make(map[string]struct{})
	for i := range r.entries {
		for _, v := range r.entries[i].ColorVariants {
			seen[v.Name] = struct{}{}
		}
	}
	r.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Count returns the number of entries.
func (r *CatalogRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}
