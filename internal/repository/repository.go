package repository

import (
	"context"

	"github.com/seokhojung/befunweb/internal/domain"
)

// CatalogRepository holds the current catalog snapshot.
type CatalogRepository interface {
	// ReplaceAll swaps the whole snapshot for entries, keeping their order.
	ReplaceAll(ctx context.Context, entries []domain.CatalogEntry) error

	// GetByID retrieves an entry by its identity.
	GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error)

	// GetBySlug retrieves an entry by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.CatalogEntry, error)

	// List returns every entry in snapshot order.
	List(ctx context.Context) ([]domain.CatalogEntry, error)

	// ListByFurnitureType returns the entries carrying the given label.
	ListByFurnitureType(ctx context.Context, furnitureType string) ([]domain.CatalogEntry, error)

	// DistinctColorNames returns every variant name in the snapshot, sorted
	// and de-duplicated.
	DistinctColorNames(ctx context.Context) ([]string, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)
}
