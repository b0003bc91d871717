package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/feed"
	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/internal/repository"
	apperrors "github.com/seokhojung/befunweb/pkg/errors"
)

// verifyWorkers bounds concurrent per-entry image verification.
const verifyWorkers = 8

// ImageVerifier replaces unservable image paths with defaults.
type ImageVerifier interface {
	Verify(ctx context.Context, set imageresolver.ImageSet) imageresolver.ImageSet
}

// EventPublisher announces completed migrations.
type EventPublisher interface {
	PublishMigrationCompleted(ctx context.Context, report *domain.MigrationReport) error
}

// CatalogService implements the business logic for the catalog: it runs
// migrations from the feed into the repository and serves lookups.
type CatalogService struct {
	repo     repository.CatalogRepository
	migrator *Migrator
	source   feed.Source
	verifier ImageVerifier
	producer EventPublisher
	defaults domain.MigrationConfig
	logger   *slog.Logger

	runMu      sync.Mutex
	reportMu   sync.RWMutex
	lastReport *domain.MigrationReport
}

// NewCatalogService creates a new catalog service. verifier and producer may
// be nil.
func NewCatalogService(
	repo repository.CatalogRepository,
	migrator *Migrator,
	source feed.Source,
	verifier ImageVerifier,
	producer EventPublisher,
	defaults domain.MigrationConfig,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		repo:     repo,
		migrator: migrator,
		source:   source,
		verifier: verifier,
		producer: producer,
		defaults: defaults,
		logger:   logger,
	}
}

// DefaultConfig returns the migration config used when a run has no
// overrides.
func (s *CatalogService) DefaultConfig() domain.MigrationConfig {
	return s.defaults
}

// ConfigOverrides holds optional per-run changes to the default config.
type ConfigOverrides struct {
	UseRealImages           *bool   `json:"use_real_images"`
	GenerateMissingVariants *bool   `json:"generate_missing_variants"`
	FallbackCategory        *string `json:"fallback_category" validate:"omitempty,min=1"`
	MaxColorVariants        *int    `json:"max_color_variants" validate:"omitempty,gt=0,lte=100"`
}

// Apply returns cfg with the set overrides applied.
func (o ConfigOverrides) Apply(cfg domain.MigrationConfig) domain.MigrationConfig {
	if o.UseRealImages != nil {
		cfg.UseRealImages = *o.UseRealImages
	}
	if o.GenerateMissingVariants != nil {
		cfg.GenerateMissingVariants = *o.GenerateMissingVariants
	}
	if o.FallbackCategory != nil {
		cfg.FallbackCategory = *o.FallbackCategory
	}
	if o.MaxColorVariants != nil {
		cfg.MaxColorVariants = *o.MaxColorVariants
	}
	return cfg
}

// Refresh runs a migration with the default config.
func (s *CatalogService) Refresh(ctx context.Context) (*domain.MigrationReport, error) {
	return s.RunMigration(ctx, s.defaults)
}

// RunMigration loads the feed, converts it with cfg, verifies images when a
// verifier is configured and replaces the catalog snapshot. Runs are
// serialized. A cancelled run leaves the previous snapshot in place.
func (s *CatalogService) RunMigration(ctx context.Context, cfg domain.MigrationConfig) (*domain.MigrationReport, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog feed: %w", err)
	}

	entries, report, err := s.migrator.Migrate(ctx, records, cfg)
	if err != nil {
		return report, err
	}

	if s.verifier != nil {
		s.verifyImages(ctx, entries)
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("verify catalog images: %w", err)
		}
	}

	if err := s.repo.ReplaceAll(ctx, entries); err != nil {
		return report, fmt.Errorf("store catalog: %w", err)
	}

	s.reportMu.Lock()
	s.lastReport = report
	s.reportMu.Unlock()

	if s.producer != nil {
		if err := s.producer.PublishMigrationCompleted(ctx, report); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish migration completed event",
				slog.String("run_id", report.RunID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "catalog snapshot replaced",
		slog.String("run_id", report.RunID),
		slog.Int("entries", len(entries)),
	)

	return report, nil
}

// LastReport returns the report of the last stored run, or nil.
func (s *CatalogService) LastReport() *domain.MigrationReport {
	s.reportMu.RLock()
	defer s.reportMu.RUnlock()
	return s.lastReport
}

func (s *CatalogService) verifyImages(ctx context.Context, entries []domain.CatalogEntry) {
	var g errgroup.Group
	g.SetLimit(verifyWorkers)
	for i := range entries {
		g.Go(func() error {
			e := &entries[i]
			top := s.verifier.Verify(ctx, imageresolver.ImageSet{Main: e.MainImage, Hover: e.HoverImage})
			e.MainImage, e.HoverImage = top.Main, top.Hover
			for j := range e.ColorVariants {
				v := &e.ColorVariants[j]
				set := s.verifier.Verify(ctx, imageresolver.ImageSet{Main: v.MainImage, Hover: v.HoverImage, Thumbnail: v.Thumbnail})
				v.MainImage, v.HoverImage, v.Thumbnail = set.Main, set.Hover, set.Thumbnail
			}
			return nil
		})
	}
	_ = g.Wait()
}

// GetByID retrieves a catalog entry by ID.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug retrieves a catalog entry by slug.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.CatalogEntry, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// GetWithVariant retrieves an entry with variantID selected. An empty
// variantID keeps the default selection.
func (s *CatalogService) GetWithVariant(ctx context.Context, id, variantID string) (*domain.CatalogEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil || variantID == "" {
		return entry, err
	}
	selected, err := entry.WithSelectedVariant(variantID)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	return &selected, nil
}

// List returns every entry, optionally restricted to a furniture type.
func (s *CatalogService) List(ctx context.Context, furnitureType string) ([]domain.CatalogEntry, error) {
	if furnitureType != "" {
		return s.ListByFurnitureType(ctx, furnitureType)
	}
	return s.repo.List(ctx)
}

// ListByFurnitureType returns the entries with the given furniture type.
func (s *CatalogService) ListByFurnitureType(ctx context.Context, furnitureType string) ([]domain.CatalogEntry, error) {
	return s.repo.ListByFurnitureType(ctx, furnitureType)
}

// DistinctColorNames returns the sorted variant names of the catalog.
func (s *CatalogService) DistinctColorNames(ctx context.Context) ([]string, error) {
	return s.repo.DistinctColorNames(ctx)
}

// Ready reports whether a catalog snapshot has been stored.
func (s *CatalogService) Ready(context.Context) error {
	if s.LastReport() == nil {
		return apperrors.Unavailable("catalog not loaded")
	}
	return nil
}
