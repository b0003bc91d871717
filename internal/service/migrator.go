package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/seokhojung/befunweb/internal/badge"
	"github.com/seokhojung/befunweb/internal/dimension"
	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/internal/palette"
	"github.com/seokhojung/befunweb/internal/variant"
	apperrors "github.com/seokhojung/befunweb/pkg/errors"
	"github.com/seokhojung/befunweb/pkg/logger"
	"github.com/seokhojung/befunweb/pkg/slug"
	"github.com/seokhojung/befunweb/pkg/tracing"
)

// DefaultWorkers bounds concurrent conversions when none is configured.
const DefaultWorkers = 8

var errMissingID = errors.New("record has no id")

// Migrator turns sparse source records into display-ready catalog entries.
// It holds no state between passes.
type Migrator struct {
	variants   *variant.Synthesizer
	dimensions *dimension.Generator
	badges     *badge.Generator
	workers    int
	logger     *slog.Logger
	tracer     trace.Tracer

	convert func(domain.SourceRecord, domain.MigrationConfig) (domain.CatalogEntry, error)
}

// NewMigrator creates a migrator resolving images through resolver.
func NewMigrator(resolver *imageresolver.Resolver, workers int, logger *slog.Logger) *Migrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	m := &Migrator{
		variants:   variant.New(resolver),
		dimensions: dimension.New(),
		badges:     badge.New(),
		workers:    workers,
		logger:     logger,
		tracer:     tracing.Tracer("catalog-migrator"),
	}
	m.convert = m.Convert
	return m
}

// Convert derives one catalog entry. Sparse records degrade through
// fallbacks; only an invalid config, a missing ID or a panic is an error.
func (m *Migrator) Convert(rec domain.SourceRecord, cfg domain.MigrationConfig) (entry domain.CatalogEntry, err error) {
	if err := cfg.Validate(); err != nil {
		return domain.CatalogEntry{}, err
	}
	if strings.TrimSpace(rec.ID) == "" {
		return domain.CatalogEntry{}, apperrors.ConversionFailed(rec.ID, errMissingID)
	}
	if rec.DecodeError != "" {
		return domain.CatalogEntry{}, apperrors.ConversionFailed(rec.ID, errors.New(rec.DecodeError))
	}

	defer func() {
		if r := recover(); r != nil {
			entry = domain.CatalogEntry{}
			err = apperrors.ConversionFailed(rec.ID, fmt.Errorf("panic: %v", r))
		}
	}()

	category := strings.ToLower(strings.TrimSpace(rec.CategoryOr(cfg.FallbackCategory)))
	if rec.Slug == "" {
		rec.Slug = slug.Generate(rec.Name)
	}

	variants, defaultID := m.variants.Synthesize(rec, variant.Options{
		Category:      category,
		MaxVariants:   cfg.MaxColorVariants,
		Generate:      cfg.GenerateMissingVariants,
		UseRealImages: cfg.UseRealImages,
	})

	entry = domain.CatalogEntry{
		SourceRecord:      rec,
		ColorVariants:     variants,
		DefaultVariantID:  defaultID,
		SelectedVariantID: defaultID,
		FurnitureType:     palette.FurnitureType(category),
		ExactDimensions:   m.dimensions.Generate(category, rec.ID),
		ColorName:         colorName(rec),
	}
	entry.Badges, entry.Labels = m.badges.Generate(rec)

	def, _ := entry.DefaultVariant()
	entry.MainImage = firstNonEmpty(rec.Image, at(rec.Images, 0), def.MainImage)
	entry.HoverImage = firstNonEmpty(at(rec.Images, 1), def.HoverImage)
	if !cfg.UseRealImages {
		entry.MainImage = imageresolver.Localize(entry.MainImage, category, imageresolver.RoleMain)
		entry.HoverImage = imageresolver.Localize(entry.HoverImage, category, imageresolver.RoleHover)
	}

	return entry, nil
}

// Validate checks the structural invariants of an entry against cfg.
func (m *Migrator) Validate(entry domain.CatalogEntry, cfg domain.MigrationConfig) bool {
	if entry.ID == "" || len(entry.ColorVariants) == 0 || len(entry.ColorVariants) > max(cfg.MaxColorVariants, 1) {
		return false
	}
	if entry.FurnitureType == "" || entry.ExactDimensions == "" || entry.MainImage == "" {
		return false
	}

	defaults := 0
	for _, v := range entry.ColorVariants {
		if v.IsDefault {
			defaults++
			if v.ID != entry.DefaultVariantID {
				return false
			}
		}
	}
	return defaults == 1
}

// SafeConvert converts rec with the default config and returns nil on any
// failure.
func (m *Migrator) SafeConvert(rec domain.SourceRecord) (out *domain.CatalogEntry) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
		}
	}()

	cfg := domain.DefaultMigrationConfig()
	entry, err := m.convert(rec, cfg)
	if err != nil || !m.Validate(entry, cfg) {
		return nil
	}
	return &entry
}

type outcome struct {
	entry   domain.CatalogEntry
	done    bool
	ok      bool
	retried bool
	reason  string
}

// Migrate converts records concurrently and returns the valid entries in
// input order with a report of the pass. An invalid cfg fails before any
// work. When ctx is cancelled the entries of the completed prefix are
// returned together with ctx.Err().
func (m *Migrator) Migrate(ctx context.Context, records []domain.SourceRecord, cfg domain.MigrationConfig) ([]domain.CatalogEntry, *domain.MigrationReport, error) {
	if err := cfg.Validate(); err != nil {
		migrationRunsTotal.WithLabelValues("invalid_config").Inc()
		return nil, nil, fmt.Errorf("migrate catalog: %w", err)
	}

	report := &domain.MigrationReport{
		RunID:     uuid.NewString(),
		Total:     len(records),
		Excluded:  []domain.ExcludedRecord{},
		StartedAt: time.Now().UTC(),
	}

	ctx = logger.WithRunID(ctx, report.RunID)
	ctx, span := m.tracer.Start(ctx, "catalog.migrate", trace.WithAttributes(
		attribute.String("migration.run_id", report.RunID),
		attribute.Int("migration.records", len(records)),
		attribute.Int("migration.max_color_variants", cfg.MaxColorVariants),
	))
	defer span.End()

	log := logger.WithContext(ctx, m.logger)
	log.InfoContext(ctx, "catalog migration started",
		slog.Int("records", len(records)),
		slog.Int("workers", m.workers),
	)

	results := make([]outcome, len(records))
	var g errgroup.Group
	g.SetLimit(m.workers)
	for i := range records {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = m.convertWithRetry(ctx, log, records[i], cfg)
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]domain.CatalogEntry, 0, len(records))
	for _, r := range results {
		if !r.done {
			break
		}
		if r.retried {
			report.Retried++
			migrationRecordsTotal.WithLabelValues(outcomeRetried).Inc()
		}
		if !r.ok {
			report.Excluded = append(report.Excluded, domain.ExcludedRecord{ID: r.entry.ID, Reason: r.reason})
			migrationRecordsTotal.WithLabelValues(outcomeExcluded).Inc()
			continue
		}
		entries = append(entries, r.entry)
		report.Converted++
		migrationRecordsTotal.WithLabelValues(outcomeConverted).Inc()
	}

	report.FinishedAt = time.Now().UTC()
	migrationDuration.Observe(report.Duration().Seconds())
	span.SetAttributes(
		attribute.Int("migration.converted", report.Converted),
		attribute.Int("migration.excluded", len(report.Excluded)),
	)

	if err := ctx.Err(); err != nil {
		migrationRunsTotal.WithLabelValues("cancelled").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "migration cancelled")
		log.WarnContext(ctx, "catalog migration cancelled",
			slog.Int("converted", report.Converted),
			slog.Int("total", report.Total),
		)
		return entries, report, err
	}

	migrationRunsTotal.WithLabelValues("completed").Inc()
	log.InfoContext(ctx, "catalog migration completed",
		slog.Int("total", report.Total),
		slog.Int("converted", report.Converted),
		slog.Int("retried", report.Retried),
		slog.Int("excluded", len(report.Excluded)),
		slog.Duration("duration", report.Duration()),
	)
	return entries, report, nil
}

// convertWithRetry converts rec, retrying once without palette synthesis
// when the first attempt fails or produces an invalid entry.
func (m *Migrator) convertWithRetry(ctx context.Context, log *slog.Logger, rec domain.SourceRecord, cfg domain.MigrationConfig) outcome {
	if rec.DecodeError != "" {
		log.WarnContext(ctx, "record excluded from catalog",
			slog.String("record_id", rec.ID),
			slog.String("reason", rec.DecodeError),
		)
		return outcome{
			entry:  domain.CatalogEntry{SourceRecord: domain.SourceRecord{ID: rec.ID}},
			done:   true,
			reason: rec.DecodeError,
		}
	}

	entry, err := m.convert(rec, cfg)
	if err == nil && m.Validate(entry, cfg) {
		return outcome{entry: entry, done: true, ok: true}
	}

	log.InfoContext(ctx, "retrying record without synthesized variants",
		slog.String("record_id", rec.ID),
		slog.String("reason", failureReason(err)),
	)

	retryCfg := cfg
	retryCfg.GenerateMissingVariants = false
	entry, err = m.convert(rec, retryCfg)
	if err == nil && m.Validate(entry, retryCfg) {
		return outcome{entry: entry, done: true, ok: true, retried: true}
	}

	reason := failureReason(err)
	log.WarnContext(ctx, "record excluded from catalog",
		slog.String("record_id", rec.ID),
		slog.String("reason", reason),
	)
	return outcome{
		entry:   domain.CatalogEntry{SourceRecord: domain.SourceRecord{ID: rec.ID}},
		done:    true,
		retried: true,
		reason:  reason,
	}
}

func failureReason(err error) string {
	if err != nil {
		return err.Error()
	}
	return "entry failed validation"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
