package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/service"
	apperrors "github.com/seokhojung/befunweb/pkg/errors"
	"github.com/seokhojung/befunweb/pkg/httputil"
	"github.com/seokhojung/befunweb/pkg/pagination"
	"github.com/seokhojung/befunweb/pkg/validator"
)

// maxOverridesBody caps the POST /migrations request body.
const maxOverridesBody = 1 << 20

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Handlers ---

// ListEntries handles GET /api/v1/catalog.
func (h *CatalogHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	entries, err := h.service.List(r.Context(), r.URL.Query().Get("furniture_type"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pagination.Paginate(entries, params))
}

// GetEntry handles GET /api/v1/catalog/{id}. The path value may be an entry
// id or slug; ?variant= selects a color variant.
func (h *CatalogHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "entry id is required"},
		})
		return
	}
	variantID := r.URL.Query().Get("variant")

	entry, err := h.service.GetWithVariant(r.Context(), id, variantID)
	if errors.Is(err, apperrors.ErrNotFound) {
		if bySlug, slugErr := h.service.GetBySlug(r.Context(), id); slugErr == nil {
			entry, err = h.service.GetWithVariant(r.Context(), bySlug.ID, variantID)
		}
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, entry)
}

// ListColors handles GET /api/v1/catalog/colors.
func (h *CatalogHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.service.DistinctColorNames(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if colors == nil {
		colors = []string{}
	}

	httputil.WriteData(w, http.StatusOK, colors)
}

// RunMigration handles POST /api/v1/catalog/migrations. An empty body runs
// with the configured defaults.
func (h *CatalogHandler) RunMigration(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxOverridesBody)

	var overrides service.ConfigOverrides
	if err := validator.DecodeAndValidate(r, &overrides); err != nil && !errors.Is(err, io.EOF) {
		var valErr *validator.ValidationError
		if !errors.As(err, &valErr) {
			err = apperrors.InvalidInput(err.Error())
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cfg := overrides.Apply(h.service.DefaultConfig())
	report, err := h.service.RunMigration(r.Context(), cfg)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, report)
}

// LatestMigration handles GET /api/v1/catalog/migrations/latest.
func (h *CatalogHandler) LatestMigration(w http.ResponseWriter, r *http.Request) {
	report := h.service.LastReport()
	if report == nil {
		httputil.WriteError(w, r, apperrors.NotFound("migration report", "latest"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, migrationSummary{
		MigrationReport: report,
		DurationMS:      report.Duration().Milliseconds(),
	})
}

type migrationSummary struct {
	*domain.MigrationReport
	DurationMS int64 `json:"duration_ms"`
}
