package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/feed"
	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/internal/repository/memory"
	"github.com/seokhojung/befunweb/internal/service"
	"github.com/seokhojung/befunweb/pkg/health"
	"github.com/seokhojung/befunweb/pkg/middleware"
)

// --- Test Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(t *testing.T) *service.CatalogService {
	t.Helper()
	migrator := service.NewMigrator(imageresolver.NewDefault(imageresolver.DefaultLayout()), 4, testLogger())
	return service.NewCatalogService(
		memory.New(), migrator, feed.Sample(), nil, nil, domain.DefaultMigrationConfig(), testLogger(),
	)
}

// newTestRouter returns a router over the sample catalog. loaded controls
// whether an initial migration has run.
func newTestRouter(t *testing.T, loaded bool) (http.Handler, *service.CatalogService) {
	t.Helper()
	svc := newTestService(t)
	if loaded {
		_, err := svc.Refresh(context.Background())
		require.NoError(t, err)
	}
	hh := health.NewHandler()
	hh.Register("catalog", svc.Ready)
	return NewRouter(svc, hh, testLogger(), middleware.DefaultCORSConfig()), svc
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

type listBody struct {
	Data       []domain.CatalogEntry `json:"data"`
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
	TotalPages int                   `json:"total_pages"`
	HasNext    bool                  `json:"has_next"`
}

// ============================================================================
// GET /api/v1/catalog
// ============================================================================

func TestListEntries(t *testing.T) {
	router, _ := newTestRouter(t, true)

	t.Run("first page with defaults", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

		body := decode[listBody](t, rec)
		assert.Equal(t, 10, body.TotalCount)
		assert.Len(t, body.Data, 10)
		assert.Equal(t, 20, body.PerPage)
		assert.False(t, body.HasNext)
		assert.Equal(t, "bookcase-001", body.Data[0].ID)
	})

	t.Run("second page", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog?page=2&per_page=4", "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[listBody](t, rec)
		assert.Equal(t, 10, body.TotalCount)
		assert.Equal(t, 3, body.TotalPages)
		assert.True(t, body.HasNext)
		require.Len(t, body.Data, 4)
		assert.Equal(t, "bookcase-005", body.Data[0].ID)
	})

	t.Run("page past the end", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog?page=9", "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[listBody](t, rec)
		assert.Empty(t, body.Data)
		assert.NotNil(t, body.Data)
	})

	t.Run("furniture type filter", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog?furniture_type=original%20modern", "")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[listBody](t, rec)
		assert.Equal(t, 6, body.TotalCount)
		for _, e := range body.Data {
			assert.Equal(t, "Original Modern", e.FurnitureType)
		}
	})

	t.Run("unknown furniture type", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog?furniture_type=spaceship", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, decode[listBody](t, rec).TotalCount)
	})
}

// ============================================================================
// GET /api/v1/catalog/{id}
// ============================================================================

func TestGetEntry(t *testing.T) {
	router, _ := newTestRouter(t, true)

	t.Run("by id", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog/bookcase-001", "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[envelope[domain.CatalogEntry]](t, rec)
		assert.Equal(t, "bookcase-001", resp.Data.ID)
		assert.Equal(t, "white-001", resp.Data.DefaultVariantID)
		assert.Equal(t, resp.Data.DefaultVariantID, resp.Data.SelectedVariantID)
	})

	t.Run("by slug", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog/bookcase-brown", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bookcase-003", decode[envelope[domain.CatalogEntry]](t, rec).Data.ID)
	})

	t.Run("with variant", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog/bookcase-001?variant=grey-001", "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[envelope[domain.CatalogEntry]](t, rec)
		assert.Equal(t, "grey-001", resp.Data.SelectedVariantID)
		assert.Equal(t, "white-001", resp.Data.DefaultVariantID)
	})

	t.Run("slug with variant", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog/bookcase-white-doors?variant=grey-001", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "grey-001", decode[envelope[domain.CatalogEntry]](t, rec).Data.SelectedVariantID)
	})

	t.Run("unknown variant", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog/bookcase-001?variant=purple-001", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[envelope[any]](t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/catalog/missing-999", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decode[envelope[any]](t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})
}

// ============================================================================
// GET /api/v1/catalog/colors
// ============================================================================

func TestListColors(t *testing.T) {
	router, _ := newTestRouter(t, true)

	rec := do(t, router, http.MethodGet, "/api/v1/catalog/colors", "")
	require.Equal(t, http.StatusOK, rec.Code)

	colors := decode[envelope[[]string]](t, rec).Data
	assert.IsIncreasing(t, colors)
	assert.Contains(t, colors, "White")
	assert.Contains(t, colors, "Moss Green")
}

func TestListColors_EmptyCatalog(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rec := do(t, router, http.MethodGet, "/api/v1/catalog/colors", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

// ============================================================================
// POST /api/v1/catalog/migrations
// ============================================================================

func TestRunMigration(t *testing.T) {
	t.Run("empty body uses defaults", func(t *testing.T) {
		router, svc := newTestRouter(t, false)

		rec := do(t, router, http.MethodPost, "/api/v1/catalog/migrations", "")
		require.Equal(t, http.StatusOK, rec.Code)

		report := decode[envelope[domain.MigrationReport]](t, rec).Data
		assert.Equal(t, 10, report.Total)
		assert.Equal(t, 10, report.Converted)
		assert.NotEmpty(t, report.RunID)
		assert.NotNil(t, svc.LastReport())
	})

	t.Run("overrides apply to the run", func(t *testing.T) {
		router, _ := newTestRouter(t, false)

		rec := do(t, router, http.MethodPost, "/api/v1/catalog/migrations", `{"max_color_variants": 1}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, router, http.MethodGet, "/api/v1/catalog/bookcase-001", "")
		require.Equal(t, http.StatusOK, rec.Code)
		entry := decode[envelope[domain.CatalogEntry]](t, rec).Data
		assert.Len(t, entry.ColorVariants, 1)
	})

	t.Run("validation error", func(t *testing.T) {
		router, svc := newTestRouter(t, false)

		rec := do(t, router, http.MethodPost, "/api/v1/catalog/migrations", `{"max_color_variants": 0}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[envelope[any]](t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Contains(t, resp.Error.Fields, "MaxColorVariants")
		assert.Nil(t, svc.LastReport())
	})

	t.Run("unknown field", func(t *testing.T) {
		router, _ := newTestRouter(t, false)

		rec := do(t, router, http.MethodPost, "/api/v1/catalog/migrations", `{"max_variants": 3}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[envelope[any]](t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		router, _ := newTestRouter(t, false)

		rec := do(t, router, http.MethodPost, "/api/v1/catalog/migrations", `{"max_color_variants":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		router, _ := newTestRouter(t, false)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/migrations", strings.NewReader("x"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestLatestMigration(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rec := do(t, router, http.MethodGet, "/api/v1/catalog/migrations/latest", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/catalog/migrations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/catalog/migrations/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.EqualValues(t, 10, resp.Data["total"])
	assert.Contains(t, resp.Data, "run_id")
	assert.Contains(t, resp.Data, "duration_ms")
}

// ============================================================================
// Health and metrics
// ============================================================================

func TestHealthEndpoints(t *testing.T) {
	router, svc := newTestRouter(t, false)

	rec := do(t, router, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	rec = do(t, router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, true)

	do(t, router, http.MethodGet, "/api/v1/catalog/colors", "")

	rec := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), "catalog_migration_records_total")
}

func TestRouter_CorrelationHeader(t *testing.T) {
	router, _ := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/colors", http.NoBody)
	req.Header.Set(middleware.CorrelationHeader, "corr-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "corr-123", rec.Header().Get(middleware.CorrelationHeader))
}
