package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/booking/internal/catalog"
	"github.com/DukeRupert/booking/internal/domain"
)

func TestIntegrationHandler_RootRedirects(t *testing.T) {
	mux := newTestMux(t, newRealService())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, domain.ListingPath, rec.Header().Get("Location"))
}

func TestIntegrationHandler_Index_ListsInCatalogOrder(t *testing.T) {
	mux := newTestMux(t, newRealService())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/integrations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	last := -1
	for _, i := range catalog.Default {
		idx := strings.Index(body, `href="/booking/`+i.ID+`"`)
		require.NotEqual(t, -1, idx, "missing link for %s", i.ID)
		assert.Greater(t, idx, last, "%s out of order", i.ID)
		last = idx
	}
	assert.NotContains(t, body, `id="toast"`)
}

func TestIntegrationHandler_Index_CatalogError(t *testing.T) {
	svc := &mockBookingService{
		ListIntegrationsFunc: func(ctx context.Context) ([]domain.Integration, error) {
			return nil, domain.Internal(errors.New("timeout"), "integration.list", "failed to load integrations")
		},
	}
	mux := newTestMux(t, svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/integrations", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "timeout")
}
