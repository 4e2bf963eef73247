package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/leadflow/internal/infra/http/handlers"
)

func detailsRouter(h *handlers.LeadDetailsHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/lead-details/{approvalId}", h.HandleDetails)
	r.Get("/view/{id}", h.HandleView)
	return r
}

func TestLeadDetailsRendered(t *testing.T) {
	repo := pendingApprovalRepo(t, "apr_d_1")
	r := detailsRouter(handlers.NewLeadDetailsHandler(repo))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lead-details/apr_d_1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Summit Elite Soccer Academy")
	assert.Contains(t, rec.Body.String(), "92")
}

func TestLeadDetailsNotFound(t *testing.T) {
	repo := pendingApprovalRepo(t, "apr_d_2")
	r := detailsRouter(handlers.NewLeadDetailsHandler(repo))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lead-details/unknown-id", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLegacyViewStub(t *testing.T) {
	repo := pendingApprovalRepo(t, "apr_d_3")
	r := detailsRouter(handlers.NewLeadDetailsHandler(repo))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/view/apr_d_3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PENDING")
}
