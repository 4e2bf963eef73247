package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/leadflow/internal/entity"
)

// ViewTracker mirrors detail-page opens into the CRM timeline.
type ViewTracker interface {
	TrackView(ctx context.Context, contactID string) error
}

type LeadDetailsHandler struct {
	Repo entity.ApprovalRepositoryInterface

	// Tracker is optional; when set, opens of approved leads are
	// recorded on the CRM contact.
	Tracker ViewTracker
}

func NewLeadDetailsHandler(repo entity.ApprovalRepositoryInterface) *LeadDetailsHandler {
	return &LeadDetailsHandler{Repo: repo}
}

var detailsTmpl = template.Must(template.New("details").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.LeadData.Prospect.Name}} — Lead Details</title></head>
<body>
  <h1>{{.LeadData.Prospect.Name}}</h1>
  <p>{{.LeadData.Prospect.Sport}} · {{.LeadData.Prospect.Location}}</p>
  <ul>
    <li>Score: <strong>{{.LeadData.Score}}</strong> ({{.LeadData.Priority}})</li>
    <li>Estimated reach: {{.LeadData.Prospect.EstimatedReach}}</li>
    <li>Facilities: {{.LeadData.Prospect.FacilityCount}}</li>
    <li>Competition: {{.LeadData.Prospect.CompetitionLevel}}</li>
    <li>Founded: {{.LeadData.Prospect.FoundedYear}}</li>
  </ul>
  <p>Status: <strong>{{.Status}}</strong>{{if .DecidedByName}} by {{.DecidedByName}}{{end}}</p>
  {{if .ExternalResult}}<p><a href="{{.ExternalResult.HubspotURL}}">Open in HubSpot</a></p>{{end}}
</body>
</html>`))

// HandleDetails renders the human-readable view linked from Slack.
func (h *LeadDetailsHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	approvalID := chi.URLParam(r, "approvalId")

	approval, err := h.Repo.FindByID(r.Context(), approvalID)
	if err != nil {
		if errors.Is(err, entity.ErrApprovalNotFound) {
			http.Error(w, "Approval not found (it may have expired)", http.StatusNotFound)
			return
		}
		log.Printf("❌ Lead details: failed to load %s: %v", approvalID, err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if h.Tracker != nil && approval.ExternalResult != nil {
		go func(contactID string) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.Tracker.TrackView(ctx, contactID); err != nil {
				log.Printf("⚠️ Lead details: view tracking failed: %v", err)
			}
		}(approval.ExternalResult.ContactID)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := detailsTmpl.Execute(w, approval); err != nil {
		log.Printf("❌ Lead details: render failed: %v", err)
	}
}

// HandleView is the legacy plain view kept for old Slack links.
func (h *LeadDetailsHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	approval, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s — score %d (%s), status %s\n",
		approval.LeadData.Prospect.Name,
		approval.LeadData.Score,
		approval.LeadData.Priority,
		approval.Status,
	)
}
