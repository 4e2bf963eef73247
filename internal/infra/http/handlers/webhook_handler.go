package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
)

// Notifier is the slice of the notification gateway the webhook needs.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// WebhookHandler receives automation status updates (envelope object)
// and CRM-style event batches (JSON array) on the same endpoint.
type WebhookHandler struct {
	Notifier Notifier
}

func NewWebhookHandler(notifier Notifier) *WebhookHandler {
	return &WebhookHandler{Notifier: notifier}
}

type automationEvent struct {
	Type       string                 `json:"type"`
	Automation string                 `json:"automation,omitempty"`
	Status     string                 `json:"status,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

type crmEvent struct {
	SubscriptionType string      `json:"subscriptionType"`
	ObjectID         json.Number `json:"objectId"`
	PropertyName     string      `json:"propertyName,omitempty"`
	PropertyValue    string      `json:"propertyValue,omitempty"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read body")
		return
	}

	// HubSpot posts event arrays; our own automations post an
	// envelope object. Disambiguate by shape.
	var events []crmEvent
	if err := json.Unmarshal(body, &events); err == nil {
		h.handleCRMEvents(r.Context(), events)
		writeSuccess(w)
		return
	}

	var event automationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeError(w, http.StatusBadRequest, "bad JSON")
		return
	}

	h.handleAutomationUpdate(r.Context(), event)
	writeSuccess(w)
}

func (h *WebhookHandler) handleAutomationUpdate(ctx context.Context, event automationEvent) {
	log.Printf("🤖 Automation update: %s [%s] %s", event.Automation, event.Status, event.Type)
	middleware.RecordAutomationUpdate(event.Automation, event.Status)

	if event.Status == "failed" && h.Notifier != nil {
		if err := h.Notifier.SendMessage(ctx, "🚨 Automation *"+event.Automation+"* reported failure"); err != nil {
			log.Printf("⚠️ Failed to relay automation alert: %v", err)
		}
	}
}

func (h *WebhookHandler) handleCRMEvents(ctx context.Context, events []crmEvent) {
	for _, e := range events {
		log.Printf("📬 CRM event: %s object=%s %s=%s",
			e.SubscriptionType, e.ObjectID.String(), e.PropertyName, e.PropertyValue)
		middleware.RecordCRMEvent(e.SubscriptionType)
	}
}

func writeSuccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
