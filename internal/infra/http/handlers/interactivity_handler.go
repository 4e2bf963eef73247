package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
	"github.com/xavierca1/leadflow/internal/infra/integration/slack"
	"github.com/xavierca1/leadflow/internal/usecase"
)

// InteractivityHandler receives Slack's interactive-component callback.
//
// Slack gives us ~3 seconds to answer, so the approve path (which
// involves a CRM round trip) is acknowledged immediately and the real
// work goes through the queue. The skip path is just a store write and
// runs inline.
type InteractivityHandler struct {
	Producer usecase.QueueProducerInterface
	Decider  *usecase.DecideApprovalUseCase
}

func NewInteractivityHandler(
	producer usecase.QueueProducerInterface,
	decider *usecase.DecideApprovalUseCase,
) *InteractivityHandler {
	return &InteractivityHandler{
		Producer: producer,
		Decider:  decider,
	}
}

type ephemeralResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

func (h *InteractivityHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeEphemeral(w, http.StatusBadRequest, "Sorry, I couldn't read that interaction.")
		return
	}

	raw := r.PostFormValue("payload")
	if raw == "" {
		writeEphemeral(w, http.StatusBadRequest, "Missing interaction payload.")
		return
	}

	var payload slack.InteractionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Printf("❌ Interactivity: bad payload JSON: %v", err)
		writeEphemeral(w, http.StatusBadRequest, "Sorry, that interaction payload was malformed.")
		return
	}

	if len(payload.Actions) == 0 {
		writeEphemeral(w, http.StatusBadRequest, "No action found in the interaction.")
		return
	}

	action := payload.Actions[0]
	approvalID := action.Value
	actor := payload.User

	switch action.ActionID {
	case slack.ActionCreateDeal:
		h.enqueueApprove(r.Context(), w, approvalID, actor)

	case slack.ActionSkipLead:
		h.rejectInline(r.Context(), w, approvalID, actor)

	default:
		log.Printf("⚠️ Interactivity: unknown action_id %q", action.ActionID)
		writeEphemeral(w, http.StatusOK, "I don't know how to handle that action.")
	}
}

func (h *InteractivityHandler) enqueueApprove(ctx context.Context, w http.ResponseWriter, approvalID string, actor slack.User) {
	err := h.Producer.PublishDecision(ctx, usecase.DecisionPayload{
		ApprovalID: approvalID,
		Decision:   usecase.DecisionApprove,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Origin:     "slack_interactivity",
	})
	if err != nil {
		log.Printf("❌ Interactivity: failed to enqueue approve for %s: %v", approvalID, err)
		writeEphemeral(w, http.StatusOK,
			"⚠️ Couldn't start the deal creation, please try the button again.")
		return
	}

	middleware.RecordDecision("approve")
	writeEphemeral(w, http.StatusOK, "⏳ Got it! Creating the HubSpot deal now...")
}

func (h *InteractivityHandler) rejectInline(ctx context.Context, w http.ResponseWriter, approvalID string, actor slack.User) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out, err := h.Decider.Execute(ctx, usecase.DecideApprovalInput{
		ApprovalID: approvalID,
		Decision:   usecase.DecisionReject,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
	})
	if err != nil {
		if usecase.IsNotFound(err) {
			writeEphemeral(w, http.StatusOK,
				"This approval expired or was already cleaned up — nothing to skip.")
			return
		}
		log.Printf("❌ Interactivity: skip failed for %s: %v", approvalID, err)
		writeEphemeral(w, http.StatusOK, "⚠️ Couldn't record the skip, please try again.")
		return
	}

	middleware.RecordDecision("reject")
	if out.AlreadyDecided {
		writeEphemeral(w, http.StatusOK, "This lead was already "+out.Status+".")
		return
	}
	writeEphemeral(w, http.StatusOK, "⏭️ Lead skipped.")
}

// writeEphemeral always answers the Slack user with something
// readable, even when we failed internally.
func writeEphemeral(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ephemeralResponse{
		ResponseType: "ephemeral",
		Text:         text,
	})
}
