package usecase

import (
	"context"

	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/integration/hubspot"
)

// CRMGateway creates the contact + deal pair on approval and exposes
// the bookkeeping calls used by the dashboard handlers.
type CRMGateway interface {
	CreateLead(ctx context.Context, input hubspot.CreateLeadInput) (*hubspot.CreateLeadOutput, error)
	AddNote(ctx context.Context, contactID, text string) error
}

// NotificationGateway delivers interactive decision prompts and
// plain confirmations. Failures here are logged, never fatal.
type NotificationGateway interface {
	SendApprovalPrompt(ctx context.Context, approvalID string, lead *entity.ScoredLead) error
	SendMessage(ctx context.Context, text string) error
}

// DealEstimator prices the deal proposed to the CRM on approval.
type DealEstimator interface {
	EstimateDealValue(p entity.Prospect) int
}

// LeadScorer gates prospects into the workflow.
type LeadScorer interface {
	ScoreLead(p entity.Prospect) *entity.ScoredLead
}

// ProspectSource produces a research batch for a pipeline run.
type ProspectSource interface {
	Research(ctx context.Context, batchSize int) ([]entity.Prospect, error)
}

// OutreachMailer sends the first-touch email to a qualified lead.
type OutreachMailer interface {
	SendOutreach(to, name, orgName string) error
}

// DecisionPayload is the follow-up task enqueued after the interactive
// callback is acknowledged. The worker replays it through the decide
// use case, whose idempotency guard absorbs redeliveries.
type DecisionPayload struct {
	ApprovalID string `json:"approval_id"`
	Decision   string `json:"decision"` // approve, reject
	ActorID    string `json:"actor_id"`
	ActorName  string `json:"actor_name"`
	Origin     string `json:"origin"`
}

type QueueProducerInterface interface {
	PublishDecision(ctx context.Context, payload DecisionPayload) error
}
