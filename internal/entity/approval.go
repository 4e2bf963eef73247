package entity

import (
	"context"
	"errors"
	"time"
)

var ErrApprovalNotFound = errors.New("approval not found")

// Approval lifecycle. Pending is the only initial state; approved and
// rejected are terminal and an approval transitions out of pending at
// most once.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ExternalResult holds the CRM identifiers assigned on approval.
type ExternalResult struct {
	ContactID  string `json:"contact_id"`
	DealID     string `json:"deal_id"`
	HubspotURL string `json:"hubspot_url,omitempty"`
	DealValue  int    `json:"deal_value_cents,omitempty"`
}

// Approval is the trackable unit of the human-in-the-loop workflow.
// LeadData is a frozen snapshot taken at registration, not a live
// reference.
type Approval struct {
	ID             string          `json:"id"`
	LeadData       ScoredLead      `json:"lead_data"`
	Status         string          `json:"status"` // PENDING, APPROVED, REJECTED
	CreatedAt      time.Time       `json:"created_at"`
	DecidedBy      string          `json:"decided_by,omitempty"`
	DecidedByName  string          `json:"decided_by_name,omitempty"`
	DecidedAt      *time.Time      `json:"decided_at,omitempty"`
	ExternalResult *ExternalResult `json:"external_result,omitempty"`
}

func NewApproval(id string, lead ScoredLead) *Approval {
	return &Approval{
		ID:        id,
		LeadData:  lead,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
}

func (a *Approval) IsPending() bool {
	return a.Status == StatusPending
}

// MarkApproved records the terminal approved state. Caller must have
// checked IsPending and completed the CRM call first.
func (a *Approval) MarkApproved(actorID, actorName string, result *ExternalResult) {
	now := time.Now()
	a.Status = StatusApproved
	a.DecidedBy = actorID
	a.DecidedByName = actorName
	a.DecidedAt = &now
	a.ExternalResult = result
}

func (a *Approval) MarkRejected(actorID, actorName string) {
	now := time.Now()
	a.Status = StatusRejected
	a.DecidedBy = actorID
	a.DecidedByName = actorName
	a.DecidedAt = &now
}

// ApprovalRepositoryInterface is the persistence contract for approvals.
// Save must be durable before it returns (write-through).
type ApprovalRepositoryInterface interface {
	Save(ctx context.Context, approval *Approval) error
	FindByID(ctx context.Context, id string) (*Approval, error)
	FindAll(ctx context.Context) ([]*Approval, error)
	Delete(ctx context.Context, id string) error
}
