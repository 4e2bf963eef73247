package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
	"github.com/xavierca1/leadflow/internal/infra/integration/hubspot"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

type DecideApprovalInput struct {
	ApprovalID string
	Decision   string
	ActorID    string
	ActorName  string
}

type DecideApprovalOutput struct {
	ApprovalID     string                 `json:"approval_id"`
	Status         string                 `json:"status"`
	AlreadyDecided bool                   `json:"already_decided"`
	ExternalResult *entity.ExternalResult `json:"external_result,omitempty"`
}

type DecideApprovalUseCase struct {
	Repo      entity.ApprovalRepositoryInterface
	CRM       CRMGateway
	Notifier  NotificationGateway
	Estimator DealEstimator
}

func NewDecideApprovalUseCase(
	repo entity.ApprovalRepositoryInterface,
	crm CRMGateway,
	notifier NotificationGateway,
	estimator DealEstimator,
) *DecideApprovalUseCase {
	return &DecideApprovalUseCase{
		Repo:      repo,
		CRM:       crm,
		Notifier:  notifier,
		Estimator: estimator,
	}
}

// Execute applies a human decision to a pending approval.
//
// The Slack callback transport retries, so this is NOT exactly-once at
// the edge: the idempotency guard here is what makes the CRM call
// happen at most once per approval. A decision on an already-terminal
// approval returns the stored result without re-invoking anything.
//
// On a CRM failure during approve, the approval stays PENDING and the
// error is surfaced so the decision can be retried.
func (uc *DecideApprovalUseCase) Execute(ctx context.Context, input DecideApprovalInput) (*DecideApprovalOutput, error) {
	approval, err := uc.Repo.FindByID(ctx, input.ApprovalID)
	if err != nil {
		if errors.Is(err, entity.ErrApprovalNotFound) {
			return nil, &NotFoundError{ApprovalID: input.ApprovalID}
		}
		return nil, fmt.Errorf("failed to load approval: %w", err)
	}

	// Idempotency guard: terminal approvals are settled.
	if !approval.IsPending() {
		log.Printf("🔁 Approval %s already %s, returning stored result", approval.ID, approval.Status)
		return &DecideApprovalOutput{
			ApprovalID:     approval.ID,
			Status:         approval.Status,
			AlreadyDecided: true,
			ExternalResult: approval.ExternalResult,
		}, nil
	}

	switch input.Decision {
	case DecisionApprove:
		return uc.approve(ctx, approval, input)
	case DecisionReject:
		return uc.reject(ctx, approval, input)
	default:
		return nil, &ValidationError{Message: "unknown decision: " + input.Decision}
	}
}

func (uc *DecideApprovalUseCase) approve(ctx context.Context, approval *entity.Approval, input DecideApprovalInput) (*DecideApprovalOutput, error) {
	prospect := approval.LeadData.Prospect
	dealValue := uc.Estimator.EstimateDealValue(prospect)

	// 1. CRM first. If this fails the approval stays PENDING and the
	// decision can be retried.
	crmResult, err := uc.CRM.CreateLead(ctx, hubspot.CreateLeadInput{
		OrgName:        prospect.Name,
		Email:          prospect.Contact.Email,
		Phone:          prospect.Contact.Phone,
		Sport:          prospect.Sport,
		Location:       prospect.Location,
		Score:          approval.LeadData.Score,
		Priority:       approval.LeadData.Priority,
		DealValueCents: dealValue,
	})
	if err != nil {
		middleware.RecordIntegrationError("hubspot")
		return nil, &GatewayError{Service: "hubspot", Err: err}
	}

	// 2. Transition + write-through persist.
	approval.MarkApproved(input.ActorID, input.ActorName, &entity.ExternalResult{
		ContactID:  crmResult.ContactID,
		DealID:     crmResult.DealID,
		HubspotURL: crmResult.PortalURL,
		DealValue:  dealValue,
	})
	if err := uc.Repo.Save(ctx, approval); err != nil {
		return nil, fmt.Errorf("approved in CRM but failed to persist approval %s: %w", approval.ID, err)
	}

	log.Printf("✅ Approval %s approved by %s (deal %s)", approval.ID, input.ActorName, crmResult.DealID)

	// 3. Best-effort confirmation. Must never re-enter the state
	// machine or trigger a second CRM call.
	uc.confirm(ctx, fmt.Sprintf("✅ *%s* approved by %s — deal created in HubSpot (%s)",
		prospect.Name, input.ActorName, crmResult.PortalURL))

	return &DecideApprovalOutput{
		ApprovalID:     approval.ID,
		Status:         approval.Status,
		ExternalResult: approval.ExternalResult,
	}, nil
}

func (uc *DecideApprovalUseCase) reject(ctx context.Context, approval *entity.Approval, input DecideApprovalInput) (*DecideApprovalOutput, error) {
	approval.MarkRejected(input.ActorID, input.ActorName)
	if err := uc.Repo.Save(ctx, approval); err != nil {
		return nil, fmt.Errorf("failed to persist rejection: %w", err)
	}

	log.Printf("⏭️ Approval %s skipped by %s", approval.ID, input.ActorName)

	uc.confirm(ctx, fmt.Sprintf("⏭️ *%s* skipped by %s",
		approval.LeadData.Prospect.Name, input.ActorName))

	return &DecideApprovalOutput{
		ApprovalID: approval.ID,
		Status:     approval.Status,
	}, nil
}

func (uc *DecideApprovalUseCase) confirm(ctx context.Context, text string) {
	if err := uc.Notifier.SendMessage(ctx, text); err != nil {
		log.Printf("⚠️ Confirmation notification failed: %v", err)
	}
}
