package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
)

type RegisterApprovalUseCase struct {
	Repo     entity.ApprovalRepositoryInterface
	Notifier NotificationGateway
}

func NewRegisterApprovalUseCase(
	repo entity.ApprovalRepositoryInterface,
	notifier NotificationGateway,
) *RegisterApprovalUseCase {
	return &RegisterApprovalUseCase{
		Repo:     repo,
		Notifier: notifier,
	}
}

// Execute registers a pending approval for a qualified lead and asks
// Slack for a decision. The approval is persisted before the prompt
// goes out, so a callback arriving right after dispatch always finds
// it. A failed prompt is logged and does NOT roll the approval back:
// the lead stays trackable either way.
func (uc *RegisterApprovalUseCase) Execute(ctx context.Context, lead *entity.ScoredLead) (string, error) {
	approval := entity.NewApproval(newApprovalID(), *lead)

	if err := uc.Repo.Save(ctx, approval); err != nil {
		return "", fmt.Errorf("failed to persist approval: %w", err)
	}
	middleware.RecordApprovalRegistered()

	if err := uc.Notifier.SendApprovalPrompt(ctx, approval.ID, lead); err != nil {
		log.Printf("⚠️ Approval %s saved, but the Slack prompt failed: %v", approval.ID, err)
	} else {
		log.Printf("📨 Approval prompt sent for %s (%s, score %d)",
			approval.ID, lead.Prospect.Name, lead.Score)
	}

	return approval.ID, nil
}

// newApprovalID builds a collision-resistant id. Volume is low, so a
// millisecond timestamp plus a uuid fragment is plenty.
func newApprovalID() string {
	return fmt.Sprintf("apr_%d_%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
