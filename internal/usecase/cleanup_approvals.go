package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/leadflow/internal/entity"
)

const (
	// DefaultResolvedRetention keeps decided approvals around for a day
	// so the detail view and Slack links keep working.
	DefaultResolvedRetention = 24 * time.Hour

	// DefaultPendingTTL auto-rejects approvals nobody decided on. The
	// original flow left them pending forever; a week is long enough
	// for any real decision.
	DefaultPendingTTL = 7 * 24 * time.Hour
)

// CleanupApprovalsUseCase is the retention janitor. Resolved approvals
// are dropped after the retention window; stale pending approvals are
// auto-rejected through the normal decide path so the idempotency
// guard and confirmation notification still apply.
type CleanupApprovalsUseCase struct {
	Repo              entity.ApprovalRepositoryInterface
	Decide            *DecideApprovalUseCase
	ResolvedRetention time.Duration
	PendingTTL        time.Duration
}

func NewCleanupApprovalsUseCase(
	repo entity.ApprovalRepositoryInterface,
	decide *DecideApprovalUseCase,
) *CleanupApprovalsUseCase {
	return &CleanupApprovalsUseCase{
		Repo:              repo,
		Decide:            decide,
		ResolvedRetention: DefaultResolvedRetention,
		PendingTTL:        DefaultPendingTTL,
	}
}

func (uc *CleanupApprovalsUseCase) Execute(ctx context.Context) error {
	approvals, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	removed, expired := 0, 0

	for _, a := range approvals {
		if a.IsPending() {
			if now.Sub(a.CreatedAt) < uc.PendingTTL {
				continue
			}
			_, err := uc.Decide.Execute(ctx, DecideApprovalInput{
				ApprovalID: a.ID,
				Decision:   DecisionReject,
				ActorID:    "system",
				ActorName:  "system/expiry",
			})
			if err != nil {
				log.Printf("⚠️ Failed to expire pending approval %s: %v", a.ID, err)
				continue
			}
			expired++
			continue
		}

		if a.DecidedAt == nil || now.Sub(*a.DecidedAt) < uc.ResolvedRetention {
			continue
		}
		if err := uc.Repo.Delete(ctx, a.ID); err != nil {
			log.Printf("⚠️ Failed to remove resolved approval %s: %v", a.ID, err)
			continue
		}
		removed++
	}

	if removed > 0 || expired > 0 {
		log.Printf("🧹 Approval cleanup: %d resolved removed, %d stale pending expired", removed, expired)
	}
	return nil
}
