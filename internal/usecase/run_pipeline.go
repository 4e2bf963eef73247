package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/leadflow/internal/entity"
	"github.com/xavierca1/leadflow/internal/infra/http/middleware"
	"github.com/xavierca1/leadflow/internal/scoring"
)

type PipelineResult struct {
	Researched int
	Qualified  int
	Registered []string // approval ids
	Leads      []*entity.ScoredLead
}

// RunPipelineUseCase is the periodic automation run: research a batch,
// score it, register every qualified lead for approval and fire the
// first-touch outreach email.
type RunPipelineUseCase struct {
	Source    ProspectSource
	Scorer    LeadScorer
	Register  *RegisterApprovalUseCase
	Mailer    OutreachMailer
	Notifier  NotificationGateway
	BatchSize int
}

func NewRunPipelineUseCase(
	source ProspectSource,
	scorer LeadScorer,
	register *RegisterApprovalUseCase,
	mailer OutreachMailer,
	notifier NotificationGateway,
	batchSize int,
) *RunPipelineUseCase {
	return &RunPipelineUseCase{
		Source:    source,
		Scorer:    scorer,
		Register:  register,
		Mailer:    mailer,
		Notifier:  notifier,
		BatchSize: batchSize,
	}
}

func (uc *RunPipelineUseCase) Execute(ctx context.Context) (*PipelineResult, error) {
	prospects, err := uc.Source.Research(ctx, uc.BatchSize)
	if err != nil {
		uc.alert(ctx, fmt.Sprintf("🚨 Pipeline run aborted: research failed: %v", err))
		return nil, fmt.Errorf("research failed: %w", err)
	}

	result := &PipelineResult{Researched: len(prospects)}

	for _, p := range prospects {
		if err := p.Validate(); err != nil {
			log.Printf("⚠️ Skipping invalid prospect %q: %v", p.Name, err)
			continue
		}

		lead := uc.Scorer.ScoreLead(p)
		log.Printf("🎯 %s scored %d (%s)", p.Name, lead.Score, lead.Priority)
		middleware.RecordLeadScored(lead.Priority)

		if lead.Score < scoring.MinQualifyingScore {
			continue
		}
		result.Qualified++
		result.Leads = append(result.Leads, lead)

		approvalID, err := uc.Register.Execute(ctx, lead)
		if err != nil {
			// One bad lead must not kill the run.
			log.Printf("❌ Failed to register approval for %s: %v", p.Name, err)
			continue
		}
		result.Registered = append(result.Registered, approvalID)

		if uc.Mailer != nil && p.Contact.Email != "" {
			if err := uc.Mailer.SendOutreach(p.Contact.Email, firstPersonnel(p), p.Name); err != nil {
				log.Printf("⚠️ Outreach email to %s failed: %v", p.Contact.Email, err)
			}
		}
	}

	log.Printf("🏁 Pipeline run done: %d researched, %d qualified, %d registered",
		result.Researched, result.Qualified, len(result.Registered))
	return result, nil
}

func (uc *RunPipelineUseCase) alert(ctx context.Context, text string) {
	if uc.Notifier == nil {
		return
	}
	if err := uc.Notifier.SendMessage(ctx, text); err != nil {
		log.Printf("⚠️ Alert notification failed: %v", err)
	}
}

func firstPersonnel(p entity.Prospect) string {
	if len(p.KeyPersonnel) > 0 {
		return p.KeyPersonnel[0]
	}
	return p.Name
}
