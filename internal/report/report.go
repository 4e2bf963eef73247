// Package report builds the markdown pipeline summary sent by email
// and posted to Slack after automation runs.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xavierca1/leadflow/internal/entity"
)

// Build renders a pipeline snapshot from the current approval registry.
func Build(approvals []*entity.Approval, generatedAt time.Time) string {
	var pending, approved, rejected []*entity.Approval
	for _, a := range approvals {
		switch a.Status {
		case entity.StatusApproved:
			approved = append(approved, a)
		case entity.StatusRejected:
			rejected = append(rejected, a)
		default:
			pending = append(pending, a)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Lead Pipeline Report — %s\n\n", generatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Pending approvals: %d\n", len(pending))
	fmt.Fprintf(&b, "- Approved: %d\n", len(approved))
	fmt.Fprintf(&b, "- Skipped: %d\n\n", len(rejected))

	if len(pending) > 0 {
		b.WriteString("## Awaiting decision\n\n")
		writeLeadTable(&b, pending)
	}

	if len(approved) > 0 {
		b.WriteString("## Recently approved\n\n")
		var totalValue int
		for _, a := range approved {
			if a.ExternalResult != nil {
				totalValue += a.ExternalResult.DealValue
			}
		}
		writeLeadTable(&b, approved)
		fmt.Fprintf(&b, "\nEstimated pipeline value: $%.2f\n", float64(totalValue)/100)
	}

	return b.String()
}

func writeLeadTable(b *strings.Builder, approvals []*entity.Approval) {
	sorted := make([]*entity.Approval, len(approvals))
	copy(sorted, approvals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LeadData.Score > sorted[j].LeadData.Score
	})

	b.WriteString("| Organization | Score | Priority | Status |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, a := range sorted {
		fmt.Fprintf(b, "| %s | %d | %s | %s |\n",
			a.LeadData.Prospect.Name,
			a.LeadData.Score,
			a.LeadData.Priority,
			a.Status,
		)
	}
}
