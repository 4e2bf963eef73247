package scoring

import (
	"time"

	"github.com/xavierca1/leadflow/internal/entity"
)

// MinQualifyingScore is the inclusive gate for a lead to enter the
// approval workflow.
const MinQualifyingScore = 60

// Scorer computes the qualification score for a prospect. It is a pure
// function of the prospect and the reference year, so fixed inputs
// always produce the same score.
type Scorer struct {
	ReferenceYear int
}

func NewScorer() *Scorer {
	return &Scorer{ReferenceYear: time.Now().Year()}
}

// Score is a weighted sum over five factors, each capped so no single
// factor can dominate past its share:
//
//	reach 40 / competition 25 / facilities 15 / diversity 10 / age 10
func (s *Scorer) Score(p entity.Prospect) int {
	total := reachPoints(p.EstimatedReach) +
		competitionPoints(p.CompetitionLevel) +
		facilityPoints(p.FacilityCount) +
		diversityPoints(p.AgeGroups) +
		s.agePoints(p.FoundedYear)

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total
}

func (s *Scorer) IsQualified(p entity.Prospect) bool {
	return s.Score(p) >= MinQualifyingScore
}

// PriorityFor maps a score to its tier: >=80 HIGH, >=70 MEDIUM, else LOW.
func PriorityFor(score int) string {
	switch {
	case score >= 80:
		return entity.PriorityHigh
	case score >= 70:
		return entity.PriorityMedium
	default:
		return entity.PriorityLow
	}
}

// ScoreLead scores and annotates a prospect in one step.
func (s *Scorer) ScoreLead(p entity.Prospect) *entity.ScoredLead {
	score := s.Score(p)
	return entity.NewScoredLead(p, score, PriorityFor(score))
}

func reachPoints(reach int) int {
	switch {
	case reach >= 300:
		return 40
	case reach >= 200:
		return 30
	case reach >= 100:
		return 20
	default:
		return 10
	}
}

func competitionPoints(level string) int {
	switch level {
	case entity.CompetitionNational:
		return 25
	case entity.CompetitionState:
		return 18
	case entity.CompetitionRegional:
		return 12
	default:
		// Unrecognized levels score as Local.
		return 6
	}
}

func facilityPoints(count int) int {
	pts := count * 3
	if pts > 15 {
		pts = 15
	}
	if pts < 0 {
		pts = 0
	}
	return pts
}

func diversityPoints(groups []string) int {
	distinct := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		distinct[g] = struct{}{}
	}
	pts := len(distinct) * 4
	if pts > 10 {
		pts = 10
	}
	return pts
}

func (s *Scorer) agePoints(foundedYear int) int {
	if foundedYear <= 0 || foundedYear > s.ReferenceYear {
		return 0
	}
	years := s.ReferenceYear - foundedYear
	switch {
	case years >= 20:
		return 10
	case years >= 10:
		return 8
	case years >= 5:
		return 5
	case years > 0:
		return 2
	default:
		return 0
	}
}
