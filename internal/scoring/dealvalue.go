package scoring

import "github.com/xavierca1/leadflow/internal/entity"

// Deal value inputs, all in cents. Same weighted-factor idea as the
// score, but this one feeds a monetary estimate, not a qualification
// decision, so it lives apart.
const (
	perAthleteCents      = 800   // $8 per athlete of estimated reach
	perFacilityBonus     = 25000 // $250 per facility
	minimumDealValue     = 50000 // floor the estimate at $500
	maximumFacilityBonus = 250000
)

// EstimateDealValue computes the deal amount proposed to the CRM on
// approval. Deterministic for a fixed prospect and reference year.
func (s *Scorer) EstimateDealValue(p entity.Prospect) int {
	base := p.EstimatedReach * perAthleteCents

	facilityBonus := p.FacilityCount * perFacilityBonus
	if facilityBonus > maximumFacilityBonus {
		facilityBonus = maximumFacilityBonus
	}

	value := float64(base+facilityBonus) * competitionMultiplier(p.CompetitionLevel)
	value *= s.stabilityMultiplier(p.FoundedYear)

	cents := int(value)
	if cents < minimumDealValue {
		cents = minimumDealValue
	}
	return cents
}

func competitionMultiplier(level string) float64 {
	switch level {
	case entity.CompetitionNational:
		return 1.5
	case entity.CompetitionState:
		return 1.3
	case entity.CompetitionRegional:
		return 1.15
	default:
		return 1.0
	}
}

func (s *Scorer) stabilityMultiplier(foundedYear int) float64 {
	if foundedYear <= 0 || foundedYear > s.ReferenceYear {
		return 1.0
	}
	years := s.ReferenceYear - foundedYear
	switch {
	case years >= 10:
		return 1.2
	case years >= 5:
		return 1.1
	default:
		return 1.0
	}
}
