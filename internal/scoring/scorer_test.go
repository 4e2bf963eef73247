package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/leadflow/internal/entity"
)

func fixedScorer() *Scorer {
	return &Scorer{ReferenceYear: 2026}
}

func TestScoreIsDeterministic(t *testing.T) {
	s := fixedScorer()
	p := entity.Prospect{
		Name:             "Summit Elite Soccer Academy",
		EstimatedReach:   250,
		FacilityCount:    4,
		FoundedYear:      2012,
		CompetitionLevel: entity.CompetitionState,
		AgeGroups:        []string{"Youth", "High School"},
	}

	first := s.Score(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Score(p))
	}
}

func TestScoreBoundaryProspectMaxesEveryFactor(t *testing.T) {
	s := fixedScorer()
	p := entity.Prospect{
		Name:             "Velocity United Basketball",
		EstimatedReach:   300, // step max: 40
		CompetitionLevel: entity.CompetitionNational, // 25
		FacilityCount:    10,                         // 30 raw, capped at 15
		AgeGroups:        []string{"Youth", "High School", "Adult"}, // 12 raw, capped at 10
		FoundedYear:      2006,                                     // 20 years: 10
	}

	assert.Equal(t, 100, s.Score(p), "max contribution in every factor should clamp at 100")
}

func TestScoreFactorCaps(t *testing.T) {
	s := fixedScorer()

	base := entity.Prospect{
		EstimatedReach:   300,
		CompetitionLevel: entity.CompetitionNational,
		FoundedYear:      2006,
		AgeGroups:        []string{"Youth", "High School", "Adult"},
	}

	tenFacilities := base
	tenFacilities.FacilityCount = 10
	fiveFacilities := base
	fiveFacilities.FacilityCount = 5

	// Five facilities already hit the 15-point cap.
	assert.Equal(t, s.Score(fiveFacilities), s.Score(tenFacilities))
}

func TestQualificationGateIsInclusive(t *testing.T) {
	s := fixedScorer()

	// reach 100 (20) + Regional (12) + 5 facilities (15) + 3 groups (10) + 3 years (2) = 59
	at59 := entity.Prospect{
		EstimatedReach:   100,
		CompetitionLevel: entity.CompetitionRegional,
		FacilityCount:    5,
		AgeGroups:        []string{"Youth", "High School", "Adult"},
		FoundedYear:      2023,
	}
	// reach 100 (20) + Regional (12) + 5 facilities (15) + 2 groups (8) + 7 years (5) = 60
	at60 := entity.Prospect{
		EstimatedReach:   100,
		CompetitionLevel: entity.CompetitionRegional,
		FacilityCount:    5,
		AgeGroups:        []string{"Youth", "High School"},
		FoundedYear:      2019,
	}

	assert.Equal(t, 59, s.Score(at59))
	assert.False(t, s.IsQualified(at59))

	assert.Equal(t, 60, s.Score(at60))
	assert.True(t, s.IsQualified(at60), "threshold is inclusive")
}

func TestPriorityTiers(t *testing.T) {
	assert.Equal(t, entity.PriorityHigh, PriorityFor(80))
	assert.Equal(t, entity.PriorityHigh, PriorityFor(95))
	assert.Equal(t, entity.PriorityMedium, PriorityFor(70))
	assert.Equal(t, entity.PriorityMedium, PriorityFor(79))
	assert.Equal(t, entity.PriorityLow, PriorityFor(69))
	assert.Equal(t, entity.PriorityLow, PriorityFor(0))
}

func TestUnknownCompetitionScoresAsLocal(t *testing.T) {
	s := fixedScorer()

	local := entity.Prospect{EstimatedReach: 150, CompetitionLevel: entity.CompetitionLocal}
	weird := entity.Prospect{EstimatedReach: 150, CompetitionLevel: "Intergalactic"}

	assert.Equal(t, s.Score(local), s.Score(weird))
}

func TestDistinctAgeGroupsOnly(t *testing.T) {
	s := fixedScorer()

	dupes := entity.Prospect{AgeGroups: []string{"Youth", "Youth", "Youth"}}
	single := entity.Prospect{AgeGroups: []string{"Youth"}}

	assert.Equal(t, s.Score(single), s.Score(dupes))
}

func TestReferenceProspectScore(t *testing.T) {
	s := fixedScorer()
	p := entity.Prospect{
		Name:             "Ironwood United Soccer",
		EstimatedReach:   450,
		CompetitionLevel: entity.CompetitionNational,
		FacilityCount:    3,
		FoundedYear:      2008,
		AgeGroups:        []string{"Youth", "HS", "College Prep"},
	}

	lead := s.ScoreLead(p)
	assert.Equal(t, 92, lead.Score)
	assert.Equal(t, entity.PriorityHigh, lead.Priority)
	assert.False(t, lead.QualifiedAt.IsZero())
}

func TestEstimateDealValueDeterministic(t *testing.T) {
	s := fixedScorer()
	p := entity.Prospect{
		EstimatedReach:   450,
		CompetitionLevel: entity.CompetitionNational,
		FacilityCount:    3,
		FoundedYear:      2008,
	}

	first := s.EstimateDealValue(p)
	assert.Equal(t, first, s.EstimateDealValue(p))
	assert.Greater(t, first, 0)

	// 18 years in operation earns the stability multiplier.
	young := p
	young.FoundedYear = 2025
	assert.Greater(t, first, s.EstimateDealValue(young))
}

func TestEstimateDealValueFloor(t *testing.T) {
	s := fixedScorer()
	tiny := entity.Prospect{EstimatedReach: 10, CompetitionLevel: entity.CompetitionLocal}

	assert.Equal(t, minimumDealValue, s.EstimateDealValue(tiny))
}
