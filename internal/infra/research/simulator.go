package research

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/xavierca1/leadflow/internal/entity"
)

// Simulator stands in for the real research provider. It fabricates
// plausible sports-organization prospects so the rest of the pipeline
// can run end to end without external calls.
type Simulator struct {
	rng *rand.Rand

	// Delay between generated prospects, mimicking the rate-limit
	// courtesy pauses a real scraper would take.
	Delay time.Duration
}

func NewSimulator() *Simulator {
	return &Simulator{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Delay: 200 * time.Millisecond,
	}
}

var (
	sports = []string{"Soccer", "Basketball", "Volleyball", "Swimming", "Track & Field", "Baseball"}
	cities = []string{"Austin, TX", "Columbus, OH", "Raleigh, NC", "Tampa, FL", "Boise, ID", "Mesa, AZ"}
	levels = []string{
		entity.CompetitionNational,
		entity.CompetitionState,
		entity.CompetitionRegional,
		entity.CompetitionLocal,
	}
	groupPool = []string{"Youth", "Middle School", "High School", "College Prep", "Adult"}
	orgShapes = []string{"%s Elite %s Academy", "%s %s Club", "%s United %s", "%s %s Association"}
	orgNames  = []string{"Summit", "Velocity", "Ironwood", "Northside", "Pinnacle", "Redline", "Harbor"}
)

func (s *Simulator) Research(ctx context.Context, batchSize int) ([]entity.Prospect, error) {
	prospects := make([]entity.Prospect, 0, batchSize)

	for i := 0; i < batchSize; i++ {
		select {
		case <-ctx.Done():
			return prospects, ctx.Err()
		case <-time.After(s.Delay):
		}

		sport := sports[s.rng.Intn(len(sports))]
		name := fmt.Sprintf(orgShapes[s.rng.Intn(len(orgShapes))],
			orgNames[s.rng.Intn(len(orgNames))], sport)

		groups := make([]string, 0, 3)
		for _, g := range groupPool {
			if s.rng.Intn(2) == 0 {
				groups = append(groups, g)
			}
		}
		if len(groups) == 0 {
			groups = append(groups, "Youth")
		}

		prospects = append(prospects, entity.Prospect{
			Name:             name,
			Sport:            sport,
			Location:         cities[s.rng.Intn(len(cities))],
			EstimatedReach:   50 + s.rng.Intn(500),
			FacilityCount:    1 + s.rng.Intn(8),
			FoundedYear:      time.Now().Year() - s.rng.Intn(30),
			CompetitionLevel: levels[s.rng.Intn(len(levels))],
			AgeGroups:        groups,
			Contact: entity.ContactInfo{
				Email: fmt.Sprintf("info@%s.example.com", slugify(name)),
			},
			KeyPersonnel: []string{"Program Director"},
		})
	}

	return prospects, nil
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
