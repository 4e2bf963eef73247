package entity

import (
	"errors"
	"time"
)

// Priority buckets derived from the qualification score.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Competition levels, strongest first.
const (
	CompetitionNational = "National"
	CompetitionState    = "State"
	CompetitionRegional = "Regional"
	CompetitionLocal    = "Local"
)

// ContactInfo holds whatever the research step managed to find.
type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// Prospect is a raw researched organization. Immutable once produced
// by the research step.
type Prospect struct {
	Name             string      `json:"name"`
	Sport            string      `json:"sport"`
	Location         string      `json:"location"`
	EstimatedReach   int         `json:"estimated_reach"`
	FacilityCount    int         `json:"facility_count"`
	FoundedYear      int         `json:"founded_year"`
	CompetitionLevel string      `json:"competition_level"` // National, State, Regional, Local
	AgeGroups        []string    `json:"age_groups"`
	Contact          ContactInfo `json:"contact"`
	KeyPersonnel     []string    `json:"key_personnel,omitempty"`
}

func (p *Prospect) Validate() error {
	if p.Name == "" {
		return errors.New("prospect name is required")
	}
	if p.EstimatedReach < 0 {
		return errors.New("estimated_reach cannot be negative")
	}
	if p.FacilityCount < 0 {
		return errors.New("facility_count cannot be negative")
	}
	return nil
}

// ScoredLead is a Prospect annotated by the scoring engine. Re-scoring
// produces a new ScoredLead, never mutates an existing one.
type ScoredLead struct {
	Prospect    Prospect  `json:"prospect"`
	Score       int       `json:"score"` // 0-100
	Priority    string    `json:"priority"`
	QualifiedAt time.Time `json:"qualified_at"`
}

func NewScoredLead(prospect Prospect, score int, priority string) *ScoredLead {
	return &ScoredLead{
		Prospect:    prospect,
		Score:       score,
		Priority:    priority,
		QualifiedAt: time.Now(),
	}
}
