package checks

import (
	"context"
	"fmt"
	"time"
)

// Kind classifies a finding without implying severity.
type Kind string

const (
	KindInformational Kind = "informational"
	KindActionable    Kind = "actionable"
)

// Finding is one observation produced by a check.
type Finding struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// FindingSet holds everything one check produced. Findings keep check
// evaluation order; PotentialSavings accumulates across triggers within the
// check and is never negative.
type FindingSet struct {
	Category         string    `json:"category"`
	Findings         []Finding `json:"findings"`
	Recommendations  []string  `json:"recommendations"`
	PotentialSavings float64   `json:"potential_savings"`
}

// NewFindingSet creates an empty set for a category. Slices are non-nil so
// the serialized shape is fixed.
func NewFindingSet(category string) *FindingSet {
	return &FindingSet{
		Category:        category,
		Findings:        []Finding{},
		Recommendations: []string{},
	}
}

// Info appends an informational finding.
func (s *FindingSet) Info(format string, args ...any) {
	s.Findings = append(s.Findings, Finding{
		Message: fmt.Sprintf(format, args...),
		Kind:    KindInformational,
	})
}

// Flag appends an actionable finding.
func (s *FindingSet) Flag(format string, args ...any) {
	s.Findings = append(s.Findings, Finding{
		Message: fmt.Sprintf(format, args...),
		Kind:    KindActionable,
	})
}

// Recommend appends a recommendation.
func (s *FindingSet) Recommend(format string, args ...any) {
	s.Recommendations = append(s.Recommendations, fmt.Sprintf(format, args...))
}

// Fail records an internal failure as a finding. Checks never let errors
// escape their boundary; a failed check degrades to this single observation.
func (s *FindingSet) Fail(action string, err error) {
	s.Info("Error %s: %v", action, err)
}

// Check is one resource-category assessment. Run always returns a well-formed
// FindingSet with the category preserved, no matter what the inventory did.
type Check interface {
	Category() string
	Run(ctx context.Context) *FindingSet
}

// Config carries the tuning constants shared by the check modules.
// The savings figures are heuristic estimates, not billing data.
type Config struct {
	LookbackDays       int
	LowCPUThreshold    float64
	HighCPUThreshold   float64
	ObjectAgeDays      int
	BusinessHoursStart int
	BusinessHoursEnd   int
	RequiredTags       []string
	BurstablePrefixes  []string
	SavingsDownsize    float64
	SavingsScheduled   float64
	SavingsLifecycle   float64
	SavingsOffHours    float64

	// Now is the clock used for age and hour-of-day rules; nil means time.Now.
	Now func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
