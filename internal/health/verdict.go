package health

import "fmt"

// Status is the binary health classification of one resource category.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Verdict classifies one resource category. Any issue forces the status to
// unhealthy; warnings never affect it.
type Verdict struct {
	Status   Status   `json:"status"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// NewVerdict returns a healthy verdict with fixed serialized shape.
func NewVerdict() Verdict {
	return Verdict{
		Status:   StatusHealthy,
		Issues:   []string{},
		Warnings: []string{},
	}
}

// AddIssue records a blocking problem and downgrades the status.
func (v *Verdict) AddIssue(format string, args ...any) {
	v.Issues = append(v.Issues, fmt.Sprintf(format, args...))
	v.Status = StatusUnhealthy
}

// AddWarning records a non-blocking problem.
func (v *Verdict) AddWarning(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// Unhealthy reports whether the verdict carries any issue.
func (v Verdict) Unhealthy() bool {
	return v.Status == StatusUnhealthy
}
