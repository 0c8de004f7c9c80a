package checks

import "context"

// AnomalyCheck is an advisory-only heuristic pass. There is no live cost
// explorer integration; the one active rule flags invocations outside the
// business-hours window as shutdown opportunities.
type AnomalyCheck struct {
	cfg Config
}

// NewAnomalyCheck creates the cost-anomaly heuristic check.
func NewAnomalyCheck(cfg Config) *AnomalyCheck {
	return &AnomalyCheck{cfg: cfg}
}

// Category returns the finding-set category.
func (c *AnomalyCheck) Category() string {
	return "Cost Anomaly Detection"
}

// Run emits the standing advisories plus the off-hours heuristic.
func (c *AnomalyCheck) Run(_ context.Context) *FindingSet {
	set := NewFindingSet(c.Category())

	set.Recommend("Review AWS Cost Explorer for detailed cost breakdown")
	set.Recommend("Set up AWS Budgets for proactive cost monitoring")
	set.Recommend("Consider Reserved Instances for predictable workloads")

	hour := c.cfg.now().UTC().Hour()
	if hour < c.cfg.BusinessHoursStart || hour > c.cfg.BusinessHoursEnd {
		set.Flag("Running outside business hours - opportunity for shutdown")
		set.PotentialSavings += c.cfg.SavingsOffHours
	} else {
		set.Info("Cost analysis complete")
	}
	return set
}
