package engine

import (
	"time"

	"github.com/ppiankov/costspectre/internal/checks"
	"github.com/ppiankov/costspectre/internal/health"
	"github.com/ppiankov/costspectre/internal/inventory"
)

// AutoscalingSummary is the report view of the workspace's groups.
type AutoscalingSummary struct {
	Groups           []inventory.AutoscalingGroup `json:"auto_scaling_groups"`
	TotalInstances   int                          `json:"total_instances"`
	HealthyInstances int                          `json:"healthy_instances"`
}

// Resources holds the snapshot-derived sections of the report. A nil section
// means the category was not configured or could not be inspected.
type Resources struct {
	VPC         *inventory.VpcTopology    `json:"vpc,omitempty"`
	Autoscaling *AutoscalingSummary       `json:"autoscaling,omitempty"`
	Storage     *inventory.StorageBucket  `json:"s3,omitempty"`
	Parameters  *inventory.ParameterState `json:"ssm,omitempty"`
}

// Report is the full output of one invocation. It is assembled once and
// never mutated after Run returns it.
type Report struct {
	Timestamp       time.Time                 `json:"timestamp"`
	Project         string                    `json:"project"`
	Environment     string                    `json:"environment"`
	Workspace       string                    `json:"workspace"`
	Function        string                    `json:"function_name"`
	Resources       Resources                 `json:"resources"`
	FindingSets     []checks.FindingSet       `json:"optimizations"`
	HealthChecks    map[string]health.Verdict `json:"health_checks"`
	Recommendations []string                  `json:"recommendations"`
}

// TotalPotentialSavings sums the heuristic savings across all finding sets.
func (r *Report) TotalPotentialSavings() float64 {
	var total float64
	for _, set := range r.FindingSets {
		total += set.PotentialSavings
	}
	return total
}

// ResourceCounts is the condensed inventory tally persisted with the status.
type ResourceCounts struct {
	VPCSubnets        int `json:"vpc_subnets"`
	SecurityGroups    int `json:"security_groups"`
	AutoScalingGroups int `json:"auto_scaling_groups"`
	TotalInstances    int `json:"total_instances"`
}

// StatusSummary is the condensed projection of a Report written to the
// parameter store. Each run overwrites the previous value for the same
// (project, workspace) key.
type StatusSummary struct {
	Workspace            string         `json:"workspace"`
	LastCheck            time.Time      `json:"last_check"`
	OverallHealth        health.Status  `json:"overall_health"`
	ResourceCounts       ResourceCounts `json:"resource_counts"`
	RecommendationsCount int            `json:"recommendations_count"`
}

// Summarize derives the status summary from a finished report.
func Summarize(r *Report) StatusSummary {
	summary := StatusSummary{
		Workspace:            r.Workspace,
		LastCheck:            r.Timestamp,
		OverallHealth:        health.StatusHealthy,
		RecommendationsCount: len(r.Recommendations),
	}

	if r.Resources.VPC != nil {
		summary.ResourceCounts.VPCSubnets = len(r.Resources.VPC.Subnets)
		summary.ResourceCounts.SecurityGroups = len(r.Resources.VPC.SecurityGroups)
	}
	if r.Resources.Autoscaling != nil {
		summary.ResourceCounts.AutoScalingGroups = len(r.Resources.Autoscaling.Groups)
		summary.ResourceCounts.TotalInstances = r.Resources.Autoscaling.TotalInstances
	}

	for _, verdict := range r.HealthChecks {
		if verdict.Unhealthy() {
			summary.OverallHealth = health.StatusUnhealthy
			break
		}
	}
	return summary
}
