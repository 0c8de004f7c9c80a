package checks

import (
	"context"
	"strings"

	"github.com/ppiankov/costspectre/internal/inventory"
)

// UtilizationInventory is the inventory surface the utilization check needs.
type UtilizationInventory interface {
	ProjectInstances(ctx context.Context, project, environment string) ([]inventory.ComputeInstance, error)
	InstanceCPU(ctx context.Context, ids []string, lookbackDays int) (map[string]inventory.MetricSeries, error)
}

// UtilizationCheck flags running instances whose trailing CPU average is
// below the low threshold or above the high threshold. Instances with no
// datapoints are skipped silently.
type UtilizationCheck struct {
	inv         UtilizationInventory
	cfg         Config
	project     string
	environment string
}

// NewUtilizationCheck creates the compute utilization check.
func NewUtilizationCheck(inv UtilizationInventory, cfg Config, project, environment string) *UtilizationCheck {
	return &UtilizationCheck{inv: inv, cfg: cfg, project: project, environment: environment}
}

// Category returns the finding-set category.
func (c *UtilizationCheck) Category() string {
	return "EC2 Instance Utilization"
}

// Run assesses every running project instance.
func (c *UtilizationCheck) Run(ctx context.Context) *FindingSet {
	set := NewFindingSet(c.Category())

	instances, err := c.inv.ProjectInstances(ctx, c.project, c.environment)
	if err != nil {
		set.Fail("checking instance utilization", err)
		return set
	}

	series := map[string]inventory.MetricSeries{}
	if len(instances) > 0 {
		ids := make([]string, 0, len(instances))
		for _, inst := range instances {
			ids = append(ids, inst.ID)
		}
		series, err = c.inv.InstanceCPU(ctx, ids, c.cfg.LookbackDays)
		if err != nil {
			set.Fail("checking instance utilization", err)
			return set
		}
	}

	for _, inst := range instances {
		cpu, ok := series[inst.ID]
		if !ok || cpu.Empty() {
			continue
		}

		avg := cpu.Average()
		switch {
		case avg < c.cfg.LowCPUThreshold:
			set.Flag("Instance %s (%s) has low CPU utilization: %.1f%%", inst.ID, inst.Type, avg)
			set.Recommend("Consider downsizing %s or using Spot instances", inst.ID)
			if c.burstableSmall(inst.Type) {
				set.PotentialSavings += c.cfg.SavingsDownsize
			}
		case avg > c.cfg.HighCPUThreshold:
			set.Flag("Instance %s (%s) has high CPU utilization: %.1f%%", inst.ID, inst.Type, avg)
			set.Recommend("Consider upsizing %s or adding more instances", inst.ID)
		}
	}

	if len(set.Findings) == 0 {
		set.Info("All instances have appropriate utilization levels")
	}
	return set
}

func (c *UtilizationCheck) burstableSmall(instanceType string) bool {
	for _, prefix := range c.cfg.BurstablePrefixes {
		if strings.HasPrefix(instanceType, prefix) {
			return true
		}
	}
	return false
}
