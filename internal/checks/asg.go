package checks

import (
	"context"

	"github.com/ppiankov/costspectre/internal/inventory"
)

// EfficiencyInventory is the inventory surface the autoscaling check needs.
type EfficiencyInventory interface {
	GroupsByTag(ctx context.Context, key, value string) ([]inventory.AutoscalingGroup, error)
}

// EfficiencyCheck reviews Auto Scaling Group capacity and scheduled scaling
// for the project's groups.
type EfficiencyCheck struct {
	inv     EfficiencyInventory
	cfg     Config
	project string
}

// NewEfficiencyCheck creates the autoscaling efficiency check.
func NewEfficiencyCheck(inv EfficiencyInventory, cfg Config, project string) *EfficiencyCheck {
	return &EfficiencyCheck{inv: inv, cfg: cfg, project: project}
}

// Category returns the finding-set category.
func (c *EfficiencyCheck) Category() string {
	return "Auto Scaling Group Efficiency"
}

// Run assesses every project-tagged group.
func (c *EfficiencyCheck) Run(ctx context.Context) *FindingSet {
	set := NewFindingSet(c.Category())

	groups, err := c.inv.GroupsByTag(ctx, "Project", c.project)
	if err != nil {
		set.Fail("checking ASG efficiency", err)
		return set
	}
	if len(groups) == 0 {
		set.Info("No Auto Scaling Groups found for project %s", c.project)
		return set
	}

	for _, asg := range groups {
		set.Info("ASG %s: Desired=%d, Min=%d, Max=%d", asg.Name, asg.DesiredCapacity, asg.MinSize, asg.MaxSize)

		if asg.DesiredCapacity == asg.MaxSize && asg.MaxSize > 2 {
			set.Recommend("ASG %s might be oversized - review max capacity", asg.Name)
		}

		if asg.HasScheduledActions {
			set.Info("ASG %s has scheduled scaling configured", asg.Name)
		} else {
			set.Recommend("Consider adding scheduled scaling to ASG %s for cost savings", asg.Name)
			set.PotentialSavings += c.cfg.SavingsScheduled
		}
	}
	return set
}
