package checks

import (
	"context"
	"strings"

	"github.com/ppiankov/costspectre/internal/inventory"
)

// TaggingInventory is the inventory surface the tagging check needs.
type TaggingInventory interface {
	AllInstances(ctx context.Context) ([]inventory.ComputeInstance, error)
}

// TaggingCheck verifies every instance carries the required cost-allocation
// tags. The sweep is account-wide, not project-scoped, so untagged resources
// cannot hide from it.
type TaggingCheck struct {
	inv TaggingInventory
	cfg Config
}

// NewTaggingCheck creates the tagging compliance check.
func NewTaggingCheck(inv TaggingInventory, cfg Config) *TaggingCheck {
	return &TaggingCheck{inv: inv, cfg: cfg}
}

// Category returns the finding-set category.
func (c *TaggingCheck) Category() string {
	return "Tagging Compliance"
}

// Run reports, per instance, exactly which required tags are missing, in
// required-tag order.
func (c *TaggingCheck) Run(ctx context.Context) *FindingSet {
	set := NewFindingSet(c.Category())

	instances, err := c.inv.AllInstances(ctx)
	if err != nil {
		set.Fail("checking tagging compliance", err)
		return set
	}

	compliant := true
	for _, inst := range instances {
		var missing []string
		for _, required := range c.cfg.RequiredTags {
			if _, ok := inst.Tags[required]; !ok {
				missing = append(missing, required)
			}
		}
		if len(missing) > 0 {
			compliant = false
			set.Flag("Instance %s missing tags: %s", inst.ID, strings.Join(missing, ", "))
		}
	}

	if compliant {
		set.Info("All resources have proper cost allocation tags")
	} else {
		set.Recommend("Apply missing cost allocation tags to resources")
	}
	return set
}
