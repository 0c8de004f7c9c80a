package checks

import (
	"context"

	"github.com/ppiankov/costspectre/internal/inventory"
)

// ParameterInventory is the inventory surface the parameter check needs.
type ParameterInventory interface {
	Parameters(ctx context.Context, project, workspace string) (inventory.ParameterState, error)
}

// ParameterCheck reports the workspace's parameter-store state. An absent
// config parameter is reported, never treated as a failure.
type ParameterCheck struct {
	inv       ParameterInventory
	project   string
	workspace string
}

// NewParameterCheck creates the parameter-store state check.
func NewParameterCheck(inv ParameterInventory, project, workspace string) *ParameterCheck {
	return &ParameterCheck{inv: inv, project: project, workspace: workspace}
}

// Category returns the finding-set category.
func (c *ParameterCheck) Category() string {
	return "Parameter Store State"
}

// Run reports the config parameter and sibling entries for the workspace.
func (c *ParameterCheck) Run(ctx context.Context) *FindingSet {
	set := NewFindingSet(c.Category())

	state, err := c.inv.Parameters(ctx, c.project, c.workspace)
	if err != nil {
		set.Fail("checking parameter store", err)
		return set
	}

	if state.ConfigExists {
		set.Info("Workspace config parameter present at %s (version %d)", inventory.ConfigPath(c.project, c.workspace), state.ConfigVersion)
		if !state.ConfigValid {
			set.Flag("Workspace config parameter is not valid JSON")
			set.Recommend("Repair the workspace config parameter at %s", inventory.ConfigPath(c.project, c.workspace))
		}
	} else {
		set.Info("No workspace config parameter at %s", inventory.ConfigPath(c.project, c.workspace))
	}

	if n := len(state.Parameters); n > 0 {
		set.Info("%d parameters stored under /%s/%s/", n, c.project, c.workspace)
	}
	return set
}
