package health

import "github.com/ppiankov/costspectre/internal/inventory"

// ValidateAutoscaling classifies the workspace's Auto Scaling Groups.
// Zero matching groups is unhealthy; everything else at most warns.
func ValidateAutoscaling(groups []inventory.AutoscalingGroup, tier Tier) Verdict {
	verdict := NewVerdict()

	if len(groups) == 0 {
		verdict.AddIssue("No Auto Scaling Groups found for this workspace")
		return verdict
	}

	for _, asg := range groups {
		if asg.HealthyInstances < asg.CurrentInstances {
			verdict.AddWarning("ASG %s has unhealthy instances: %d", asg.Name, asg.CurrentInstances-asg.HealthyInstances)
		}
		if asg.CurrentInstances != asg.DesiredCapacity {
			verdict.AddWarning("ASG %s current instances (%d) doesn't match desired (%d)", asg.Name, asg.CurrentInstances, asg.DesiredCapacity)
		}

		if tier == TierProd {
			if asg.MinSize < 2 {
				verdict.AddWarning("Production ASG %s should have min_size >= 2 for HA", asg.Name)
			}
			if len(asg.AvailabilityZones) < 2 {
				verdict.AddWarning("Production ASG %s should span multiple AZs", asg.Name)
			}
		}
	}

	return verdict
}
