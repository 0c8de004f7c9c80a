// Package advisor cross-references resource snapshots against workspace-tier
// policy to produce holistic recommendations. Rules are independent and
// order-stable; the advisor holds no state, so identical input always yields
// the identical list.
package advisor

import (
	"github.com/ppiankov/costspectre/internal/health"
	"github.com/ppiankov/costspectre/internal/inventory"
)

// prodMinInstances is the instance floor recommended for production.
const prodMinInstances = 3

// Recommend evaluates the tier-keyed rules against whichever resource
// sections are present. Nil sections are skipped. Overlap with per-check
// recommendations is acceptable; no deduplication happens here.
func Recommend(vpc *inventory.VpcTopology, groups []inventory.AutoscalingGroup, bucket *inventory.StorageBucket, tier health.Tier) []string {
	recommendations := []string{}

	if vpc != nil {
		hasNAT := len(vpc.NatGateways) > 0
		switch {
		case tier.Ephemeral() && hasNAT:
			recommendations = append(recommendations, "Consider removing NAT Gateways in dev/test environments to reduce costs")
		case tier == health.TierProd && !hasNAT:
			recommendations = append(recommendations, "Production environment should have NAT Gateways for private subnet internet access")
		}
	}

	if groups != nil {
		total := 0
		for _, asg := range groups {
			total += asg.CurrentInstances
		}
		switch {
		case tier.Ephemeral() && total > 2:
			recommendations = append(recommendations, "Consider reducing instance count in dev/test environments for cost optimization")
		case tier == health.TierProd && total < prodMinInstances:
			recommendations = append(recommendations, "Production environment should have at least 3 instances for high availability")
		}
	}

	if bucket != nil {
		versioned := bucket.Versioning == "Enabled"
		switch {
		case tier == health.TierProd && !versioned:
			recommendations = append(recommendations, "Enable S3 versioning for production environments")
		case tier.Ephemeral() && versioned:
			recommendations = append(recommendations, "Consider disabling S3 versioning in dev/test to reduce storage costs")
		}
	}

	if tier == health.TierDefault {
		recommendations = append(recommendations, "Consider creating dedicated workspaces (dev, staging, prod) instead of using default")
	}

	return recommendations
}
