package health

// Tier selects the policy a workspace is validated against. Workspace names
// come from untrusted tags, so anything unrecognized maps to the neutral
// tier, which matches no tier-specific rule.
type Tier string

const (
	TierDev     Tier = "dev"
	TierTest    Tier = "test"
	TierStaging Tier = "staging"
	TierProd    Tier = "prod"
	TierDefault Tier = "default"
	TierNeutral Tier = ""
)

// ParseTier maps a workspace name to its policy tier.
func ParseTier(workspace string) Tier {
	switch workspace {
	case "dev", "test", "staging", "prod", "default":
		return Tier(workspace)
	default:
		return TierNeutral
	}
}

// Ephemeral reports whether the tier is a short-lived environment where cost
// beats availability.
func (t Tier) Ephemeral() bool {
	return t == TierDev || t == TierTest
}
