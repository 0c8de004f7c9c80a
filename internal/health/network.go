package health

import "github.com/ppiankov/costspectre/internal/inventory"

// minSubnetIPs is the available-IP count below which a subnet is flagged.
const minSubnetIPs = 10

// ValidateNetwork classifies a VPC topology snapshot.
func ValidateNetwork(topo inventory.VpcTopology) Verdict {
	verdict := NewVerdict()

	if topo.State != "available" {
		verdict.AddIssue("VPC state is %q, expected 'available'", topo.State)
	}

	subnetTypes := map[string]bool{}
	for _, subnet := range topo.Subnets {
		subnetTypes[subnet.Type] = true
		if subnet.AvailableIPs < minSubnetIPs {
			verdict.AddWarning("Subnet %s has low available IPs: %d", subnet.ID, subnet.AvailableIPs)
		}
	}

	for _, expected := range []string{"public", "private"} {
		if !subnetTypes[expected] {
			verdict.AddWarning("No %s subnets found", expected)
		}
	}

	return verdict
}
