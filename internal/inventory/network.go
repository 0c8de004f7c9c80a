package inventory

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// NetworkAPI is the minimal interface for VPC topology queries.
type NetworkAPI interface {
	DescribeVpcs(ctx context.Context, input *ec2.DescribeVpcsInput, opts ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, input *ec2.DescribeSubnetsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(ctx context.Context, input *ec2.DescribeSecurityGroupsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	DescribeNatGateways(ctx context.Context, input *ec2.DescribeNatGatewaysInput, opts ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
}

// NetworkFetcher queries VPC topology for one workspace.
type NetworkFetcher struct {
	client NetworkAPI
}

// NewNetworkFetcher creates a fetcher for VPC topology.
func NewNetworkFetcher(client NetworkAPI) *NetworkFetcher {
	return &NetworkFetcher{client: client}
}

// Topology returns the VPC plus its workspace-tagged subnets, security
// groups, and NAT gateways.
func (f *NetworkFetcher) Topology(ctx context.Context, vpcID, workspace string) (VpcTopology, error) {
	topo := VpcTopology{VpcID: vpcID}

	vpcs, err := f.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{vpcID}})
	if err != nil {
		return topo, fmt.Errorf("describe vpc %s: %w", vpcID, err)
	}
	if len(vpcs.Vpcs) > 0 {
		topo.CidrBlock = deref(vpcs.Vpcs[0].CidrBlock)
		topo.State = string(vpcs.Vpcs[0].State)
	}

	workspaceFilter := []ec2types.Filter{
		{Name: awssdk.String("vpc-id"), Values: []string{vpcID}},
		{Name: awssdk.String("tag:Workspace"), Values: []string{workspace}},
	}

	subnets, err := f.client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{Filters: workspaceFilter})
	if err != nil {
		return topo, fmt.Errorf("describe subnets: %w", err)
	}
	for _, subnet := range subnets.Subnets {
		s := Subnet{
			ID:               deref(subnet.SubnetId),
			CidrBlock:        deref(subnet.CidrBlock),
			AvailabilityZone: deref(subnet.AvailabilityZone),
			AvailableIPs:     int(awssdk.ToInt32(subnet.AvailableIpAddressCount)),
			State:            string(subnet.State),
		}
		for _, tag := range subnet.Tags {
			if deref(tag.Key) == "Type" {
				s.Type = deref(tag.Value)
				break
			}
		}
		topo.Subnets = append(topo.Subnets, s)
	}

	groups, err := f.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{Filters: workspaceFilter})
	if err != nil {
		return topo, fmt.Errorf("describe security groups: %w", err)
	}
	for _, sg := range groups.SecurityGroups {
		topo.SecurityGroups = append(topo.SecurityGroups, SecurityGroup{
			ID:           deref(sg.GroupId),
			Name:         deref(sg.GroupName),
			Description:  deref(sg.Description),
			IngressRules: len(sg.IpPermissions),
			EgressRules:  len(sg.IpPermissionsEgress),
		})
	}

	gateways, err := f.client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{Filter: workspaceFilter})
	if err != nil {
		return topo, fmt.Errorf("describe nat gateways: %w", err)
	}
	for _, nat := range gateways.NatGateways {
		n := NatGateway{
			ID:       deref(nat.NatGatewayId),
			SubnetID: deref(nat.SubnetId),
			State:    string(nat.State),
		}
		if len(nat.NatGatewayAddresses) > 0 {
			n.PublicIP = deref(nat.NatGatewayAddresses[0].PublicIp)
		}
		topo.NatGateways = append(topo.NatGateways, n)
	}

	return topo, nil
}
