package inventory

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// ComputeAPI is the minimal interface for EC2 instance queries.
type ComputeAPI interface {
	DescribeInstances(ctx context.Context, input *ec2.DescribeInstancesInput, opts ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// ComputeFetcher queries EC2 instance inventory.
type ComputeFetcher struct {
	client ComputeAPI
}

// NewComputeFetcher creates a fetcher for EC2 instances.
func NewComputeFetcher(client ComputeAPI) *ComputeFetcher {
	return &ComputeFetcher{client: client}
}

// ProjectInstances returns running instances tagged with the given project
// and environment. No matching instances is a normal empty result.
func (f *ComputeFetcher) ProjectInstances(ctx context.Context, project, environment string) ([]ComputeInstance, error) {
	return f.list(ctx, []ec2types.Filter{
		{Name: awssdk.String("tag:Project"), Values: []string{project}},
		{Name: awssdk.String("tag:Environment"), Values: []string{environment}},
		{Name: awssdk.String("instance-state-name"), Values: []string{"running"}},
	})
}

// AllInstances returns every instance in the account regardless of tags,
// for compliance-style sweeps.
func (f *ComputeFetcher) AllInstances(ctx context.Context) ([]ComputeInstance, error) {
	return f.list(ctx, nil)
}

func (f *ComputeFetcher) list(ctx context.Context, filters []ec2types.Filter) ([]ComputeInstance, error) {
	var instances []ComputeInstance

	paginator := ec2.NewDescribeInstancesPaginator(f.client, &ec2.DescribeInstancesInput{
		Filters: filters,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				snapshot := ComputeInstance{
					ID:   deref(inst.InstanceId),
					Type: string(inst.InstanceType),
					Tags: ec2TagsToMap(inst.Tags),
				}
				if inst.State != nil {
					snapshot.State = string(inst.State.Name)
				}
				instances = append(instances, snapshot)
			}
		}
	}
	return instances, nil
}

func ec2TagsToMap(tags []ec2types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[deref(t.Key)] = deref(t.Value)
	}
	return m
}
