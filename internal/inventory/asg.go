package inventory

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
)

// AutoscalingAPI is the minimal interface for Auto Scaling Group queries.
type AutoscalingAPI interface {
	DescribeAutoScalingGroups(ctx context.Context, input *autoscaling.DescribeAutoScalingGroupsInput, opts ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
	DescribeScheduledActions(ctx context.Context, input *autoscaling.DescribeScheduledActionsInput, opts ...func(*autoscaling.Options)) (*autoscaling.DescribeScheduledActionsOutput, error)
}

// AutoscalingFetcher queries Auto Scaling Group inventory.
type AutoscalingFetcher struct {
	client AutoscalingAPI
}

// NewAutoscalingFetcher creates a fetcher for Auto Scaling Groups.
func NewAutoscalingFetcher(client AutoscalingAPI) *AutoscalingFetcher {
	return &AutoscalingFetcher{client: client}
}

// GroupsByTag returns the groups carrying the given tag key/value.
// The API has no server-side tag filter for groups, so filtering happens here.
// No matching groups is a normal empty result.
func (f *AutoscalingFetcher) GroupsByTag(ctx context.Context, key, value string) ([]AutoscalingGroup, error) {
	var groups []AutoscalingGroup

	paginator := autoscaling.NewDescribeAutoScalingGroupsPaginator(f.client, &autoscaling.DescribeAutoScalingGroupsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe auto scaling groups: %w", err)
		}

		for _, asg := range page.AutoScalingGroups {
			tags := asgTagsToMap(asg.Tags)
			if tags[key] != value {
				continue
			}

			group := AutoscalingGroup{
				Name:              deref(asg.AutoScalingGroupName),
				MinSize:           int(awssdk.ToInt32(asg.MinSize)),
				MaxSize:           int(awssdk.ToInt32(asg.MaxSize)),
				DesiredCapacity:   int(awssdk.ToInt32(asg.DesiredCapacity)),
				CurrentInstances:  len(asg.Instances),
				AvailabilityZones: asg.AvailabilityZones,
				Tags:              tags,
			}
			for _, inst := range asg.Instances {
				if deref(inst.HealthStatus) == "Healthy" {
					group.HealthyInstances++
				}
			}
			if asg.LaunchTemplate != nil {
				group.LaunchTemplate = deref(asg.LaunchTemplate.LaunchTemplateName)
			}

			scheduled, err := f.hasScheduledActions(ctx, group.Name)
			if err != nil {
				return nil, err
			}
			group.HasScheduledActions = scheduled

			groups = append(groups, group)
		}
	}
	return groups, nil
}

func (f *AutoscalingFetcher) hasScheduledActions(ctx context.Context, name string) (bool, error) {
	out, err := f.client.DescribeScheduledActions(ctx, &autoscaling.DescribeScheduledActionsInput{
		AutoScalingGroupName: awssdk.String(name),
	})
	if err != nil {
		return false, fmt.Errorf("describe scheduled actions for %s: %w", name, err)
	}
	return len(out.ScheduledUpdateGroupActions) > 0, nil
}

func asgTagsToMap(tags []asgtypes.TagDescription) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[deref(t.Key)] = deref(t.Value)
	}
	return m
}
