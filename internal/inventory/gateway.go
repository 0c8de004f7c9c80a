package inventory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Gateway bundles the per-category fetchers behind one read-mostly facade.
// All queries are read-only; the single write path is PutStatus.
type Gateway struct {
	compute *ComputeFetcher
	asg     *AutoscalingFetcher
	storage *StorageFetcher
	network *NetworkFetcher
	params  *ParameterFetcher
	metrics *MetricsFetcher
}

// NewGateway creates a gateway backed by real AWS service clients.
func NewGateway(client *Client, objectSampleLimit int) *Gateway {
	cfg := client.Config()
	ec2Client := ec2.NewFromConfig(cfg)

	return &Gateway{
		compute: NewComputeFetcher(ec2Client),
		asg:     NewAutoscalingFetcher(autoscaling.NewFromConfig(cfg)),
		storage: NewStorageFetcher(s3.NewFromConfig(cfg), objectSampleLimit),
		network: NewNetworkFetcher(ec2Client),
		params:  NewParameterFetcher(ssm.NewFromConfig(cfg)),
		metrics: NewMetricsFetcher(cloudwatch.NewFromConfig(cfg)),
	}
}

// ProjectInstances returns running instances tagged with project/environment.
func (g *Gateway) ProjectInstances(ctx context.Context, project, environment string) ([]ComputeInstance, error) {
	return g.compute.ProjectInstances(ctx, project, environment)
}

// AllInstances returns every instance regardless of tags.
func (g *Gateway) AllInstances(ctx context.Context) ([]ComputeInstance, error) {
	return g.compute.AllInstances(ctx)
}

// InstanceCPU returns per-instance CPU utilization series at daily
// granularity over a trailing lookback window.
func (g *Gateway) InstanceCPU(ctx context.Context, ids []string, lookbackDays int) (map[string]MetricSeries, error) {
	return g.metrics.FetchSeries(ctx, "AWS/EC2", "CPUUtilization", "InstanceId", ids, lookbackDays)
}

// GroupsByTag returns Auto Scaling Groups carrying the given tag.
func (g *Gateway) GroupsByTag(ctx context.Context, key, value string) ([]AutoscalingGroup, error) {
	return g.asg.GroupsByTag(ctx, key, value)
}

// Bucket returns a snapshot of the named bucket.
func (g *Gateway) Bucket(ctx context.Context, name string) (StorageBucket, error) {
	return g.storage.Bucket(ctx, name)
}

// Topology returns the VPC topology for one workspace.
func (g *Gateway) Topology(ctx context.Context, vpcID, workspace string) (VpcTopology, error) {
	return g.network.Topology(ctx, vpcID, workspace)
}

// Parameters returns the workspace's parameter-store state.
func (g *Gateway) Parameters(ctx context.Context, project, workspace string) (ParameterState, error) {
	return g.params.Parameters(ctx, project, workspace)
}

// PutStatus overwrites the workspace status parameter.
func (g *Gateway) PutStatus(ctx context.Context, project, workspace, value string) error {
	return g.params.PutStatus(ctx, project, workspace, value)
}
