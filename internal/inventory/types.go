package inventory

import "time"

// ComputeInstance is a point-in-time view of one EC2 instance.
type ComputeInstance struct {
	ID    string            `json:"id"`
	Type  string            `json:"type"`
	State string            `json:"state"`
	Tags  map[string]string `json:"tags,omitempty"`
}

// MetricPoint is one datapoint of a metric series.
type MetricPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// MetricSeries holds ordered datapoints for one metric over a bounded window.
// An empty series means no datapoints were reported, which is a normal state.
type MetricSeries struct {
	Metric string        `json:"metric"`
	Points []MetricPoint `json:"points"`
}

// Empty reports whether the series has no datapoints.
func (s MetricSeries) Empty() bool {
	return len(s.Points) == 0
}

// Average returns the mean of all datapoint values, or 0 for an empty series.
func (s MetricSeries) Average() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	var total float64
	for _, p := range s.Points {
		total += p.Value
	}
	return total / float64(len(s.Points))
}

// AutoscalingGroup is a point-in-time view of one Auto Scaling Group.
type AutoscalingGroup struct {
	Name                string            `json:"name"`
	MinSize             int               `json:"min_size"`
	MaxSize             int               `json:"max_size"`
	DesiredCapacity     int               `json:"desired_capacity"`
	CurrentInstances    int               `json:"current_instances"`
	HealthyInstances    int               `json:"healthy_instances"`
	AvailabilityZones   []string          `json:"availability_zones"`
	LaunchTemplate      string            `json:"launch_template,omitempty"`
	HasScheduledActions bool              `json:"has_scheduled_actions"`
	Tags                map[string]string `json:"tags,omitempty"`
}

// StorageObject is one sampled object from a bucket listing.
type StorageObject struct {
	Key          string    `json:"key"`
	SizeBytes    int64     `json:"size_bytes"`
	LastModified time.Time `json:"last_modified"`
}

// LifecycleState describes a bucket's lifecycle configuration.
// Configured=false is an expected state, not a failure.
type LifecycleState struct {
	Configured bool `json:"configured"`
	RuleCount  int  `json:"rule_count"`
}

// StorageBucket is a point-in-time view of one S3 bucket.
// Exists=false means the bucket was not found; the remaining fields
// are only meaningful when it exists.
type StorageBucket struct {
	Name       string          `json:"name"`
	Exists     bool            `json:"exists"`
	Versioning string          `json:"versioning,omitempty"`
	Encryption string          `json:"encryption,omitempty"`
	Lifecycle  LifecycleState  `json:"lifecycle"`
	Objects    []StorageObject `json:"-"`
	// ObjectCount and TotalSizeBytes summarize the bounded sample in Objects.
	ObjectCount    int   `json:"object_count"`
	TotalSizeBytes int64 `json:"total_size_bytes"`
}

// Subnet is a point-in-time view of one VPC subnet.
type Subnet struct {
	ID               string `json:"subnet_id"`
	CidrBlock        string `json:"cidr_block"`
	AvailabilityZone string `json:"availability_zone"`
	AvailableIPs     int    `json:"available_ip_count"`
	State            string `json:"state"`
	Type             string `json:"type,omitempty"`
}

// SecurityGroup is a point-in-time view of one security group.
type SecurityGroup struct {
	ID           string `json:"group_id"`
	Name         string `json:"group_name"`
	Description  string `json:"description,omitempty"`
	IngressRules int    `json:"ingress_rules"`
	EgressRules  int    `json:"egress_rules"`
}

// NatGateway is a point-in-time view of one NAT gateway.
type NatGateway struct {
	ID       string `json:"nat_gateway_id"`
	SubnetID string `json:"subnet_id"`
	State    string `json:"state"`
	PublicIP string `json:"public_ip,omitempty"`
}

// VpcTopology is a point-in-time view of a VPC and its workspace-tagged
// networking resources.
type VpcTopology struct {
	VpcID          string          `json:"vpc_id"`
	CidrBlock      string          `json:"cidr_block,omitempty"`
	State          string          `json:"state,omitempty"`
	Subnets        []Subnet        `json:"subnets"`
	SecurityGroups []SecurityGroup `json:"security_groups"`
	NatGateways    []NatGateway    `json:"nat_gateways"`
}

// Parameter describes one parameter-store entry.
type Parameter struct {
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Version      int64     `json:"version"`
	LastModified time.Time `json:"last_modified"`
}

// ParameterState is a point-in-time view of a workspace's parameter-store
// entries. An absent config parameter is a valid, reported state.
type ParameterState struct {
	ConfigExists       bool           `json:"workspace_config_exists"`
	ConfigVersion      int64          `json:"config_version,omitempty"`
	ConfigLastModified time.Time      `json:"config_last_modified,omitzero"`
	ConfigData         map[string]any `json:"config_data,omitempty"`
	ConfigValid        bool           `json:"-"`
	Parameters         []Parameter    `json:"parameters"`
}
