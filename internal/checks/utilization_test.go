package checks

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/costspectre/internal/inventory"
)

type fakeUtilizationInventory struct {
	instances []inventory.ComputeInstance
	cpu       map[string]inventory.MetricSeries
	err       error
}

func (f *fakeUtilizationInventory) ProjectInstances(_ context.Context, _, _ string) ([]inventory.ComputeInstance, error) {
	return f.instances, f.err
}

func (f *fakeUtilizationInventory) InstanceCPU(_ context.Context, _ []string, _ int) (map[string]inventory.MetricSeries, error) {
	return f.cpu, nil
}

func testConfig() Config {
	return Config{
		LookbackDays:       7,
		LowCPUThreshold:    10,
		HighCPUThreshold:   80,
		ObjectAgeDays:      30,
		BusinessHoursStart: 8,
		BusinessHoursEnd:   18,
		RequiredTags:       []string{"Project", "Environment", "CostCenter", "Owner"},
		BurstablePrefixes:  []string{"t2.", "t3.", "t3a.", "t4g."},
		SavingsDownsize:    20,
		SavingsScheduled:   50,
		SavingsLifecycle:   30,
		SavingsOffHours:    25,
	}
}

func series(values ...float64) inventory.MetricSeries {
	s := inventory.MetricSeries{Metric: "CPUUtilization"}
	base := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		s.Points = append(s.Points, inventory.MetricPoint{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Value:     v,
		})
	}
	return s
}

func TestUtilizationCheck_LowCPUBurstable(t *testing.T) {
	inv := &fakeUtilizationInventory{
		instances: []inventory.ComputeInstance{{ID: "i-idle", Type: "t3.micro", State: "running"}},
		cpu:       map[string]inventory.MetricSeries{"i-idle": series(5, 5, 5)},
	}
	check := NewUtilizationCheck(inv, testConfig(), "demo", "dev")

	set := check.Run(context.Background())
	if len(set.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(set.Findings))
	}
	if set.Findings[0].Kind != KindActionable {
		t.Fatalf("expected actionable finding, got %s", set.Findings[0].Kind)
	}
	if !strings.Contains(set.Findings[0].Message, "low CPU utilization: 5.0%") {
		t.Fatalf("unexpected message: %q", set.Findings[0].Message)
	}
	if set.PotentialSavings != 20 {
		t.Fatalf("expected savings of exactly 20 for burstable instance, got %v", set.PotentialSavings)
	}
	if len(set.Recommendations) != 1 || !strings.Contains(set.Recommendations[0], "downsizing i-idle") {
		t.Fatalf("unexpected recommendations: %v", set.Recommendations)
	}
}

func TestUtilizationCheck_LowCPUNonBurstable(t *testing.T) {
	inv := &fakeUtilizationInventory{
		instances: []inventory.ComputeInstance{{ID: "i-idle", Type: "m5.large", State: "running"}},
		cpu:       map[string]inventory.MetricSeries{"i-idle": series(4)},
	}
	check := NewUtilizationCheck(inv, testConfig(), "demo", "dev")

	set := check.Run(context.Background())
	if len(set.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(set.Findings))
	}
	if set.PotentialSavings != 0 {
		t.Fatalf("non-burstable instances carry no savings estimate, got %v", set.PotentialSavings)
	}
}

func TestUtilizationCheck_HighCPU(t *testing.T) {
	inv := &fakeUtilizationInventory{
		instances: []inventory.ComputeInstance{{ID: "i-hot", Type: "t3.small", State: "running"}},
		cpu:       map[string]inventory.MetricSeries{"i-hot": series(85, 85)},
	}
	check := NewUtilizationCheck(inv, testConfig(), "demo", "dev")

	set := check.Run(context.Background())
	if len(set.Findings) != 1 || !strings.Contains(set.Findings[0].Message, "high CPU utilization") {
		t.Fatalf("expected high-utilization finding, got %+v", set.Findings)
	}
	// High utilization is a cost-increasing signal: never a savings estimate
	if set.PotentialSavings != 0 {
		t.Fatalf("expected no savings, got %v", set.PotentialSavings)
	}
}

func TestUtilizationCheck_ModerateCPUIgnored(t *testing.T) {
	inv := &fakeUtilizationInventory{
		instances: []inventory.ComputeInstance{{ID: "i-fine", Type: "t3.small", State: "running"}},
		cpu:       map[string]inventory.MetricSeries{"i-fine": series(50)},
	}
	check := NewUtilizationCheck(inv, testConfig(), "demo", "dev")

	set := check.Run(context.Background())
	if len(set.Findings) != 1 || set.Findings[0].Kind != KindInformational {
		t.Fatalf("expected only the all-appropriate finding, got %+v", set.Findings)
	}
}

func TestUtilizationCheck_NoDatapointsSkipped(t *testing.T) {
	inv := &fakeUtilizationInventory{
		instances: []inventory.ComputeInstance{{ID: "i-new", Type: "t3.micro", State: "running"}},
		cpu:       map[string]inventory.MetricSeries{"i-new": {}},
	}
	check := NewUtilizationCheck(inv, testConfig(), "demo", "dev")

	set := check.Run(context.Background())
	if len(set.Findings) != 1 || !strings.Contains(set.Findings[0].Message, "appropriate utilization") {
		t.Fatalf("instances without datapoints must be skipped silently, got %+v", set.Findings)
	}
	if set.PotentialSavings != 0 {
		t.Fatalf("expected no savings, got %v", set.PotentialSavings)
	}
}

func TestUtilizationCheck_EmptyInventory(t *testing.T) {
	check := NewUtilizationCheck(&fakeUtilizationInventory{}, testConfig(), "demo", "dev")

	set := check.Run(context.Background())
	if set.Category != "EC2 Instance Utilization" {
		t.Fatalf("category must be preserved, got %q", set.Category)
	}
	if len(set.Findings) != 1 || set.Findings[0].Kind != KindInformational {
		t.Fatalf("expected single informational finding, got %+v", set.Findings)
	}
}

func TestUtilizationCheck_InventoryFailureBecomesFinding(t *testing.T) {
	inv := &fakeUtilizationInventory{err: fmt.Errorf("throttled")}
	check := NewUtilizationCheck(inv, testConfig(), "demo", "dev")

	set := check.Run(context.Background())
	if set.Category != "EC2 Instance Utilization" {
		t.Fatalf("category must be preserved, got %q", set.Category)
	}
	if len(set.Findings) != 1 || !strings.Contains(set.Findings[0].Message, "throttled") {
		t.Fatalf("expected error finding, got %+v", set.Findings)
	}
}
