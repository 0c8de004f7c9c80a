package checks

import (
	"context"
	"testing"

	"github.com/ppiankov/costspectre/internal/inventory"
)

type fakeTaggingInventory struct {
	instances []inventory.ComputeInstance
}

func (f *fakeTaggingInventory) AllInstances(_ context.Context) ([]inventory.ComputeInstance, error) {
	return f.instances, nil
}

func TestTaggingCheck_OneMissingTag(t *testing.T) {
	inv := &fakeTaggingInventory{
		instances: []inventory.ComputeInstance{
			{
				ID: "i-almost",
				Tags: map[string]string{
					"Project":     "demo",
					"Environment": "dev",
					"Owner":       "platform",
				},
			},
		},
	}
	check := NewTaggingCheck(inv, testConfig())

	set := check.Run(context.Background())
	if len(set.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(set.Findings))
	}
	if got, want := set.Findings[0].Message, "Instance i-almost missing tags: CostCenter"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if len(set.Recommendations) != 1 {
		t.Fatalf("expected tagging recommendation, got %v", set.Recommendations)
	}
}

func TestTaggingCheck_MissingTagsKeepRequiredOrder(t *testing.T) {
	inv := &fakeTaggingInventory{
		instances: []inventory.ComputeInstance{
			{ID: "i-bare", Tags: map[string]string{"Environment": "dev"}},
		},
	}
	check := NewTaggingCheck(inv, testConfig())

	set := check.Run(context.Background())
	if got, want := set.Findings[0].Message, "Instance i-bare missing tags: Project, CostCenter, Owner"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTaggingCheck_FullyCompliant(t *testing.T) {
	inv := &fakeTaggingInventory{
		instances: []inventory.ComputeInstance{
			{
				ID: "i-good",
				Tags: map[string]string{
					"Project":     "demo",
					"Environment": "dev",
					"CostCenter":  "eng",
					"Owner":       "platform",
				},
			},
		},
	}
	check := NewTaggingCheck(inv, testConfig())

	set := check.Run(context.Background())
	if len(set.Findings) != 1 || set.Findings[0].Kind != KindInformational {
		t.Fatalf("expected single compliance finding, got %+v", set.Findings)
	}
	if len(set.Recommendations) != 0 {
		t.Fatalf("expected no recommendations, got %v", set.Recommendations)
	}
}

func TestTaggingCheck_NoInstances(t *testing.T) {
	check := NewTaggingCheck(&fakeTaggingInventory{}, testConfig())

	set := check.Run(context.Background())
	if set.Category != "Tagging Compliance" {
		t.Fatalf("category must be preserved, got %q", set.Category)
	}
	if len(set.Findings) != 1 || set.Findings[0].Kind != KindInformational {
		t.Fatalf("expected single informational finding, got %+v", set.Findings)
	}
}
