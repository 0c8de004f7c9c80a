package checks

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestAnomalyCheck_BusinessHours(t *testing.T) {
	cfg := testConfig()
	cfg.Now = func() time.Time { return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) }
	check := NewAnomalyCheck(cfg)

	set := check.Run(context.Background())
	if set.Category != "Cost Anomaly Detection" {
		t.Fatalf("unexpected category: %q", set.Category)
	}
	if len(set.Findings) != 1 || set.Findings[0].Kind != KindInformational {
		t.Fatalf("expected single informational finding, got %+v", set.Findings)
	}
	if set.PotentialSavings != 0 {
		t.Fatalf("expected no savings inside business hours, got %v", set.PotentialSavings)
	}
	if len(set.Recommendations) != 3 {
		t.Fatalf("expected the standing advisories, got %v", set.Recommendations)
	}
}

func TestAnomalyCheck_OffHours(t *testing.T) {
	cfg := testConfig()
	cfg.Now = func() time.Time { return time.Date(2026, 8, 26, 23, 0, 0, 0, time.UTC) }
	check := NewAnomalyCheck(cfg)

	set := check.Run(context.Background())
	if len(set.Findings) != 1 || !strings.Contains(set.Findings[0].Message, "outside business hours") {
		t.Fatalf("expected off-hours finding, got %+v", set.Findings)
	}
	if set.Findings[0].Kind != KindActionable {
		t.Fatalf("expected actionable finding, got %s", set.Findings[0].Kind)
	}
	if set.PotentialSavings != 25 {
		t.Fatalf("expected savings of exactly 25, got %v", set.PotentialSavings)
	}
}

func TestAnomalyCheck_WindowBoundaries(t *testing.T) {
	cases := []struct {
		hour     int
		offHours bool
	}{
		{7, true},
		{8, false},
		{18, false},
		{19, true},
	}

	for _, tc := range cases {
		cfg := testConfig()
		cfg.Now = func() time.Time { return time.Date(2026, 8, 26, tc.hour, 30, 0, 0, time.UTC) }
		set := NewAnomalyCheck(cfg).Run(context.Background())

		got := set.PotentialSavings > 0
		if got != tc.offHours {
			t.Errorf("hour %d: off-hours = %v, want %v", tc.hour, got, tc.offHours)
		}
	}
}
