// Package engine orchestrates one assessment invocation: it feeds inventory
// snapshots through the check modules, health validators, and the
// recommendation advisor, and assembles the final report. One failing check
// degrades only its own finding set; the report is always complete.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/costspectre/internal/advisor"
	"github.com/ppiankov/costspectre/internal/checks"
	"github.com/ppiankov/costspectre/internal/config"
	"github.com/ppiankov/costspectre/internal/health"
	"github.com/ppiankov/costspectre/internal/inventory"
)

// Inventory is the gateway surface the engine depends on. inventory.Gateway
// implements it; tests substitute a deterministic fake.
type Inventory interface {
	ProjectInstances(ctx context.Context, project, environment string) ([]inventory.ComputeInstance, error)
	AllInstances(ctx context.Context) ([]inventory.ComputeInstance, error)
	InstanceCPU(ctx context.Context, ids []string, lookbackDays int) (map[string]inventory.MetricSeries, error)
	GroupsByTag(ctx context.Context, key, value string) ([]inventory.AutoscalingGroup, error)
	Bucket(ctx context.Context, name string) (inventory.StorageBucket, error)
	Topology(ctx context.Context, vpcID, workspace string) (inventory.VpcTopology, error)
	Parameters(ctx context.Context, project, workspace string) (inventory.ParameterState, error)
	PutStatus(ctx context.Context, project, workspace, value string) error
}

// Engine runs the full assessment pipeline for one invocation.
type Engine struct {
	inv      Inventory
	cfg      checks.Config
	identity config.Identity
	now      func() time.Time
}

// New creates an engine. now may be nil, meaning time.Now.
func New(inv Inventory, cfg checks.Config, identity config.Identity, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	if cfg.Now == nil {
		cfg.Now = now
	}
	return &Engine{inv: inv, cfg: cfg, identity: identity, now: now}
}

// Run executes every check and validator and assembles the report. The
// returned report is complete even when individual checks degrade; only a
// fault in the engine itself surfaces as an error.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	// Identity values may be absent; they degrade to "unknown" here, at the
	// boundary, and are used verbatim in tag filters from this point on.
	project := orUnknown(e.identity.Project)
	environment := orUnknown(e.identity.Environment)
	workspace := orUnknown(e.identity.Workspace)

	slog.Info("Starting assessment", "project", project, "environment", environment, "workspace", workspace)

	report := &Report{
		Timestamp:    e.now().UTC(),
		Project:      project,
		Environment:  environment,
		Workspace:    workspace,
		Function:     orUnknown(e.identity.Function),
		HealthChecks: map[string]health.Verdict{},
	}

	modules := []checks.Check{
		checks.NewUtilizationCheck(e.inv, e.cfg, project, environment),
		checks.NewEfficiencyCheck(e.inv, e.cfg, project),
		checks.NewLifecycleCheck(e.inv, e.cfg, e.identity.Bucket),
		checks.NewTaggingCheck(e.inv, e.cfg),
		checks.NewAnomalyCheck(e.cfg),
		checks.NewParameterCheck(e.inv, project, workspace),
	}

	// Checks are independent and run concurrently; fixed result slots keep
	// the report order deterministic regardless of completion order.
	sets := make([]*checks.FindingSet, len(modules))
	g, gctx := errgroup.WithContext(ctx)
	for i, module := range modules {
		g.Go(func() error {
			sets[i] = runCheck(gctx, module)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.FindingSets = make([]checks.FindingSet, 0, len(sets))
	for _, set := range sets {
		report.FindingSets = append(report.FindingSets, *set)
	}

	e.inspectWorkspace(ctx, report, workspace)

	tier := health.ParseTier(workspace)
	var groups []inventory.AutoscalingGroup
	if report.Resources.Autoscaling != nil {
		groups = report.Resources.Autoscaling.Groups
	}
	report.Recommendations = advisor.Recommend(report.Resources.VPC, groups, report.Resources.Storage, tier)

	e.storeStatus(ctx, report, project, workspace)

	slog.Info("Assessment completed",
		"finding_sets", len(report.FindingSets),
		"recommendations", len(report.Recommendations),
		"potential_savings", report.TotalPotentialSavings())
	return report, nil
}

// inspectWorkspace fills the snapshot-derived resource sections and their
// health verdicts. A failed fetch degrades to an unhealthy verdict for that
// category; it never aborts the invocation.
func (e *Engine) inspectWorkspace(ctx context.Context, report *Report, workspace string) {
	if e.identity.VPCID != "" {
		topo, err := e.inv.Topology(ctx, e.identity.VPCID, workspace)
		if err != nil {
			slog.Warn("VPC inspection failed", "vpc", e.identity.VPCID, "error", err)
			verdict := health.NewVerdict()
			verdict.AddIssue("Failed to inspect VPC: %v", err)
			report.HealthChecks["vpc"] = verdict
		} else {
			report.Resources.VPC = &topo
			report.HealthChecks["vpc"] = health.ValidateNetwork(topo)
		}
	}

	groups, err := e.inv.GroupsByTag(ctx, "Workspace", workspace)
	if err != nil {
		slog.Warn("ASG inspection failed", "workspace", workspace, "error", err)
		verdict := health.NewVerdict()
		verdict.AddIssue("Failed to inspect Auto Scaling Groups: %v", err)
		report.HealthChecks["autoscaling"] = verdict
	} else {
		if groups == nil {
			groups = []inventory.AutoscalingGroup{}
		}
		summary := &AutoscalingSummary{Groups: groups}
		for _, asg := range groups {
			summary.TotalInstances += asg.CurrentInstances
			summary.HealthyInstances += asg.HealthyInstances
		}
		report.Resources.Autoscaling = summary
		report.HealthChecks["autoscaling"] = health.ValidateAutoscaling(groups, health.ParseTier(workspace))
	}

	if e.identity.Bucket != "" {
		bucket, err := e.inv.Bucket(ctx, e.identity.Bucket)
		if err != nil {
			slog.Warn("Bucket inspection failed", "bucket", e.identity.Bucket, "error", err)
			verdict := health.NewVerdict()
			verdict.AddIssue("Failed to inspect S3 bucket: %v", err)
			report.HealthChecks["s3"] = verdict
		} else {
			report.Resources.Storage = &bucket
			report.HealthChecks["s3"] = health.ValidateStorage(bucket)
		}
	}

	params, err := e.inv.Parameters(ctx, report.Project, workspace)
	if err != nil {
		slog.Warn("Parameter inspection failed", "workspace", workspace, "error", err)
	} else {
		report.Resources.Parameters = &params
	}
}

// storeStatus writes the condensed status to the parameter store. The write
// is best-effort: its failure is logged and the report stands.
func (e *Engine) storeStatus(ctx context.Context, report *Report, project, workspace string) {
	summary := Summarize(report)
	value, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("Failed to encode status summary", "error", err)
		return
	}
	if err := e.inv.PutStatus(ctx, project, workspace, string(value)); err != nil {
		slog.Warn("Failed to store workspace status", "workspace", workspace, "error", err)
	}
}

// runCheck invokes one module, containing panics at the check boundary so a
// single faulty check cannot abort the invocation.
func runCheck(ctx context.Context, module checks.Check) (set *checks.FindingSet) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Check panicked", "category", module.Category(), "panic", r)
			set = checks.NewFindingSet(module.Category())
			set.Fail("running check", fmt.Errorf("internal error: %v", r))
		}
	}()
	return module.Run(ctx)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
