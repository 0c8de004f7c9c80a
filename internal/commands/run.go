package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/costspectre/internal/checks"
	"github.com/ppiankov/costspectre/internal/config"
	"github.com/ppiankov/costspectre/internal/engine"
	"github.com/ppiankov/costspectre/internal/handler"
	"github.com/ppiankov/costspectre/internal/inventory"
	"github.com/ppiankov/costspectre/internal/report"
)

var runFlags struct {
	project     string
	environment string
	workspace   string
	bucket      string
	vpcID       string
	format      string
	outputFile  string
	timeout     time.Duration
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one assessment invocation",
	Long: `Run the full assessment pipeline once: fetch inventory snapshots, execute
the check modules and health validators, synthesize recommendations, and
write the workspace status parameter. Identity values default to the
PROJECT_NAME, ENVIRONMENT, WORKSPACE, BUCKET_NAME, and VPC_ID environment
variables the scheduler injects.`,
	RunE: runAssessment,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.project, "project", "", "Project name (default: $PROJECT_NAME)")
	runCmd.Flags().StringVar(&runFlags.environment, "environment", "", "Environment name (default: $ENVIRONMENT)")
	runCmd.Flags().StringVar(&runFlags.workspace, "workspace", "", "Workspace name (default: $WORKSPACE)")
	runCmd.Flags().StringVar(&runFlags.bucket, "bucket", "", "Target bucket name (default: $BUCKET_NAME)")
	runCmd.Flags().StringVar(&runFlags.vpcID, "vpc-id", "", "Target VPC ID (default: $VPC_ID)")
	runCmd.Flags().StringVar(&runFlags.format, "format", "text", "Output format: text, json")
	runCmd.Flags().StringVarP(&runFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	runCmd.Flags().DurationVar(&runFlags.timeout, "timeout", 5*time.Minute, "Invocation timeout")
}

func runAssessment(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if runFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runFlags.timeout)
		defer cancel()
	}

	identity := resolveIdentity()

	prof := profile
	if prof == "" {
		prof = cfg.Profile
	}
	reg := region
	if reg == "" {
		reg = cfg.Region
	}

	client, err := inventory.NewClient(ctx, prof, reg)
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	gateway := inventory.NewGateway(client, cfg.ObjectSampleLimit)
	eng := engine.New(gateway, checksConfig(cfg), identity, nil)

	w := os.Stdout
	if runFlags.outputFile != "" {
		f, err := os.Create(runFlags.outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	format := runFlags.format
	if format == "text" && cfg.Format != "" {
		format = cfg.Format
	}

	switch format {
	case "json":
		// The JSON path goes through the trigger contract so the document
		// matches what a scheduled invocation returns.
		h := handler.New(eng, orUnknown(identity.Workspace), nil)
		resp := h.Handle(ctx, handler.Request{Source: "cli"})
		fmt.Fprintln(w, resp.Body)
		if resp.StatusCode != 200 {
			return fmt.Errorf("invocation failed with status %d", resp.StatusCode)
		}
		return nil
	case "text":
		result, err := eng.Run(ctx)
		if err != nil {
			return enhanceError("run assessment", err)
		}
		reporter := &report.TextReporter{Writer: w}
		return reporter.Generate(result)
	default:
		return fmt.Errorf("unsupported format: %s (use text or json)", format)
	}
}

func resolveIdentity() config.Identity {
	identity := config.IdentityFromEnv()
	if runFlags.project != "" {
		identity.Project = runFlags.project
	}
	if runFlags.environment != "" {
		identity.Environment = runFlags.environment
	}
	if runFlags.workspace != "" {
		identity.Workspace = runFlags.workspace
	}
	if runFlags.bucket != "" {
		identity.Bucket = runFlags.bucket
	}
	if runFlags.vpcID != "" {
		identity.VPCID = runFlags.vpcID
	}
	if identity.Function == "" {
		identity.Function = "costspectre"
	}
	return identity
}

func checksConfig(c config.Config) checks.Config {
	return checks.Config{
		LookbackDays:       c.LookbackDays,
		LowCPUThreshold:    c.LowCPUThreshold,
		HighCPUThreshold:   c.HighCPUThreshold,
		ObjectAgeDays:      c.ObjectAgeDays,
		BusinessHoursStart: c.BusinessHoursStart,
		BusinessHoursEnd:   c.BusinessHoursEnd,
		RequiredTags:       c.RequiredTags,
		BurstablePrefixes:  c.BurstablePrefixes,
		SavingsDownsize:    c.Savings.Downsize,
		SavingsScheduled:   c.Savings.Scheduled,
		SavingsLifecycle:   c.Savings.Lifecycle,
		SavingsOffHours:    c.Savings.OffHours,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
