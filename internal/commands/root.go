package commands

import (
	"log/slog"

	"github.com/ppiankov/costspectre/internal/config"
	"github.com/ppiankov/costspectre/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	profile string
	region  string
	version string
	commit  string
	date    string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "costspectre",
	Short: "costspectre — AWS cost-optimization and workspace-health auditor",
	Long: `costspectre inspects a deployment's AWS inventory (EC2, Auto Scaling,
S3, VPC topology, SSM parameters) and produces a structured report of
cost-optimization findings and workspace health verdicts. It never mutates
billed resources; the only write is the workspace status parameter.

Savings figures are heuristic estimates, not billing data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
			loaded = config.Default()
		}
		cfg = loaded
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS profile name")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "AWS region")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
