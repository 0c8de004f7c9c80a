package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample .costspectre.yaml config file and an IAM policy JSON file granting the read access the checks need plus the single status-parameter write.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".costspectre.yaml"
	policyPath := "costspectre-policy.json"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(policyPath, sampleIAMPolicy, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, policyPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .costspectre.yaml to customize thresholds and savings estimates")
	fmt.Println("  2. Apply costspectre-policy.json to your AWS IAM role/user")
	fmt.Println("  3. Export PROJECT_NAME, ENVIRONMENT, WORKSPACE, BUCKET_NAME, VPC_ID")
	fmt.Println("  4. Run: costspectre run")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

const sampleConfig = `# costspectre configuration
# Savings figures are heuristic monthly estimates, not billing data.

lookback_days: 7
low_cpu_threshold: 10
high_cpu_threshold: 80
object_age_days: 30
object_sample_limit: 1000
business_hours_start: 8
business_hours_end: 18

required_tags:
  - Project
  - Environment
  - CostCenter
  - Owner

burstable_prefixes:
  - "t2."
  - "t3."
  - "t3a."
  - "t4g."

savings:
  downsize: 20
  scheduled: 50
  lifecycle: 30
  off_hours: 25

# format: json
# timeout: 5m
# profile: default
# region: us-east-1
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "CostspectreReadOnly",
      "Effect": "Allow",
      "Action": [
        "ec2:DescribeInstances",
        "ec2:DescribeVpcs",
        "ec2:DescribeSubnets",
        "ec2:DescribeSecurityGroups",
        "ec2:DescribeNatGateways",
        "autoscaling:DescribeAutoScalingGroups",
        "autoscaling:DescribeScheduledActions",
        "s3:ListBucket",
        "s3:GetBucketVersioning",
        "s3:GetEncryptionConfiguration",
        "s3:GetLifecycleConfiguration",
        "cloudwatch:GetMetricData",
        "ssm:GetParameter",
        "ssm:DescribeParameters"
      ],
      "Resource": "*"
    },
    {
      "Sid": "CostspectreStatusWrite",
      "Effect": "Allow",
      "Action": [
        "ssm:PutParameter"
      ],
      "Resource": "arn:aws:ssm:*:*:parameter/*/*/status"
    }
  ]
}
`
