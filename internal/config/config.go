package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds costspectre tuning loaded from .costspectre.yaml.
// Savings figures are heuristic monthly estimates in abstract currency units,
// not billing data.
type Config struct {
	LookbackDays       int      `yaml:"lookback_days"`
	LowCPUThreshold    float64  `yaml:"low_cpu_threshold"`
	HighCPUThreshold   float64  `yaml:"high_cpu_threshold"`
	ObjectAgeDays      int      `yaml:"object_age_days"`
	ObjectSampleLimit  int      `yaml:"object_sample_limit"`
	BusinessHoursStart int      `yaml:"business_hours_start"`
	BusinessHoursEnd   int      `yaml:"business_hours_end"`
	RequiredTags       []string `yaml:"required_tags"`
	BurstablePrefixes  []string `yaml:"burstable_prefixes"`
	Savings            Savings  `yaml:"savings"`
	Format             string   `yaml:"format"`
	Timeout            string   `yaml:"timeout"`
	Profile            string   `yaml:"profile"`
	Region             string   `yaml:"region"`
}

// Savings holds the per-trigger monthly savings estimates.
type Savings struct {
	Downsize  float64 `yaml:"downsize"`
	Scheduled float64 `yaml:"scheduled"`
	Lifecycle float64 `yaml:"lifecycle"`
	OffHours  float64 `yaml:"off_hours"`
}

// Default returns the built-in tuning values.
func Default() Config {
	return Config{
		LookbackDays:       7,
		LowCPUThreshold:    10,
		HighCPUThreshold:   80,
		ObjectAgeDays:      30,
		ObjectSampleLimit:  1000,
		BusinessHoursStart: 8,
		BusinessHoursEnd:   18,
		RequiredTags:       []string{"Project", "Environment", "CostCenter", "Owner"},
		BurstablePrefixes:  []string{"t2.", "t3.", "t3a.", "t4g."},
		Savings: Savings{
			Downsize:  20,
			Scheduled: 50,
			Lifecycle: 30,
			OffHours:  25,
		},
	}
}

// Load searches for .costspectre.yaml or .costspectre.yml in the given
// directory and returns the parsed config merged over Default.
// Returns Default() if no file is found.
func Load(dir string) (Config, error) {
	cfg := Default()

	candidates := []string{
		filepath.Join(dir, ".costspectre.yaml"),
		filepath.Join(dir, ".costspectre.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return cfg, nil
}
