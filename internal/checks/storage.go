package checks

import (
	"context"
	"time"

	"github.com/ppiankov/costspectre/internal/inventory"
)

// StorageInventory is the inventory surface the storage check needs.
type StorageInventory interface {
	Bucket(ctx context.Context, name string) (inventory.StorageBucket, error)
}

// LifecycleCheck reviews the target bucket's lifecycle configuration and a
// bounded object sample.
type LifecycleCheck struct {
	inv    StorageInventory
	cfg    Config
	bucket string
}

// NewLifecycleCheck creates the storage lifecycle check.
func NewLifecycleCheck(inv StorageInventory, cfg Config, bucket string) *LifecycleCheck {
	return &LifecycleCheck{inv: inv, cfg: cfg, bucket: bucket}
}

// Category returns the finding-set category.
func (c *LifecycleCheck) Category() string {
	return "S3 Storage Optimization"
}

// Run assesses the configured bucket, if any.
func (c *LifecycleCheck) Run(ctx context.Context) *FindingSet {
	set := NewFindingSet(c.Category())

	if c.bucket == "" {
		set.Info("No storage bucket configured")
		return set
	}

	bucket, err := c.inv.Bucket(ctx, c.bucket)
	if err != nil {
		set.Fail("analyzing S3 storage", err)
		return set
	}
	if !bucket.Exists {
		set.Info("Bucket %s does not exist", c.bucket)
		return set
	}

	if bucket.Lifecycle.Configured {
		set.Info("Bucket %s has %d lifecycle rules", c.bucket, bucket.Lifecycle.RuleCount)
	} else {
		set.Recommend("Add lifecycle policies to bucket %s", c.bucket)
		set.PotentialSavings += c.cfg.SavingsLifecycle
	}

	if bucket.ObjectCount > 0 {
		set.Info("Bucket contains %d objects, %.1f MB", bucket.ObjectCount, float64(bucket.TotalSizeBytes)/(1024*1024))

		cutoff := c.cfg.now().Add(-time.Duration(c.cfg.ObjectAgeDays) * 24 * time.Hour)
		oldObjects := 0
		for _, obj := range bucket.Objects {
			if obj.LastModified.Before(cutoff) {
				oldObjects++
			}
		}
		if oldObjects > 0 {
			// Counts reflect the bounded sample, not the full bucket
			set.Info("%d sampled objects are older than %d days", oldObjects, c.cfg.ObjectAgeDays)
			set.Recommend("Verify lifecycle transitions are firing for %d objects older than %d days", oldObjects, c.cfg.ObjectAgeDays)
		}
	}

	return set
}
