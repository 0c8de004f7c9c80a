package health

import "github.com/ppiankov/costspectre/internal/inventory"

// ValidateStorage classifies a bucket snapshot. A missing bucket
// short-circuits to a single issue; no further checks run against it.
func ValidateStorage(bucket inventory.StorageBucket) Verdict {
	verdict := NewVerdict()

	if !bucket.Exists {
		verdict.AddIssue("S3 bucket does not exist")
		return verdict
	}

	if bucket.Encryption == "Disabled" {
		verdict.AddWarning("S3 bucket encryption is disabled")
	}

	return verdict
}
