package inventory

import (
	"context"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// StorageAPI is the minimal interface for S3 bucket queries.
type StorageAPI interface {
	HeadBucket(ctx context.Context, input *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetBucketVersioning(ctx context.Context, input *s3.GetBucketVersioningInput, opts ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error)
	GetBucketEncryption(ctx context.Context, input *s3.GetBucketEncryptionInput, opts ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error)
	GetBucketLifecycleConfiguration(ctx context.Context, input *s3.GetBucketLifecycleConfigurationInput, opts ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// StorageFetcher queries S3 bucket inventory.
type StorageFetcher struct {
	client      StorageAPI
	sampleLimit int
}

// NewStorageFetcher creates a fetcher for S3 buckets. sampleLimit bounds the
// object listing used for size/age reporting.
func NewStorageFetcher(client StorageAPI, sampleLimit int) *StorageFetcher {
	if sampleLimit <= 0 {
		sampleLimit = 1000
	}
	return &StorageFetcher{client: client, sampleLimit: sampleLimit}
}

// Bucket returns a snapshot of the named bucket. A missing bucket yields
// Exists=false, and a missing lifecycle configuration yields
// Lifecycle.Configured=false; neither is an error.
func (f *StorageFetcher) Bucket(ctx context.Context, name string) (StorageBucket, error) {
	bucket := StorageBucket{Name: name}

	_, err := f.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: awssdk.String(name)})
	if err != nil {
		if isAPIError(err, "NotFound", "NoSuchBucket") {
			return bucket, nil
		}
		return bucket, fmt.Errorf("head bucket %s: %w", name, err)
	}
	bucket.Exists = true

	versioning, err := f.client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{Bucket: awssdk.String(name)})
	if err != nil {
		return bucket, fmt.Errorf("get bucket versioning %s: %w", name, err)
	}
	bucket.Versioning = string(versioning.Status)
	if bucket.Versioning == "" {
		// Buckets that never had versioning report no status at all
		bucket.Versioning = "Suspended"
	}

	if _, err := f.client.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: awssdk.String(name)}); err != nil {
		if isAPIError(err, "ServerSideEncryptionConfigurationNotFoundError") {
			bucket.Encryption = "Disabled"
		} else {
			bucket.Encryption = "Unknown"
		}
	} else {
		bucket.Encryption = "Enabled"
	}

	lifecycle, err := f.client.GetBucketLifecycleConfiguration(ctx, &s3.GetBucketLifecycleConfigurationInput{Bucket: awssdk.String(name)})
	if err != nil {
		if !isAPIError(err, "NoSuchLifecycleConfiguration") {
			return bucket, fmt.Errorf("get bucket lifecycle %s: %w", name, err)
		}
	} else {
		bucket.Lifecycle = LifecycleState{Configured: true, RuleCount: len(lifecycle.Rules)}
	}

	objects, err := f.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  awssdk.String(name),
		MaxKeys: awssdk.Int32(int32(f.sampleLimit)),
	})
	if err != nil {
		return bucket, fmt.Errorf("list objects %s: %w", name, err)
	}
	for _, obj := range objects.Contents {
		o := StorageObject{
			Key:       deref(obj.Key),
			SizeBytes: awssdk.ToInt64(obj.Size),
		}
		if obj.LastModified != nil {
			o.LastModified = *obj.LastModified
		}
		bucket.Objects = append(bucket.Objects, o)
		bucket.TotalSizeBytes += o.SizeBytes
	}
	bucket.ObjectCount = len(bucket.Objects)

	return bucket, nil
}

// isAPIError reports whether err is an AWS API error with one of the given codes.
func isAPIError(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
