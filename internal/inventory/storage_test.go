package inventory

import (
	"context"
	"fmt"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type mockS3Client struct {
	headErr       error
	versioning    s3types.BucketVersioningStatus
	encryptionErr error
	lifecycle     *s3.GetBucketLifecycleConfigurationOutput
	lifecycleErr  error
	objects       []s3types.Object
	listMaxKeys   int32
}

func (m *mockS3Client) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if m.headErr != nil {
		return nil, m.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (m *mockS3Client) GetBucketVersioning(_ context.Context, _ *s3.GetBucketVersioningInput, _ ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error) {
	return &s3.GetBucketVersioningOutput{Status: m.versioning}, nil
}

func (m *mockS3Client) GetBucketEncryption(_ context.Context, _ *s3.GetBucketEncryptionInput, _ ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error) {
	if m.encryptionErr != nil {
		return nil, m.encryptionErr
	}
	return &s3.GetBucketEncryptionOutput{}, nil
}

func (m *mockS3Client) GetBucketLifecycleConfiguration(_ context.Context, _ *s3.GetBucketLifecycleConfigurationInput, _ ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error) {
	if m.lifecycleErr != nil {
		return nil, m.lifecycleErr
	}
	return m.lifecycle, nil
}

func (m *mockS3Client) ListObjectsV2(_ context.Context, input *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.listMaxKeys = awssdk.ToInt32(input.MaxKeys)
	return &s3.ListObjectsV2Output{Contents: m.objects}, nil
}

type apiError struct {
	code string
}

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func TestStorageFetcher_BucketNotFound(t *testing.T) {
	mock := &mockS3Client{headErr: &apiError{code: "NotFound"}}
	fetcher := NewStorageFetcher(mock, 1000)

	bucket, err := fetcher.Bucket(context.Background(), "missing")
	if err != nil {
		t.Fatalf("missing bucket must not be an error, got: %v", err)
	}
	if bucket.Exists {
		t.Fatal("expected Exists=false")
	}
	if bucket.Name != "missing" {
		t.Fatalf("expected name preserved, got %q", bucket.Name)
	}
}

func TestStorageFetcher_TransportErrorPropagates(t *testing.T) {
	mock := &mockS3Client{headErr: fmt.Errorf("connection reset")}
	fetcher := NewStorageFetcher(mock, 1000)

	if _, err := fetcher.Bucket(context.Background(), "b"); err == nil {
		t.Fatal("expected transport error to propagate")
	}
}

func TestStorageFetcher_NoLifecycleIsNotAnError(t *testing.T) {
	now := time.Now()
	mock := &mockS3Client{
		versioning:    s3types.BucketVersioningStatusEnabled,
		encryptionErr: &apiError{code: "ServerSideEncryptionConfigurationNotFoundError"},
		lifecycleErr:  &apiError{code: "NoSuchLifecycleConfiguration"},
		objects: []s3types.Object{
			{Key: awssdk.String("a"), Size: awssdk.Int64(1024), LastModified: &now},
			{Key: awssdk.String("b"), Size: awssdk.Int64(2048), LastModified: &now},
		},
	}
	fetcher := NewStorageFetcher(mock, 1000)

	bucket, err := fetcher.Bucket(context.Background(), "data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bucket.Exists {
		t.Fatal("expected Exists=true")
	}
	if bucket.Lifecycle.Configured {
		t.Fatal("expected unconfigured lifecycle")
	}
	if bucket.Encryption != "Disabled" {
		t.Fatalf("expected encryption Disabled, got %q", bucket.Encryption)
	}
	if bucket.Versioning != "Enabled" {
		t.Fatalf("expected versioning Enabled, got %q", bucket.Versioning)
	}
	if bucket.ObjectCount != 2 || bucket.TotalSizeBytes != 3072 {
		t.Fatalf("unexpected sample: count=%d size=%d", bucket.ObjectCount, bucket.TotalSizeBytes)
	}
	if mock.listMaxKeys != 1000 {
		t.Fatalf("expected sample limit 1000, got %d", mock.listMaxKeys)
	}
}

func TestStorageFetcher_LifecycleRuleCount(t *testing.T) {
	mock := &mockS3Client{
		lifecycle: &s3.GetBucketLifecycleConfigurationOutput{
			Rules: []s3types.LifecycleRule{{}, {}, {}},
		},
	}
	fetcher := NewStorageFetcher(mock, 1000)

	bucket, err := fetcher.Bucket(context.Background(), "data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bucket.Lifecycle.Configured || bucket.Lifecycle.RuleCount != 3 {
		t.Fatalf("expected 3 configured rules, got %+v", bucket.Lifecycle)
	}
	// Buckets without a versioning status report Suspended
	if bucket.Versioning != "Suspended" {
		t.Fatalf("expected Suspended, got %q", bucket.Versioning)
	}
}
