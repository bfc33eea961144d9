package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/wenotes/internal/server/config"
)

func newAttachmentSvc() *AttachmentService {
	return NewAttachmentService(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "wenotes",
	})
}

func stubPresignClient(t *testing.T) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9000" {
			t.Fatalf("BaseEndpoint not applied: %v", opts.BaseEndpoint)
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		if c == nil {
			t.Fatalf("nil client passed to presign")
		}
		return &s3.PresignClient{}
	}
}

func TestGetRandomStorageKey(t *testing.T) {
	key := GetRandomStorageKey()
	if !strings.HasPrefix(key, "notes/") {
		t.Fatalf("unexpected key prefix: %q", key)
	}
	if key == GetRandomStorageKey() {
		t.Fatalf("keys must not repeat")
	}
}

func TestAttachmentService_GetPresignedPutURL(t *testing.T) {
	svc := newAttachmentSvc()
	stubPresignClient(t)

	origPut := presignPutObject
	t.Cleanup(func() { presignPutObject = origPut })

	var capturedKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if *in.Bucket != "wenotes" {
			t.Fatalf("bucket mismatch: %q", *in.Bucket)
		}
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://signed/put"}, nil
	}

	key, url, err := svc.GetPresignedPutURL(context.Background())
	if err != nil {
		t.Fatalf("GetPresignedPutURL err: %v", err)
	}
	if url != "http://signed/put" {
		t.Fatalf("unexpected url: %q", url)
	}
	if key != capturedKey {
		t.Fatalf("returned key %q does not match signed key %q", key, capturedKey)
	}
}

func TestAttachmentService_GetPresignedPutURLError(t *testing.T) {
	svc := newAttachmentSvc()
	stubPresignClient(t)

	origPut := presignPutObject
	t.Cleanup(func() { presignPutObject = origPut })

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	}

	if _, _, err := svc.GetPresignedPutURL(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAttachmentService_GetPresignedGetURL(t *testing.T) {
	svc := newAttachmentSvc()
	stubPresignClient(t)

	origGet := presignGetObject
	t.Cleanup(func() { presignGetObject = origGet })

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if *in.Key != "notes/x" {
			t.Fatalf("key mismatch: %q", *in.Key)
		}
		return &v4.PresignedHTTPRequest{URL: "http://signed/get"}, nil
	}

	url, err := svc.GetPresignedGetURL(context.Background(), "notes/x")
	if err != nil {
		t.Fatalf("GetPresignedGetURL err: %v", err)
	}
	if url != "http://signed/get" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestAttachmentService_PresignClientLoadError(t *testing.T) {
	svc := newAttachmentSvc()

	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	if _, _, err := svc.GetPresignedPutURL(context.Background()); err == nil || err.Error() != "load-fail" {
		t.Fatalf("expected load-fail, got %v", err)
	}
	if _, err := svc.GetPresignedGetURL(context.Background(), "k"); err == nil || err.Error() != "load-fail" {
		t.Fatalf("expected load-fail, got %v", err)
	}
}
