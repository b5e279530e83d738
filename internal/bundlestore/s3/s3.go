// Package s3 is the durable-object-store backend for exported VEF bundles,
// adapted from the teacher's internal/plugin/attach/s3store.go (the
// attachment store's S3 backend) down to the two operations a bundle sink
// needs: put-whole-blob and get-whole-blob. Signed-URL issuance is not
// carried over — bundle restore always flows back through this process.
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/driftlock/timevault/internal/config"
	registrybundlestore "github.com/driftlock/timevault/internal/registry/bundlestore"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

func init() {
	registrybundlestore.Register(registrybundlestore.Plugin{
		Name:   "s3",
		Loader: load,
	})
}

func load(ctx context.Context) (registrybundlestore.Store, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil || cfg.S3Bucket == "" {
		return nil, vaulterrors.New(vaulterrors.KindStorageFailure, "s3 bundle store: S3 bucket is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRequestChecksumCalculation(aws.RequestChecksumCalculationWhenRequired),
	)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	usePathStyle := cfg.S3UsePathStyle
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = usePathStyle
	})
	return &Store{
		client: client,
		bucket: cfg.S3Bucket,
		prefix: strings.Trim(strings.TrimSpace(cfg.S3Prefix), "/"),
	}, nil
}

// Store is a registrybundlestore.Store backed by an S3-compatible bucket.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func (s *Store) objectKey(key string) string {
	if s.prefix != "" {
		return s.prefix + "/" + key
	}
	return key
}

func (s *Store) Put(ctx context.Context, key string, data io.Reader, size int64) error {
	objectKey := s.objectKey(key)
	contentType := "application/json"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &objectKey,
		Body:          data,
		ContentLength: aws.Int64(size),
		ContentType:   &contentType,
	}, func(o *s3.Options) {
		o.APIOptions = append(o.APIOptions, v4.SwapComputePayloadSHA256ForUnsignedPayloadMiddleware)
	})
	if err != nil {
		return vaulterrors.Wrap(vaulterrors.KindStorageFailure, fmt.Errorf("put object: %w", err))
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	objectKey := s.objectKey(key)
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &objectKey,
	})
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, fmt.Errorf("get object: %w", err))
	}
	return resp.Body, nil
}
