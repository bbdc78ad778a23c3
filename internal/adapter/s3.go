package adapter

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/MKhiriev/go-diary-keeper/internal/config"
	"github.com/MKhiriev/go-diary-keeper/internal/logger"
)

// s3PutObjectAPI is the part of *s3.Client the uploader calls.
type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ArchiveUploader writes backup archives to an S3-compatible bucket.
type S3ArchiveUploader struct {
	client s3PutObjectAPI
	bucket string
	prefix string
	logger *logger.Logger
}

// NewS3ArchiveUploader builds an uploader from cfg. Static credentials are
// used when given, otherwise the default AWS credential chain applies. A
// non-empty S3Endpoint points the client at MinIO or another compatible store.
func NewS3ArchiveUploader(ctx context.Context, cfg config.Backup, log *logger.Logger) (*S3ArchiveUploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3ArchiveUploader(client, cfg.S3Bucket, cfg.S3Prefix, log), nil
}

func newS3ArchiveUploader(client s3PutObjectAPI, bucket, prefix string, log *logger.Logger) *S3ArchiveUploader {
	return &S3ArchiveUploader{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: log,
	}
}

// Upload implements [ArchiveUploader]. key is placed under the configured
// prefix; the returned location is an s3:// URL.
func (u *S3ArchiveUploader) Upload(ctx context.Context, key string, archive []byte) (string, error) {
	objectKey := path.Join(u.prefix, key)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(archive),
		ContentLength: aws.Int64(int64(len(archive))),
		ContentType:   aws.String("application/cbor"),
	})
	if err != nil {
		u.logger.Err(err).Str("bucket", u.bucket).Str("key", objectKey).Msg("backup upload failed")
		return "", fmt.Errorf("put backup object: %w", err)
	}

	return "s3://" + u.bucket + "/" + objectKey, nil
}
