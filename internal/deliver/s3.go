// SPDX-License-Identifier: EPL-2.0

package deliver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/ik5/pcmwav/internal/config"
)

// S3Client abstracts the S3 API operations used by [S3Sink].
// The [s3.Client] type satisfies this interface.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads files to Amazon S3 or any S3 compatible store.
type S3Sink struct {
	client S3Client
	bucket string
	prefix string
}

// NewS3Sink creates a sink writing under prefix in bucket. Surrounding
// slashes of prefix are ignored; pass "" for no prefix.
func NewS3Sink(client S3Client, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *S3Sink) key(name string) string {
	if s.prefix == "" {
		return name
	}

	return s.prefix + "/" + name
}

// Deliver uploads data with a single PutObject call and returns the
// s3://bucket/key location.
func (s *S3Sink) Deliver(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	key := s.key(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, classifyS3Error(err))
	}

	return "s3://" + s.bucket + "/" + key, nil
}

// classifyS3Error adds a package sentinel for the API codes callers care
// about and keeps the original error in the chain.
func classifyS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return fmt.Errorf("%w: %w", ErrBucketNotFound, err)
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
	}

	return err
}

// NewS3Client builds an S3 client from cfg. A custom endpoint switches to
// path-style addressing. Static credentials are used when both keys are
// set, otherwise requests are sent unsigned.
func NewS3Client(cfg config.S3Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
	}

	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		creds := aws.Credentials{
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Source:          "pcmwav config",
		}
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) { return creds, nil },
		))
	}

	return s3.New(opts)
}

var _ Sink = (*S3Sink)(nil)
