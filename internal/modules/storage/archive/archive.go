// Package archive copies uploaded source documents to S3-compatible storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mx-space/docinsight/internal/config"
)

const contentTypePDF = "application/pdf"

type Archive struct {
	client *s3.Client
	bucket string
	prefix string
}

func New(cfg config.ArchiveConfig) (*Archive, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	accessKey := strings.TrimSpace(cfg.AccessKeyID)
	secretKey := strings.TrimSpace(cfg.SecretAccessKey)
	if bucket == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete archive config: bucket/access_key_id/secret_access_key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	}
	if endpoint := normalizeEndpoint(cfg.Endpoint); endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		// Custom endpoints (MinIO, R2) default to path style.
		opts.UsePathStyle = true
	}
	if cfg.PathStyle != nil {
		opts.UsePathStyle = *cfg.PathStyle
	}

	return &Archive{
		client: s3.New(opts),
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
	}, nil
}

// Key returns the object key for an insight id.
func (a *Archive) Key(id string) string {
	name := id + ".pdf"
	if a.prefix == "" {
		return name
	}
	return path.Join(a.prefix, name)
}

// Archive uploads data under Key(id).
func (a *Archive) Archive(ctx context.Context, id string, data []byte) error {
	key := a.Key(id)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentTypePDF),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}

func normalizeEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return ""
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	return strings.TrimSuffix(endpoint, "/")
}
