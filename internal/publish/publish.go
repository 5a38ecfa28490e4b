// Package publish uploads rendered images to S3-compatible storage.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/gogpu/raytrace"
)

// DefaultTimeout bounds a single upload.
const DefaultTimeout = 30 * time.Second

// ErrMissingBucket is returned by NewS3 when Config.Bucket is empty.
var ErrMissingBucket = errors.New("publish: bucket is required")

// Config describes the target bucket.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// Prefix is prepended to every object key.
	Prefix string
	// ACL is the canned ACL applied to uploads; empty leaves the bucket default.
	ACL     string
	Timeout time.Duration
}

// S3Publisher puts encoded images into a bucket.
type S3Publisher struct {
	client s3iface.S3API
	cfg    Config
}

// NewS3 creates a publisher with static credentials and path-style
// addressing, which most self-hosted S3 implementations require.
func NewS3(cfg Config) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}
	awsCfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("publish: create session: %w", err)
	}
	return NewWithClient(s3.New(sess), cfg), nil
}

// NewWithClient creates a publisher around an existing client.
func NewWithClient(client s3iface.S3API, cfg Config) *S3Publisher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &S3Publisher{client: client, cfg: cfg}
}

// Key returns the object key used for name.
func (p *S3Publisher) Key(name string) string {
	if p.cfg.Prefix == "" {
		return name
	}
	return path.Join(p.cfg.Prefix, name)
}

// Publish uploads data under name with the given content type and returns
// the object key.
func (p *S3Publisher) Publish(ctx context.Context, name, contentType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	key := p.Key(name)
	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if p.cfg.ACL != "" {
		input.ACL = aws.String(p.cfg.ACL)
	}

	start := time.Now()
	if _, err := p.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("publish: upload %s: %w", key, err)
	}
	raytrace.Logger().Info("publish: uploaded",
		"bucket", p.cfg.Bucket, "key", key, "bytes", size, "elapsed", time.Since(start))
	return key, nil
}
