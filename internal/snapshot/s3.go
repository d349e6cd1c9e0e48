package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	defaultRegion = "us-east-1"
	// defaultObject is appended when the URL names a prefix rather than an object.
	defaultObject = "schema.json"
)

// S3Target is a parsed s3:// URL.
type S3Target struct {
	Bucket   string
	Key      string
	Region   string
	Endpoint string
}

// ParseS3URL parses s3://bucket/key?region=..&endpoint=... A key that is empty or ends
// in "/" gets "schema.json" appended. The region defaults to us-east-1.
func ParseS3URL(raw string) (S3Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return S3Target{}, fmt.Errorf("snapshot: invalid s3 url: %w", err)
	}
	if u.Scheme != "s3" {
		return S3Target{}, fmt.Errorf("snapshot: invalid scheme: expected s3, got %s", u.Scheme)
	}
	if u.Host == "" {
		return S3Target{}, fmt.Errorf("snapshot: s3 url %q has no bucket", raw)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		key += defaultObject
	}

	q := u.Query()
	region := q.Get("region")
	if region == "" {
		region = defaultRegion
	}

	return S3Target{
		Bucket:   u.Host,
		Key:      key,
		Region:   region,
		Endpoint: q.Get("endpoint"),
	}, nil
}

// Uploader is the part of *manager.Uploader used by S3Store.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store uploads snapshots with the S3 upload manager.
type S3Store struct {
	uploader Uploader
	target   S3Target
	now      func() time.Time
}

// NewS3Store loads the default AWS configuration for the target region. A custom
// endpoint switches to path-style addressing, as MinIO requires.
func NewS3Store(ctx context.Context, t S3Target) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(t.Region))
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to load AWS config: %w", err)
	}

	var options []func(*s3.Options)
	if t.Endpoint != "" {
		options = append(options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(t.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(cfg, options...)
	return NewS3StoreWithUploader(manager.NewUploader(client), t), nil
}

// NewS3StoreWithUploader builds a store around an existing uploader.
func NewS3StoreWithUploader(u Uploader, t S3Target) *S3Store {
	return &S3Store{uploader: u, target: t, now: time.Now}
}

func (s *S3Store) Save(ctx context.Context, data []byte) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.target.Bucket),
		Key:         aws.String(s.target.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(s.target.Key)),
		Metadata: map[string]string{
			"dbdiff-type":      "schema-description",
			"dbdiff-timestamp": s.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("snapshot: failed to upload s3://%s/%s: %w", s.target.Bucket, s.target.Key, err)
	}
	return nil
}

func (s *S3Store) Location() string {
	return "s3://" + s.target.Bucket + "/" + s.target.Key
}

// Target returns the parsed destination.
func (s *S3Store) Target() S3Target { return s.target }

func contentType(key string) string {
	switch path.Ext(key) {
	case ".json":
		return "application/json"
	case ".toml":
		return "application/toml"
	default:
		return "text/plain; charset=utf-8"
	}
}
