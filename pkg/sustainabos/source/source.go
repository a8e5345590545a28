// Package source reads workbook bytes from a local file or an S3 object.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrNotFound indicates the workbook does not exist at the source.
var ErrNotFound = errors.New("workbook not found")

// Source yields the bytes of a workbook.
type Source interface {
	// Name returns the workbook file name, used to pick the workbook format.
	Name() string
	// Read returns the workbook bytes. A missing workbook yields an error
	// wrapping ErrNotFound.
	Read(ctx context.Context) ([]byte, error)
}

// S3Config configures access to an S3-compatible object store.
type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          *bool  `yaml:"use_ssl,omitempty"`
}

// New returns the source for uri: "s3://bucket/key" reads an S3 object,
// anything else is a local path.
func New(ctx context.Context, uri string, cfg S3Config) (Source, error) {
	if uri == "" {
		return nil, fmt.Errorf("workbook source is empty")
	}
	if !strings.HasPrefix(uri, "s3://") {
		return File{Path: uri}, nil
	}

	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewS3(client, bucket, key), nil
}

// ParseS3URI splits "s3://bucket/key" into bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri %q must name a bucket and a key", uri)
	}
	return bucket, key, nil
}

// File reads a workbook from the local filesystem.
type File struct {
	Path string
}

// Name returns the base name of the file.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Read returns the file contents.
func (f File) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	return data, nil
}

// GetObjectAPI is the part of the S3 client used by S3.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads a workbook from an S3 object.
type S3 struct {
	client GetObjectAPI
	bucket string
	key    string
}

// NewS3 returns a source for the object bucket/key.
func NewS3(client GetObjectAPI, bucket, key string) *S3 {
	return &S3{client: client, bucket: bucket, key: key}
}

// Name returns the base name of the object key.
func (s *S3) Name() string {
	return path.Base(s.key)
}

// Read downloads the object.
func (s *S3) Read(ctx context.Context) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.bucket, s.key)
		}
		return nil, fmt.Errorf("failed to get workbook object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook object: %w", err)
	}
	return data, nil
}

// NewS3Client builds an S3 client. Static credentials are used when an
// access key is configured, the default AWS chain otherwise. A custom
// endpoint switches to path-style addressing for MinIO compatibility.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := endpointURL(cfg)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func endpointURL(cfg S3Config) string {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if cfg.UseSSL != nil && !*cfg.UseSSL {
		return "http://" + endpoint
	}
	return "https://" + endpoint
}
