package statement

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/bankclient/internal/client/config"
	"github.com/dmitrijs2005/bankclient/internal/filex"
	"github.com/google/uuid"
)

// Sink stores a rendered statement and reports where it went.
type Sink interface {
	Save(ctx context.Context, name string, body []byte) (string, error)
}

// NewSink picks the S3 sink when a bucket is configured and the local
// directory otherwise.
func NewSink(cfg *config.Config) Sink {
	if cfg.S3Bucket != "" {
		return &S3Sink{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3BaseEndpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}
	}
	return &FileSink{Dir: cfg.StatementDir}
}

// FileSink writes statements into Dir, creating it on first use.
type FileSink struct {
	Dir string
}

func (s *FileSink) Save(ctx context.Context, name string, body []byte) (string, error) {
	dir, err := filex.EnsureDir(s.Dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := filex.WriteFileAtomic(path, body, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	newObjectID = uuid.NewString
)

// S3Sink uploads statements to an S3-compatible bucket with static
// credentials. Endpoint may point at MinIO; path-style addressing is used
// whenever it is set.
type S3Sink struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Save uploads body under statements/<uuid>/<name> and returns its s3:// URI.
func (s *S3Sink) Save(ctx context.Context, name string, body []byte) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 config: %w", err)
	}

	key := fmt.Sprintf("statements/%s/%s", newObjectID(), name)
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.Bucket, key), nil
}

func (s *S3Sink) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.AccessKey,
			s.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
