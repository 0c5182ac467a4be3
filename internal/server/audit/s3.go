package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophaccounts/internal/server/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Overridable in tests.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// ObjectPutter is the part of *s3.Client the sink uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config addresses the audit bucket. Empty credentials fall back to the
// default AWS chain; a BaseEndpoint switches to path-style addressing for
// MinIO and similar.
type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// NewS3Client builds the S3 client for cfg.
func NewS3Client(ctx context.Context, cfg S3Config) (ObjectPutter, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Sink stores one JSON object per committed change.
type S3Sink struct {
	client ObjectPutter
	bucket string
	now    func() time.Time
}

func NewS3Sink(client ObjectPutter, bucket string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, now: time.Now}
}

// Key is audit/<yyyy>/<mm>/<dd>/<account id>/<record id>.json.
func Key(r Record) string {
	d := r.OccurredAt
	return fmt.Sprintf("audit/%04d/%02d/%02d/%s/%s.json", d.Year(), d.Month(), d.Day(), r.AccountID, r.ID)
}

// AfterUpdate has the accounts.Hook signature.
func (s *S3Sink) AfterUpdate(ctx context.Context, a *models.Account, cs accounts.ChangeSet, meta accounts.RequestMeta) error {
	r := newRecord(s.now(), a, cs, meta)

	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode audit record: %w", err)
	}

	key := Key(r)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put audit record %s: %w", key, err)
	}
	return nil
}

// Hook returns AfterUpdate as an accounts.Hook.
func (s *S3Sink) Hook() accounts.Hook { return s.AfterUpdate }
