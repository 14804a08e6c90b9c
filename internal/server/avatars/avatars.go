// Package avatars turns stored avatar references into URLs a browser can
// fetch. A reference is either an absolute URL, kept as is, or an object key
// in the configured S3 bucket, which gets a short-lived presigned GET URL.
package avatars

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	srvconfig "github.com/dmitrijs2005/courseauth/internal/server/config"
)

type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// PassThrough returns references unchanged. Used when S3 is not configured.
type PassThrough struct{}

func (PassThrough) Resolve(_ context.Context, ref string) (string, error) {
	return ref, nil
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Resolver struct {
	presigner objectPresigner
	bucket    string
	validity  time.Duration
}

// Seams for tests.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// NewResolver returns an S3Resolver when a bucket is configured and
// PassThrough otherwise.
func NewResolver(ctx context.Context, cfg *srvconfig.Config) (Resolver, error) {
	if !cfg.S3Enabled() {
		return PassThrough{}, nil
	}
	r, err := NewS3Resolver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func NewS3Resolver(ctx context.Context, cfg *srvconfig.Config) (*S3Resolver, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Resolver{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.S3Bucket,
		validity:  cfg.AvatarURLValidity,
	}, nil
}

func (r *S3Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" || isAbsoluteURL(ref) {
		return ref, nil
	}

	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(ref),
	}, s3.WithPresignExpires(r.validity))
	if err != nil {
		return "", fmt.Errorf("presign error: %w", err)
	}

	return req.URL, nil
}

func isAbsoluteURL(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
