package catalogsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"plan-engine/internal/catalog"
)

// Environment variables for source=s3:
//   PLAN_CATALOG_S3_BUCKET=<bucket> (required)
//   PLAN_CATALOG_S3_KEY=<object key> (default catalog.json)
//   PLAN_CATALOG_S3_REGION=<region> (default us-east-1)
//   PLAN_CATALOG_S3_ENDPOINT=<url> (optional, for MinIO)
//   PLAN_CATALOG_S3_PATH_STYLE=true|false (default false)
//   AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)

const defaultS3Key = "catalog.json"

type S3Config struct {
	Bucket          string
	Key             string
	Region          string
	Endpoint        string // optional; custom endpoint such as MinIO
	AccessKeyID     string // optional; falls back to the default credentials chain
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
}

func s3ConfigFromEnv() S3Config {
	return S3Config{
		Bucket:    os.Getenv("PLAN_CATALOG_S3_BUCKET"),
		Key:       os.Getenv("PLAN_CATALOG_S3_KEY"),
		Region:    os.Getenv("PLAN_CATALOG_S3_REGION"),
		Endpoint:  os.Getenv("PLAN_CATALOG_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("PLAN_CATALOG_S3_PATH_STYLE"), "true"),
	}
}

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var newObjectGetter = func(ctx context.Context, cfg S3Config) (objectGetter, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func fetchS3(ctx context.Context, cfg S3Config) ([]byte, catalog.Format, error) {
	if cfg.Bucket == "" {
		return nil, "", fmt.Errorf("PLAN_CATALOG_S3_BUCKET required for s3 source")
	}
	key := cfg.Key
	if key == "" {
		key = defaultS3Key
	}
	client, err := newObjectGetter(ctx, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("s3 client: %w", err)
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: &cfg.Bucket, Key: &key})
	if err != nil {
		return nil, "", fmt.Errorf("get s3://%s/%s: %w", cfg.Bucket, key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read s3://%s/%s: %w", cfg.Bucket, key, err)
	}

	format := catalog.FormatFromPath(key)
	if ct := aws.ToString(out.ContentType); ct != "" {
		if f, err := catalog.ParseFormat(ct); err == nil && f != catalog.FormatJSON {
			format = f
		}
	}
	return data, format, nil
}
