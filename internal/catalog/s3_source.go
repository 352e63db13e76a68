package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/psomsri/taladsod-backend/internal/app/model"
)

type s3Source struct {
	client *s3.Client
	bucket string
	key    string
}

func newS3Source(region, bucket, key string) *s3Source {
	// Use the default credential chain (environment variables,
	// ~/.aws/credentials, IAM role). A basic region-only config is enough
	// when no chain is available, the bucket being publicly readable.
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		cfg = aws.Config{Region: region}
	}

	return &s3Source{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}
}

func (s *s3Source) Fetch(ctx context.Context) ([]model.Product, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog object: %w", err)
	}

	return parseProducts(body)
}
