package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/psomsri/taladsod-backend/config"
	"github.com/psomsri/taladsod-backend/internal/app/model"
)

// Source reads the static product catalog resource. The read either fully
// succeeds or fully fails; there is no partial result and no retry.
type Source interface {
	Fetch(ctx context.Context) ([]model.Product, error)
}

// NewSource builds the configured catalog source.
func NewSource(cfg *config.CatalogConfig) (Source, error) {
	switch cfg.Source {
	case "http":
		return newHTTPSource(cfg.URL), nil
	case "s3":
		return newS3Source(cfg.S3Region, cfg.S3Bucket, cfg.S3Key), nil
	case "file":
		return newFileSource(cfg.FilePath), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// parseProducts decodes the catalog JSON array.
func parseProducts(data []byte) ([]model.Product, error) {
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return products, nil
}
