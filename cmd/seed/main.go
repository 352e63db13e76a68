package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xuri/excelize/v2"

	"github.com/psomsri/taladsod-backend/config"
	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/pkg/logger"
)

// seed converts a supplier spreadsheet into the catalog JSON the server
// reads, and optionally uploads it to the configured S3 location.
//
// Expected sheet layout (first sheet, header row skipped):
//
//	A: product ID, B: name, C: image URL,
//	D: options as "label=price" pairs separated by ";"
func main() {
	input := flag.String("input", "products.xlsx", "supplier spreadsheet to read")
	output := flag.String("output", "products.json", "catalog JSON to write")
	upload := flag.Bool("upload", false, "upload the catalog to the configured S3 bucket")
	flag.Parse()

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	products, err := readSpreadsheet(*input)
	if err != nil {
		logger.Fatal("Failed to read spreadsheet", err, map[string]interface{}{
			"input": *input,
		})
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode catalog", err)
	}

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		logger.Fatal("Failed to write catalog file", err, map[string]interface{}{
			"output": *output,
		})
	}

	logger.Info("Catalog written", map[string]interface{}{
		"output":   *output,
		"products": len(products),
	})

	if *upload {
		cfg, err := config.Load()
		if err != nil {
			logger.Fatal("Failed to load configuration", err)
		}
		if err := uploadCatalog(context.Background(), &cfg.Catalog, data); err != nil {
			logger.Fatal("Failed to upload catalog", err)
		}
		logger.Info("Catalog uploaded", map[string]interface{}{
			"bucket": cfg.Catalog.S3Bucket,
			"key":    cfg.Catalog.S3Key,
		})
	}
}

func readSpreadsheet(path string) ([]model.Product, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}

		id, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid product ID %q", i+1, row[0])
		}

		options, err := parseOptions(row[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		products = append(products, model.Product{
			ID:      uint(id),
			Name:    strings.TrimSpace(row[1]),
			Image:   strings.TrimSpace(row[2]),
			Options: options,
		})
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("no products found in sheet %q", sheet)
	}
	return products, nil
}

func parseOptions(cell string) ([]model.Option, error) {
	var options []model.Option
	for _, pair := range strings.Split(cell, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		label, priceStr, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid option %q, want label=price", pair)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid option price %q", priceStr)
		}

		options = append(options, model.Option{
			Label: strings.TrimSpace(label),
			Price: price,
		})
	}

	if len(options) == 0 {
		return nil, fmt.Errorf("product has no options")
	}
	return options, nil
}

func uploadCatalog(ctx context.Context, cfg *config.CatalogConfig, data []byte) error {
	if cfg.S3Bucket == "" || cfg.S3Key == "" {
		return fmt.Errorf("CATALOG_S3_BUCKET and CATALOG_S3_KEY must be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	// Explicit keys take precedence over the default chain when provided.
	accessKey := os.Getenv("SEED_AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("SEED_AWS_SECRET_ACCESS_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(cfg.S3Bucket),
		Key:         aws.String(cfg.S3Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", cfg.S3Bucket, cfg.S3Key, err)
	}
	return nil
}
