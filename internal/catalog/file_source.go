package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/psomsri/taladsod-backend/internal/app/model"
)

type fileSource struct {
	path string
}

func newFileSource(path string) *fileSource {
	return &fileSource{path: path}
}

func (s *fileSource) Fetch(ctx context.Context) ([]model.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parseProducts(data)
}
