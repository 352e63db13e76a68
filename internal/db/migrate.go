package db

import (
	"fmt"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/pkg/logger"
)

// Migrate runs the schema migrations for the order archive
func Migrate() error {
	logger.Info("Running database migrations", nil)

	err := DB.AutoMigrate(
		&model.Order{},
		&model.OrderLine{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database migrations completed successfully", nil)
	return nil
}
