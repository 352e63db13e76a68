package repository

import (
	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/pkg/logger"
	"gorm.io/gorm"
)

// OrderRepository stores the archive of successfully dispatched orders.
type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindAll() ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Archiving order in database", map[string]interface{}{
		"profile_id": order.ProfileID,
		"line_count": len(order.Lines),
		"total":      order.TotalPrice,
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to archive order in database", err, map[string]interface{}{
			"profile_id": order.ProfileID,
		})
		return err
	}

	logger.Debug("Order archived in database", map[string]interface{}{
		"order_id":   order.ID,
		"profile_id": order.ProfileID,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Lines").First(&order, id).Error
	if err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Lines").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list orders in database", err, nil)
		return nil, err
	}
	return orders, nil
}
