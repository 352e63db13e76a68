package service

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/internal/app/repository"
	"github.com/psomsri/taladsod-backend/pkg/logger"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderService reads the archive of dispatched orders and exports it as a
// spreadsheet.
type OrderService interface {
	GetOrders() ([]model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)

	// ExportOrders renders the full archive as an xlsx workbook.
	ExportOrders() ([]byte, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) GetOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ExportOrders() ([]byte, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Dispatched At", "Customer", "Email", "Phone", "Address", "Item", "Package", "Qty", "Price", "Order Total"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, order := range orders {
		for _, line := range order.Lines {
			values := []interface{}{
				order.ID,
				order.DispatchedAt.Format("2006-01-02 15:04:05"),
				order.CustomerName,
				order.CustomerEmail,
				order.CustomerPhone,
				order.CustomerAddress,
				line.Name,
				line.Pkg,
				line.Qty,
				line.Price,
				order.TotalPrice,
			}
			for i, v := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("Order archive exported", map[string]interface{}{
		"orders": len(orders),
		"rows":   row - 2,
	})
	return buf.Bytes(), nil
}
