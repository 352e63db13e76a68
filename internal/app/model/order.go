package model

import (
	"time"

	"gorm.io/gorm"
)

// Order is the archived record of a successfully dispatched order. Rows are
// written only after the email service acknowledges the submission.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ProfileID       string         `gorm:"type:varchar(64);not null;index" json:"profile_id"`
	CustomerName    string         `gorm:"not null" json:"customer_name"`
	CustomerEmail   string         `gorm:"not null" json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerAddress string         `gorm:"type:text" json:"customer_address"`
	TotalPrice      float64        `gorm:"not null" json:"total_price"`
	DispatchedAt    time.Time      `json:"dispatched_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderLine is one archived cart item of a dispatched order.
type OrderLine struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	Pkg       string    `json:"pkg"`
	Qty       string    `json:"qty"`
	Price     float64   `gorm:"not null" json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}
