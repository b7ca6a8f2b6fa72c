package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact decimal totals
)

// OrderStatus is the lifecycle tag of an order
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing" // Default on creation
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to the carrier
	OrderStatusDelivered  OrderStatus = "delivered"  // Received by the customer
)

// Valid reports whether s is one of the known statuses. Any transition between
// known statuses is allowed.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// Order Model
type Order struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"id"`                            // UUID primary key
	Status    OrderStatus     `gorm:"size:20;not null;default:processing" json:"status"`             // Lifecycle status
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`                      // Order amount, never negative
	AccountID string          `gorm:"type:char(36);index;not null" json:"account_id"`                // Foreign key to Account
	ProductID string          `gorm:"type:char(36);index;not null" json:"product_id"`                // Foreign key to Product
	Account   *AccountRef     `gorm:"foreignKey:AccountID;references:ID" json:"account"`             // Expanded account, nil when missing
	Product   *ProductRef     `gorm:"foreignKey:ProductID;references:ID" json:"product"`             // Expanded product, nil when missing
	CreatedAt time.Time       `json:"created_at"`                                                    // Creation time
	UpdatedAt time.Time       `json:"updated_at"`                                                    // Last update time
}
