package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact decimal prices
)

// MaxStock bounds the units a product may hold
const MaxStock = 1_000_000_000

// Product Model
type Product struct {
	ID          string          `gorm:"type:char(36);primaryKey" json:"id"`                       // UUID primary key
	Name        string          `gorm:"size:100;uniqueIndex;not null" json:"name"`                // Unique name
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`                 // Unit price, never negative
	Description string          `gorm:"type:text;not null" json:"description"`                    // Free-form description
	Stock       int             `gorm:"not null;default:0" json:"stock"`                          // Units on hand, never negative
	CategoryID  string          `gorm:"type:char(36);index;not null" json:"category_id"`          // Foreign key to Category
	Category    *CategoryRef    `gorm:"foreignKey:CategoryID;references:ID" json:"category"`      // Expanded category, nil when missing
	CreatedAt   time.Time       `json:"created_at"`                                               // Creation time
	UpdatedAt   time.Time       `json:"updated_at"`                                               // Last update time
}

// Ref returns the projection used when a product is expanded into an order
func (p *Product) Ref() *ProductRef {
	return &ProductRef{ID: p.ID, Name: p.Name, Price: p.Price}
}

// ProductRef is the read-only projection of a product referenced by an order
type ProductRef struct {
	ID    string          `json:"id"`    // Product ID
	Name  string          `json:"name"`  // Product name
	Price decimal.Decimal `json:"price"` // Product price
}

// TableName maps the projection onto the products table
func (ProductRef) TableName() string { return "products" }
