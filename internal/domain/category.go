package domain

import "time"

// Category Model
type Category struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`         // UUID primary key
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`  // Unique name
	CreatedAt time.Time `json:"created_at"`                                 // Creation time
	UpdatedAt time.Time `json:"updated_at"`                                 // Last update time
}

// Ref returns the projection used when a category is expanded into a product
func (c *Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name}
}

// CategoryRef is the read-only projection of a category referenced by a product
type CategoryRef struct {
	ID   string `json:"id"`   // Category ID
	Name string `json:"name"` // Category name
}

// TableName maps the projection onto the categories table
func (CategoryRef) TableName() string { return "categories" }
