package repository

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel matching

	"stock_management/internal/domain" // Domain models and errors
)

var (
	// ErrNotFound is returned when no record matches the lookup
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key is already taken
	ErrDuplicate = errors.New("duplicate key")
	// ErrOutOfStock is returned by DecrementStock when the product has no stock left
	ErrOutOfStock = errors.New("out of stock")
)

// AccountRepository stores accounts
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Account, error)
}

// CategoryRepository stores categories
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Category, error)
}

// ProductRepository stores products. GetByID and List expand the category.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)

	// DecrementStock removes one unit in a single conditional operation.
	// It returns ErrOutOfStock when stock is already zero and ErrNotFound
	// when the product does not exist.
	DecrementStock(ctx context.Context, id string) error
	// IncrementStock adds one unit back.
	IncrementStock(ctx context.Context, id string) error
}

// OrderRepository stores orders. GetByID and List expand account and product.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	// Delete removes the order and returns it as it was stored.
	Delete(ctx context.Context, id string) (*domain.Order, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Order, error)
}
