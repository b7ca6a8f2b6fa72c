package service

import (
	"context" // Request-scoped cancellation

	"stock_management/internal/domain"     // Domain models and errors
	"stock_management/internal/pagination" // Paged listings
	"stock_management/internal/repository" // Storage interfaces
	"stock_management/internal/utils"      // Product locks

	"github.com/shopspring/decimal" // Exact amounts
	"github.com/sirupsen/logrus"    // Structured logging
)

// ProductInput carries the product fields of a request. Nil means "not supplied".
type ProductInput struct {
	Name        *string          // Unique name
	Price       *decimal.Decimal // Unit price
	Description *string          // Free-form text
	Stock       *int             // Units on hand
	CategoryID  *string          // Owning category
}

// ProductService implements product CRUD
type ProductService struct {
	products   repository.ProductRepository  // Product storage
	categories repository.CategoryRepository // Category existence checks
	locker     utils.Locker                  // Shared with the order workflow
}

// NewProductService creates the service. locker must be the one shared with
// the order workflow; nil falls back to a process-local lock.
func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, locker utils.Locker) *ProductService {
	if locker == nil {
		locker = utils.NewKeyedMutex()
	}
	return &ProductService{products: products, categories: categories, locker: locker}
}

func (s *ProductService) checkCategory(ctx context.Context, id string) error {
	_, err := s.categories.GetByID(ctx, id)
	found, err := exists(domain.EntityCategory, err)
	if err != nil {
		return err
	}
	if !found {
		return domain.NotFound(domain.EntityCategory) // 404 Category not found
	}
	return nil
}

func (s *ProductService) checkName(ctx context.Context, name string) error {
	_, err := s.products.GetByName(ctx, name)
	found, err := exists(domain.EntityProduct, err)
	if err != nil {
		return err
	}
	if found {
		return domain.Conflict(domain.EntityProduct, "name")
	}
	return nil
}

func checkAmounts(price *decimal.Decimal, stock *int) error {
	if price != nil && price.IsNegative() {
		return domain.Invalid("price", "Price must not be negative")
	}
	if stock != nil && *stock < 0 {
		return domain.Invalid("stock", "Stock must not be negative")
	}
	if stock != nil && *stock > domain.MaxStock {
		return domain.Invalid("stock", "Stock must not exceed 1000000000")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	switch {
	case in.Name == nil:
		return nil, domain.Invalid("name", "name is required")
	case in.Price == nil:
		return nil, domain.Invalid("price", "price is required")
	case in.Description == nil:
		return nil, domain.Invalid("description", "description is required")
	case in.Stock == nil:
		return nil, domain.Invalid("stock", "stock is required")
	case in.CategoryID == nil:
		return nil, domain.Invalid("category", "category is required")
	}
	if err := checkAmounts(in.Price, in.Stock); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, *in.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, *in.Name); err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:          newID(), // New product ID
		Name:        *in.Name,
		Price:       *in.Price,
		Description: *in.Description,
		Stock:       *in.Stock,
		CategoryID:  *in.CategoryID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, storeError(domain.EntityProduct, "name", err)
	}
	logrus.WithFields(logrus.Fields{"product_id": p.ID, "name": p.Name, "stock": p.Stock}).Info("Product created")
	return s.FindOne(ctx, p.ID) // Re-read with the category expanded
}

// Update merges the supplied fields. Price and stock are replaced whenever
// supplied, zero included. The row is rewritten under the product lock so an
// order placed meanwhile cannot have its decrement overwritten.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	unlock, err := s.locker.Lock(ctx, productLockKey(id))
	if err != nil {
		return nil, domain.Internal("Failed to lock product", err)
	}
	defer unlock()

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityProduct, "name", err)
	}
	if err := checkAmounts(in.Price, in.Stock); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil && *in.Name != p.Name {
		if err := s.checkName(ctx, *in.Name); err != nil {
			return nil, err
		}
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}

	p.Category = nil // Projection is not written back
	if err := s.products.Update(ctx, p); err != nil {
		return nil, storeError(domain.EntityProduct, "name", err)
	}
	return s.FindOne(ctx, p.ID)
}

func (s *ProductService) FindAll(ctx context.Context, page, pageSize string) (*pagination.Page[domain.Product], error) {
	p, err := pagination.Paginate[domain.Product](ctx, s.products, page, pageSize)
	if err != nil {
		return nil, domain.Internal("Failed to list products", err)
	}
	return p, nil
}

// FindOne returns the product with its category expanded
func (s *ProductService) FindOne(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityProduct, "name", err)
	}
	return p, nil
}

// Delete removes the product. Orders that reference it are kept and lose
// their product expansion.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return storeError(domain.EntityProduct, "name", err)
	}
	logrus.WithField("product_id", id).Info("Product deleted")
	return nil
}
