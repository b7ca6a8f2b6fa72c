package service

import (
	"context" // Request-scoped cancellation

	"stock_management/internal/domain"     // Domain models and errors
	"stock_management/internal/pagination" // Paged listings
	"stock_management/internal/repository" // Storage interfaces

	"github.com/sirupsen/logrus" // Structured logging
)

// CategoryInput carries the category fields of a request
type CategoryInput struct {
	Name *string // Unique name
}

// CategoryService implements category CRUD
type CategoryService struct {
	categories repository.CategoryRepository // Category storage
	products   repository.ProductRepository  // Used to refuse deleting categories in use
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

func (s *CategoryService) nameTaken(ctx context.Context, name string) (bool, error) {
	_, err := s.categories.GetByName(ctx, name)
	return exists(domain.EntityCategory, err)
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if in.Name == nil {
		return nil, domain.Invalid("name", "name is required")
	}
	taken, err := s.nameTaken(ctx, *in.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict(domain.EntityCategory, "name") // 409 Conflict
	}

	c := &domain.Category{ID: newID(), Name: *in.Name} // New category
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, storeError(domain.EntityCategory, "name", err)
	}
	logrus.WithFields(logrus.Fields{"category_id": c.ID, "name": c.Name}).Info("Category created")
	return c, nil
}

// Update renames the category; uniqueness is checked only when the name changes
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityCategory, "name", err)
	}
	if in.Name != nil && *in.Name != c.Name {
		taken, err := s.nameTaken(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.Conflict(domain.EntityCategory, "name")
		}
		c.Name = *in.Name
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, storeError(domain.EntityCategory, "name", err)
	}
	return c, nil
}

func (s *CategoryService) FindAll(ctx context.Context, page, pageSize string) (*pagination.Page[domain.Category], error) {
	p, err := pagination.Paginate[domain.Category](ctx, s.categories, page, pageSize)
	if err != nil {
		return nil, domain.Internal("Failed to list categories", err)
	}
	return p, nil
}

func (s *CategoryService) FindOne(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityCategory, "name", err)
	}
	return c, nil
}

// Delete removes a category no product refers to
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return storeError(domain.EntityCategory, "name", err)
	}
	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return storeError(domain.EntityProduct, "name", err)
	}
	if n > 0 {
		return domain.InUse(domain.EntityCategory, "products") // Products would be left without a category
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return storeError(domain.EntityCategory, "name", err)
	}
	logrus.WithField("category_id", id).Info("Category deleted")
	return nil
}
