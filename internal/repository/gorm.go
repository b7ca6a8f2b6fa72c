package repository

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel matching

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Association omission

	"stock_management/internal/domain" // Domain models and errors
)

// translate maps gorm errors onto the repository sentinels. The connection
// must be opened with TranslateError so unique violations become ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// ordered gives listings a stable order across pages
func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC") // ID breaks timestamp ties
}

// GormAccounts implements AccountRepository with gorm
type GormAccounts struct{ db *gorm.DB }

func NewGormAccounts(db *gorm.DB) *GormAccounts { return &GormAccounts{db: db} }

var _ AccountRepository = (*GormAccounts)(nil)

func (r *GormAccounts) Create(ctx context.Context, a *domain.Account) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *GormAccounts) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *GormAccounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// Update writes every column of a; callers load the record first.
func (r *GormAccounts) Update(ctx context.Context, a *domain.Account) error {
	return translate(r.db.WithContext(ctx).Model(a).Select("*").Omit("created_at").Updates(a).Error) // Select("*") writes zero values too
}

func (r *GormAccounts) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Account{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound // Nothing matched the ID
	}
	return nil
}

func (r *GormAccounts) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Account{}).Count(&n).Error
	return n, translate(err)
}

func (r *GormAccounts) List(ctx context.Context, offset, limit int) ([]domain.Account, error) {
	out := make([]domain.Account, 0)
	err := ordered(r.db.WithContext(ctx)).Offset(offset).Limit(limit).Find(&out).Error
	return out, translate(err)
}

// GormCategories implements CategoryRepository with gorm
type GormCategories struct{ db *gorm.DB }

func NewGormCategories(db *gorm.DB) *GormCategories { return &GormCategories{db: db} }

var _ CategoryRepository = (*GormCategories)(nil)

func (r *GormCategories) Create(ctx context.Context, c *domain.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *GormCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *GormCategories) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *GormCategories) Update(ctx context.Context, c *domain.Category) error {
	return translate(r.db.WithContext(ctx).Model(c).Select("*").Omit("created_at").Updates(c).Error)
}

func (r *GormCategories) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCategories) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Count(&n).Error
	return n, translate(err)
}

func (r *GormCategories) List(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	out := make([]domain.Category, 0)
	err := ordered(r.db.WithContext(ctx)).Offset(offset).Limit(limit).Find(&out).Error
	return out, translate(err)
}

// GormProducts implements ProductRepository with gorm
type GormProducts struct{ db *gorm.DB }

func NewGormProducts(db *gorm.DB) *GormProducts { return &GormProducts{db: db} }

var _ ProductRepository = (*GormProducts)(nil)

// expanded preloads the category projection; a dangling reference leaves it nil
func (r *GormProducts) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	})
}

func (r *GormProducts) Create(ctx context.Context, p *domain.Product) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error) // Never upsert the category
}

func (r *GormProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.expanded(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *GormProducts) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	if err := r.expanded(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *GormProducts) Update(ctx context.Context, p *domain.Product) error {
	err := r.db.WithContext(ctx).Model(p).Select("*").Omit(clause.Associations, "created_at").Updates(p).Error
	return translate(err)
}

func (r *GormProducts) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormProducts) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error
	return n, translate(err)
}

func (r *GormProducts) List(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	err := ordered(r.expanded(ctx)).Offset(offset).Limit(limit).Find(&out).Error
	return out, translate(err)
}

func (r *GormProducts) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, translate(err)
}

// DecrementStock issues a single conditional UPDATE, so concurrent callers can
// never drive stock below zero.
func (r *GormProducts) DecrementStock(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND stock > 0", id). // Only while a unit is left
		Update("stock", gorm.Expr("stock - ?", 1))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var n int64 // No row updated: tell a missing product from an empty one
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrOutOfStock
}

func (r *GormProducts) IncrementStock(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", 1))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormOrders implements OrderRepository with gorm
type GormOrders struct{ db *gorm.DB }

func NewGormOrders(db *gorm.DB) *GormOrders { return &GormOrders{db: db} }

var _ OrderRepository = (*GormOrders)(nil)

// expanded preloads the account and product projections
func (r *GormOrders) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Account", func(db *gorm.DB) *gorm.DB { return db.Select("id", "email") }).
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "price") })
}

func (r *GormOrders) Create(ctx context.Context, o *domain.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error) // Refs are read-only projections
}

func (r *GormOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.expanded(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *GormOrders) Update(ctx context.Context, o *domain.Order) error {
	err := r.db.WithContext(ctx).Model(o).Select("*").Omit(clause.Associations, "created_at").Updates(o).Error
	return translate(err)
}

func (r *GormOrders) Delete(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	res := r.db.WithContext(ctx).Delete(&domain.Order{}, "id = ?", id) // Row loaded above goes back to the caller
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound // removed concurrently
	}
	return &o, nil
}

func (r *GormOrders) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&n).Error
	return n, translate(err)
}

func (r *GormOrders) List(ctx context.Context, offset, limit int) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	err := ordered(r.expanded(ctx)).Offset(offset).Limit(limit).Find(&out).Error
	return out, translate(err)
}
