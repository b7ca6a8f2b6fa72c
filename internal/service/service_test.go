package service

import (
	"context"
	"testing"

	"stock_management/internal/domain"
	"stock_management/internal/metrics"
	"stock_management/internal/repository"
	"stock_management/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store      *repository.MemoryStore
	accounts   *AccountService
	categories *CategoryService
	products   *ProductService
	orders     *OrderService
	metrics    *metrics.Metrics
}

func setup(t *testing.T) *fixture {
	t.Helper()
	return setupWith(t, nil, nil)
}

// setupWith lets a test swap the order repository or the locker
func setupWith(t *testing.T, orders repository.OrderRepository, locker utils.Locker) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	accountRepo := repository.NewMemoryAccounts(store)
	categoryRepo := repository.NewMemoryCategories(store)
	productRepo := repository.NewMemoryProducts(store)
	if orders == nil {
		orders = repository.NewMemoryOrders(store)
	}
	if locker == nil {
		locker = utils.NewKeyedMutex()
	}
	m := metrics.New()
	return &fixture{
		store:      store,
		accounts:   NewAccountService(accountRepo, bcrypt.MinCost),
		categories: NewCategoryService(categoryRepo, productRepo),
		products:   NewProductService(productRepo, categoryRepo, locker),
		orders:     NewOrderService(orders, productRepo, accountRepo, locker, m),
		metrics:    m,
	}
}

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func assertKind(t *testing.T, want domain.ErrorKind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, domain.KindOf(err), "error: %v", err)
}

func (f *fixture) account(t *testing.T, email string) *domain.Account {
	t.Helper()
	a, err := f.accounts.SignUp(context.Background(), AccountInput{Email: ptr(email), Password: ptr("secret")})
	require.NoError(t, err)
	return a
}

func (f *fixture) category(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), CategoryInput{Name: ptr(name)})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name string, price string, stock int) *domain.Product {
	t.Helper()
	c := f.category(t, name+" category")
	p, err := f.products.Create(context.Background(), ProductInput{
		Name: ptr(name), Price: dec(price), Description: ptr("x"), Stock: ptr(stock), CategoryID: ptr(c.ID),
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.products.FindOne(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}
