package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel matching

	"stock_management/internal/domain"     // Domain models and errors
	"stock_management/internal/metrics"    // Order counters
	"stock_management/internal/pagination" // Paged listings
	"stock_management/internal/repository" // Storage interfaces
	"stock_management/internal/utils"      // Product locks

	"github.com/shopspring/decimal" // Exact amounts
	"github.com/sirupsen/logrus"    // Structured logging
)

// OrderInput carries the order fields of a request. Nil means "not supplied".
type OrderInput struct {
	Status    *domain.OrderStatus // Lifecycle status
	Total     *decimal.Decimal    // Order amount
	AccountID *string             // Ordering account
	ProductID *string             // Ordered product
}

func (in OrderInput) check() error {
	if in.Status != nil && !in.Status.Valid() {
		return domain.Invalid("status", "Status must be 'processing', 'shipped' or 'delivered'")
	}
	if in.Total != nil && in.Total.IsNegative() {
		return domain.Invalid("total", "Total must not be negative")
	}
	return nil
}

// OrderService couples the order lifecycle with product stock: placing an
// order takes one unit, deleting it gives the unit back.
type OrderService struct {
	orders   repository.OrderRepository   // Order storage
	products repository.ProductRepository // Stock lives here
	accounts repository.AccountRepository // Account existence checks
	locker   utils.Locker                 // One critical section per product
	metrics  *metrics.Metrics             // Nil disables counters
}

// NewOrderService creates the service. A nil locker falls back to a
// process-local lock; a nil m disables metrics.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	accounts repository.AccountRepository,
	locker utils.Locker,
	m *metrics.Metrics,
) *OrderService {
	if locker == nil {
		locker = utils.NewKeyedMutex()
	}
	return &OrderService{orders: orders, products: products, accounts: accounts, locker: locker, metrics: m}
}

func (s *OrderService) requireAccount(ctx context.Context, id string) (*domain.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityAccount, "email", err)
	}
	return a, nil
}

func (s *OrderService) requireProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityProduct, "name", err)
	}
	return p, nil
}

// lockOrder loads the order and holds the lock of the product it references.
// The order is re-read under the lock until its product stops moving.
func (s *OrderService) lockOrder(ctx context.Context, id string) (*domain.Order, func(), error) {
	for {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return nil, nil, storeError(domain.EntityOrder, "id", err)
		}
		unlock, err := s.locker.Lock(ctx, productLockKey(o.ProductID))
		if err != nil {
			return nil, nil, domain.Internal("Failed to lock product", err)
		}
		current, err := s.orders.GetByID(ctx, id) // State as seen under the lock
		if err != nil {
			unlock()
			return nil, nil, storeError(domain.EntityOrder, "id", err)
		}
		if current.ProductID == o.ProductID {
			return current, unlock, nil
		}
		unlock() // Product swapped while waiting, follow it
	}
}

// Create places an order for one unit of a product. The total defaults to
// the product price and the status to processing.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	switch {
	case in.AccountID == nil:
		return nil, domain.Invalid("account", "account is required")
	case in.ProductID == nil:
		return nil, domain.Invalid("product", "product is required")
	}
	if err := in.check(); err != nil {
		return nil, err
	}

	account, err := s.requireAccount(ctx, *in.AccountID)
	if err != nil {
		s.metrics.OrderRejected("account_not_found")
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, productLockKey(*in.ProductID))
	if err != nil {
		return nil, domain.Internal("Failed to lock product", err)
	}
	defer unlock() // Held until the order row exists

	product, err := s.requireProduct(ctx, *in.ProductID)
	if err != nil {
		s.metrics.OrderRejected("product_not_found")
		return nil, err
	}
	if product.Stock <= 0 {
		s.metrics.OrderRejected("out_of_stock")
		return nil, domain.OutOfStock() // 400 Product is out of stock
	}

	order := &domain.Order{
		ID:        newID(),
		Status:    domain.OrderStatusProcessing,
		Total:     product.Price,
		AccountID: account.ID,
		ProductID: product.ID,
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	if in.Total != nil {
		order.Total = *in.Total // An explicit zero is kept
	}

	// The decrement itself is conditional, so stock stays non-negative even
	// when another instance bypasses the lock.
	if err := s.products.DecrementStock(ctx, product.ID); err != nil {
		if errors.Is(err, repository.ErrOutOfStock) {
			s.metrics.OrderRejected("out_of_stock")
		}
		return nil, storeError(domain.EntityProduct, "name", err)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// Give the unit back; the request context may already be cancelled
		if rerr := s.products.IncrementStock(context.WithoutCancel(ctx), product.ID); rerr != nil {
			logrus.WithFields(logrus.Fields{"product_id": product.ID, "error": rerr}).
				Error("Failed to restore stock after order insert failure")
		}
		return nil, domain.Internal("Failed to create order", err)
	}

	s.metrics.OrderPlaced()
	logrus.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"account_id": order.AccountID,
		"product_id": order.ProductID,
		"total":      order.Total.String(),
		"stock_left": product.Stock - 1,
	}).Info("Order placed")

	order.Account = account.Ref() // Expanded like a read
	order.Product = product.Ref()
	return order, nil
}

// Update merges the supplied fields. Swapping the product does not move stock
// between products. The current product stays locked so a concurrent delete
// restores the unit to whichever product the order ends up on.
func (s *OrderService) Update(ctx context.Context, id string, in OrderInput) (*domain.Order, error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	o, unlock, err := s.lockOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if in.AccountID != nil {
		if _, err := s.requireAccount(ctx, *in.AccountID); err != nil {
			return nil, err
		}
		o.AccountID = *in.AccountID
	}
	if in.ProductID != nil {
		if _, err := s.requireProduct(ctx, *in.ProductID); err != nil {
			return nil, err
		}
		o.ProductID = *in.ProductID
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
	if in.Total != nil {
		o.Total = *in.Total
	}

	o.Account, o.Product = nil, nil // Projections are not written back
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, storeError(domain.EntityOrder, "id", err)
	}
	return s.FindOne(ctx, id) // Re-read with fresh expansions
}

// FindAll lists orders with account and product expanded
func (s *OrderService) FindAll(ctx context.Context, page, pageSize string) (*pagination.Page[domain.Order], error) {
	p, err := pagination.Paginate[domain.Order](ctx, s.orders, page, pageSize)
	if err != nil {
		return nil, domain.Internal("Failed to list orders", err)
	}
	return p, nil
}

func (s *OrderService) FindOne(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityOrder, "id", err)
	}
	return o, nil
}

// Delete removes the order and returns its unit to the product, whatever the
// order status. A product that no longer exists is left alone.
func (s *OrderService) Delete(ctx context.Context, id string) (*domain.Order, error) {
	o, unlock, err := s.lockOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// A concurrent delete of the same order wins here and restores the unit once
	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityOrder, "id", err)
	}

	restored := true
	if err := s.products.IncrementStock(context.WithoutCancel(ctx), deleted.ProductID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithFields(logrus.Fields{"order_id": id, "product_id": deleted.ProductID, "error": err}).
				Error("Failed to restore stock for deleted order")
			return nil, domain.Internal("Failed to restore product stock", err)
		}
		restored = false // Product is gone, nothing to give back
	}

	s.metrics.OrderDeleted(restored)
	logrus.WithFields(logrus.Fields{
		"order_id":   id,
		"product_id": deleted.ProductID,
		"restored":   restored,
	}).Info("Order deleted")

	deleted.Account, deleted.Product = o.Account, o.Product
	return deleted, nil
}
