package repository

import (
	"context" // Request-scoped cancellation
	"strings" // Case-insensitive email match
	"sync"    // Store locking
	"time"    // Timestamps

	"stock_management/internal/domain" // Domain models and errors
)

// table keeps rows by id plus their insertion order, so listings are stable
type table[T any] struct {
	rows  map[string]T // Rows by ID
	order []string     // IDs in insertion order
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) insert(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...) // Keep the remaining order
			break
		}
	}
	return v, true
}

func (t *table[T]) slice(offset, limit int) []T {
	out := make([]T, 0)
	if offset < 0 || offset >= len(t.order) {
		return out
	}
	end := len(t.order)
	if limit >= 0 && limit < end-offset { // Compared as a remainder so huge limits cannot wrap
		end = offset + limit
	}
	for _, id := range t.order[offset:end] {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	for _, id := range t.order {
		if v := t.rows[id]; match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// MemoryStore is an in-memory store shared by all memory repositories. One
// RWMutex guards every table, so each repository call is atomic.
type MemoryStore struct {
	mu         sync.RWMutex            // Guards every table
	accounts   *table[domain.Account]  // Accounts by ID
	categories *table[domain.Category] // Categories by ID
	products   *table[domain.Product]  // Products by ID
	orders     *table[domain.Order]    // Orders by ID
	now        func() time.Time        // Clock for timestamps
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:   newTable[domain.Account](),
		categories: newTable[domain.Category](),
		products:   newTable[domain.Product](),
		orders:     newTable[domain.Order](),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) stamp(created, updated *time.Time) {
	now := m.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// MemoryAccounts implements AccountRepository on a MemoryStore
type MemoryAccounts struct{ store *MemoryStore }

func NewMemoryAccounts(store *MemoryStore) *MemoryAccounts { return &MemoryAccounts{store: store} }

var _ AccountRepository = (*MemoryAccounts)(nil)

func (r *MemoryAccounts) Create(_ context.Context, a *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts.get(a.ID); ok {
		return ErrDuplicate
	}
	if r.emailTaken(a.Email, a.ID) {
		return ErrDuplicate
	}
	if a.Role == "" {
		a.Role = domain.RoleUser // Column default in SQL stores
	}
	r.store.stamp(&a.CreatedAt, &a.UpdatedAt)
	r.store.accounts.insert(a.ID, *a)
	return nil
}

func (r *MemoryAccounts) emailTaken(email, exceptID string) bool {
	_, ok := r.store.accounts.find(func(x domain.Account) bool {
		return x.ID != exceptID && strings.EqualFold(x.Email, email)
	})
	return ok
}

func (r *MemoryAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	a, ok := r.store.accounts.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	a, ok := r.store.accounts.find(func(x domain.Account) bool { return strings.EqualFold(x.Email, email) })
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAccounts) Update(_ context.Context, a *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts.get(a.ID); !ok {
		return ErrNotFound
	}
	if r.emailTaken(a.Email, a.ID) {
		return ErrDuplicate
	}
	r.store.stamp(&a.CreatedAt, &a.UpdatedAt)
	r.store.accounts.insert(a.ID, *a)
	return nil
}

func (r *MemoryAccounts) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts.remove(id); !ok {
		return ErrNotFound
	}
	return nil
}

func (r *MemoryAccounts) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.accounts.rows)), nil
}

func (r *MemoryAccounts) List(_ context.Context, offset, limit int) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.accounts.slice(offset, limit), nil
}

// MemoryCategories implements CategoryRepository on a MemoryStore
type MemoryCategories struct{ store *MemoryStore }

func NewMemoryCategories(store *MemoryStore) *MemoryCategories {
	return &MemoryCategories{store: store}
}

var _ CategoryRepository = (*MemoryCategories)(nil)

func (r *MemoryCategories) nameTaken(name, exceptID string) bool {
	_, ok := r.store.categories.find(func(x domain.Category) bool {
		return x.ID != exceptID && x.Name == name
	})
	return ok
}

func (r *MemoryCategories) Create(_ context.Context, c *domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories.get(c.ID); ok || r.nameTaken(c.Name, c.ID) {
		return ErrDuplicate
	}
	r.store.stamp(&c.CreatedAt, &c.UpdatedAt)
	r.store.categories.insert(c.ID, *c)
	return nil
}

func (r *MemoryCategories) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.categories.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryCategories) GetByName(_ context.Context, name string) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.categories.find(func(x domain.Category) bool { return x.Name == name })
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryCategories) Update(_ context.Context, c *domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories.get(c.ID); !ok {
		return ErrNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return ErrDuplicate
	}
	r.store.stamp(&c.CreatedAt, &c.UpdatedAt)
	r.store.categories.insert(c.ID, *c)
	return nil
}

func (r *MemoryCategories) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories.remove(id); !ok {
		return ErrNotFound
	}
	return nil
}

func (r *MemoryCategories) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.categories.rows)), nil
}

func (r *MemoryCategories) List(_ context.Context, offset, limit int) ([]domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.categories.slice(offset, limit), nil
}

// MemoryProducts implements ProductRepository on a MemoryStore
type MemoryProducts struct{ store *MemoryStore }

func NewMemoryProducts(store *MemoryStore) *MemoryProducts { return &MemoryProducts{store: store} }

var _ ProductRepository = (*MemoryProducts)(nil)

func (r *MemoryProducts) nameTaken(name, exceptID string) bool {
	_, ok := r.store.products.find(func(x domain.Product) bool {
		return x.ID != exceptID && x.Name == name
	})
	return ok
}

// expand resolves the category reference the way a join would; caller holds the lock
func (r *MemoryProducts) expand(p domain.Product) domain.Product {
	p.Category = nil
	if c, ok := r.store.categories.get(p.CategoryID); ok {
		p.Category = c.Ref()
	}
	return p
}

func (r *MemoryProducts) Create(_ context.Context, p *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products.get(p.ID); ok || r.nameTaken(p.Name, p.ID) {
		return ErrDuplicate
	}
	r.store.stamp(&p.CreatedAt, &p.UpdatedAt)
	row := *p
	row.Category = nil
	r.store.products.insert(p.ID, row)
	return nil
}

func (r *MemoryProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	p = r.expand(p)
	return &p, nil
}

func (r *MemoryProducts) GetByName(_ context.Context, name string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products.find(func(x domain.Product) bool { return x.Name == name })
	if !ok {
		return nil, ErrNotFound
	}
	p = r.expand(p)
	return &p, nil
}

func (r *MemoryProducts) Update(_ context.Context, p *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products.get(p.ID); !ok {
		return ErrNotFound
	}
	if r.nameTaken(p.Name, p.ID) {
		return ErrDuplicate
	}
	r.store.stamp(&p.CreatedAt, &p.UpdatedAt)
	row := *p
	row.Category = nil
	r.store.products.insert(p.ID, row)
	return nil
}

func (r *MemoryProducts) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products.remove(id); !ok {
		return ErrNotFound
	}
	return nil
}

func (r *MemoryProducts) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.products.rows)), nil
}

func (r *MemoryProducts) List(_ context.Context, offset, limit int) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := r.store.products.slice(offset, limit)
	for i := range out {
		out[i] = r.expand(out[i])
	}
	return out, nil
}

func (r *MemoryProducts) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var n int64
	for _, p := range r.store.products.rows {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryProducts) DecrementStock(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products.get(id)
	if !ok {
		return ErrNotFound
	}
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	p.Stock--
	p.UpdatedAt = r.store.now()
	r.store.products.insert(id, p)
	return nil
}

func (r *MemoryProducts) IncrementStock(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products.get(id)
	if !ok {
		return ErrNotFound
	}
	p.Stock++
	p.UpdatedAt = r.store.now()
	r.store.products.insert(id, p)
	return nil
}

// MemoryOrders implements OrderRepository on a MemoryStore
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

// expand resolves account and product references; caller holds the lock
func (r *MemoryOrders) expand(o domain.Order) domain.Order {
	o.Account, o.Product = nil, nil
	if a, ok := r.store.accounts.get(o.AccountID); ok {
		o.Account = a.Ref()
	}
	if p, ok := r.store.products.get(o.ProductID); ok {
		o.Product = p.Ref()
	}
	return o
}

func strip(o domain.Order) domain.Order {
	o.Account, o.Product = nil, nil
	return o
}

func (r *MemoryOrders) Create(_ context.Context, o *domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders.get(o.ID); ok {
		return ErrDuplicate
	}
	r.store.stamp(&o.CreatedAt, &o.UpdatedAt)
	r.store.orders.insert(o.ID, strip(*o))
	return nil
}

func (r *MemoryOrders) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	o, ok := r.store.orders.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	o = r.expand(o)
	return &o, nil
}

func (r *MemoryOrders) Update(_ context.Context, o *domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders.get(o.ID); !ok {
		return ErrNotFound
	}
	r.store.stamp(&o.CreatedAt, &o.UpdatedAt)
	r.store.orders.insert(o.ID, strip(*o))
	return nil
}

func (r *MemoryOrders) Delete(_ context.Context, id string) (*domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders.remove(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *MemoryOrders) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.orders.rows)), nil
}

func (r *MemoryOrders) List(_ context.Context, offset, limit int) ([]domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := r.store.orders.slice(offset, limit)
	for i := range out {
		out[i] = r.expand(out[i])
	}
	return out, nil
}
