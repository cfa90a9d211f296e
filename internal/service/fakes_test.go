package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/prodcat/prodcat-go/internal/model"
	"github.com/prodcat/prodcat-go/internal/repository"
)

// memUserStore mirrors the unique email index of the users table.
type memUserStore struct {
	mu      sync.Mutex
	users   map[string]model.User
	nextID  int
	failErr error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]model.User)}
}

func (m *memUserStore) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	m.nextID++
	user.ID = "user-" + strconv.Itoa(m.nextID)
	m.users[user.Email] = *user
	return nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return nil, m.failErr
	}
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

// memProductStore keeps products in insertion order and enforces the
// unique Prod_ID index.
type memProductStore struct {
	mu       sync.Mutex
	products []model.Product
	nextID   int
}

func newMemProductStore() *memProductStore {
	return &memProductStore{}
}

func (m *memProductStore) Create(_ context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.products {
		if existing.ProductID == p.ProductID {
			return repository.ErrDuplicateProduct
		}
	}
	m.nextID++
	p.ID = "prod-" + strconv.Itoa(m.nextID)
	m.products = append(m.products, *p)
	return nil
}

func (m *memProductStore) GetByID(_ context.Context, id string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *memProductStore) GetByProductID(_ context.Context, productID string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ProductID == productID {
			return &p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *memProductStore) filter(keep func(model.Product) bool) []model.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.Product{}
	for _, p := range m.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (m *memProductStore) List(_ context.Context) ([]model.Product, error) {
	return m.filter(func(model.Product) bool { return true }), nil
}

func (m *memProductStore) ListFeatured(_ context.Context) ([]model.Product, error) {
	return m.filter(func(p model.Product) bool { return p.Featured }), nil
}

func (m *memProductStore) ListPriceBelow(_ context.Context, t float64) ([]model.Product, error) {
	return m.filter(func(p model.Product) bool { return p.Price < t }), nil
}

func (m *memProductStore) ListRatingAbove(_ context.Context, t float64) ([]model.Product, error) {
	return m.filter(func(p model.Product) bool { return p.Rating > t }), nil
}

func (m *memProductStore) Update(_ context.Context, id string, patch model.UpdateProductRequest) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.products {
		if m.products[i].ID != id {
			continue
		}
		updated := m.products[i]
		patch.Apply(&updated)
		for j, other := range m.products {
			if j != i && other.ProductID == updated.ProductID {
				return nil, repository.ErrDuplicateProduct
			}
		}
		m.products[i] = updated
		return &updated, nil
	}
	return nil, repository.ErrProductNotFound
}

func (m *memProductStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}
