package handler

import (
	"context"
	"fmt"
	"sync"

	"github.com/prodcat/prodcat-go/internal/model"
	"github.com/prodcat/prodcat-go/internal/repository"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	f.users[u.Email] = *u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

type fakeProducts struct {
	mu     sync.Mutex
	items  []model.Product
	nextID int
	err    error
}

func (f *fakeProducts) find(id string) int {
	for i, p := range f.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeProducts) Create(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.ProductID == p.ProductID {
			return repository.ErrDuplicateProduct
		}
	}
	f.nextID++
	p.ID = fmt.Sprintf("prod-%d", f.nextID)
	f.items = append(f.items, *p)
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.find(id); i >= 0 {
		p := f.items[i]
		return &p, nil
	}
	return nil, repository.ErrProductNotFound
}

func (f *fakeProducts) GetByProductID(_ context.Context, productID string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ProductID == productID {
			return &p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (f *fakeProducts) where(keep func(model.Product) bool) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Product{}
	for _, p := range f.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) List(context.Context) ([]model.Product, error) {
	return f.where(func(model.Product) bool { return true })
}

func (f *fakeProducts) ListFeatured(context.Context) ([]model.Product, error) {
	return f.where(func(p model.Product) bool { return p.Featured })
}

func (f *fakeProducts) ListPriceBelow(_ context.Context, t float64) ([]model.Product, error) {
	return f.where(func(p model.Product) bool { return p.Price < t })
}

func (f *fakeProducts) ListRatingAbove(_ context.Context, t float64) ([]model.Product, error) {
	return f.where(func(p model.Product) bool { return p.Rating > t })
}

func (f *fakeProducts) Update(_ context.Context, id string, patch model.UpdateProductRequest) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return nil, repository.ErrProductNotFound
	}
	patch.Apply(&f.items[i])
	p := f.items[i]
	return &p, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(id)
	if i < 0 {
		return repository.ErrProductNotFound
	}
	f.items = append(f.items[:i], f.items[i+1:]...)
	return nil
}
