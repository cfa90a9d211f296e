package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/prodcat/prodcat-go/internal/model"
	"github.com/prodcat/prodcat-go/internal/repository"
)

var (
	ErrProductIDRequired = errors.New("Prod_ID is required")
	ErrNameRequired      = errors.New("Name is required")
	ErrPriceRequired     = errors.New("Price is required")
	ErrCompanyRequired   = errors.New("Company is required")
	ErrProductExists     = errors.New("product already exists")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidThreshold  = errors.New("invalid threshold")
)

// ProductStore is the persistence the catalog service needs.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByProductID(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListFeatured(ctx context.Context) ([]model.Product, error)
	ListPriceBelow(ctx context.Context, threshold float64) ([]model.Product, error)
	ListRatingAbove(ctx context.Context, threshold float64) ([]model.Product, error)
	Update(ctx context.Context, id string, patch model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductService handles catalog queries and mutations.
type ProductService struct {
	repo ProductStore
	now  func() time.Time
}

// NewProductService creates a new ProductService.
func NewProductService(repo ProductStore) *ProductService {
	return &ProductService{repo: repo, now: time.Now}
}

// Create adds a product, rejecting a Prod_ID that is already in use.
func (s *ProductService) Create(ctx context.Context, req model.CreateProductRequest) (model.Product, error) {
	switch {
	case req.ProductID == nil || strings.TrimSpace(*req.ProductID) == "":
		return model.Product{}, ErrProductIDRequired
	case req.Name == nil || *req.Name == "":
		return model.Product{}, ErrNameRequired
	case req.Price == nil:
		return model.Product{}, ErrPriceRequired
	case req.Company == nil || *req.Company == "":
		return model.Product{}, ErrCompanyRequired
	}

	p := model.Product{
		ProductID: *req.ProductID,
		Name:      *req.Name,
		Price:     *req.Price,
		Company:   *req.Company,
		CreatedAt: s.now().UTC(),
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.CreatedAt != nil {
		p.CreatedAt = req.CreatedAt.UTC()
	}

	if _, err := s.repo.GetByProductID(ctx, p.ProductID); err == nil {
		return model.Product{}, ErrProductExists
	} else if !errors.Is(err, repository.ErrProductNotFound) {
		return model.Product{}, fmt.Errorf("looking up product: %w", err)
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrDuplicateProduct) {
			return model.Product{}, ErrProductExists
		}
		return model.Product{}, fmt.Errorf("creating product: %w", err)
	}

	return p, nil
}

// GetAll returns every product.
func (s *ProductService) GetAll(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

// GetByID returns a single product by storage ID.
func (s *ProductService) GetByID(ctx context.Context, id string) (model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Product{}, mapNotFound(err)
	}
	return *p, nil
}

// Update applies a partial update and returns the updated product.
func (s *ProductService) Update(ctx context.Context, id string, req model.UpdateProductRequest) (model.Product, error) {
	if req.ProductID != nil && strings.TrimSpace(*req.ProductID) == "" {
		return model.Product{}, ErrProductIDRequired
	}
	if req.Name != nil && *req.Name == "" {
		return model.Product{}, ErrNameRequired
	}
	if req.Company != nil && *req.Company == "" {
		return model.Product{}, ErrCompanyRequired
	}

	p, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateProduct) {
			return model.Product{}, ErrProductExists
		}
		return model.Product{}, mapNotFound(err)
	}
	return *p, nil
}

// Delete removes a product by storage ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return mapNotFound(s.repo.Delete(ctx, id))
}

// GetFeatured returns the featured products.
func (s *ProductService) GetFeatured(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListFeatured(ctx)
}

// GetByPriceBelow returns products priced strictly below the numeric threshold.
func (s *ProductService) GetByPriceBelow(ctx context.Context, threshold string) ([]model.Product, error) {
	t, err := parseThreshold(threshold)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPriceBelow(ctx, t)
}

// GetByRatingAbove returns products rated strictly above the numeric threshold.
func (s *ProductService) GetByRatingAbove(ctx context.Context, threshold string) ([]model.Product, error) {
	t, err := parseThreshold(threshold)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRatingAbove(ctx, t)
}

func parseThreshold(raw string) (float64, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, ErrInvalidThreshold
	}
	return t, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return ErrProductNotFound
	}
	return err
}
