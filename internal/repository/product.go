package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prodcat/prodcat-go/internal/model"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product id already exists")
)

const productColumns = `id, prod_id, name, price, featured, rating, created_at, company`

// ProductRepository handles product persistence operations.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product and sets the generated storage ID on it.
func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query,
		id, p.ProductID, p.Name, p.Price, p.Featured, p.Rating, p.CreatedAt, p.Company,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateProduct
		}
		return err
	}

	p.ID = id
	return nil
}

// GetByID retrieves a product by its storage ID. Identifiers that are not
// valid UUIDs cannot exist and are reported as ErrProductNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

// GetByProductID retrieves a product by its business key.
func (r *ProductRepository) GetByProductID(ctx context.Context, productID string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE prod_id = ?`
	return scanProduct(r.db.QueryRowContext(ctx, query, productID))
}

// List returns every product in the store's natural order.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products`)
}

// ListFeatured returns all products flagged as featured.
func (r *ProductRepository) ListFeatured(ctx context.Context) ([]model.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE featured = TRUE`)
}

// ListPriceBelow returns all products priced strictly below threshold.
func (r *ProductRepository) ListPriceBelow(ctx context.Context, threshold float64) ([]model.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE price < ?`, threshold)
}

// ListRatingAbove returns all products rated strictly above threshold.
func (r *ProductRepository) ListRatingAbove(ctx context.Context, threshold float64) ([]model.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE rating > ?`, threshold)
}

// Update merges patch onto the stored product inside a transaction and
// returns the resulting record.
func (r *ProductRepository) Update(ctx context.Context, id string, patch model.UpdateProductRequest) (*model.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ? FOR UPDATE`
	p, err := scanProduct(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	patch.Apply(p)

	update := `UPDATE products
		SET prod_id = ?, name = ?, price = ?, featured = ?, rating = ?, created_at = ?, company = ?
		WHERE id = ?`
	_, err = tx.ExecContext(ctx, update,
		p.ProductID, p.Name, p.Price, p.Featured, p.Rating, p.CreatedAt, p.Company, p.ID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateProduct
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing product update: %w", err)
	}

	return p, nil
}

// Delete removes a product by its storage ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID, &p.ProductID, &p.Name, &p.Price,
		&p.Featured, &p.Rating, &p.CreatedAt, &p.Company,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}
