package repository

import (
	"context"
	"fmt"

	"github.com/Irishery/products-parser/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository persists enriched products as they are imported, so
// an aborted run keeps what it already fetched.
type CatalogRepository interface {
	SaveProduct(ctx context.Context, product *domain.Product) error
}

type catalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

func (r *catalogRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	query := `
	INSERT INTO products (id, category, data)
	VALUES ($1, $2, $3)
	ON CONFLICT (id)
	DO UPDATE SET category = $2, data = $3`
	_, err := r.db.Exec(ctx, query, product.ID, product.Category, product)
	if err != nil {
		return fmt.Errorf("failed to save product %d: %w", product.ID, err)
	}

	return nil
}
