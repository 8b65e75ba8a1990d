package repository

import (
	"context"
	"errors"

	"github.com/ridloal/product-service/internal/product/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrConstraintViolation wraps any integrity error raised by the store
	// (unique SKU, foreign key, check constraint).
	ErrConstraintViolation = errors.New("constraint violation")
)

type ProductRepository interface {
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	Ping(ctx context.Context) error

	// BeginTx opens a transaction scope. The caller must end it with exactly
	// one Commit or Rollback.
	BeginTx(ctx context.Context) (ProductTx, error)
}

// ProductTx is a transaction-scoped handle. Inserts made through it are
// flushed (IDs assigned) but invisible to others until Commit.
type ProductTx interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	CreateInventory(ctx context.Context, record *domain.InventoryRecord) error
	Commit() error
	Rollback() error
}
