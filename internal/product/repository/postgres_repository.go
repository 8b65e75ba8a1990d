package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ridloal/product-service/internal/platform/logger"
	"github.com/ridloal/product-service/internal/product/domain"
)

type postgresProductRepository struct {
	db *sqlx.DB
}

func NewPostgresProductRepository(db *sqlx.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *postgresProductRepository) BeginTx(ctx context.Context) (ProductTx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("BeginTx: failed to begin transaction", err)
		return nil, err
	}
	return &postgresProductTx{tx: tx}, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, name, sku, price, created_at, updated_at FROM products WHERE id = $1`
	var p domain.Product
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err, logger.Fields{"product_id": id})
		return nil, err
	}

	invQuery := `SELECT id, product_id, warehouse_id, quantity, created_at, updated_at
              FROM inventory WHERE product_id = $1 ORDER BY id`
	inventory := []domain.InventoryRecord{}
	if err := r.db.SelectContext(ctx, &inventory, invQuery, id); err != nil {
		logger.Error("GetProductByID: inventory query failed", err, logger.Fields{"product_id": id})
		return nil, err
	}
	p.Inventory = inventory
	return &p, nil
}

type postgresProductTx struct {
	tx *sqlx.Tx
}

func (t *postgresProductTx) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (name, sku, price, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := t.tx.QueryRowxContext(ctx, query,
		product.Name, product.SKU, product.Price, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrConstraintViolation) {
			logger.Warn("CreateProduct: constraint violation", logger.Fields{"sku": product.SKU})
		} else {
			logger.Error("CreateProduct: failed to insert product", err, logger.Fields{"sku": product.SKU})
		}
		return err
	}
	return nil
}

func (t *postgresProductTx) CreateInventory(ctx context.Context, record *domain.InventoryRecord) error {
	query := `INSERT INTO inventory (product_id, warehouse_id, quantity, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	err := t.tx.QueryRowxContext(ctx, query,
		record.ProductID, record.WarehouseID, record.Quantity, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)
	if err != nil {
		err = classify(err)
		logger.Error("CreateInventory: failed to insert inventory", err, logger.Fields{
			"product_id":   record.ProductID,
			"warehouse_id": record.WarehouseID,
		})
		return err
	}
	return nil
}

func (t *postgresProductTx) Commit() error {
	return classify(t.tx.Commit())
}

func (t *postgresProductTx) Rollback() error {
	return t.tx.Rollback()
}
