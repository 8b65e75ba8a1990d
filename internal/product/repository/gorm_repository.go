package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ridloal/product-service/internal/platform/logger"
	"github.com/ridloal/product-service/internal/product/domain"
)

// AutoMigrate creates the products and inventory tables for the gorm backend.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Product{}, &domain.InventoryRecord{})
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *gormProductRepository) BeginTx(ctx context.Context) (ProductTx, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		logger.Error("BeginTx: failed to begin transaction", tx.Error)
		return nil, tx.Error
	}
	return &gormProductTx{tx: tx}, nil
}

func (r *gormProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Inventory", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err, logger.Fields{"product_id": id})
		return nil, err
	}
	if p.Inventory == nil {
		p.Inventory = []domain.InventoryRecord{}
	}
	return &p, nil
}

type gormProductTx struct {
	tx *gorm.DB
}

// CreateProduct inserts and flushes the product so product.ID is set while
// the transaction stays open.
func (t *gormProductTx) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := t.tx.WithContext(ctx).Create(product).Error; err != nil {
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

func (t *gormProductTx) CreateInventory(ctx context.Context, record *domain.InventoryRecord) error {
	if err := t.tx.WithContext(ctx).Create(record).Error; err != nil {
		err = classify(err)
		logger.Error("CreateInventory: failed to insert inventory", err, logger.Fields{
			"product_id":   record.ProductID,
			"warehouse_id": record.WarehouseID,
		})
		return err
	}
	return nil
}

func (t *gormProductTx) Commit() error {
	return classify(t.tx.Commit().Error)
}

func (t *gormProductTx) Rollback() error {
	return t.tx.Rollback().Error
}
