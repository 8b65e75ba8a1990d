package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ridloal/product-service/internal/platform/logger"
	"github.com/ridloal/product-service/internal/product/domain"
	"github.com/ridloal/product-service/internal/product/repository"
)

var (
	ErrSKUAlreadyExists      = errors.New("SKU already exists")
	ErrProductCreationFailed = errors.New("product creation failed")
)

type ProductService interface {
	// CreateProduct validates payload and stores the product, plus its
	// initial inventory when a warehouse is given, in one transaction.
	// Errors are *domain.ValidationError, ErrSKUAlreadyExists or wrap
	// ErrProductCreationFailed.
	CreateProduct(ctx context.Context, payload map[string]interface{}) (*domain.CreateProductResponse, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	Health(ctx context.Context) error
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, payload map[string]interface{}) (*domain.CreateProductResponse, error) {
	req, err := domain.ParseCreateProductRequest(payload)
	if err != nil {
		return nil, err
	}
	return s.createProduct(ctx, req)
}

func (s *productServiceImpl) createProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.CreateProductResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, storeError("begin transaction", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// a failed commit has already ended the transaction
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Svc.CreateProduct: rollback failed", rbErr, logger.Fields{"sku": req.SKU()})
		}
	}()

	product := &domain.Product{
		Name:  req.Name(),
		SKU:   req.SKU(),
		Price: domain.NewPrice(req.Price()),
	}
	if err := tx.CreateProduct(ctx, product); err != nil {
		return nil, storeError("insert product", err)
	}

	if warehouseID, ok := req.WarehouseID(); ok {
		record := &domain.InventoryRecord{
			ProductID:   product.ID,
			WarehouseID: warehouseID,
			Quantity:    req.InitialQuantity(),
		}
		if err := tx.CreateInventory(ctx, record); err != nil {
			return nil, storeError("insert inventory", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storeError("commit", err)
	}
	committed = true

	logger.Info("Svc.CreateProduct: product created", logger.Fields{"product_id": product.ID, "sku": product.SKU})
	return &domain.CreateProductResponse{
		Message:   domain.ProductCreatedMessage,
		ProductID: product.ID,
	}, nil
}

// storeError maps a repository failure onto the service's error set.
func storeError(step string, err error) error {
	if errors.Is(err, repository.ErrConstraintViolation) {
		return ErrSKUAlreadyExists
	}
	logger.Error("Svc.CreateProduct: "+step+" failed", err)
	return fmt.Errorf("%w: %s: %v", ErrProductCreationFailed, step, err)
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *productServiceImpl) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
