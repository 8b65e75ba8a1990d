package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	pDomain "github.com/ridloal/product-service/internal/product/domain"
	pRepo "github.com/ridloal/product-service/internal/product/repository"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (*pDomain.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*pDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductRepository) BeginTx(ctx context.Context) (pRepo.ProductTx, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(pRepo.ProductTx), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProductTx assigns IDs on successful inserts the way the store would.
type MockProductTx struct {
	mock.Mock
	NextProductID   int64
	NextInventoryID int64
}

func (m *MockProductTx) CreateProduct(ctx context.Context, product *pDomain.Product) error {
	args := m.Called(ctx, product)
	if product != nil && args.Error(0) == nil {
		m.NextProductID++
		product.ID = m.NextProductID
	}
	return args.Error(0)
}

func (m *MockProductTx) CreateInventory(ctx context.Context, record *pDomain.InventoryRecord) error {
	args := m.Called(ctx, record)
	if record != nil && args.Error(0) == nil {
		m.NextInventoryID++
		record.ID = m.NextInventoryID
	}
	return args.Error(0)
}

func (m *MockProductTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockProductTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}
