package domain

import (
	"time"
)

// ProductCreatedMessage is the message returned with a newly created product.
const ProductCreatedMessage = "Product created"

// Product is a catalog entry. SKU is unique across products.
type Product struct {
	ID        int64             `json:"id" db:"id" gorm:"primaryKey"`
	Name      string            `json:"name" db:"name" gorm:"not null"`
	SKU       string            `json:"sku" db:"sku" gorm:"column:sku;not null;uniqueIndex:idx_products_sku"`
	Price     Price             `json:"price" db:"price" gorm:"not null"`
	Inventory []InventoryRecord `json:"inventory,omitempty" db:"-" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// InventoryRecord is the stock of one product at one warehouse.
// Warehouses live outside this service, WarehouseID is not checked.
type InventoryRecord struct {
	ID          int64     `json:"id" db:"id" gorm:"primaryKey"`
	ProductID   int64     `json:"product_id" db:"product_id" gorm:"not null;index:idx_inventory_product_id"`
	WarehouseID int64     `json:"warehouse_id" db:"warehouse_id" gorm:"not null"`
	Quantity    int       `json:"quantity" db:"quantity" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func (InventoryRecord) TableName() string {
	return "inventory"
}

// CreateProductResponse is the body of a successful create.
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
}
