package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Price is an exact decimal amount. SQLite has no exact numeric column
// type, so prices are stored as TEXT there and as NUMERIC everywhere else.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

func (Price) GormDataType() string {
	return "numeric"
}

func (Price) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "TEXT"
	}
	return "numeric"
}
