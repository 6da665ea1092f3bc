package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Product is one store item sold through orders.
type Product struct {
	ID          string          `json:"id" gorm:"column:id;primaryKey"`
	Name        types.Bilingual `json:"name" gorm:"column:name;type:jsonb"`
	Description types.Bilingual `json:"description" gorm:"column:description;type:jsonb"`
	ImageURL    string          `json:"image_url,omitempty" gorm:"column:image_url"`
	Price       decimal.Decimal `json:"price" gorm:"column:price;type:numeric(12,2)"`
	Currency    types.Currency  `json:"currency" gorm:"column:currency"`
	Stock       int             `json:"stock" gorm:"column:stock"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty" gorm:"column:deleted_at"`

	types.BaseModel
}

func (Product) TableName() string {
	return "products"
}
