package order

import (
	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Order is a product purchase with its line items.
type Order struct {
	ID          string            `json:"id" gorm:"column:id;primaryKey"`
	OrderNumber string            `json:"order_number" gorm:"column:order_number;uniqueIndex"`
	UserID      string            `json:"user_id" gorm:"column:user_id;index"`
	OrderStatus types.OrderStatus `json:"order_status" gorm:"column:order_status;index"`
	TotalAmount decimal.Decimal   `json:"total_amount" gorm:"column:total_amount;type:numeric(12,2)"`
	Currency    types.Currency    `json:"currency" gorm:"column:currency"`
	CouponID    *string           `json:"coupon_id,omitempty" gorm:"column:coupon_id"`

	Items []*Item `json:"items,omitempty" gorm:"foreignKey:OrderID"`

	types.BaseModel
}

func (Order) TableName() string {
	return "orders"
}

// Item is one line of an order.
type Item struct {
	ID        string          `json:"id" gorm:"column:id;primaryKey"`
	OrderID   string          `json:"order_id" gorm:"column:order_id;index"`
	ProductID string          `json:"product_id" gorm:"column:product_id;index"`
	Quantity  int             `json:"quantity" gorm:"column:quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"column:unit_price;type:numeric(12,2)"`
}

func (Item) TableName() string {
	return "order_items"
}

// ProductSales is an aggregation row: quantity sold per product.
type ProductSales struct {
	ProductID   string          `json:"product_id"`
	ProductName types.Bilingual `json:"product_name"`
	Quantity    int64           `json:"quantity"`
}
