package programme

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Programme is a purchasable training programme with per-currency prices and
// a programme-level percentage discount, priced the same way plans are.
type Programme struct {
	ID                    string          `json:"id" gorm:"column:id;primaryKey"`
	Name                  types.Bilingual `json:"name" gorm:"column:name;type:jsonb"`
	Description           types.Bilingual `json:"description" gorm:"column:description;type:jsonb"`
	ImageURL              string          `json:"image_url,omitempty" gorm:"column:image_url"`
	DiscountPercentage    decimal.Decimal `json:"discount_percentage" gorm:"column:discount_percentage;type:numeric(5,2)"`
	LoyaltyPointsAwarded  int             `json:"loyalty_points_awarded" gorm:"column:loyalty_points_awarded"`
	LoyaltyPointsRequired int             `json:"loyalty_points_required" gorm:"column:loyalty_points_required"`
	DisplayOrder          int             `json:"display_order" gorm:"column:display_order"`
	DeletedAt             *time.Time      `json:"deleted_at,omitempty" gorm:"column:deleted_at"`

	Prices []*Price `json:"prices,omitempty" gorm:"foreignKey:ProgrammeID"`

	types.BaseModel
}

func (Programme) TableName() string {
	return "programmes"
}

// PriceFor finds the price row for a currency among loaded prices.
func (p *Programme) PriceFor(currency types.Currency) *Price {
	for _, price := range p.Prices {
		if price.Currency == currency {
			return price
		}
	}
	return nil
}

// Price is one currency price row of a programme.
type Price struct {
	ID          string          `json:"id" gorm:"column:id;primaryKey"`
	ProgrammeID string          `json:"programme_id" gorm:"column:programme_id;index:idx_programme_prices_lookup,unique"`
	Currency    types.Currency  `json:"currency" gorm:"column:currency;index:idx_programme_prices_lookup,unique"`
	Amount      decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(12,2)"`

	types.BaseModel
}

func (Price) TableName() string {
	return "programme_prices"
}

// Purchase is one purchase of a programme, created alongside its payment the
// same way subscriptions are.
type Purchase struct {
	ID                 string          `json:"id" gorm:"column:id;primaryKey"`
	PurchaseNumber     string          `json:"purchase_number" gorm:"column:purchase_number;uniqueIndex"`
	UserID             string          `json:"user_id" gorm:"column:user_id;index"`
	ProgrammeID        string          `json:"programme_id" gorm:"column:programme_id;index"`
	Price              decimal.Decimal `json:"price" gorm:"column:price;type:numeric(12,2)"`
	Currency           types.Currency  `json:"currency" gorm:"column:currency"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" gorm:"column:discount_percentage;type:numeric(5,2)"`
	CouponID           *string         `json:"coupon_id,omitempty" gorm:"column:coupon_id"`
	CouponDiscount     decimal.Decimal `json:"coupon_discount" gorm:"column:coupon_discount;type:numeric(12,2)"`
	PurchasedAt        time.Time       `json:"purchased_at" gorm:"column:purchased_at"`

	Programme *Programme `json:"programme,omitempty" gorm:"foreignKey:ProgrammeID"`

	types.BaseModel
}

func (Purchase) TableName() string {
	return "programme_purchases"
}

// ProgrammeCount is an aggregation row: purchases per programme.
type ProgrammeCount struct {
	ProgrammeID   string          `json:"programme_id"`
	ProgrammeName types.Bilingual `json:"programme_name"`
	Count         int64           `json:"count"`
}
