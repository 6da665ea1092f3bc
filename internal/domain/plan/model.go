package plan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Plan is a subscription offering. Duration is split into paid days and bonus
// gift days; both count towards the end date stamped at approval. The medical
// loyalty-point values apply when a subscription is purchased with the medical
// flag.
type Plan struct {
	ID                           string          `json:"id" gorm:"column:id;primaryKey"`
	Name                         types.Bilingual `json:"name" gorm:"column:name;type:jsonb"`
	Description                  types.Bilingual `json:"description" gorm:"column:description;type:jsonb"`
	ImageURL                     string          `json:"image_url,omitempty" gorm:"column:image_url"`
	DurationDays                 int             `json:"duration_days" gorm:"column:duration_days"`
	GiftDays                     int             `json:"gift_days" gorm:"column:gift_days"`
	DiscountPercentage           decimal.Decimal `json:"discount_percentage" gorm:"column:discount_percentage;type:numeric(5,2)"`
	LoyaltyPointsAwarded         int             `json:"loyalty_points_awarded" gorm:"column:loyalty_points_awarded"`
	LoyaltyPointsRequired        int             `json:"loyalty_points_required" gorm:"column:loyalty_points_required"`
	MedicalLoyaltyPointsAwarded  int             `json:"medical_loyalty_points_awarded" gorm:"column:medical_loyalty_points_awarded"`
	MedicalLoyaltyPointsRequired int             `json:"medical_loyalty_points_required" gorm:"column:medical_loyalty_points_required"`
	DisplayOrder                 int             `json:"display_order" gorm:"column:display_order"`
	IsActive                     bool            `json:"is_active" gorm:"column:is_active;default:true"`
	DeletedAt                    *time.Time      `json:"deleted_at,omitempty" gorm:"column:deleted_at"`

	Prices []*PlanPrice `json:"prices,omitempty" gorm:"foreignKey:PlanID"`

	types.BaseModel
}

func (Plan) TableName() string {
	return "plans"
}

// TotalDays is the full paid-plus-gift duration used for end-date math.
func (p *Plan) TotalDays() int {
	return p.DurationDays + p.GiftDays
}

// LoyaltyAward returns the points awarded on approval for the given purchase
// type.
func (p *Plan) LoyaltyAward(isMedical bool) int {
	if isMedical {
		return p.MedicalLoyaltyPointsAwarded
	}
	return p.LoyaltyPointsAwarded
}

// PriceFor finds the price row matching the currency and type among loaded
// prices. Returns nil when the plan does not offer that combination.
func (p *Plan) PriceFor(currency types.Currency, priceType types.PlanPriceType) *PlanPrice {
	for _, price := range p.Prices {
		if price.Currency == currency && price.Type == priceType {
			return price
		}
	}
	return nil
}

// PlanPrice is one (currency, purchase type) price row of a plan. Rows are
// immutable once read for a purchase; repricing creates new rows rather than
// rewriting historical subscriptions.
type PlanPrice struct {
	ID       string              `json:"id" gorm:"column:id;primaryKey"`
	PlanID   string              `json:"plan_id" gorm:"column:plan_id;index:idx_plan_prices_lookup,unique"`
	Currency types.Currency      `json:"currency" gorm:"column:currency;index:idx_plan_prices_lookup,unique"`
	Type     types.PlanPriceType `json:"type" gorm:"column:type;index:idx_plan_prices_lookup,unique"`
	Amount   decimal.Decimal     `json:"amount" gorm:"column:amount;type:numeric(12,2)"`

	types.BaseModel
}

func (PlanPrice) TableName() string {
	return "plan_prices"
}
