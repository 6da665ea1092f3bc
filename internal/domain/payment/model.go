package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Payment is one recorded purchase attempt, attached polymorphically to a
// subscription, order, or programme purchase via the type tag plus target id.
// Gateway methods carry the gateway transaction id; manual methods carry the
// uploaded proof reference.
type Payment struct {
	ID               string                `json:"id" gorm:"column:id;primaryKey"`
	UserID           string                `json:"user_id" gorm:"column:user_id;index"`
	Amount           decimal.Decimal       `json:"amount" gorm:"column:amount;type:numeric(12,2)"`
	Currency         types.Currency        `json:"currency" gorm:"column:currency;index"`
	Method           types.PaymentMethod   `json:"method" gorm:"column:method"`
	PaymentStatus    types.PaymentStatus   `json:"payment_status" gorm:"column:payment_status;index"`
	PaymentReference string                `json:"payment_reference" gorm:"column:payment_reference;uniqueIndex"`
	TransactionID    *string               `json:"transaction_id,omitempty" gorm:"column:transaction_id"`
	PaymentProofURL  *string               `json:"payment_proof_url,omitempty" gorm:"column:payment_proof_url"`
	PaymentableType  types.PaymentableType `json:"paymentable_type" gorm:"column:paymentable_type;index:idx_payments_paymentable"`
	PaymentableID    string                `json:"paymentable_id" gorm:"column:paymentable_id;index:idx_payments_paymentable"`
	Metadata         datatypes.JSONMap     `json:"metadata,omitempty" gorm:"column:metadata;type:jsonb"`
	ProcessedAt      *time.Time            `json:"processed_at,omitempty" gorm:"column:processed_at"`

	types.BaseModel
}

func (Payment) TableName() string {
	return "payments"
}

// RevenueQuery scopes a revenue sum. Zero-valued fields are ignored.
type RevenueQuery struct {
	PaymentStatus   types.PaymentStatus
	Currency        types.Currency
	PaymentableType types.PaymentableType
	From            *time.Time
	To              *time.Time
}

// CurrencyRevenue is an aggregation row: summed amount per currency.
type CurrencyRevenue struct {
	Currency types.Currency  `json:"currency"`
	Total    decimal.Decimal `json:"total"`
}
