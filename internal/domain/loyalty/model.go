package loyalty

import (
	"time"

	"github.com/gymmawy/gymmawy/internal/types"
)

// Transaction is one entry in the append-only loyalty ledger. Points is the
// absolute magnitude; the direction is carried by Type. The user's
// denormalized balance is updated by the same repository operation that
// appends the row.
type Transaction struct {
	ID        string                       `json:"id" gorm:"column:id;primaryKey"`
	UserID    string                       `json:"user_id" gorm:"column:user_id;index"`
	Points    int                          `json:"points" gorm:"column:points"`
	Type      types.LoyaltyTransactionType `json:"type" gorm:"column:type"`
	Source    types.LoyaltySource          `json:"source" gorm:"column:source"`
	SourceID  string                       `json:"source_id" gorm:"column:source_id;index"`
	CreatedAt time.Time                    `json:"created_at" gorm:"column:created_at"`
}

func (Transaction) TableName() string {
	return "loyalty_transactions"
}
