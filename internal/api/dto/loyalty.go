package dto

import (
	"github.com/gymmawy/gymmawy/internal/domain/loyalty"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

// AdjustLoyaltyPointsRequest credits or debits a member's balance from the
// admin dashboard.
type AdjustLoyaltyPointsRequest struct {
	Points int                          `json:"points" validate:"required,gt=0"`
	Type   types.LoyaltyTransactionType `json:"type" validate:"required"`
}

func (r *AdjustLoyaltyPointsRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Type.Validate()
}

type LoyaltyTransactionResponse struct {
	*loyalty.Transaction
}

func NewLoyaltyTransactionResponse(t *loyalty.Transaction) *LoyaltyTransactionResponse {
	return &LoyaltyTransactionResponse{Transaction: t}
}

type ListLoyaltyTransactionsResponse = types.ListResponse[*LoyaltyTransactionResponse]

// LoyaltyBalanceResponse pairs the denormalized balance with ledger totals.
type LoyaltyBalanceResponse struct {
	UserID        string `json:"user_id"`
	Balance       int    `json:"balance"`
	TotalEarned   int64  `json:"total_earned"`
	TotalRedeemed int64  `json:"total_redeemed"`
}
