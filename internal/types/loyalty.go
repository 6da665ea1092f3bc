package types

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// LoyaltyTransactionType is the direction of a loyalty ledger entry.
type LoyaltyTransactionType string

const (
	LoyaltyTransactionTypeEarned   LoyaltyTransactionType = "EARNED"
	LoyaltyTransactionTypeRedeemed LoyaltyTransactionType = "REDEEMED"
)

func (t LoyaltyTransactionType) String() string {
	return string(t)
}

func (t LoyaltyTransactionType) Validate() error {
	switch t {
	case LoyaltyTransactionTypeEarned, LoyaltyTransactionTypeRedeemed:
		return nil
	default:
		return ierr.NewErrorf("invalid loyalty transaction type: %s", t).
			Mark(ierr.ErrValidation)
	}
}

// LoyaltySource tags the entity that produced a loyalty ledger entry.
type LoyaltySource string

const (
	LoyaltySourceSubscription      LoyaltySource = "SUBSCRIPTION"
	LoyaltySourceOrder             LoyaltySource = "ORDER"
	LoyaltySourceProgrammePurchase LoyaltySource = "PROGRAMME_PURCHASE"
	LoyaltySourceAdminAdjustment   LoyaltySource = "ADMIN_ADJUSTMENT"
)

func (s LoyaltySource) String() string {
	return string(s)
}

func (s LoyaltySource) Validate() error {
	switch s {
	case LoyaltySourceSubscription, LoyaltySourceOrder,
		LoyaltySourceProgrammePurchase, LoyaltySourceAdminAdjustment:
		return nil
	default:
		return ierr.NewErrorf("invalid loyalty source: %s", s).
			Mark(ierr.ErrValidation)
	}
}
