package types

import (
	"time"

	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// SubscriptionStatus is the lifecycle state of a subscription.
//
// Legal transitions:
//
//	PENDING -> ACTIVE -> EXPIRED
//	PENDING -> REJECTED
//	ACTIVE  -> CANCELLED
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "PENDING"
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionStatusRejected  SubscriptionStatus = "REJECTED"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	switch s {
	case SubscriptionStatusPending, SubscriptionStatusActive,
		SubscriptionStatusExpired, SubscriptionStatusCancelled,
		SubscriptionStatusRejected:
		return nil
	default:
		return ierr.NewErrorf("invalid subscription status: %s", s).
			WithHint("Unknown subscription status").
			Mark(ierr.ErrValidation)
	}
}

// SubscriptionFilter filters subscription list queries.
type SubscriptionFilter struct {
	*QueryFilter

	UserID             string             `json:"user_id,omitempty" form:"user_id"`
	PlanID             string             `json:"plan_id,omitempty" form:"plan_id"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status,omitempty" form:"subscription_status"`
	CreatedAfter       *time.Time         `json:"created_after,omitempty" form:"created_after"`
	CreatedBefore      *time.Time         `json:"created_before,omitempty" form:"created_before"`
}

func NewSubscriptionFilter() *SubscriptionFilter {
	return &SubscriptionFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitSubscriptionFilter() *SubscriptionFilter {
	return &SubscriptionFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *SubscriptionFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.SubscriptionStatus != "" {
		if err := f.SubscriptionStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}
