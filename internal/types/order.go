package types

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// OrderStatus is the fulfilment state of a product order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Validate() error {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return nil
	default:
		return ierr.NewErrorf("invalid order status: %s", s).
			WithHint("Unknown order status").
			Mark(ierr.ErrValidation)
	}
}

// OrderFilter filters order list queries.
type OrderFilter struct {
	*QueryFilter

	UserID      string      `json:"user_id,omitempty" form:"user_id"`
	OrderStatus OrderStatus `json:"order_status,omitempty" form:"order_status"`
}

func NewOrderFilter() *OrderFilter {
	return &OrderFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *OrderFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.OrderStatus != "" {
		return f.OrderStatus.Validate()
	}
	return nil
}
