package types

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// PaymentMethod is one of the fixed set of accepted payment methods. Gateway
// methods carry a transaction id from the gateway response; manual methods
// carry an uploaded proof-of-payment reference instead.
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodTabby        PaymentMethod = "TABBY"
	PaymentMethodTamara       PaymentMethod = "TAMARA"
	PaymentMethodInstaPay     PaymentMethod = "INSTA_PAY"
	PaymentMethodVodafoneCash PaymentMethod = "VODAFONE_CASH"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCard, PaymentMethodTabby, PaymentMethodTamara,
		PaymentMethodInstaPay, PaymentMethodVodafoneCash:
		return nil
	default:
		return ierr.NewErrorf("invalid payment method: %s", m).
			WithHint("Payment method must be one of CARD, TABBY, TAMARA, INSTA_PAY, VODAFONE_CASH").
			Mark(ierr.ErrValidation)
	}
}

// RequiresTransactionID reports whether the method is an online gateway
// method whose payments must carry the gateway transaction id.
func (m PaymentMethod) RequiresTransactionID() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodTabby, PaymentMethodTamara:
		return true
	default:
		return false
	}
}

// RequiresPaymentProof reports whether the method is a manual method whose
// payments must carry a proof-of-payment reference.
func (m PaymentMethod) RequiresPaymentProof() bool {
	switch m {
	case PaymentMethodInstaPay, PaymentMethodVodafoneCash:
		return true
	default:
		return false
	}
}

// PaymentStatus is the verification state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending             PaymentStatus = "PENDING"
	PaymentStatusPendingVerification PaymentStatus = "PENDING_VERIFICATION"
	PaymentStatusSuccess             PaymentStatus = "SUCCESS"
	PaymentStatusFailed              PaymentStatus = "FAILED"
	PaymentStatusCancelled           PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentStatusPending, PaymentStatusPendingVerification,
		PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled:
		return nil
	default:
		return ierr.NewErrorf("invalid payment status: %s", s).
			WithHint("Unknown payment status").
			Mark(ierr.ErrValidation)
	}
}

// PaymentableType tags the entity a payment is attached to.
type PaymentableType string

const (
	PaymentableTypeSubscription      PaymentableType = "SUBSCRIPTION"
	PaymentableTypeOrder             PaymentableType = "ORDER"
	PaymentableTypeProgrammePurchase PaymentableType = "PROGRAMME_PURCHASE"
)

func (t PaymentableType) String() string {
	return string(t)
}

func (t PaymentableType) Validate() error {
	switch t {
	case PaymentableTypeSubscription, PaymentableTypeOrder, PaymentableTypeProgrammePurchase:
		return nil
	default:
		return ierr.NewErrorf("invalid paymentable type: %s", t).
			WithHint("Payment target must be one of SUBSCRIPTION, ORDER, PROGRAMME_PURCHASE").
			Mark(ierr.ErrValidation)
	}
}

// PaymentFilter filters payment list queries.
type PaymentFilter struct {
	*QueryFilter

	UserID          string          `json:"user_id,omitempty" form:"user_id"`
	PaymentStatus   PaymentStatus   `json:"payment_status,omitempty" form:"payment_status"`
	Method          PaymentMethod   `json:"method,omitempty" form:"method"`
	Currency        Currency        `json:"currency,omitempty" form:"currency"`
	PaymentableType PaymentableType `json:"paymentable_type,omitempty" form:"paymentable_type"`
	PaymentableID   string          `json:"paymentable_id,omitempty" form:"paymentable_id"`
}

func NewPaymentFilter() *PaymentFilter {
	return &PaymentFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *PaymentFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.PaymentStatus != "" {
		if err := f.PaymentStatus.Validate(); err != nil {
			return err
		}
	}
	if f.Method != "" {
		if err := f.Method.Validate(); err != nil {
			return err
		}
	}
	if f.PaymentableType != "" {
		if err := f.PaymentableType.Validate(); err != nil {
			return err
		}
	}
	return nil
}
