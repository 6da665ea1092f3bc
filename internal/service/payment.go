package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/payment"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/idgen"
	"github.com/gymmawy/gymmawy/internal/types"
)

// CreatePaymentInput is the internal request used by the purchase flows.
// Amounts here are already server-resolved.
type CreatePaymentInput struct {
	UserID          string
	Amount          decimal.Decimal
	Currency        types.Currency
	Method          types.PaymentMethod
	TransactionID   string
	PaymentProofURL string
	PaymentableType types.PaymentableType
	PaymentableID   string
	Metadata        map[string]interface{}
}

// PaymentService records purchase attempts and exposes the admin verification
// surface.
type PaymentService interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*dto.PaymentResponse, error)
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error)
	UpdatePaymentStatus(ctx context.Context, id string, req dto.UpdatePaymentStatusRequest) (*dto.PaymentResponse, error)

	// ResolveTarget fetches the entity a payment is attached to.
	ResolveTarget(ctx context.Context, p *payment.Payment) (interface{}, error)
}

type paymentService struct {
	ServiceParams

	// targetResolvers maps each paymentable type to its lookup. A type
	// missing from this table is a validation error, not a fallthrough.
	targetResolvers map[types.PaymentableType]func(ctx context.Context, id string) (interface{}, error)
}

func NewPaymentService(params ServiceParams) PaymentService {
	s := &paymentService{ServiceParams: params}
	s.targetResolvers = map[types.PaymentableType]func(ctx context.Context, id string) (interface{}, error){
		types.PaymentableTypeSubscription: func(ctx context.Context, id string) (interface{}, error) {
			return params.SubscriptionRepo.GetWithPlan(ctx, id)
		},
		types.PaymentableTypeOrder: func(ctx context.Context, id string) (interface{}, error) {
			return params.OrderRepo.Get(ctx, id)
		},
		types.PaymentableTypeProgrammePurchase: func(ctx context.Context, id string) (interface{}, error) {
			return params.ProgrammeRepo.GetPurchase(ctx, id)
		},
	}
	return s
}

func (s *paymentService) CreatePayment(ctx context.Context, input CreatePaymentInput) (*dto.PaymentResponse, error) {
	if err := input.Method.Validate(); err != nil {
		return nil, err
	}
	if err := input.PaymentableType.Validate(); err != nil {
		return nil, err
	}
	if input.Method.RequiresTransactionID() && input.TransactionID == "" {
		return nil, ierr.NewError("transaction id is required for this payment method").
			WithHint("Gateway payments must include the gateway transaction id").
			WithReportableDetails(map[string]any{"payment_method": input.Method}).
			Mark(ierr.ErrValidation)
	}
	if input.Method.RequiresPaymentProof() && input.PaymentProofURL == "" {
		return nil, ierr.NewError("payment proof is required for this payment method").
			WithHint("Manual payments must include an uploaded payment proof").
			WithReportableDetails(map[string]any{"payment_method": input.Method}).
			Mark(ierr.ErrValidation)
	}

	reference, err := idgen.GenerateUnique(ctx, idgen.PaymentReference, s.PaymentRepo.ExistsByReference)
	if err != nil {
		return nil, err
	}

	p := &payment.Payment{
		ID:               types.GenerateUUIDWithPrefix(types.IDPrefixPayment),
		UserID:           input.UserID,
		Amount:           input.Amount,
		Currency:         input.Currency,
		Method:           input.Method,
		PaymentStatus:    initialPaymentStatus(input.Method),
		PaymentReference: reference,
		PaymentableType:  input.PaymentableType,
		PaymentableID:    input.PaymentableID,
		Metadata:         datatypes.JSONMap(input.Metadata),
		BaseModel:        types.GetDefaultBaseModel(),
	}
	if input.TransactionID != "" {
		p.TransactionID = &input.TransactionID
	}
	if input.PaymentProofURL != "" {
		p.PaymentProofURL = &input.PaymentProofURL
	}

	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return dto.NewPaymentResponse(p), nil
}

// initialPaymentStatus: manual methods enter the admin verification queue;
// gateway methods stay PENDING until the gateway outcome is confirmed.
func initialPaymentStatus(method types.PaymentMethod) types.PaymentStatus {
	if method.RequiresPaymentProof() {
		return types.PaymentStatusPendingVerification
	}
	return types.PaymentStatusPending
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponse(p), nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *types.PaymentFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.PaymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = dto.NewPaymentResponse(p)
	}

	listResponse := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &listResponse, nil
}

func (s *paymentService) UpdatePaymentStatus(ctx context.Context, id string, req dto.UpdatePaymentStatusRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.PaymentStatus = req.PaymentStatus
	if req.PaymentStatus == types.PaymentStatusSuccess && p.ProcessedAt == nil {
		now := time.Now().UTC()
		p.ProcessedAt = &now
	}

	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewPaymentResponse(p), nil
}

func (s *paymentService) ResolveTarget(ctx context.Context, p *payment.Payment) (interface{}, error) {
	resolve, ok := s.targetResolvers[p.PaymentableType]
	if !ok {
		return nil, ierr.NewErrorf("unknown payment target type: %s", p.PaymentableType).
			WithHint("Payment is attached to an unsupported entity type").
			Mark(ierr.ErrValidation)
	}
	return resolve(ctx, p.PaymentableID)
}
