package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/order"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/idgen"
	"github.com/gymmawy/gymmawy/internal/notification"
	"github.com/gymmawy/gymmawy/internal/types"
)

// OrderService drives product purchases. Line prices come from the catalogue
// and the total is recomputed server-side on every create.
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter *types.OrderFilter) (*dto.ListOrdersResponse, error)
	ListUserOrders(ctx context.Context, userID string, filter *types.OrderFilter) (*dto.ListOrdersResponse, error)
	UpdateOrderStatus(ctx context.Context, id string, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
}

type orderService struct {
	ServiceParams

	couponService CouponService
	payments      PaymentService
}

func NewOrderService(params ServiceParams) OrderService {
	return &orderService{
		ServiceParams: params,
		couponService: NewCouponService(params),
		payments:      NewPaymentService(params),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = types.GetCurrency(ctx)
	}

	items := make([]*order.Item, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		p, err := s.ProductRepo.Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p.Currency != currency {
			return nil, ierr.NewError("product is not sold in the requested currency").
				WithHint("This product is not available in the selected currency").
				WithReportableDetails(map[string]any{
					"product_id": p.ID,
					"currency":   currency,
				}).
				Mark(ierr.ErrValidation)
		}
		if p.Stock < line.Quantity {
			return nil, ierr.NewError("insufficient stock").
				WithHint("Not enough stock for this product").
				WithReportableDetails(map[string]any{
					"product_id": p.ID,
					"requested":  line.Quantity,
					"in_stock":   p.Stock,
				}).
				Mark(ierr.ErrValidation)
		}

		items = append(items, &order.Item{
			ID:        types.GenerateUUIDWithPrefix(types.IDPrefixOrderItem),
			ProductID: p.ID,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	var couponID *string
	if req.CouponCode != "" {
		c, result, err := s.couponService.ApplyCoupon(ctx, userID, req.CouponCode, total)
		if err != nil {
			return nil, err
		}
		couponID = &c.ID
		total = result.FinalPrice
	}

	number, err := idgen.GenerateUnique(ctx, idgen.OrderNumber, s.OrderRepo.ExistsByNumber)
	if err != nil {
		return nil, err
	}

	o := &order.Order{
		ID:          types.GenerateUUIDWithPrefix(types.IDPrefixOrder),
		OrderNumber: number,
		UserID:      userID,
		OrderStatus: types.OrderStatusPending,
		TotalAmount: total,
		Currency:    currency,
		CouponID:    couponID,
		Items:       items,
		BaseModel:   types.GetDefaultBaseModel(),
	}

	if err := s.OrderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	if _, err := s.payments.CreatePayment(ctx, CreatePaymentInput{
		UserID:          userID,
		Amount:          total,
		Currency:        currency,
		Method:          req.PaymentMethod,
		TransactionID:   req.TransactionID,
		PaymentProofURL: req.PaymentProofURL,
		PaymentableType: types.PaymentableTypeOrder,
		PaymentableID:   o.ID,
	}); err != nil {
		return nil, err
	}

	if couponID != nil {
		if err := s.couponService.RedeemCoupon(ctx, *couponID, userID); err != nil {
			s.Logger.Errorw("coupon redemption failed after order creation",
				"order_id", o.ID,
				"coupon_id", *couponID,
				"error", err)
		}
	}
	s.Notifier.Notify(ctx, notification.EventOrderCreated, map[string]interface{}{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"user_id":      userID,
	})

	return dto.NewOrderResponse(o), nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(o), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter *types.OrderFilter) (*dto.ListOrdersResponse, error) {
	return s.list(ctx, filter)
}

func (s *orderService) ListUserOrders(ctx context.Context, userID string, filter *types.OrderFilter) (*dto.ListOrdersResponse, error) {
	if filter == nil {
		filter = types.NewOrderFilter()
	}
	filter.UserID = userID
	return s.list(ctx, filter)
}

func (s *orderService) list(ctx context.Context, filter *types.OrderFilter) (*dto.ListOrdersResponse, error) {
	if filter == nil {
		filter = types.NewOrderFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	orders, err := s.OrderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.OrderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = dto.NewOrderResponse(o)
	}

	listResponse := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &listResponse, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	o.OrderStatus = req.OrderStatus
	if err := s.OrderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(o), nil
}
