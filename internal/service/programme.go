package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/domain/programme"
	"github.com/gymmawy/gymmawy/internal/idgen"
	"github.com/gymmawy/gymmawy/internal/notification"
	"github.com/gymmawy/gymmawy/internal/types"
)

// ProgrammeService covers the training programme catalogue and purchases.
// Purchases mirror the subscription flow minus the approval step: a
// programme is delivered immediately, so loyalty points are credited at
// purchase time.
type ProgrammeService interface {
	CreateProgramme(ctx context.Context, req dto.CreateProgrammeRequest) (*dto.ProgrammeResponse, error)
	GetProgramme(ctx context.Context, id string) (*dto.ProgrammeResponse, error)
	UpdateProgramme(ctx context.Context, id string, req dto.UpdateProgrammeRequest) (*dto.ProgrammeResponse, error)
	DeleteProgramme(ctx context.Context, id string) error
	ListProgrammes(ctx context.Context, limit, offset int) (*dto.ListProgrammesResponse, error)
	ReorderProgrammes(ctx context.Context, req dto.ReorderPlansRequest) error
	UpsertProgrammePrice(ctx context.Context, programmeID string, req dto.UpsertProgrammePriceRequest) (*dto.ProgrammeResponse, error)

	PurchaseProgramme(ctx context.Context, userID, programmeID string, req dto.PurchaseProgrammeRequest) (*dto.ProgrammePurchaseResponse, error)
	ListUserPurchases(ctx context.Context, userID string, limit, offset int) (*dto.ListProgrammePurchasesResponse, error)
}

type programmeService struct {
	ServiceParams

	priceService  PriceService
	couponService CouponService
	loyalty       LoyaltyService
	payments      PaymentService
}

func NewProgrammeService(params ServiceParams) ProgrammeService {
	return &programmeService{
		ServiceParams: params,
		priceService:  NewPriceService(params),
		couponService: NewCouponService(params),
		loyalty:       NewLoyaltyService(params),
		payments:      NewPaymentService(params),
	}
}

func (s *programmeService) CreateProgramme(ctx context.Context, req dto.CreateProgrammeRequest) (*dto.ProgrammeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToProgramme()
	if err := s.ProgrammeRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProgrammeResponse(p), nil
}

func (s *programmeService) GetProgramme(ctx context.Context, id string) (*dto.ProgrammeResponse, error) {
	p, err := s.ProgrammeRepo.GetWithPrices(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProgrammeResponse(p), nil
}

func (s *programmeService) UpdateProgramme(ctx context.Context, id string, req dto.UpdateProgrammeRequest) (*dto.ProgrammeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.ProgrammeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.DiscountPercentage != nil {
		p.DiscountPercentage = *req.DiscountPercentage
	}
	if req.LoyaltyPointsAwarded != nil {
		p.LoyaltyPointsAwarded = *req.LoyaltyPointsAwarded
	}
	if req.LoyaltyPointsRequired != nil {
		p.LoyaltyPointsRequired = *req.LoyaltyPointsRequired
	}

	if err := s.ProgrammeRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.NewProgrammeResponse(p), nil
}

func (s *programmeService) DeleteProgramme(ctx context.Context, id string) error {
	return s.ProgrammeRepo.SoftDelete(ctx, id)
}

func (s *programmeService) ListProgrammes(ctx context.Context, limit, offset int) (*dto.ListProgrammesResponse, error) {
	if limit <= 0 {
		limit = types.FilterDefaultLimit
	}

	programmes, err := s.ProgrammeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.ProgrammeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ProgrammeResponse, len(programmes))
	for i, p := range programmes {
		responses[i] = dto.NewProgrammeResponse(p)
	}

	listResponse := types.NewListResponse(responses, int(total), limit, offset)
	return &listResponse, nil
}

func (s *programmeService) ReorderProgrammes(ctx context.Context, req dto.ReorderPlansRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.ProgrammeRepo.Reorder(ctx, req.Positions)
}

func (s *programmeService) UpsertProgrammePrice(ctx context.Context, programmeID string, req dto.UpsertProgrammePriceRequest) (*dto.ProgrammeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.ProgrammeRepo.Get(ctx, programmeID); err != nil {
		return nil, err
	}

	if err := s.ProgrammeRepo.UpsertPrice(ctx, req.ToProgrammePrice(programmeID)); err != nil {
		return nil, err
	}

	p, err := s.ProgrammeRepo.GetWithPrices(ctx, programmeID)
	if err != nil {
		return nil, err
	}
	return dto.NewProgrammeResponse(p), nil
}

func (s *programmeService) PurchaseProgramme(ctx context.Context, userID, programmeID string, req dto.PurchaseProgrammeRequest) (*dto.ProgrammePurchaseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resolved, err := s.priceService.ResolveProgrammePrice(ctx, programmeID, req.Currency)
	if err != nil {
		return nil, err
	}

	price := resolved.FinalPrice
	var couponID *string
	couponDiscount := decimal.Zero
	if req.CouponCode != "" {
		c, result, err := s.couponService.ApplyCoupon(ctx, userID, req.CouponCode, price)
		if err != nil {
			return nil, err
		}
		couponID = &c.ID
		couponDiscount = result.Discount
		price = result.FinalPrice
	}

	number, err := idgen.GenerateUnique(ctx, idgen.PurchaseNumber, s.ProgrammeRepo.ExistsPurchaseByNumber)
	if err != nil {
		return nil, err
	}

	purchase := &programme.Purchase{
		ID:                 types.GenerateUUIDWithPrefix(types.IDPrefixProgrammePurchase),
		PurchaseNumber:     number,
		UserID:             userID,
		ProgrammeID:        programmeID,
		Price:              price,
		Currency:           resolved.Currency,
		DiscountPercentage: resolved.PlanDiscountPercent,
		CouponID:           couponID,
		CouponDiscount:     couponDiscount,
		PurchasedAt:        time.Now().UTC(),
		BaseModel:          types.GetDefaultBaseModel(),
	}

	if err := s.ProgrammeRepo.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	if _, err := s.payments.CreatePayment(ctx, CreatePaymentInput{
		UserID:          userID,
		Amount:          price,
		Currency:        resolved.Currency,
		Method:          req.PaymentMethod,
		TransactionID:   req.TransactionID,
		PaymentProofURL: req.PaymentProofURL,
		PaymentableType: types.PaymentableTypeProgrammePurchase,
		PaymentableID:   purchase.ID,
	}); err != nil {
		return nil, err
	}

	if couponID != nil {
		if err := s.couponService.RedeemCoupon(ctx, *couponID, userID); err != nil {
			s.Logger.Errorw("coupon redemption failed after programme purchase",
				"purchase_id", purchase.ID,
				"coupon_id", *couponID,
				"error", err)
		}
	}

	p, err := s.ProgrammeRepo.Get(ctx, programmeID)
	if err == nil && p.LoyaltyPointsAwarded > 0 {
		if err := s.loyalty.Credit(ctx, userID, p.LoyaltyPointsAwarded, types.LoyaltySourceProgrammePurchase, purchase.ID); err != nil {
			s.Logger.Errorw("loyalty credit failed after programme purchase",
				"purchase_id", purchase.ID,
				"error", err)
		}
	}

	s.Notifier.Notify(ctx, notification.EventPurchaseCreated, map[string]interface{}{
		"purchase_id":     purchase.ID,
		"purchase_number": purchase.PurchaseNumber,
		"user_id":         userID,
		"programme_id":    programmeID,
	})

	return dto.NewProgrammePurchaseResponse(purchase), nil
}

func (s *programmeService) ListUserPurchases(ctx context.Context, userID string, limit, offset int) (*dto.ListProgrammePurchasesResponse, error) {
	if limit <= 0 {
		limit = types.FilterDefaultLimit
	}

	purchases, err := s.ProgrammeRepo.ListPurchases(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.ProgrammeRepo.CountPurchases(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ProgrammePurchaseResponse, len(purchases))
	for i, p := range purchases {
		responses[i] = dto.NewProgrammePurchaseResponse(p)
	}

	listResponse := types.NewListResponse(responses, int(total), limit, offset)
	return &listResponse, nil
}
