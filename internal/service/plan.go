package service

import (
	"context"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	"github.com/gymmawy/gymmawy/internal/cache"
	"github.com/gymmawy/gymmawy/internal/types"
)

// PlanService covers the plan catalogue: CRUD, display ordering and the
// per-currency price rows.
type PlanService interface {
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, id string, req dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	DeletePlan(ctx context.Context, id string) error
	ListPlans(ctx context.Context, filter *types.PlanFilter) (*dto.ListPlansResponse, error)
	ReorderPlans(ctx context.Context, req dto.ReorderPlansRequest) error

	UpsertPlanPrice(ctx context.Context, planID string, req dto.UpsertPlanPriceRequest) (*dto.PlanResponse, error)
	DeletePlanPrice(ctx context.Context, planID, priceID string) error
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{ServiceParams: params}
}

func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPlan()
	if err := s.PlanRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixPlan)
	return dto.NewPlanResponse(p), nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	cacheKey := cache.Key(cache.PrefixPlan, id)
	if cached, ok := s.Cache.Get(ctx, cacheKey); ok {
		if resp, ok := cache.UnmarshalCacheValue[dto.PlanResponse](cached); ok {
			return resp, nil
		}
	}

	p, err := s.PlanRepo.GetWithPrices(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPlanResponse(p)
	s.Cache.Set(ctx, cacheKey, resp, 0)
	return resp, nil
}

func (s *planService) UpdatePlan(ctx context.Context, id string, req dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PlanRepo.Get(ctx, id)
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
	if req.DurationDays != nil {
		p.DurationDays = *req.DurationDays
	}
	if req.GiftDays != nil {
		p.GiftDays = *req.GiftDays
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
	if req.MedicalLoyaltyPointsAwarded != nil {
		p.MedicalLoyaltyPointsAwarded = *req.MedicalLoyaltyPointsAwarded
	}
	if req.MedicalLoyaltyPointsRequired != nil {
		p.MedicalLoyaltyPointsRequired = *req.MedicalLoyaltyPointsRequired
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.PlanRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixPlan)
	return dto.NewPlanResponse(p), nil
}

func (s *planService) DeletePlan(ctx context.Context, id string) error {
	// Soft delete keeps historical subscriptions resolvable.
	if err := s.PlanRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.Cache.DeleteByPrefix(ctx, cache.PrefixPlan)
	return nil
}

func (s *planService) ListPlans(ctx context.Context, filter *types.PlanFilter) (*dto.ListPlansResponse, error) {
	if filter == nil {
		filter = types.NewPlanFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	plans, err := s.PlanRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.PlanRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PlanResponse, len(plans))
	for i, p := range plans {
		responses[i] = dto.NewPlanResponse(p)
	}

	listResponse := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &listResponse, nil
}

func (s *planService) ReorderPlans(ctx context.Context, req dto.ReorderPlansRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.PlanRepo.Reorder(ctx, req.Positions); err != nil {
		return err
	}
	s.Cache.DeleteByPrefix(ctx, cache.PrefixPlan)
	return nil
}

func (s *planService) UpsertPlanPrice(ctx context.Context, planID string, req dto.UpsertPlanPriceRequest) (*dto.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The plan must exist before a price row is attached.
	if _, err := s.PlanRepo.Get(ctx, planID); err != nil {
		return nil, err
	}

	if err := s.PlanRepo.UpsertPrice(ctx, req.ToPlanPrice(planID)); err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixPlan)

	p, err := s.PlanRepo.GetWithPrices(ctx, planID)
	if err != nil {
		return nil, err
	}
	return dto.NewPlanResponse(p), nil
}

func (s *planService) DeletePlanPrice(ctx context.Context, planID, priceID string) error {
	if _, err := s.PlanRepo.Get(ctx, planID); err != nil {
		return err
	}
	if err := s.PlanRepo.DeletePrice(ctx, priceID); err != nil {
		return err
	}
	s.Cache.DeleteByPrefix(ctx, cache.PrefixPlan)
	return nil
}
