package gorm

import (
	"context"
	"time"

	domainPlan "github.com/gymmawy/gymmawy/internal/domain/plan"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
	"github.com/gymmawy/gymmawy/internal/types"
)

type planRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewPlanRepository(client postgres.IClient, log *logger.Logger) domainPlan.Repository {
	return &planRepository{client: client, log: log}
}

func (r *planRepository) Create(ctx context.Context, plan *domainPlan.Plan) error {
	r.log.Debugw("creating plan", "plan_id", plan.ID, "name", plan.Name.En)

	if err := r.client.DB(ctx).Create(plan).Error; err != nil {
		return dbError(err, "create", "plan")
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*domainPlan.Plan, error) {
	var plan domainPlan.Plan
	if err := r.client.DB(ctx).First(&plan, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		return nil, notFoundOr(err, "plan", id)
	}
	return &plan, nil
}

func (r *planRepository) GetWithPrices(ctx context.Context, id string) (*domainPlan.Plan, error) {
	var plan domainPlan.Plan
	err := r.client.DB(ctx).
		Preload("Prices").
		First(&plan, "id = ? AND deleted_at IS NULL", id).Error
	if err != nil {
		return nil, notFoundOr(err, "plan", id)
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context, filter *types.PlanFilter) ([]*domainPlan.Plan, error) {
	if filter == nil {
		filter = types.NewPlanFilter()
	}

	query := r.client.DB(ctx).
		Model(&domainPlan.Plan{}).
		Preload("Prices").
		Where("deleted_at IS NULL")
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	query = query.Order("display_order asc").Offset(filter.GetOffset())
	if !filter.IsUnlimited() {
		query = query.Limit(filter.GetLimit())
	}

	var plans []*domainPlan.Plan
	if err := query.Find(&plans).Error; err != nil {
		return nil, dbError(err, "list", "plans")
	}
	return plans, nil
}

func (r *planRepository) Count(ctx context.Context, filter *types.PlanFilter) (int, error) {
	query := r.client.DB(ctx).
		Model(&domainPlan.Plan{}).
		Where("deleted_at IS NULL")
	if filter != nil && filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "plans")
	}
	return int(count), nil
}

func (r *planRepository) Update(ctx context.Context, plan *domainPlan.Plan) error {
	plan.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Omit("Prices").Save(plan).Error; err != nil {
		return dbError(err, "update", "plan")
	}
	return nil
}

func (r *planRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	err := r.client.DB(ctx).
		Model(&domainPlan.Plan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"is_active":  false,
			"updated_at": now,
		}).Error
	if err != nil {
		return dbError(err, "delete", "plan")
	}
	return nil
}

func (r *planRepository) Reorder(ctx context.Context, positions map[string]int) error {
	// All position updates commit as one batch or not at all.
	return r.client.WithTx(ctx, func(ctx context.Context) error {
		for id, position := range positions {
			err := r.client.DB(ctx).
				Model(&domainPlan.Plan{}).
				Where("id = ?", id).
				Update("display_order", position).Error
			if err != nil {
				return dbError(err, "reorder", "plans")
			}
		}
		return nil
	})
}

func (r *planRepository) UpsertPrice(ctx context.Context, price *domainPlan.PlanPrice) error {
	var existing domainPlan.PlanPrice
	err := r.client.DB(ctx).
		Where("plan_id = ? AND currency = ? AND type = ?", price.PlanID, price.Currency, price.Type).
		First(&existing).Error
	if err == nil {
		price.ID = existing.ID
		price.CreatedAt = existing.CreatedAt
		price.UpdatedAt = time.Now().UTC()
		if err := r.client.DB(ctx).Save(price).Error; err != nil {
			return dbError(err, "update", "plan price")
		}
		return nil
	}

	if err := r.client.DB(ctx).Create(price).Error; err != nil {
		return dbError(err, "create", "plan price")
	}
	return nil
}

func (r *planRepository) GetPrice(ctx context.Context, planID string, currency types.Currency, priceType types.PlanPriceType) (*domainPlan.PlanPrice, error) {
	var price domainPlan.PlanPrice
	err := r.client.DB(ctx).
		Where("plan_id = ? AND currency = ? AND type = ?", planID, currency, priceType).
		First(&price).Error
	if err != nil {
		return nil, notFoundOr(err, "plan price", planID)
	}
	return &price, nil
}

func (r *planRepository) ListPrices(ctx context.Context, planID string) ([]*domainPlan.PlanPrice, error) {
	var prices []*domainPlan.PlanPrice
	err := r.client.DB(ctx).
		Where("plan_id = ?", planID).
		Find(&prices).Error
	if err != nil {
		return nil, dbError(err, "list", "plan prices")
	}
	return prices, nil
}

func (r *planRepository) DeletePrice(ctx context.Context, id string) error {
	if err := r.client.DB(ctx).Delete(&domainPlan.PlanPrice{}, "id = ?", id).Error; err != nil {
		return dbError(err, "delete", "plan price")
	}
	return nil
}
