package gorm

import (
	"context"
	"time"

	domainSubscription "github.com/gymmawy/gymmawy/internal/domain/subscription"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
	"github.com/gymmawy/gymmawy/internal/types"
)

type subscriptionRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewSubscriptionRepository(client postgres.IClient, log *logger.Logger) domainSubscription.Repository {
	return &subscriptionRepository{client: client, log: log}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domainSubscription.Subscription) error {
	r.log.Debugw("creating subscription",
		"subscription_id", sub.ID,
		"subscription_number", sub.SubscriptionNumber,
		"user_id", sub.UserID,
		"plan_id", sub.PlanID,
	)

	if err := r.client.DB(ctx).Omit("Plan").Create(sub).Error; err != nil {
		return dbError(err, "create", "subscription")
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*domainSubscription.Subscription, error) {
	var sub domainSubscription.Subscription
	if err := r.client.DB(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "subscription", id)
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetWithPlan(ctx context.Context, id string) (*domainSubscription.Subscription, error) {
	var sub domainSubscription.Subscription
	err := r.client.DB(ctx).
		Preload("Plan").
		First(&sub, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "subscription", id)
	}
	return &sub, nil
}

func (r *subscriptionRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainSubscription.Subscription{}).
		Where("subscription_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, dbError(err, "check", "subscription number")
	}
	return count > 0, nil
}

func (r *subscriptionRepository) List(ctx context.Context, filter *types.SubscriptionFilter) ([]*domainSubscription.Subscription, error) {
	if filter == nil {
		filter = types.NewSubscriptionFilter()
	}

	query := r.client.DB(ctx).
		Model(&domainSubscription.Subscription{}).
		Preload("Plan")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PlanID != "" {
		query = query.Where("plan_id = ?", filter.PlanID)
	}
	if filter.SubscriptionStatus != "" {
		query = query.Where("subscription_status = ?", filter.SubscriptionStatus)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var subs []*domainSubscription.Subscription
	if err := applyQueryFilter(query, filter.QueryFilter).Find(&subs).Error; err != nil {
		return nil, dbError(err, "list", "subscriptions")
	}
	return subs, nil
}

func (r *subscriptionRepository) Count(ctx context.Context, filter *types.SubscriptionFilter) (int, error) {
	query := r.client.DB(ctx).Model(&domainSubscription.Subscription{})
	if filter != nil {
		if filter.UserID != "" {
			query = query.Where("user_id = ?", filter.UserID)
		}
		if filter.PlanID != "" {
			query = query.Where("plan_id = ?", filter.PlanID)
		}
		if filter.SubscriptionStatus != "" {
			query = query.Where("subscription_status = ?", filter.SubscriptionStatus)
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "subscriptions")
	}
	return int(count), nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *domainSubscription.Subscription) error {
	sub.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Omit("Plan").Save(sub).Error; err != nil {
		return dbError(err, "update", "subscription")
	}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DB(ctx).Delete(&domainSubscription.Subscription{}, "id = ?", id).Error; err != nil {
		return dbError(err, "delete", "subscription")
	}
	return nil
}

func (r *subscriptionRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.client.DB(ctx).
		Model(&domainSubscription.Subscription{}).
		Where("subscription_status = ? AND end_date < ?", types.SubscriptionStatusActive, now).
		Updates(map[string]interface{}{
			"subscription_status": types.SubscriptionStatusExpired,
			"updated_at":          now,
		})
	if result.Error != nil {
		return 0, dbError(result.Error, "sweep", "subscriptions")
	}
	return result.RowsAffected, nil
}

func (r *subscriptionRepository) CountByStatus(ctx context.Context, status types.SubscriptionStatus) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainSubscription.Subscription{}).
		Where("subscription_status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "subscriptions")
	}
	return count, nil
}

func (r *subscriptionRepository) CountByStatusCreatedSince(ctx context.Context, status types.SubscriptionStatus, since time.Time) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainSubscription.Subscription{}).
		Where("subscription_status = ? AND created_at >= ?", status, since).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "subscriptions")
	}
	return count, nil
}

func (r *subscriptionRepository) CountGroupedByStatus(ctx context.Context) ([]domainSubscription.StatusCount, error) {
	var rows []domainSubscription.StatusCount
	err := r.client.DB(ctx).
		Model(&domainSubscription.Subscription{}).
		Select("subscription_status, count(*) as count").
		Group("subscription_status").
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(err, "aggregate", "subscriptions")
	}
	return rows, nil
}

func (r *subscriptionRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainSubscription.Subscription{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "subscriptions")
	}
	return count, nil
}

func (r *subscriptionRepository) TopPlans(ctx context.Context, limit int) ([]domainSubscription.PlanCount, error) {
	var rows []domainSubscription.PlanCount
	err := r.client.DB(ctx).
		Model(&domainSubscription.Subscription{}).
		Select("subscriptions.plan_id, plans.name as plan_name, count(*) as count").
		Joins("JOIN plans ON plans.id = subscriptions.plan_id").
		Group("subscriptions.plan_id, plans.name").
		Order("count desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(err, "aggregate", "subscriptions")
	}
	return rows, nil
}
