package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainCoupon "github.com/gymmawy/gymmawy/internal/domain/coupon"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
	"github.com/gymmawy/gymmawy/internal/types"
)

type couponRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCouponRepository(client postgres.IClient, log *logger.Logger) domainCoupon.Repository {
	return &couponRepository{client: client, log: log}
}

func (r *couponRepository) Create(ctx context.Context, coupon *domainCoupon.Coupon) error {
	r.log.Debugw("creating coupon", "coupon_id", coupon.ID, "code", coupon.Code)

	if err := r.client.DB(ctx).Create(coupon).Error; err != nil {
		return dbError(err, "create", "coupon")
	}
	return nil
}

func (r *couponRepository) Get(ctx context.Context, id string) (*domainCoupon.Coupon, error) {
	var coupon domainCoupon.Coupon
	if err := r.client.DB(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "coupon", id)
	}
	return &coupon, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domainCoupon.Coupon, error) {
	var coupon domainCoupon.Coupon
	if err := r.client.DB(ctx).First(&coupon, "code = ?", code).Error; err != nil {
		return nil, notFoundOr(err, "coupon", code)
	}
	return &coupon, nil
}

func (r *couponRepository) List(ctx context.Context, filter *types.CouponFilter) ([]*domainCoupon.Coupon, error) {
	if filter == nil {
		filter = types.NewCouponFilter()
	}

	query := r.client.DB(ctx).Model(&domainCoupon.Coupon{})
	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var coupons []*domainCoupon.Coupon
	if err := applyQueryFilter(query, filter.QueryFilter).Find(&coupons).Error; err != nil {
		return nil, dbError(err, "list", "coupons")
	}
	return coupons, nil
}

func (r *couponRepository) Count(ctx context.Context, filter *types.CouponFilter) (int, error) {
	query := r.client.DB(ctx).Model(&domainCoupon.Coupon{})
	if filter != nil {
		if filter.Code != "" {
			query = query.Where("code = ?", filter.Code)
		}
		if filter.IsActive != nil {
			query = query.Where("is_active = ?", *filter.IsActive)
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "coupons")
	}
	return int(count), nil
}

func (r *couponRepository) Update(ctx context.Context, coupon *domainCoupon.Coupon) error {
	coupon.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Save(coupon).Error; err != nil {
		return dbError(err, "update", "coupon")
	}
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DB(ctx).Delete(&domainCoupon.Coupon{}, "id = ?", id).Error; err != nil {
		return dbError(err, "delete", "coupon")
	}
	return nil
}

func (r *couponRepository) Redeem(ctx context.Context, couponID, userID string) error {
	r.log.Debugw("redeeming coupon", "coupon_id", couponID, "user_id", userID)

	// Counter increment and per-user redemption row commit together.
	return r.client.WithTx(ctx, func(ctx context.Context) error {
		err := r.client.DB(ctx).
			Model(&domainCoupon.Coupon{}).
			Where("id = ?", couponID).
			Updates(map[string]interface{}{
				"total_redemptions": gorm.Expr("total_redemptions + 1"),
				"updated_at":        time.Now().UTC(),
			}).Error
		if err != nil {
			return dbError(err, "redeem", "coupon")
		}

		redemption := &domainCoupon.Redemption{
			ID:         types.GenerateUUIDWithPrefix(types.IDPrefixCouponRedemption),
			CouponID:   couponID,
			UserID:     userID,
			RedeemedAt: time.Now().UTC(),
		}
		if err := r.client.DB(ctx).Create(redemption).Error; err != nil {
			return dbError(err, "record", "coupon redemption")
		}
		return nil
	})
}

func (r *couponRepository) CountUserRedemptions(ctx context.Context, couponID, userID string) (int, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainCoupon.Redemption{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "coupon redemptions")
	}
	return int(count), nil
}
