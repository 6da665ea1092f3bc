package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainLoyalty "github.com/gymmawy/gymmawy/internal/domain/loyalty"
	domainUser "github.com/gymmawy/gymmawy/internal/domain/user"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
	"github.com/gymmawy/gymmawy/internal/types"
)

type loyaltyRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewLoyaltyRepository(client postgres.IClient, log *logger.Logger) domainLoyalty.Repository {
	return &loyaltyRepository{client: client, log: log}
}

// Credit updates the denormalized balance and appends the ledger row in one
// transaction; the two must never diverge.
func (r *loyaltyRepository) Credit(ctx context.Context, tx *domainLoyalty.Transaction) error {
	r.log.Debugw("crediting loyalty points",
		"user_id", tx.UserID,
		"points", tx.Points,
		"source", tx.Source,
		"source_id", tx.SourceID,
	)

	return r.client.WithTx(ctx, func(ctx context.Context) error {
		err := r.client.DB(ctx).
			Model(&domainUser.User{}).
			Where("id = ?", tx.UserID).
			Updates(map[string]interface{}{
				"loyalty_points": gorm.Expr("loyalty_points + ?", tx.Points),
				"updated_at":     time.Now().UTC(),
			}).Error
		if err != nil {
			return dbError(err, "credit", "loyalty points")
		}

		if err := r.client.DB(ctx).Create(tx).Error; err != nil {
			return dbError(err, "append", "loyalty transaction")
		}
		return nil
	})
}

func (r *loyaltyRepository) Debit(ctx context.Context, tx *domainLoyalty.Transaction) error {
	r.log.Debugw("debiting loyalty points",
		"user_id", tx.UserID,
		"points", tx.Points,
	)

	return r.client.WithTx(ctx, func(ctx context.Context) error {
		result := r.client.DB(ctx).
			Model(&domainUser.User{}).
			Where("id = ? AND loyalty_points >= ?", tx.UserID, tx.Points).
			Updates(map[string]interface{}{
				"loyalty_points": gorm.Expr("loyalty_points - ?", tx.Points),
				"updated_at":     time.Now().UTC(),
			})
		if result.Error != nil {
			return dbError(result.Error, "debit", "loyalty points")
		}
		if result.RowsAffected == 0 {
			return ierr.NewError("insufficient loyalty points").
				WithHint("Not enough loyalty points for this redemption").
				Mark(ierr.ErrValidation)
		}

		if err := r.client.DB(ctx).Create(tx).Error; err != nil {
			return dbError(err, "append", "loyalty transaction")
		}
		return nil
	})
}

func (r *loyaltyRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domainLoyalty.Transaction, error) {
	var txs []*domainLoyalty.Transaction
	err := r.client.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, dbError(err, "list", "loyalty transactions")
	}
	return txs, nil
}

func (r *loyaltyRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainLoyalty.Transaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "loyalty transactions")
	}
	return count, nil
}

func (r *loyaltyRepository) SumPoints(ctx context.Context, txType types.LoyaltyTransactionType, since *time.Time) (int64, error) {
	query := r.client.DB(ctx).
		Model(&domainLoyalty.Transaction{}).
		Where("type = ?", txType)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var total *int64
	if err := query.Select("COALESCE(SUM(points), 0)").Scan(&total).Error; err != nil {
		return 0, dbError(err, "aggregate", "loyalty transactions")
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *loyaltyRepository) SumPointsByUser(ctx context.Context, userID string, txType types.LoyaltyTransactionType) (int64, error) {
	var total *int64
	err := r.client.DB(ctx).
		Model(&domainLoyalty.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, dbError(err, "aggregate", "loyalty transactions")
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
