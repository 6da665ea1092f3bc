package gorm

import (
	"context"
	"time"

	domainProgramme "github.com/gymmawy/gymmawy/internal/domain/programme"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
)

type programmeRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewProgrammeRepository(client postgres.IClient, log *logger.Logger) domainProgramme.Repository {
	return &programmeRepository{client: client, log: log}
}

func (r *programmeRepository) Create(ctx context.Context, programme *domainProgramme.Programme) error {
	r.log.Debugw("creating programme", "programme_id", programme.ID, "name", programme.Name.En)

	if err := r.client.DB(ctx).Create(programme).Error; err != nil {
		return dbError(err, "create", "programme")
	}
	return nil
}

func (r *programmeRepository) Get(ctx context.Context, id string) (*domainProgramme.Programme, error) {
	var programme domainProgramme.Programme
	if err := r.client.DB(ctx).First(&programme, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		return nil, notFoundOr(err, "programme", id)
	}
	return &programme, nil
}

func (r *programmeRepository) GetWithPrices(ctx context.Context, id string) (*domainProgramme.Programme, error) {
	var programme domainProgramme.Programme
	err := r.client.DB(ctx).
		Preload("Prices").
		First(&programme, "id = ? AND deleted_at IS NULL", id).Error
	if err != nil {
		return nil, notFoundOr(err, "programme", id)
	}
	return &programme, nil
}

func (r *programmeRepository) List(ctx context.Context, limit, offset int) ([]*domainProgramme.Programme, error) {
	query := r.client.DB(ctx).
		Model(&domainProgramme.Programme{}).
		Preload("Prices").
		Where("deleted_at IS NULL").
		Order("display_order asc").
		Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var programmes []*domainProgramme.Programme
	if err := query.Find(&programmes).Error; err != nil {
		return nil, dbError(err, "list", "programmes")
	}
	return programmes, nil
}

func (r *programmeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainProgramme.Programme{}).
		Where("deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "programmes")
	}
	return count, nil
}

func (r *programmeRepository) Update(ctx context.Context, programme *domainProgramme.Programme) error {
	programme.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Omit("Prices").Save(programme).Error; err != nil {
		return dbError(err, "update", "programme")
	}
	return nil
}

func (r *programmeRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	err := r.client.DB(ctx).
		Model(&domainProgramme.Programme{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		}).Error
	if err != nil {
		return dbError(err, "delete", "programme")
	}
	return nil
}

func (r *programmeRepository) Reorder(ctx context.Context, positions map[string]int) error {
	// All position updates commit as one batch or not at all.
	return r.client.WithTx(ctx, func(ctx context.Context) error {
		for id, position := range positions {
			err := r.client.DB(ctx).
				Model(&domainProgramme.Programme{}).
				Where("id = ?", id).
				Update("display_order", position).Error
			if err != nil {
				return dbError(err, "reorder", "programmes")
			}
		}
		return nil
	})
}

func (r *programmeRepository) UpsertPrice(ctx context.Context, price *domainProgramme.Price) error {
	var existing domainProgramme.Price
	err := r.client.DB(ctx).
		Where("programme_id = ? AND currency = ?", price.ProgrammeID, price.Currency).
		First(&existing).Error
	if err == nil {
		price.ID = existing.ID
		price.CreatedAt = existing.CreatedAt
		price.UpdatedAt = time.Now().UTC()
		if err := r.client.DB(ctx).Save(price).Error; err != nil {
			return dbError(err, "update", "programme price")
		}
		return nil
	}

	if err := r.client.DB(ctx).Create(price).Error; err != nil {
		return dbError(err, "create", "programme price")
	}
	return nil
}

func (r *programmeRepository) CreatePurchase(ctx context.Context, purchase *domainProgramme.Purchase) error {
	r.log.Debugw("creating programme purchase",
		"purchase_id", purchase.ID,
		"purchase_number", purchase.PurchaseNumber,
		"programme_id", purchase.ProgrammeID)

	if err := r.client.DB(ctx).Omit("Programme").Create(purchase).Error; err != nil {
		return dbError(err, "create", "programme purchase")
	}
	return nil
}

func (r *programmeRepository) GetPurchase(ctx context.Context, id string) (*domainProgramme.Purchase, error) {
	var purchase domainProgramme.Purchase
	err := r.client.DB(ctx).
		Preload("Programme").
		First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "programme purchase", id)
	}
	return &purchase, nil
}

func (r *programmeRepository) ExistsPurchaseByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainProgramme.Purchase{}).
		Where("purchase_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, dbError(err, "check", "purchase number")
	}
	return count > 0, nil
}

func (r *programmeRepository) ListPurchases(ctx context.Context, userID string, limit, offset int) ([]*domainProgramme.Purchase, error) {
	query := r.client.DB(ctx).
		Model(&domainProgramme.Purchase{}).
		Preload("Programme").
		Order("created_at desc").
		Offset(offset)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var purchases []*domainProgramme.Purchase
	if err := query.Find(&purchases).Error; err != nil {
		return nil, dbError(err, "list", "programme purchases")
	}
	return purchases, nil
}

func (r *programmeRepository) CountPurchases(ctx context.Context) (int64, error) {
	var count int64
	if err := r.client.DB(ctx).Model(&domainProgramme.Purchase{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "programme purchases")
	}
	return count, nil
}

func (r *programmeRepository) CountPurchasesSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainProgramme.Purchase{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "programme purchases")
	}
	return count, nil
}

func (r *programmeRepository) CountPurchasesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainProgramme.Purchase{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "programme purchases")
	}
	return count, nil
}

func (r *programmeRepository) TopProgrammes(ctx context.Context, limit int) ([]domainProgramme.ProgrammeCount, error) {
	var rows []domainProgramme.ProgrammeCount
	err := r.client.DB(ctx).
		Model(&domainProgramme.Purchase{}).
		Select("programme_purchases.programme_id, programmes.name as programme_name, COUNT(*) as count").
		Joins("JOIN programmes ON programmes.id = programme_purchases.programme_id").
		Group("programme_purchases.programme_id, programmes.name").
		Order("count desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(err, "aggregate", "programme purchases")
	}
	return rows, nil
}
