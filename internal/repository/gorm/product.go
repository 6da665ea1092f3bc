package gorm

import (
	"context"
	"time"

	domainProduct "github.com/gymmawy/gymmawy/internal/domain/product"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
)

type productRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewProductRepository(client postgres.IClient, log *logger.Logger) domainProduct.Repository {
	return &productRepository{client: client, log: log}
}

func (r *productRepository) Create(ctx context.Context, product *domainProduct.Product) error {
	if err := r.client.DB(ctx).Create(product).Error; err != nil {
		return dbError(err, "create", "product")
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*domainProduct.Product, error) {
	var product domainProduct.Product
	if err := r.client.DB(ctx).First(&product, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		return nil, notFoundOr(err, "product", id)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, limit, offset int) ([]*domainProduct.Product, error) {
	var products []*domainProduct.Product
	err := r.client.DB(ctx).
		Where("deleted_at IS NULL").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, dbError(err, "list", "products")
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainProduct.Product{}).
		Where("deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "products")
	}
	return count, nil
}

func (r *productRepository) Update(ctx context.Context, product *domainProduct.Product) error {
	product.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Save(product).Error; err != nil {
		return dbError(err, "update", "product")
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	err := r.client.DB(ctx).
		Model(&domainProduct.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		}).Error
	if err != nil {
		return dbError(err, "delete", "product")
	}
	return nil
}
