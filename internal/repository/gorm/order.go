package gorm

import (
	"context"
	"time"

	domainOrder "github.com/gymmawy/gymmawy/internal/domain/order"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
	"github.com/gymmawy/gymmawy/internal/types"
)

type orderRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewOrderRepository(client postgres.IClient, log *logger.Logger) domainOrder.Repository {
	return &orderRepository{client: client, log: log}
}

func (r *orderRepository) Create(ctx context.Context, order *domainOrder.Order) error {
	r.log.Debugw("creating order", "order_id", order.ID, "order_number", order.OrderNumber)

	// Order and items commit together.
	return r.client.WithTx(ctx, func(ctx context.Context) error {
		if err := r.client.DB(ctx).Omit("Items").Create(order).Error; err != nil {
			return dbError(err, "create", "order")
		}
		for _, item := range order.Items {
			item.OrderID = order.ID
			if err := r.client.DB(ctx).Create(item).Error; err != nil {
				return dbError(err, "create", "order item")
			}
		}
		return nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id string) (*domainOrder.Order, error) {
	var order domainOrder.Order
	err := r.client.DB(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	return &order, nil
}

func (r *orderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainOrder.Order{}).
		Where("order_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, dbError(err, "check", "order number")
	}
	return count > 0, nil
}

func (r *orderRepository) List(ctx context.Context, filter *types.OrderFilter) ([]*domainOrder.Order, error) {
	if filter == nil {
		filter = types.NewOrderFilter()
	}

	query := r.client.DB(ctx).
		Model(&domainOrder.Order{}).
		Preload("Items")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OrderStatus != "" {
		query = query.Where("order_status = ?", filter.OrderStatus)
	}

	var orders []*domainOrder.Order
	if err := applyQueryFilter(query, filter.QueryFilter).Find(&orders).Error; err != nil {
		return nil, dbError(err, "list", "orders")
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, filter *types.OrderFilter) (int, error) {
	query := r.client.DB(ctx).Model(&domainOrder.Order{})
	if filter != nil {
		if filter.UserID != "" {
			query = query.Where("user_id = ?", filter.UserID)
		}
		if filter.OrderStatus != "" {
			query = query.Where("order_status = ?", filter.OrderStatus)
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "orders")
	}
	return int(count), nil
}

func (r *orderRepository) Update(ctx context.Context, order *domainOrder.Order) error {
	order.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Omit("Items").Save(order).Error; err != nil {
		return dbError(err, "update", "order")
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DB(ctx).Delete(&domainOrder.Order{}, "id = ?", id).Error; err != nil {
		return dbError(err, "delete", "order")
	}
	return nil
}

func (r *orderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.client.DB(ctx).Model(&domainOrder.Order{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "orders")
	}
	return count, nil
}

func (r *orderRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainOrder.Order{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "orders")
	}
	return count, nil
}

func (r *orderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainOrder.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "orders")
	}
	return count, nil
}

func (r *orderRepository) TopProducts(ctx context.Context, limit int) ([]domainOrder.ProductSales, error) {
	var rows []domainOrder.ProductSales
	err := r.client.DB(ctx).
		Model(&domainOrder.Item{}).
		Select("order_items.product_id, products.name as product_name, COALESCE(SUM(order_items.quantity), 0) as quantity").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.name").
		Order("quantity desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(err, "aggregate", "order items")
	}
	return rows, nil
}
