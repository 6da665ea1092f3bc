package gorm

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainPayment "github.com/gymmawy/gymmawy/internal/domain/payment"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
	"github.com/gymmawy/gymmawy/internal/types"
	"gorm.io/gorm"
)

type paymentRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewPaymentRepository(client postgres.IClient, log *logger.Logger) domainPayment.Repository {
	return &paymentRepository{client: client, log: log}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domainPayment.Payment) error {
	r.log.Debugw("creating payment",
		"payment_id", payment.ID,
		"payment_reference", payment.PaymentReference,
		"paymentable_type", payment.PaymentableType,
		"paymentable_id", payment.PaymentableID,
	)

	if err := r.client.DB(ctx).Create(payment).Error; err != nil {
		return dbError(err, "create", "payment")
	}
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*domainPayment.Payment, error) {
	var payment domainPayment.Payment
	if err := r.client.DB(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "payment", id)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByReference(ctx context.Context, reference string) (*domainPayment.Payment, error) {
	var payment domainPayment.Payment
	if err := r.client.DB(ctx).First(&payment, "payment_reference = ?", reference).Error; err != nil {
		return nil, notFoundOr(err, "payment", reference)
	}
	return &payment, nil
}

func (r *paymentRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainPayment.Payment{}).
		Where("payment_reference = ?", reference).
		Count(&count).Error
	if err != nil {
		return false, dbError(err, "check", "payment reference")
	}
	return count > 0, nil
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*domainPayment.Payment, error) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}

	var payments []*domainPayment.Payment
	query := r.applyFilter(r.client.DB(ctx).Model(&domainPayment.Payment{}), filter)
	if err := applyQueryFilter(query, filter.QueryFilter).Find(&payments).Error; err != nil {
		return nil, dbError(err, "list", "payments")
	}
	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	var count int64
	query := r.applyFilter(r.client.DB(ctx).Model(&domainPayment.Payment{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "payments")
	}
	return int(count), nil
}

func (r *paymentRepository) applyFilter(query *gorm.DB, filter *types.PaymentFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.PaymentableType != "" {
		query = query.Where("paymentable_type = ?", filter.PaymentableType)
	}
	if filter.PaymentableID != "" {
		query = query.Where("paymentable_id = ?", filter.PaymentableID)
	}
	return query
}

func (r *paymentRepository) Update(ctx context.Context, payment *domainPayment.Payment) error {
	payment.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Save(payment).Error; err != nil {
		return dbError(err, "update", "payment")
	}
	return nil
}

func (r *paymentRepository) applyRevenueQuery(query *gorm.DB, q domainPayment.RevenueQuery) *gorm.DB {
	if q.PaymentStatus != "" {
		query = query.Where("payment_status = ?", q.PaymentStatus)
	}
	if q.Currency != "" {
		query = query.Where("currency = ?", q.Currency)
	}
	if q.PaymentableType != "" {
		query = query.Where("paymentable_type = ?", q.PaymentableType)
	}
	if q.From != nil {
		query = query.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		// Exclusive so a payment landing exactly on a month boundary is never
		// counted in two adjacent windows.
		query = query.Where("created_at < ?", *q.To)
	}
	return query
}

func (r *paymentRepository) SumRevenue(ctx context.Context, q domainPayment.RevenueQuery) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	query := r.applyRevenueQuery(r.client.DB(ctx).Model(&domainPayment.Payment{}), q)
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return decimal.Zero, dbError(err, "aggregate", "payments")
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *paymentRepository) RevenueByCurrency(ctx context.Context, q domainPayment.RevenueQuery) ([]domainPayment.CurrencyRevenue, error) {
	var rows []domainPayment.CurrencyRevenue
	query := r.applyRevenueQuery(r.client.DB(ctx).Model(&domainPayment.Payment{}), q)
	err := query.
		Select("currency, COALESCE(SUM(amount), 0) as total").
		Group("currency").
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(err, "aggregate", "payments")
	}
	return rows, nil
}

func (r *paymentRepository) CountByQuery(ctx context.Context, q domainPayment.RevenueQuery) (int64, error) {
	var count int64
	query := r.applyRevenueQuery(r.client.DB(ctx).Model(&domainPayment.Payment{}), q)
	if err := query.Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "payments")
	}
	return count, nil
}
