package repository

import (
	"github.com/gymmawy/gymmawy/internal/domain/coupon"
	"github.com/gymmawy/gymmawy/internal/domain/lead"
	"github.com/gymmawy/gymmawy/internal/domain/loyalty"
	"github.com/gymmawy/gymmawy/internal/domain/order"
	"github.com/gymmawy/gymmawy/internal/domain/payment"
	"github.com/gymmawy/gymmawy/internal/domain/plan"
	"github.com/gymmawy/gymmawy/internal/domain/product"
	"github.com/gymmawy/gymmawy/internal/domain/programme"
	"github.com/gymmawy/gymmawy/internal/domain/subscription"
	"github.com/gymmawy/gymmawy/internal/domain/user"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
	gormRepo "github.com/gymmawy/gymmawy/internal/repository/gorm"
)

// Constructors below pick the storage backend for each domain repository.
// Everything currently lives in postgres via gorm.

func NewUserRepository(client postgres.IClient, log *logger.Logger) user.Repository {
	return gormRepo.NewUserRepository(client, log)
}

func NewPlanRepository(client postgres.IClient, log *logger.Logger) plan.Repository {
	return gormRepo.NewPlanRepository(client, log)
}

func NewCouponRepository(client postgres.IClient, log *logger.Logger) coupon.Repository {
	return gormRepo.NewCouponRepository(client, log)
}

func NewSubscriptionRepository(client postgres.IClient, log *logger.Logger) subscription.Repository {
	return gormRepo.NewSubscriptionRepository(client, log)
}

func NewPaymentRepository(client postgres.IClient, log *logger.Logger) payment.Repository {
	return gormRepo.NewPaymentRepository(client, log)
}

func NewLoyaltyRepository(client postgres.IClient, log *logger.Logger) loyalty.Repository {
	return gormRepo.NewLoyaltyRepository(client, log)
}

func NewProductRepository(client postgres.IClient, log *logger.Logger) product.Repository {
	return gormRepo.NewProductRepository(client, log)
}

func NewOrderRepository(client postgres.IClient, log *logger.Logger) order.Repository {
	return gormRepo.NewOrderRepository(client, log)
}

func NewProgrammeRepository(client postgres.IClient, log *logger.Logger) programme.Repository {
	return gormRepo.NewProgrammeRepository(client, log)
}

func NewLeadRepository(client postgres.IClient, log *logger.Logger) lead.Repository {
	return gormRepo.NewLeadRepository(client, log)
}
