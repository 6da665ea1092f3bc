package gorm

import (
	"context"
	"time"

	domainUser "github.com/gymmawy/gymmawy/internal/domain/user"
	"github.com/gymmawy/gymmawy/internal/logger"
	"github.com/gymmawy/gymmawy/internal/postgres"
)

type userRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewUserRepository(client postgres.IClient, log *logger.Logger) domainUser.Repository {
	return &userRepository{client: client, log: log}
}

func (r *userRepository) Create(ctx context.Context, user *domainUser.User) error {
	r.log.Debugw("creating user", "user_id", user.ID, "email", user.Email)

	if err := r.client.DB(ctx).Create(user).Error; err != nil {
		return dbError(err, "create", "user")
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*domainUser.User, error) {
	var user domainUser.User
	if err := r.client.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	var user domainUser.User
	if err := r.client.DB(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, notFoundOr(err, "user", email)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domainUser.User) error {
	user.UpdatedAt = time.Now().UTC()
	if err := r.client.DB(ctx).Save(user).Error; err != nil {
		return dbError(err, "update", "user")
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DB(ctx).Delete(&domainUser.User{}, "id = ?", id).Error; err != nil {
		return dbError(err, "delete", "user")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*domainUser.User, error) {
	var users []*domainUser.User
	err := r.client.DB(ctx).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, dbError(err, "list", "users")
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.client.DB(ctx).Model(&domainUser.User{}).Count(&count).Error; err != nil {
		return 0, dbError(err, "count", "users")
	}
	return count, nil
}

func (r *userRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.client.DB(ctx).
		Model(&domainUser.User{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count", "users")
	}
	return count, nil
}
