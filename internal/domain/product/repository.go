package product

import (
	"context"
)

// Repository defines the interface for product persistence.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]*Product, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, product *Product) error
	SoftDelete(ctx context.Context, id string) error
}
