package testutil

import (
	"context"
	"time"

	"github.com/gymmawy/gymmawy/internal/domain/product"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// InMemoryProductStore implements product.Repository for tests.
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{InMemoryStore: NewInMemoryStore[*product.Product]()}
}

func copyProduct(p *product.Product) *product.Product {
	if p == nil {
		return nil
	}
	copied := *p
	copyTimePtr(&copied.DeletedAt)
	return &copied
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.DeletedAt != nil {
		return nil, ierr.NewErrorf("product not found: %s", id).
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) List(ctx context.Context, limit, offset int) ([]*product.Product, error) {
	products := s.InMemoryStore.All(func(p *product.Product) bool {
		return p.DeletedAt == nil
	})
	products = paginate(products, limit, offset)
	out := make([]*product.Product, 0, len(products))
	for _, p := range products {
		out = append(out, copyProduct(p))
	}
	return out, nil
}

func (s *InMemoryProductStore) Count(ctx context.Context) (int64, error) {
	products := s.InMemoryStore.All(func(p *product.Product) bool {
		return p.DeletedAt == nil
	})
	return int64(len(products)), nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) SoftDelete(ctx context.Context, id string) error {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}
	copied := copyProduct(p)
	now := time.Now().UTC()
	copied.DeletedAt = &now
	return s.InMemoryStore.Update(ctx, id, copied)
}
