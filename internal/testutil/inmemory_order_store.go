package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/gymmawy/gymmawy/internal/domain/order"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// InMemoryOrderStore implements order.Repository for tests. It takes an
// optional product store so TopProducts can resolve product names.
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]
	products *InMemoryProductStore
}

func NewInMemoryOrderStore(products *InMemoryProductStore) *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
		products:      products,
	}
}

func copyOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	copied := *o
	copied.Items = make([]*order.Item, 0, len(o.Items))
	for _, item := range o.Items {
		itemCopy := *item
		copied.Items = append(copied.Items, &itemCopy)
	}
	return &copied
}

func (s *InMemoryOrderStore) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return ierr.NewError("order cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, o.ID, copyOrder(o))
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyOrder(o), nil
}

func (s *InMemoryOrderStore) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	matches := s.InMemoryStore.All(func(o *order.Order) bool {
		return o.OrderNumber == number
	})
	return len(matches) > 0, nil
}

func matchOrderFilter(o *order.Order, filter *types.OrderFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserID != "" && o.UserID != filter.UserID {
		return false
	}
	if filter.OrderStatus != "" && o.OrderStatus != filter.OrderStatus {
		return false
	}
	return true
}

func (s *InMemoryOrderStore) List(ctx context.Context, filter *types.OrderFilter) ([]*order.Order, error) {
	orders := s.InMemoryStore.All(func(o *order.Order) bool {
		return matchOrderFilter(o, filter)
	})
	if filter != nil && filter.QueryFilter != nil && !filter.IsUnlimited() {
		orders = paginate(orders, filter.GetLimit(), filter.GetOffset())
	}
	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (s *InMemoryOrderStore) Count(ctx context.Context, filter *types.OrderFilter) (int, error) {
	orders := s.InMemoryStore.All(func(o *order.Order) bool {
		return matchOrderFilter(o, filter)
	})
	return len(orders), nil
}

func (s *InMemoryOrderStore) Update(ctx context.Context, o *order.Order) error {
	if o == nil {
		return ierr.NewError("order cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, o.ID, copyOrder(o))
}

func (s *InMemoryOrderStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryOrderStore) CountAll(ctx context.Context) (int64, error) {
	return int64(len(s.InMemoryStore.All(nil))), nil
}

func (s *InMemoryOrderStore) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	matches := s.InMemoryStore.All(func(o *order.Order) bool {
		return !o.CreatedAt.Before(since)
	})
	return int64(len(matches)), nil
}

func (s *InMemoryOrderStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	matches := s.InMemoryStore.All(func(o *order.Order) bool {
		return !o.CreatedAt.Before(from) && o.CreatedAt.Before(to)
	})
	return int64(len(matches)), nil
}

func (s *InMemoryOrderStore) TopProducts(ctx context.Context, limit int) ([]order.ProductSales, error) {
	quantities := make(map[string]int64)
	for _, o := range s.InMemoryStore.All(nil) {
		for _, item := range o.Items {
			quantities[item.ProductID] += int64(item.Quantity)
		}
	}
	out := make([]order.ProductSales, 0, len(quantities))
	for productID, quantity := range quantities {
		row := order.ProductSales{ProductID: productID, Quantity: quantity}
		if s.products != nil {
			if p, err := s.products.Get(ctx, productID); err == nil {
				row.ProductName = p.Name
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	return paginate(out, limit, 0), nil
}
