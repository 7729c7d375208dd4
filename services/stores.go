package services

import (
	"context"

	"github.com/kamaumbugua/soko-api/models"
)

// ProductStore is the slice of product persistence the order workflow needs.
// DecrementStock must be a single conditional update (stock = stock - n where
// stock >= n) so concurrent orders cannot oversell; it returns false when the
// condition did not match.
type ProductStore interface {
	FindProduct(ctx context.Context, id int) (*models.Product, error)
	DecrementStock(ctx context.Context, id, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id, quantity int) error
}

// OrderStore persists orders. TransitionStatus must be a single conditional
// update (status = to where id matches and status = from) returning false when
// the order was no longer in the expected status; it is the serialization
// point that keeps concurrent cancels from restoring stock twice.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id int) (*models.Order, error)
	SaveOrder(ctx context.Context, order *models.Order) error
	TransitionStatus(ctx context.Context, id int, from, to string) (bool, error)
	FindOrdersByUser(ctx context.Context, userId int) ([]models.Order, error)
	FindAllOrders(ctx context.Context, search, sortOrder string, limit, offset int) ([]models.Order, int64, error)
}

type CartStore interface {
	ClearCart(ctx context.Context, userId int) error
}

// Store bundles the three stores and provides a transactional scope: fn runs
// against a Store whose writes all commit or all roll back together.
type Store interface {
	Products() ProductStore
	Orders() OrderStore
	Carts() CartStore
	Transaction(ctx context.Context, fn func(Store) error) error
}

// Identity is the caller extracted from the request context by the auth
// middleware.
type Identity struct {
	UserID  int
	IsAdmin bool
}
