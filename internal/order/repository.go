package order

import "context"

// Repository is the persistence contract for placed orders.
// PlaceOrder is all-or-nothing: either the order with all its items and
// payments is stored, or nothing is.
type Repository interface {
	PlaceOrder(ctx context.Context, o *PlacedOrder) (string, error)
	LoadOpenOrder(ctx context.Context, id string) (*OpenOrder, error)
}
