package catalog

import "context"

// Repository defines the data-access contract for the catalog.
// Service depends ONLY on this interface.
type Repository interface {
	ListMenuItems(ctx context.Context) ([]MenuItem, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListActivePaymentMethods(ctx context.Context) ([]PaymentMethod, error)
}
