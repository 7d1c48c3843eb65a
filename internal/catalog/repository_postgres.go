package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// MENU ITEMS (with variants and add-ons)
// --------------------------------------------------

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category_id
		FROM menu_items
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	index := map[string]int{}

	for rows.Next() {
		var item MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.CategoryID); err != nil {
			return nil, err
		}
		index[item.ID] = len(items)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachVariants(ctx, items, index); err != nil {
		return nil, err
	}
	if err := r.attachAddOns(ctx, items, index); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PostgresRepository) attachVariants(
	ctx context.Context,
	items []MenuItem,
	index map[string]int,
) error {

	rows, err := r.db.Query(ctx, `
		SELECT id, item_id, name, price
		FROM variants
		ORDER BY item_id, position
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v      Variant
			itemID string
		)
		if err := rows.Scan(&v.ID, &itemID, &v.Name, &v.Price); err != nil {
			return err
		}
		if i, ok := index[itemID]; ok {
			items[i].Variants = append(items[i].Variants, v)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) attachAddOns(
	ctx context.Context,
	items []MenuItem,
	index map[string]int,
) error {

	rows, err := r.db.Query(ctx, `
		SELECT id, item_id, name, price
		FROM addons
		ORDER BY item_id, name
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a      AddOnOption
			itemID string
		)
		if err := rows.Scan(&a.ID, &itemID, &a.Name, &a.Price); err != nil {
			return err
		}
		if i, ok := index[itemID]; ok {
			items[i].AddOns = append(items[i].AddOns, a)
		}
	}
	return rows.Err()
}

// --------------------------------------------------
// CATEGORIES
// --------------------------------------------------

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, position
		FROM categories
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// --------------------------------------------------
// PAYMENT METHODS (active only)
// --------------------------------------------------

func (r *PostgresRepository) ListActivePaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, active
		FROM payment_methods
		WHERE active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []PaymentMethod
	for rows.Next() {
		var m PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.Active); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}
