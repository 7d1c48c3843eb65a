package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// PLACE ORDER (ONE TRANSACTION, ALL-OR-NOTHING)
// --------------------------------------------------
func (r *PostgresRepository) PlaceOrder(ctx context.Context, o *PlacedOrder) (string, error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, staff_id, order_type,
			subtotal, discount_amount, tax_amount, total_amount,
			status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'PAID', now())
	`, o.ID, o.StaffID, o.OrderType,
		o.Subtotal, o.DiscountAmount, o.TaxAmount, o.TotalAmount,
	)
	if err != nil {
		return "", err
	}

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, variant_id, quantity, unit_price, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), o.ID, item.VariantID, item.Quantity, item.UnitPrice, item.Notes)
		if err != nil {
			return "", err
		}
	}

	for _, p := range o.Payments {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_payments (id, order_id, method_id, amount, status)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), o.ID, p.MethodID, p.Amount, p.Status)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	return o.ID, nil
}

// --------------------------------------------------
// LOAD OPEN ORDER (seed a ticket for continuation)
// --------------------------------------------------
func (r *PostgresRepository) LoadOpenOrder(ctx context.Context, id string) (*OpenOrder, error) {
	o := &OpenOrder{ID: id}

	err := r.db.QueryRow(ctx, `
		SELECT order_type, discount_amount
		FROM orders
		WHERE id = $1 AND status = 'OPEN'
	`, id).Scan(&o.OrderType, &o.Discount)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no open order with that id")
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT oi.variant_id, oi.quantity, oi.unit_price, oi.notes,
		       v.name, m.id, m.name
		FROM order_items oi
		JOIN variants v   ON v.id = oi.variant_id
		JOIN menu_items m ON m.id = v.item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OpenOrderItem
		if err := rows.Scan(
			&item.VariantID, &item.Quantity, &item.UnitPrice, &item.Notes,
			&item.VariantName, &item.ItemID, &item.ItemName,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return o, nil
}
