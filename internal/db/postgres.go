package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// STAFF
	// -------------------------------
	staffTableSQL := `
		CREATE TABLE IF NOT EXISTS staff (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'CASHIER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, staffTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// CATALOG
	// -------------------------------
	catalogSQL := `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			position INT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category_id UUID NOT NULL REFERENCES categories(id)
		);

		CREATE TABLE IF NOT EXISTS variants (
			id UUID PRIMARY KEY,
			item_id UUID NOT NULL REFERENCES menu_items(id),
			name VARCHAR(255) NOT NULL,
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			position INT NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS addons (
			id UUID PRIMARY KEY,
			item_id UUID NOT NULL REFERENCES menu_items(id),
			name VARCHAR(255) NOT NULL,
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0)
		);

		CREATE TABLE IF NOT EXISTS payment_methods (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(50) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
	`
	if _, err := db.Exec(ctx, catalogSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDERS
	// -------------------------------
	ordersSQL := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			staff_id UUID NOT NULL REFERENCES staff(id),
			order_type VARCHAR(50) NOT NULL,
			subtotal NUMERIC(10,2) NOT NULL,
			discount_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			tax_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			total_amount NUMERIC(10,2) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'OPEN',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			variant_id UUID NOT NULL REFERENCES variants(id),
			quantity INT NOT NULL CHECK (quantity >= 1),
			unit_price NUMERIC(10,2) NOT NULL,
			notes TEXT
		);

		CREATE TABLE IF NOT EXISTS order_payments (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			method_id UUID NOT NULL REFERENCES payment_methods(id),
			amount NUMERIC(10,2) NOT NULL CHECK (amount > 0),
			status VARCHAR(50) NOT NULL DEFAULT 'PAID'
		);
	`
	if _, err := db.Exec(ctx, ordersSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
