package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

var tables = []struct {
	name  string
	query string
}{
	{"products", `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(64) PRIMARY KEY,
			seller VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(128) NOT NULL,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			rating DOUBLE NOT NULL DEFAULT 0,
			reviews INT NOT NULL DEFAULT 0,
			biodiversity_score DOUBLE NOT NULL DEFAULT 0,
			carbon_footprint DOUBLE NOT NULL DEFAULT 0,
			community_benefit VARCHAR(255) NOT NULL DEFAULT ''
		);
	`},
	{"product_prices", `
		CREATE TABLE IF NOT EXISTS product_prices (
			product_id VARCHAR(64) NOT NULL,
			currency VARCHAR(8) NOT NULL,
			amount DOUBLE NOT NULL,
			PRIMARY KEY (product_id, currency),
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);
	`},
	{"product_certifications", `
		CREATE TABLE IF NOT EXISTS product_certifications (
			product_id VARCHAR(64) NOT NULL,
			position INT NOT NULL,
			label VARCHAR(128) NOT NULL,
			PRIMARY KEY (product_id, position),
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);
	`},
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR(36) PRIMARY KEY,
			request_id VARCHAR(255) NOT NULL,
			user_id VARCHAR(255) NOT NULL,
			currency VARCHAR(8) NOT NULL,
			subtotal DOUBLE NOT NULL,
			shipping DOUBLE NOT NULL,
			eco_discount DOUBLE NOT NULL,
			total DOUBLE NOT NULL,
			status VARCHAR(20) NOT NULL,
			idempotency_key VARCHAR(255) NOT NULL UNIQUE,
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL,
			INDEX idx_orders_user (user_id)
		);
	`},
	{"order_items", `
		CREATE TABLE IF NOT EXISTS order_items (
			order_id VARCHAR(36) NOT NULL,
			line_no INT NOT NULL,
			product_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			unit_price DOUBLE NOT NULL,
			quantity INT NOT NULL,
			PRIMARY KEY (order_id, line_no),
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
		);
	`},
}

// AutoMigrate creates the catalog and order tables if they do not exist,
// retrying each statement up to retries times one second apart.
func AutoMigrate(db *sql.DB, retries int) error {
	for _, t := range tables {
		_, err := db.Exec(t.query)
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(t.query)
		}
		if err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}
	return nil
}
