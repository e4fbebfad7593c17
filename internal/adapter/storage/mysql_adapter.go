package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

const mysqlDuplicateEntry = 1062

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// CreateOrder writes the order header and its lines in one transaction. A
// second order for the same idempotency key is rejected with
// domain.ErrDuplicateRequest.
func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, request_id, user_id, currency, subtotal, shipping, eco_discount, total,
			status, idempotency_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.RequestID, order.UserID, string(order.Currency),
		order.Totals.Subtotal, order.Totals.Shipping, order.Totals.EcoDiscount, order.Totals.Total,
		order.Status, order.IdempotencyKey, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return domain.ErrDuplicateRequest
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i, l := range order.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, line_no, product_id, name, unit_price, quantity)
			VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID, i, l.ProductID, l.Name, l.UnitPrice, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var o domain.Order
	var currency string
	err := m.db.QueryRowContext(ctx, `
		SELECT id, request_id, user_id, currency, subtotal, shipping, eco_discount, total,
			status, idempotency_key, created_at, updated_at
		FROM orders WHERE id = ?`, orderID,
	).Scan(&o.ID, &o.RequestID, &o.UserID, &currency,
		&o.Totals.Subtotal, &o.Totals.Shipping, &o.Totals.EcoDiscount, &o.Totals.Total,
		&o.Status, &o.IdempotencyKey, &o.CreatedAt, &o.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	o.Currency = domain.Currency(currency)

	rows, err := m.db.QueryContext(ctx, `
		SELECT product_id, name, unit_price, quantity
		FROM order_items WHERE order_id = ? ORDER BY line_no`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return &o, rows.Err()
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, seller, name, description, category, in_stock, rating, reviews,
			biodiversity_score, carbon_footprint, community_benefit
		FROM products WHERE id = ?`, productID,
	).Scan(&p.ID, &p.Seller, &p.Name, &p.Description, &p.Category, &p.InStock, &p.Rating, &p.Reviews,
		&p.Impact.BiodiversityScore, &p.Impact.CarbonFootprint, &p.Impact.CommunityBenefit)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	p.Price = domain.Prices{}
	if err := m.loadPrices(ctx, map[string]*domain.Product{p.ID: &p}, "WHERE product_id = ?", p.ID); err != nil {
		return nil, err
	}
	if err := m.loadCertifications(ctx, map[string]*domain.Product{p.ID: &p}, "WHERE product_id = ?", p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, seller, name, description, category, in_stock, rating, reviews,
			biodiversity_score, carbon_footprint, community_benefit
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Seller, &p.Name, &p.Description, &p.Category, &p.InStock, &p.Rating, &p.Reviews,
			&p.Impact.BiodiversityScore, &p.Impact.CarbonFootprint, &p.Impact.CommunityBenefit); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price = domain.Prices{}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	if err := m.loadPrices(ctx, byID, ""); err != nil {
		return nil, err
	}
	if err := m.loadCertifications(ctx, byID, ""); err != nil {
		return nil, err
	}
	return products, nil
}

func (m *MySQLAdapter) loadPrices(ctx context.Context, byID map[string]*domain.Product, where string, args ...any) error {
	rows, err := m.db.QueryContext(ctx, "SELECT product_id, currency, amount FROM product_prices "+where, args...)
	if err != nil {
		return fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, currency string
		var amount float64
		if err := rows.Scan(&id, &currency, &amount); err != nil {
			return fmt.Errorf("scan price: %w", err)
		}
		if p, ok := byID[id]; ok {
			p.Price[domain.Currency(currency)] = amount
		}
	}
	return rows.Err()
}

func (m *MySQLAdapter) loadCertifications(ctx context.Context, byID map[string]*domain.Product, where string, args ...any) error {
	rows, err := m.db.QueryContext(ctx,
		"SELECT product_id, label FROM product_certifications "+where+" ORDER BY product_id, position", args...)
	if err != nil {
		return fmt.Errorf("query certifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, label string
		if err := rows.Scan(&id, &label); err != nil {
			return fmt.Errorf("scan certification: %w", err)
		}
		if p, ok := byID[id]; ok {
			p.Certifications = append(p.Certifications, label)
		}
	}
	return rows.Err()
}

// UpsertProduct replaces a product together with its prices and
// certifications.
func (m *MySQLAdapter) UpsertProduct(ctx context.Context, p domain.Product) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, seller, name, description, category, in_stock, rating, reviews,
			biodiversity_score, carbon_footprint, community_benefit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE seller = VALUES(seller), name = VALUES(name),
			description = VALUES(description), category = VALUES(category), in_stock = VALUES(in_stock),
			rating = VALUES(rating), reviews = VALUES(reviews), biodiversity_score = VALUES(biodiversity_score),
			carbon_footprint = VALUES(carbon_footprint), community_benefit = VALUES(community_benefit)`,
		p.ID, p.Seller, p.Name, p.Description, p.Category, p.InStock, p.Rating, p.Reviews,
		p.Impact.BiodiversityScore, p.Impact.CarbonFootprint, p.Impact.CommunityBenefit,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_prices WHERE product_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear prices: %w", err)
	}
	for c, amount := range p.Price {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_prices (product_id, currency, amount) VALUES (?, ?, ?)`,
			p.ID, string(c), amount); err != nil {
			return fmt.Errorf("insert price %s: %w", c, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_certifications WHERE product_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear certifications: %w", err)
	}
	for i, label := range p.Certifications {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_certifications (product_id, position, label) VALUES (?, ?, ?)`,
			p.ID, i, label); err != nil {
			return fmt.Errorf("insert certification: %w", err)
		}
	}

	return tx.Commit()
}

// SeedProducts upserts every product, stopping at the first failure.
func (m *MySQLAdapter) SeedProducts(ctx context.Context, products []domain.Product) error {
	for _, p := range products {
		if err := m.UpsertProduct(ctx, p); err != nil {
			return fmt.Errorf("seed %s: %w", p.ID, err)
		}
	}
	return nil
}
