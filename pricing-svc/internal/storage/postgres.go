package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"overcooked-ordering/pricing-svc/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		base_price BIGINT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		variations JSONB NOT NULL DEFAULT '[]',
		add_ons JSONB NOT NULL DEFAULT '[]',
		sort_order INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS offers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		offer_type TEXT NOT NULL,
		applicable_items TEXT[] NOT NULL DEFAULT '{}',
		discount_value BIGINT NOT NULL DEFAULT 0,
		time_windows JSONB NOT NULL DEFAULT '[]',
		min_quantity INT NOT NULL DEFAULT 0,
		max_applications INT NOT NULL DEFAULT 0,
		combinable BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		sort_order INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		lines JSONB NOT NULL,
		original_total BIGINT NOT NULL,
		computed_total BIGINT NOT NULL,
		savings BIGINT NOT NULL DEFAULT 0,
		applied_offers JSONB NOT NULL DEFAULT '[]',
		split_allocation JSONB,
		status TEXT NOT NULL,
		qr_code BYTEA,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_offers (
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		offer_id TEXT NOT NULL,
		discount BIGINT NOT NULL,
		PRIMARY KEY (order_id, offer_id)
	)`,
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) LoadMenu(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, base_price, category, variations, add_ons
		FROM menu_items
		ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		var variations, addOns []byte
		if err := rows.Scan(&item.ID, &item.Name, &item.BasePrice, &item.Category, &variations, &addOns); err != nil {
			return nil, err
		}
		if err := decodeJSON(variations, &item.Variations); err != nil {
			return nil, fmt.Errorf("menu item %s variations: %w", item.ID, err)
		}
		if err := decodeJSON(addOns, &item.AddOns); err != nil {
			return nil, fmt.Errorf("menu item %s add-ons: %w", item.ID, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) LoadOffers(ctx context.Context) ([]domain.OfferSpec, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, offer_type, applicable_items, discount_value, time_windows,
		       min_quantity, max_applications, combinable, is_active
		FROM offers
		ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specs := []domain.OfferSpec{}
	for rows.Next() {
		var spec domain.OfferSpec
		var windows []byte
		if err := rows.Scan(&spec.ID, &spec.Name, &spec.Type, pq.Array(&spec.ApplicableItems), &spec.DiscountValue,
			&windows, &spec.MinQuantity, &spec.MaxApplications, &spec.Combinable, &spec.IsActive); err != nil {
			return nil, err
		}
		if err := decodeJSON(windows, &spec.TimeWindows); err != nil {
			return nil, fmt.Errorf("offer %s time windows: %w", spec.ID, err)
		}
		specs = append(specs, spec)
	}
	return specs, rows.Err()
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return err
	}
	applied, err := json.Marshal(order.AppliedOffers)
	if err != nil {
		return err
	}
	// split stays an untyped nil so the driver writes NULL rather than ''.
	var split interface{}
	if order.SplitAllocation != nil {
		encoded, err := json.Marshal(order.SplitAllocation)
		if err != nil {
			return err
		}
		split = encoded
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, lines, original_total, computed_total, savings, applied_offers, split_allocation, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, order.ID, lines, order.OriginalTotal, order.ComputedTotal, order.Savings, applied, split, order.Status, order.CreatedAt); err != nil {
		return err
	}

	for _, offer := range order.AppliedOffers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_offers (order_id, offer_id, discount)
			VALUES ($1, $2, $3)
		`, order.ID, offer.OfferID, offer.Discount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	var lines, applied, split []byte
	if err := r.DB.QueryRowContext(ctx, `
		SELECT id, lines, original_total, computed_total, savings, applied_offers, split_allocation, status, created_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &lines, &order.OriginalTotal, &order.ComputedTotal, &order.Savings,
		&applied, &split, &order.Status, &order.CreatedAt); err != nil {
		return nil, err
	}

	if err := decodeJSON(lines, &order.Lines); err != nil {
		return nil, fmt.Errorf("order %s lines: %w", orderID, err)
	}
	if err := decodeJSON(applied, &order.AppliedOffers); err != nil {
		return nil, fmt.Errorf("order %s offers: %w", orderID, err)
	}
	if len(split) > 0 {
		order.SplitAllocation = &domain.BillSplit{}
		if err := json.Unmarshal(split, order.SplitAllocation); err != nil {
			return nil, fmt.Errorf("order %s split: %w", orderID, err)
		}
	}
	return &order, nil
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	var qr []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr)
	return qr, err
}

func decodeJSON(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
