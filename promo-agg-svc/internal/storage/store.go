package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"overcooked-ordering/promo-agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	processedTTL = 7 * 24 * time.Hour
	dailyTTL     = 7 * 24 * time.Hour

	redemptionsAllTimeKey = "promo:redemptions:alltime"
	discountAllTimeKey    = "promo:discount:alltime"
)

func processedKey(orderID string) string { return "promo:processed:" + orderID }
func redemptionsDailyKey(day string) string { return "promo:redemptions:daily:" + day }
func discountDailyKey(day string) string { return "promo:discount:daily:" + day }
func savingsDailyKey(day string) string { return "promo:savings:daily:" + day }

type Store struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:  db,
		rdb: rdb,
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS offer_redemptions (
		offer_id TEXT NOT NULL,
		day DATE NOT NULL,
		redemptions BIGINT NOT NULL DEFAULT 0,
		total_discount BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (offer_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS processed_orders (
		order_id TEXT PRIMARY KEY,
		processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// MarkProcessed claims the order's leaderboard update. It reports false when
// the order was already counted in Redis.
func (s *Store) MarkProcessed(ctx context.Context, orderID string) (bool, error) {
	return s.rdb.SetNX(ctx, processedKey(orderID), 1, processedTTL).Result()
}

// UnmarkProcessed releases a claim whose leaderboard update failed.
func (s *Store) UnmarkProcessed(ctx context.Context, orderID string) error {
	return s.rdb.Del(ctx, processedKey(orderID)).Err()
}

// RecordRedemptions upserts the daily offer counters. The order id is
// recorded in the same transaction, so a redelivered order is a no-op.

func (s *Store) RecordRedemptions(ctx context.Context, event domain.OrderEvent) error {
	if len(event.Offers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO processed_orders (order_id) VALUES ($1) ON CONFLICT (order_id) DO NOTHING", event.OrderID)
	if err != nil {
		return err
	}
	if inserted, err := res.RowsAffected(); err != nil {
		return err
	} else if inserted == 0 {
		return nil
	}

	for _, offer := range event.Offers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO offer_redemptions (offer_id, day, redemptions, total_discount)
			VALUES ($1, $2, 1, $3)
			ON CONFLICT (offer_id, day) DO UPDATE
			SET redemptions = offer_redemptions.redemptions + 1,
			    total_discount = offer_redemptions.total_discount + EXCLUDED.total_discount,
			    updated_at = NOW()
		`, offer.OfferID, event.Day(), offer.Discount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) UpdateLeaderboard(ctx context.Context, event domain.OrderEvent) error {
	day := event.Day()
	dailyKey := redemptionsDailyKey(day)
	discountKey := discountDailyKey(day)
	savingsKey := savingsDailyKey(day)

	pipe := s.rdb.TxPipeline()
	for _, offer := range event.Offers {
		pipe.ZIncrBy(ctx, dailyKey, 1, offer.OfferID)
		pipe.ZIncrBy(ctx, redemptionsAllTimeKey, 1, offer.OfferID)
		pipe.HIncrBy(ctx, discountKey, offer.OfferID, offer.Discount)
		pipe.HIncrBy(ctx, discountAllTimeKey, offer.OfferID, offer.Discount)
	}
	pipe.IncrBy(ctx, savingsKey, event.Savings)
	pipe.Expire(ctx, dailyKey, dailyTTL)
	pipe.Expire(ctx, discountKey, dailyTTL)
	pipe.Expire(ctx, savingsKey, dailyTTL)
	_, err := pipe.Exec(ctx)
	return err
}
