package storage

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"overcooked-ordering/promo-agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// TopOffersForDay ranks offers by redemptions on day. Redis is authoritative
// while the daily keys live; older days are read back from Postgres.
func (s *Store) TopOffersForDay(ctx context.Context, day string, limit int) ([]domain.OfferStats, error) {
	ranked, err := s.rdb.ZRevRangeWithScores(ctx, redemptionsDailyKey(day), 0, int64(limit-1)).Result()
	if err != nil || len(ranked) == 0 {
		return s.topOffersForDayFromDB(ctx, day, limit)
	}
	return s.withDiscounts(ctx, discountDailyKey(day), ranked), nil
}

func (s *Store) TopOffersAllTime(ctx context.Context, limit int) ([]domain.OfferStats, error) {
	ranked, err := s.rdb.ZRevRangeWithScores(ctx, redemptionsAllTimeKey, 0, int64(limit-1)).Result()
	if err != nil || len(ranked) == 0 {
		return s.topOffersAllTimeFromDB(ctx, limit)
	}
	return s.withDiscounts(ctx, discountAllTimeKey, ranked), nil
}

func (s *Store) SavingsForDay(ctx context.Context, day string) (int64, error) {
	savings, err := s.rdb.Get(ctx, savingsDailyKey(day)).Int64()
	if err == nil {
		return savings, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, err
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_discount), 0) FROM offer_redemptions WHERE day = $1", day).
		Scan(&savings)
	return savings, err
}

func (s *Store) withDiscounts(ctx context.Context, hashKey string, ranked []redis.Z) []domain.OfferStats {
	stats := make([]domain.OfferStats, 0, len(ranked))
	for _, member := range ranked {
		offerID, _ := member.Member.(string)
		var discount int64
		if raw, err := s.rdb.HGet(ctx, hashKey, offerID).Result(); err == nil {
			discount, _ = strconv.ParseInt(raw, 10, 64)
		}
		stats = append(stats, domain.OfferStats{
			OfferID:       offerID,
			Redemptions:   int64(member.Score),
			TotalDiscount: discount,
		})
	}
	return stats
}

func (s *Store) topOffersForDayFromDB(ctx context.Context, day string, limit int) ([]domain.OfferStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT offer_id, redemptions, total_discount
		FROM offer_redemptions
		WHERE day = $1
		ORDER BY redemptions DESC, offer_id
		LIMIT $2
	`, day, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOfferStats(rows)
}

func (s *Store) topOffersAllTimeFromDB(ctx context.Context, limit int) ([]domain.OfferStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT offer_id, SUM(redemptions) AS redemptions, SUM(total_discount) AS total_discount
		FROM offer_redemptions
		GROUP BY offer_id
		ORDER BY redemptions DESC, offer_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOfferStats(rows)
}

func scanOfferStats(rows *sql.Rows) ([]domain.OfferStats, error) {
	stats := []domain.OfferStats{}
	for rows.Next() {
		var st domain.OfferStats
		if err := rows.Scan(&st.OfferID, &st.Redemptions, &st.TotalDiscount); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
