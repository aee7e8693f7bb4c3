package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"overcooked-ordering/promo-agg-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewStore(db, rdb), mock, mr
}

func sampleEvent() domain.OrderEvent {
	return domain.OrderEvent{
		Type:          domain.EventOrderFinalized,
		OrderID:       "o-1",
		OriginalTotal: 3090,
		ComputedTotal: 2300,
		Savings:       790,
		Offers: []domain.OfferRedemption{
			{OfferID: "ramen-beer-set", Discount: 790},
		},
		Timestamp: time.Date(2025, 6, 2, 19, 30, 0, 0, time.FixedZone("JST", 9*60*60)),
	}
}

func TestStore_MarkProcessed(t *testing.T) {
	store, _, mr := setupStore(t)
	ctx := context.Background()

	fresh, err := store.MarkProcessed(ctx, "o-1")
	require.NoError(t, err)
	assert.True(t, fresh)

	again, err := store.MarkProcessed(ctx, "o-1")
	require.NoError(t, err)
	assert.False(t, again)
	assert.True(t, mr.Exists("promo:processed:o-1"))

	require.NoError(t, store.UnmarkProcessed(ctx, "o-1"))
	assert.False(t, mr.Exists("promo:processed:o-1"))

	retried, err := store.MarkProcessed(ctx, "o-1")
	require.NoError(t, err)
	assert.True(t, retried)
}

func TestStore_RecordRedemptions(t *testing.T) {
	tests := []struct {
		name    string
		event   domain.OrderEvent
		setup   func(sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name:  "upserts each offer",
			event: sampleEvent(),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO processed_orders").WithArgs("o-1").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO offer_redemptions").
					WithArgs("ramen-beer-set", "2025-06-02", int64(790)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:  "no offers touches nothing",
			event: domain.OrderEvent{Type: domain.EventOrderFinalized, OrderID: "o-2"},
			setup: func(mock sqlmock.Sqlmock) {},
		},
		{
			name:  "already recorded order is skipped",
			event: sampleEvent(),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO processed_orders").WithArgs("o-1").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
		},
		{
			name:  "rolls back on failure",
			event: sampleEvent(),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO processed_orders").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO offer_redemptions").WillReturnError(errors.New("deadlock"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, mock, _ := setupStore(t)
			testCase.setup(mock)

			err := store.RecordRedemptions(context.Background(), testCase.event)
			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_UpdateLeaderboard(t *testing.T) {
	store, _, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateLeaderboard(ctx, sampleEvent()))
	require.NoError(t, store.UpdateLeaderboard(ctx, sampleEvent()))

	score, err := mr.ZScore("promo:redemptions:daily:2025-06-02", "ramen-beer-set")
	require.NoError(t, err)
	assert.Equal(t, 2.0, score)

	alltime, err := mr.ZScore("promo:redemptions:alltime", "ramen-beer-set")
	require.NoError(t, err)
	assert.Equal(t, 2.0, alltime)

	assert.Equal(t, "1580", mr.HGet("promo:discount:alltime", "ramen-beer-set"))

	savings, err := mr.Get("promo:savings:daily:2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "1580", savings)
	assert.Equal(t, 7*24*time.Hour, mr.TTL("promo:savings:daily:2025-06-02"))
}

func TestStore_EnsureSchema(t *testing.T) {
	store, mock, _ := setupStore(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS offer_redemptions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS processed_orders").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TopOffersForDay(t *testing.T) {
	t.Run("reads redis while the daily keys live", func(t *testing.T) {
		store, _, mr := setupStore(t)
		ctx := context.Background()

		gyoza := sampleEvent()
		gyoza.OrderID = "o-2"
		gyoza.Savings = 500
		gyoza.Offers = []domain.OfferRedemption{{OfferID: "gyoza-bogo", Discount: 500}}

		require.NoError(t, store.UpdateLeaderboard(ctx, sampleEvent()))
		require.NoError(t, store.UpdateLeaderboard(ctx, gyoza))
		require.NoError(t, store.UpdateLeaderboard(ctx, gyoza))
		assert.True(t, mr.Exists("promo:discount:daily:2025-06-02"))

		stats, err := store.TopOffersForDay(ctx, "2025-06-02", 10)
		require.NoError(t, err)
		assert.Equal(t, []domain.OfferStats{
			{OfferID: "gyoza-bogo", Redemptions: 2, TotalDiscount: 1000},
			{OfferID: "ramen-beer-set", Redemptions: 1, TotalDiscount: 790},
		}, stats)

		savings, err := store.SavingsForDay(ctx, "2025-06-02")
		require.NoError(t, err)
		assert.Equal(t, int64(1790), savings)
	})

	t.Run("falls back to postgres for expired days", func(t *testing.T) {
		store, mock, _ := setupStore(t)
		mock.ExpectQuery("SELECT offer_id, redemptions, total_discount").
			WithArgs("2025-05-01", 5).
			WillReturnRows(sqlmock.NewRows([]string{"offer_id", "redemptions", "total_discount"}).
				AddRow("lunch-15", int64(7), int64(1200)))
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs("2025-05-01").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(1200)))

		stats, err := store.TopOffersForDay(context.Background(), "2025-05-01", 5)
		require.NoError(t, err)
		assert.Equal(t, []domain.OfferStats{{OfferID: "lunch-15", Redemptions: 7, TotalDiscount: 1200}}, stats)

		savings, err := store.SavingsForDay(context.Background(), "2025-05-01")
		require.NoError(t, err)
		assert.Equal(t, int64(1200), savings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_TopOffersAllTime(t *testing.T) {
	t.Run("redis", func(t *testing.T) {
		store, _, _ := setupStore(t)
		require.NoError(t, store.UpdateLeaderboard(context.Background(), sampleEvent()))

		stats, err := store.TopOffersAllTime(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, []domain.OfferStats{{OfferID: "ramen-beer-set", Redemptions: 1, TotalDiscount: 790}}, stats)
	})

	t.Run("postgres fallback", func(t *testing.T) {
		store, mock, _ := setupStore(t)
		mock.ExpectQuery("SELECT offer_id, SUM").
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"offer_id", "redemptions", "total_discount"}))

		stats, err := store.TopOffersAllTime(context.Background(), 3)
		require.NoError(t, err)
		assert.Empty(t, stats)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
