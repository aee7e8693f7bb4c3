package storage

import (
	"context"
	"testing"
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, 5*time.Minute), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	miss, err := cache.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Nil(t, miss)

	catalog := &domain.Catalog{
		Items: []domain.MenuItem{{ID: "gyoza", Name: "Gyoza", BasePrice: 500}},
		Offers: []domain.OfferRule{{
			ID:              "gyoza-bogo",
			Type:            domain.OfferBOGO,
			ApplicableItems: []string{"gyoza"},
			Windows:         []domain.TimeWindow{{StartMinute: 840, EndMinute: 1140, Days: []int{1, 2, 3, 4, 5, 6, 7}}},
			MinQuantity:     2,
			IsActive:        true,
		}},
		LoadedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, cache.SetCatalog(ctx, catalog))
	assert.Equal(t, 5*time.Minute, mr.TTL(catalogKey))

	got, err := cache.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog, got)

	require.NoError(t, cache.InvalidateCatalog(ctx))
	assert.False(t, mr.Exists(catalogKey))
}

func TestRedisCache_CorruptSnapshotIsMiss(t *testing.T) {
	cache, mr := setupCache(t)
	require.NoError(t, mr.Set(catalogKey, "not json"))

	got, err := cache.GetCatalog(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists(catalogKey))
}

func TestRedisCache_ExpiredSnapshot(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetCatalog(ctx, &domain.Catalog{}))
	mr.FastForward(6 * time.Minute)

	got, err := cache.GetCatalog(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
