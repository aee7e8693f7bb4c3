package service

import (
	"context"

	"overcooked-ordering/promo-agg-svc/internal/domain"
	"overcooked-ordering/promo-agg-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	MarkProcessed(ctx context.Context, orderID string) (bool, error)
	UnmarkProcessed(ctx context.Context, orderID string) error
	RecordRedemptions(ctx context.Context, event domain.OrderEvent) error
	UpdateLeaderboard(ctx context.Context, event domain.OrderEvent) error
}

type ReportStore interface {
	TopOffersForDay(ctx context.Context, day string, limit int) ([]domain.OfferStats, error)
	TopOffersAllTime(ctx context.Context, limit int) ([]domain.OfferStats, error)
	SavingsForDay(ctx context.Context, day string) (int64, error)
}

type ReportInterface interface {
	Daily(ctx context.Context, day string, limit int) (*domain.DailyReport, error)
	AllTime(ctx context.Context, limit int) ([]domain.OfferStats, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	ProcessOrder(ctx context.Context, event domain.OrderEvent)
}

var (
	_ StoreInterface    = (*storage.Store)(nil)
	_ ReportStore       = (*storage.Store)(nil)
	_ MessageReader     = (*kafka.Reader)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
	_ ReportInterface   = (*ReportService)(nil)
)
