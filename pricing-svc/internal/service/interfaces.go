package service

import (
	"context"
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"
)

type CatalogRepository interface {
	LoadMenu(ctx context.Context) ([]domain.MenuItem, error)
	LoadOffers(ctx context.Context) ([]domain.OfferSpec, error)
}

// CatalogCache returns a nil catalog and nil error on a miss.
type CatalogCache interface {
	GetCatalog(ctx context.Context) (*domain.Catalog, error)
	SetCatalog(ctx context.Context, catalog *domain.Catalog) error
	InvalidateCatalog(ctx context.Context) error
}

type CatalogProvider interface {
	Snapshot(ctx context.Context) (*domain.Catalog, error)
	Reload(ctx context.Context) (*domain.Catalog, error)
}

type Clock interface {
	Now() time.Time
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	SaveQRCode(ctx context.Context, orderID string, qr []byte) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

type PricingServiceInterface interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	Offers(ctx context.Context, at time.Time) ([]domain.OfferStatus, error)
	Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error)
	SplitEqual(req domain.EqualSplitRequest) (*domain.BillSplit, error)
	SplitItems(ctx context.Context, req domain.ItemSplitRequest) (*domain.BillSplit, error)
	Checkout(ctx context.Context, req domain.OrderRequest) (*domain.Quote, *domain.BillSplit, error)
	ReloadCatalog(ctx context.Context) (*domain.Catalog, error)
}

type OrderServiceInterface interface {
	Submit(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
	QRLink(orderID string) string
}

var (
	_ CatalogProvider         = (*CatalogService)(nil)
	_ Clock                   = LocalClock{}
	_ QRGenerator             = DefaultQRGenerator{}
	_ PricingServiceInterface = (*PricingService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
)
