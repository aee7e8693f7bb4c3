package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"overcooked-ordering/pricing-svc/internal/domain"
	"overcooked-ordering/pricing-svc/internal/pricing"

	"github.com/google/uuid"
)

const (
	OrderStatusFinalized = "finalized"
	EventOrderFinalized  = "order_finalized"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	pricing   PricingServiceInterface
	repo      OrderRepository
	publisher OrderPublisher
	qrEncoder QRGenerator
	clock     Clock
}

func NewOrderService(pricing PricingServiceInterface, repo OrderRepository, publisher OrderPublisher, qr QRGenerator, clock Clock) *OrderService {
	return &OrderService{
		pricing:   pricing,
		repo:      repo,
		publisher: publisher,
		qrEncoder: qr,
		clock:     clock,
	}
}

// Submit finalizes the computation and hands it to the order store. The
// receipt QR and the order event are best effort.
func (s *OrderService) Submit(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	quote, split, err := s.pricing.Checkout(ctx, req)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		Lines:           quote.Lines,
		OriginalTotal:   quote.OriginalTotal,
		ComputedTotal:   quote.DiscountedTotal,
		Savings:         quote.Savings,
		AppliedOffers:   quote.AppliedOffers,
		SplitAllocation: split,
		Status:          OrderStatusFinalized,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err != nil {
			log.Printf("WARNING: Failed to generate QR code for order %s: %v", order.ID, err)
		} else if err := s.repo.SaveQRCode(ctx, order.ID, qr); err != nil {
			log.Printf("WARNING: Failed to store QR code for order %s: %v", order.ID, err)
		}
	}
	order.QRCode = s.QRLink(order.ID)

	if s.publisher != nil {
		if err := s.publisher.PublishOrder(ctx, orderEvent(order)); err != nil {
			log.Printf("WARNING: Failed to publish order %s: %v", order.ID, err)
		}
	}

	log.Printf("[pricing-svc] order %s finalized at %s (saved %s)",
		order.ID, pricing.FormatYen(order.ComputedTotal), pricing.FormatYen(order.Savings))
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	order.QRCode = s.QRLink(order.ID)
	return order, nil
}

func (s *OrderService) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			if err := s.repo.SaveQRCode(ctx, orderID, regenerated); err != nil {
				log.Printf("WARNING: Failed to cache regenerated QR code: %v", err)
			}
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) QRLink(orderID string) string {
	return fmt.Sprintf("/api/orders/%s/qrcode", orderID)
}

func orderEvent(order *domain.Order) domain.OrderEvent {
	offers := make([]domain.OfferRedemption, 0, len(order.AppliedOffers))
	for _, offer := range order.AppliedOffers {
		offers = append(offers, domain.OfferRedemption{OfferID: offer.OfferID, Discount: offer.Discount})
	}
	return domain.OrderEvent{
		Type:          EventOrderFinalized,
		OrderID:       order.ID,
		OriginalTotal: order.OriginalTotal,
		ComputedTotal: order.ComputedTotal,
		Savings:       order.Savings,
		Offers:        offers,
		Timestamp:     order.CreatedAt,
	}
}
