package service

import (
	"context"
	"encoding/json"
	"log"

	"overcooked-ordering/promo-agg-svc/internal/domain"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	log.Println("Starting Promotion Aggregation consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Promotion Aggregation consumer stopped")
				return ctx.Err()
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if event.Type == domain.EventOrderFinalized {
			c.ProcessOrder(ctx, event)
		}
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.EventOrderFinalized || event.OrderID == "" {
		return
	}
	log.Printf("Processing order: OrderID=%s, Offers=%d, Savings=%d",
		event.OrderID, len(event.Offers), event.Savings)

	if err := c.Store.RecordRedemptions(ctx, event); err != nil {
		log.Printf("Error recording redemptions: %v", err)
		return
	}

	fresh, err := c.Store.MarkProcessed(ctx, event.OrderID)
	if err != nil {
		log.Printf("Error marking order %s: %v", event.OrderID, err)
		return
	}
	if !fresh {
		log.Printf("Leaderboard already holds order %s", event.OrderID)
		return
	}

	if err := c.Store.UpdateLeaderboard(ctx, event); err != nil {
		log.Printf("Error updating leaderboard: %v", err)
		if err := c.Store.UnmarkProcessed(ctx, event.OrderID); err != nil {
			log.Printf("WARNING: order %s stays marked after a failed leaderboard update: %v", event.OrderID, err)
		}
		return
	}

	log.Printf("Successfully processed order %s", event.OrderID)
}
