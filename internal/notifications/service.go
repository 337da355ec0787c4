package notifications

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/agroshop/admin-api/internal/clients"
	kafkax "github.com/agroshop/admin-api/internal/kafka"
	"github.com/agroshop/admin-api/internal/orders"
	"github.com/agroshop/admin-api/internal/redisx"
)

// Service turns order events into persisted client notifications. Installed
// as the handler of the notifier's Kafka consumer.
type Service struct {
	Clients     *clients.Repo
	Redis       *redis.Client
	ServiceName string
}

func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		return err
	}

	// dedup via Redis on event_id
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	switch env.EventType {
	case orders.EventOrderCreated:
		p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
		if err != nil {
			return err
		}
		_, err = s.Clients.AddNotification(ctx, p.ClientID,
			"Order received",
			fmt.Sprintf("We received your order of $%.2f and it is pending.", float64(p.TotalCents)/100))
		return err

	case orders.EventOrderStatusUpdated:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusUpdatedPayload](env.Payload)
		if err != nil {
			return err
		}
		_, err = s.Clients.AddNotification(ctx, p.ClientID,
			"Order update",
			fmt.Sprintf("Your order is now %s.", p.To))
		return err
	}

	return nil // unknown event types are ignored
}
