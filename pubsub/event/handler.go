package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"eventtickets/clock"
	"eventtickets/entity"
)

type PaymentsRepository interface {
	Add(ctx context.Context, payment entity.Payment) error
}

type Handler struct {
	paymentsRepo PaymentsRepository
	clock        clock.Clock
}

func NewHandler(paymentsRepo PaymentsRepository, clk clock.Clock) Handler {
	if paymentsRepo == nil {
		panic("missing paymentsRepo")
	}
	if clk == nil {
		panic("missing clock")
	}

	return Handler{
		paymentsRepo: paymentsRepo,
		clock:        clk,
	}
}

// Handlers lists every event handler registered in the event processor.
func (h Handler) Handlers() []cqrs.EventHandler {
	return []cqrs.EventHandler{
		h.RecordPaymentHandler(),
	}
}

// NewProcessorConfig subscribes every handler with its own consumer group
// to the per-event topic produced by the events splitter.
func NewProcessorConfig(redisClient *redis.Client, watermillLogger watermill.LoggerAdapter) cqrs.EventProcessorConfig {
	return cqrs.EventProcessorConfig{
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			sub, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        redisClient,
				ConsumerGroup: "svc-tickets." + params.HandlerName,
			}, watermillLogger)
			if err != nil {
				return nil, fmt.Errorf("could not create subscriber for %s: %w", params.HandlerName, err)
			}

			return sub, nil
		},
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return "events." + params.EventName, nil
		},
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
		Logger: watermillLogger,
	}
}
