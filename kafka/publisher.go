package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	inventorydomain "github.com/tair/pos-ledger/internal/inventory/domain"
	orderdomain "github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/pkg/logger"
	"github.com/tair/pos-ledger/pkg/metrics"
	"github.com/tair/pos-ledger/pkg/money"
)

// Publisher wraps a Kafka sync producer and implements the order and
// inventory event publisher interfaces
type Publisher struct {
	producer sarama.SyncProducer
	breaker  *Breaker
	now      func() time.Time
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer wraps an existing producer. Sends fail fast
// for 30s after 5 consecutive failures.
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer, breaker: NewBreaker(5, 30*time.Second), now: time.Now}
}

// WithBreaker replaces the send circuit breaker
func (p *Publisher) WithBreaker(b *Breaker) *Publisher {
	p.breaker = b
	return p
}

// PublishOrderCreated publishes order.created keyed by order id
func (p *Publisher) PublishOrderCreated(ctx context.Context, order *orderdomain.Order) error {
	return p.publishOrder(ctx, EventTypeOrderCreated, order)
}

// PublishOrderStatusChanged publishes order.status_changed keyed by order id
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, order *orderdomain.Order) error {
	return p.publishOrder(ctx, EventTypeOrderStatusChanged, order)
}

func (p *Publisher) publishOrder(ctx context.Context, eventType string, order *orderdomain.Order) error {
	event := OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OrderID:    order.ID.String(),
		LocationID: order.LocationID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		Total:      money.FormatAmount(order.Total),
		Timestamp:  p.now().UTC(),
	}
	if eventType == EventTypeOrderCreated {
		for _, l := range order.Lines {
			event.Items = append(event.Items, OrderLine{
				ItemID:    l.ItemID,
				Quantity:  money.Format(l.Quantity),
				UnitPrice: money.Format(l.UnitPrice),
			})
		}
	}
	return p.publish(ctx, TopicOrders, eventType, event.EventID, event.OrderID, event,
		attribute.String("order.id", event.OrderID),
		attribute.String("order.status", event.Status),
	)
}

// PublishInventoryAdjusted publishes inventory.adjusted keyed by
// location/item so a record's events stay ordered in one partition
func (p *Publisher) PublishInventoryAdjusted(ctx context.Context, inv *inventorydomain.Inventory, delta decimal.Decimal) error {
	event := InventoryAdjustedEvent{
		EventID:    uuid.NewString(),
		EventType:  EventTypeInventoryAdjusted,
		LocationID: inv.LocationID,
		ItemID:     inv.ItemID,
		Delta:      money.Format(delta),
		Quantity:   money.Format(inv.Quantity),
		Version:    inv.Version,
		Timestamp:  p.now().UTC(),
	}
	return p.publish(ctx, TopicInventory, EventTypeInventoryAdjusted, event.EventID, inv.LocationID+"/"+inv.ItemID, event,
		attribute.String("inventory.location_id", inv.LocationID),
		attribute.String("inventory.item_id", inv.ItemID),
	)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, eventID, key string, event interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	var partition int32
	var offset int64
	err = p.breaker.Call(func() error {
		var sendErr error
		partition, offset, sendErr = p.producer.SendMessage(msg)
		return sendErr
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published")
	metrics.EventsPublished.WithLabelValues(topic, "ok").Inc()

	logger.Debug(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
