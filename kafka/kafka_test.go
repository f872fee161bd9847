package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventorydomain "github.com/tair/pos-ledger/internal/inventory/domain"
	"github.com/tair/pos-ledger/internal/inventory/usecase/command"
	orderdomain "github.com/tair/pos-ledger/internal/order/domain"
	"github.com/tair/pos-ledger/internal/testutil"
	"github.com/tair/pos-ledger/kafka"
	"github.com/tair/pos-ledger/pkg/apperror"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func producerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	return cfg
}

func TestPublisher_OrderCreated(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())
	pub := kafka.NewPublisherWithProducer(producer)
	t.Cleanup(func() { pub.Close() })

	order := &orderdomain.Order{
		ID:         uuid.New(),
		LocationID: "S",
		UserID:     "u1",
		Status:     orderdomain.StatusCreated,
		Lines: []orderdomain.OrderLine{
			{ItemID: "P", Quantity: dec("2"), UnitPrice: dec("3.5")},
		},
	}
	order.Price()

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.TopicOrders {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != order.ID.String() {
			return errors.New("message not keyed by order id")
		}
		var headerType string
		for _, h := range msg.Headers {
			if string(h.Key) == "event_type" {
				headerType = string(h.Value)
			}
		}
		if headerType != kafka.EventTypeOrderCreated {
			return errors.New("missing event_type header")
		}

		raw, _ := msg.Value.Encode()
		var event kafka.OrderEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return err
		}
		if event.Total != "7.00" || len(event.Items) != 1 || event.Items[0].UnitPrice != "3.50" {
			return errors.New("unexpected payload " + string(raw))
		}
		return nil
	})

	if err := pub.PublishOrderCreated(context.Background(), order); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

func TestPublisher_InventoryAdjustedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())
	pub := kafka.NewPublisherWithProducer(producer)
	t.Cleanup(func() { pub.Close() })

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	inv := &inventorydomain.Inventory{LocationID: "S", ItemID: "P", Quantity: dec("3"), Version: 2}
	if err := pub.PublishInventoryAdjusted(context.Background(), inv, dec("-2")); err == nil {
		t.Fatal("expected send failure to surface")
	}
}

func restockMessage(t *testing.T, withHeader bool, body string) *sarama.ConsumerMessage {
	t.Helper()
	msg := &sarama.ConsumerMessage{Topic: kafka.TopicInventoryRestock, Value: []byte(body)}
	if withHeader {
		msg.Headers = []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(kafka.EventTypeInventoryRestock)}}
	}
	return msg
}

func TestConsumer_Restock(t *testing.T) {
	repo := testutil.NewInventoryRepository()
	c := kafka.NewDispatcher("pos-ledger", []string{kafka.TopicInventoryRestock})
	c.RegisterHandler(kafka.EventTypeInventoryRestock, kafka.NewRestockHandler(command.NewAdjustQuantityHandler(repo, nil)))
	ctx := context.Background()

	if err := c.HandleMessage(ctx, restockMessage(t, true, `{"location_id":"S","item_id":"P","delta":"12.50"}`)); err != nil {
		t.Fatalf("restock via header: %v", err)
	}
	// event type from the payload, numeric delta
	if err := c.HandleMessage(ctx, restockMessage(t, false, `{"event_type":"inventory.restock","location_id":"S","item_id":"P","delta":2}`)); err != nil {
		t.Fatalf("restock via payload: %v", err)
	}
	if q := repo.Quantity("S", "P"); !q.Equal(dec("14.5")) {
		t.Errorf("stock = %s, want 14.50", q)
	}

	err := c.HandleMessage(ctx, restockMessage(t, true, `{"location_id":"S","item_id":"P","delta":"-100"}`))
	if !errors.Is(err, apperror.ErrInsufficientStock) {
		t.Errorf("oversized negative restock: %v", err)
	}
	if err := c.HandleMessage(ctx, restockMessage(t, true, `{not json`)); err == nil {
		t.Error("malformed payload should fail")
	}
	if err := c.HandleMessage(ctx, restockMessage(t, false, `{"location_id":"S"}`)); err == nil {
		t.Error("message without type should fail")
	}
	if q := repo.Quantity("S", "P"); !q.Equal(dec("14.5")) {
		t.Errorf("failed messages changed stock: %s", q)
	}
}

func TestPublisher_BreakerFailsFast(t *testing.T) {
	producer := mocks.NewSyncProducer(t, producerConfig())
	pub := kafka.NewPublisherWithProducer(producer).WithBreaker(kafka.NewBreaker(2, time.Hour))
	t.Cleanup(func() { pub.Close() })

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	inv := &inventorydomain.Inventory{LocationID: "S", ItemID: "P", Quantity: dec("3"), Version: 2}
	for i := 0; i < 2; i++ {
		if err := pub.PublishInventoryAdjusted(context.Background(), inv, dec("1")); !errors.Is(err, sarama.ErrOutOfBrokers) {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	// the producer has no more expectations; reaching it would fail the test
	if err := pub.PublishInventoryAdjusted(context.Background(), inv, dec("1")); !errors.Is(err, kafka.ErrBreakerOpen) {
		t.Fatalf("third send: %v, want breaker open", err)
	}
}
