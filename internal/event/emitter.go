package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
	"github.com/tuanvumaihuynh/product-catalog/pkg/msgheader"
	"github.com/tuanvumaihuynh/product-catalog/pkg/ptr"
)

const defaultProduceTimeout = 10 * time.Second

// Publisher announces catalog mutations that already succeeded.
// Implementations must not block the caller on delivery.
type Publisher interface {
	ProductCreated(ctx context.Context, p model.Product)
	ProductUpdated(ctx context.Context, p model.Product)
	ProductDeleted(ctx context.Context, id int64)
}

var (
	_ Publisher = (*Emitter)(nil)
	_ Publisher = NopPublisher{}
)

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) ProductCreated(context.Context, model.Product) {}
func (NopPublisher) ProductUpdated(context.Context, model.Product) {}
func (NopPublisher) ProductDeleted(context.Context, int64)         {}

// Emitter publishes catalog events to the message queue in the background.
type Emitter struct {
	producer mq.Producer
	logger   *slog.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewEmitter(logger *slog.Logger, producer mq.Producer) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger.With(slog.String("service", "event-emitter")),
		timeout:  defaultProduceTimeout,
	}
}

func (e *Emitter) ProductCreated(ctx context.Context, p model.Product) {
	e.emit(ctx, TopicProductCreated, p.ID, ProductCreatedEvent{
		Meta:      newMeta(),
		ProductID: p.ID,
		Name:      p.Name,
	})
}

func (e *Emitter) ProductUpdated(ctx context.Context, p model.Product) {
	e.emit(ctx, TopicProductUpdated, p.ID, ProductUpdatedEvent{
		Meta:      newMeta(),
		ProductID: p.ID,
		Name:      p.Name,
	})
}

func (e *Emitter) ProductDeleted(ctx context.Context, id int64) {
	e.emit(ctx, TopicProductDeleted, id, ProductDeletedEvent{
		Meta:      newMeta(),
		ProductID: id,
	})
}

// Close waits for every in-flight event to be delivered or to fail.
func (e *Emitter) Close() {
	e.wg.Wait()
}

func (e *Emitter) emit(ctx context.Context, topic string, productID int64, ev any) {
	payload, err := json.Marshal(ev)
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to marshal event",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
		return
	}

	msg := mq.ProduceMsg{
		Topic:        topic,
		Headers:      msgheader.Build(ctx),
		Payload:      payload,
		PartitionKey: ptr.New(strconv.FormatInt(productID, 10)),
	}

	// The request context ends with the response; keep its values only.
	ctx = context.WithoutCancel(ctx)
	e.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		if err := e.producer.Produce(ctx, msg); err != nil {
			e.logger.ErrorContext(ctx, "failed to publish event",
				slog.String("topic", topic),
				slog.Int64("product_id", productID),
				slog.Any("error", fmt.Errorf("produce: %w", err)),
			)
		}
	})
}
