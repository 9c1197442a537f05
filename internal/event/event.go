package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductDeleted = "product.deleted"
)

// Meta identifies a single emitted event.
type Meta struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newMeta() Meta {
	return Meta{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
	}
}

type ProductCreatedEvent struct {
	Meta
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
}

type ProductUpdatedEvent struct {
	Meta
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
}

type ProductDeletedEvent struct {
	Meta
	ProductID int64 `json:"product_id"`
}
