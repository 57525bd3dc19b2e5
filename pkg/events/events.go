// Package events publishes record-change notifications for downstream
// consumers (audit trail, search indexing). Publishing is best-effort:
// callers log failures and never fail the originating request on one.
package events

import (
	"context"
	"fmt"
	"time"

	"vistos/pkg/kafka"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type RecordChange struct {
	EntityType string    `json:"entityType"`
	Action     Action    `json:"action"`
	RecordID   string    `json:"recordId"`
	OccurredAt time.Time `json:"occurredAt"`
	Record     any       `json:"record,omitempty"`
}

type Publisher interface {
	RecordChanged(ctx context.Context, change RecordChange) error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *kafkaPublisher) RecordChanged(ctx context.Context, change RecordChange) error {
	if change.OccurredAt.IsZero() {
		change.OccurredAt = time.Now().UTC()
	}

	msg, err := kafka.NewMessage().
		WithKey(change.RecordID).
		WithValue(change).
		WithEventType(fmt.Sprintf("%s.%s", change.EntityType, change.Action)).
		WithSource(p.source).
		Build()
	if err != nil {
		return err
	}

	return p.producer.Publish(ctx, msg)
}

// NopPublisher is wired when eventing is disabled.
type NopPublisher struct{}

func (NopPublisher) RecordChanged(context.Context, RecordChange) error {
	return nil
}
