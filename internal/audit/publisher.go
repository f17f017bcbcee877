package audit

import (
	"context"
	"fmt"
	"time"

	"supplierfront/internal/apiclient"
)

// Sink persists one audit event.
type Sink interface {
	CreateAuditEvent(ctx context.Context, event apiclient.AuditEvent) error
}

// Publisher forwards audit events to the data API. It is append-only.
type Publisher struct {
	sink Sink
	now  func() time.Time
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink, now: time.Now}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	err := p.sink.CreateAuditEvent(ctx, apiclient.AuditEvent{
		AuditType:  string(event.Type),
		User:       event.User,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Data:       event.Data,
		CreatedAt:  event.Timestamp.UTC(),
	})
	if err != nil {
		return fmt.Errorf("audit %s: %w", event.Type, err)
	}
	return nil
}
