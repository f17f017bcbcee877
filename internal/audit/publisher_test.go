package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplierfront/internal/apiclient"
)

type recordingSink struct {
	events []apiclient.AuditEvent
	err    error
}

func (s *recordingSink) CreateAuditEvent(_ context.Context, event apiclient.AuditEvent) error {
	s.events = append(s.events, event)
	return s.err
}

func TestPublisherEmit(t *testing.T) {
	sink := &recordingSink{}
	pub := NewPublisher(sink)
	pub.now = func() time.Time { return time.Date(2015, 9, 29, 10, 0, 0, 0, time.UTC) }

	err := pub.Emit(context.Background(), Event{
		Type:       TypeSendClarificationQuestion,
		User:       "email@email.com",
		ObjectType: "suppliers",
		ObjectID:   int64(1234),
		Data:       map[string]any{"question": "Why?", "framework": "g-cloud-7"},
	})
	require.NoError(t, err)
	require.Len(t, sink.events, 1)
	got := sink.events[0]
	assert.Equal(t, "send_clarification_question", got.AuditType)
	assert.Equal(t, "email@email.com", got.User)
	assert.Equal(t, int64(1234), got.ObjectID)
	assert.Equal(t, "Why?", got.Data["question"])
	assert.Equal(t, time.Date(2015, 9, 29, 10, 0, 0, 0, time.UTC), got.CreatedAt)
}

func TestPublisherEmitWrapsSinkErrors(t *testing.T) {
	pub := NewPublisher(&recordingSink{err: &apiclient.APIError{StatusCode: 503}})
	err := pub.Emit(context.Background(), Event{Type: TypeInviteUser})

	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.StatusCode)
}
