package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "tripnest/internal/app/outbox"
)

func TestOutboxFlushPublishesAndDrains(t *testing.T) {
	box := NewOutbox()
	var published []string
	box.Publish = func(ctx context.Context, rec appoutbox.EventRecord) error {
		published = append(published, rec.Name)
		return nil
	}

	require.NoError(t, box.Add(context.Background(), appoutbox.EventRecord{ID: "1", Name: "booking.requested"}))
	require.NoError(t, box.Add(context.Background(), appoutbox.EventRecord{ID: "2", Name: "booking.approved"}))
	require.Len(t, box.Pending(), 2)

	require.NoError(t, box.Flush(context.Background()))
	assert.Equal(t, []string{"booking.requested", "booking.approved"}, published)
	assert.Empty(t, box.Pending())
}

func TestOutboxFlushWithoutPublisherDrops(t *testing.T) {
	box := NewOutbox()
	require.NoError(t, box.Add(context.Background(), appoutbox.EventRecord{ID: "1", Name: "booking.requested"}))
	require.NoError(t, box.Flush(context.Background()))
	assert.Empty(t, box.Pending())
}

func TestOutboxFlushStopsOnPublishError(t *testing.T) {
	box := NewOutbox()
	box.Publish = func(ctx context.Context, rec appoutbox.EventRecord) error {
		return errors.New("broker down")
	}
	require.NoError(t, box.Add(context.Background(), appoutbox.EventRecord{ID: "1", Name: "booking.requested"}))
	assert.Error(t, box.Flush(context.Background()))
}
