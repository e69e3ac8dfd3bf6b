package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "tripnest/internal/app/outbox"
)

type fakeOutbox struct {
	flushes int
}

func (o *fakeOutbox) Add(ctx context.Context, record appoutbox.EventRecord) error { return nil }

func (o *fakeOutbox) Flush(ctx context.Context) error {
	o.flushes++
	return nil
}

func TestOutboxFlushRunsAfterSuccess(t *testing.T) {
	base := &countingBus{}
	box := &fakeOutbox{}
	bus := ChainCommands(base, OutboxFlush(box))

	_, err := bus.Dispatch(context.Background(), plainCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, box.flushes)
}

func TestOutboxFlushSkippedOnFailure(t *testing.T) {
	base := &countingBus{err: errors.New("boom")}
	box := &fakeOutbox{}
	bus := ChainCommands(base, OutboxFlush(box))

	_, err := bus.Dispatch(context.Background(), plainCommand{})
	require.Error(t, err)
	assert.Zero(t, box.flushes)
}
