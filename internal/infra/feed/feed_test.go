package feed

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChangeFeed_PublishReachesSubscriber(t *testing.T) {
	feed := NewMemory(newDiscardLogger())
	defer feed.Close()

	ctx := context.Background()

	var mu sync.Mutex
	var received []string
	done := make(chan struct{}, 1)

	cancel, err := feed.Subscribe(ctx, func(collection string) {
		mu.Lock()
		received = append(received, collection)
		mu.Unlock()
		done <- struct{}{}
	})
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, feed.Publish(ctx, "orders"))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change signal")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"orders"}, received)
}

func TestChangeFeed_CancelStopsDelivery(t *testing.T) {
	feed := NewMemory(newDiscardLogger())
	defer feed.Close()

	ctx := context.Background()

	signals := make(chan string, 4)
	cancel, err := feed.Subscribe(ctx, func(collection string) {
		signals <- collection
	})
	require.NoError(t, err)

	cancel()
	// Cancel is idempotent.
	cancel()

	// A publish after cancel may fail (no remaining subscription) or be
	// dropped; either way nothing reaches the handler.
	_ = feed.Publish(ctx, "users")

	select {
	case collection := <-signals:
		t.Fatalf("unexpected signal after cancel: %s", collection)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestChangeFeed_ClosedFeedRejectsPublish(t *testing.T) {
	feed := NewMemory(newDiscardLogger())
	require.NoError(t, feed.Close())

	assert.Error(t, feed.Publish(context.Background(), "shops"))
}
