// Package feed implements the realtime change-notification channel on top of
// gocloud.dev pubsub with the in-memory driver. Gateways publish collection
// names after accepted writes; the store subscribes per authenticated session.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"unibite/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"
)

const ackDeadline = time.Second

// changeFeed implements service.ChangeFeed over a single in-process topic.
type changeFeed struct {
	topic  *pubsub.Topic
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Params holds dependencies for the change feed, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Logger *slog.Logger
}

// New creates the process-wide change feed and ties its shutdown to the fx
// lifecycle.
func New(params Params) service.ChangeFeed {
	feed := NewMemory(params.Logger)

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return feed.Close()
		},
	})

	return feed
}

// NewMemory creates a change feed without lifecycle wiring, for tests and
// embedded use.
func NewMemory(logger *slog.Logger) service.ChangeFeed {
	return &changeFeed{
		topic:  mempubsub.NewTopic(),
		logger: logger,
	}
}

// Publish announces that a collection changed.
func (f *changeFeed) Publish(ctx context.Context, collection string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()

		return errors.New("change feed is closed")
	}
	f.mu.Unlock()

	if err := f.topic.Send(ctx, &pubsub.Message{Body: []byte(collection)}); err != nil {
		return errors.Wrap(err, "failed to publish change signal")
	}

	return nil
}

// Subscribe attaches a new subscription to the topic and pumps signals into
// the handler until cancel is called.
func (f *changeFeed) Subscribe(ctx context.Context, handler func(collection string)) (func(), error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()

		return nil, errors.New("change feed is closed")
	}
	subscription := mempubsub.NewSubscription(f.topic, ackDeadline)
	f.mu.Unlock()

	receiveCtx, cancelReceive := context.WithCancel(ctx)

	go func() {
		for {
			msg, err := subscription.Receive(receiveCtx)
			if err != nil {
				// Receive fails only when the subscription shuts down.
				return
			}
			msg.Ack()
			handler(string(msg.Body))
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			cancelReceive()

			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), ackDeadline)
			defer cancelShutdown()

			if err := subscription.Shutdown(shutdownCtx); err != nil {
				f.logger.Warn("Failed to shut down feed subscription", slog.Any("error", err))
			}
		})
	}

	return cancel, nil
}

// Close shuts the topic down; in-flight subscriptions drain and stop.
func (f *changeFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()

		return nil
	}
	f.closed = true
	f.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ackDeadline)
	defer cancel()

	return errors.WithStack(f.topic.Shutdown(shutdownCtx))
}
