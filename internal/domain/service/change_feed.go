package service

import "context"

// ChangeFeed is the realtime change-notification channel between the data
// service and the store. Gateways publish the name of a collection after
// every accepted write; subscribers receive it and re-fetch.
type ChangeFeed interface {
	// Publish announces that a collection changed.
	Publish(ctx context.Context, collection string) error

	// Subscribe starts delivering change signals to the handler until the
	// returned cancel function is called.
	Subscribe(ctx context.Context, handler func(collection string)) (cancel func(), err error)

	// Close releases the feed's resources.
	Close() error
}
