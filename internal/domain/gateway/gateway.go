// Package gateway defines the remote data service boundary the admin core
// consumes. The two deployment profiles (local snapshot store and remote
// Postgres service) both satisfy this contract; the store never branches on
// which one is in use.
package gateway

import (
	"context"
	"fmt"

	"unibite/internal/errors"
)

// Named collections exposed by the data service.
const (
	CollectionUsers            = "users"
	CollectionShops            = "shops"
	CollectionMenuItems        = "menu_items"
	CollectionOrders           = "orders"
	CollectionDeliveryProfiles = "delivery_profiles"
	CollectionTransactions     = "transactions"
	CollectionPlatformSettings = "platform_settings"
	CollectionShopAuth         = "shop_auth"
)

// Row is one record in a collection. Values are scalars, nested maps, or
// slices as produced by the backend; the store owns converting rows to and
// from typed entities.
type Row = map[string]any

// Query narrows a Select. A nil Filter selects the whole collection.
type Query struct {
	// Filter matches rows whose fields equal every filter value.
	Filter Row
	// OrderBy names a field for ascending sort; empty leaves backend order.
	OrderBy string
}

// ChangeHandler receives the name of a collection that changed. The feed
// carries no row-level diff; a signal means "re-fetch this collection".
type ChangeHandler func(collection string)

// Gateway is the row-level CRUD + realtime boundary of the remote data
// service. All write errors are classified: an unknown-field rejection is an
// *UnknownFieldError, anything transport-shaped wraps ErrUnavailable.
type Gateway interface {
	// Select returns the rows of a collection matching the query.
	Select(ctx context.Context, collection string, query Query) ([]Row, error)

	// Insert persists a new row and returns the accepted row.
	Insert(ctx context.Context, collection string, row Row) (Row, error)

	// Update applies a partial patch to every row matching the filter.
	Update(ctx context.Context, collection string, filter Row, patch Row) error

	// Delete removes every row matching the filter.
	Delete(ctx context.Context, collection string, filter Row) error

	// Subscribe registers a change handler for the whole service and returns
	// a cancel function that releases the subscription. One long-lived
	// subscription per authenticated session.
	Subscribe(ctx context.Context, handler ChangeHandler) (cancel func(), err error)
}

// ErrNotFound is returned when a filter matches no rows where one is required.
var ErrNotFound = errors.New("gateway: row not found")

// ErrUnavailable marks transport or backend failures. It is never retried by
// the core; the caller decides how to surface it.
var ErrUnavailable = errors.New("gateway: service unavailable")

// UnknownFieldError reports a write rejected because the backend schema lacks
// one of the payload fields. The schema-adaptation layer treats it as the
// trigger for a single reduced-payload retry.
type UnknownFieldError struct {
	Collection string
	Field      string
}

// Error implements the error interface.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("gateway: collection %q has no field %q", e.Collection, e.Field)
}

// IsUnknownField reports whether err is classified as a schema mismatch.
func IsUnknownField(err error) bool {
	var unknownField *UnknownFieldError

	return errors.As(err, &unknownField)
}
