package impl

import (
	"context"
	"sort"

	"unibite/internal/domain/gateway"
	"unibite/internal/usecase"
)

// coreFields lists, per collection, the payload subset every deployed backend
// schema is known to carry. When a write bounces with an unknown-field
// rejection it is retried exactly once with this subset; a second rejection
// surfaces as-is and is never retried again.
var coreFields = map[string]map[string]struct{}{
	gateway.CollectionUsers: {
		"id": {}, "name": {}, "email": {}, "status": {},
	},
	gateway.CollectionShops: {
		"id": {}, "name": {}, "status": {},
	},
	gateway.CollectionMenuItems: {
		"id": {}, "shop_id": {}, "name": {}, "price": {}, "available": {},
	},
	gateway.CollectionDeliveryProfiles: {
		"id": {}, "name": {}, "status": {},
	},
}

func reduceToCore(collection string, row gateway.Row) (reduced gateway.Row, dropped []string) {
	core, ok := coreFields[collection]
	if !ok {
		return row, nil
	}

	reduced = make(gateway.Row, len(core))
	for field, value := range row {
		if _, isCore := core[field]; isCore {
			reduced[field] = value

			continue
		}
		dropped = append(dropped, field)
	}
	sort.Strings(dropped)

	return reduced, dropped
}

// insertWithFallback writes a row, retrying once with the core subset when
// the backend schema rejects an unknown field.
func insertWithFallback(ctx context.Context, gw gateway.Gateway, collection string, row gateway.Row) (gateway.Row, usecase.WriteOutcome, error) {
	accepted, err := gw.Insert(ctx, collection, row)
	if err == nil {
		return accepted, usecase.WriteOutcome{}, nil
	}
	if !gateway.IsUnknownField(err) {
		return nil, usecase.WriteOutcome{}, err
	}

	reduced, dropped := reduceToCore(collection, row)
	if len(dropped) == 0 {
		// The rejection hit a core field; nothing narrower to try.
		return nil, usecase.WriteOutcome{}, err
	}

	accepted, err = gw.Insert(ctx, collection, reduced)
	if err != nil {
		return nil, usecase.WriteOutcome{}, err
	}

	return accepted, usecase.WriteOutcome{Degraded: true, DroppedFields: dropped}, nil
}

// updateWithFallback patches rows, retrying once with the core subset of the
// patch when the backend schema rejects an unknown field.
func updateWithFallback(ctx context.Context, gw gateway.Gateway, collection string, filter, patch gateway.Row) (usecase.WriteOutcome, error) {
	err := gw.Update(ctx, collection, filter, patch)
	if err == nil {
		return usecase.WriteOutcome{}, nil
	}
	if !gateway.IsUnknownField(err) {
		return usecase.WriteOutcome{}, err
	}

	reduced, dropped := reduceToCore(collection, patch)
	if len(dropped) == 0 || len(reduced) == 0 {
		return usecase.WriteOutcome{}, err
	}

	if err := gw.Update(ctx, collection, filter, reduced); err != nil {
		return usecase.WriteOutcome{}, err
	}

	return usecase.WriteOutcome{Degraded: true, DroppedFields: dropped}, nil
}
