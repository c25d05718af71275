package localstore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"unibite/config"
	"unibite/internal/domain/gateway"
	"unibite/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const collectionKeyPrefix = "collection:"

// localGateway satisfies gateway.Gateway on top of the JSON snapshot. It is
// schema-free: like the browser-storage backend it mirrors, it accepts any
// field, so unknown-field rejections never originate here.
type localGateway struct {
	snapshot *Snapshot
	feed     service.ChangeFeed
	logger   *slog.Logger
}

// GatewayParams holds dependencies for the local gateway, injected by Fx.
type GatewayParams struct {
	fx.In

	Config   *config.Config
	Snapshot *Snapshot
	Feed     service.ChangeFeed
	Logger   *slog.Logger
}

// NewGateway creates the local-profile gateway, seeding demo data on first
// run when configured.
func NewGateway(params GatewayParams) (gateway.Gateway, error) {
	localGw := &localGateway{
		snapshot: params.Snapshot,
		feed:     params.Feed,
		logger:   params.Logger,
	}

	if local := params.Config.Gateway.Local; local != nil && local.Seed {
		if err := seed(params.Snapshot); err != nil {
			return nil, errors.Wrap(err, "failed to seed local gateway")
		}
	}

	return localGw, nil
}

func collectionKey(collection string) string {
	return collectionKeyPrefix + collection
}

func (g *localGateway) load(collection string) ([]gateway.Row, error) {
	var rows []gateway.Row
	if _, err := g.snapshot.Get(collectionKey(collection), &rows); err != nil {
		return nil, errors.Wrapf(gateway.ErrUnavailable, "load collection %s: %v", collection, err)
	}

	return rows, nil
}

func (g *localGateway) persist(ctx context.Context, collection string, rows []gateway.Row) error {
	if err := g.snapshot.Set(collectionKey(collection), rows); err != nil {
		return errors.Wrapf(gateway.ErrUnavailable, "persist collection %s: %v", collection, err)
	}

	if err := g.feed.Publish(ctx, collection); err != nil {
		// The write itself succeeded; a dropped signal only delays refresh.
		g.logger.Warn("Failed to publish change signal",
			slog.String("collection", collection), slog.Any("error", err))
	}

	return nil
}

// matches reports whether row satisfies every filter field. Values are
// compared through their canonical string form because JSON round-trips
// erase Go types (uuid.UUID arrives back as string, int as float64).
func matches(row gateway.Row, filter gateway.Row) bool {
	for field, want := range filter {
		got, ok := row[field]
		if !ok {
			return false
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}

	return true
}

// Select returns the rows of a collection matching the query.
func (g *localGateway) Select(_ context.Context, collection string, query gateway.Query) ([]gateway.Row, error) {
	rows, err := g.load(collection)
	if err != nil {
		return nil, err
	}

	selected := make([]gateway.Row, 0, len(rows))
	for _, row := range rows {
		if query.Filter == nil || matches(row, query.Filter) {
			selected = append(selected, row)
		}
	}

	if query.OrderBy != "" {
		field := query.OrderBy
		sort.SliceStable(selected, func(i, j int) bool {
			return fmt.Sprint(selected[i][field]) < fmt.Sprint(selected[j][field])
		})
	}

	return selected, nil
}

// Insert persists a new row and returns the accepted row.
func (g *localGateway) Insert(ctx context.Context, collection string, row gateway.Row) (gateway.Row, error) {
	rows, err := g.load(collection)
	if err != nil {
		return nil, err
	}

	accepted := make(gateway.Row, len(row))
	for field, value := range row {
		accepted[field] = value
	}

	rows = append(rows, accepted)
	if err := g.persist(ctx, collection, rows); err != nil {
		return nil, err
	}

	return accepted, nil
}

// Update applies a partial patch to every row matching the filter.
func (g *localGateway) Update(ctx context.Context, collection string, filter gateway.Row, patch gateway.Row) error {
	rows, err := g.load(collection)
	if err != nil {
		return err
	}

	matched := false
	for _, row := range rows {
		if !matches(row, filter) {
			continue
		}
		matched = true
		for field, value := range patch {
			row[field] = value
		}
	}

	if !matched {
		return errors.Wrapf(gateway.ErrNotFound, "update %s with filter %v", collection, filter)
	}

	return g.persist(ctx, collection, rows)
}

// Delete removes every row matching the filter.
func (g *localGateway) Delete(ctx context.Context, collection string, filter gateway.Row) error {
	rows, err := g.load(collection)
	if err != nil {
		return err
	}

	remaining := make([]gateway.Row, 0, len(rows))
	for _, row := range rows {
		if !matches(row, filter) {
			remaining = append(remaining, row)
		}
	}

	if len(remaining) == len(rows) {
		return errors.Wrapf(gateway.ErrNotFound, "delete %s with filter %v", collection, filter)
	}

	return g.persist(ctx, collection, remaining)
}

// Subscribe registers a change handler on the shared feed.
func (g *localGateway) Subscribe(ctx context.Context, handler gateway.ChangeHandler) (func(), error) {
	return g.feed.Subscribe(ctx, handler)
}
