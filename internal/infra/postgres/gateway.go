package postgres

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"unibite/internal/domain/gateway"
	"unibite/internal/domain/service"
	"unibite/internal/errors"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// undefinedColumnPattern extracts the offending column from the Postgres
// undefined_column error (SQLSTATE 42703), e.g.
//
//	ERROR: column "owner" of relation "shops" does not exist (SQLSTATE 42703)
var undefinedColumnPattern = regexp.MustCompile(`column "([^"]+)"`)

const undefinedColumnState = "42703"

// remoteGateway satisfies gateway.Gateway against a PostgreSQL-backed data
// service. Unlike the local profile the backend enforces a schema, so writes
// can come back with unknown-field rejections.
type remoteGateway struct {
	db     *gorm.DB
	feed   service.ChangeFeed
	logger *slog.Logger
}

// GatewayParams holds dependencies for the remote gateway, injected by Fx.
type GatewayParams struct {
	fx.In

	DB     *gorm.DB
	Feed   service.ChangeFeed
	Logger *slog.Logger
}

// NewGateway creates the postgres-profile gateway.
func NewGateway(params GatewayParams) gateway.Gateway {
	return &remoteGateway{
		db:     params.DB,
		feed:   params.Feed,
		logger: params.Logger,
	}
}

// classifyError maps a driver error onto the gateway contract: schema
// rejections become *UnknownFieldError, everything else wraps ErrUnavailable.
func classifyError(collection string, err error) error {
	if err == nil {
		return nil
	}

	message := err.Error()
	if field, ok := extractUnknownField(message); ok {
		return &gateway.UnknownFieldError{Collection: collection, Field: field}
	}

	return errors.Wrapf(gateway.ErrUnavailable, "%s: %v", collection, err)
}

func extractUnknownField(message string) (string, bool) {
	if !strings.Contains(message, undefinedColumnState) {
		return "", false
	}

	match := undefinedColumnPattern.FindStringSubmatch(message)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// Select returns the rows of a collection matching the query.
func (g *remoteGateway) Select(ctx context.Context, collection string, query gateway.Query) ([]gateway.Row, error) {
	stmt := g.db.WithContext(ctx).Table(collection)
	if len(query.Filter) > 0 {
		stmt = stmt.Where(map[string]any(query.Filter))
	}
	if query.OrderBy != "" {
		stmt = stmt.Order(query.OrderBy)
	}

	var rows []map[string]any
	if err := stmt.Find(&rows).Error; err != nil {
		return nil, classifyError(collection, err)
	}

	selected := make([]gateway.Row, len(rows))
	for i, row := range rows {
		selected[i] = row
	}

	return selected, nil
}

// Insert persists a new row and returns the accepted row.
func (g *remoteGateway) Insert(ctx context.Context, collection string, row gateway.Row) (gateway.Row, error) {
	payload := map[string]any(row)
	if err := g.db.WithContext(ctx).Table(collection).Create(&payload).Error; err != nil {
		return nil, classifyError(collection, err)
	}

	g.publish(ctx, collection)

	return payload, nil
}

// Update applies a partial patch to every row matching the filter.
func (g *remoteGateway) Update(ctx context.Context, collection string, filter gateway.Row, patch gateway.Row) error {
	result := g.db.WithContext(ctx).Table(collection).
		Where(map[string]any(filter)).
		Updates(map[string]any(patch))
	if result.Error != nil {
		return classifyError(collection, result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(gateway.ErrNotFound, "update %s with filter %v", collection, filter)
	}

	g.publish(ctx, collection)

	return nil
}

// Delete removes every row matching the filter.
func (g *remoteGateway) Delete(ctx context.Context, collection string, filter gateway.Row) error {
	result := g.db.WithContext(ctx).Table(collection).
		Where(map[string]any(filter)).
		Delete(&struct{}{})
	if result.Error != nil {
		return classifyError(collection, result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(gateway.ErrNotFound, "delete %s with filter %v", collection, filter)
	}

	g.publish(ctx, collection)

	return nil
}

// Subscribe registers a change handler on the shared feed.
func (g *remoteGateway) Subscribe(ctx context.Context, handler gateway.ChangeHandler) (func(), error) {
	return g.feed.Subscribe(ctx, handler)
}

func (g *remoteGateway) publish(ctx context.Context, collection string) {
	if err := g.feed.Publish(ctx, collection); err != nil {
		g.logger.Warn("Failed to publish change signal",
			slog.String("collection", collection), slog.Any("error", err))
	}
}
